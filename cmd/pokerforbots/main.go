package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build.
var version = "dev"

// CLI is the pokerforbots arena command surface: run a single hand, a
// heads-up match, a round robin, or a full-table freeze-out between
// configured models, then inspect ratings and configuration.
//
// Grounded on the teacher's own cmd/pokerforbots/main.go: a kong.Parse
// over a CLI struct-of-subcommands, one Run() method per mode.
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `default:"arena.hcl" help:"Path to the arena HCL configuration file"`

	Hand        HandCmd        `cmd:"" help:"Play a single hand between two configured models"`
	HeadsUp     HeadsUpCmd     `cmd:"heads-up" help:"Play a heads-up match between two configured models"`
	RoundRobin  RoundRobinCmd  `cmd:"round-robin" help:"Play a round robin between all configured models"`
	FullTable   FullTableCmd   `cmd:"full-table" help:"Play a full-table freeze-out between configured models"`
	Leaderboard LeaderboardCmd `cmd:"" help:"Show the current ELO leaderboard"`
	Models      ModelsCmd      `cmd:"" help:"List configured models"`
	ConfigCmd   ShowConfigCmd  `cmd:"config" help:"Print the resolved configuration"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerforbots"),
		kong.Description("LLM-vs-LLM No-Limit Hold'em evaluation harness"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	if err := ctx.Run(&cli); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
