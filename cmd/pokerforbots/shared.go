package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/lox/pokerforbots-arena/internal/agent"
	"github.com/lox/pokerforbots-arena/internal/config"
	"github.com/lox/pokerforbots-arena/internal/llm"
	"github.com/lox/pokerforbots-arena/internal/rating"
	"github.com/lox/pokerforbots-arena/internal/stats"
	"github.com/lox/pokerforbots-arena/internal/tournament"
)

// withSignalCancel returns a context cancelled on SIGINT/SIGTERM, so a
// running match exits cleanly instead of leaving a half-written rating
// file. Grounded on cmd/pokerforbots/bot.go's context/signal-handling
// pattern, generalized from "one bot client" to "one match run".
func withSignalCancel() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// loadConfig reads the arena configuration named on the CLI and validates
// it before any entrant is built from it.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildEntrant resolves a configured model by name into a tournament
// Entrant backed by a live agent.Pipeline over a GatewayClient.
func buildEntrant(cfg *config.Config, modelName string) (tournament.Entrant, error) {
	mc, ok := cfg.ModelByName(modelName)
	if !ok {
		return tournament.Entrant{}, fmt.Errorf("model %q is not configured", modelName)
	}

	logger := log.Default().WithPrefix(modelName)
	completer := llm.NewGatewayClient(mc.GatewayURL, logger)
	tools := llm.NewRegistry(llm.PotOddsCalculator(), llm.EquityCalculator())

	pipeline := agent.New(mc.Name, completer, tools, logger)
	pipeline.Temperature = mc.Temperature
	pipeline.Timeout = time.Duration(cfg.Pipeline.TimeoutSeconds) * time.Second

	return tournament.Entrant{Model: mc.Name, Decider: pipeline}, nil
}

// matchConfig builds a tournament.MatchConfig from the resolved arena
// configuration and a run seed. tracker, if non-nil, is fed every hand's
// decision log so the caller can report VPIP/PFR after the match.
func matchConfig(cfg *config.Config, hands int, seed int64, tracker *stats.Tracker) tournament.MatchConfig {
	return tournament.MatchConfig{
		Hands:         hands,
		StartingStack: cfg.Table.StartingStack,
		Schedule: tournament.BlindSchedule{
			SmallBlind:    cfg.Table.SmallBlind,
			BigBlind:      cfg.Table.BigBlind,
			Multiplier:    cfg.BlindSchedule.Multiplier,
			HandsPerLevel: cfg.BlindSchedule.HandsPerLevel,
		},
		Seed:   seed,
		Logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
		Stats:  tracker,
	}
}

// printStats prints each model's session VPIP/PFR/hands-seen aggregate,
// sorted by model name.
func printStats(tracker *stats.Tracker) {
	all := tracker.All()
	if len(all) == 0 {
		return
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("session stats:")
	for _, name := range names {
		s := all[name]
		fmt.Printf("  %-20s hands=%-5d vpip=%.1f%% pfr=%.1f%%\n", name, s.HandsSeen(), s.VPIP(), s.PFR())
	}
}

// openRatingService opens the configured rating file.
func openRatingService(cfg *config.Config) (*rating.Service, error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return rating.NewService(cfg.Rating.Path, logger)
}
