package main

import (
	"fmt"

	"github.com/lox/pokerforbots-arena/internal/stats"
	"github.com/lox/pokerforbots-arena/internal/tournament"
)

// HandCmd plays exactly one hand between two configured models and
// prints the outcome - useful for smoke-testing a model's gateway wiring
// before committing to a full match.
type HandCmd struct {
	ModelA string `arg:"" help:"First model's configured name"`
	ModelB string `arg:"" help:"Second model's configured name"`
	Seed   int64  `default:"1" help:"RNG seed for the hand"`
}

func (c *HandCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	a, err := buildEntrant(cfg, c.ModelA)
	if err != nil {
		return err
	}
	b, err := buildEntrant(cfg, c.ModelB)
	if err != nil {
		return err
	}

	ctx, cancel := withSignalCancel()
	defer cancel()

	tracker := stats.NewTracker()
	result, err := tournament.RunHeadsUp(ctx, a, b, matchConfig(cfg, 1, c.Seed, tracker))
	if err != nil {
		return fmt.Errorf("hand: %w", err)
	}

	for _, seat := range result.Seats {
		fmt.Printf("%-20s final_stack=%-8d profit=%-6d\n", seat.Model, seat.FinalStack, seat.Profit)
	}
	if result.WinnerModel != "" {
		fmt.Printf("winner: %s\n", result.WinnerModel)
	} else {
		fmt.Println("result: tie")
	}
	printStats(tracker)
	return nil
}
