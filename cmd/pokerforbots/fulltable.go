package main

import (
	"fmt"
	"sort"

	"github.com/lox/pokerforbots-arena/internal/model"
	"github.com/lox/pokerforbots-arena/internal/stats"
	"github.com/lox/pokerforbots-arena/internal/tournament"
)

// FullTableCmd plays a single-table freeze-out between 2-8 configured
// models: everyone sits down together, elimination order fixes finishing
// position, and the last stack standing wins.
//
// Ratings are not updated for freeze-outs: spec.md's rating law is defined
// over a single winner/loser pair, and a freeze-out has no natural loser
// once more than two models are seated.
type FullTableCmd struct {
	Models []string `arg:"" help:"Configured model names to seat (2-8)"`
	Hands  int      `default:"1000" help:"Maximum number of hands (capped at 1000)"`
	Seed   int64    `default:"1" help:"RNG seed for the tournament"`
}

func (c *FullTableCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}

	entrants := make([]tournament.Entrant, 0, len(c.Models))
	for _, name := range c.Models {
		entrant, err := buildEntrant(cfg, name)
		if err != nil {
			return err
		}
		entrants = append(entrants, entrant)
	}

	ctx, cancel := withSignalCancel()
	defer cancel()

	tracker := stats.NewTracker()
	result, err := tournament.RunFullTable(ctx, entrants, matchConfig(cfg, c.Hands, c.Seed, tracker))
	if err != nil {
		return fmt.Errorf("full-table: %w", err)
	}

	seats := append([]model.SeatResult(nil), result.Seats...)
	sort.Slice(seats, func(i, j int) bool { return seats[i].FinishingPosition < seats[j].FinishingPosition })
	for _, seat := range seats {
		fmt.Printf("%d. %-20s final_stack=%-8d profit=%-6d\n", seat.FinishingPosition, seat.Model, seat.FinalStack, seat.Profit)
	}
	fmt.Printf("hands played: %d\n", result.HandsPlayed)
	printStats(tracker)
	return nil
}
