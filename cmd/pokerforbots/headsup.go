package main

import (
	"fmt"

	"github.com/lox/pokerforbots-arena/internal/stats"
	"github.com/lox/pokerforbots-arena/internal/tournament"
)

// HeadsUpCmd plays a full heads-up match (stacks carried across hands,
// button alternating) between two configured models and records the
// result against the ELO rating service.
type HeadsUpCmd struct {
	ModelA string `arg:"" help:"First model's configured name"`
	ModelB string `arg:"" help:"Second model's configured name"`
	Hands  int    `default:"200" help:"Maximum number of hands to play"`
	Seed   int64  `default:"1" help:"RNG seed for the match"`
}

func (c *HeadsUpCmd) Run(cli *CLI) error {
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
	result, err := tournament.RunHeadsUp(ctx, a, b, matchConfig(cfg, c.Hands, c.Seed, tracker))
	if err != nil {
		return fmt.Errorf("heads-up: %w", err)
	}

	for _, seat := range result.Seats {
		fmt.Printf("%-20s final_stack=%-8d profit=%-6d position=%d\n", seat.Model, seat.FinalStack, seat.Profit, seat.FinishingPosition)
	}
	fmt.Printf("hands played: %d\n", result.HandsPlayed)
	printStats(tracker)

	ratingSvc, err := openRatingService(cfg)
	if err != nil {
		return fmt.Errorf("heads-up: opening rating service: %w", err)
	}
	if result.WinnerModel == "" {
		winner, loser, err := ratingSvc.ApplyMatch(a.Model, b.Model, true)
		if err != nil {
			return fmt.Errorf("heads-up: applying draw rating: %w", err)
		}
		fmt.Printf("result: draw, ratings now %s=%d %s=%d\n", winner.Model, winner.Rating, loser.Model, loser.Rating)
		return nil
	}
	loserModel := a.Model
	if result.WinnerModel == a.Model {
		loserModel = b.Model
	}
	winner, loser, err := ratingSvc.ApplyMatch(result.WinnerModel, loserModel, false)
	if err != nil {
		return fmt.Errorf("heads-up: applying rating: %w", err)
	}
	fmt.Printf("winner: %s (rating %d -> now %d played)\n", winner.Model, winner.Rating, winner.GamesPlayed)
	fmt.Printf("loser:  %s (rating %d)\n", loser.Model, loser.Rating)
	return nil
}
