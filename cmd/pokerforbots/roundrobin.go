package main

import (
	"fmt"

	"github.com/lox/pokerforbots-arena/internal/stats"
	"github.com/lox/pokerforbots-arena/internal/tournament"
)

// RoundRobinCmd plays every configured model against every other
// configured model once, heads-up, and reports aggregate standings.
type RoundRobinCmd struct {
	Hands       int   `default:"200" help:"Maximum number of hands per pairing"`
	Seed        int64 `default:"1" help:"RNG seed for the round robin"`
	Parallelism int   `default:"1" help:"Maximum number of pairings to run concurrently"`
}

func (c *RoundRobinCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	if len(cfg.Models) < 2 {
		return fmt.Errorf("round-robin: need at least 2 configured models, have %d", len(cfg.Models))
	}

	entrants := make([]tournament.Entrant, 0, len(cfg.Models))
	for _, mc := range cfg.Models {
		entrant, err := buildEntrant(cfg, mc.Name)
		if err != nil {
			return err
		}
		entrants = append(entrants, entrant)
	}

	ctx, cancel := withSignalCancel()
	defer cancel()

	tracker := stats.NewTracker()
	results, err := tournament.RunRoundRobin(ctx, entrants, matchConfig(cfg, c.Hands, c.Seed, tracker), c.Parallelism)
	if err != nil {
		return fmt.Errorf("round-robin: %w", err)
	}

	ratingSvc, err := openRatingService(cfg)
	if err != nil {
		return fmt.Errorf("round-robin: opening rating service: %w", err)
	}
	for _, pair := range results {
		if pair.Result == nil {
			continue
		}
		switch pair.Result.WinnerModel {
		case "":
			if _, _, err := ratingSvc.ApplyMatch(pair.A, pair.B, true); err != nil {
				return fmt.Errorf("round-robin: applying draw rating for %s/%s: %w", pair.A, pair.B, err)
			}
		case pair.A:
			if _, _, err := ratingSvc.ApplyMatch(pair.A, pair.B, false); err != nil {
				return fmt.Errorf("round-robin: applying rating for %s/%s: %w", pair.A, pair.B, err)
			}
		default:
			if _, _, err := ratingSvc.ApplyMatch(pair.B, pair.A, false); err != nil {
				return fmt.Errorf("round-robin: applying rating for %s/%s: %w", pair.A, pair.B, err)
			}
		}
	}

	fmt.Println("standings:")
	for i, s := range tournament.Standings(results) {
		fmt.Printf("%2d. %-20s net_profit=%-8d matches=%-3d wins=%-3d losses=%-3d draws=%-3d\n",
			i+1, s.Model, s.NetProfit, s.Matches, s.Wins, s.Losses, s.Draws)
	}
	printStats(tracker)
	return nil
}
