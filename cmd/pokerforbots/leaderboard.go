package main

import "fmt"

// LeaderboardCmd prints every model's persisted ELO rating, ranked
// highest first.
type LeaderboardCmd struct{}

func (c *LeaderboardCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	ratingSvc, err := openRatingService(cfg)
	if err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}

	ratings := ratingSvc.All()
	if len(ratings) == 0 {
		fmt.Println("no matches recorded yet")
		return nil
	}
	for i, r := range ratings {
		fmt.Printf("%2d. %-20s rating=%-6d played=%-5d wins=%-5d losses=%-5d draws=%-5d\n",
			i+1, r.Model, r.Rating, r.GamesPlayed, r.Wins, r.Losses, r.Draws)
	}
	return nil
}
