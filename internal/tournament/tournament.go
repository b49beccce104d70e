// Package tournament implements the tournament driver (spec.md component
// C4): heads-up matches, round robin, and full-table freeze-out, each
// built atop one engine.Hand per hand played, with stacks and button
// position carried forward by the driver between hands.
//
// Grounded on internal/regression/heads_up.go for the button-rotation and
// stack-carry-over shape, and internal/server/pool.go's matchTrigger/
// sync.WaitGroup bounded-worker idiom (here reshaped into a semaphore
// channel) for round-robin's bounded parallelism.
package tournament

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/lox/pokerforbots-arena/internal/engine"
	"github.com/lox/pokerforbots-arena/internal/model"
	"github.com/lox/pokerforbots-arena/internal/stats"
)

// Entrant pairs a model identifier with the decision pipeline that plays
// on its behalf. Any engine.Decider works here, so tests can supply
// scripted deciders instead of a live LLM pipeline.
type Entrant struct {
	Model   string
	Decider engine.Decider
}

// MatchConfig parameterizes one heads-up match or round-robin pairing.
type MatchConfig struct {
	Hands         int
	StartingStack int
	Schedule      BlindSchedule
	Seed          int64
	Logger        zerolog.Logger

	// Stats, if set, is fed every hand's decision log so the CLI play
	// commands can report per-model VPIP/PFR after the run. Optional: nil
	// skips tracking entirely.
	Stats *stats.Tracker
}

func (c MatchConfig) rngFor(offset int64) *rand.Rand {
	return rand.New(rand.NewSource(c.Seed + offset))
}

// RunHeadsUp plays a heads-up match between exactly two entrants: stacks
// carry forward between hands, the button alternates seat 0/seat 1 each
// hand (the button posts the small blind heads-up, per spec.md section
// 4.3), and the match ends at Hands hands or as soon as one stack is
// busted, per spec.md section 4.4.
func RunHeadsUp(ctx context.Context, a, b Entrant, cfg MatchConfig) (*model.MatchResult, error) {
	entrants := []Entrant{a, b}
	stacks := []int{cfg.StartingStack, cfg.StartingStack}
	button := 0

	result := &model.MatchResult{Status: model.MatchRunning}

	handNumber := 0
	for handNumber < cfg.Hands {
		if stacks[0] <= 0 || stacks[1] <= 0 {
			break
		}
		handNumber++

		select {
		case <-ctx.Done():
			result.Status = model.MatchCancelled
			return finishHeadsUp(result, entrants, stacks, handNumber-1, cfg.StartingStack), ctx.Err()
		default:
		}

		sb, bb, ante, _ := cfg.Schedule.Level(handNumber)
		seats := []engine.SeatConfig{
			{Index: 0, Model: entrants[0].Model, StartingStack: stacks[0]},
			{Index: 1, Model: entrants[1].Model, StartingStack: stacks[1]},
		}
		deciders := []engine.Decider{entrants[0].Decider, entrants[1].Decider}

		h, err := engine.New(cfg.rngFor(int64(handNumber)), seats, button, sb, bb, ante, deciders, nil)
		if err != nil {
			return nil, fmt.Errorf("tournament: hand %d: %w", handNumber, err)
		}
		res, err := h.Run(ctx)
		if err != nil {
			result.Status = model.MatchFailed
			return result, fmt.Errorf("tournament: hand %d: %w", handNumber, err)
		}

		stacks = res.FinalStacks
		result.HandsPlayed++
		accumulateTokensAndCost(result, res)
		if cfg.Stats != nil {
			cfg.Stats.RecordHand([]string{entrants[0].Model, entrants[1].Model}, res.DecisionLog)
		}

		button = (button + 1) % 2
	}

	return finishHeadsUp(result, entrants, stacks, handNumber, cfg.StartingStack), nil
}

func finishHeadsUp(result *model.MatchResult, entrants []Entrant, stacks []int, handsPlayed, startingStack int) *model.MatchResult {
	if result.Status == model.MatchRunning {
		result.Status = model.MatchCompleted
	}
	result.HandsPlayed = handsPlayed
	result.Seats = []model.SeatResult{
		{Model: entrants[0].Model, FinalStack: stacks[0], Profit: stacks[0] - startingStack},
		{Model: entrants[1].Model, FinalStack: stacks[1], Profit: stacks[1] - startingStack},
	}
	switch {
	case stacks[0] > stacks[1]:
		result.Seats[0].FinishingPosition = 1
		result.Seats[1].FinishingPosition = 2
		result.WinnerModel = entrants[0].Model
	case stacks[1] > stacks[0]:
		result.Seats[0].FinishingPosition = 2
		result.Seats[1].FinishingPosition = 1
		result.WinnerModel = entrants[1].Model
	default:
		result.Seats[0].FinishingPosition = 1
		result.Seats[1].FinishingPosition = 1
	}
	return result
}

func accumulateTokensAndCost(result *model.MatchResult, res *engine.Result) {
	for _, entry := range res.DecisionLog {
		result.TotalTokens += entry.Outcome.TotalTokens
		result.TotalCost += entry.Outcome.CostEstimate
	}
}
