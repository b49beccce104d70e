package tournament

import (
	"context"
	"fmt"
	"sort"

	"github.com/lox/pokerforbots-arena/internal/engine"
	"github.com/lox/pokerforbots-arena/internal/model"
)

// MaxFreezeOutHands is the hard ceiling of spec.md section 4.4: if a
// full-table freeze-out hasn't produced a single survivor by this many
// hands, remaining live players are ranked by current stack instead.
const MaxFreezeOutHands = 1000

// RunFullTable plays a single-table freeze-out among 2-8 entrants until
// one player remains, the hand ceiling is hit (cfg.Hands when it is set
// below MaxFreezeOutHands, otherwise MaxFreezeOutHands), or ctx is
// cancelled. The
// button rotates one live seat per hand, skipping eliminated seats;
// elimination order fixes finishing position (the last player eliminated
// finishes 2nd, and so on), per spec.md section 4.4.
func RunFullTable(ctx context.Context, entrants []Entrant, cfg MatchConfig) (*model.MatchResult, error) {
	n := len(entrants)
	if n < 2 || n > 8 {
		return nil, fmt.Errorf("tournament: full-table freeze-out requires 2-8 entrants, got %d", n)
	}

	stacks := make([]int, n)
	alive := make([]bool, n)
	for i := range stacks {
		stacks[i] = cfg.StartingStack
		alive[i] = true
	}

	result := &model.MatchResult{Status: model.MatchRunning}
	finishOrder := make([]int, 0, n) // seats in elimination order, earliest-eliminated first

	maxHands := MaxFreezeOutHands
	if cfg.Hands > 0 && cfg.Hands < maxHands {
		maxHands = cfg.Hands
	}

	button := 0
	handNumber := 0
	for handNumber < maxHands && countAlive(alive) > 1 {
		handNumber++

		select {
		case <-ctx.Done():
			result.Status = model.MatchCancelled
			return finishFullTable(result, entrants, stacks, alive, finishOrder, handNumber-1, cfg.StartingStack), ctx.Err()
		default:
		}

		liveIdx := liveSeatIndices(alive)
		seats := make([]engine.SeatConfig, len(liveIdx))
		deciders := make([]engine.Decider, len(liveIdx))
		for pos, seatIdx := range liveIdx {
			seats[pos] = engine.SeatConfig{Index: pos, Model: entrants[seatIdx].Model, StartingStack: stacks[seatIdx]}
			deciders[pos] = entrants[seatIdx].Decider
		}

		tableButton := indexOf(liveIdx, button)
		if tableButton == -1 {
			tableButton = 0
		}

		sb, bb, ante, _ := cfg.Schedule.Level(handNumber)
		h, err := engine.New(cfg.rngFor(int64(handNumber)), seats, tableButton, sb, bb, ante, deciders, nil)
		if err != nil {
			return nil, fmt.Errorf("tournament: hand %d: %w", handNumber, err)
		}
		res, err := h.Run(ctx)
		if err != nil {
			result.Status = model.MatchFailed
			return result, fmt.Errorf("tournament: hand %d: %w", handNumber, err)
		}

		for pos, seatIdx := range liveIdx {
			stacks[seatIdx] = res.FinalStacks[pos]
		}
		result.HandsPlayed++
		accumulateTokensAndCost(result, res)
		if cfg.Stats != nil {
			seatModels := make([]string, len(liveIdx))
			for pos, seatIdx := range liveIdx {
				seatModels[pos] = entrants[seatIdx].Model
			}
			cfg.Stats.RecordHand(seatModels, res.DecisionLog)
		}

		for _, seatIdx := range liveIdx {
			if alive[seatIdx] && stacks[seatIdx] <= 0 {
				alive[seatIdx] = false
				finishOrder = append(finishOrder, seatIdx)
			}
		}

		button = nextLiveSeat(alive, button)
	}

	return finishFullTable(result, entrants, stacks, alive, finishOrder, handNumber, cfg.StartingStack), nil
}

func finishFullTable(result *model.MatchResult, entrants []Entrant, stacks []int, alive []bool, finishOrder []int, handsPlayed, startingStack int) *model.MatchResult {
	if result.Status == model.MatchRunning {
		result.Status = model.MatchCompleted
	}
	result.HandsPlayed = handsPlayed

	n := len(entrants)
	position := make([]int, n)

	survivors := liveSeatIndices(alive)
	if len(survivors) == 1 {
		result.WinnerModel = entrants[survivors[0]].Model
		position[survivors[0]] = 1
	} else {
		// Hit the hand ceiling with more than one survivor: rank the
		// survivors by current stack, highest first, ties broken by seat
		// index for a deterministic order.
		sort.Slice(survivors, func(i, j int) bool {
			if stacks[survivors[i]] != stacks[survivors[j]] {
				return stacks[survivors[i]] > stacks[survivors[j]]
			}
			return survivors[i] < survivors[j]
		})
		for rank, seatIdx := range survivors {
			position[seatIdx] = rank + 1
		}
	}

	// finishOrder is in elimination order (earliest-eliminated first); the
	// last name eliminated finishes just behind the survivor(s).
	nextPos := len(survivors) + 1
	for i := len(finishOrder) - 1; i >= 0; i-- {
		position[finishOrder[i]] = nextPos
		nextPos++
	}

	result.Seats = make([]model.SeatResult, n)
	for i, e := range entrants {
		result.Seats[i] = model.SeatResult{
			Model:             e.Model,
			FinalStack:        stacks[i],
			Profit:            stacks[i] - startingStack,
			FinishingPosition: position[i],
		}
	}
	return result
}

func countAlive(alive []bool) int {
	n := 0
	for _, a := range alive {
		if a {
			n++
		}
	}
	return n
}

func liveSeatIndices(alive []bool) []int {
	var out []int
	for i, a := range alive {
		if a {
			out = append(out, i)
		}
	}
	return out
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

// nextLiveSeat returns the next live seat strictly after from, wrapping
// around, skipping eliminated seats.
func nextLiveSeat(alive []bool, from int) int {
	n := len(alive)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if alive[idx] {
			return idx
		}
	}
	return from
}
