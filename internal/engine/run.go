package engine

import (
	"context"

	"github.com/lox/pokerforbots-arena/internal/action"
	"github.com/lox/pokerforbots-arena/internal/model"
	"github.com/lox/pokerforbots-arena/poker"
)

// Result is the outcome of a completed hand.
type Result struct {
	Awards          []poker.PotAward
	FinalStacks     []int
	Committed       []int
	Status          []Status
	Board           poker.Hand
	DecisionLog     []DecisionLogEntry
	UncontestedWin  bool
}

// Run plays the hand to completion: dealing, blinds/antes, betting rounds
// street by street, and showdown or uncontested award. It calls ctx's
// deadline/cancellation through to each Decider.Decide, but does not
// itself enforce a timeout - that is the agent pipeline's job (spec.md
// section 4.2's per-decision timeout).
func (h *Hand) Run(ctx context.Context) (*Result, error) {
	h.dealHole()
	h.postBlindsAntes()
	h.street = Preflop

	streets := []Street{Preflop, Flop, Turn, River}
	for _, st := range streets {
		h.street = st

		if st == Preflop {
			h.actor = h.nextActionableSeat(func() int {
				n := len(h.seats)
				if n == 2 {
					return (h.button + 1) % n // bbPos, heads-up
				}
				return (h.button + 2) % n // bbPos, 3+ handed
			}())
		} else {
			h.dealStreetCards(st)
			h.resetStreetState()
			if h.countNonFolded() > 1 {
				h.actor = h.nextActionableSeat(h.button)
			}
		}

		if h.countNonFolded() <= 1 {
			break
		}
		if h.liveActionable() >= 2 && h.actor != -1 {
			if err := h.runBettingRound(ctx); err != nil {
				return nil, err
			}
		}
		if h.countNonFolded() <= 1 {
			break
		}
	}

	h.street = Complete
	return h.award(), nil
}

func (h *Hand) resetStreetState() {
	h.currentBet = 0
	h.lastFullRaiseSize = h.big
	h.lastRaiseFull = true
	for i := range h.committedStreet {
		h.committedStreet[i] = 0
	}
	for i := range h.actedThisStreet {
		h.actedThisStreet[i] = false
	}
}

func (h *Hand) dealStreetCards(st Street) {
	var n int
	switch st {
	case Flop:
		n = 3
	case Turn, River:
		n = 1
	}
	for _, c := range h.deck.Deal(n) {
		h.board.AddCard(c)
	}
}

func (h *Hand) runBettingRound(ctx context.Context) error {
	for {
		if h.liveActionable() <= 1 {
			return nil
		}
		seat := h.actor
		snap := h.Snapshot(seat)
		legal := h.legalActionsFor(seat)

		outcome := h.deciders[seat].Decide(ctx, snap, legal)
		applied := h.apply(seat, outcome.Action)

		h.decisionLog = append(h.decisionLog, DecisionLogEntry{Seat: seat, Street: h.street, Outcome: outcome})
		h.history = append(h.history, model.BettingHistoryEntry{
			Player: seat,
			Model:  h.seats[seat].Model,
			Action: applied.Type.String(),
			Amount: applied.Amount,
			Street: h.street.String(),
		})

		if h.countNonFolded() <= 1 {
			return nil
		}

		next := h.nextActionableSeat(seat)
		if next == -1 {
			return nil
		}
		h.actor = next
	}
}

func (h *Hand) award() *Result {
	res := &Result{
		FinalStacks: h.Stacks(),
		Committed:   h.Committed(),
		Status:      append([]Status(nil), h.status...),
		Board:       h.board,
		DecisionLog: h.decisionLog,
	}

	if lone := h.soleNonFolded(); h.countNonFolded() == 1 {
		res.UncontestedWin = true
		total := 0
		for _, t := range h.committedTotal {
			total += t
		}
		res.FinalStacks[lone] += total
		res.Awards = []poker.PotAward{{Seat: lone, Amount: total}}
		return res
	}

	contributions := make([]poker.Contribution, len(h.seats))
	for i := range h.seats {
		contributions[i] = poker.Contribution{
			Seat:      i,
			Total:     h.committedTotal[i],
			Folded:    h.status[i] == Folded,
			HoleCards: h.hole[i],
		}
	}
	res.Awards = poker.AwardPots(contributions, h.board)
	for _, a := range res.Awards {
		res.FinalStacks[a.Seat] += a.Amount
	}
	return res
}

// legalActionsView renders a seat's legal actions in the snapshot wire
// format; it is the package-internal helper used when building a Snapshot.
func legalActionsView(legal action.LegalActions) []model.LegalActionView {
	return model.ToLegalActionViews(legal)
}
