// Package engine implements the hand engine (spec.md component C3): the
// turn-taking state machine for one hand of No-Limit Hold'em. It drives
// dealing, street transitions, legal-action generation, action
// application, and pot awarding, delegating hand comparison and side-pot
// arithmetic to the poker package (the "external hand-rules library" of
// spec.md section 1).
//
// Grounded on internal/game/hand.go, betting.go, and pot.go, rebuilt
// around the spec's LegalAction tagged-variant contract (see
// internal/action) instead of the teacher's plain Action enum, and
// extended with the last-full-raise-size tracking the teacher's
// BettingRound never had (an incomplete all-in raise must not grant
// already-acted callers a fresh chance to re-raise).
package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerforbots-arena/internal/action"
	"github.com/lox/pokerforbots-arena/internal/model"
	"github.com/lox/pokerforbots-arena/poker"
)

// Street identifies a betting round.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Complete
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return model.StreetPreflop
	case Flop:
		return model.StreetFlop
	case Turn:
		return model.StreetTurn
	case River:
		return model.StreetRiver
	default:
		return "complete"
	}
}

// Status is a seat's standing within the current hand.
type Status int

const (
	Live Status = iota
	Folded
	AllIn
)

// SeatConfig is the immutable per-seat configuration a Hand is built from.
type SeatConfig struct {
	Index          int
	Model          string
	StartingStack  int
}

// Decider is implemented by the agent decision pipeline (C2). The hand
// engine calls it once per decision point and applies the returned
// action, substituting a safe default if it turns out illegal.
type Decider interface {
	Decide(ctx context.Context, snap model.Snapshot, legal action.LegalActions) model.DecisionOutcome
}

// DecisionLogEntry records the decider's outcome for one decision, with its
// full pipeline telemetry, in action order. Outcome holds the action the
// decider returned; if that action was illegal, the action actually applied
// is the substituted default recorded in the betting history.
type DecisionLogEntry struct {
	Seat    int
	Street  Street
	Outcome model.DecisionOutcome
}

// Hand is one complete play of No-Limit Hold'em.
type Hand struct {
	seats  []SeatConfig
	small  int
	big    int
	ante   int
	button int

	rng  *rand.Rand
	deck *poker.Deck

	hole  []poker.Hand
	board poker.Hand

	street Street
	pot    int

	stacks          []int
	committedStreet []int
	committedTotal  []int
	status          []Status
	actedThisStreet []bool

	currentBet        int
	lastFullRaiseSize int
	lastRaiseFull     bool

	actor int

	history     []model.BettingHistoryEntry
	decisionLog []DecisionLogEntry

	deciders []Decider
	logger   *log.Logger
}

// New builds a Hand ready to Run. rng is consumed deterministically for
// shuffling, so tests can fix a seed and replay a hand exactly.
func New(rng *rand.Rand, seats []SeatConfig, button, smallBlind, bigBlind, ante int, deciders []Decider, logger *log.Logger) (*Hand, error) {
	n := len(seats)
	if n < 2 || n > 10 {
		return nil, fmt.Errorf("engine: hand requires 2-10 seats, got %d", n)
	}
	if len(deciders) != n {
		return nil, fmt.Errorf("engine: need one decider per seat (%d seats, %d deciders)", n, len(deciders))
	}
	if button < 0 || button >= n {
		return nil, fmt.Errorf("engine: button %d out of range for %d seats", button, n)
	}
	if logger == nil {
		logger = log.Default()
	}

	h := &Hand{
		seats:           seats,
		small:           smallBlind,
		big:             bigBlind,
		ante:            ante,
		button:          button,
		rng:             rng,
		deck:            poker.NewDeck(rng),
		hole:            make([]poker.Hand, n),
		stacks:          make([]int, n),
		committedStreet: make([]int, n),
		committedTotal:  make([]int, n),
		status:          make([]Status, n),
		actedThisStreet: make([]bool, n),
		deciders:        deciders,
		logger:          logger.WithPrefix("engine"),
	}
	for i, s := range seats {
		h.stacks[i] = s.StartingStack
	}
	return h, nil
}

// Stacks returns each seat's current remaining (uncommitted) chip count.
func (h *Hand) Stacks() []int {
	out := make([]int, len(h.stacks))
	copy(out, h.stacks)
	return out
}

// Committed returns each seat's total commitment to the pot this hand.
func (h *Hand) Committed() []int {
	out := make([]int, len(h.committedTotal))
	copy(out, h.committedTotal)
	return out
}

// DecisionLog returns the ordered log of applied decisions.
func (h *Hand) DecisionLog() []DecisionLogEntry {
	return h.decisionLog
}

func (h *Hand) dealHole() {
	for i := range h.seats {
		cards := h.deck.Deal(2)
		h.hole[i] = poker.NewHand(cards...)
	}
}

func (h *Hand) postBlindsAntes() {
	n := len(h.seats)

	for i := range h.seats {
		if h.ante <= 0 {
			break
		}
		a := min(h.ante, h.stacks[i])
		h.stacks[i] -= a
		h.committedTotal[i] += a
		h.pot += a
		if h.stacks[i] == 0 {
			h.status[i] = AllIn
		}
	}

	var sbPos, bbPos int
	if n == 2 {
		sbPos = h.button
		bbPos = (h.button + 1) % n
	} else {
		sbPos = (h.button + 1) % n
		bbPos = (h.button + 2) % n
	}

	h.postBlind(sbPos, h.small)
	h.postBlind(bbPos, h.big)

	h.currentBet = h.big
	h.lastFullRaiseSize = h.big
	h.lastRaiseFull = true
}

func (h *Hand) postBlind(seat, amount int) {
	posted := min(amount, h.stacks[seat])
	h.stacks[seat] -= posted
	h.committedStreet[seat] += posted
	h.committedTotal[seat] += posted
	h.pot += posted
	if h.stacks[seat] == 0 {
		h.status[seat] = AllIn
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// countNonFolded returns how many seats are still live or all-in (i.e.
// still eligible to win the pot).
func (h *Hand) countNonFolded() int {
	n := 0
	for _, st := range h.status {
		if st != Folded {
			n++
		}
	}
	return n
}

// liveActionable returns how many seats can still voluntarily act (live,
// not all-in).
func (h *Hand) liveActionable() int {
	n := 0
	for _, st := range h.status {
		if st == Live {
			n++
		}
	}
	return n
}

func (h *Hand) soleNonFolded() int {
	for i, st := range h.status {
		if st != Folded {
			return i
		}
	}
	return -1
}
