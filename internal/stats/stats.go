// Package stats tracks per-model session aggregates - hands seen, VPIP
// (voluntarily put money in pot), and PFR (pre-flop raise) - printed after
// each CLI command that plays hands (hand, heads-up, round-robin,
// full-table). This is a supplemented feature (SPEC_FULL.md section 9):
// spec.md's Non-goals exclude opponent modeling, but read-only
// descriptive session aggregates are not player modeling and round out a
// complete arena.
//
// Grounded on internal/statistics/statistics.go's running-sum struct
// shape (Hands/SumBB/SumBB2 with Mean/Variance accessors), generalized
// from "per-hand net BB" to "per-model VPIP/PFR counts".
package stats

import (
	"sync"

	"github.com/lox/pokerforbots-arena/internal/engine"
)

// ModelStats accumulates one model's activity across every hand it has
// played in a session.
type ModelStats struct {
	Hands           int
	VoluntaryPreflop int // hand-limp/call/raise preflop without a forced blind
	PreflopRaises   int
}

// HandsSeen is Hands, the count the CLI prints as "hands=".
func (s ModelStats) HandsSeen() int { return s.Hands }

// VPIP returns the voluntarily-put-money-in-pot percentage.
func (s ModelStats) VPIP() float64 {
	if s.Hands == 0 {
		return 0
	}
	return 100 * float64(s.VoluntaryPreflop) / float64(s.Hands)
}

// PFR returns the pre-flop-raise percentage.
func (s ModelStats) PFR() float64 {
	if s.Hands == 0 {
		return 0
	}
	return 100 * float64(s.PreflopRaises) / float64(s.Hands)
}

// Tracker aggregates ModelStats across many hands, keyed by model name.
// Safe for concurrent use: round-robin runs several matches in parallel,
// each feeding the same tracker.
type Tracker struct {
	mu      sync.Mutex
	byModel map[string]*ModelStats
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{byModel: make(map[string]*ModelStats)}
}

// Get returns a model's current aggregate (the zero value if unseen).
func (t *Tracker) Get(model string) ModelStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.byModel[model]; ok {
		return *s
	}
	return ModelStats{}
}

// All returns every tracked model's aggregate, unordered; callers sort
// for display.
func (t *Tracker) All() map[string]ModelStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]ModelStats, len(t.byModel))
	for k, v := range t.byModel {
		out[k] = *v
	}
	return out
}

// RecordHand folds one hand's decision log into the tracker: every seat
// that appears is credited a hand played, and preflop voluntary/raise
// actions are credited per spec.md's VPIP/PFR definitions.
func (t *Tracker) RecordHand(seatModels []string, log []engine.DecisionLogEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	seen := make(map[string]bool, len(seatModels))
	for _, m := range seatModels {
		if !seen[m] {
			seen[m] = true
			t.entry(m).Hands++
		}
	}

	voluntary := make(map[string]bool)
	raised := make(map[string]bool)
	for _, e := range log {
		if e.Street != engine.Preflop {
			continue
		}
		m := seatModels[e.Seat]
		switch e.Outcome.ActionType {
		case "call", "raise":
			voluntary[m] = true
		}
		if e.Outcome.ActionType == "raise" {
			raised[m] = true
		}
	}
	for m := range voluntary {
		t.entry(m).VoluntaryPreflop++
	}
	for m := range raised {
		t.entry(m).PreflopRaises++
	}
}

func (t *Tracker) entry(model string) *ModelStats {
	s, ok := t.byModel[model]
	if !ok {
		s = &ModelStats{}
		t.byModel[model] = s
	}
	return s
}
