// Package action extracts a legal poker action from free-form LLM text.
//
// The parser is an ordered list of compiled patterns walked linearly, first
// match wins, the same shape as AkatukiSora-vrc-vrpoker-stats's log parser:
// a package-level var block of regexp.MustCompile patterns, checked in a
// fixed, test-locked order. Order matters: amount-bearing patterns must be
// tried before bare-word patterns, and all-in before both, or "go all in"
// would be swallowed by the numeric raise branch.
package action

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type identifies the kind of action a LegalActions set offers or a parse
// resolves to.
type Type int

const (
	Fold Type = iota
	Check
	Call
	RaiseTo
)

func (t Type) String() string {
	switch t {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case RaiseTo:
		return "raise"
	default:
		return "unknown"
	}
}

// Action is a concrete, fully-resolved decision: a type and, for Call and
// RaiseTo, a total chip amount (never a delta).
type Action struct {
	Type   Type
	Amount int
}

// LegalActions is the set of actions available to the seat to act, with
// concrete amounts, mirroring spec.md's LegalAction contract.
type LegalActions struct {
	CanFold      bool
	CanCheck     bool
	CanCall      bool
	CallAmount   int
	CanRaise     bool
	MinRaiseTo   int
	MaxRaiseTo   int
}

// Clamp pins a proposed raise-to amount into [MinRaiseTo, MaxRaiseTo].
// Idempotent: Clamp(Clamp(n)) == Clamp(n).
func (l LegalActions) Clamp(amount int) int {
	if amount < l.MinRaiseTo {
		return l.MinRaiseTo
	}
	if amount > l.MaxRaiseTo {
		return l.MaxRaiseTo
	}
	return amount
}

// Result is the outcome of parsing one piece of agent text.
type Result struct {
	Action  Action
	OK      bool   // false if no pattern matched and a default was substituted
	Error   string // set when OK is false
	Default bool   // true if Action came from the safe-default fallback, not a match
}

var (
	reAllIn = regexp.MustCompile(`(?i)\ball[\s-]?in\b`)

	// "raise to 400", "raise 400", "bet 400"; amount may use ',' separators
	// and may be altogether absent ("raise" with no number).
	reRaiseAmount = regexp.MustCompile(`(?i)\b(?:raise(?:\s+to)?|bet)\s*\$?([\d,]+)\b`)
	reRaiseBare   = regexp.MustCompile(`(?i)\b(?:raise|bet)\b`)

	reFold  = regexp.MustCompile(`(?i)\bfold\b`)
	reCheck = regexp.MustCompile(`(?i)\bcheck\b`)
	reCall  = regexp.MustCompile(`(?i)\bcall\b`)
)

// Parse extracts a legal action from raw agent text T against the legal
// actions set L, following spec.md section 4.1's ordered algorithm exactly.
func Parse(text string, legal LegalActions) Result {
	if reAllIn.MatchString(text) {
		if legal.CanRaise {
			return Result{Action: Action{Type: RaiseTo, Amount: legal.MaxRaiseTo}, OK: true}
		}
		if legal.CanCall {
			return Result{Action: Action{Type: Call, Amount: legal.CallAmount}, OK: true}
		}
		// Neither legal (e.g. already all-in covered) - fall through to
		// the remaining patterns rather than failing outright.
	}

	if m := reRaiseAmount.FindStringSubmatch(text); m != nil {
		amount, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if legal.CanRaise {
			if err != nil {
				return Result{Action: Action{Type: RaiseTo, Amount: legal.MinRaiseTo}, OK: true}
			}
			return Result{Action: Action{Type: RaiseTo, Amount: legal.Clamp(amount)}, OK: true}
		}
		if legal.CanCall {
			return Result{Action: Action{Type: Call, Amount: legal.CallAmount}, OK: true}
		}
		// Raise requested, not legal, and no call to downgrade to: fall
		// through to bare-word matching below (the text may also contain
		// "fold").
	}

	if reFold.MatchString(text) {
		if legal.CanFold {
			return Result{Action: Action{Type: Fold}, OK: true}
		}
	}

	if reCheck.MatchString(text) {
		if legal.CanCheck {
			return Result{Action: Action{Type: Check}, OK: true}
		}
		if legal.CanCall {
			// check -> call downgrade: the model tried to check into a bet.
			return Result{Action: Action{Type: Call, Amount: legal.CallAmount}, OK: true}
		}
	}

	if reCall.MatchString(text) {
		if legal.CanCall {
			return Result{Action: Action{Type: Call, Amount: legal.CallAmount}, OK: true}
		}
		if legal.CanCheck {
			// call -> check downgrade: nothing to call, treat as a check.
			return Result{Action: Action{Type: Check}, OK: true}
		}
	}

	if reRaiseBare.MatchString(text) {
		if legal.CanRaise {
			return Result{Action: Action{Type: RaiseTo, Amount: legal.MinRaiseTo}, OK: true}
		}
		if legal.CanCall {
			return Result{Action: Action{Type: Call, Amount: legal.CallAmount}, OK: true}
		}
	}

	return Result{Action: defaultAction(legal), OK: false, Error: "unrecognized", Default: true}
}

// defaultAction is the safe fallback when no pattern matches: Check if
// legal, else Fold.
func defaultAction(legal LegalActions) Action {
	if legal.CanCheck {
		return Action{Type: Check}
	}
	return Action{Type: Fold}
}

// Describe renders an action for logging/display, e.g. "raise to 400".
func (a Action) Describe() string {
	switch a.Type {
	case RaiseTo:
		return fmt.Sprintf("raise to %d", a.Amount)
	case Call:
		return fmt.Sprintf("call %d", a.Amount)
	default:
		return a.Type.String()
	}
}
