package engine

import "github.com/lox/pokerforbots-arena/internal/action"

// legalActionsFor computes the LegalActions set for seat under the
// current street's betting state.
//
// min_raise_to/max_raise_to follow spec.md section 4.3 directly:
// min_raise_to >= current_bet + last_full_raise_size (clamped down to
// max_raise_to when the seat can't actually post a full raise). The
// reopenedForRaise gate is the fix for the teacher's BettingRound, which
// tracked only a single raise-size field and so let a seat who had
// already called re-raise after a short all-in raise that wasn't big
// enough to legally reopen the betting.
func (h *Hand) legalActionsFor(seat int) action.LegalActions {
	toCall := h.currentBet - h.committedStreet[seat]
	stack := h.stacks[seat]

	legal := action.LegalActions{CanFold: true}

	if toCall <= 0 {
		legal.CanCheck = true
		if stack > 0 {
			maxRaiseTo := h.committedStreet[seat] + stack
			if maxRaiseTo > h.currentBet {
				minRaiseTo := h.currentBet + h.lastFullRaiseSize
				if minRaiseTo > maxRaiseTo {
					minRaiseTo = maxRaiseTo
				}
				legal.CanRaise = true
				legal.MinRaiseTo = minRaiseTo
				legal.MaxRaiseTo = maxRaiseTo
			}
		}
		return legal
	}

	legal.CanCall = true
	if stack <= toCall {
		// All-in call for less than the full amount owed.
		legal.CallAmount = h.committedStreet[seat] + stack
		return legal
	}
	legal.CallAmount = h.currentBet

	remainder := stack - toCall
	if remainder > 0 && h.reopenedForRaise(seat) {
		maxRaiseTo := h.committedStreet[seat] + stack
		minRaiseTo := h.currentBet + h.lastFullRaiseSize
		if minRaiseTo > maxRaiseTo {
			minRaiseTo = maxRaiseTo
		}
		legal.CanRaise = true
		legal.MinRaiseTo = minRaiseTo
		legal.MaxRaiseTo = maxRaiseTo
	}
	return legal
}

// reopenedForRaise reports whether seat is permitted to raise when
// facing a bet: always true unless the outstanding bet is an incomplete
// (under-minimum) all-in raise and seat has already acted this street,
// in which case seat may only call or fold.
func (h *Hand) reopenedForRaise(seat int) bool {
	if h.lastRaiseFull {
		return true
	}
	return !h.actedThisStreet[seat]
}

// apply applies act to seat, validating it against the seat's legal
// actions and substituting the safe default if it turns out illegal.
// Returns the action actually applied (which may differ from act).
func (h *Hand) apply(seat int, act action.Action) action.Action {
	legal := h.legalActionsFor(seat)
	if !isLegal(act, legal) {
		act = safeDefault(legal)
	}

	switch act.Type {
	case action.Fold:
		h.status[seat] = Folded
		h.actedThisStreet[seat] = true

	case action.Check:
		h.actedThisStreet[seat] = true

	case action.Call:
		toCall := h.currentBet - h.committedStreet[seat]
		delta := toCall
		if h.stacks[seat] < delta {
			delta = h.stacks[seat]
		}
		h.commit(seat, delta)
		h.actedThisStreet[seat] = true

	case action.RaiseTo:
		target := act.Amount
		delta := target - h.committedStreet[seat]
		if delta > h.stacks[seat] {
			delta = h.stacks[seat]
		}
		raiseIncrement := (h.committedStreet[seat] + delta) - h.currentBet
		full := raiseIncrement >= h.lastFullRaiseSize

		h.commit(seat, delta)
		h.currentBet = h.committedStreet[seat]

		if full {
			h.lastFullRaiseSize = raiseIncrement
			h.lastRaiseFull = true
			for i := range h.status {
				if i != seat && h.status[i] == Live {
					h.actedThisStreet[i] = false
				}
			}
		} else {
			h.lastRaiseFull = false
		}
		h.actedThisStreet[seat] = true
	}

	if h.stacks[seat] == 0 && h.status[seat] == Live {
		h.status[seat] = AllIn
	}
	return act
}

func (h *Hand) commit(seat, delta int) {
	if delta <= 0 {
		return
	}
	h.stacks[seat] -= delta
	h.committedStreet[seat] += delta
	h.committedTotal[seat] += delta
	h.pot += delta
}

func isLegal(act action.Action, legal action.LegalActions) bool {
	switch act.Type {
	case action.Fold:
		return legal.CanFold
	case action.Check:
		return legal.CanCheck
	case action.Call:
		return legal.CanCall && act.Amount == legal.CallAmount
	case action.RaiseTo:
		return legal.CanRaise && act.Amount >= legal.MinRaiseTo && act.Amount <= legal.MaxRaiseTo
	default:
		return false
	}
}

func safeDefault(legal action.LegalActions) action.Action {
	if legal.CanCheck {
		return action.Action{Type: action.Check}
	}
	if legal.CanCall {
		return action.Action{Type: action.Call, Amount: legal.CallAmount}
	}
	return action.Action{Type: action.Fold}
}

// nextActionableSeat finds the next seat after from (wrapping) that is
// Live and still needs to act this street: either its commitment
// doesn't match the current bet, or it hasn't acted yet. Returns -1 if
// no such seat exists. Also used to find a street's first actor, since
// at the start of a street every Live seat trivially "needs to act".
func (h *Hand) nextActionableSeat(from int) int {
	n := len(h.status)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if h.status[idx] != Live {
			continue
		}
		if h.committedStreet[idx] != h.currentBet || !h.actedThisStreet[idx] {
			return idx
		}
	}
	return -1
}

