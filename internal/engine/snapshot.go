package engine

import (
	"github.com/lox/pokerforbots-arena/internal/model"
)

// Snapshot renders the hand's current state from the point of view of
// seat: its own hole cards are visible, everyone else's are hidden. This
// is the externally-visible contract of spec.md section 6 - field names
// and shape must match model.Snapshot exactly, since it is serialized
// directly into the prompt an agent sees.
func (h *Hand) Snapshot(seat int) model.Snapshot {
	players := make([]model.PlayerView, len(h.seats))
	for i, s := range h.seats {
		pv := model.PlayerView{
			PlayerIndex: i,
			ModelName:   s.Model,
			Stack:       h.stacks[i],
			IsActive:    h.status[i] != Folded,
			CurrentBet:  h.committedStreet[i],
		}
		if i == seat {
			pv.HoleCards = h.hole[i].String()
		}
		players[i] = pv
	}

	legal := h.legalActionsFor(seat)
	toCall := h.currentBet - h.committedStreet[seat]
	if toCall < 0 {
		toCall = 0
	}

	snap := model.Snapshot{
		Pot:                h.pot,
		CommunityCards:     h.board.String(),
		Street:             h.street.String(),
		CurrentPlayerIndex: seat,
		Players:            players,
		BettingHistory:     append([]model.BettingHistoryEntry(nil), h.history...),
		LegalActions:       legalActionsView(legal),
		AmountToCall:       toCall,
	}
	if legal.CanRaise {
		min, max := legal.MinRaiseTo, legal.MaxRaiseTo
		snap.MinRaise = &min
		snap.MaxRaise = &max
	}
	return snap
}
