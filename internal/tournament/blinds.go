package tournament

import "math"

// BlindSchedule is spec.md section 4.4's pure (hand_number) -> (sb, bb,
// ante, level) function: a geometric schedule starting at (SmallBlind,
// BigBlind) and multiplying by Multiplier every HandsPerLevel hands, with
// antes switching on at level 3 (10% of the level's big blind, scaling
// with it thereafter).
type BlindSchedule struct {
	SmallBlind    int
	BigBlind      int
	Multiplier    float64 // default 1.5
	HandsPerLevel int     // default 0 disables escalation entirely
}

// DefaultBlindSchedule returns a flat (non-escalating) schedule at the
// given starting stakes, used when a match has no escalation configured.
func DefaultBlindSchedule(smallBlind, bigBlind int) BlindSchedule {
	return BlindSchedule{SmallBlind: smallBlind, BigBlind: bigBlind, Multiplier: 1.5}
}

// Level computes the (small blind, big blind, ante, level) in effect for
// the given 1-indexed hand number. Level 1 covers hands [1, HandsPerLevel],
// level 2 the next block, and so on; level is 1-indexed to match how
// tournament levels are conventionally announced.
func (b BlindSchedule) Level(handNumber int) (sb, bb, ante, level int) {
	if b.HandsPerLevel <= 0 || handNumber < 1 {
		return b.SmallBlind, b.BigBlind, 0, 1
	}
	mult := b.Multiplier
	if mult <= 0 {
		mult = 1.5
	}

	level = 1 + (handNumber-1)/b.HandsPerLevel
	scale := math.Pow(mult, float64(level-1))

	sb = int(math.Round(float64(b.SmallBlind) * scale))
	bb = int(math.Round(float64(b.BigBlind) * scale))
	if level >= 3 {
		ante = int(math.Round(float64(bb) * 0.10))
	}
	return sb, bb, ante, level
}
