package poker

import "sort"

// Contribution records one seat's total chip commitment for a hand, used
// to build side pots and award them at showdown or on an uncontested fold.
type Contribution struct {
	Seat      int
	Total     int  // total chips committed to the pot this hand
	Folded    bool // true if the seat folded before showdown
	HoleCards Hand // the seat's two hole cards; ignored if Folded
}

// PotAward is the amount won by a seat from one pot (main or side).
type PotAward struct {
	Seat   int
	Amount int
}

// AwardPots splits the pot formed by contributions into main/side pots by
// commitment tier and awards each to the best eligible (non-folded) hand,
// splitting ties evenly with any odd chip going to the lowest seat index.
// board must hold exactly 5 cards unless only one seat is eligible overall
// (an uncontested fold, which needs no showdown).
//
// Grounded on internal/game/pot.go's PotManager.CalculateSidePots: tiers
// are the distinct non-folded commitment levels, each tier's pot is the
// sum, across every contributor folded or not, of their commitment within
// that tier's band.
func AwardPots(contributions []Contribution, board Hand) []PotAward {
	tiers := distinctActiveTotals(contributions)
	if len(tiers) == 0 {
		return nil
	}

	awards := map[int]int{}
	previousMax := 0
	for _, tierMax := range tiers {
		var eligible []int
		potAmount := 0
		for _, c := range contributions {
			contribution := c.Total - previousMax
			if contribution > tierMax-previousMax {
				contribution = tierMax - previousMax
			}
			if contribution > 0 {
				potAmount += contribution
			}
			if !c.Folded && c.Total > previousMax {
				eligible = append(eligible, c.Seat)
			}
		}
		if potAmount > 0 && len(eligible) > 0 {
			splitPot(awards, contributions, eligible, potAmount, board)
		}
		previousMax = tierMax
	}

	result := make([]PotAward, 0, len(awards))
	for seat, amount := range awards {
		if amount > 0 {
			result = append(result, PotAward{Seat: seat, Amount: amount})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seat < result[j].Seat })
	return result
}

func distinctActiveTotals(contributions []Contribution) []int {
	seen := map[int]bool{}
	for _, c := range contributions {
		if !c.Folded && c.Total > 0 {
			seen[c.Total] = true
		}
	}
	totals := make([]int, 0, len(seen))
	for t := range seen {
		totals = append(totals, t)
	}
	sort.Ints(totals)
	return totals
}

func splitPot(awards map[int]int, contributions []Contribution, eligible []int, potAmount int, board Hand) {
	if len(eligible) == 1 {
		awards[eligible[0]] += potAmount
		return
	}

	holeBySeat := map[int]Hand{}
	for _, c := range contributions {
		holeBySeat[c.Seat] = c.HoleCards
	}

	bestRank := HandRank(0)
	var winners []int
	for _, seat := range eligible {
		rank := Evaluate7Cards(holeBySeat[seat] | board)
		switch {
		case rank > bestRank:
			bestRank = rank
			winners = []int{seat}
		case rank == bestRank:
			winners = append(winners, seat)
		}
	}

	sort.Ints(winners)
	share := potAmount / len(winners)
	remainder := potAmount % len(winners)
	for i, seat := range winners {
		amount := share
		if i < remainder {
			amount++
		}
		awards[seat] += amount
	}
}

// Compare reports 1 if hr wins against other, -1 if it loses, 0 on a tie.
// Alias of CompareHands kept as a method for call-site symmetry with
// internal/evaluator.HandRank.Compare.
func (hr HandRank) Compare(other HandRank) int {
	return CompareHands(hr, other)
}
