package tournament

import "sort"

// Standing is one model's aggregated net profit across every round-robin
// match it played, per spec.md section 4.4 ("aggregated into standings by
// net profit").
type Standing struct {
	Model      string
	NetProfit  int
	Matches    int
	Wins       int
	Losses     int
	Draws      int
}

// Standings aggregates a round robin's pair results into per-model
// standings, sorted by net profit descending.
func Standings(results []PairResult) []Standing {
	byModel := make(map[string]*Standing)
	get := func(m string) *Standing {
		if s, ok := byModel[m]; ok {
			return s
		}
		s := &Standing{Model: m}
		byModel[m] = s
		return s
	}

	for _, pr := range results {
		if pr.Result == nil {
			continue
		}
		sa, sb := get(pr.A), get(pr.B)
		sa.Matches++
		sb.Matches++
		for _, seat := range pr.Result.Seats {
			switch seat.Model {
			case pr.A:
				sa.NetProfit += seat.Profit
			case pr.B:
				sb.NetProfit += seat.Profit
			}
		}
		switch pr.Result.WinnerModel {
		case pr.A:
			sa.Wins++
			sb.Losses++
		case pr.B:
			sb.Wins++
			sa.Losses++
		default:
			sa.Draws++
			sb.Draws++
		}
	}

	out := make([]Standing, 0, len(byModel))
	for _, s := range byModel {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NetProfit != out[j].NetProfit {
			return out[i].NetProfit > out[j].NetProfit
		}
		return out[i].Model < out[j].Model
	})
	return out
}
