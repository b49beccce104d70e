package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/lox/pokerforbots-arena/internal/deck"
	"github.com/lox/pokerforbots-arena/internal/evaluator"
)

const potOddsSchema = `{
	"type": "object",
	"properties": {
		"pot_size": {"type": "integer"},
		"bet_to_call": {"type": "integer"}
	},
	"required": ["pot_size", "bet_to_call"]
}`

const equitySchema = `{
	"type": "object",
	"properties": {
		"hole_cards": {"type": "string"},
		"community_cards": {"type": "string"},
		"num_opponents": {"type": "integer"}
	},
	"required": ["hole_cards", "num_opponents"]
}`

type potOddsArgs struct {
	PotSize   int `json:"pot_size"`
	BetToCall int `json:"bet_to_call"`
}

type potOddsResult struct {
	PotOddsPercentage float64 `json:"pot_odds_percentage"`
	PotOddsRatio      string  `json:"pot_odds_ratio"`
	BreakEvenEquity   float64 `json:"break_even_equity"`
	Recommendation    string  `json:"recommendation"`
}

// PotOddsCalculator builds the pot_odds_calculator tool: a deterministic,
// pure function of (pot_size, bet_to_call). Formula per spec.md
// section 6.
func PotOddsCalculator() Tool {
	return Tool{
		Descriptor: ToolDescriptor{
			Name:        "pot_odds_calculator",
			Description: "Computes pot odds and break-even equity for a facing bet.",
			Parameters:  json.RawMessage(potOddsSchema),
		},
		Fn: func(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
			var args potOddsArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("pot_odds_calculator: %w", err)
			}

			var pct float64
			if args.BetToCall > 0 {
				pct = 100 * float64(args.BetToCall) / float64(args.PotSize+args.BetToCall)
			}

			ratio := "0:1"
			if args.BetToCall > 0 {
				ratio = fmt.Sprintf("%.1f:1", float64(args.PotSize)/float64(args.BetToCall))
			}

			rec := fmt.Sprintf("needs at least %.1f%% equity to call profitably", pct)
			if args.BetToCall <= 0 {
				rec = "no bet to call"
			}

			result, _ := json.Marshal(potOddsResult{
				PotOddsPercentage: pct,
				PotOddsRatio:      ratio,
				BreakEvenEquity:   pct,
				Recommendation:    rec,
			})
			return result, nil
		},
	}
}

type equityArgs struct {
	HoleCards      string `json:"hole_cards"`
	CommunityCards string `json:"community_cards"`
	NumOpponents   int    `json:"num_opponents"`
}

type equityResult struct {
	EquityPercentage float64 `json:"equity_percentage"`
	WinProbability   float64 `json:"win_probability"`
	Opponents        int     `json:"opponents"`
	SampleSize       int     `json:"sample_size"`
	Confidence       string  `json:"confidence"`
	Recommendation   string  `json:"recommendation"`
}

// EquityCalculator builds the equity_calculator tool: a Monte Carlo
// estimate of win probability against a single random opponent hand,
// using the corpus's own parallel errgroup-based estimator. num_opponents
// is clamped to [1,5] and echoed in the result (and its recommendation
// text), but the simulation always deals exactly one opponent. Each call seeds
// its own *rand.Rand - no shared/global RNG, satisfying section 5's
// reentrancy requirement.
func EquityCalculator() Tool {
	return Tool{
		Descriptor: ToolDescriptor{
			Name:        "equity_calculator",
			Description: "Estimates win probability via Monte Carlo simulation against random opponent ranges.",
			Parameters:  json.RawMessage(equitySchema),
		},
		Fn: func(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
			var args equityArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("equity_calculator: %w", err)
			}

			holeStr, err := expandHoleCards(args.HoleCards)
			if err != nil {
				return nil, fmt.Errorf("equity_calculator: %w", err)
			}
			hole, err := deck.ParseCards(holeStr)
			if err != nil || len(hole) != 2 {
				return nil, fmt.Errorf("equity_calculator: invalid hole_cards %q", args.HoleCards)
			}
			board, err := deck.ParseCards(strings.TrimSpace(args.CommunityCards))
			if err != nil {
				return nil, fmt.Errorf("equity_calculator: invalid community_cards %q", args.CommunityCards)
			}

			opponents := clampInt(args.NumOpponents, 1, 5)
			sampleSize := clampInt(sampleSizeFor(len(board)), 100, 5000)

			rng := rand.New(rand.NewSource(equitySeed(args)))
			equity := evaluator.EstimateEquityParallel(hole, board, evaluator.RandomRange{}, sampleSize, rng)
			pct := equity * 100

			confidence := "low"
			switch {
			case sampleSize >= 2000:
				confidence = "high"
			case sampleSize >= 500:
				confidence = "medium"
			}

			rec := fmt.Sprintf("%.1f%% equity against %d opponent(s)", pct, opponents)

			result, _ := json.Marshal(equityResult{
				EquityPercentage: pct,
				WinProbability:   equity,
				Opponents:        opponents,
				SampleSize:       sampleSize,
				Confidence:       confidence,
				Recommendation:   rec,
			})
			return result, nil
		},
	}
}

// expandHoleCards normalizes the model-supplied hole_cards string:
// strips whitespace, and expands shorthand range notation ("AKs",
// "AKo") into a concrete two-card string using a fixed canonical
// suiting, since the equity estimator needs actual cards.
func expandHoleCards(s string) (string, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s) == 4 {
		return s, nil
	}
	if len(s) == 3 {
		r1, r2, kind := s[0], s[1], s[2]
		switch kind {
		case 's', 'S':
			return string([]byte{r1, 's', r2, 's'}), nil
		case 'o', 'O':
			return string([]byte{r1, 's', r2, 'h'}), nil
		}
	}
	return "", fmt.Errorf("unrecognized hole card notation %q", s)
}

// sampleSizeFor picks a Monte Carlo sample budget from how many board
// cards are known: fewer streets resolved means more combinatorial
// variance to average out, so preflop gets the largest budget.
func sampleSizeFor(boardCards int) int {
	switch boardCards {
	case 0:
		return 2000
	case 3:
		return 1200
	case 4:
		return 800
	default:
		return 500
	}
}

// equitySeed derives a deterministic seed from the tool call's
// arguments so repeated identical calls within a test are reproducible,
// without relying on a shared/global RNG.
func equitySeed(args equityArgs) int64 {
	h := int64(1469598103934665603)
	for _, b := range args.HoleCards + "|" + args.CommunityCards {
		h ^= int64(b)
		h *= 1099511628211
	}
	return h ^ int64(args.NumOpponents)
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
