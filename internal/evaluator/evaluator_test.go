package evaluator

import (
	"testing"

	"github.com/lox/pokerforbots-arena/internal/deck"
)

func must(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	if err != nil {
		t.Fatalf("ParseCards(%q): %v", s, err)
	}
	return cards
}

func TestEvaluate7HandTypes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		deal string
		want int
	}{
		{"royal flush", "AsKsQsJsTs2h7c", RoyalFlushType},
		{"straight flush", "9s8s7s6s5s2h7c", StraightFlushType},
		{"four of a kind", "AsAhAdAc7s2h9c", FourOfAKindType},
		{"full house", "AsAhAdKsKh2h7c", FullHouseType},
		{"flush", "As8s5s3s2s7h9c", FlushType},
		{"straight", "9s8h7d6c5s2h3c", StraightType},
		{"three of a kind", "AsAhAd7s2h9c4d", ThreeOfAKindType},
		{"two pair", "AsAh7s7h2h9c4d", TwoPairType},
		{"one pair", "AsAh7s2h9c4d6s", OnePairType},
		{"high card", "As7s2h9c4d6sJh", HighCardType},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			cards := must(t, c.deal)
			rank := Evaluate7(cards)
			if got := rank.Type(); got != c.want {
				t.Fatalf("Evaluate7(%q).Type() = %d (%s), want %d", c.deal, got, rank.String(), c.want)
			}
		})
	}
}

func TestHandRankCompareOrdering(t *testing.T) {
	t.Parallel()
	royal := Evaluate7(must(t, "AsKsQsJsTs2h7c"))
	quads := Evaluate7(must(t, "AsAhAdAc7s2h9c"))
	highCard := Evaluate7(must(t, "As7s2h9c4d6sJh"))

	if royal.Compare(quads) <= 0 {
		t.Fatalf("expected royal flush to beat four of a kind: royal=%v quads=%v", royal, quads)
	}
	if quads.Compare(highCard) <= 0 {
		t.Fatalf("expected four of a kind to beat high card: quads=%v highCard=%v", quads, highCard)
	}
	if royal.Compare(royal) != 0 {
		t.Fatalf("expected a hand to compare equal to itself")
	}
}

func TestHandRankHigherPairBeatsLowerPair(t *testing.T) {
	t.Parallel()
	acesUp := Evaluate7(must(t, "AsAh7s2h9c4d6s"))
	twosUp := Evaluate7(must(t, "2s2h7s3h9c4d6s"))

	if acesUp.Compare(twosUp) <= 0 {
		t.Fatalf("expected a pair of aces to beat a pair of twos: aces=%v twos=%v", acesUp, twosUp)
	}
	if acesUp.PairRank() != int(deck.Ace) {
		t.Fatalf("PairRank() = %d, want %d (Ace)", acesUp.PairRank(), int(deck.Ace))
	}
}

func TestEvaluate7PanicsOnWrongCardCount(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Evaluate7 to panic on a non-7-card hand")
		}
	}()
	Evaluate7(must(t, "AsKsQsJsTs"))
}
