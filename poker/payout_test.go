package poker

import "testing"

func mustCards(t *testing.T, s string) Hand {
	t.Helper()
	cards, err := ParseCards(s)
	if err != nil {
		t.Fatalf("ParseCards(%q): %v", s, err)
	}
	return NewHand(cards...)
}

func TestAwardPotsUncontested(t *testing.T) {
	t.Parallel()
	contributions := []Contribution{
		{Seat: 0, Total: 15, Folded: false},
		{Seat: 1, Total: 5, Folded: true},
	}
	awards := AwardPots(contributions, 0)
	if len(awards) != 1 || awards[0].Seat != 0 || awards[0].Amount != 20 {
		t.Fatalf("expected seat 0 to win the whole pot uncontested, got %+v", awards)
	}
}

func TestAwardPotsShowdownSplit(t *testing.T) {
	t.Parallel()
	board := mustCards(t, "2h7h9cJdKs")
	contributions := []Contribution{
		{Seat: 0, Total: 100, HoleCards: mustCards(t, "AsKh")},
		{Seat: 1, Total: 100, HoleCards: mustCards(t, "AdKd")},
	}
	awards := AwardPots(contributions, board)
	if len(awards) != 2 {
		t.Fatalf("expected a tied pot split between both seats, got %+v", awards)
	}
	for _, a := range awards {
		if a.Amount != 100 {
			t.Errorf("expected each seat to receive 100, got %d for seat %d", a.Amount, a.Seat)
		}
	}
}

func TestAwardPotsSidePot(t *testing.T) {
	t.Parallel()
	board := mustCards(t, "5h7h9cJdKs")
	// Seat 0 is short-stacked all-in for 30; seats 1 and 2 both put in 100.
	contributions := []Contribution{
		{Seat: 0, Total: 30, HoleCards: mustCards(t, "AsAh")},  // best hand, wins main pot
		{Seat: 1, Total: 100, HoleCards: mustCards(t, "2c2d")}, // worst hand, wins side pot
		{Seat: 2, Total: 100, HoleCards: mustCards(t, "3c3d")},
	}
	awards := AwardPots(contributions, board)

	byS := map[int]int{}
	for _, a := range awards {
		byS[a.Seat] = a.Amount
	}
	if byS[0] != 90 { // main pot: 30*3
		t.Errorf("expected seat 0 (best hand) to win the 90-chip main pot, got %d", byS[0])
	}
	if byS[2] != 140 { // side pot: (100-30)*2 = 140, seat 2 beats seat 1
		t.Errorf("expected seat 2 to win the 140-chip side pot, got %d", byS[2])
	}
	if byS[1] != 0 {
		t.Errorf("seat 1 should win nothing, got %d", byS[1])
	}
}

func TestCardRoundTrip(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"As", "2h", "Td", "Kc"} {
		c, err := ParseCard(s)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", s, err)
		}
		if c.String() != s {
			t.Errorf("round trip failed: ParseCard(%q).String() = %q", s, c.String())
		}
	}
}
