package llm

import (
	"context"
	"encoding/json"
	"testing"
)

func TestPotOddsCalculator(t *testing.T) {
	t.Parallel()
	tool := PotOddsCalculator()
	args, _ := json.Marshal(potOddsArgs{PotSize: 300, BetToCall: 100})
	raw, err := tool.Fn(context.Background(), args)
	if err != nil {
		t.Fatalf("Fn: %v", err)
	}

	var result potOddsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if result.PotOddsPercentage != 25.0 {
		t.Errorf("pot_odds_percentage = %v, want 25.0", result.PotOddsPercentage)
	}
	if result.PotOddsRatio != "3.0:1" {
		t.Errorf("pot_odds_ratio = %q, want \"3.0:1\"", result.PotOddsRatio)
	}
	if result.BreakEvenEquity != 25.0 {
		t.Errorf("break_even_equity = %v, want 25.0", result.BreakEvenEquity)
	}
}

func TestPotOddsCalculatorNoBet(t *testing.T) {
	t.Parallel()
	tool := PotOddsCalculator()
	args, _ := json.Marshal(potOddsArgs{PotSize: 300, BetToCall: 0})
	raw, err := tool.Fn(context.Background(), args)
	if err != nil {
		t.Fatalf("Fn: %v", err)
	}
	var result potOddsResult
	_ = json.Unmarshal(raw, &result)
	if result.PotOddsPercentage != 0 {
		t.Errorf("expected 0%% pot odds with no bet to call, got %v", result.PotOddsPercentage)
	}
}

func TestEquityCalculatorDeterministic(t *testing.T) {
	t.Parallel()
	tool := EquityCalculator()
	args, _ := json.Marshal(equityArgs{HoleCards: "AsAh", CommunityCards: "", NumOpponents: 2})

	raw1, err := tool.Fn(context.Background(), args)
	if err != nil {
		t.Fatalf("Fn: %v", err)
	}
	raw2, err := tool.Fn(context.Background(), args)
	if err != nil {
		t.Fatalf("Fn: %v", err)
	}

	var r1, r2 equityResult
	_ = json.Unmarshal(raw1, &r1)
	_ = json.Unmarshal(raw2, &r2)
	if r1.EquityPercentage != r2.EquityPercentage {
		t.Errorf("expected deterministic equity for identical inputs, got %v and %v", r1.EquityPercentage, r2.EquityPercentage)
	}
	if r1.EquityPercentage < 60 {
		t.Errorf("pocket aces heads-up equity should be well above 60%%, got %v", r1.EquityPercentage)
	}
	if r1.Opponents != 2 {
		t.Errorf("opponents = %d, want 2", r1.Opponents)
	}
}

func TestEquityCalculatorClampsOpponents(t *testing.T) {
	t.Parallel()
	tool := EquityCalculator()
	args, _ := json.Marshal(equityArgs{HoleCards: "AsKs", CommunityCards: "", NumOpponents: 99})
	raw, err := tool.Fn(context.Background(), args)
	if err != nil {
		t.Fatalf("Fn: %v", err)
	}
	var result equityResult
	_ = json.Unmarshal(raw, &result)
	if result.Opponents != 5 {
		t.Errorf("expected num_opponents clamped to 5, got %d", result.Opponents)
	}
}

func TestExpandHoleCardsNotation(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"AsKh": "AsKh",
		"AKs":  "AsKs",
		"AKo":  "AsKh",
	}
	for in, want := range cases {
		got, err := expandHoleCards(in)
		if err != nil {
			t.Fatalf("expandHoleCards(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("expandHoleCards(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	t.Parallel()
	r := NewRegistry(PotOddsCalculator())
	raw := r.Call(context.Background(), "nonexistent", json.RawMessage(`{}`))
	var e toolError
	if err := json.Unmarshal(raw, &e); err != nil || e.Error == "" {
		t.Fatalf("expected a structured error for unknown tool, got %s", raw)
	}
}
