package agent

import (
	"encoding/json"
	"fmt"

	"github.com/lox/pokerforbots-arena/internal/model"
)

func systemPrompt() string {
	return "You are a No-Limit Texas Hold'em player. Read the game state and respond " +
		"with exactly one action: fold, check, call, or raise to <amount>. " +
		"You may call pot_odds_calculator or equity_calculator first if it helps, " +
		"but your final reply must be a single plain-text action."
}

func userPrompt(snap model.Snapshot) string {
	body, _ := json.MarshalIndent(snap, "", "  ")
	return fmt.Sprintf("Game state:\n%s\n\nWhat is your action?", string(body))
}

func clarificationPrompt() string {
	return "That wasn't a recognized action. Reply with exactly one of: fold, check, " +
		"call, or raise to <amount>, using one of the legal actions listed above."
}
