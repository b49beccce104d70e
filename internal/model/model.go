// Package model holds the data shared across the hand engine, the agent
// decision pipeline, the tournament driver, and the rating service: the
// game-state snapshot handed to an agent, the decision it returns, and the
// match/rating record types. Field names on Snapshot and its nested types
// are contractual — they are serialized into the prompt the agent sees, so
// renaming one is an externally-visible interface change (spec.md section 6).
package model

import "github.com/lox/pokerforbots-arena/internal/action"

// Street names as they appear in the snapshot and in logs.
const (
	StreetPreflop = "preflop"
	StreetFlop    = "flop"
	StreetTurn    = "turn"
	StreetRiver   = "river"
)

// PlayerView is one seat's entry in a Snapshot's players list.
type PlayerView struct {
	PlayerIndex int    `json:"player_index"`
	ModelName   string `json:"model_name"`
	Stack       int    `json:"stack"`
	HoleCards   string `json:"hole_cards,omitempty"` // only populated for the acting seat
	IsActive    bool   `json:"is_active"`
	CurrentBet  int    `json:"current_bet"`
}

// BettingHistoryEntry is one logged action in a Snapshot's betting_history.
type BettingHistoryEntry struct {
	Player int    `json:"player"`
	Model  string `json:"model"`
	Action string `json:"action"` // "fold" | "check" | "call" | "raise"
	Amount int    `json:"amount"`
	Street string `json:"street"`
}

// LegalActionView is one entry in a Snapshot's legal_actions list.
type LegalActionView struct {
	ActionType string `json:"action_type"`
	Amount     *int   `json:"amount,omitempty"`
	MinRaise   *int   `json:"min_raise,omitempty"`
	MaxRaise   *int   `json:"max_raise,omitempty"`
}

// Snapshot is the game-state record handed to an agent at its decision
// point. Every field name here is part of the external interface in
// spec.md section 6.
type Snapshot struct {
	Pot                 int                   `json:"pot"`
	CommunityCards      string                `json:"community_cards"`
	Street              string                `json:"street"`
	CurrentPlayerIndex  int                   `json:"current_player_index"`
	Players             []PlayerView          `json:"players"`
	BettingHistory      []BettingHistoryEntry `json:"betting_history"`
	LegalActions        []LegalActionView     `json:"legal_actions"`
	AmountToCall        int                   `json:"amount_to_call"`
	MinRaise            *int                  `json:"min_raise"`
	MaxRaise            *int                  `json:"max_raise"`
}

// ToLegalActionViews renders action.LegalActions into the snapshot's wire
// format.
func ToLegalActionViews(legal action.LegalActions) []LegalActionView {
	var views []LegalActionView
	if legal.CanFold {
		views = append(views, LegalActionView{ActionType: "fold"})
	}
	if legal.CanCheck {
		views = append(views, LegalActionView{ActionType: "check"})
	}
	if legal.CanCall {
		amt := legal.CallAmount
		views = append(views, LegalActionView{ActionType: "call", Amount: &amt})
	}
	if legal.CanRaise {
		min, max := legal.MinRaiseTo, legal.MaxRaiseTo
		views = append(views, LegalActionView{ActionType: "raise", MinRaise: &min, MaxRaise: &max})
	}
	return views
}

// ToolCallRecord records one tool invocation made during a decision.
type ToolCallRecord struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
	Result    string `json:"result"`
}

// DecisionFlags records the pipeline path a decision took.
type DecisionFlags struct {
	ParsedOK     bool `json:"parsed_ok"`
	Clarified    bool `json:"clarified"`
	DefaultUsed  bool `json:"default_used"`
}

// DecisionOutcome is the full record of one agent decision: the action
// plus every telemetry field spec.md section 3 requires.
type DecisionOutcome struct {
	Action          action.Action    `json:"-"`
	ActionType      string           `json:"action_type"`
	Amount          int              `json:"amount"`
	RawText         string           `json:"raw_text"`
	PromptTokens    int              `json:"prompt_tokens"`
	CompletionTokens int             `json:"completion_tokens"`
	TotalTokens     int              `json:"total_tokens"`
	ElapsedMillis   int64            `json:"elapsed_ms"`
	CostEstimate    float64          `json:"cost_estimate"`
	Flags           DecisionFlags    `json:"flags"`
	ToolCalls       []ToolCallRecord `json:"tool_calls,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// SeatResult is one seat's outcome at the end of a match.
type SeatResult struct {
	Model            string `json:"model"`
	FinalStack       int    `json:"final_stack"`
	Profit           int    `json:"profit"`
	FinishingPosition int   `json:"finishing_position"`
}

// MatchStatus is the lifecycle state of a match (spec.md section 7).
type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchRunning   MatchStatus = "running"
	MatchCompleted MatchStatus = "completed"
	MatchFailed    MatchStatus = "failed"
	MatchCancelled MatchStatus = "cancelled"
)

// MatchResult aggregates the outcome of a heads-up match, round-robin pair,
// or freeze-out tournament.
type MatchResult struct {
	Status          MatchStatus  `json:"status"`
	Seats           []SeatResult `json:"seats"`
	HandsPlayed     int          `json:"hands_played"`
	TotalTokens     int          `json:"total_tokens"`
	TotalCost       float64      `json:"total_cost"`
	WinnerModel     string       `json:"winner_model,omitempty"` // empty = tie or no winner
}

// ELORating is one model's persisted rating record.
type ELORating struct {
	Model       string `json:"model"`
	Rating      int    `json:"rating"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
}

// DefaultRating is the rating assigned to a model before its first match.
const DefaultRating = 1500
