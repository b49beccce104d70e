package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lox/pokerforbots-arena/internal/action"
	"github.com/lox/pokerforbots-arena/internal/llm"
	"github.com/lox/pokerforbots-arena/internal/model"
)

// fakeCompleter returns a scripted queue of responses, one per call.
type fakeCompleter struct {
	responses []llm.CompletionResponse
	errs      []error
	i         int
	reqs      []llm.CompletionRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	f.reqs = append(f.reqs, req)
	idx := f.i
	f.i++
	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	if idx < len(f.responses) {
		return f.responses[idx], err
	}
	return llm.CompletionResponse{}, err
}

func legal() action.LegalActions {
	return action.LegalActions{CanFold: true, CanCall: true, CallAmount: 100, CanRaise: true, MinRaiseTo: 200, MaxRaiseTo: 1000}
}

func snap() model.Snapshot {
	return model.Snapshot{Pot: 150, Street: model.StreetFlop, CurrentPlayerIndex: 0}
}

func TestPipelineDirectParse(t *testing.T) {
	t.Parallel()
	fc := &fakeCompleter{responses: []llm.CompletionResponse{
		{Message: llm.Message{Role: llm.RoleAssistant, Content: "I'll call"}},
	}}
	p := New("test-model", fc, llm.NewRegistry(llm.PotOddsCalculator(), llm.EquityCalculator()), nil)

	out := p.Decide(context.Background(), snap(), legal())
	if !out.Flags.ParsedOK || out.ActionType != "call" || out.Amount != 100 {
		t.Fatalf("got %+v, want a parsed call for 100", out)
	}
	if len(fc.reqs) != 1 {
		t.Fatalf("expected exactly one LLM call, got %d", len(fc.reqs))
	}
}

func TestPipelineToolRoundThenAction(t *testing.T) {
	t.Parallel()
	toolArgs, _ := json.Marshal(map[string]any{"pot_size": 150, "bet_to_call": 100})
	fc := &fakeCompleter{responses: []llm.CompletionResponse{
		{Message: llm.Message{
			Role: llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{
				{ID: "1", Name: "pot_odds_calculator", Arguments: string(toolArgs)},
			},
		}},
		{Message: llm.Message{Role: llm.RoleAssistant, Content: "raise to 400"}},
	}}
	p := New("test-model", fc, llm.NewRegistry(llm.PotOddsCalculator(), llm.EquityCalculator()), nil)

	out := p.Decide(context.Background(), snap(), legal())
	if !out.Flags.ParsedOK || out.ActionType != "raise" || out.Amount != 400 {
		t.Fatalf("got %+v, want a parsed raise to 400", out)
	}
	if len(out.ToolCalls) != 1 || out.ToolCalls[0].Name != "pot_odds_calculator" {
		t.Fatalf("expected one recorded pot_odds_calculator tool call, got %+v", out.ToolCalls)
	}
	if len(fc.reqs) != 2 {
		t.Fatalf("expected two LLM calls (tool round + final), got %d", len(fc.reqs))
	}
}

func TestPipelineClarificationRetryThenDefault(t *testing.T) {
	t.Parallel()
	fc := &fakeCompleter{responses: []llm.CompletionResponse{
		{Message: llm.Message{Role: llm.RoleAssistant, Content: "I think I'll ponder"}},
		{Message: llm.Message{Role: llm.RoleAssistant, Content: "still pondering"}},
	}}
	p := New("test-model", fc, llm.NewRegistry(), nil)

	out := p.Decide(context.Background(), snap(), legal())
	if out.Flags.ParsedOK {
		t.Fatalf("expected parsing to fail both attempts, got %+v", out)
	}
	if !out.Flags.Clarified || !out.Flags.DefaultUsed {
		t.Fatalf("expected Clarified and DefaultUsed flags set, got %+v", out.Flags)
	}
	if out.ActionType != "fold" { // legal() has no CanCheck, so the safe default is Fold
		t.Fatalf("expected default Fold, got %s", out.ActionType)
	}
	if len(fc.reqs) != 2 {
		t.Fatalf("expected exactly 2 LLM calls (initial + one clarification retry), got %d", len(fc.reqs))
	}
}

func TestPipelineClarificationRetryIgnoresToolCalls(t *testing.T) {
	t.Parallel()
	// The clarification retry is a single direct call with tool_choice
	// "none" - spec.md section 4.2 step 4 repeats step 1 exactly once,
	// not the full tool-conversation loop. Even if a model answers the
	// retry with a tool call, the pipeline must not execute it or spend
	// another round on it.
	toolArgs, _ := json.Marshal(map[string]any{"pot_size": 150, "bet_to_call": 100})
	fc := &fakeCompleter{responses: []llm.CompletionResponse{
		{Message: llm.Message{Role: llm.RoleAssistant, Content: "hmm, let me think"}},
		{Message: llm.Message{
			Role: llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{
				{ID: "1", Name: "pot_odds_calculator", Arguments: string(toolArgs)},
			},
		}},
	}}
	p := New("test-model", fc, llm.NewRegistry(llm.PotOddsCalculator(), llm.EquityCalculator()), nil)

	out := p.Decide(context.Background(), snap(), legal())
	if !out.Flags.Clarified || !out.Flags.DefaultUsed {
		t.Fatalf("expected Clarified and DefaultUsed flags set, got %+v", out.Flags)
	}
	if len(out.ToolCalls) != 0 {
		t.Fatalf("expected no tool calls executed during the clarification retry, got %+v", out.ToolCalls)
	}
	if len(fc.reqs) != 2 {
		t.Fatalf("expected exactly 2 LLM calls (initial + one clarification retry), got %d", len(fc.reqs))
	}
	if fc.reqs[1].ToolChoice != llm.ToolChoiceNone {
		t.Fatalf("expected the clarification retry to force tool_choice=none, got %v", fc.reqs[1].ToolChoice)
	}
}

func TestPipelineTransportFailureFallsBackToFold(t *testing.T) {
	t.Parallel()
	fc := &fakeCompleter{errs: []error{context.DeadlineExceeded}}
	p := New("test-model", fc, llm.NewRegistry(), nil)
	p.Timeout = 0 // force immediate timeout path is exercised via the returned error instead

	out := p.Decide(context.Background(), snap(), legal())
	if out.ActionType != "fold" {
		t.Fatalf("expected Fold fallback on transport failure, got %+v", out)
	}
	if !out.Flags.DefaultUsed || out.Error == "" {
		t.Fatalf("expected DefaultUsed and a recorded error, got %+v", out)
	}
}
