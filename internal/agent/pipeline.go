// Package agent implements the agent decision pipeline (spec.md
// component C2): the bounded, fault-tolerant conversation loop that
// turns a game-state snapshot into a legal action.
//
// Grounded on internal/server/network_agent.go's MakeDecision: a
// context.WithTimeout plus a select over a result channel and ctx.Done,
// generalized from "wait for a human over the wire" to "call a model,
// maybe run tools, maybe ask for clarification, then fall back to a
// safe default". The five-state shape (awaiting reply, processing
// tools, parsing, clarifying, done) follows spec.md's REDESIGN FLAGS
// guidance for this exact component.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerforbots-arena/internal/action"
	"github.com/lox/pokerforbots-arena/internal/llm"
	"github.com/lox/pokerforbots-arena/internal/model"
)

// MaxToolRounds is the hard cap on tool-call rounds within one decision
// (spec.md section 4.2, step 2).
const MaxToolRounds = 3

// DefaultTimeout is the per-LLM-call timeout (spec.md section 5).
const DefaultTimeout = 30 * time.Second

// DefaultTemperature is used when a Pipeline doesn't override it.
const DefaultTemperature = 0.2

// Pipeline drives one seat's decision-making conversation with a model.
// A Pipeline is reused across every decision point that seat reaches
// within a hand; it holds no per-decision state between calls (spec.md
// section 4.2: "single-agent in-flight").
type Pipeline struct {
	ModelName   string
	Completer   llm.ChatCompleter
	Tools       *llm.Registry
	Temperature float64
	Timeout     time.Duration
	logger      *log.Logger
}

// New builds a Pipeline for one seat's model.
func New(modelName string, completer llm.ChatCompleter, tools *llm.Registry, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		ModelName:   modelName,
		Completer:   completer,
		Tools:       tools,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
		logger:      logger.WithPrefix("agent").With("model", modelName),
	}
}

// Decide implements engine.Decider: it always returns within
// (MaxToolRounds+2)*Timeout and always returns a legal action (spec.md
// section 5's total decision budget).
func (p *Pipeline) Decide(ctx context.Context, snap model.Snapshot, legal action.LegalActions) model.DecisionOutcome {
	start := time.Now()
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt()},
		{Role: llm.RoleUser, Content: userPrompt(snap)},
	}

	var usage llm.Usage
	var cost float64
	var toolCalls []model.ToolCallRecord

	resp, _, err := p.converse(ctx, messages, legal, &usage, &cost, &toolCalls)
	if err != nil {
		return p.fallback(start, err.Error(), legal, usage, cost, toolCalls)
	}
	messages = append(messages, resp.Message)

	result := action.Parse(resp.Message.Content, legal)
	if result.OK {
		return model.DecisionOutcome{
			Action:           result.Action,
			ActionType:       result.Action.Type.String(),
			Amount:           result.Action.Amount,
			RawText:          resp.Message.Content,
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
			ElapsedMillis:    time.Since(start).Milliseconds(),
			CostEstimate:     cost,
			Flags:            model.DecisionFlags{ParsedOK: true},
			ToolCalls:        toolCalls,
		}
	}

	// Parse failed: repeat step 1 exactly once (spec.md section 4.2, step
	// 4) as a single direct, tool-free call - not another full converse
	// pass, which could itself run up to MaxToolRounds+1 more calls and
	// blow past the documented (MaxToolRounds+2)*Timeout decision budget.
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: clarificationPrompt()})
	clarifyResp, err := p.callWithTimeout(ctx, llm.CompletionRequest{
		Model:       p.ModelName,
		Messages:    messages,
		Temperature: p.Temperature,
		Tools:       p.Tools.Descriptors(),
		ToolChoice:  llm.ToolChoiceNone,
	})
	if err != nil {
		return p.fallback(start, err.Error(), legal, usage, cost, toolCalls)
	}
	usage.PromptTokens += clarifyResp.Usage.PromptTokens
	usage.CompletionTokens += clarifyResp.Usage.CompletionTokens
	usage.TotalTokens += clarifyResp.Usage.TotalTokens
	cost += clarifyResp.CostEstimate
	messages = append(messages, clarifyResp.Message)

	result = action.Parse(clarifyResp.Message.Content, legal)
	return model.DecisionOutcome{
		Action:           result.Action,
		ActionType:       result.Action.Type.String(),
		Amount:           result.Action.Amount,
		RawText:          clarifyResp.Message.Content,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		ElapsedMillis:    time.Since(start).Milliseconds(),
		CostEstimate:     cost,
		Flags:            model.DecisionFlags{ParsedOK: result.OK, Clarified: true, DefaultUsed: !result.OK},
		ToolCalls:        toolCalls,
		Error:            result.Error,
	}
}

// converse runs the initial decision attempt's tool-call loop: it calls
// the model, executes any tool calls (looping up to MaxToolRounds), and
// returns the first response that contains no tool calls. It is not
// reused for the clarification retry, which is a single direct call.
func (p *Pipeline) converse(ctx context.Context, messages []llm.Message, legal action.LegalActions, usage *llm.Usage, cost *float64, toolCalls *[]model.ToolCallRecord) (llm.CompletionResponse, int, error) {
	round := 0
	for {
		choice := llm.ToolChoiceAuto
		if round >= MaxToolRounds {
			choice = llm.ToolChoiceNone
		}

		resp, err := p.callWithTimeout(ctx, llm.CompletionRequest{
			Model:       p.ModelName,
			Messages:    messages,
			Temperature: p.Temperature,
			Tools:       p.Tools.Descriptors(),
			ToolChoice:  choice,
		})
		if err != nil {
			return llm.CompletionResponse{}, round, err
		}
		usage.PromptTokens += resp.Usage.PromptTokens
		usage.CompletionTokens += resp.Usage.CompletionTokens
		usage.TotalTokens += resp.Usage.TotalTokens
		*cost += resp.CostEstimate

		if len(resp.Message.ToolCalls) == 0 || round >= MaxToolRounds {
			return resp, round, nil
		}

		messages = append(messages, resp.Message)
		results := p.runToolCalls(ctx, resp.Message.ToolCalls)
		for i, tc := range resp.Message.ToolCalls {
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    string(results[i]),
				ToolCallID: tc.ID,
			})
			*toolCalls = append(*toolCalls, model.ToolCallRecord{
				Name:      tc.Name,
				Arguments: tc.Arguments,
				Result:    string(results[i]),
			})
		}
		round++
	}
}

// runToolCalls executes every tool call in one model turn concurrently
// (they are pure functions - spec.md section 5).
func (p *Pipeline) runToolCalls(ctx context.Context, calls []llm.ToolCall) [][]byte {
	results := make([][]byte, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	for i, tc := range calls {
		i, tc := i, tc
		g.Go(func() error {
			results[i] = p.Tools.Call(gctx, tc.Name, json.RawMessage(tc.Arguments))
			return nil
		})
	}
	_ = g.Wait() // Registry.Call never returns a Go error; errors are embedded JSON.
	return results
}

func (p *Pipeline) callWithTimeout(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	type result struct {
		resp llm.CompletionResponse
		err  error
	}
	resultCh := make(chan result, 1)
	go func() {
		resp, err := p.Completer.Complete(ctx, req)
		resultCh <- result{resp, err}
	}()

	select {
	case r := <-resultCh:
		return r.resp, r.err
	case <-ctx.Done():
		p.logger.Warn("decision timed out")
		return llm.CompletionResponse{}, fmt.Errorf("agent: timed out waiting for %s: %w", p.ModelName, ctx.Err())
	}
}

func (p *Pipeline) fallback(start time.Time, errMsg string, legal action.LegalActions, usage llm.Usage, cost float64, toolCalls []model.ToolCallRecord) model.DecisionOutcome {
	act := action.Action{Type: action.Fold}
	if !legal.CanFold && legal.CanCheck {
		act = action.Action{Type: action.Check}
	}
	p.logger.Error("falling back to safe default after transport failure", "error", errMsg)
	return model.DecisionOutcome{
		Action:           act,
		ActionType:       act.Type.String(),
		Amount:           act.Amount,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		ElapsedMillis:    time.Since(start).Milliseconds(),
		CostEstimate:     cost,
		Flags:            model.DecisionFlags{ParsedOK: false, DefaultUsed: true},
		ToolCalls:        toolCalls,
		Error:            errMsg,
	}
}
