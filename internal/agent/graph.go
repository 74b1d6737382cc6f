package agent

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"golang.org/x/sync/errgroup"

	"github.com/m2tx/answer_agent/internal/model"
)

// ErrMaxSteps is returned when the model keeps requesting tools past the
// configured step limit.
var ErrMaxSteps = errors.New("agent: step limit reached")

// ErrEmptyResponse is returned when the model produces no content at all.
var ErrEmptyResponse = errors.New("agent: model returned no content")

type state int

const (
	assistantState state = iota
	toolsState
	doneState
)

// run drives one conversation from the question to the first model response
// without function calls and returns the full history.
func (a *Agent) run(ctx context.Context, question string) ([]model.Content, error) {
	history := []model.Content{
		model.NewText(model.RoleSystem, a.systemInstruction),
		model.NewText(model.RoleUser, question),
	}
	tools := a.Declarations()

	steps := 0
	st := assistantState
	for {
		switch st {
		case assistantState:
			if steps >= a.cfg.MaxSteps {
				return history, fmt.Errorf("%w (%d)", ErrMaxSteps, a.cfg.MaxSteps)
			}
			steps++

			resp, err := a.llm.Generate(ctx, history, tools)
			if err != nil {
				return history, err
			}
			if resp == nil {
				return history, ErrEmptyResponse
			}
			if resp.Role == "" {
				resp.Role = model.RoleModel
			}
			history = append(history, *resp)

			if len(resp.FunctionCalls()) > 0 {
				st = toolsState
			} else {
				st = doneState
			}

		case toolsState:
			calls := history[len(history)-1].FunctionCalls()
			history = append(history, model.Content{
				Role:  model.RoleTool,
				Parts: a.processFunctionCalls(ctx, calls),
			})
			st = assistantState

		case doneState:
			return history, nil
		}
	}
}

// processFunctionCalls executes calls and returns one response part per call,
// in call order. Tool failures are reported inside the response.
func (a *Agent) processFunctionCalls(ctx context.Context, calls []*model.FunctionCall) []model.Part {
	parts := make([]model.Part, len(calls))

	if !a.cfg.ParallelTools || len(calls) < 2 {
		for i, call := range calls {
			parts[i] = a.callFunction(ctx, call)
		}
		return parts
	}

	var g errgroup.Group
	g.SetLimit(a.cfg.ToolConcurrency)
	for i, call := range calls {
		g.Go(func() error {
			parts[i] = a.callFunction(ctx, call)
			return nil
		})
	}
	// failures travel inside the parts, Wait only joins
	g.Wait()

	return parts
}

func (a *Agent) callFunction(ctx context.Context, call *model.FunctionCall) model.Part {
	ancli.Noticef("tool '%s' invoked with: %v\n", call.Name, call.Args)

	response := map[string]any{}
	output, err := a.invokeFunction(ctx, call)
	if err != nil {
		ancli.Warnf("tool '%s' failed: %v\n", call.Name, err)
		response["error"] = err.Error()
	} else {
		response["output"] = output
	}

	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.Okf("tool '%s' response: %v\n", call.Name, debug.IndentedJsonFmt(response))
	}

	return model.Part{
		FunctionResponse: &model.FunctionResponse{
			ID:       call.ID,
			Name:     call.Name,
			Response: response,
		},
	}
}

// invokeFunction turns a panicking tool into an error result.
func (a *Agent) invokeFunction(ctx context.Context, call *model.FunctionCall) (output any, err error) {
	defer func() {
		if r := recover(); r != nil {
			output = nil
			err = fmt.Errorf("function %s panicked: %v", call.Name, r)
		}
	}()

	return a.handleFunctionCall(ctx, call.Name, call.Args)
}
