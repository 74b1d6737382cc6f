package agent

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/m2tx/answer_agent/internal/config"
	"github.com/m2tx/answer_agent/internal/model"
)

// Model is a language model able to answer with text or function calls.
// history always starts with the system content.
type Model interface {
	Generate(ctx context.Context, history []model.Content, tools []model.Declaration) (*model.Content, error)
}

type Agent struct {
	llm               Model
	systemInstruction string
	functionsMap      map[string]*FunctionDeclaration
	functionNames     []string
	cfg               *config.Config

	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() time.Duration
}

type FunctionDeclaration struct {
	Name             string
	Description      string
	ParametersSchema any
	FunctionCall     FunctionCallFn
}

type FunctionCallFn func(ctx context.Context, args map[string]any) (any, error)

func New(cfg *config.Config, llm Model, systemInstruction string) *Agent {
	return &Agent{
		llm:               llm,
		systemInstruction: systemInstruction,
		functionsMap:      make(map[string]*FunctionDeclaration),
		cfg:               cfg,
		sleep:             sleepContext,
		jitter: func() time.Duration {
			return time.Duration(rand.Float64() * float64(time.Second))
		},
	}
}

func (a *Agent) AddFunctionCall(functionDeclaration *FunctionDeclaration) error {
	if functionDeclaration == nil {
		return fmt.Errorf("function declaration cannot be nil")
	}

	if functionDeclaration.Name == "" {
		return fmt.Errorf("function name cannot be empty")
	}

	if functionDeclaration.FunctionCall == nil {
		return fmt.Errorf("function call implementation cannot be nil")
	}

	if _, exists := a.functionsMap[functionDeclaration.Name]; exists {
		return fmt.Errorf("function %s already registered", functionDeclaration.Name)
	}

	a.functionsMap[functionDeclaration.Name] = functionDeclaration
	a.functionNames = append(a.functionNames, functionDeclaration.Name)

	return nil
}

// Declarations lists the registered tools in registration order.
func (a *Agent) Declarations() []model.Declaration {
	declarations := make([]model.Declaration, 0, len(a.functionNames))

	for _, name := range a.functionNames {
		fd := a.functionsMap[name]
		declarations = append(declarations, model.Declaration{
			Name:        fd.Name,
			Description: fd.Description,
			Parameters:  fd.ParametersSchema,
		})
	}

	return declarations
}

func (a *Agent) handleFunctionCall(ctx context.Context, functionName string, args map[string]any) (any, error) {
	if fd, exists := a.functionsMap[functionName]; exists {
		return fd.FunctionCall(ctx, args)
	}

	return nil, fmt.Errorf("function %s not found", functionName)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
