package functions

import (
	"context"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"

	"github.com/m2tx/answer_agent/internal/agent"
)

var constParams = map[string]any{
	"pi":  math.Pi,
	"e":   math.E,
	"phi": math.Phi,
}

var mathFunctions = map[string]govaluate.ExpressionFunction{
	"sqrt":  unaryFloat(math.Sqrt),
	"abs":   unaryFloat(math.Abs),
	"floor": unaryFloat(math.Floor),
	"ceil":  unaryFloat(math.Ceil),
	"round": unaryFloat(math.Round),
	"log":   unaryFloat(math.Log),
	"log10": unaryFloat(math.Log10),
	"pow": func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		x, ok1 := args[0].(float64)
		y, ok2 := args[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("pow expects numeric arguments")
		}
		return math.Pow(x, y), nil
	},
}

func unaryFloat(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("expected a numeric argument, got %T", args[0])
		}
		return fn(x), nil
	}
}

type calculateInput struct {
	Expression string `json:"expression" validate:"required"`
}

// Calculate evaluates a numeric expression such as "2 * (3 + 4) / sqrt(16)".
func Calculate(expression string) (float64, error) {
	exp, err := govaluate.NewEvaluableExpressionWithFunctions(expression, mathFunctions)
	if err != nil {
		return 0, fmt.Errorf("calculate: parse %q: %w", expression, err)
	}

	result, err := exp.Evaluate(constParams)
	if err != nil {
		return 0, fmt.Errorf("calculate: evaluate %q: %w", expression, err)
	}

	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("calculate: %q is not numeric (got %T)", expression, result)
	}

	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("calculate: %q has no finite value", expression)
	}

	return value, nil
}

func CreateCalculateFunctionDeclaration() *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:        "calculate",
		Description: "Evaluate an arithmetic expression with + - * / % ** and parentheses, the constants pi, e, phi and the functions sqrt, abs, floor, ceil, round, log, log10, pow.",
		ParametersSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{
					"type":        "string",
					"description": "The expression to evaluate, e.g. '2 * (3 + 4)'",
				},
			},
			"required": []string{"expression"},
		},
		FunctionCall: func(ctx context.Context, args map[string]any) (any, error) {
			var in calculateInput
			if err := decodeArgs("calculate", args, &in); err != nil {
				return nil, err
			}
			return Calculate(in.Expression)
		},
	}
}
