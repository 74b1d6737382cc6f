package functions

import (
	"context"
	"errors"
	"math"

	"github.com/m2tx/answer_agent/internal/agent"
)

var (
	ErrDivideByZero = errors.New("cannot divide by zero")
	ErrOverflow     = errors.New("integer overflow")
)

type operands struct {
	A *int `json:"a" validate:"required"`
	B *int `json:"b" validate:"required"`
}

func operandsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{
				"type":        "integer",
				"description": "first integer",
			},
			"b": map[string]any{
				"type":        "integer",
				"description": "second integer",
			},
		},
		"required": []string{"a", "b"},
	}
}

func Add(a, b int) (int, error) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func Subtract(a, b int) (int, error) {
	if (b < 0 && a > math.MaxInt+b) || (b > 0 && a < math.MinInt+b) {
		return 0, ErrOverflow
	}
	return a - b, nil
}

func Multiply(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	// MinInt * -1 wraps to MinInt, which the division check misses
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, ErrOverflow
	}
	c := a * b
	if c/b != a {
		return 0, ErrOverflow
	}
	return c, nil
}

// Divide returns the real quotient of a and b.
func Divide(a, b int) (float64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return float64(a) / float64(b), nil
}

func binaryFunctionDeclaration(name, description string, fn func(a, b int) (any, error)) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:             name,
		Description:      description,
		ParametersSchema: operandsSchema(),
		FunctionCall: func(ctx context.Context, args map[string]any) (any, error) {
			var in operands
			if err := decodeArgs(name, args, &in); err != nil {
				return nil, err
			}
			return fn(*in.A, *in.B)
		},
	}
}

func CreateAddFunctionDeclaration() *agent.FunctionDeclaration {
	return binaryFunctionDeclaration("add", "Add two integers.", func(a, b int) (any, error) {
		return Add(a, b)
	})
}

func CreateSubtractFunctionDeclaration() *agent.FunctionDeclaration {
	return binaryFunctionDeclaration("subtract", "Subtract two integers.", func(a, b int) (any, error) {
		return Subtract(a, b)
	})
}

func CreateMultiplyFunctionDeclaration() *agent.FunctionDeclaration {
	return binaryFunctionDeclaration("multiply", "Multiply two integers.", func(a, b int) (any, error) {
		return Multiply(a, b)
	})
}

func CreateDivideFunctionDeclaration() *agent.FunctionDeclaration {
	return binaryFunctionDeclaration("divide", "Divide two integers.", func(a, b int) (any, error) {
		return Divide(a, b)
	})
}

// ArithmeticFunctionDeclarations returns add, subtract, multiply and divide.
func ArithmeticFunctionDeclarations() []*agent.FunctionDeclaration {
	return []*agent.FunctionDeclaration{
		CreateMultiplyFunctionDeclaration(),
		CreateAddFunctionDeclaration(),
		CreateSubtractFunctionDeclaration(),
		CreateDivideFunctionDeclaration(),
	}
}
