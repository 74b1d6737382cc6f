package application

import (
	"context"
	"fmt"

	"github.com/m2tx/answer_agent/assets"
	"github.com/m2tx/answer_agent/internal/agent"
	"github.com/m2tx/answer_agent/internal/config"
	"github.com/m2tx/answer_agent/internal/functions"
	"github.com/m2tx/answer_agent/internal/llm"
)

// NewAgent builds the model client for cfg and registers every tool.
func NewAgent(ctx context.Context, cfg *config.Config) (*agent.Agent, error) {
	model, err := llm.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := agent.New(cfg, model, assets.SystemInstruction)
	for _, fd := range functions.All(cfg) {
		if err := a.AddFunctionCall(fd); err != nil {
			return nil, fmt.Errorf("application: register %s: %w", fd.Name, err)
		}
	}

	return a, nil
}
