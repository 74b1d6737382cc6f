package openai

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/m2tx/answer_agent/internal/model"
)

func TestToMessages(t *testing.T) {
	history := []model.Content{
		model.NewText(model.RoleSystem, "be precise"),
		model.NewText(model.RoleUser, "q"),
		{Role: model.RoleModel, Parts: []model.Part{
			{FunctionCall: &model.FunctionCall{ID: "a", Name: "add", Args: map[string]any{"a": 1, "b": 2}}},
			{FunctionCall: &model.FunctionCall{ID: "b", Name: "divide", Args: map[string]any{"a": 1, "b": 0}}},
		}},
		{Role: model.RoleTool, Parts: []model.Part{
			{FunctionResponse: &model.FunctionResponse{ID: "a", Name: "add", Response: map[string]any{"output": 3}}},
			{FunctionResponse: &model.FunctionResponse{ID: "b", Name: "divide", Response: map[string]any{"error": "cannot divide by zero"}}},
		}},
	}

	msgs, err := toMessages(history)
	if err != nil {
		t.Fatalf("toMessages: %v", err)
	}

	testboil.FailTestIfDiff(t, len(msgs), 5)
	testboil.FailTestIfDiff(t, msgs[0].Role, goopenai.ChatMessageRoleSystem)
	testboil.FailTestIfDiff(t, msgs[1].Role, goopenai.ChatMessageRoleUser)
	testboil.FailTestIfDiff(t, msgs[2].Role, goopenai.ChatMessageRoleAssistant)
	testboil.FailTestIfDiff(t, len(msgs[2].ToolCalls), 2)
	testboil.FailTestIfDiff(t, msgs[2].ToolCalls[0].Function.Arguments, `{"a":1,"b":2}`)

	testboil.FailTestIfDiff(t, msgs[3].Role, goopenai.ChatMessageRoleTool)
	testboil.FailTestIfDiff(t, msgs[3].ToolCallID, "a")
	testboil.FailTestIfDiff(t, msgs[3].Content, `{"output":3}`)
	testboil.FailTestIfDiff(t, msgs[4].ToolCallID, "b")
	testboil.FailTestIfDiff(t, msgs[4].Content, `{"error":"cannot divide by zero"}`)
}

func TestToMessagesUnknownRole(t *testing.T) {
	if _, err := toMessages([]model.Content{model.NewText("narrator", "x")}); err == nil {
		t.Fatal("expected an error for an unknown role")
	}
}

func TestFromMessage(t *testing.T) {
	c, err := fromMessage(goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleAssistant,
		Content: "calling",
		ToolCalls: []goopenai.ToolCall{{
			ID:       "x",
			Type:     goopenai.ToolTypeFunction,
			Function: goopenai.FunctionCall{Name: "multiply", Arguments: `{"a":6,"b":7}`},
		}},
	})
	if err != nil {
		t.Fatalf("fromMessage: %v", err)
	}

	testboil.FailTestIfDiff(t, c.Role, model.RoleModel)
	testboil.FailTestIfDiff(t, c.Text(), "calling")
	calls := c.FunctionCalls()
	testboil.FailTestIfDiff(t, len(calls), 1)
	testboil.FailTestIfDiff(t, calls[0].ID, "x")
	testboil.FailTestIfDiff(t, calls[0].Args["a"], any(6.0))

	_, err = fromMessage(goopenai.ChatCompletionMessage{
		ToolCalls: []goopenai.ToolCall{{Function: goopenai.FunctionCall{Name: "add", Arguments: "{"}}},
	})
	if err == nil {
		t.Fatal("expected an error for malformed arguments")
	}
}
