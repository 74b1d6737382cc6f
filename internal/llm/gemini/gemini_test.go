package gemini

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"google.golang.org/genai"

	"github.com/m2tx/answer_agent/internal/model"
)

func TestSplitSystem(t *testing.T) {
	history := []model.Content{
		model.NewText(model.RoleSystem, "be precise"),
		model.NewText(model.RoleUser, "What is 6 multiplied by 7?"),
		{Role: model.RoleModel, Parts: []model.Part{{
			FunctionCall:     &model.FunctionCall{ID: "c1", Name: "multiply", Args: map[string]any{"a": 6, "b": 7}},
			ThoughtSignature: []byte("sig"),
		}}},
		{Role: model.RoleTool, Parts: []model.Part{{
			FunctionResponse: &model.FunctionResponse{ID: "c1", Name: "multiply", Response: map[string]any{"output": 42}},
		}}},
	}

	system, contents := splitSystem(history)
	if system == nil {
		t.Fatal("expected a system instruction")
	}
	testboil.FailTestIfDiff(t, system.Parts[0].Text, "be precise")
	testboil.FailTestIfDiff(t, len(contents), 3)

	testboil.FailTestIfDiff(t, contents[0].Role, string(genai.RoleUser))
	testboil.FailTestIfDiff(t, contents[1].Role, string(genai.RoleModel))
	testboil.FailTestIfDiff(t, contents[1].Parts[0].FunctionCall.Name, "multiply")
	testboil.FailTestIfDiff(t, string(contents[1].Parts[0].ThoughtSignature), "sig")

	// function responses go back as user turns
	testboil.FailTestIfDiff(t, contents[2].Role, string(genai.RoleUser))
	testboil.FailTestIfDiff(t, contents[2].Parts[0].FunctionResponse.ID, "c1")
	testboil.FailTestIfDiff(t, contents[2].Parts[0].FunctionResponse.Response["output"], any(42))
}

func TestToModelContent(t *testing.T) {
	c := toModelContent(&genai.Content{
		Role: "model",
		Parts: []*genai.Part{
			{Text: "thinking...", Thought: true},
			{Text: "Let me multiply."},
			{FunctionCall: &genai.FunctionCall{Name: "multiply", Args: map[string]any{"a": 6.0, "b": 7.0}}},
		},
	})

	testboil.FailTestIfDiff(t, len(c.Parts), 2)
	testboil.FailTestIfDiff(t, c.Text(), "Let me multiply.")
	calls := c.FunctionCalls()
	testboil.FailTestIfDiff(t, len(calls), 1)
	testboil.FailTestIfDiff(t, calls[0].Name, "multiply")
}

func TestGetTools(t *testing.T) {
	if tools := getTools(nil); tools != nil {
		t.Fatalf("expected no tools, got %v", tools)
	}

	schema := map[string]any{"type": "object"}
	tools := getTools([]model.Declaration{{Name: "add", Description: "Add two integers.", Parameters: schema}})
	testboil.FailTestIfDiff(t, len(tools), 1)
	testboil.FailTestIfDiff(t, len(tools[0].FunctionDeclarations), 1)
	testboil.FailTestIfDiff(t, tools[0].FunctionDeclarations[0].Name, "add")
	if tools[0].FunctionDeclarations[0].ParametersJsonSchema == nil {
		t.Fatal("expected the parameter schema to be forwarded")
	}
}
