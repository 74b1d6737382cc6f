package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/m2tx/answer_agent/internal/model"
)

var ErrEmptyResponse = errors.New("gemini: response has no candidates")

// Client generates content with a Gemini model.
type Client struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, modelName string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}

	return &Client{client: client, model: modelName}, nil
}

func (c *Client) Generate(ctx context.Context, history []model.Content, tools []model.Declaration) (*model.Content, error) {
	system, contents := splitSystem(history)

	config := &genai.GenerateContentConfig{
		Tools: getTools(tools),
	}
	if system != nil {
		config.SystemInstruction = system
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		content := toModelContent(candidate.Content)
		content.Role = model.RoleModel
		return &content, nil
	}

	return nil, ErrEmptyResponse
}

func getTools(declarations []model.Declaration) []*genai.Tool {
	if len(declarations) == 0 {
		return nil
	}

	functions := make([]*genai.FunctionDeclaration, 0, len(declarations))
	for _, d := range declarations {
		functions = append(functions, &genai.FunctionDeclaration{
			Name:                 d.Name,
			Description:          d.Description,
			ParametersJsonSchema: d.Parameters,
		})
	}

	return []*genai.Tool{
		{
			FunctionDeclarations: functions,
		},
	}
}

// splitSystem moves system contents into a system instruction; the rest
// becomes the request history.
func splitSystem(history []model.Content) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	contents := make([]*genai.Content, 0, len(history))

	for _, c := range history {
		if c.Role == model.RoleSystem {
			if system == nil {
				system = &genai.Content{}
			}
			for _, p := range c.Parts {
				system.Parts = append(system.Parts, &genai.Part{Text: p.Text})
			}
			continue
		}
		contents = append(contents, toGenAIContent(c))
	}

	return system, contents
}

// toGenAIContent converts a conversation turn to its Gemini form. Tool
// results travel as user turns.
func toGenAIContent(c model.Content) *genai.Content {
	role := string(genai.RoleUser)
	if c.Role == model.RoleModel {
		role = string(genai.RoleModel)
	}

	gc := &genai.Content{Role: role, Parts: make([]*genai.Part, 0, len(c.Parts))}
	for _, p := range c.Parts {
		gp := &genai.Part{Text: p.Text, ThoughtSignature: p.ThoughtSignature}
		if p.FunctionCall != nil {
			gp.FunctionCall = &genai.FunctionCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			gp.FunctionResponse = &genai.FunctionResponse{
				ID:       p.FunctionResponse.ID,
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
		gc.Parts = append(gc.Parts, gp)
	}

	return gc
}

func toModelContent(c *genai.Content) model.Content {
	mc := model.Content{Role: c.Role, Parts: make([]model.Part, 0, len(c.Parts))}
	for _, p := range c.Parts {
		if p.Thought {
			continue
		}
		mp := model.Part{Text: p.Text, ThoughtSignature: p.ThoughtSignature}
		if p.FunctionCall != nil {
			mp.FunctionCall = &model.FunctionCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		mc.Parts = append(mc.Parts, mp)
	}
	return mc
}
