package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/m2tx/answer_agent/internal/model"
)

var ErrEmptyResponse = errors.New("openai: response has no choices")

// Client generates content with any OpenAI-compatible chat completions API.
type Client struct {
	client *goopenai.Client
	model  string
}

func New(apiKey, baseURL, modelName string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		client: goopenai.NewClientWithConfig(cfg),
		model:  modelName,
	}
}

func (c *Client) Generate(ctx context.Context, history []model.Content, tools []model.Declaration) (*model.Content, error) {
	messages, err := toMessages(history)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    getTools(tools),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return fromMessage(resp.Choices[0].Message)
}

func getTools(declarations []model.Declaration) []goopenai.Tool {
	tools := make([]goopenai.Tool, 0, len(declarations))
	for _, d := range declarations {
		tools = append(tools, goopenai.Tool{
			Type: goopenai.ToolTypeFunction,
			Function: &goopenai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		})
	}
	return tools
}

// toMessages flattens the conversation into chat messages. Each function
// response becomes its own tool message.
func toMessages(history []model.Content) ([]goopenai.ChatCompletionMessage, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(history))

	for _, c := range history {
		switch c.Role {
		case model.RoleSystem:
			messages = append(messages, goopenai.ChatCompletionMessage{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: c.Text(),
			})

		case model.RoleUser:
			messages = append(messages, goopenai.ChatCompletionMessage{
				Role:    goopenai.ChatMessageRoleUser,
				Content: c.Text(),
			})

		case model.RoleModel:
			msg := goopenai.ChatCompletionMessage{
				Role:    goopenai.ChatMessageRoleAssistant,
				Content: c.Text(),
			}
			for _, call := range c.FunctionCalls() {
				args, err := json.Marshal(call.Args)
				if err != nil {
					return nil, fmt.Errorf("openai: encode arguments of %s: %w", call.Name, err)
				}
				msg.ToolCalls = append(msg.ToolCalls, goopenai.ToolCall{
					ID:   call.ID,
					Type: goopenai.ToolTypeFunction,
					Function: goopenai.FunctionCall{
						Name:      call.Name,
						Arguments: string(args),
					},
				})
			}
			messages = append(messages, msg)

		case model.RoleTool:
			for _, p := range c.Parts {
				if p.FunctionResponse == nil {
					continue
				}
				content, err := json.Marshal(p.FunctionResponse.Response)
				if err != nil {
					return nil, fmt.Errorf("openai: encode response of %s: %w", p.FunctionResponse.Name, err)
				}
				messages = append(messages, goopenai.ChatCompletionMessage{
					Role:       goopenai.ChatMessageRoleTool,
					Name:       p.FunctionResponse.Name,
					ToolCallID: p.FunctionResponse.ID,
					Content:    string(content),
				})
			}

		default:
			return nil, fmt.Errorf("openai: unknown role %q", c.Role)
		}
	}

	return messages, nil
}

func fromMessage(msg goopenai.ChatCompletionMessage) (*model.Content, error) {
	content := &model.Content{Role: model.RoleModel}
	if msg.Content != "" {
		content.Parts = append(content.Parts, model.Part{Text: msg.Content})
	}

	for _, tc := range msg.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("openai: parse arguments of %s: %w", tc.Function.Name, err)
			}
		}
		content.Parts = append(content.Parts, model.Part{
			FunctionCall: &model.FunctionCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	return content, nil
}
