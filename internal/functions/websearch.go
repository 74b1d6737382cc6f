package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/m2tx/answer_agent/internal/agent"
)

const (
	tavilyBaseURL       = "https://api.tavily.com"
	webSearchMaxResults = 3
)

var ErrMissingAPIKey = errors.New("search API key is not configured")

type searchInput struct {
	Query string `json:"query" validate:"required"`
}

type tavilyRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type tavilyResponse struct {
	Query   string         `json:"query"`
	Results []tavilyResult `json:"results"`
}

// WebSearch queries Tavily and formats at most three results as documents.
type WebSearch struct {
	apiKey string
	*options
}

func NewWebSearch(apiKey string, opts ...Option) *WebSearch {
	return &WebSearch{
		apiKey:  apiKey,
		options: newOptions(tavilyBaseURL, opts),
	}
}

func (w *WebSearch) Search(ctx context.Context, query string) (string, error) {
	if w.apiKey == "" {
		return "", fmt.Errorf("web_search: %w", ErrMissingAPIKey)
	}

	payload, err := json.Marshal(tavilyRequest{Query: query, MaxResults: webSearchMaxResults})
	if err != nil {
		return "", fmt.Errorf("web_search: encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, w.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("web_search: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	body, err := w.fetch(ctx, req)
	if err != nil {
		return "", fmt.Errorf("web_search: %w", err)
	}

	var resp tavilyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("web_search: decode response: %w", err)
	}

	results := resp.Results
	if len(results) > webSearchMaxResults {
		results = results[:webSearchMaxResults]
	}

	docs := make([]string, 0, len(results))
	for _, r := range results {
		docs = append(docs, formatDocument(r.URL, "", r.Content, false))
	}

	return strings.Join(docs, documentSeparator), nil
}

func CreateWebSearchFunctionDeclaration(w *WebSearch) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:        "web_search",
		Description: "Search Tavily Web for a query and return maximum 3 results from the web.",
		ParametersSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query.",
				},
			},
			"required": []string{"query"},
		},
		FunctionCall: func(ctx context.Context, args map[string]any) (any, error) {
			var in searchInput
			if err := decodeArgs("web_search", args, &in); err != nil {
				return nil, err
			}
			return w.Search(ctx, in.Query)
		},
	}
}
