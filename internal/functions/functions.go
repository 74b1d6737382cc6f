package functions

import (
	"net/http"

	"github.com/m2tx/answer_agent/internal/agent"
	"github.com/m2tx/answer_agent/internal/config"
)

// All returns every tool the agent exposes, configured from cfg.
func All(cfg *config.Config) []*agent.FunctionDeclaration {
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	declarations := ArithmeticFunctionDeclarations()
	return append(declarations,
		CreateCalculateFunctionDeclaration(),
		CreateWebSearchFunctionDeclaration(NewWebSearch(cfg.TavilyAPIKey, WithHTTPClient(client))),
		CreateWikiSearchFunctionDeclaration(NewWikiSearch(cfg.WikiLanguage, WithHTTPClient(client))),
		CreateYouTubeTranscriptFunctionDeclaration(NewYouTubeTranscript(cfg.WikiLanguage, WithHTTPClient(client))),
	)
}
