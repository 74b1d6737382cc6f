package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/m2tx/answer_agent/internal/agent"
)

const (
	wikiMaxDocs     = 2
	wikiMaxDocChars = 4000
)

// noise is removed from article HTML before conversion.
const wikiNoiseSelector = "script, style, link, meta, sup.reference, .mw-editsection, .reflist, .mw-references-wrap, .navbox, .noprint, .hatnote"

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title  string `json:"title"`
			PageID int    `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

// WikiSearch looks up articles on Wikipedia and returns their text as markdown.
type WikiSearch struct {
	*options
}

func NewWikiSearch(language string, opts ...Option) *WikiSearch {
	if language == "" {
		language = "en"
	}
	return &WikiSearch{
		options: newOptions(fmt.Sprintf("https://%s.wikipedia.org", language), opts),
	}
}

func (w *WikiSearch) Search(ctx context.Context, query string) (string, error) {
	titles, err := w.searchTitles(ctx, query)
	if err != nil {
		return "", fmt.Errorf("wiki_search: %w", err)
	}

	docs := make([]string, 0, len(titles))
	for _, title := range titles {
		content, err := w.article(ctx, title)
		if err != nil {
			return "", fmt.Errorf("wiki_search: %q: %w", title, err)
		}
		source := w.baseURL + "/wiki/" + articlePath(title)
		docs = append(docs, formatDocument(source, "", content, true))
	}

	return strings.Join(docs, documentSeparator), nil
}

func (w *WikiSearch) searchTitles(ctx context.Context, query string) ([]string, error) {
	values := url.Values{}
	values.Set("action", "query")
	values.Set("list", "search")
	values.Set("srsearch", query)
	values.Set("srlimit", fmt.Sprint(wikiMaxDocs))
	values.Set("format", "json")

	req, err := http.NewRequest(http.MethodGet, w.baseURL+"/w/api.php?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	body, err := w.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	var resp wikiSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	titles := make([]string, 0, wikiMaxDocs)
	for _, r := range resp.Query.Search {
		if len(titles) == wikiMaxDocs {
			break
		}
		titles = append(titles, r.Title)
	}

	return titles, nil
}

func (w *WikiSearch) article(ctx context.Context, title string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, w.baseURL+"/api/rest_v1/page/html/"+articlePath(title), nil)
	if err != nil {
		return "", err
	}

	body, err := w.fetch(ctx, req)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}
	doc.Find(wikiNoiseSelector).Remove()

	html, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("render article: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(html, converter.WithDomain(w.baseURL))
	if err != nil {
		return "", fmt.Errorf("convert article: %w", err)
	}

	return truncateRunes(strings.TrimSpace(markdown), wikiMaxDocChars), nil
}

func articlePath(title string) string {
	return url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func CreateWikiSearchFunctionDeclaration(w *WikiSearch) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name:        "wiki_search",
		Description: "Search Wikipedia for a query and return maximum 2 results.",
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
			if err := decodeArgs("wiki_search", args, &in); err != nil {
				return nil, err
			}

			results, err := w.Search(ctx, in.Query)
			if err != nil {
				return nil, err
			}

			return map[string]any{"wiki_results": results}, nil
		},
	}
}
