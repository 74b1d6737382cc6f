package functions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const userAgent = "answer_agent/1.0 (+https://github.com/m2tx/answer_agent)"

type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points a tool at a different endpoint, mostly for tests.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(clt *http.Client) Option {
	return func(o *options) {
		o.httpClient = clt
	}
}

func newOptions(defaultBaseURL string, opts []Option) *options {
	o := &options{baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(o)
	}
	if o.httpClient == nil {
		o.httpClient = http.DefaultClient
	}
	return o
}

// fetch performs req and returns the body of a 200 response.
func (o *options) fetch(ctx context.Context, req *http.Request) ([]byte, error) {
	req = req.WithContext(ctx)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from %s: %d", req.URL.Host, resp.StatusCode)
	}

	return body, nil
}

func formatDocument(source, page, content string, withPage bool) string {
	if withPage {
		return fmt.Sprintf("<Document source=%q page=%q/>\n%s\n</Document>", source, page, content)
	}
	return fmt.Sprintf("<Document source=%q/>\n%s\n</Document>", source, content)
}

const documentSeparator = "\n\n---\n\n"
