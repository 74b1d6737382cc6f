package agent

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/google/uuid"
)

const errorPrefix = "AGENT ERROR: "

// Answer runs the tool loop for question and returns the extracted final
// answer. Failures are reported as strings prefixed with "AGENT ERROR: ".
func (a *Agent) Answer(ctx context.Context, question string) string {
	runID := uuid.NewString()

	for attempt := 1; attempt <= a.cfg.MaxRetries; attempt++ {
		history, err := a.run(ctx, question)
		if err == nil {
			response := history[len(history)-1].Text()
			if misc.Truthy(os.Getenv("DEBUG")) {
				ancli.Okf("run %s: response: %s\n", runID, response)
			}
			return ExtractFinalAnswer(response)
		}

		if !IsRateLimit(err) {
			ancli.Errf("run %s: attempt %d failed: %v\n", runID, attempt, err)
			return errorPrefix + err.Error()
		}

		if attempt == a.cfg.MaxRetries {
			ancli.Errf("run %s: rate limited on final attempt %d\n", runID, attempt)
			return fmt.Sprintf("%sRate limit (after %d attempts)", errorPrefix, a.cfg.MaxRetries)
		}

		wait := a.backoff(attempt)
		ancli.Warnf("run %s: rate limited on attempt %d, retrying in %v\n", runID, attempt, wait.Round(time.Millisecond))
		if err := a.sleep(ctx, wait); err != nil {
			return errorPrefix + err.Error()
		}
	}

	return errorPrefix + "Unknown"
}

// backoff returns BaseBackoff * 2^(attempt-1) plus up to one second of jitter.
func (a *Agent) backoff(attempt int) time.Duration {
	return a.cfg.BaseBackoff*time.Duration(1<<(attempt-1)) + a.jitter()
}

// IsRateLimit reports whether err looks like a provider rate-limit rejection.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate limit")
}
