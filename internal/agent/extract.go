package agent

import (
	"regexp"
	"strings"
)

// NoAnswer is returned by ExtractFinalAnswer when the marker is missing.
const NoAnswer = "N/A"

var finalAnswerRe = regexp.MustCompile(`(?i)FINAL ANSWER:[^\S\n]*([^\n]*)`)

// ExtractFinalAnswer returns the trimmed remainder of the first line carrying
// the "FINAL ANSWER:" marker, matched case-insensitively.
func ExtractFinalAnswer(text string) string {
	m := finalAnswerRe.FindStringSubmatch(text)
	if m == nil {
		return NoAnswer
	}
	return strings.TrimSpace(m[1])
}
