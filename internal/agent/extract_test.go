package agent

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestExtractFinalAnswer(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "last line", text: "Reasoning...\nFINAL ANSWER: 42", want: "42"},
		{name: "lower case label", text: "final answer: Paris", want: "Paris"},
		{name: "mixed case label", text: "Final Answer:   blue, green, red  ", want: "blue, green, red"},
		{name: "no marker", text: "I could not find it.", want: "N/A"},
		{name: "empty text", text: "", want: "N/A"},
		{name: "mid line marker", text: "so the FINAL ANSWER: 2009 indeed\nand more text", want: "2009 indeed"},
		{name: "first match wins", text: "FINAL ANSWER: a\nFINAL ANSWER: b", want: "a"},
		{name: "crlf line ending", text: "FINAL ANSWER: 7\r\nthanks", want: "7"},
		{name: "marker at end of line", text: "FINAL ANSWER:\nnext line", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testboil.FailTestIfDiff(t, ExtractFinalAnswer(tt.text), tt.want)
		})
	}
}
