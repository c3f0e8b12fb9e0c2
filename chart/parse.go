package chart

import (
	"encoding/json"
	"regexp"
	"strings"
)

// blockPattern matches a fenced block tagged "chart". (?s) lets the body
// span multiple lines; the match is lazy so only the first block is taken.
var blockPattern = regexp.MustCompile("(?s)```chart\\s*(.*?)```")

// Extract separates a raw model reply into display text and an optional
// chart payload. Only the first ```chart block is honored. If the block
// is missing or its JSON does not parse into a usable chart, the reply
// is returned unmodified with a nil payload — a malformed block is never
// an error, it just degrades to plain text.
func Extract(reply string) (string, *Chart) {
	m := blockPattern.FindStringSubmatchIndex(reply)
	if m == nil {
		return reply, nil
	}

	body := reply[m[2]:m[3]]

	var c Chart
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		return reply, nil
	}
	if !ValidType(c.Type) {
		return reply, nil
	}

	display := strings.TrimSpace(reply[:m[0]] + reply[m[1]:])
	return display, &c
}
