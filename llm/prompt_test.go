package llm

import (
	"strings"
	"testing"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt("Revenue grew 10% in Q1.")

	if !strings.Contains(prompt, "Revenue grew 10% in Q1.") {
		t.Error("prompt should embed the document context")
	}
	// The block syntax documented in the prompt is the contract the
	// response parser depends on.
	for _, want := range []string{"```chart", "\"type\"", "xKey", "yKey", "dataKey", "pie"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestTruncateContext(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		wantLen  int
	}{
		{"short text untouched", "hello", 100, 5},
		{"exact budget untouched", strings.Repeat("a", 10), 10, 10},
		{"long text cut to prefix", strings.Repeat("a", 50), 10, 10},
		{"zero budget uses default", strings.Repeat("a", DefaultMaxContextChars+5), 0, DefaultMaxContextChars},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateContext(tc.text, tc.maxChars)
			if len(got) != tc.wantLen {
				t.Errorf("len = %d, want %d", len(got), tc.wantLen)
			}
			if !strings.HasPrefix(tc.text, got) {
				t.Error("truncation must be a prefix of the input")
			}
		})
	}
}
