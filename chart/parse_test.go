package chart

import (
	"strings"
	"testing"
)

const validBlock = "```chart\n" +
	`{"type":"bar","title":"Revenue by quarter","data":[{"quarter":"Q1","revenue":120},{"quarter":"Q2","revenue":150}],"xKey":"quarter","yKey":"revenue"}` +
	"\n```"

func TestExtract_NoBlock(t *testing.T) {
	display, c := Extract("Here.")
	if display != "Here." {
		t.Errorf("display = %q, want %q", display, "Here.")
	}
	if c != nil {
		t.Errorf("expected nil chart, got %+v", c)
	}
}

func TestExtract_ValidBlock(t *testing.T) {
	reply := "Revenue grew in both quarters.\n\n" + validBlock + "\n\nLet me know if you need more detail."
	display, c := Extract(reply)

	if c == nil {
		t.Fatal("expected a chart payload")
	}
	if c.Type != TypeBar {
		t.Errorf("Type = %q, want %q", c.Type, TypeBar)
	}
	if c.Title != "Revenue by quarter" {
		t.Errorf("Title = %q", c.Title)
	}
	if len(c.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(c.Data))
	}
	if c.XKey != "quarter" || c.YKey != "revenue" {
		t.Errorf("keys = %q/%q", c.XKey, c.YKey)
	}
	if strings.Contains(display, "```") {
		t.Errorf("display still contains fence: %q", display)
	}
	if !strings.HasPrefix(display, "Revenue grew") || !strings.HasSuffix(display, "more detail.") {
		t.Errorf("display = %q", display)
	}
}

func TestExtract_BlockOnly(t *testing.T) {
	display, c := Extract(validBlock)
	if c == nil {
		t.Fatal("expected a chart payload")
	}
	if display != "" {
		t.Errorf("display = %q, want empty", display)
	}
}

func TestExtract_MalformedDegradesToPlainText(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"broken json", "Summary:\n```chart\n{not json}\n```"},
		{"unknown type", "Summary:\n```chart\n{\"type\":\"scatter\",\"data\":[]}\n```"},
		{"empty block", "Summary:\n```chart\n```"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			display, c := Extract(tc.reply)
			if c != nil {
				t.Errorf("expected nil chart, got %+v", c)
			}
			if display != tc.reply {
				t.Errorf("display should be the untouched reply, got %q", display)
			}
		})
	}
}

func TestExtract_FirstBlockWins(t *testing.T) {
	second := "```chart\n" + `{"type":"pie","data":[{"name":"A","share":1}],"xKey":"name","dataKey":"share"}` + "\n```"
	reply := validBlock + "\nand also\n" + second

	display, c := Extract(reply)
	if c == nil {
		t.Fatal("expected a chart payload")
	}
	if c.Type != TypeBar {
		t.Errorf("Type = %q, want first block's %q", c.Type, TypeBar)
	}
	// The second block stays in the display text verbatim.
	if !strings.Contains(display, "```chart") {
		t.Errorf("second block should survive in display text: %q", display)
	}
}

func TestExtract_TrimsSurroundingWhitespace(t *testing.T) {
	display, c := Extract("A\n" + validBlock + "\nB")
	if c == nil {
		t.Fatal("expected a chart payload")
	}
	if display != "A\n\nB" {
		t.Errorf("display = %q", display)
	}

	display, _ = Extract(validBlock + "\n\ntrailing prose\n")
	if display != "trailing prose" {
		t.Errorf("display = %q", display)
	}
}

func TestChart_Value(t *testing.T) {
	bar := &Chart{Type: TypeBar, XKey: "q", YKey: "v"}
	if v, ok := bar.Value(map[string]any{"q": "Q1", "v": float64(3)}); !ok || v != 3 {
		t.Errorf("Value = %v, %v", v, ok)
	}
	if _, ok := bar.Value(map[string]any{"q": "Q1"}); ok {
		t.Error("missing value field should report !ok")
	}
	if _, ok := bar.Value(map[string]any{"q": "Q1", "v": "high"}); ok {
		t.Error("non-numeric value should report !ok")
	}

	pie := &Chart{Type: TypePie, XKey: "name", DataKey: "share"}
	if v, ok := pie.Value(map[string]any{"name": "A", "share": 40.0}); !ok || v != 40 {
		t.Errorf("pie Value = %v, %v", v, ok)
	}
}
