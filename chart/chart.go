package chart

// Chart types the model is allowed to emit
const (
	TypeBar  = "bar"
	TypeLine = "line"
	TypePie  = "pie"
)

// Chart represents a chart description embedded in a model reply.
// Data records are flat maps; XKey/YKey (or DataKey for pie charts)
// select which record fields feed the axes.
type Chart struct {
	Type    string           `json:"type"` // "bar", "line" or "pie"
	Title   string           `json:"title,omitempty"`
	Data    []map[string]any `json:"data"`
	XKey    string           `json:"xKey,omitempty"`
	YKey    string           `json:"yKey,omitempty"`
	DataKey string           `json:"dataKey,omitempty"` // pie charts only
}

// ValidType reports whether the chart type is one we know how to draw.
func ValidType(t string) bool {
	switch t {
	case TypeBar, TypeLine, TypePie:
		return true
	}
	return false
}

// Label returns the category label of a data record, or "" if the
// field is absent or not a string.
func (c *Chart) Label(record map[string]any) string {
	v, ok := record[c.XKey]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Value returns the numeric value of a data record and whether one was
// present. For pie charts the measure field is DataKey, otherwise YKey.
func (c *Chart) Value(record map[string]any) (float64, bool) {
	key := c.YKey
	if c.Type == TypePie {
		key = c.DataKey
	}
	v, ok := record[key]
	if !ok {
		return 0, false
	}
	// JSON numbers decode as float64; be tolerant of ints from tests
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
