package llm

import "fmt"

// DefaultMaxContextChars is the document-context budget embedded into a
// prompt. Truncation takes a plain prefix of the extracted text; there
// is no chunking or retrieval.
const DefaultMaxContextChars = 12000

// systemPromptTemplate explains the assistant's role, carries the
// document text and documents the only structured block the model is
// permitted to emit. The chart syntax here is the exact wire contract
// chart.Extract parses on the way back.
const systemPromptTemplate = `You are a helpful assistant that answers questions about a document the user has uploaded. Base your answers on the document content below. If the answer is not in the document, say so.

Document content:
---
%s
---

When the user asks for a chart, or when numeric data in your answer is better shown as one, you may include exactly one fenced code block tagged "chart" containing JSON of this shape:

` + "```chart" + `
{"type": "bar", "title": "optional title", "data": [{"label": "A", "value": 10}, {"label": "B", "value": 20}], "xKey": "label", "yKey": "value"}
` + "```" + `

"type" must be "bar", "line" or "pie". For pie charts use "dataKey" instead of "yKey". Every record in "data" must contain the xKey field and the value field. Outside of that block, reply in plain prose.`

// BuildSystemPrompt renders the shared instruction segment around the
// given document context. The context must already be truncated.
func BuildSystemPrompt(docContext string) string {
	return fmt.Sprintf(systemPromptTemplate, docContext)
}

// TruncateContext bounds document text to a fixed character budget by
// taking a prefix. maxChars <= 0 uses DefaultMaxContextChars.
func TruncateContext(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxContextChars
	}
	if len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}
