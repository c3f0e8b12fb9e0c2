package chat

import (
	"time"

	"github.com/google/uuid"

	"doc-chat/chart"
	"doc-chat/document"
)

// Sender identifies who authored a turn.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Turn is one message in the conversation. Turns are immutable once
// appended and are only ever discarded together, when a new document
// replaces the session.
type Turn struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Sender    Sender       `json:"sender"`
	Timestamp time.Time    `json:"timestamp"`
	Chart     *chart.Chart `json:"chart,omitempty"` // assistant turns only
}

// newTurn stamps a turn with a collision-resistant ID. Wall-clock IDs
// collide under rapid appends, so a UUID is used instead.
func newTurn(sender Sender, text string, c *chart.Chart) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
		Chart:     c,
	}
}

// Session binds a conversation to one loaded document. The ID tags
// every dispatch so a reply that lands after the session was replaced
// can be recognized and discarded.
type Session struct {
	ID       string
	Document *document.Document
}

func newSession(doc *document.Document) *Session {
	return &Session{ID: uuid.NewString(), Document: doc}
}
