package db

import "time"

// Conversation represents one document session's archived chat
type Conversation struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents a single archived message in a conversation
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Role           string    `json:"role"` // "user" or "assistant"
	Content        string    `json:"content"`
	Provider       string    `json:"provider"` // "openai", "gemini"
	Model          string    `json:"model"`
	Chart          string    `json:"chart"` // chart payload JSON, assistant rows only
	CreatedAt      time.Time `json:"created_at"`
}

// Setting represents a configuration setting
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
