package db

import (
	"fmt"
	"time"
)

// CreateMessage creates a new message in a conversation. chartJSON is
// the serialized chart payload for assistant rows, "" otherwise.
func (db *DB) CreateMessage(conversationID int64, role, content, provider, model, chartJSON string) (*Message, error) {
	now := time.Now()
	result, err := db.conn.Exec(
		"INSERT INTO messages (conversation_id, role, content, provider, model, chart, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		conversationID, role, content, provider, model, chartJSON, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get message ID: %w", err)
	}

	// Update conversation's updated_at timestamp
	if err := db.TouchConversation(conversationID); err != nil {
		return nil, err
	}

	return &Message{
		ID:             id,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Provider:       provider,
		Model:          model,
		Chart:          chartJSON,
		CreatedAt:      now,
	}, nil
}

// ListMessages retrieves all messages in a conversation in chronological order
func (db *DB) ListMessages(conversationID int64) ([]*Message, error) {
	rows, err := db.conn.Query(
		"SELECT id, conversation_id, role, content, provider, model, chart, created_at FROM messages WHERE conversation_id = ? ORDER BY created_at ASC, id ASC",
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.Provider, &msg.Model, &msg.Chart, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &msg)
	}

	return messages, nil
}
