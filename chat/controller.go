package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"doc-chat/chart"
	"doc-chat/db"
	"doc-chat/document"
	"doc-chat/llm"
	"doc-chat/utils"
)

// Submission rejections. None of these mutate conversation state.
var (
	ErrEmptyQuestion = errors.New("question is empty")
	ErrNoDocument    = errors.New("no document loaded")
	ErrBusy          = errors.New("a request is already in flight")

	// ErrStaleSession marks a reply that resolved after its session was
	// replaced by a new document. Callers drop it silently.
	ErrStaleSession = errors.New("session was replaced while the request was in flight")
)

// SettingsStore persists the provider selection and its credential.
// *db.DB satisfies it; tests inject a map-backed fake.
type SettingsStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error
}

// Recorder archives sessions and turns. Optional: a nil Recorder means
// the conversation lives only in memory.
type Recorder interface {
	CreateConversation(title, fileName string) (*db.Conversation, error)
	CreateMessage(conversationID int64, role, content, provider, model, chartJSON string) (*db.Message, error)
}

// providerFactory builds a provider by name; swapped out in tests.
type providerFactory func(name string, config llm.Config) (llm.Provider, error)

// Controller owns the conversation history and the credential/provider
// state for one document session, and runs the request/response cycle:
// compose prompt, dispatch once, parse the reply, append the turn.
type Controller struct {
	mu sync.Mutex

	settings SettingsStore
	recorder Recorder
	logger   *utils.Logger
	configs  map[string]llm.Config // base config per provider name
	maxChars int
	factory  providerFactory

	provider string
	apiKey   string
	session  *Session
	turns    []Turn
	convID   int64
	pending  bool
}

// NewController restores the persisted provider selection and credential
// from the settings store. defaultProvider is used when nothing is
// stored yet.
func NewController(settings SettingsStore, recorder Recorder, configs map[string]llm.Config, maxContextChars int, defaultProvider string, logger *utils.Logger) (*Controller, error) {
	provider, err := settings.GetSetting(db.SettingProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider setting: %w", err)
	}
	if provider == "" {
		provider = defaultProvider
	}

	apiKey, err := settings.GetSetting(db.SettingAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	if maxContextChars <= 0 {
		maxContextChars = llm.DefaultMaxContextChars
	}

	return &Controller{
		settings: settings,
		recorder: recorder,
		logger:   logger,
		configs:  configs,
		maxChars: maxContextChars,
		factory:  llm.New,
		provider: provider,
		apiKey:   apiKey,
	}, nil
}

// Provider returns the currently selected provider name.
func (c *Controller) Provider() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider
}

// HasCredential reports whether a key is stored for the selected provider.
func (c *Controller) HasCredential() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKey != ""
}

// SetProvider selects a provider. Keys are not portable across
// providers, so switching clears the stored credential; submissions are
// rejected until a fresh key is entered.
func (c *Controller) SetProvider(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name == c.provider {
		return nil
	}
	if _, ok := c.configs[name]; !ok {
		return &llm.UnknownProviderError{Name: name}
	}

	if err := c.settings.DeleteSetting(db.SettingAPIKey); err != nil {
		return err
	}
	if err := c.settings.SetSetting(db.SettingProvider, name); err != nil {
		return err
	}

	c.provider = name
	c.apiKey = ""
	c.logger.Info("Provider switched to %s, stored credential cleared", name)
	return nil
}

// SetAPIKey stores the credential for the selected provider. It
// persists immediately and applies to the next submission.
func (c *Controller) SetAPIKey(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.settings.SetSetting(db.SettingAPIKey, key); err != nil {
		return err
	}
	c.apiKey = key
	return nil
}

// LoadDocument starts a fresh session around doc, discarding the
// previous history. A reply from the old session that is still in
// flight will be recognized by its session tag and dropped.
func (c *Controller) LoadDocument(doc *document.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session = newSession(doc)
	c.turns = nil
	c.pending = false
	c.convID = 0

	if c.recorder != nil {
		conv, err := c.recorder.CreateConversation(doc.FileName, doc.FileName)
		if err != nil {
			// Archiving is best effort; the live session works without it.
			c.logger.Warn("Failed to archive session for %s: %v", doc.FileName, err)
		} else {
			c.convID = conv.ID
		}
	}

	c.logger.Info("Loaded document %s (%d chars, %d pages)", doc.FileName, len(doc.RawText), doc.Pages)
	return nil
}

// Session returns the active session, or nil before the first document.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Turns returns a snapshot of the conversation history in order.
func (c *Controller) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Ask runs one request/response cycle. The user turn is appended before
// the network call and survives a failed call; the assistant turn is
// appended only on success. At most one request may be in flight —
// concurrent submissions fail with ErrBusy rather than queue.
func (c *Controller) Ask(ctx context.Context, question string) (Turn, error) {
	c.mu.Lock()

	if question == "" {
		c.mu.Unlock()
		return Turn{}, ErrEmptyQuestion
	}
	if c.session == nil {
		c.mu.Unlock()
		return Turn{}, ErrNoDocument
	}
	if c.pending {
		c.mu.Unlock()
		return Turn{}, ErrBusy
	}
	if c.apiKey == "" {
		c.mu.Unlock()
		return Turn{}, llm.ErrMissingCredential
	}

	config := c.configs[c.provider]
	config.APIKey = c.apiKey
	provider, err := c.factory(c.provider, config)
	if err != nil {
		c.mu.Unlock()
		return Turn{}, err
	}

	// Optimistic append: the user turn always lands before dispatch.
	userTurn := newTurn(SenderUser, question, nil)
	c.turns = append(c.turns, userTurn)
	c.record(userTurn, config.Model)

	c.pending = true
	sessionID := c.session.ID
	docContext := llm.TruncateContext(c.session.Document.RawText, c.maxChars)
	c.mu.Unlock()

	reply, askErr := provider.Ask(ctx, question, docContext)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if c.session == nil || c.session.ID != sessionID {
		// The document changed while we were waiting; whatever came
		// back belongs to a conversation that no longer exists.
		c.logger.Warn("Discarding reply for superseded session %s", sessionID)
		return Turn{}, ErrStaleSession
	}

	if askErr != nil {
		c.logger.Error("Provider %s call failed: %v", c.provider, askErr)
		return Turn{}, askErr
	}

	display, payload := chart.Extract(reply)
	assistantTurn := newTurn(SenderAssistant, display, payload)
	c.turns = append(c.turns, assistantTurn)
	c.record(assistantTurn, config.Model)

	return assistantTurn, nil
}

// record archives a turn; failures are logged, never surfaced.
func (c *Controller) record(turn Turn, model string) {
	if c.recorder == nil || c.convID == 0 {
		return
	}

	chartJSON := ""
	if turn.Chart != nil {
		if data, err := json.Marshal(turn.Chart); err == nil {
			chartJSON = string(data)
		}
	}

	provider := ""
	if turn.Sender == SenderAssistant {
		provider = c.provider
	} else {
		model = ""
	}

	if _, err := c.recorder.CreateMessage(c.convID, string(turn.Sender), turn.Text, provider, model, chartJSON); err != nil {
		c.logger.Warn("Failed to archive %s turn: %v", turn.Sender, err)
	}
}
