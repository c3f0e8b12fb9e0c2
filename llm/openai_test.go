package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newOpenAITestProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestOpenAI_Ask(t *testing.T) {
	var gotAuth string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
	}

	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "It grew 10%."}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	reply, err := p.Ask(context.Background(), "Summarize Q1", "Revenue grew 10% in Q1...")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != "It grew 10%." {
		t.Errorf("reply = %q", reply)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("messages = %+v", gotBody.Messages)
	}
	if gotBody.Messages[0].Role != "system" || !strings.Contains(gotBody.Messages[0].Content, "Revenue grew 10% in Q1...") {
		t.Errorf("system message = %+v", gotBody.Messages[0])
	}
	if gotBody.Messages[1].Role != "user" || gotBody.Messages[1].Content != "Summarize Q1" {
		t.Errorf("user message = %+v", gotBody.Messages[1])
	}
	if gotBody.MaxTokens == 0 {
		t.Error("max_tokens should be set")
	}
}

func TestOpenAI_EmptyEnvelopeFallsBack(t *testing.T) {
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	reply, err := p.Ask(context.Background(), "q", "ctx")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != Fallback {
		t.Errorf("reply = %q, want fallback", reply)
	}
}

func TestOpenAI_ProviderError(t *testing.T) {
	p := newOpenAITestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	})

	_, err := p.Ask(context.Background(), "q", "ctx")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("want ProviderError, got %v", err)
	}
	if perr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d", perr.Status)
	}
	if !strings.Contains(perr.Message, "Incorrect API key") {
		t.Errorf("Message = %q", perr.Message)
	}
}

func TestOpenAI_MissingCredential(t *testing.T) {
	p, err := NewOpenAIProvider(Config{})
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Ask(context.Background(), "q", "ctx")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("want ErrMissingCredential, got %v", err)
	}
}

func TestNew_Registry(t *testing.T) {
	for _, name := range []string{ProviderOpenAI, ProviderGemini} {
		p, err := New(name, Config{APIKey: "k"})
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
			continue
		}
		if p.Name() == "" {
			t.Errorf("New(%q) has empty name", name)
		}
	}

	_, err := New("mystery", Config{})
	var uerr *UnknownProviderError
	if !errors.As(err, &uerr) {
		t.Fatalf("want UnknownProviderError, got %v", err)
	}
}
