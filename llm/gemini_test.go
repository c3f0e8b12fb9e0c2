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

func newGeminiTestProvider(t *testing.T, handler http.HandlerFunc) (*GeminiProvider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gemini-1.5-flash",
	})
	if err != nil {
		t.Fatal(err)
	}
	return p, server
}

func TestGemini_Ask(t *testing.T) {
	var gotPath, gotQuery string
	var gotReq GeminiRequest

	p, _ := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]any{{"text": "Revenue grew 10% in Q1."}},
					"role":  "model",
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	reply, err := p.Ask(context.Background(), "Summarize Q1", "Revenue grew 10% in Q1...")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != "Revenue grew 10% in Q1." {
		t.Errorf("reply = %q", reply)
	}

	// Key travels as a URL query parameter, not a header.
	if !strings.Contains(gotQuery, "key=test-key") {
		t.Errorf("query = %q, want key param", gotQuery)
	}
	if !strings.HasSuffix(gotPath, "models/gemini-1.5-flash:generateContent") {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 {
		t.Fatalf("contents = %+v", gotReq.Contents)
	}
	text := gotReq.Contents[0].Parts[0].Text
	if !strings.Contains(text, "Revenue grew 10% in Q1...") || !strings.Contains(text, "Summarize Q1") {
		t.Errorf("prompt should carry context and question, got %q", text)
	}
	if gotReq.GenerationConfig == nil || gotReq.GenerationConfig.MaxOutputTokens == 0 {
		t.Error("generationConfig should be populated")
	}
}

func TestGemini_EmptyEnvelopeFallsBack(t *testing.T) {
	p, _ := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	reply, err := p.Ask(context.Background(), "q", "ctx")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != Fallback {
		t.Errorf("reply = %q, want fallback", reply)
	}
}

func TestGemini_ProviderError(t *testing.T) {
	p, _ := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := p.Ask(context.Background(), "q", "ctx")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("want ProviderError, got %v", err)
	}
	if perr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d", perr.Status)
	}
	if perr.Message != "API key not valid" {
		t.Errorf("Message = %q", perr.Message)
	}
}

func TestGemini_TransportError(t *testing.T) {
	p, server := newGeminiTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := p.Ask(context.Background(), "q", "ctx")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("want TransportError, got %v", err)
	}
}

func TestGemini_MissingCredential(t *testing.T) {
	p, err := NewGeminiProvider(Config{})
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Ask(context.Background(), "q", "ctx")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("want ErrMissingCredential, got %v", err)
	}
}
