package db

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSettings_RoundTrip(t *testing.T) {
	database := newTestDB(t)

	if v, err := database.GetSetting(SettingProvider); err != nil || v != "" {
		t.Fatalf("GetSetting on empty store = %q, %v", v, err)
	}

	if err := database.SetSetting(SettingProvider, "openai"); err != nil {
		t.Fatal(err)
	}
	if err := database.SetSetting(SettingAPIKey, "sk-first"); err != nil {
		t.Fatal(err)
	}

	if v, _ := database.GetSetting(SettingAPIKey); v != "sk-first" {
		t.Errorf("api_key = %q", v)
	}

	// Overwrite
	if err := database.SetSetting(SettingAPIKey, "sk-second"); err != nil {
		t.Fatal(err)
	}
	if v, _ := database.GetSetting(SettingAPIKey); v != "sk-second" {
		t.Errorf("api_key after overwrite = %q", v)
	}

	// Delete
	if err := database.DeleteSetting(SettingAPIKey); err != nil {
		t.Fatal(err)
	}
	if v, _ := database.GetSetting(SettingAPIKey); v != "" {
		t.Errorf("api_key after delete = %q", v)
	}
}

func TestConversationAndMessages(t *testing.T) {
	database := newTestDB(t)

	conv, err := database.CreateConversation("report.pdf", "report.pdf")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := database.CreateMessage(conv.ID, "user", "Summarize Q1", "", "", ""); err != nil {
		t.Fatal(err)
	}
	chartJSON := `{"type":"bar","data":[{"q":"Q1","v":1}],"xKey":"q","yKey":"v"}`
	if _, err := database.CreateMessage(conv.ID, "assistant", "Revenue grew.", "openai", "gpt-4o-mini", chartJSON); err != nil {
		t.Fatal(err)
	}

	messages, err := database.ListMessages(conv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[0].Role != "user" || messages[1].Role != "assistant" {
		t.Errorf("order = %s, %s", messages[0].Role, messages[1].Role)
	}
	if messages[1].Chart != chartJSON {
		t.Errorf("chart = %q", messages[1].Chart)
	}

	if err := database.DeleteConversation(conv.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := database.GetConversation(conv.ID); err == nil {
		t.Error("conversation should be gone")
	}
}
