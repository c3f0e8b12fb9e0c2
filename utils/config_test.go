package utils

import (
	"path/filepath"
	"testing"
)

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	config := DefaultConfig()
	config.Chat.MaxContextChars = 5000
	if err := SaveConfig(path, config); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Chat.MaxContextChars != 5000 {
		t.Errorf("MaxContextChars = %d", loaded.Chat.MaxContextChars)
	}
	for _, name := range []string{"openai", "gemini"} {
		p, ok := loaded.LLMProviders[name]
		if !ok {
			t.Fatalf("provider %q missing from default config", name)
		}
		if p.DefaultModel == "" || p.BaseURL == "" {
			t.Errorf("provider %q incomplete: %+v", name, p)
		}
	}
	// DBPath gets expanded to an absolute path on load.
	if !filepath.IsAbs(loaded.Data.DBPath) {
		t.Errorf("DBPath not expanded: %q", loaded.Data.DBPath)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("want error for missing config file")
	}
}
