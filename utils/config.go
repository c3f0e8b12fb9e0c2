package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	LLMProviders map[string]ProviderConfig `json:"llm_providers"`
	Chat         ChatConfig                `json:"chat"`
	UI           UIConfig                  `json:"ui"`
	Data         DataConfig                `json:"data"`
}

// ProviderConfig represents LLM provider configuration
type ProviderConfig struct {
	DisplayName  string   `json:"display_name,omitempty"`
	BaseURL      string   `json:"base_url"`
	DefaultModel string   `json:"default_model"`
	Models       []string `json:"models,omitempty"`
	MaxTokens    int      `json:"max_tokens,omitempty"`
	Temperature  float64  `json:"temperature,omitempty"`
}

// ChatConfig bounds how much document text is embedded into a prompt
type ChatConfig struct {
	MaxContextChars int `json:"max_context_chars"`
}

// UIConfig represents UI configuration
type UIConfig struct {
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
}

// DataConfig represents data storage configuration
type DataConfig struct {
	DBPath string `json:"db_path"`
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Expand paths
	if config.Data.DBPath != "" {
		config.Data.DBPath = expandPath(config.Data.DBPath)
	}

	return &config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(configPath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ and relative paths
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	// Expand ~
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	// Make absolute
	absPath, err := filepath.Abs(path)
	if err == nil {
		return absPath
	}

	return path
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory
		return "./config/default.json"
	}

	return filepath.Join(configDir, "doc-chat", "config.json")
}

// EnsureDefaultConfig creates a default config file if it doesn't exist
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	// Check if config exists
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	defaultConfig := DefaultConfig()
	if err := SaveConfig(configPath, defaultConfig); err != nil {
		return "", err
	}

	return configPath, nil
}

// DefaultConfig returns the configuration a fresh install starts with.
// API keys are never stored here; they live in the settings table.
func DefaultConfig() *Config {
	return &Config{
		LLMProviders: map[string]ProviderConfig{
			"openai": {
				DisplayName:  "OpenAI",
				BaseURL:      "https://api.openai.com/v1",
				DefaultModel: "gpt-4o-mini",
				Models: []string{
					"gpt-4o-mini",
					"gpt-4o",
					"gpt-4-turbo-preview",
					"gpt-3.5-turbo",
				},
				MaxTokens:   1024,
				Temperature: 0.7,
			},
			"gemini": {
				DisplayName:  "Gemini",
				BaseURL:      "https://generativelanguage.googleapis.com/v1beta",
				DefaultModel: "gemini-1.5-flash",
				Models: []string{
					"gemini-1.5-flash",
					"gemini-1.5-pro",
					"gemini-2.0-flash-exp",
				},
				MaxTokens:   1024,
				Temperature: 0.7,
			},
		},
		Chat: ChatConfig{
			MaxContextChars: 12000,
		},
		UI: UIConfig{
			WindowWidth:  1000,
			WindowHeight: 720,
		},
		Data: DataConfig{
			DBPath: "./data/doc-chat.db",
		},
	}
}
