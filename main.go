package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"doc-chat/chat"
	"doc-chat/db"
	"doc-chat/document"
	"doc-chat/llm"
	"doc-chat/ui"
	"doc-chat/utils"
)

var (
	version = "0.1.0"
)

// envKeys maps each provider to the environment variable that can seed
// its credential when none is stored yet.
var envKeys = map[string]string{
	llm.ProviderOpenAI: "OPENAI_API_KEY",
	llm.ProviderGemini: "GEMINI_API_KEY",
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *showVersion {
		fmt.Printf("DocChat v%s\n", version)
		os.Exit(0)
	}

	// A .env next to the binary may carry API keys; absence is fine.
	_ = godotenv.Load()

	// Initialize logger
	logger, err := utils.NewLogger(utils.GetLogPath())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.SetVerbose(*verbose)

	logger.Info("Starting DocChat v%s", version)

	// Load or create default configuration
	var config *utils.Config
	var actualConfigPath string
	if *configPath != "" {
		actualConfigPath = *configPath
		config, err = utils.LoadConfig(actualConfigPath)
		if err != nil {
			logger.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	} else {
		actualConfigPath, err = utils.EnsureDefaultConfig()
		if err != nil {
			logger.Error("Failed to create default config: %v", err)
			os.Exit(1)
		}
		logger.Info("Using config file: %s", actualConfigPath)

		config, err = utils.LoadConfig(actualConfigPath)
		if err != nil {
			logger.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	}

	// Initialize database
	database, err := db.New(config.Data.DBPath)
	if err != nil {
		logger.Error("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("Database initialized: %s", config.Data.DBPath)

	controller, err := chat.NewController(
		database,
		database,
		providerConfigs(config),
		config.Chat.MaxContextChars,
		llm.ProviderOpenAI,
		logger,
	)
	if err != nil {
		logger.Error("Failed to initialize controller: %v", err)
		os.Exit(1)
	}

	seedCredentialFromEnv(controller, logger)

	// Create and run application
	app := ui.NewApp(config, actualConfigPath, controller, document.NewPDFExtractor(), logger)

	logger.Info("Application started")
	app.Run()
	logger.Info("Application stopped")
}

// providerConfigs translates the config file's provider blocks into the
// llm package's config shape. Keys are injected per call by the
// controller, never stored in the file.
func providerConfigs(config *utils.Config) map[string]llm.Config {
	configs := make(map[string]llm.Config, len(config.LLMProviders))
	for name, pc := range config.LLMProviders {
		configs[name] = llm.Config{
			ProviderName: pc.DisplayName,
			BaseURL:      pc.BaseURL,
			Model:        pc.DefaultModel,
			Models:       pc.Models,
			MaxTokens:    pc.MaxTokens,
			Temperature:  pc.Temperature,
		}
	}
	return configs
}

// seedCredentialFromEnv fills an empty stored credential from the
// selected provider's environment variable.
func seedCredentialFromEnv(controller *chat.Controller, logger *utils.Logger) {
	if controller.HasCredential() {
		return
	}
	envKey, ok := envKeys[controller.Provider()]
	if !ok {
		return
	}
	if key := os.Getenv(envKey); key != "" {
		if err := controller.SetAPIKey(key); err != nil {
			logger.Warn("Failed to store credential from %s: %v", envKey, err)
			return
		}
		logger.Info("Credential seeded from %s", envKey)
	}
}
