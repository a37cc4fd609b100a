package main

import (
	"log"

	"github.com/joho/godotenv"

	"studyplan/adapters/api"
	"studyplan/adapters/llm"
	"studyplan/internal"
	"studyplan/internal/config"
)

func main() {
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.AI.APIKey == "" {
		log.Fatal("OPENAI_API_KEY is required for the insight proxy")
	}

	client, err := llm.NewClient(llm.Config{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Timeout:     cfg.AI.Timeout,
		Temperature: cfg.AI.Temperature,
	})
	if err != nil {
		log.Fatalf("failed to create LLM client: %v", err)
	}

	proxy := api.NewInsightProxy(client, api.ProxyConfig{
		Model:     cfg.AI.Model,
		MaxTokens: cfg.AI.MaxTokens,
		GinMode:   cfg.Server.GinMode,
	}, logger)

	log.Fatal(proxy.Run(":" + cfg.Server.Port))
}
