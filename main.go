package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/Inshalc/battery-soh-chatbot/adapters/gemini"
	"github.com/Inshalc/battery-soh-chatbot/adapters/openai"
	"github.com/Inshalc/battery-soh-chatbot/adapters/postgres"
	"github.com/Inshalc/battery-soh-chatbot/adapters/regression"
	"github.com/Inshalc/battery-soh-chatbot/api"
	"github.com/Inshalc/battery-soh-chatbot/app"
	"github.com/Inshalc/battery-soh-chatbot/internal/config"
	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
	"github.com/Inshalc/battery-soh-chatbot/internal/usage"
	"github.com/Inshalc/battery-soh-chatbot/ports"
)

// buildProviders assembles the generative fallback chain: the Gemini
// priority list first, then OpenAI when configured. An unconfigured
// provider is simply absent; the chain degrades to the knowledge base.
func buildProviders(cfg *config.Config) ([]ports.Provider, error) {
	var providers []ports.Provider

	if cfg.AI.GeminiKey != "" {
		geminiProviders, err := gemini.FromPriorityList(gemini.Config{
			APIKey:      cfg.AI.GeminiKey,
			Timeout:     cfg.AI.Timeout,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
		}, cfg.AI.GeminiModels)
		if err != nil {
			return nil, err
		}
		providers = append(providers, geminiProviders...)
	} else {
		log.Println("[Main] GEMINI_API_KEY not set; Gemini providers disabled")
	}

	if cfg.AI.OpenAIKey != "" {
		openaiClient, err := openai.NewClient(openai.Config{
			APIKey:      cfg.AI.OpenAIKey,
			Timeout:     cfg.AI.Timeout,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
		}, cfg.AI.OpenAIModel)
		if err != nil {
			return nil, err
		}
		providers = append(providers, openaiClient)
	} else {
		log.Println("[Main] OPENAI_API_KEY not set; OpenAI fallback disabled")
	}

	return providers, nil
}

// initDatabase connects the optional audit database
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.Database.URL == "" {
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	providers, err := buildProviders(cfg)
	if err != nil {
		log.Fatalf("Failed to build providers: %v", err)
	}

	predictor, err := regression.NewClient(cfg.Model.URL, cfg.Model.Timeout)
	if err != nil {
		log.Fatalf("Failed to create regression client: %v", err)
	}

	var history ports.PredictionRepository
	var usageRepo ports.UsageRepository
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if db != nil {
		defer db.Close()
		history = postgres.NewPredictionRepository(db)
		usageRepo = postgres.NewUsageRepository(db)
		log.Println("[Main] prediction history and usage tracking enabled")
	}

	predictions := app.NewPredictionService(predictor, history, cfg.Battery.DefaultThreshold, cfg.Model.Timeout)
	chain := app.NewProviderChain(providers, cfg.AI.Timeout)
	usageSvc := usage.NewService(usageRepo)
	orchestrator := app.NewChatOrchestrator(chain, usageSvc, cfg.Battery.DefaultThreshold)

	server := api.NewServer(cfg, predictions, orchestrator, usageSvc, history)
	if err := server.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
