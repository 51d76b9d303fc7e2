package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/sunset-resort/concierge/internal/agent"
	"github.com/sunset-resort/concierge/internal/agent/engine"
	"github.com/sunset-resort/concierge/internal/agent/llm"
	"github.com/sunset-resort/concierge/internal/agent/model"
	"github.com/sunset-resort/concierge/internal/agent/repo"
	"github.com/sunset-resort/concierge/internal/agent/sink"
	"github.com/sunset-resort/concierge/internal/agent/store"
	"github.com/sunset-resort/concierge/internal/core"
	logx "github.com/sunset-resort/concierge/pkg/logger"
	pkgredis "github.com/sunset-resort/concierge/pkg/redis"
)

// AppConfig defines all configurable parameters for the concierge agent,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Classifier   model.ClassifierModelConfig
	Answerer     model.AnswererModelConfig
	Conversation model.ConversationConfig
	Store        model.StoreConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.EnvironmentFromOS()})

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	models, err := llm.NewChatModels(ctx, llm.ChatModelConfig{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		ClassifierConfig: &envCfg.Classifier,
		AnswererConfig:   &envCfg.Answerer,
	})
	if err != nil {
		log.Fatalf("Failed to create chat models: %v", err)
	}

	hotel := model.DefaultHotel()
	classifier := llm.NewClassifier(models.Classifier, models.ClassifierModelName, &envCfg.Classifier, envCfg.Conversation, hotel)
	answerer := llm.NewAnswerer(models.Answerer, models.AnswererModelName, &envCfg.Answerer, envCfg.Conversation, hotel)
	reservations := store.NewFileReservationStore(envCfg.Store.Path)

	eng := engine.New(classifier, answerer, reservations, hotel)
	svc := agent.NewService(eng, repo.NewRedisSessionRepository(rdb, ttl), sink.NewConsoleSink())

	// Scripted end-to-end conversation: a full booking followed by a question.
	sessionID := "demo-session-001"
	turns := []string{
		"I want to book a room",
		"2025-07-01",
		"2025-07-03",
		"deluxe",
		"2",
		"What are the hotel amenities?",
	}

	for i, text := range turns {
		fmt.Printf("\nTurn %d > %s\n", i+1, text)
		if _, err := svc.HandleMessage(ctx, sessionID, text); err != nil {
			log.Fatalf("Turn %d failed: %v", i+1, err)
		}
	}

	fmt.Println("\nDemo conversation completed.")
}
