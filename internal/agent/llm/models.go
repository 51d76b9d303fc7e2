package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/sunset-resort/concierge/internal/agent/model"
	logx "github.com/sunset-resort/concierge/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey           string
	BaseURL          string
	ClassifierConfig *model.ClassifierModelConfig
	AnswererConfig   *model.AnswererModelConfig
}

// ChatModels holds the classifier and answerer chat models
type ChatModels struct {
	Classifier          *gemini.ChatModel
	Answerer            *gemini.ChatModel
	ClassifierModelName string
	AnswererModelName   string
}

// NewChatModels creates both chat models over a shared Gemini client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	classifierModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.ClassifierConfig.Model,
		Temperature: &config.ClassifierConfig.Temperature,
		MaxTokens:   &config.ClassifierConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	answererModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.AnswererConfig.Model,
		Temperature: &config.AnswererConfig.Temperature,
		MaxTokens:   &config.AnswererConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating answerer model")
		return nil, fmt.Errorf("error creating answerer model: %w", err)
	}

	return &ChatModels{
		Classifier:          classifierModel,
		Answerer:            answererModel,
		ClassifierModelName: config.ClassifierConfig.Model,
		AnswererModelName:   config.AnswererConfig.Model,
	}, nil
}
