package llm

import (
	"context"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/sunset-resort/concierge/internal/agent/model"
	"github.com/sunset-resort/concierge/internal/agent/prompts"
	logx "github.com/sunset-resort/concierge/pkg/logger"
)

// FallbackAnswer is returned whenever the underlying capability fails.
const FallbackAnswer = "Sorry, something went wrong. Please try again."

// Answerer answers free-text guest questions with the hotel profile in
// context. It never surfaces errors: any failure yields FallbackAnswer.
type Answerer struct {
	cm        einomodel.BaseChatModel
	modelName string
	hotel     model.HotelProfile
	maxTurns  int
	timeout   time.Duration
}

// NewAnswerer builds an Answerer from the chat model and config.
func NewAnswerer(cm einomodel.BaseChatModel, modelName string, cfg *model.AnswererModelConfig, conv model.ConversationConfig, hotel model.HotelProfile) *Answerer {
	return &Answerer{
		cm:        cm,
		modelName: modelName,
		hotel:     hotel,
		maxTurns:  conv.Answerer.MaxTurns,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Answer implements model.QuestionAnswerer.
func (a *Answerer) Answer(ctx context.Context, query string, history []*schema.Message) string {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	systemPrompt, err := prompts.RenderAnswerSystem(ctx, a.hotel)
	if err != nil {
		logx.Error().Err(err).Msg("render answerer system prompt")
		return FallbackAnswer
	}

	messages := make([]*schema.Message, 0, a.maxTurns+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, trimTail(history, a.maxTurns)...)
	messages = append(messages, schema.UserMessage(query))

	out, err := a.cm.Generate(ctx, messages)
	if err != nil {
		logx.Error().Err(err).Str("model", a.modelName).Msg("answerer generate failed")
		return FallbackAnswer
	}
	if out == nil || out.Content == "" {
		logx.Warn().Str("model", a.modelName).Msg("answerer returned empty message")
		return FallbackAnswer
	}

	logUsage("answerer", a.modelName, out)

	return out.Content
}

var _ model.QuestionAnswerer = (*Answerer)(nil)
