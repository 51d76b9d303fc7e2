package llm

import (
	"context"
	"regexp"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/sunset-resort/concierge/internal/agent/model"
	"github.com/sunset-resort/concierge/internal/agent/prompts"
	logx "github.com/sunset-resort/concierge/pkg/logger"
)

// labelPattern extracts the first known label anywhere in the model output,
// tolerating chatty responses around it.
var labelPattern = regexp.MustCompile(`(?i)(booking|rescheduling|question|unknown)`)

// Classifier maps an utterance to an Intent using a chat model. Every failure
// mode collapses to IntentUnknown: the caller never blocks beyond the
// configured timeout and never sees a transport error directly.
type Classifier struct {
	cm        einomodel.BaseChatModel
	modelName string
	hotel     model.HotelProfile
	maxTurns  int
	timeout   time.Duration
}

// NewClassifier builds a Classifier from the chat model and config.
func NewClassifier(cm einomodel.BaseChatModel, modelName string, cfg *model.ClassifierModelConfig, conv model.ConversationConfig, hotel model.HotelProfile) *Classifier {
	return &Classifier{
		cm:        cm,
		modelName: modelName,
		hotel:     hotel,
		maxTurns:  conv.Classifier.MaxTurns,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Classify implements model.IntentClassifier.
func (c *Classifier) Classify(ctx context.Context, query string, history []*schema.Message) (model.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	systemPrompt, err := prompts.RenderIntentSystem(ctx, c.hotel)
	if err != nil {
		logx.Error().Err(err).Msg("render classifier system prompt")
		return model.IntentUnknown, model.ErrClassifierUnavailable
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(buildConversationContext(history, c.maxTurns, query)),
	}

	out, err := c.cm.Generate(ctx, messages)
	if err != nil {
		logx.Error().Err(err).Str("model", c.modelName).Msg("classifier generate failed")
		return model.IntentUnknown, model.ErrClassifierUnavailable
	}
	if out == nil {
		logx.Warn().Str("model", c.modelName).Msg("classifier returned empty message")
		return model.IntentUnknown, model.ErrClassifierUnavailable
	}

	logUsage("classifier", c.modelName, out)

	return extractIntent(out.Content), nil
}

// extractIntent locates a known label in raw model output. Anything outside
// the closed label set, including empty output, maps to IntentUnknown.
func extractIntent(content string) model.Intent {
	m := labelPattern.FindString(content)
	if m == "" {
		return model.IntentUnknown
	}
	return model.ParseIntent(m)
}

var _ model.IntentClassifier = (*Classifier)(nil)
