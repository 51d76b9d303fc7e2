package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/sunset-resort/concierge/internal/agent/model"
)

//go:embed template/intent_prompt.txt
var intentSystemPrompt string

//go:embed template/answer_prompt.txt
var answerSystemPrompt string

// RenderIntentSystem renders the classifier system prompt via the Eino prompt
// component. This triggers prompt callbacks and returns the final string.
func RenderIntentSystem(ctx context.Context, hotel model.HotelProfile) (string, error) {
	labels := []string{
		model.IntentBooking.String(),
		model.IntentRescheduling.String(),
		model.IntentQuestion.String(),
		model.IntentUnknown.String(),
	}

	// Safely render known tokens only to avoid interfering with braces in the template
	content := strings.NewReplacer(
		"{hotel_name}", hotel.Name,
		"{intents}", strings.Join(labels, ", "),
	).Replace(intentSystemPrompt)

	return renderSystem(ctx, content)
}

// RenderAnswerSystem renders the question-answerer system prompt with the
// hotel profile injected as JSON.
func RenderAnswerSystem(ctx context.Context, hotel model.HotelProfile) (string, error) {
	content := strings.NewReplacer(
		"{hotel_name}", hotel.Name,
		"{hotel_data}", hotel.PromptJSON(),
	).Replace(answerSystemPrompt)

	return renderSystem(ctx, content)
}

// renderSystem wraps the content via the Eino prompt component using a
// messages placeholder so prompt callbacks fire.
func renderSystem(ctx context.Context, content string) (string, error) {
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}
