package llm

import (
	"strings"

	"github.com/cloudwego/eino/schema"
)

// buildConversationContext renders recent history into the tagged plain-text
// block the classifier prompt expects, followed by the current message.
func buildConversationContext(messages []*schema.Message, maxTurns int, query string) string {
	recent := trimTail(messages, maxTurns)

	var b strings.Builder
	b.WriteString("<conversation_context>\n")
	for _, msg := range recent {
		if msg == nil || msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.User:
			b.WriteString("UserMessage(" + msg.Content + ")\n")
		case schema.Assistant:
			b.WriteString("AssistantMessage(" + msg.Content + ")\n")
		}
	}
	b.WriteString("</conversation_context>\n")
	b.WriteString("<current_message_to_analyze>\n")
	b.WriteString("UserMessage(" + query + ")\n")
	b.WriteString("</current_message_to_analyze>")
	return b.String()
}

// trimTail returns a copy of the last maxTurns messages.
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
