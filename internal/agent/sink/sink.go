package sink

import (
	"context"
	"fmt"

	"github.com/sunset-resort/concierge/internal/agent/model"
	logx "github.com/sunset-resort/concierge/pkg/logger"
)

// ConsoleSink writes outbound messages to stdout. It stands in for a real
// channel (Instagram DM, SMS) during local runs and demos.
type ConsoleSink struct{}

func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{}
}

func (s *ConsoleSink) Send(ctx context.Context, sessionID string, text string) error {
	fmt.Printf("[DM to %s]: %s\n", sessionID, text)
	logx.Debug().Str("session_id", sessionID).Int("len", len(text)).Msg("outbound message delivered")
	return nil
}

var _ model.DeliverySink = (*ConsoleSink)(nil)
