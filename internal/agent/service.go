package agent

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/sunset-resort/concierge/internal/agent/engine"
	"github.com/sunset-resort/concierge/internal/agent/model"
	logx "github.com/sunset-resort/concierge/pkg/logger"
)

// Service binds the stateless workflow engine to durable session state and a
// delivery channel. One inbound message is fully handled before the call
// returns; independent sessions may be handled concurrently.
type Service struct {
	engine   *engine.Engine
	sessions model.SessionRepository
	sink     model.DeliverySink
}

func NewService(eng *engine.Engine, sessions model.SessionRepository, sink model.DeliverySink) *Service {
	return &Service{
		engine:   eng,
		sessions: sessions,
		sink:     sink,
	}
}

// HandleMessage runs one conversation turn: load state, step the engine,
// persist history and state, deliver the reply. State is flushed before the
// reply leaves the process; a failed turn can be retried by the caller.
func (s *Service) HandleMessage(ctx context.Context, sessionID string, text string) (string, error) {
	st, err := s.sessions.LoadState(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if err := s.sessions.AddMessage(ctx, sessionID, schema.UserMessage(text)); err != nil {
		return "", err
	}

	reply := s.engine.Step(ctx, st, text)

	if err := s.sessions.AddMessage(ctx, sessionID, schema.AssistantMessage(reply, nil)); err != nil {
		// the turn already ran; keep going so the user still gets the reply
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to persist outbound message")
	}
	if err := s.sessions.SaveState(ctx, st); err != nil {
		return "", err
	}

	if err := s.sink.Send(ctx, sessionID, reply); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("delivery failed")
		return "", err
	}
	return reply, nil
}
