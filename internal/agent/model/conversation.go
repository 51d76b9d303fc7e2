package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Stage is the discrete position of a session's workflow within the state
// machine. Slot-collecting stages carry the current slot index in
// ConversationState.SlotIndex.
type Stage string

const (
	StageAwaitingIntent       Stage = "awaiting_intent"
	StageCollectingBooking    Stage = "collecting_booking_slot"
	StageCollectingReschedule Stage = "collecting_reschedule_slot"
	StageAnsweringQuestion    Stage = "answering_question"
	StageComplete             Stage = "complete"
	StageError                Stage = "error"
)

// Terminal reports whether the stage ends the current workflow. A new inbound
// message on a terminal stage restarts intent detection within the session.
func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageError
}

// ConversationState is the per-session mutable record the workflow engine
// operates on. The engine itself is stateless between turns: state is loaded,
// mutated by exactly one turn, and saved back by the host.
type ConversationState struct {
	SessionID     string            `json:"session_id"`
	Stage         Stage             `json:"stage"`
	SlotIndex     int               `json:"slot_index"`
	PendingIntent Intent            `json:"pending_intent"`
	Slots         map[string]string `json:"slots"`

	// History is loaded from and persisted through the session repository
	// message list, not the state document.
	History []*schema.Message `json:"-"`
}

// NewConversationState creates a fresh state awaiting intent detection.
func NewConversationState(sessionID string) *ConversationState {
	return &ConversationState{
		SessionID:     sessionID,
		Stage:         StageAwaitingIntent,
		PendingIntent: IntentUnknown,
		Slots:         make(map[string]string),
	}
}

// ResetWorkflow drops the in-flight workflow (pending intent, slot progress)
// and returns the session to intent detection. History is untouched.
func (s *ConversationState) ResetWorkflow() {
	s.Stage = StageAwaitingIntent
	s.SlotIndex = 0
	s.PendingIntent = IntentUnknown
	s.Slots = make(map[string]string)
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	SessionID string
	Messages  []*schema.Message
}

// SessionRepository persists per-session conversation data: the ordered
// message history and the workflow state document.
type SessionRepository interface {
	// AddMessage appends a message to the session's ordered history.
	AddMessage(ctx context.Context, sessionID string, message *schema.Message) error

	// LoadHistory retrieves the full ordered history for a session.
	LoadHistory(ctx context.Context, sessionID string) (*ConversationHistory, error)

	// LoadState retrieves the workflow state for a session, with History
	// populated. A session seen for the first time yields a fresh state.
	LoadState(ctx context.Context, sessionID string) (*ConversationState, error)

	// SaveState persists the workflow state document for a session.
	SaveState(ctx context.Context, state *ConversationState) error

	// ClearSession removes all persisted data for a session.
	ClearSession(ctx context.Context, sessionID string) error

	// MessageCount returns the number of messages in the session's history.
	MessageCount(ctx context.Context, sessionID string) (int, error)
}
