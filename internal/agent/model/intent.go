package model

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// Intent is the classified goal of the user's current request. The set is
// closed: anything the classifier cannot place into a known label collapses
// to IntentUnknown.
type Intent string

const (
	IntentBooking      Intent = "booking"
	IntentRescheduling Intent = "rescheduling"
	IntentQuestion     Intent = "question"
	IntentUnknown      Intent = "unknown"
)

// String returns the string representation of the intent.
func (i Intent) String() string {
	return string(i)
}

// ParseIntent normalises a raw label into a known intent. Unknown labels,
// including the empty string, map to IntentUnknown.
func ParseIntent(v string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(v))) {
	case IntentBooking:
		return IntentBooking
	case IntentRescheduling:
		return IntentRescheduling
	case IntentQuestion:
		return IntentQuestion
	default:
		return IntentUnknown
	}
}

// ErrClassifierUnavailable indicates the underlying classification capability
// failed (timeout, transport, malformed response stream). Callers treat the
// accompanying intent as IntentUnknown and degrade gracefully.
var ErrClassifierUnavailable = errors.New("intent classifier unavailable")

// IntentClassifier maps a raw utterance, optionally with recent history for
// context, to exactly one Intent. Implementations own their timeout and retry
// policy and must return within bounded time; on failure they return
// IntentUnknown together with ErrClassifierUnavailable.
type IntentClassifier interface {
	Classify(ctx context.Context, query string, history []*schema.Message) (Intent, error)
}

// QuestionAnswerer maps a raw utterance to a free-text answer. Implementations
// never propagate failures; on error they return a fixed fallback string.
type QuestionAnswerer interface {
	Answer(ctx context.Context, query string, history []*schema.Message) string
}

// DeliverySink emits an outbound message to the user's channel.
type DeliverySink interface {
	Send(ctx context.Context, sessionID string, text string) error
}
