package agent

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/sunset-resort/concierge/internal/agent/engine"
	"github.com/sunset-resort/concierge/internal/agent/model"
	"github.com/sunset-resort/concierge/internal/agent/repo"
	"github.com/sunset-resort/concierge/internal/agent/store"
)

type scriptedClassifier struct {
	intents []model.Intent
	calls   int
}

func (s *scriptedClassifier) Classify(ctx context.Context, query string, history []*schema.Message) (model.Intent, error) {
	intent := s.intents[s.calls%len(s.intents)]
	s.calls++
	return intent, nil
}

type fixedAnswerer struct{ answer string }

func (f *fixedAnswerer) Answer(ctx context.Context, query string, history []*schema.Message) string {
	return f.answer
}

type captureSink struct {
	sent []string
}

func (c *captureSink) Send(ctx context.Context, sessionID string, text string) error {
	c.sent = append(c.sent, text)
	return nil
}

func newTestService(t *testing.T, classifier model.IntentClassifier) (*Service, *captureSink, model.ReservationStore, model.SessionRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	sessions := repo.NewRedisSessionRepository(rdb, time.Minute)

	reservations := store.NewFileReservationStore(filepath.Join(t.TempDir(), "reservations.json"))
	answerer := &fixedAnswerer{answer: "Checkout is at 11:00 AM."}
	sink := &captureSink{}

	eng := engine.New(classifier, answerer, reservations, model.DefaultHotel())
	return NewService(eng, sessions, sink), sink, reservations, sessions
}

func TestHandleMessageFullBookingSession(t *testing.T) {
	svc, sink, reservations, sessions := newTestService(t, &scriptedClassifier{intents: []model.Intent{model.IntentBooking}})
	ctx := context.Background()

	turns := []string{"I want to book a room", "2025-07-01", "2025-07-03", "deluxe", "2"}
	var last string
	for _, text := range turns {
		reply, err := svc.HandleMessage(ctx, "guest-42", text)
		require.NoError(t, err)
		last = reply
	}

	require.Contains(t, last, "Booking confirmed!")
	require.Len(t, sink.sent, len(turns))
	require.Equal(t, last, sink.sent[len(sink.sent)-1])

	// state and history survived in the repository across turns
	st, err := sessions.LoadState(ctx, "guest-42")
	require.NoError(t, err)
	require.Equal(t, model.StageComplete, st.Stage)
	require.Len(t, st.History, len(turns)*2)

	n, err := sessions.MessageCount(ctx, "guest-42")
	require.NoError(t, err)
	require.Equal(t, len(turns)*2, n)

	// the reservation landed with the collected values
	const marker = "Reservation ID: "
	i := strings.Index(last, marker)
	require.GreaterOrEqual(t, i, 0)
	rest := last[i+len(marker):]
	id := rest[:strings.Index(rest, ".")]

	rec, err := reservations.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "2025-07-01", rec.CheckIn)
	require.Equal(t, "2025-07-03", rec.CheckOut)
	require.Equal(t, "deluxe", rec.RoomType)
	require.Equal(t, 2, rec.Guests)
}

func TestHandleMessageQuestionDoesNotTouchStore(t *testing.T) {
	svc, sink, reservations, _ := newTestService(t, &scriptedClassifier{intents: []model.Intent{model.IntentQuestion}})
	ctx := context.Background()

	reply, err := svc.HandleMessage(ctx, "guest-7", "what time is checkout?")
	require.NoError(t, err)
	require.Equal(t, "Checkout is at 11:00 AM.", reply)
	require.Equal(t, []string{"Checkout is at 11:00 AM."}, sink.sent)

	_, err = reservations.Get(ctx, "anything")
	require.ErrorIs(t, err, model.ErrReservationNotFound)
}

func TestHandleMessageSessionsAreIndependent(t *testing.T) {
	svc, _, _, sessions := newTestService(t, &scriptedClassifier{intents: []model.Intent{model.IntentBooking}})
	ctx := context.Background()

	_, err := svc.HandleMessage(ctx, "guest-a", "book a room")
	require.NoError(t, err)
	_, err = svc.HandleMessage(ctx, "guest-a", "2025-07-01")
	require.NoError(t, err)

	stB, err := sessions.LoadState(ctx, "guest-b")
	require.NoError(t, err)
	require.Equal(t, model.StageAwaitingIntent, stB.Stage)
	require.Empty(t, stB.History)

	stA, err := sessions.LoadState(ctx, "guest-a")
	require.NoError(t, err)
	require.Equal(t, model.StageCollectingBooking, stA.Stage)
	require.Equal(t, 1, stA.SlotIndex)
}
