package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/sunset-resort/concierge/internal/agent/model"
)

func newTestRepo(t *testing.T) (*RedisSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisSessionRepository(rdb, time.Minute), mr
}

func TestLoadStateFreshSession(t *testing.T) {
	r, _ := newTestRepo(t)

	st, err := r.LoadState(context.Background(), "sess-new")
	require.NoError(t, err)
	require.Equal(t, "sess-new", st.SessionID)
	require.Equal(t, model.StageAwaitingIntent, st.Stage)
	require.Equal(t, model.IntentUnknown, st.PendingIntent)
	require.Empty(t, st.Slots)
	require.Empty(t, st.History)
}

func TestAddMessageAndLoadHistory(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "sess-1", schema.UserMessage("book a room")))
	require.NoError(t, r.AddMessage(ctx, "sess-1", schema.AssistantMessage("Please provide check-in date (YYYY-MM-DD).", nil)))

	h, err := r.LoadHistory(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, "sess-1", h.SessionID)
	require.Len(t, h.Messages, 2)
	require.Equal(t, schema.User, h.Messages[0].Role)
	require.Equal(t, "book a room", h.Messages[0].Content)
	require.Equal(t, schema.Assistant, h.Messages[1].Role)
}

func TestSaveStateRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	st := model.NewConversationState("sess-2")
	st.Stage = model.StageCollectingBooking
	st.SlotIndex = 2
	st.PendingIntent = model.IntentBooking
	st.Slots["check_in"] = "2025-07-01"
	st.Slots["check_out"] = "2025-07-03"
	require.NoError(t, r.SaveState(ctx, st))
	require.NoError(t, r.AddMessage(ctx, "sess-2", schema.UserMessage("2025-07-03")))

	got, err := r.LoadState(ctx, "sess-2")
	require.NoError(t, err)
	require.Equal(t, model.StageCollectingBooking, got.Stage)
	require.Equal(t, 2, got.SlotIndex)
	require.Equal(t, model.IntentBooking, got.PendingIntent)
	require.Equal(t, "2025-07-01", got.Slots["check_in"])
	require.Len(t, got.History, 1)
}

func TestMessageCount(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	n, err := r.MessageCount(ctx, "sess-3")
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, r.AddMessage(ctx, "sess-3", schema.UserMessage("hello")))
	n, err = r.MessageCount(ctx, "sess-3")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestClearSessionRemovesEverything(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	st := model.NewConversationState("sess-4")
	st.Stage = model.StageComplete
	require.NoError(t, r.SaveState(ctx, st))
	require.NoError(t, r.AddMessage(ctx, "sess-4", schema.UserMessage("hi")))

	require.NoError(t, r.ClearSession(ctx, "sess-4"))

	got, err := r.LoadState(ctx, "sess-4")
	require.NoError(t, err)
	require.Equal(t, model.StageAwaitingIntent, got.Stage)
	require.Empty(t, got.History)
}

func TestSessionKeysCarryTTL(t *testing.T) {
	r, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "sess-5", schema.UserMessage("hi")))
	require.NoError(t, r.SaveState(ctx, model.NewConversationState("sess-5")))

	require.Greater(t, mr.TTL("session:sess-5:messages"), time.Duration(0))
	require.Greater(t, mr.TTL("session:sess-5:state"), time.Duration(0))
}
