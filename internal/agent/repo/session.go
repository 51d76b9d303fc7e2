package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	"github.com/sunset-resort/concierge/internal/agent/model"
	errx "github.com/sunset-resort/concierge/internal/core/error"
	logx "github.com/sunset-resort/concierge/pkg/logger"
)

// RedisSessionRepository persists session data in Redis: message history as a
// list of JSON-marshaled messages, workflow state as a JSON document. Both
// keys share a TTL that is extended on every write.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) messagesKey(sessionID string) string {
	return fmt.Sprintf("session:%s:messages", sessionID)
}

func (r *RedisSessionRepository) stateKey(sessionID string) string {
	return fmt.Sprintf("session:%s:state", sessionID)
}

func (r *RedisSessionRepository) AddMessage(ctx context.Context, sessionID string, message *schema.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal message")
		return fmt.Errorf("marshal message: %w", err)
	}
	key := r.messagesKey(sessionID)

	// append message
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push message to redis")
		return errx.WrapRedis(err)
	}
	return r.touch(ctx, key)
}

func (r *RedisSessionRepository) LoadHistory(ctx context.Context, sessionID string) (*model.ConversationHistory, error) {
	key := r.messagesKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.ConversationHistory{SessionID: sessionID, Messages: []*schema.Message{}}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load history from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return &model.ConversationHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *RedisSessionRepository) LoadState(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	key := r.stateKey(sessionID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logx.Error().Err(err).Str("key", key).Msg("failed to load state from redis")
		return nil, errx.WrapRedis(err)
	}

	state := model.NewConversationState(sessionID)
	if err == nil {
		if uerr := json.Unmarshal([]byte(raw), state); uerr != nil {
			logx.Error().Err(uerr).Str("sessionID", sessionID).Msg("failed to unmarshal state")
			return nil, fmt.Errorf("unmarshal state: %w", uerr)
		}
		if state.Slots == nil {
			state.Slots = make(map[string]string)
		}
	}

	history, err := r.LoadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state.History = history.Messages
	return state, nil
}

func (r *RedisSessionRepository) SaveState(ctx context.Context, state *model.ConversationState) error {
	b, err := json.Marshal(state)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", state.SessionID).Msg("failed to marshal state")
		return fmt.Errorf("marshal state: %w", err)
	}
	key := r.stateKey(state.SessionID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save state to redis")
		return errx.WrapRedis(err)
	}
	return r.touch(ctx, r.messagesKey(state.SessionID))
}

func (r *RedisSessionRepository) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, r.messagesKey(sessionID), r.stateKey(sessionID)).Err(); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisSessionRepository) MessageCount(ctx context.Context, sessionID string) (int, error) {
	key := r.messagesKey(sessionID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to get message count from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

// touch extends the TTL on a key so active sessions do not expire mid-flow.
func (r *RedisSessionRepository) touch(ctx context.Context, key string) error {
	if r.ttl <= 0 {
		return nil
	}
	if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
		return errx.WrapRedis(err)
	} else if !ok {
		logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on session key")
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
