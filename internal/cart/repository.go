package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const maxWatchRetries = 5

// Repository persists one Session per user.
type Repository interface {
	Get(ctx context.Context, userID uint) (Session, error)
	Update(ctx context.Context, userID uint, fn func(Session) (Session, error)) (Session, error)
}

type repository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRepository(client *redis.Client, prefix string, ttl time.Duration) Repository {
	return &repository{client: client, prefix: prefix, ttl: ttl}
}

func (r *repository) key(userID uint) string {
	return fmt.Sprintf("%s:session:%d", r.prefix, userID)
}

func decodeSession(data []byte) (Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("unmarshaling session: %w", err)
	}
	return s, nil
}

// Get returns an empty session for a user that has none yet.
func (r *repository) Get(ctx context.Context, userID uint) (Session, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("getting session: %w", err)
	}
	return decodeSession(data)
}

// Update runs fn on the stored session under WATCH, retrying when another
// writer commits first. An error from fn aborts without writing.
func (r *repository) Update(ctx context.Context, userID uint, fn func(Session) (Session, error)) (Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("user_id", userID),
	)

	key := r.key(userID)
	var result Session

	txf := func(tx *redis.Tx) error {
		current := Session{}
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("getting session: %w", err)
		default:
			if current, err = decodeSession(data); err != nil {
				return err
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshaling session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		if err == nil {
			result = next
		}
		return err
	}

	for attempt := 1; attempt <= maxWatchRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			log.Debug("session changed during update, retrying", zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return Session{}, err
		}
		return result, nil
	}

	log.Warn("session update gave up after retries")
	return Session{}, ErrSessionConflict
}
