package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
)

// maxUpdateAttempts - сколько раз Update перечитывает сессию при конфликте WATCH
const maxUpdateAttempts = 5

// ErrUpdateConflict - сессию не удалось обновить из-за постоянных конкурирующих записей
var ErrUpdateConflict = errors.New("session update conflict")

type sessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSessionRepository создает хранилище сессий в Redis
func NewSessionRepository(redis *Redis) repository.SessionRepository {
	return &sessionRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func runLockKey(id uuid.UUID) string {
	return "session:" + id.String() + ":run"
}

func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get session", zap.String("session_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("session get error: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepository) Save(ctx context.Context, s *domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(s.ID), data, ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", zap.String("session_id", s.ID.String()), zap.Error(err))
		return fmt.Errorf("session save error: %w", err)
	}
	return nil
}

// Update - оптимистичная транзакция: WATCH на ключ сессии, запись через MULTI/EXEC
func (r *sessionRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	ttl time.Duration,
	mutate func(s *domain.Session) error,
) (*domain.Session, error) {
	key := sessionKey(id)

	var updated *domain.Session
	txf := func(tx *redis.Tx) error {
		updated = nil

		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("session get error: %w", err)
		}

		var s domain.Session
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal session: %w", err)
		}
		if err := mutate(&s); err != nil {
			return err
		}

		out, err := json.Marshal(&s)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, ttl)
			return nil
		}); err != nil {
			return err
		}

		updated = &s
		return nil
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		r.logger.Debug("Session changed concurrently, retrying",
			zap.String("session_id", id.String()),
			zap.Int("attempt", attempt))
	}

	r.logger.Warn("Session update gave up after conflicts", zap.String("session_id", id.String()))
	return nil, ErrUpdateConflict
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id), runLockKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", zap.String("session_id", id.String()), zap.Error(err))
		return fmt.Errorf("session delete error: %w", err)
	}
	return nil
}

// AcquireRun - SETNX на ключ блокировки; lock живёт до ReleaseRun или TTL
func (r *sessionRepository) AcquireRun(ctx context.Context, id uuid.UUID, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, runLockKey(id), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		r.logger.Error("Failed to acquire run lock", zap.String("session_id", id.String()), zap.Error(err))
		return false, fmt.Errorf("run lock error: %w", err)
	}
	return ok, nil
}

func (r *sessionRepository) ReleaseRun(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, runLockKey(id)).Err(); err != nil {
		r.logger.Error("Failed to release run lock", zap.String("session_id", id.String()), zap.Error(err))
		return fmt.Errorf("run unlock error: %w", err)
	}
	return nil
}

func (r *sessionRepository) IsRunActive(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.client.Exists(ctx, runLockKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("run lock exists error: %w", err)
	}
	return n > 0, nil
}
