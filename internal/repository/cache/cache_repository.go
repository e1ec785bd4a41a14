package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func namesKey(list string) string {
	return "reference:" + list
}

func resultKey(sessionID uuid.UUID) string {
	return "scenario:result:" + sessionID.String()
}

// GetNames получает справочный список из кеша
func (r *cacheRepository) GetNames(ctx context.Context, list string) ([]string, error) {
	data, err := r.Get(ctx, namesKey(list))
	if err != nil || data == nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		r.logger.Error("Failed to unmarshal names from cache", zap.String("list", list), zap.Error(err))
		return nil, fmt.Errorf("unmarshal names: %w", err)
	}
	return names, nil
}

// SetNames сохраняет справочный список в кеше
func (r *cacheRepository) SetNames(ctx context.Context, list string, names []string, ttl time.Duration) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("marshal names: %w", err)
	}
	return r.Set(ctx, namesKey(list), data, ttl)
}

// GetScenarioResult получает последний результат сессии
func (r *cacheRepository) GetScenarioResult(ctx context.Context, sessionID uuid.UUID) (*domain.ScenarioResult, error) {
	data, err := r.Get(ctx, resultKey(sessionID))
	if err != nil || data == nil {
		return nil, err
	}

	var result domain.ScenarioResult
	if err := json.Unmarshal(data, &result); err != nil {
		r.logger.Error("Failed to unmarshal scenario result",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("unmarshal scenario result: %w", err)
	}
	return &result, nil
}

// SetScenarioResult сохраняет результат сессии
func (r *cacheRepository) SetScenarioResult(ctx context.Context, sessionID uuid.UUID, result *domain.ScenarioResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		r.logger.Error("Failed to marshal scenario result", zap.Error(err))
		return fmt.Errorf("marshal scenario result: %w", err)
	}
	return r.Set(ctx, resultKey(sessionID), data, ttl)
}

// DeleteScenarioResult удаляет результат сессии
func (r *cacheRepository) DeleteScenarioResult(ctx context.Context, sessionID uuid.UUID) error {
	return r.Delete(ctx, resultKey(sessionID))
}
