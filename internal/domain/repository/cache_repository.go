package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/huc-prioritizer/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetNames получает справочный список имён; nil при промахе
	GetNames(ctx context.Context, list string) ([]string, error)

	// SetNames сохраняет справочный список имён
	SetNames(ctx context.Context, list string, names []string, ttl time.Duration) error

	// GetScenarioResult получает последний результат сессии; nil при промахе
	GetScenarioResult(ctx context.Context, sessionID uuid.UUID) (*domain.ScenarioResult, error)

	// SetScenarioResult сохраняет результат сессии
	SetScenarioResult(ctx context.Context, sessionID uuid.UUID, result *domain.ScenarioResult, ttl time.Duration) error

	// DeleteScenarioResult удаляет результат сессии
	DeleteScenarioResult(ctx context.Context, sessionID uuid.UUID) error
}
