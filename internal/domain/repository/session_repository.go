package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/huc-prioritizer/internal/domain"
)

// SessionRepository хранит состояние сессий и блокировку прогона
type SessionRepository interface {
	// Get возвращает сессию; nil если её нет или истёк TTL
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// Save сохраняет сессию с TTL
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Update применяет mutate к сохранённой сессии атомарно и продлевает TTL.
	// При конкурирующей записи mutate вызывается повторно на свежей копии.
	// Возвращает nil, nil если сессии нет; ошибка mutate возвращается как есть.
	Update(ctx context.Context, id uuid.UUID, ttl time.Duration, mutate func(s *domain.Session) error) (*domain.Session, error)

	// Delete удаляет сессию вместе с блокировкой
	Delete(ctx context.Context, id uuid.UUID) error

	// AcquireRun занимает слот прогона; false если сценарий уже активен
	AcquireRun(ctx context.Context, id uuid.UUID, ttl time.Duration) (bool, error)

	// ReleaseRun освобождает слот прогона
	ReleaseRun(ctx context.Context, id uuid.UUID) error

	// IsRunActive проверяет, занят ли слот прогона
	IsRunActive(ctx context.Context, id uuid.UUID) (bool, error)
}
