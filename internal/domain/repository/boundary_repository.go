package repository

import (
	"context"

	"github.com/huc-prioritizer/internal/domain"
)

// BoundaryRepository определяет методы для работы с административными границами
type BoundaryRepository interface {
	// ListNames возвращает уникальные названия границ юрисдикции по алфавиту
	ListNames(ctx context.Context, jurisdiction string) ([]string, error)

	// GetByNames возвращает границы юрисдикции с указанными названиями
	GetByNames(ctx context.Context, jurisdiction string, names []string) ([]*domain.AdminBoundary, error)
}
