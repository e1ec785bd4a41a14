package repository

import (
	"context"

	"github.com/huc-prioritizer/internal/domain"
)

// IndicatorRepository - источник таблиц индикаторов HUC-12
type IndicatorRepository interface {
	// GetUnits возвращает все единицы выбранного варианта таблицы в порядке таблицы
	GetUnits(ctx context.Context, variant domain.IndicatorVariant) ([]*domain.SpatialUnit, error)

	// FindUnitAt возвращает первую по коду HUC12 единицу, содержащую точку, или nil
	FindUnitAt(ctx context.Context, variant domain.IndicatorVariant, point domain.Point) (*domain.SpatialUnit, error)

	// ListBasinNames возвращает уникальные названия бассейнов по алфавиту
	ListBasinNames(ctx context.Context) ([]string, error)
}
