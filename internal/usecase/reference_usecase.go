package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/pkg/metrics"
)

// Справочные списки имён для выбора области интереса
const (
	ReferenceListRegions = "regions"
	ReferenceListBasins  = "basins"
)

// ReferenceUseCase отдаёт справочные списки имён через кеш
type ReferenceUseCase struct {
	indicatorRepo repository.IndicatorRepository
	boundaryRepo  repository.BoundaryRepository
	cacheRepo     repository.CacheRepository
	metrics       *metrics.Collector
	logger        *zap.Logger
	jurisdiction  string
	cacheTTL      time.Duration
}

// NewReferenceUseCase создает новый экземпляр ReferenceUseCase
func NewReferenceUseCase(
	indicatorRepo repository.IndicatorRepository,
	boundaryRepo repository.BoundaryRepository,
	cacheRepo repository.CacheRepository,
	collector *metrics.Collector,
	logger *zap.Logger,
	jurisdiction string,
	cacheTTL time.Duration,
) *ReferenceUseCase {
	return &ReferenceUseCase{
		indicatorRepo: indicatorRepo,
		boundaryRepo:  boundaryRepo,
		cacheRepo:     cacheRepo,
		metrics:       collector,
		logger:        logger,
		jurisdiction:  jurisdiction,
		cacheTTL:      cacheTTL,
	}
}

// RegionNames - названия административных границ юрисдикции
func (uc *ReferenceUseCase) RegionNames(ctx context.Context) ([]string, error) {
	return uc.names(ctx, ReferenceListRegions, ReferenceListRegions+":"+uc.jurisdiction,
		func(ctx context.Context) ([]string, error) {
			return uc.boundaryRepo.ListNames(ctx, uc.jurisdiction)
		})
}

// BasinNames - названия речных бассейнов
func (uc *ReferenceUseCase) BasinNames(ctx context.Context) ([]string, error) {
	return uc.names(ctx, ReferenceListBasins, ReferenceListBasins, uc.indicatorRepo.ListBasinNames)
}

// NamesFor возвращает список для режима выбора по именам
func (uc *ReferenceUseCase) NamesFor(ctx context.Context, mode domain.AOIMode) ([]string, error) {
	switch mode {
	case domain.AOIModeRegion:
		return uc.RegionNames(ctx)
	case domain.AOIModeBasin:
		return uc.BasinNames(ctx)
	}
	return nil, errors.ErrModeMismatch.WithDetails(map[string]interface{}{
		"mode": string(mode),
	})
}

func (uc *ReferenceUseCase) names(
	ctx context.Context,
	list, cacheKey string,
	load func(ctx context.Context) ([]string, error),
) ([]string, error) {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetNames(ctx, cacheKey)
	if err == nil && cached != nil {
		uc.metrics.RecordReferenceLookup(list, true)
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get reference names from cache",
			zap.String("list", list),
			zap.Error(err))
	}
	uc.metrics.RecordReferenceLookup(list, false)

	// 2. Получаем из источника
	names, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s names: %w", list, err)
	}

	// 3. Кешируем
	if err := uc.cacheRepo.SetNames(ctx, cacheKey, names, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache reference names",
			zap.String("list", list),
			zap.Error(err))
	}

	uc.logger.Debug("Reference names loaded",
		zap.String("list", list),
		zap.Int("count", len(names)))
	return names, nil
}
