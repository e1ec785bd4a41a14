package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/pkg/utils"
	"github.com/huc-prioritizer/internal/prioritizer"
	"github.com/huc-prioritizer/internal/usecase/dto"
)

// ExplorerUseCase показывает атрибуты единицы под точкой на карте
type ExplorerUseCase struct {
	indicatorRepo repository.IndicatorRepository
	logger        *zap.Logger
}

// NewExplorerUseCase создает новый экземпляр ExplorerUseCase
func NewExplorerUseCase(indicatorRepo repository.IndicatorRepository, logger *zap.Logger) *ExplorerUseCase {
	return &ExplorerUseCase{
		indicatorRepo: indicatorRepo,
		logger:        logger,
	}
}

// UnitAt находит единицу, содержащую точку
func (uc *ExplorerUseCase) UnitAt(ctx context.Context, rawPolicy string, lat, lon float64) (*dto.UnitDetailsResponse, error) {
	if !utils.ValidateCoordinates(lat, lon) {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": lat,
			"lon": lon,
		})
	}

	policy, err := domain.ParsePolicy(rawPolicy)
	if err != nil {
		return nil, err
	}
	variant, err := prioritizer.ResolveVariant(policy)
	if err != nil {
		return nil, err
	}

	u, err := uc.indicatorRepo.FindUnitAt(ctx, variant, domain.Point{Lat: lat, Lon: lon})
	if err != nil {
		return nil, fmt.Errorf("find unit: %w", err)
	}
	if u == nil {
		return nil, errors.ErrUnitNotFound.WithDetails(map[string]interface{}{
			"lat": lat,
			"lon": lon,
		})
	}

	uc.logger.Debug("Unit found at point",
		zap.String("huc12", u.ID),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))
	return unitDetails(u, variant), nil
}

// unitDetails: колонки таблицы результатов без взвешенного балла
func unitDetails(u *domain.SpatialUnit, variant domain.IndicatorVariant) *dto.UnitDetailsResponse {
	su := domain.ScoredUnit{SpatialUnit: u}
	resp := &dto.UnitDetailsResponse{
		ID:      u.ID,
		Name:    u.Name,
		Basin:   u.Basin,
		Variant: string(variant),
	}
	for _, col := range domain.AttributeColumns() {
		if col.Key == domain.ColumnWeight {
			continue
		}
		v, ok := su.ColumnValue(col.Key)
		if !ok {
			continue
		}
		resp.Attributes = append(resp.Attributes, dto.LabeledValue{Key: col.Key, Label: col.Label, Value: v})
	}
	return resp
}
