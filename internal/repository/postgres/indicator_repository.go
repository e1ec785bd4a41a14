package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/repository/dataset"
)

type indicatorRepository struct {
	db     *sqlx.DB
	tables dataset.Tables
	logger *zap.Logger
}

// NewIndicatorRepository создает репозиторий таблиц индикаторов PostGIS
func NewIndicatorRepository(db *DB, tables dataset.Tables) (repository.IndicatorRepository, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &indicatorRepository{
		db:     db.DB,
		tables: tables,
		logger: db.logger,
	}, nil
}

// GetUnits возвращает все единицы варианта с геометрией в GeoJSON
func (r *indicatorRepository) GetUnits(ctx context.Context, variant domain.IndicatorVariant) ([]*domain.SpatialUnit, error) {
	table, err := r.tables.For(variant)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx, dataset.SelectUnits(table, "ST_AsGeoJSON(geometry)"))
	if err != nil {
		r.logger.Error("Failed to query units",
			zap.String("table", table),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	units, err := dataset.ScanUnits(rows)
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		r.logger.Error("Failed to scan units",
			zap.String("table", table),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	r.logger.Debug("Units loaded",
		zap.String("variant", string(variant)),
		zap.Int("count", len(units)))
	return units, nil
}

// FindUnitAt ищет единицу под точкой средствами PostGIS
func (r *indicatorRepository) FindUnitAt(ctx context.Context, variant domain.IndicatorVariant, point domain.Point) (*domain.SpatialUnit, error) {
	table, err := r.tables.For(variant)
	if err != nil {
		return nil, err
	}

	query := dataset.SelectUnitsWhere(table, "ST_AsGeoJSON(geometry)",
		"ST_Intersects(geometry, ST_SetSRID(ST_MakePoint($1, $2), 4326))") + " LIMIT 1"

	rows, err := r.db.QueryxContext(ctx, query, point.Lon, point.Lat)
	if err != nil {
		r.logger.Error("Failed to query unit at point",
			zap.String("table", table),
			zap.Float64("lat", point.Lat),
			zap.Float64("lon", point.Lon),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	units, err := dataset.ScanUnits(rows)
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		r.logger.Error("Failed to scan unit at point",
			zap.String("table", table),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if len(units) == 0 {
		return nil, nil
	}
	return units[0], nil
}

// ListBasinNames возвращает названия бассейнов из таблицы без охраняемых земель
func (r *indicatorRepository) ListBasinNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT dwq_basin
		FROM ` + r.tables.Excluded + `
		WHERE dwq_basin IS NOT NULL AND dwq_basin <> ''
		ORDER BY dwq_basin
	`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		r.logger.Error("Failed to list basin names", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return names, nil
}
