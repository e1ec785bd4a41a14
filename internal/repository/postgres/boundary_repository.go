package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/domain/repository"
	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/repository/dataset"
)

type boundaryRepository struct {
	db     *sqlx.DB
	table  string
	logger *zap.Logger
}

// NewBoundaryRepository создает новый экземпляр BoundaryRepository
func NewBoundaryRepository(db *DB, table string) (repository.BoundaryRepository, error) {
	if err := dataset.ValidateIdentifier(table); err != nil {
		return nil, err
	}
	return &boundaryRepository{
		db:     db.DB,
		table:  table,
		logger: db.logger,
	}, nil
}

// ListNames возвращает уникальные названия границ юрисдикции
func (r *boundaryRepository) ListNames(ctx context.Context, jurisdiction string) ([]string, error) {
	query := `
		SELECT DISTINCT name
		FROM ` + r.table + `
		WHERE statefp = $1 AND name IS NOT NULL AND name <> ''
		ORDER BY name
	`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, jurisdiction); err != nil {
		r.logger.Error("Failed to list boundary names",
			zap.String("jurisdiction", jurisdiction),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return names, nil
}

// GetByNames возвращает границы с геометрией по списку названий
func (r *boundaryRepository) GetByNames(ctx context.Context, jurisdiction string, names []string) ([]*domain.AdminBoundary, error) {
	names = dataset.DedupeNames(names)
	if len(names) == 0 {
		return []*domain.AdminBoundary{}, nil
	}

	query := `
		SELECT name, statefp, ST_AsGeoJSON(geometry) AS geometry
		FROM ` + r.table + `
		WHERE statefp = $1 AND name = ANY($2)
		ORDER BY name
	`

	rows, err := r.db.QueryxContext(ctx, query, jurisdiction, pq.Array(names))
	if err != nil {
		r.logger.Error("Failed to get boundaries by names",
			zap.String("jurisdiction", jurisdiction),
			zap.Strings("names", names),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	boundaries, err := dataset.ScanBoundaries(rows)
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		r.logger.Error("Failed to scan boundaries", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return boundaries, nil
}
