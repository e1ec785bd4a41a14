package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
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

// NewBoundaryRepository создает репозиторий административных границ в SQLite
func NewBoundaryRepository(db *DB, table string) (repository.BoundaryRepository, error) {
	if err := dataset.ValidateIdentifier(table); err != nil {
		return nil, err
	}
	return &boundaryRepository{db: db.DB, table: table, logger: db.logger}, nil
}

func (r *boundaryRepository) ListNames(ctx context.Context, jurisdiction string) ([]string, error) {
	query := "SELECT DISTINCT name FROM " + r.table +
		" WHERE statefp = ? AND name <> '' ORDER BY name"

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, jurisdiction); err != nil {
		r.logger.Error("Failed to list boundary names", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return names, nil
}

func (r *boundaryRepository) GetByNames(ctx context.Context, jurisdiction string, names []string) ([]*domain.AdminBoundary, error) {
	names = dataset.DedupeNames(names)
	if len(names) == 0 {
		return []*domain.AdminBoundary{}, nil
	}

	query, args, err := sqlx.In(
		"SELECT name, statefp, geometry FROM "+r.table+" WHERE statefp = ? AND name IN (?) ORDER BY name",
		jurisdiction, names,
	)
	if err != nil {
		return nil, fmt.Errorf("build boundary query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to get boundaries by names", zap.Strings("names", names), zap.Error(err))
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

// InsertBoundaries добавляет границы
func (db *DB) InsertBoundaries(ctx context.Context, table string, boundaries []*domain.AdminBoundary) error {
	if err := dataset.ValidateIdentifier(table); err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := "INSERT INTO " + table + " (statefp, name, geometry) VALUES (?, ?, ?)"
	for _, b := range boundaries {
		var geom interface{}
		if raw := b.Geometry.Raw(); len(raw) > 0 {
			geom = string(raw)
		}
		if _, err := tx.ExecContext(ctx, query, b.StateFP, b.Name, geom); err != nil {
			return fmt.Errorf("insert boundary %s: %w", b.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	db.logger.Info("Boundaries imported", zap.String("table", table), zap.Int("count", len(boundaries)))
	return nil
}
