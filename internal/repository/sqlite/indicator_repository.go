package sqlite

import (
	"context"
	"fmt"
	"strings"

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

// NewIndicatorRepository создает репозиторий таблиц индикаторов в SQLite
func NewIndicatorRepository(db *DB, tables dataset.Tables) (repository.IndicatorRepository, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &indicatorRepository{db: db.DB, tables: tables, logger: db.logger}, nil
}

func (r *indicatorRepository) GetUnits(ctx context.Context, variant domain.IndicatorVariant) ([]*domain.SpatialUnit, error) {
	table, err := r.tables.For(variant)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx, dataset.SelectUnits(table, "geometry"))
	if err != nil {
		r.logger.Error("Failed to query units", zap.String("table", table), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	units, err := dataset.ScanUnits(rows)
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		r.logger.Error("Failed to scan units", zap.String("table", table), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return units, nil
}

// FindUnitAt: в SQLite нет пространственного индекса, точка проверяется через s2
func (r *indicatorRepository) FindUnitAt(ctx context.Context, variant domain.IndicatorVariant, point domain.Point) (*domain.SpatialUnit, error) {
	units, err := r.GetUnits(ctx, variant)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		if u.Geometry.ContainsLatLng(point.Lat, point.Lon) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *indicatorRepository) ListBasinNames(ctx context.Context) ([]string, error) {
	query := "SELECT DISTINCT dwq_basin FROM " + r.tables.Excluded +
		" WHERE dwq_basin IS NOT NULL AND dwq_basin <> '' ORDER BY dwq_basin"

	var names []string
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		r.logger.Error("Failed to list basin names", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return names, nil
}

// InsertUnits записывает единицы в таблицу варианта, заменяя существующие
func (db *DB) InsertUnits(ctx context.Context, table string, units []*domain.SpatialUnit) error {
	if err := dataset.ValidateIdentifier(table); err != nil {
		return err
	}

	cols := append(dataset.Columns(), "geometry")
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), marks)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, u := range units {
		if _, err := stmt.ExecContext(ctx, unitArgs(u)...); err != nil {
			return fmt.Errorf("insert unit %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	db.logger.Info("Units imported", zap.String("table", table), zap.Int("count", len(units)))
	return nil
}

// unitArgs раскладывает единицу в порядке dataset.Columns(); отсутствующие значения - NULL
func unitArgs(u *domain.SpatialUnit) []interface{} {
	args := []interface{}{u.ID, u.Name, u.Basin, u.Acres}
	for _, c := range domain.Criteria() {
		if v, ok := u.Indicators[c.Key]; ok {
			args = append(args, v)
		} else {
			args = append(args, nil)
		}
	}
	for _, a := range domain.DisplayAttributes {
		if v, ok := u.Attributes[a]; ok {
			args = append(args, v)
		} else {
			args = append(args, nil)
		}
	}
	if raw := u.Geometry.Raw(); len(raw) > 0 {
		args = append(args, string(raw))
	} else {
		args = append(args, nil)
	}
	return args
}
