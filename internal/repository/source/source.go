// Package source выбирает хранилище набора данных по DATASET_DRIVER.
package source

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/config"
	"github.com/huc-prioritizer/internal/domain/repository"
	"github.com/huc-prioritizer/internal/repository/dataset"
	"github.com/huc-prioritizer/internal/repository/postgres"
	"github.com/huc-prioritizer/internal/repository/sqlite"
)

// Source - репозитории индикаторов и границ поверх одного соединения
type Source struct {
	Indicators repository.IndicatorRepository
	Boundaries repository.BoundaryRepository

	health func(ctx context.Context) error
	close  func() error
}

// Open подключается к postgres или sqlite
func Open(cfg *config.Config, logger *zap.Logger) (*Source, error) {
	tables := dataset.Tables{
		Excluded: cfg.Dataset.ExcludedTable,
		Included: cfg.Dataset.IncludedTable,
	}

	switch cfg.Dataset.Driver {
	case "postgres":
		db, err := postgres.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		return build(db.Health, db.Close,
			func() (repository.IndicatorRepository, error) { return postgres.NewIndicatorRepository(db, tables) },
			func() (repository.BoundaryRepository, error) {
				return postgres.NewBoundaryRepository(db, cfg.Dataset.BoundaryTable)
			})

	case "sqlite":
		db, err := sqlite.Open(cfg.Dataset.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return build(db.PingContext, db.Close,
			func() (repository.IndicatorRepository, error) { return sqlite.NewIndicatorRepository(db, tables) },
			func() (repository.BoundaryRepository, error) {
				return sqlite.NewBoundaryRepository(db, cfg.Dataset.BoundaryTable)
			})
	}

	return nil, fmt.Errorf("unsupported dataset driver %q", cfg.Dataset.Driver)
}

func build(
	health func(ctx context.Context) error,
	closeFn func() error,
	indicators func() (repository.IndicatorRepository, error),
	boundaries func() (repository.BoundaryRepository, error),
) (*Source, error) {
	ir, err := indicators()
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	br, err := boundaries()
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	return &Source{Indicators: ir, Boundaries: br, health: health, close: closeFn}, nil
}

// Health проверяет соединение с хранилищем
func (s *Source) Health(ctx context.Context) error {
	return s.health(ctx)
}

// Close закрывает соединение
func (s *Source) Close() error {
	return s.close()
}
