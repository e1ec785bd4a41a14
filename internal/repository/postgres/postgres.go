package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/config"
)

// DB - пул соединений с PostGIS базой индикаторов
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New подключается к PostgreSQL и проверяет соединение
func New(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	db, err := sqlx.Connect("pgx", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.DBName),
	)

	return &DB{DB: db, logger: logger}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

// Health проверяет соединение и наличие расширения PostGIS
func (db *DB) Health(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	var version string
	if err := db.GetContext(ctx, &version, "SELECT postgis_version()"); err != nil {
		return fmt.Errorf("postgis is not available: %w", err)
	}
	db.logger.Debug("PostGIS available", zap.String("version", version))
	return nil
}
