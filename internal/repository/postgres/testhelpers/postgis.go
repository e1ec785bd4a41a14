// Package testhelpers готовит PostGIS базу для интеграционных тестов репозиториев.
// Без доступной базы тест пропускается.
package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/config"
	"github.com/huc-prioritizer/internal/repository/dataset"
)

// PostGIS - соединение с тестовой базой
type PostGIS struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// Connect подключается по TEST_DB_*; порт по умолчанию 5433, чтобы не задеть рабочую базу
func Connect(t *testing.T) *PostGIS {
	t.Helper()

	port, err := strconv.Atoi(env("TEST_DB_PORT", "5433"))
	if err != nil {
		t.Fatalf("invalid TEST_DB_PORT: %v", err)
	}
	cfg := &config.Config{Database: config.DatabaseConfig{
		Host:     env("TEST_DB_HOST", "localhost"),
		Port:     port,
		User:     env("TEST_DB_USER", "postgres"),
		Password: env("TEST_DB_PASSWORD", "postgres"),
		DBName:   env("TEST_DB_NAME", "huc_prioritizer_test"),
		SSLMode:  env("TEST_DB_SSLMODE", "disable"),
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.GetDatabaseDSN())
	if err != nil {
		t.Skipf("Test database not available: %v", err)
	}

	var version string
	if err := db.GetContext(ctx, &version, "SELECT postgis_version()"); err != nil {
		db.Close()
		t.Skipf("PostGIS not available: %v", err)
	}
	t.Logf("PostGIS version: %s", version)

	return &PostGIS{DB: db, Logger: zap.NewNop()}
}

// Migrate применяет *.up.sql из каталога по порядку имён
func (p *PostGIS) Migrate(ctx context.Context, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)
	return p.exec(ctx, files...)
}

// Seed загружает SQL фикстуры
func (p *PostGIS) Seed(ctx context.Context, files ...string) error {
	return p.exec(ctx, files...)
}

// Truncate очищает таблицы индикаторов и границ
func (p *PostGIS) Truncate(ctx context.Context, tables dataset.Tables, boundaryTable string) error {
	if err := tables.Validate(); err != nil {
		return err
	}
	if err := dataset.ValidateIdentifier(boundaryTable); err != nil {
		return err
	}
	_, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+
		strings.Join([]string{tables.Excluded, tables.Included, boundaryTable}, ", "))
	return err
}

func (p *PostGIS) Close() {
	if p.DB != nil {
		p.DB.Close()
	}
}

func (p *PostGIS) exec(ctx context.Context, files ...string) error {
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err := p.DB.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("exec %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
