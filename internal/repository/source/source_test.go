package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/config"
	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/repository/dataset"
	"github.com/huc-prioritizer/internal/repository/sqlite"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Dataset: config.DatasetConfig{
		Driver:        "sqlite",
		SQLitePath:    filepath.Join(t.TempDir(), "huc12.db"),
		ExcludedTable: "huc12_scores_protected_excluded",
		IncludedTable: "huc12_scores_protected_included",
		BoundaryTable: "admin_boundaries",
	}}
}

func TestOpen_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)
	ctx := context.Background()

	db, err := sqlite.Open(cfg.Dataset.SQLitePath, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, dataset.Tables{
		Excluded: cfg.Dataset.ExcludedTable,
		Included: cfg.Dataset.IncludedTable,
	}, cfg.Dataset.BoundaryTable))
	require.NoError(t, db.Close())

	src, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	require.NoError(t, src.Health(ctx))
	units, err := src.Indicators.GetUnits(ctx, domain.VariantProtectedExcluded)
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestOpen_Errors(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Dataset.ExcludedTable = "bad table"
	_, err := Open(cfg, zap.NewNop())
	assert.Error(t, err)

	cfg = sqliteConfig(t)
	cfg.Dataset.Driver = "mysql"
	_, err = Open(cfg, zap.NewNop())
	assert.Error(t, err)
}
