package sqlite

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/repository/dataset"
)

// Migrate создает таблицы вариантов и границ, если их ещё нет
func (db *DB) Migrate(ctx context.Context, tables dataset.Tables, boundaryTable string) error {
	if err := tables.Validate(); err != nil {
		return err
	}
	if err := dataset.ValidateIdentifier(boundaryTable); err != nil {
		return err
	}

	cols := dataset.Columns()
	defs := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		switch c {
		case "huc12":
			defs = append(defs, "huc12 TEXT PRIMARY KEY")
		case "name", "dwq_basin":
			defs = append(defs, c+" TEXT")
		default:
			defs = append(defs, c+" REAL")
		}
	}
	defs = append(defs, "geometry TEXT")

	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tables.Excluded, strings.Join(defs, ", ")),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tables.Included, strings.Join(defs, ", ")),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_basin ON %s (dwq_basin)", tables.Excluded, tables.Excluded),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			statefp TEXT NOT NULL,
			name TEXT NOT NULL,
			geometry TEXT
		)`, boundaryTable),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_state_name ON %s (statefp, name)", boundaryTable, boundaryTable),
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	db.logger.Info("SQLite schema ready",
		zap.String("excluded", tables.Excluded),
		zap.String("included", tables.Included),
		zap.String("boundaries", boundaryTable))
	return nil
}
