package postgres

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NewDBForTest оборачивает готовое соединение тестовой базы
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *DB {
	return &DB{DB: db, logger: logger}
}
