// Package dataset содержит общую для SQL репозиториев схему таблиц индикаторов.
package dataset

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier проверяет имя таблицы из конфигурации перед подстановкой в SQL
func ValidateIdentifier(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// Tables - имена таблиц вариантов
type Tables struct {
	Excluded string
	Included string
}

// For возвращает таблицу варианта
func (t Tables) For(v domain.IndicatorVariant) (string, error) {
	switch v {
	case domain.VariantProtectedExcluded:
		return t.Excluded, nil
	case domain.VariantProtectedIncluded:
		return t.Included, nil
	}
	return "", errors.ErrInvalidPolicy.WithDetails(map[string]interface{}{
		"variant": string(v),
	})
}

// Validate проверяет оба имени таблиц
func (t Tables) Validate() error {
	if err := ValidateIdentifier(t.Excluded); err != nil {
		return err
	}
	return ValidateIdentifier(t.Included)
}

// indicatorColumns в порядке domain.Criteria()
func indicatorColumns() []string {
	cs := domain.Criteria()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = strings.ToLower(c.Field)
	}
	return out
}

func displayColumns() []string {
	out := make([]string, len(domain.DisplayAttributes))
	for i, a := range domain.DisplayAttributes {
		out[i] = strings.ToLower(a)
	}
	return out
}

// Columns - все колонки таблицы индикаторов кроме геометрии
func Columns() []string {
	cols := []string{"huc12", "name", "dwq_basin", "acres"}
	cols = append(cols, indicatorColumns()...)
	return append(cols, displayColumns()...)
}

// SelectUnits строит запрос единиц; geomExpr - выражение, дающее GeoJSON текст
func SelectUnits(table, geomExpr string) string {
	return SelectUnitsWhere(table, geomExpr, "")
}

// SelectUnitsWhere - SelectUnits с условием отбора; пустое условие не добавляется
func SelectUnitsWhere(table, geomExpr, where string) string {
	if where != "" {
		where = " WHERE " + where
	}
	return fmt.Sprintf("SELECT %s, %s AS geometry FROM %s%s ORDER BY huc12",
		strings.Join(Columns(), ", "), geomExpr, table, where)
}

// ScanUnits читает строки SelectUnits. NULL индикаторы не попадают в
// Indicators, чтобы расчёт баллов сообщил о них.
func ScanUnits(rows *sqlx.Rows) ([]*domain.SpatialUnit, error) {
	criteria := domain.Criteria()
	nInd := len(criteria)
	nDisp := len(domain.DisplayAttributes)

	units := make([]*domain.SpatialUnit, 0, 2048)
	for rows.Next() {
		var (
			id       string
			name     sql.NullString
			basin    sql.NullString
			acres    sql.NullFloat64
			geometry sql.NullString
		)
		values := make([]sql.NullFloat64, nInd+nDisp)

		dest := make([]interface{}, 0, 5+len(values))
		dest = append(dest, &id, &name, &basin, &acres)
		for i := range values {
			dest = append(dest, &values[i])
		}
		dest = append(dest, &geometry)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}

		u := &domain.SpatialUnit{
			ID:         id,
			Name:       name.String,
			Basin:      basin.String,
			Acres:      acres.Float64,
			Indicators: make(map[domain.CriterionKey]float64, nInd),
			Attributes: make(map[string]float64, nDisp),
		}
		for i, c := range criteria {
			if values[i].Valid {
				u.Indicators[c.Key] = values[i].Float64
			}
		}
		for i, a := range domain.DisplayAttributes {
			if v := values[nInd+i]; v.Valid {
				u.Attributes[a] = v.Float64
			}
		}

		if geometry.Valid && geometry.String != "" {
			g, err := domain.ParseGeometry([]byte(geometry.String))
			if err != nil {
				return nil, errors.ErrDataIntegrity.WithDetails(map[string]interface{}{
					"unit_id": id,
					"field":   "geometry",
				})
			}
			u.Geometry = g
		}

		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return units, nil
}

// ScanBoundaries читает строки (name, statefp, geometry)
func ScanBoundaries(rows *sqlx.Rows) ([]*domain.AdminBoundary, error) {
	out := make([]*domain.AdminBoundary, 0)
	for rows.Next() {
		var (
			b        domain.AdminBoundary
			geometry sql.NullString
		)
		if err := rows.Scan(&b.Name, &b.StateFP, &geometry); err != nil {
			return nil, fmt.Errorf("scan boundary: %w", err)
		}
		if geometry.Valid && geometry.String != "" {
			g, err := domain.ParseGeometry([]byte(geometry.String))
			if err != nil {
				return nil, errors.ErrDataIntegrity.WithDetails(map[string]interface{}{
					"boundary": b.Name,
					"field":    "geometry",
				})
			}
			b.Geometry = g
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boundaries: %w", err)
	}
	return out, nil
}

// DedupeNames убирает пустые и повторяющиеся имена, сохраняя порядок
func DedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
