package domain

import (
	"strings"

	"github.com/huc-prioritizer/internal/pkg/errors"
)

// ProtectedPolicy - включать ли уже охраняемые земли в сводные значения
type ProtectedPolicy string

const (
	PolicyUnset   ProtectedPolicy = ""
	PolicyExclude ProtectedPolicy = "exclude"
	PolicyInclude ProtectedPolicy = "include"
)

// IndicatorVariant - один из двух предрасчитанных вариантов таблицы индикаторов
type IndicatorVariant string

const (
	VariantProtectedExcluded IndicatorVariant = "protected_excluded"
	VariantProtectedIncluded IndicatorVariant = "protected_included"
)

// ParsePolicy разбирает значение флага; неизвестные значения - ошибка конфигурации
func ParsePolicy(s string) (ProtectedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PolicyUnset, nil
	case "exclude", "exclude_protected":
		return PolicyExclude, nil
	case "include", "include_protected":
		return PolicyInclude, nil
	}
	return PolicyUnset, errors.ErrInvalidPolicy.WithDetails(map[string]interface{}{
		"policy": s,
	})
}

// Valid reports whether p is one of the recognized values.
func (p ProtectedPolicy) Valid() bool {
	switch p {
	case PolicyUnset, PolicyExclude, PolicyInclude:
		return true
	}
	return false
}
