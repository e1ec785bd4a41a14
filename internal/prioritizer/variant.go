package prioritizer

import (
	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
)

// ResolveVariant выбирает вариант таблицы индикаторов по политике.
// Неустановленная политика означает исключение охраняемых земель.
func ResolveVariant(policy domain.ProtectedPolicy) (domain.IndicatorVariant, error) {
	switch policy {
	case domain.PolicyUnset, domain.PolicyExclude:
		return domain.VariantProtectedExcluded, nil
	case domain.PolicyInclude:
		return domain.VariantProtectedIncluded, nil
	}
	return "", errors.ErrInvalidPolicy.WithDetails(map[string]interface{}{
		"policy": string(policy),
	})
}
