package prioritizer

import (
	"math"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
)

// Score - скалярное произведение индикаторов единицы и весов в порядке критериев.
// Отсутствующий вес даёт ноль, отсутствующий индикатор - ошибка целостности данных.
func Score(unit *domain.SpatialUnit, weights domain.Weights) (float64, error) {
	var sum float64
	for _, c := range domain.Criteria() {
		v, ok := unit.Indicator(c.Key)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errors.ErrDataIntegrity.WithDetails(map[string]interface{}{
				"unit_id": unit.ID,
				"field":   c.Field,
			})
		}
		sum += v * weights[c.Key]
	}
	return sum, nil
}

// ScoreAll считает баллы для всех единиц; первая ошибка прерывает расчёт
func ScoreAll(units []*domain.SpatialUnit, weights domain.Weights) ([]domain.ScoredUnit, error) {
	out := make([]domain.ScoredUnit, 0, len(units))
	for _, u := range units {
		w, err := Score(u, weights)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ScoredUnit{SpatialUnit: u, Weight: w})
	}
	return out, nil
}
