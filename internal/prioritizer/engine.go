package prioritizer

import (
	"time"

	"github.com/google/uuid"

	"github.com/huc-prioritizer/internal/domain"
)

// Engine связывает разрешение AOI, расчёт баллов и ранжирование в один прогон
type Engine struct {
	now func() time.Time
}

// NewEngine создает движок приоритизации
func NewEngine() *Engine {
	return &Engine{now: func() time.Time { return time.Now().UTC() }}
}

// Evaluate выполняет сценарий над уже загруженными единицами варианта in.Policy.
// Любая ошибка прерывает прогон до появления результата.
func (e *Engine) Evaluate(
	in domain.ScenarioInput,
	units []*domain.SpatialUnit,
	boundaries []*domain.AdminBoundary,
) (*domain.ScenarioResult, error) {
	variant, err := ResolveVariant(in.Policy)
	if err != nil {
		return nil, err
	}

	resolved, err := ResolveAOI(in.AOI, units, boundaries)
	if err != nil {
		return nil, err
	}

	weights := in.Weights
	if weights == nil {
		weights = domain.DefaultWeights()
	}

	scored, err := ScoreAll(resolved, weights)
	if err != nil {
		return nil, err
	}

	full, top := Rank(scored, in.Limit)

	return &domain.ScenarioResult{
		ID:        uuid.New(),
		Variant:   variant,
		Mode:      in.AOI.Mode,
		Weights:   weights,
		Limit:     len(top),
		UnitCount: len(full),
		Ranked:    full,
		Top:       top,
		FullRange: Range(full),
		TopRange:  Range(top),
		CreatedAt: e.now(),
	}, nil
}
