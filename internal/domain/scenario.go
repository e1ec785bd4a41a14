package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScenarioInput - всё, что нужно для одного прогона сценария
type ScenarioInput struct {
	Policy  ProtectedPolicy `json:"policy"`
	AOI     AOISelection    `json:"aoi"`
	Weights Weights         `json:"weights"`
	Limit   int             `json:"limit"`
}

// ScenarioResult - ранжированный результат прогона
type ScenarioResult struct {
	ID        uuid.UUID        `json:"id"`
	Variant   IndicatorVariant `json:"variant"`
	Mode      AOIMode          `json:"mode"`
	Weights   Weights          `json:"weights"`
	Limit     int              `json:"limit"`
	UnitCount int              `json:"unit_count"`
	Ranked    []ScoredUnit     `json:"ranked"`
	Top       []ScoredUnit     `json:"top"`
	FullRange *ScoreRange      `json:"full_range"`
	TopRange  *ScoreRange      `json:"top_range"`
	CreatedAt time.Time        `json:"created_at"`
}

// IsEmpty - в области интереса не нашлось ни одной единицы
func (r *ScenarioResult) IsEmpty() bool {
	return r == nil || len(r.Ranked) == 0
}
