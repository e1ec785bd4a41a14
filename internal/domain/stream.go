package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamScenarioRun  = "stream:scenario:run"
	StreamScenarioDone = "stream:scenario:done"
)

// ScenarioRunEvent - входящий запрос на расчёт сценария
type ScenarioRunEvent struct {
	RequestID uuid.UUID          `json:"request_id"`
	Policy    string             `json:"policy,omitempty"`
	Mode      string             `json:"mode"`
	Regions   []string           `json:"regions,omitempty"`
	Basins    []string           `json:"basins,omitempty"`
	Geometry  json.RawMessage    `json:"geometry,omitempty"`
	Weights   map[string]float64 `json:"weights,omitempty"`
	Limit     string             `json:"limit,omitempty"`
}

// HasWeights проверяет, переданы ли веса явно
func (e *ScenarioRunEvent) HasWeights() bool {
	return e.Weights != nil
}

// ScenarioDoneEvent - результат расчёта
type ScenarioDoneEvent struct {
	RequestID uuid.UUID       `json:"request_id"`
	Result    *ScenarioResult `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
