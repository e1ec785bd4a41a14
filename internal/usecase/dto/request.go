package dto

import (
	"encoding/json"
	"strings"
)

// SetPolicyRequest - установка политики охраняемых земель
type SetPolicyRequest struct {
	Policy string `json:"policy" validate:"policy"`
}

// SetModeRequest - переключение режима области интереса
type SetModeRequest struct {
	Mode string `json:"mode" validate:"aoimode"`
}

// PickRequest - выбор имени в слот списка
type PickRequest struct {
	Slot  *int   `json:"slot" validate:"required,min=0"`
	Value string `json:"value" validate:"required"`
}

// SetGeometryRequest - нарисованная область (GeoJSON)
type SetGeometryRequest struct {
	Geometry json.RawMessage `json:"geometry" validate:"required"`
}

// RunScenarioRequest - запуск сценария для сессии.
// Без weights используются веса по умолчанию.
type RunScenarioRequest struct {
	Weights map[string]float64 `json:"weights,omitempty"`
	Limit   LimitText          `json:"limit,omitempty" swaggertype:"string"`
}

// EvaluateRequest - разовый расчёт без сессии
type EvaluateRequest struct {
	Policy   string             `json:"policy,omitempty" validate:"policy"`
	Mode     string             `json:"mode" validate:"aoimode"`
	Regions  []string           `json:"regions,omitempty" validate:"omitempty,dive,required"`
	Basins   []string           `json:"basins,omitempty" validate:"omitempty,dive,required"`
	Geometry json.RawMessage    `json:"geometry,omitempty" swaggertype:"object"`
	Weights  map[string]float64 `json:"weights,omitempty"`
	Limit    LimitText          `json:"limit,omitempty" swaggertype:"string"`
}

// UnitAtRequest - точка для инспектора единиц
type UnitAtRequest struct {
	Lat    float64 `query:"lat" validate:"min=-90,max=90"`
	Lon    float64 `query:"lon" validate:"min=-180,max=180"`
	Policy string  `query:"policy" validate:"policy"`
}

// LimitText - размер топа как свободный текст; принимает и число, и строку
type LimitText string

func (l *LimitText) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = LimitText(s)
		return nil
	}
	*l = LimitText(raw)
	return nil
}
