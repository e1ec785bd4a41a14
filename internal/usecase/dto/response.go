package dto

import "github.com/huc-prioritizer/internal/domain"

// CriteriaResponse - таблица критериев и параметры весов
type CriteriaResponse struct {
	Criteria     []domain.Criterion  `json:"criteria"`
	Bounds       domain.WeightBounds `json:"bounds"`
	Step         float64             `json:"step"`
	DefaultLimit int                 `json:"default_limit"`
	Columns      []domain.Column     `json:"columns"`
}

// NamesResponse - справочный список имён
type NamesResponse struct {
	Names []string `json:"names"`
	Total int      `json:"total"`
}

// SessionResponse - состояние сессии
type SessionResponse struct {
	*domain.Session
	ScenarioActive bool `json:"scenario_active"`
	HeaderCount    int  `json:"header_count"`
}

// LabeledValue - значение атрибута с подписью
type LabeledValue struct {
	Key   string      `json:"key"`
	Label string      `json:"label"`
	Value interface{} `json:"value"`
}

// UnitDetailsResponse - атрибуты единицы для инспектора
type UnitDetailsResponse struct {
	ID         string         `json:"huc12"`
	Name       string         `json:"name"`
	Basin      string         `json:"basin"`
	Variant    string         `json:"variant"`
	Attributes []LabeledValue `json:"attributes"`
}
