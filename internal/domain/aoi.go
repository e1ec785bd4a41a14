package domain

import (
	"encoding/json"
	"strings"

	"github.com/huc-prioritizer/internal/pkg/errors"
)

// AOIMode - способ выбора области интереса
type AOIMode string

const (
	AOIModeUnset        AOIMode = ""
	AOIModeRegion       AOIMode = "region"
	AOIModeBasin        AOIMode = "basin"
	AOIModeGeometry     AOIMode = "geometry"
	AOIModeEntireDomain AOIMode = "entire_domain"
)

// ParseAOIMode не подставляет режим по умолчанию: пустое или неизвестное значение - ошибка
func ParseAOIMode(s string) (AOIMode, error) {
	switch m := AOIMode(strings.ToLower(strings.TrimSpace(s))); m {
	case AOIModeRegion, AOIModeBasin, AOIModeGeometry, AOIModeEntireDomain:
		return m, nil
	}
	return AOIModeUnset, errors.ErrInvalidAOIMode.WithDetails(map[string]interface{}{
		"mode": s,
	})
}

// Valid reports whether m is one of the four selection modes.
func (m AOIMode) Valid() bool {
	switch m {
	case AOIModeRegion, AOIModeBasin, AOIModeGeometry, AOIModeEntireDomain:
		return true
	}
	return false
}

// Ceilings - предельное число слотов для списков выбора
type Ceilings struct {
	Regions int `json:"regions"`
	Basins  int `json:"basins"`
}

// AOISelection - состояние выбора области интереса одной сессии
type AOISelection struct {
	Mode     AOIMode         `json:"mode"`
	Regions  PickerList      `json:"regions"`
	Basins   PickerList      `json:"basins"`
	Geometry json.RawMessage `json:"geometry,omitempty"`
}

// NewAOISelection создает выбор с пустыми списками
func NewAOISelection(mode AOIMode, c Ceilings) AOISelection {
	return AOISelection{
		Mode:    mode,
		Regions: NewPickerList(c.Regions),
		Basins:  NewPickerList(c.Basins),
	}
}

// SwitchMode: смена режима сбрасывает все выборы и геометрию, тот же режим - no-op
func (s AOISelection) SwitchMode(mode AOIMode) AOISelection {
	if s.Mode == mode {
		return s
	}
	return AOISelection{
		Mode:    mode,
		Regions: s.Regions.Reset(),
		Basins:  s.Basins.Reset(),
	}
}

// Reset сбрасывает выборы и геометрию, режим сохраняется
func (s AOISelection) Reset() AOISelection {
	return AOISelection{
		Mode:    s.Mode,
		Regions: s.Regions.Reset(),
		Basins:  s.Basins.Reset(),
	}
}

// ActiveList возвращает список выбора текущего режима
func (s AOISelection) ActiveList() (PickerList, bool) {
	switch s.Mode {
	case AOIModeRegion:
		return s.Regions, true
	case AOIModeBasin:
		return s.Basins, true
	}
	return PickerList{}, false
}

// WithActiveList заменяет список текущего режима
func (s AOISelection) WithActiveList(l PickerList) AOISelection {
	switch s.Mode {
	case AOIModeRegion:
		s.Regions = l
	case AOIModeBasin:
		s.Basins = l
	}
	return s
}

// ChosenNames - непустые выборы активного списка
func (s AOISelection) ChosenNames() []string {
	l, ok := s.ActiveList()
	if !ok {
		return nil
	}
	return l.Chosen()
}

// HasGeometry - нарисована ли область
func (s AOISelection) HasGeometry() bool {
	raw := strings.TrimSpace(string(s.Geometry))
	return raw != "" && raw != "null"
}
