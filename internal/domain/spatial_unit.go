package domain

// Unit attribute keys that are not indicator values
const (
	ColumnName   = "NAME"
	ColumnHUC12  = "HUC12"
	ColumnAcres  = "ACRES"
	ColumnWeight = "weight"
)

// DisplayAttributes - сырые значения для таблицы и инспектора
var DisplayAttributes = []string{
	"CARB", "POTSEQ", "FLOW", "RESILI", "BIODIV", "PH", "PH_PCT", "PDC", "PDC_PCT",
	"UNPRO_PCT", "SVIDIST_PC", "ACRES12", "GRID12_PCT", "ACRES32", "GRID32_PCT",
}

// SpatialUnit - одна подводосборная единица HUC-12
type SpatialUnit struct {
	ID         string                   `json:"huc12"`
	Name       string                   `json:"name"`
	Basin      string                   `json:"basin"`
	Acres      float64                  `json:"acres"`
	Attributes map[string]float64       `json:"attributes,omitempty"`
	Indicators map[CriterionKey]float64 `json:"indicators"`
	Geometry   *Geometry                `json:"-"`
}

// Indicator возвращает нормализованное значение критерия
func (u *SpatialUnit) Indicator(key CriterionKey) (float64, bool) {
	v, ok := u.Indicators[key]
	return v, ok
}

// ScoredUnit - единица с составным баллом текущего сценария
type ScoredUnit struct {
	*SpatialUnit
	Weight float64 `json:"weight"`
}

// Column - колонка выгружаемой таблицы
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var attributeColumns = []Column{
	{ColumnName, "Subwatershed"},
	{ColumnHUC12, "HUC 12 code"},
	{ColumnAcres, "Acres"},
	{"CARB", "Tons of forest carbon per acre"},
	{"POTSEQ", "Kg of C sequestered/ac/year"},
	{"FLOW", "Mean TNC flow score"},
	{"RESILI", "Mean TNC resilience score"},
	{"BIODIV", "Mean NCNHP biodiversity score"},
	{"PH", "Pollinator habitat area (acres)"},
	{"PH_PCT", "Percentage of HUC as pollinator habitat"},
	{"PDC", "Pollinator-dependent crop area (acres)"},
	{"PDC_PCT", "Percentage of HUC as pollinator-dependent cropland"},
	{"UNPRO_PCT", "Percent unprotected"},
	{"SVIDIST_PC", "Percentage of HUC meeting SVI/green space conditions"},
	{"ACRES12", "Working lands at risk of conversion (acres)"},
	{"GRID12_PCT", "Percentage of working lands at risk of conversion"},
	{"ACRES32", "Natural space at risk of conversion (acres)"},
	{"GRID32_PCT", "Percentage of natural space at risk of conversion"},
	{ColumnWeight, "Weighted score"},
}

// AttributeColumns возвращает колонки таблицы результатов по порядку
func AttributeColumns() []Column {
	out := make([]Column, len(attributeColumns))
	copy(out, attributeColumns)
	return out
}

// ColumnValue возвращает значение колонки; false если у единицы его нет
func (s ScoredUnit) ColumnValue(key string) (interface{}, bool) {
	if s.SpatialUnit == nil {
		return nil, false
	}
	switch key {
	case ColumnName:
		return s.Name, true
	case ColumnHUC12:
		return s.ID, true
	case ColumnAcres:
		return s.Acres, true
	case ColumnWeight:
		return s.Weight, true
	}
	v, ok := s.Attributes[key]
	return v, ok
}
