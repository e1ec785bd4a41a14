package domain

import (
	"math"
	"sort"

	"github.com/huc-prioritizer/internal/pkg/errors"
)

// CriterionKey - стабильный ключ критерия в API и в таблице весов
type CriterionKey string

const (
	CriterionCarbon             CriterionKey = "carbon"
	CriterionSequestration      CriterionKey = "sequestration"
	CriterionConnectivity       CriterionKey = "connectivity"
	CriterionBiodiversity       CriterionKey = "biodiversity"
	CriterionPollinatorCropland CriterionKey = "pollinator_cropland"
	CriterionPollinatorHabitat  CriterionKey = "pollinator_habitat"
	CriterionUnprotected        CriterionKey = "unprotected"
	CriterionResilience         CriterionKey = "resilience"
	CriterionSVIGreenSpace      CriterionKey = "svi_green_space"
	CriterionWorkingLandRisk    CriterionKey = "working_land_risk"
	CriterionNaturalLandRisk    CriterionKey = "natural_land_risk"
)

// Criterion - строка декларативной таблицы критериев
type Criterion struct {
	Key           CriterionKey `json:"key"`
	Field         string       `json:"field"` // колонка нормализованного индикатора
	Label         string       `json:"label"`
	URL           string       `json:"url"`
	DefaultWeight float64      `json:"default_weight"`
}

// criteria в порядке скалярного произведения
var criteria = []Criterion{
	{CriterionCarbon, "P_CARB", "Standing carbon", "https://usfs.maps.arcgis.com/home/item.html?id=4a604935bdce4a6eb77a967fab47ddff", 1},
	{CriterionSequestration, "P_POTSEQ", "Carbon sequester potential", "https://www.nature.org/en-us/newsroom/forest-carbon-hotspots-identified-us/", 0},
	{CriterionConnectivity, "P_FLOW", "TNC connected-ness", "https://maps.tnc.org/resilientland/", 0},
	{CriterionBiodiversity, "P_BIODIV", "NCNHP biodiversity", "https://www.ncnhp.org/biodiversity-and-wildlife-habitat-assessment", 0},
	{CriterionPollinatorCropland, "P_PDC", "Pollinator-dependent cropland", "https://www.sciencebase.gov/catalog/item/5e90934682ce172707ec2934", 0},
	{CriterionPollinatorHabitat, "P_PH", "Pollinator habitat", "https://www.sciencebase.gov/catalog/item/5e90934682ce172707ec2934", 0},
	{CriterionUnprotected, "P_UNPRO", "Unprotected area", "https://www.ncnhp.org/activities/conservation/managed-areas", 0},
	{CriterionResilience, "P_RESILI", "TNC resilience", "https://maps.tnc.org/resilientland/", 0},
	{CriterionSVIGreenSpace, "P_SVIDIST", "High SVI & lack of green space", "https://www.atsdr.cdc.gov/placeandhealth/svi/index.html", 0},
	{CriterionWorkingLandRisk, "P_GRID12", "Working land conversion risk", "https://www.epa.gov/gcx/about-iclus", 0},
	{CriterionNaturalLandRisk, "P_GRID32", "Natural land conversion risk", "https://www.epa.gov/gcx/about-iclus", 0},
}

// Criteria возвращает копию таблицы критериев
func Criteria() []Criterion {
	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return out
}

// LookupCriterion ищет критерий по ключу
func LookupCriterion(key CriterionKey) (Criterion, bool) {
	for _, c := range criteria {
		if c.Key == key {
			return c, true
		}
	}
	return Criterion{}, false
}

// Weights - пользовательские веса; отсутствующий критерий даёт ноль
type Weights map[CriterionKey]float64

// WeightBounds - допустимый диапазон одного веса
type WeightBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultWeights: углерод = 1, остальные 0
func DefaultWeights() Weights {
	w := make(Weights, len(criteria))
	for _, c := range criteria {
		w[c.Key] = c.DefaultWeight
	}
	return w
}

// ParseWeights проверяет ключи и диапазон весов из запроса
func ParseWeights(raw map[string]float64, bounds WeightBounds) (Weights, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := make(Weights, len(raw))
	for _, k := range keys {
		v := raw[k]
		if _, ok := LookupCriterion(CriterionKey(k)); !ok {
			return nil, errors.ErrUnknownCriterion.WithDetails(map[string]interface{}{
				"criterion": k,
			})
		}
		if math.IsNaN(v) || v < bounds.Min || v > bounds.Max {
			return nil, errors.ErrInvalidWeight.WithDetails(map[string]interface{}{
				"criterion": k,
				"value":     v,
				"min":       bounds.Min,
				"max":       bounds.Max,
			})
		}
		w[CriterionKey(k)] = v
	}
	return w, nil
}

// Add складывает веса покомпонентно
func (w Weights) Add(other Weights) Weights {
	out := make(Weights, len(w)+len(other))
	for k, v := range w {
		out[k] += v
	}
	for k, v := range other {
		out[k] += v
	}
	return out
}
