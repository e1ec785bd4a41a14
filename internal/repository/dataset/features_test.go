package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huc-prioritizer/internal/domain"
)

const unitsFC = `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{"HUC12":"030202010101","NAME":"Upper Crabtree Creek","DWQ_Basin":"Neuse","ACRES":21000,
		"P_CARB":0.9,"P_POTSEQ":0.1,"P_FLOW":0.2,"P_BIODIV":0.3,"P_PDC":0.4,"P_PH":0.5,"P_UNPRO":0.6,"P_RESILI":0.7,"P_SVIDIST":0.8,"P_GRID12":0.9,"P_GRID32":"0.1",
		"CARB":85.2},
	 "geometry":{"type":"Polygon","coordinates":[[[-78.9,35.8],[-78.7,35.8],[-78.7,36.0],[-78.9,36.0],[-78.9,35.8]]]}},
	{"type":"Feature","properties":{"HUC12":30202010102,"NAME":"Lower Crabtree Creek","DWQ_Basin":"Neuse"},"geometry":null}
]}`

func TestUnitsFromGeoJSON(t *testing.T) {
	units, err := UnitsFromGeoJSON([]byte(unitsFC))
	require.NoError(t, err)
	require.Len(t, units, 2)

	u := units[0]
	assert.Equal(t, "030202010101", u.ID)
	assert.Equal(t, "Neuse", u.Basin)
	assert.Equal(t, 21000.0, u.Acres)
	assert.Len(t, u.Indicators, 11)
	assert.Equal(t, 0.1, u.Indicators[domain.CriterionNaturalLandRisk])
	assert.Equal(t, 85.2, u.Attributes["CARB"])
	assert.True(t, u.Geometry.ContainsLatLng(35.9, -78.8))
	assert.NotEmpty(t, u.Geometry.Raw())

	// числовой код и отсутствующая геометрия
	assert.Equal(t, "30202010102", units[1].ID)
	assert.Empty(t, units[1].Indicators)
	assert.True(t, units[1].Geometry.IsEmpty())
}

func TestUnitsFromGeoJSON_MissingID(t *testing.T) {
	_, err := UnitsFromGeoJSON([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"NAME":"x"},"geometry":null}]}`))
	assert.Error(t, err)
}

func TestBoundariesFromGeoJSON(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"NAME":"Wake","STATEFP":"37"},
		 "geometry":{"type":"Polygon","coordinates":[[[-79,35.5],[-78.3,35.5],[-78.3,36.1],[-79,36.1],[-79,35.5]]]}}
	]}`

	bs, err := BoundariesFromGeoJSON([]byte(data))
	require.NoError(t, err)
	require.Len(t, bs, 1)

	assert.Equal(t, "Wake", bs[0].Name)
	assert.Equal(t, "37", bs[0].StateFP)
	assert.True(t, bs[0].Geometry.ContainsLatLng(35.8, -78.6))
}
