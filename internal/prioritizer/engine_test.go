package prioritizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
)

func TestEngine_CarbonTopThree(t *testing.T) {
	units := []*domain.SpatialUnit{
		unit("01", "Neuse", 12.5),
		unit("02", "Neuse", 80.1),
		unit("03", "Tar", 45.0),
		unit("04", "Tar", 3.2),
		unit("05", "Cape Fear", 61.7),
		unit("06", "Cape Fear", 44.9),
	}

	res, err := NewEngine().Evaluate(domain.ScenarioInput{
		Policy:  domain.PolicyExclude,
		AOI:     selection(domain.AOIModeEntireDomain),
		Weights: domain.Weights{domain.CriterionCarbon: 1},
		Limit:   3,
	}, units, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.VariantProtectedExcluded, res.Variant)
	assert.Equal(t, []string{"02", "05", "03"}, scoredIDs(res.Top))
	assert.Equal(t, 6, res.UnitCount)
	assert.Equal(t, &domain.ScoreRange{Min: 3.2, Max: 80.1}, res.FullRange)
	assert.Equal(t, &domain.ScoreRange{Min: 45.0, Max: 80.1}, res.TopRange)
	assert.Equal(t, 3, res.Limit)
}

func TestEngine_DefaultWeightsWhenOmitted(t *testing.T) {
	units := []*domain.SpatialUnit{unit("01", "Neuse", 2), unit("02", "Neuse", 7)}

	res, err := NewEngine().Evaluate(domain.ScenarioInput{
		AOI: selection(domain.AOIModeEntireDomain),
	}, units, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultWeights(), res.Weights)
	assert.Equal(t, []string{"02", "01"}, scoredIDs(res.Top))
	assert.Equal(t, 7.0, res.Top[0].Weight)
}

func TestEngine_EmptySelection(t *testing.T) {
	res, err := NewEngine().Evaluate(domain.ScenarioInput{
		AOI:   selection(domain.AOIModeRegion),
		Limit: 3,
	}, []*domain.SpatialUnit{unit("01", "Neuse", 2)}, nil)
	require.NoError(t, err)

	assert.True(t, res.IsEmpty())
	assert.Empty(t, res.Top)
	assert.Nil(t, res.FullRange)
	assert.Nil(t, res.TopRange)
}

func TestEngine_FatalErrorsProduceNoResult(t *testing.T) {
	bad := unit("01", "Neuse", 2)
	delete(bad.Indicators, domain.CriterionUnprotected)

	tests := []struct {
		name    string
		in      domain.ScenarioInput
		units   []*domain.SpatialUnit
		wantErr error
	}{
		{
			name:    "unset mode",
			in:      domain.ScenarioInput{AOI: selection(domain.AOIModeUnset)},
			units:   []*domain.SpatialUnit{unit("01", "Neuse", 2)},
			wantErr: errors.ErrInvalidAOIMode,
		},
		{
			name:    "unknown policy",
			in:      domain.ScenarioInput{Policy: "both", AOI: selection(domain.AOIModeEntireDomain)},
			units:   []*domain.SpatialUnit{unit("01", "Neuse", 2)},
			wantErr: errors.ErrInvalidPolicy,
		},
		{
			name:    "missing indicator",
			in:      domain.ScenarioInput{AOI: selection(domain.AOIModeEntireDomain)},
			units:   []*domain.SpatialUnit{bad},
			wantErr: errors.ErrDataIntegrity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewEngine().Evaluate(tt.in, tt.units, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
		})
	}
}
