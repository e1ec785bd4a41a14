package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		payload  string
		expected LimitText
	}{
		{`{"limit":"7"}`, "7"},
		{`{"limit":7}`, "7"},
		{`{"limit":2.5}`, "2.5"},
		{`{"limit":null}`, ""},
		{`{}`, ""},
		{`{"limit":"top ten"}`, "top ten"},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			var req RunScenarioRequest
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))
			assert.Equal(t, tt.expected, req.Limit)
		})
	}
}
