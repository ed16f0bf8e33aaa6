package shared

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeFloat(t *testing.T) {
	assert.Equal(t, 12.5, SafeFloat(12.5))
	assert.Equal(t, 0.0, SafeFloat(math.NaN()))
	assert.Equal(t, 0.0, SafeFloat(math.Inf(1)))
	assert.Equal(t, 0.0, SafeFloat(math.Inf(-1)))
	assert.Equal(t, -3.0, SafeFloat(-3))
}

func TestNumberUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `{"v": 42.75}`, 42.75},
		{"quoted number", `{"v": "19.90"}`, 19.9},
		{"null", `{"v": null}`, 0},
		{"garbage string", `{"v": "precio"}`, 0},
		{"boolean", `{"v": true}`, 0},
		{"object", `{"v": {"x": 1}}`, 0},
		{"negative", `{"v": -8}`, -8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload struct {
				V Number `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.in), &payload))
			assert.Equal(t, tc.want, payload.V.Float64())
		})
	}
}

func TestNumberMarshalSanitizes(t *testing.T) {
	data, err := json.Marshal(Number(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "0", string(data))

	data, err = json.Marshal(Number(15.5))
	require.NoError(t, err)
	assert.Equal(t, "15.5", string(data))
}
