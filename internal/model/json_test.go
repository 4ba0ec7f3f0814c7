package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag_UnmarshalAcceptsServerVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "int one", raw: `1`, want: true},
		{name: "int zero", raw: `0`, want: false},
		{name: "bool true", raw: `true`, want: true},
		{name: "bool false", raw: `false`, want: false},
		{name: "numeric string", raw: `"1"`, want: true},
		{name: "zero string", raw: `"0"`, want: false},
		{name: "null", raw: `null`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flag
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.want, f.Bool())
		})
	}
}

func TestFlag_MarshalsAsInt(t *testing.T) {
	data, err := json.Marshal(Flag(true))
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))

	data, err = json.Marshal(Flag(false))
	require.NoError(t, err)
	assert.Equal(t, "0", string(data))
}

func TestText_UnmarshalAcceptsStringOrNumber(t *testing.T) {
	var payload struct {
		Amount Text `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"1500000"}`), &payload))
	assert.Equal(t, "1500000", payload.Amount.String())

	require.NoError(t, json.Unmarshal([]byte(`{"amount":250000.5}`), &payload))
	assert.Equal(t, "250000.5", payload.Amount.String())
}

func TestDecisionAction_Remark(t *testing.T) {
	assert.Equal(t, "Approved", DecisionApprove.Remark())
	assert.Equal(t, "Rejected", DecisionReject.Remark())
}
