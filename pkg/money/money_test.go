package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"500.00", 50000},
		{"500", 50000},
		{"12.5", 1250},
		{"0.01", 1},
		{" 3.10 ", 310},
		{"-4.20", -420},
	}
	for _, tt := range tests {
		got, err := ParseDecimal(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseDecimalRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "1.", ".5", "1,50", "9223372036854775807"} {
		_, err := ParseDecimal(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "500.00", Format(50000))
	assert.Equal(t, "0.05", Format(5))
	assert.Equal(t, "-1.50", Format(-150))
}

func TestAmountJSON(t *testing.T) {
	var payload struct {
		Total Amount `json:"total"`
		Fee   Amount `json:"fee"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"total":"500.00","fee":50.5}`), &payload))
	assert.Equal(t, int64(50000), payload.Total.Minor())
	assert.Equal(t, int64(5050), payload.Fee.Minor())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"500.00","fee":"50.50"}`, string(out))
}
