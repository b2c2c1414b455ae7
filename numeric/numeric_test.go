package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{9.5 / 30, 3, 0.317},
		{2.675, 2, 2.67},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{-8.0000001, 3, -8.0},
		{10.5, 0, 10},
		{11.5, 0, 12},
		{1.23456, 3, 1.235},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.v, tt.places), "Round(%v, %d)", tt.v, tt.places)
	}
}

func TestSignificant(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{2.0, "2.0"},
		{3.456, "3.5"},
		{3.04, "3.0"},
		{0.05, "0.05"},
		{0.0, "0.0"},
		{12.3, "1.2e+01"},
		{20.0, "2e+01"},
		{156.7, "1.6e+02"},
		{9.96, "1e+01"},
		{0.00001234, "1.2e-05"},
		{-3.456, "-3.5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Significant(tt.v, 2), "Significant(%v, 2)", tt.v)
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "2.0", FormatFloat(2))
	assert.Equal(t, "11.57", FormatFloat(11.57))
	assert.Equal(t, "-8.0", FormatFloat(-8))
	assert.Equal(t, "1e-05", FormatFloat(0.00001))
	assert.Equal(t, "0.0001", FormatFloat(0.0001))
	assert.Equal(t, "1e+16", FormatFloat(1e16))
}
