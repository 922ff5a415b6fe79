package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgMax(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want int
	}{
		{"Tie resolves to earliest", []float64{5, 5, 3}, 0},
		{"Single element", []float64{-2}, 0},
		{"Last is max", []float64{0.1, 0.2, 0.7}, 2},
		{"All negative", []float64{-3, -1, -2}, 1},
		{"Later tie", []float64{1, 9, 4, 9}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ArgMax(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgMaxEmpty(t *testing.T) {
	_, err := ArgMax([]float64{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = ArgMax(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRandomUniformRange(t *testing.T) {
	rng := NewRand(7)
	for i := 0; i < 10000; i++ {
		v := RandomUniform(rng, -1, 1)
		if v < -1 || v >= 1 {
			t.Fatalf("RandomUniform(-1, 1) = %v, out of [-1, 1)", v)
		}
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}
