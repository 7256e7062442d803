package featurize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInPlace(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
		want []float32
	}{
		{name: "3-4-5", in: []float32{3, 4}, want: []float32{0.6, 0.8}},
		{name: "already unit", in: []float32{0, 1, 0}, want: []float32{0, 1, 0}},
		{name: "zero vector", in: []float32{0, 0, 0}, want: []float32{0, 0, 0}},
		{name: "empty", in: []float32{}, want: []float32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]float32(nil), tt.in...)
			NormalizeInPlace(got)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-6)
			}
		})
	}
}

func TestDot(t *testing.T) {
	assert.InDelta(t, 11.0, Dot([]float32{1, 2}, []float32{3, 4}), 1e-9)
	assert.Zero(t, Dot([]float32{1, 0}, []float32{0, 1}))
	assert.InDelta(t, 3.0, Dot([]float32{1, 2, 9}, []float32{3}), 1e-9, "uses the shorter length")
}

func magnitude(v []float32) float64 {
	return math.Sqrt(Dot(v, v))
}
