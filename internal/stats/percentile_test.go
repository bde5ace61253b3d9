package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileLinearInterpolation(t *testing.T) {
	values := []float64{15, 20, 35, 40, 50}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 15},
		{25, 20},
		{40, 29}, // rank 1.6: 20 + 0.6*(35-20)
		{50, 35},
		{100, 50},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(values, tt.p), 1e-9, "p=%v", tt.p)
	}
}

func TestPercentileTwoValues(t *testing.T) {
	// Median of two values interpolates halfway between them.
	assert.InDelta(t, 60.0, Percentile([]float64{10, 110}, 50), 1e-9)
}

func TestPercentileEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 50))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 50))
	assert.Equal(t, 1.0, Percentile([]float64{3, 1, 2}, -5))
	assert.Equal(t, 3.0, Percentile([]float64{3, 1, 2}, 150))
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Percentile(values, 50)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestQuintiles(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	q := Quintiles(values)
	assert.InDelta(t, 2.8, q[0], 1e-9)
	assert.InDelta(t, 4.6, q[1], 1e-9)
	assert.InDelta(t, 6.4, q[2], 1e-9)
	assert.InDelta(t, 8.2, q[3], 1e-9)
	assert.InDelta(t, 10.0, q[4], 1e-9)

	assert.Equal(t, [5]float64{}, Quintiles(nil))
}

func TestBandScore(t *testing.T) {
	q := [5]float64{2, 4, 6, 8, 10}

	tests := []struct {
		value   float64
		reverse bool
		want    int
	}{
		{1, false, 1},
		{2, false, 1},
		{3, false, 2},
		{5, false, 3},
		{7, false, 4},
		{10, false, 5},
		{99, false, 5},
		{1, true, 5},
		{3, true, 4},
		{10, true, 1},
		{99, true, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandScore(tt.value, q, tt.reverse),
			"value=%v reverse=%v", tt.value, tt.reverse)
	}
}
