package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func value(x float64) float64 {
	return 2*x + 3
}

func TestLinear(t *testing.T) {
	xs := []float64{0, 1, 2.5, 4, 10}
	vals := make([]float64, len(xs))
	for i := range xs {
		vals[i] = value(xs[i])
	}
	interp := NewLinear(xs, vals)

	// points on the table should work
	assert.InDelta(t, value(2.5), interp.Eval(2.5), 1e-12, "on table")
	// points between table entries should also work
	assert.InDelta(t, value(0.5), interp.Eval(0.5), 1e-12, "between 0 and 1")
	assert.InDelta(t, value(3.1), interp.Eval(3.1), 1e-12, "between 2.5 and 4")
	assert.InDelta(t, value(9.99), interp.Eval(9.99), 1e-12, "near upper edge")
	// points on the edge of the table should work
	assert.Equal(t, value(0), interp.Eval(0), "lower edge")
	assert.Equal(t, value(10), interp.Eval(10), "upper edge")
}

func TestLinearClamps(t *testing.T) {
	interp := NewLinear([]float64{3, 4, 25}, []float64{1, 5, 0})

	assert.Equal(t, 1.0, interp.Eval(-2), "below range")
	assert.Equal(t, 0.0, interp.Eval(30), "above range")
	lo, hi := interp.Range()
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 25.0, hi)
}

func TestLinearCopiesInput(t *testing.T) {
	xs, vals := []float64{0, 1}, []float64{0, 1}
	interp := NewLinear(xs, vals)
	xs[1], vals[1] = 2, 100
	assert.Equal(t, 0.5, interp.Eval(0.5))
	lo, hi := interp.Range()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestNewLinearPanics(t *testing.T) {
	assert.Panics(t, func() { NewLinear([]float64{0, 1}, []float64{0}) })
	assert.Panics(t, func() { NewLinear(nil, nil) })
	assert.Panics(t, func() { NewLinear([]float64{0, 1, 1}, []float64{0, 1, 2}) })
}

func BenchmarkLinearEval(b *testing.B) {
	xs, vals := make([]float64, 100), make([]float64, 100)
	for i := range xs {
		xs[i], vals[i] = float64(i)*0.25, float64(i*i)
	}
	interp := NewLinear(xs, vals)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interp.Eval(float64(i%100) * 0.2)
	}
}
