package flow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gowake/geom"
	"github.com/phil-mansfield/gowake/wake"
)

func TestProfile(t *testing.T) {
	p := Profile{Speed: 8, Exponent: 0.12, RefHeight: 90}
	assert.Equal(t, 8.0, p.At(90))
	assert.Equal(t, 0.0, p.At(0))
	assert.Less(t, p.At(50), 8.0)
	assert.Greater(t, p.At(150), 8.0)
	assert.InDelta(t, 8*math.Pow(2, 0.12), p.At(180), 1e-12)

	uniform := Profile{Speed: 8}
	assert.Equal(t, 8.0, uniform.At(0))
	assert.Equal(t, 8.0, uniform.At(300))
}

func TestChunk(t *testing.T) {
	tests := []struct {
		workers, n int
	}{
		{1, 10}, {3, 10}, {4, 4}, {7, 100}, {16, 17},
	}

	for i, test := range tests {
		next := 0
		for id := 0; id < test.workers; id++ {
			lo, hi := chunk(id, test.workers, test.n)
			if lo != next || hi < lo {
				t.Errorf("%d) worker %d got [%d, %d), expected start %d.",
					i+1, id, lo, hi, next)
			}
			next = hi
		}
		if next != test.n {
			t.Errorf("%d) chunks cover %d of %d points.", i+1, next, test.n)
		}
	}
}

func TestRotorGrid(t *testing.T) {
	hubs := []geom.Vec{{0, 0, 90}, {630, 0, 90}}
	g := NewRotorGrid(hubs, []float64{126, 126}, 3)
	g.SetAmbient(Profile{Speed: 8})

	assert.Equal(t, 2, g.Turbines())
	assert.Equal(t, 18, g.Volume)

	pts := g.RotorPoints(1)
	require.Len(t, pts, 9)
	assert.Equal(t, geom.Vec{630, -31.5, 58.5}, pts[0])
	assert.Equal(t, geom.Vec{630, 0, 90}, pts[4])
	assert.Equal(t, geom.Vec{630, 31.5, 121.5}, pts[8])

	assert.InDelta(t, 8.0, g.RotorVelocity(0), 1e-12)

	one := NewRotorGrid(hubs[:1], []float64{126}, 1)
	assert.Equal(t, hubs[0], one.Points[0])
}

func TestRotorVelocityIsCubicMean(t *testing.T) {
	g := NewRotorGrid([]geom.Vec{{0, 0, 90}}, []float64{126}, 2)
	copy(g.Ambient, []float64{4, 8, 8, 8})
	want := math.Cbrt((64 + 3*512) / 4.0)
	assert.InDelta(t, want, g.RotorVelocity(0), 1e-12)
}

func TestStamp(t *testing.T) {
	hubs := []geom.Vec{{0, 0, 90}, {630, 0, 90}, {630, 400, 90}, {-630, 0, 90}}
	src := &wake.Source{
		Position: hubs[0], Diameter: 126, Ct: 0.8,
		AxialInduction: 0.5 * (1 - math.Sqrt(0.2)), TI: 0.06,
	}
	g := NewRotorGrid(hubs, []float64{126, 126, 126, 126}, 3)
	g.SetAmbient(Profile{Speed: 8})
	g.Stamp(src, wake.DefaultGauss(), wake.Linear{}, 1)

	assert.InDelta(t, 8.0, g.RotorVelocity(0), 1e-12, "own rotor is not waked")
	assert.Less(t, g.RotorVelocity(1), 8.0)
	assert.InDelta(t, 8.0, g.RotorVelocity(2), 1e-6)
	assert.InDelta(t, 8.0, g.RotorVelocity(3), 1e-12, "upstream rotor is not waked")

	before := g.RotorVelocity(1)
	g.Stamp(src, wake.DefaultGauss(), wake.Max{}, 1)
	assert.Equal(t, before, g.RotorVelocity(1))

	g.Reset()
	assert.InDelta(t, 8.0, g.RotorVelocity(1), 1e-12)
}

func TestStampWorkerIndependence(t *testing.T) {
	frame := geom.NewWindFrame(250, geom.Vec{})
	box := geom.Box{Min: geom.Vec{-200, -300, 10}, Max: geom.Vec{2000, 300, 200}}
	prof := Profile{Speed: 9, Exponent: 0.12, RefHeight: 90}

	srcs := []*wake.Source{
		{Position: frame.ToWind(geom.Vec{0, 0, 90}), Diameter: 126, Ct: 0.8,
			AxialInduction: 0.27, TI: 0.06, Yaw: 15},
		{Position: frame.ToWind(geom.Vec{800, 50, 90}), Diameter: 126,
			Ct: 0.7, AxialInduction: 0.23, TI: 0.08},
	}

	var ref []float64
	for _, workers := range []int{1, 2, 3, 8, 64} {
		g, _, err := NewBoxGrid(frame, box, [3]int{20, 11, 5}, prof)
		require.NoError(t, err)
		for _, s := range srcs {
			g.Stamp(s, wake.DefaultGauss(), wake.RootSumSquare{}, workers)
		}
		u := g.Velocities(nil)
		if ref == nil {
			ref = u
			continue
		}
		assert.Equal(t, ref, u, "workers = %d", workers)
	}
}

func TestNewPlaneGrid(t *testing.T) {
	frame := geom.NewWindFrame(270, geom.Vec{})
	spec := &PlaneSpec{
		Normal: Z, Offset: 90, Resolution: [2]int{5, 3},
		Bounds: geom.Box{Min: geom.Vec{0, -100, 0}, Max: geom.Vec{400, 100, 0}},
	}
	g, pl, err := NewPlaneGrid(frame, spec, Profile{Speed: 8})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 100, 200, 300, 400}, pl.Axis1)
	assert.Equal(t, []float64{-100, 0, 100}, pl.Axis2)
	assert.True(t, g.Points[g.Idx(0, 2, 1)].EpsEq(geom.Vec{100, 100, 90}, 1e-9))

	pl.Fill(g)
	r, c := pl.U.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 5, c)
	assert.Equal(t, 8.0, pl.U.At(1, 1))

	spec.Resolution = [2]int{0, 3}
	_, _, err = NewPlaneGrid(frame, spec, Profile{Speed: 8})
	assert.Error(t, err)
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{X, Y, Z} {
		b, err := ParseAxis(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
	_, err := ParseAxis("W")
	assert.Error(t, err)
}

func BenchmarkStamp(b *testing.B) {
	frame := geom.NewWindFrame(270, geom.Vec{})
	box := geom.Box{Min: geom.Vec{-200, -300, 10}, Max: geom.Vec{2000, 300, 200}}
	g, _, _ := NewBoxGrid(frame, box, [3]int{100, 50, 10}, Profile{Speed: 8})
	src := &wake.Source{Diameter: 126, Ct: 0.8, AxialInduction: 0.27, TI: 0.06}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Stamp(src, wake.DefaultGauss(), wake.Linear{}, 4)
	}
}
