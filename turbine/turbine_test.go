package turbine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/gowake/turbine"
	"github.com/phil-mansfield/gowake/turbine/turbinetest"
)

func TestPowerLookup(t *testing.T) {
	tb := turbinetest.New()
	rated := turbinetest.RatedPower()
	refTilt := tb.RefTilt

	assert.Equal(t, 0.0, tb.Power(0, 0, refTilt))
	assert.Equal(t, 0.0, tb.Power(2.9, 0, refTilt))
	assert.InDelta(t, rated, tb.Power(turbinetest.RatedSpeed, 0, refTilt), 1e-6)
	assert.InDelta(t, rated, tb.Power(18, 0, refTilt), 1e-6)
	assert.InDelta(t, rated, tb.Power(40, 0, refTilt), 1e-6)

	lo, hi := tb.Power(7, 0, refTilt), tb.Power(8, 0, refTilt)
	assert.InDelta(t, (lo+hi)/2, tb.Power(7.5, 0, refTilt), 1e-9)
}

func TestThrustCoefficientClamps(t *testing.T) {
	tb := turbinetest.New()
	n := len(tb.Curve.ThrustCoefficient)
	assert.Equal(t, tb.Curve.ThrustCoefficient[0], tb.ThrustCoefficient(1, 0, tb.RefTilt))
	assert.Equal(t, tb.Curve.ThrustCoefficient[n-1],
		tb.ThrustCoefficient(30, 0, tb.RefTilt))
}

func TestCosineLoss(t *testing.T) {
	tb := turbinetest.New()
	v := 8.0

	assert.Equal(t, v, tb.EffectiveVelocity(v, 0, tb.RefTilt))

	yaw := 20.0
	want := v * math.Pow(math.Cos(yaw*math.Pi/180), tb.CosineLossExponentYaw)
	assert.InDelta(t, want, tb.EffectiveVelocity(v, yaw, tb.RefTilt), 1e-12)
	assert.InDelta(t, want, tb.EffectiveVelocity(v, -yaw, tb.RefTilt), 1e-12)

	tilt := tb.RefTilt + 10
	want = v * math.Pow(math.Cos(10*math.Pi/180), tb.CosineLossExponentTilt)
	assert.InDelta(t, want, tb.EffectiveVelocity(v, 0, tilt), 1e-12)

	assert.Less(t, tb.Power(v, yaw, tb.RefTilt), tb.Power(v, 0, tb.RefTilt))
	assert.InDelta(t, 0.0, tb.EffectiveVelocity(v, 90, tb.RefTilt), 1e-12)
}

func TestAxialInduction(t *testing.T) {
	tests := []struct {
		ct, yaw, a float64
	}{
		{0, 0, 0},
		{-0.1, 0, 0},
		{0.75, 0, 0.25},
		{0.96, 0, 0.4},
		{1.5, 0, 0.5 * (1 - math.Sqrt(1-0.9999))},
	}

	for i, test := range tests {
		a := turbine.AxialInduction(test.ct, test.yaw)
		if math.Abs(a-test.a) > 1e-12 {
			t.Errorf("%d) Expected AxialInduction(%g, %g) = %g, got %g.",
				i+1, test.ct, test.yaw, test.a, a)
		}
	}

	// A yawed rotor with the same Ct is less loaded along the flow.
	assert.Greater(t,
		turbine.AxialInduction(0.8, 0),
		turbine.AxialInduction(0.8, 30)*math.Cos(30*math.Pi/180),
	)
}

func TestDensityCorrectedVelocity(t *testing.T) {
	tb := turbinetest.New()
	assert.Equal(t, 8.0, tb.DensityCorrectedVelocity(8, tb.RefAirDensity))
	assert.Equal(t, 8.0, tb.DensityCorrectedVelocity(8, 0))

	// Below rated, power scales linearly with density.
	rho := 1.1
	v := tb.DensityCorrectedVelocity(6, rho)
	p0 := 0.5 * tb.RefAirDensity * turbine.RotorArea(tb.RotorDiameter) *
		0.45 * turbinetest.Efficiency * v * v * v / 1000
	p1 := 0.5 * rho * turbine.RotorArea(tb.RotorDiameter) *
		0.45 * turbinetest.Efficiency * 6 * 6 * 6 / 1000
	assert.InDelta(t, p1, p0, 1e-9)
}

func BenchmarkPower(b *testing.B) {
	tb := turbinetest.New()
	for i := 0; i < b.N; i++ {
		tb.Power(float64(i%25), 5, tb.RefTilt)
	}
}
