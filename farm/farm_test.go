package farm

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gowake/geom"
	"github.com/phil-mansfield/gowake/turbine/turbinetest"
)

func TestValidate(t *testing.T) {
	tb := turbinetest.New()
	domain := &geom.Box{Min: geom.Vec{-100, -100, 0}, Max: geom.Vec{1000, 100, 200}}

	good := New(
		Placement{Name: "a", Turbine: tb, X: 0},
		Placement{Name: "b", Turbine: tb, X: 630},
	)
	good.Domain = domain

	outside := New(Placement{Name: "a", Turbine: tb, X: 2000})
	outside.Domain = domain

	tooTall := New(Placement{Name: "a", Turbine: tb, HubHeight: 250})
	tooTall.Domain = domain

	grounded := *tb
	grounded.HubHeight = 0
	noHub := New(Placement{Name: "a", Turbine: &grounded})
	overridden := New(Placement{Name: "a", Turbine: &grounded, HubHeight: 80})

	badDomain := New(Placement{Name: "a", Turbine: tb})
	badDomain.Domain = &geom.Box{Min: geom.Vec{1, 0, 0}}

	tests := []struct {
		f  *Farm
		ok bool
	}{
		{good, true},
		{New(Placement{Name: "a", Turbine: tb, X: 1e6}), true},
		{New(), false},
		{New(Placement{Name: "a"}), false},
		{New(Placement{Name: "a", Turbine: tb, X: math.NaN()}), false},
		{outside, false},
		{tooTall, false},
		{noHub, false},
		{overridden, true},
		{badDomain, false},
	}

	for i, test := range tests {
		err := test.f.Validate()
		if test.ok && err != nil {
			t.Errorf("%d) Unexpected error: %v", i+1, err)
		} else if !test.ok && !errors.Is(err, ErrConfiguration) {
			t.Errorf("%d) Expected a ConfigurationError, got %v", i+1, err)
		}
	}
}

func TestFarmGeometry(t *testing.T) {
	tb := turbinetest.New()
	f := New()
	assert.Equal(t, 0, f.Add("a", tb, 0, 0))
	assert.Equal(t, 1, f.Add("b", tb, 1000, 400))
	f.Placements[1].HubHeight = 110

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, geom.Vec{1000, 400, 110}, f.Hubs()[1])
	assert.Equal(t, 90.0, f.ReferenceHeight())
	f.RefHeight = 100
	assert.Equal(t, 100.0, f.ReferenceHeight())

	assert.Equal(t, geom.Vec{500, 200, 0}, f.Center())

	b := f.Bounds(2)
	assert.Equal(t, geom.Vec{-252, -252, 0}, b.Min)
	assert.Equal(t, geom.Vec{1252, 652, 362}, b.Max)

	f.Domain = &geom.Box{Max: geom.Vec{1, 1, 1}}
	assert.Equal(t, *f.Domain, f.Bounds(2))
}

func TestCondition(t *testing.T) {
	tests := []struct {
		c  Condition
		ok bool
	}{
		{Condition{Speed: 8, Direction: 270, TurbulenceIntensity: 0.06}, true},
		{Condition{Speed: 8, Direction: -45, AirDensity: 1.1, Shear: 0.2}, true},
		{Condition{Speed: 0, Direction: 270}, false},
		{Condition{Speed: -3, Direction: 270}, false},
		{Condition{Speed: math.NaN(), Direction: 270}, false},
		{Condition{Speed: 8, Direction: math.Inf(1)}, false},
		{Condition{Speed: 8, Direction: 270, TurbulenceIntensity: -0.1}, false},
		{Condition{Speed: 8, Direction: 270, AirDensity: -1}, false},
		{Condition{Speed: 8, Direction: 270, Shear: math.NaN()}, false},
	}

	for i, test := range tests {
		err := test.c.Validate()
		if test.ok != (err == nil) {
			t.Errorf("%d) Validate(%v) returned %v.", i+1, test.c, err)
		}
		if err != nil {
			assert.True(t, errors.Is(err, ErrConfiguration))
		}
	}
}

func TestConditions(t *testing.T) {
	cs, err := Conditions([]float64{8}, []float64{270, 280, 290}, 0.06, 0.12, 0)
	require.NoError(t, err)
	require.Len(t, cs, 3)
	assert.Equal(t, 8.0, cs[2].Speed)
	assert.Equal(t, 290.0, cs[2].Direction)
	assert.Equal(t, 0.12, cs[1].Shear)

	cs, err = Conditions([]float64{6, 8}, []float64{270, 280}, 0.06, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, cs[0].Speed)
	assert.Equal(t, 280.0, cs[1].Direction)

	_, err = Conditions([]float64{6, 8}, []float64{270, 280, 290}, 0.06, 0, 0)
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = Conditions(nil, []float64{270}, 0.06, 0, 0)
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = Conditions([]float64{8, 0}, []float64{270}, 0.06, 0, 0)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestCompleteDomain(t *testing.T) {
	tb := turbinetest.New()
	f := New()
	f.Add("a", tb, 0, 0)
	f.Add("b", tb, 1000, 400)

	f.CompleteDomain(2)
	assert.Nil(t, f.Domain)

	f.Domain = &geom.Box{
		Min: geom.Vec{-100, 0, 0},
		Max: geom.Vec{1200, 0, 0},
	}
	f.CompleteDomain(2)
	assert.Equal(t, geom.Vec{-100, -252, 0}, f.Domain.Min)
	assert.Equal(t, geom.Vec{1200, 652, 342}, f.Domain.Max)
	assert.NoError(t, f.Validate())
}
