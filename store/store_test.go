package store

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gowake/farm"
	"github.com/phil-mansfield/gowake/solver"
	"github.com/phil-mansfield/gowake/turbine/turbinetest"
)

func openTemp(t *testing.T) *Manager {
	path := filepath.Join(t.TempDir(), "runs.db")
	m, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func solvePair(t *testing.T, speed float64) (solver.Config, *solver.Result) {
	tb := turbinetest.New()
	f := farm.New()
	f.Add("T00", tb, 0, 0)
	f.Add("T01", tb, 5*turbinetest.Diameter, 0)

	cfg := solver.DefaultConfig()
	s, err := solver.New(cfg)
	require.NoError(t, err)

	res, err := s.Solve(f, farm.Condition{
		Speed: speed, Direction: 270, TurbulenceIntensity: 0.06,
	}, solver.Controls{})
	require.NoError(t, err)
	return cfg, res
}

func TestNewRun(t *testing.T) {
	cfg, res := solvePair(t, 8)
	run := NewRun("pair", cfg, res)

	assert.Equal(t, "pair", run.Label)
	assert.Equal(t, 8.0, run.Speed)
	assert.Equal(t, 270.0, run.Direction)
	assert.Equal(t, "Gauss", run.WakeModel)
	assert.Equal(t, "SumOfSquares", run.Superposition)
	assert.Equal(t, "Converged", run.State)
	assert.InDelta(t, res.FarmPower(), run.FarmPower, 1e-9)

	require.Len(t, run.Turbines, 2)
	for i, tr := range run.Turbines {
		assert.Equal(t, i, tr.Index)
		assert.Equal(t, res.Turbines[i].Name, tr.Name)
		assert.Equal(t, res.Turbines[i].Power, tr.Power)
		assert.Equal(t, res.Turbines[i].Velocity, tr.Velocity)
	}
}

func TestSaveAndLoad(t *testing.T) {
	m := openTemp(t)

	speeds := []float64{7, 9, 11}
	ids := make([]uint, len(speeds))
	for i, v := range speeds {
		cfg, res := solvePair(t, v)
		run, err := m.Save("sweep", cfg, res)
		require.NoError(t, err)
		require.NotZero(t, run.ID)
		ids[i] = run.ID
	}

	_, res := solvePair(t, 9)
	run, err := m.Run(ids[1])
	require.NoError(t, err)
	assert.Equal(t, 9.0, run.Speed)
	require.Len(t, run.Turbines, 2)
	assert.Equal(t, "T00", run.Turbines[0].Name)
	assert.Equal(t, "T01", run.Turbines[1].Name)
	assert.InDelta(t, res.Turbines[1].Velocity, run.Turbines[1].Velocity, 1e-12)
	assert.InDelta(t, res.FarmPower(), run.FarmPower, 1e-9)

	runs, err := m.Runs("sweep")
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for i := range runs {
		assert.Equal(t, speeds[i], runs[i].Speed)
		assert.Empty(t, runs[i].Turbines)
	}

	runs, err = m.Runs("other")
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestDelete(t *testing.T) {
	m := openTemp(t)

	for _, label := range []string{"a", "a", "b"} {
		cfg, res := solvePair(t, 8)
		_, err := m.Save(label, cfg, res)
		require.NoError(t, err)
	}

	n, err := m.Delete("a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var count int64
	require.NoError(t, m.DB.Model(&TurbineResult{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	n, err = m.Delete("a")
	require.NoError(t, err)
	assert.Zero(t, n)

	runs, err := m.Runs("b")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSaveErrors(t *testing.T) {
	m := openTemp(t)
	_, err := m.Save("nil", solver.DefaultConfig(), nil)
	assert.Error(t, err)

	_, err = m.Run(12345)
	assert.Error(t, err)
}

func TestInMemory(t *testing.T) {
	m, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	defer m.Close()

	cfg, res := solvePair(t, 10)
	run, err := m.Save("in-memory", cfg, res)
	require.NoError(t, err)

	got, err := m.Run(run.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Speed)
	assert.Len(t, got.Turbines, 2)
}
