package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/phil-mansfield/gowake/farm"
	"github.com/phil-mansfield/gowake/solver"
	"github.com/phil-mansfield/gowake/turbine"
)

// Loader reads turbine definitions from a library directory and assembles
// farms from run files. Each turbine type is read once.
type Loader struct {
	Log      zerolog.Logger
	Library  string
	turbines map[string]*turbine.Turbine
}

// NewLoader creates a Loader reading turbines from the directory library.
func NewLoader(library string, log zerolog.Logger) *Loader {
	return &Loader{
		Log: log, Library: library, turbines: map[string]*turbine.Turbine{},
	}
}

// Turbine returns the turbine of the given type, reading
// Library/typ.yaml (or .yml) the first time it is requested.
func (l *Loader) Turbine(typ string) (*turbine.Turbine, error) {
	if t, ok := l.turbines[typ]; ok {
		return t, nil
	}

	var fname string
	for _, ext := range []string{".yaml", ".yml"} {
		fname = filepath.Join(l.Library, typ+ext)
		if _, err := os.Stat(fname); err == nil {
			break
		}
	}

	t, err := ReadTurbine(fname, l.Log)
	if err != nil {
		return nil, err
	}
	l.Log.Debug().Str("type", typ).Str("file", fname).
		Int("samples", len(t.Curve.WindSpeed)).Msg("Read turbine")

	l.turbines[typ] = t
	return t, nil
}

// Farm builds the farm described by con. Turbines are placed in the order of
// their section names.
func (l *Loader) Farm(con *RunConfig) (*farm.Farm, error) {
	f := farm.New()
	f.Domain = con.Domain()
	f.RefHeight = con.Farm.RefHeight

	for _, name := range con.TurbineNames() {
		tc := con.Turbine[name]
		t, err := l.Turbine(tc.Type)
		if err != nil {
			return nil, fmt.Errorf("Turbine '%s': %w", name, err)
		}
		f.Placements = append(f.Placements, farm.Placement{
			Name: name, Turbine: t, X: tc.X, Y: tc.Y, HubHeight: tc.HubHeight,
		})
	}

	f.CompleteDomain(solver.DefaultPadding)

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}
