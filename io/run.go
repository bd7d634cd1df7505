package io

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/gowake/farm"
	"github.com/phil-mansfield/gowake/flow"
	"github.com/phil-mansfield/gowake/geom"
	"github.com/phil-mansfield/gowake/solver"
	"github.com/phil-mansfield/gowake/wake"
)

const (
	ExampleRunFile = `[Farm]

#######################
# Required Parameters #
#######################

# Directory containing turbine definitions. A turbine with Type = nrel_5MW is
# read from TurbineLibrary/nrel_5MW.yaml. Run 'gowake -ExampleConfig Turbine'
# for an example turbine file.
TurbineLibrary = path/to/turbine/library

#######################
# Optional Parameters #
#######################

# Height at which Wind.Speed is measured. Defaults to the hub height of the
# first turbine (by section name).
# RefHeight = 90

# Bounds that every hub must lie within. An axis whose bounds are not given is
# derived from the layout.
# XMin = -500
# XMax = 3000
# YMin = -500
# YMax = 500
# ZMin = 0
# ZMax = 300

# Directory that cut planes are written to. Each [Plane "name"] section is
# written to name.txt (or name.plane with Binary = true).
# Output = path/to/output/dir
# Binary = false

# SQLite file that solved conditions are stored in.
# Database = results.db

# Turbines are solved and reported in the order of their section names.
[Turbine "T00"]
Type = nrel_5MW
X = 0
Y = 0
# Yaw misalignment in degrees.
Yaw = 25

[Turbine "T01"]
Type = nrel_5MW
X = 630
Y = 0
# Overrides the hub height given in the turbine file.
# HubHeight = 100
# Tilt in degrees. Defaults to the turbine's reference tilt.
# Tilt = 5

[Turbine "T02"]
Type = nrel_5MW
X = 1260
Y = 0

[Wind]

# Speed (m/s) and Direction (degrees, meteorological: 270 is a westerly) may be
# given several times. Each speed is paired with the direction at the same
# position. If either is given only once, it is paired with every value of
# the other.
Speed = 8
Direction = 270

# TurbulenceIntensity = 0.06
# Shear = 0.12
# Air density in kg/m^3. Defaults to each turbine's reference density.
# AirDensity = 1.225

[Solver]

# WakeModel can be set to one of:
# [ Gauss | Jensen | None ]
# WakeModel = Gauss

# Superposition can be set to one of:
# [ SumOfSquares | Linear | Max ]
# Superposition = SumOfSquares

# Wake-added turbulence. One of:
# [ None | CrespoHernandez ]
# Turbulence = None

# RotorPoints = 3
# MaxIterations = 10
# Tolerance = 1e-6
# Workers = 0

# Normal can be one of [ X | Y | Z ]. A Z plane at Offset = 90 is a horizontal
# slice at 90 m. The bounds of the plane default to the farm's bounds.
[Plane "hub_height"]
Normal = Z
Offset = 90
Resolution1 = 100
Resolution2 = 100
# Min1 = -500
# Max1 = 2000
# Min2 = -300
# Max2 = 300`
)

type FarmConfig struct {
	// Required
	TurbineLibrary string

	// Optional
	RefHeight                          float64
	XMin, XMax, YMin, YMax, ZMin, ZMax float64
	Output, Database                   string
	Binary                             bool
}

func (con *FarmConfig) ValidTurbineLibrary() bool {
	return con.TurbineLibrary != ""
}
func (con *FarmConfig) ValidDomain() bool {
	return con.XMin != 0 || con.XMax != 0 || con.YMin != 0 ||
		con.YMax != 0 || con.ZMin != 0 || con.ZMax != 0
}
func (con *FarmConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *FarmConfig) ValidDatabase() bool {
	return con.Database != ""
}

type TurbineConfig struct {
	// Required
	Type string
	X, Y float64

	// Optional
	Yaw, HubHeight float64
	Tilt           string
}

func (con *TurbineConfig) CheckInit(name string) error {
	if con.Type == "" {
		return fmt.Errorf("Need to specify a Type for Turbine '%s'.", name)
	} else if con.HubHeight < 0 {
		return fmt.Errorf(
			"Turbine '%s' given a negative HubHeight, %g.", name, con.HubHeight,
		)
	}
	if con.Tilt != "" {
		if _, err := strconv.ParseFloat(con.Tilt, 64); err != nil {
			return fmt.Errorf(
				"Tilt of Turbine '%s' is '%s', which is not a number.",
				name, con.Tilt,
			)
		}
	}
	return nil
}

type WindConfig struct {
	// Required
	Speed, Direction []float64

	// Optional
	TurbulenceIntensity, Shear, AirDensity float64
}

type SolverConfig struct {
	WakeModel, Superposition, Turbulence string

	RotorPoints, MaxIterations int
	Tolerance                  float64
	Workers                    int
}

func (con *SolverConfig) ValidWakeModel() bool {
	_, err := wake.NewModel(wake.Kind(con.WakeModel))
	return err == nil
}
func (con *SolverConfig) ValidSuperposition() bool {
	_, err := wake.NewSuperposition(wake.SuperpositionKind(con.Superposition))
	return err == nil
}
func (con *SolverConfig) ValidTurbulence() bool {
	_, err := wake.NewTurbulence(wake.TurbulenceKind(con.Turbulence))
	return err == nil
}

type PlaneConfig struct {
	// Required
	Normal                   string
	Offset                   float64
	Resolution1, Resolution2 int

	// Optional
	Min1, Max1, Min2, Max2 float64
}

func (con *PlaneConfig) CheckInit(name string) error {
	if _, err := flow.ParseAxis(con.Normal); err != nil {
		return fmt.Errorf("Plane '%s': %s", name, err.Error())
	} else if con.Resolution1 <= 0 || con.Resolution2 <= 0 {
		return fmt.Errorf(
			"Plane '%s' needs positive Resolution1 and Resolution2, not %d "+
				"and %d.", name, con.Resolution1, con.Resolution2,
		)
	} else if con.Min1 > con.Max1 || con.Min2 > con.Max2 {
		return fmt.Errorf("Plane '%s' has a minimum above its maximum.", name)
	}
	return nil
}

// RunConfig is the contents of a run file.
type RunConfig struct {
	Farm    FarmConfig
	Turbine map[string]*TurbineConfig
	Wind    WindConfig
	Solver  SolverConfig
	Plane   map[string]*PlaneConfig
}

// DefaultRunConfig returns a RunConfig with every optional value set to its
// default.
func DefaultRunConfig() *RunConfig {
	sc := solver.DefaultConfig()
	con := &RunConfig{}
	con.Wind.TurbulenceIntensity = 0.06
	con.Solver = SolverConfig{
		WakeModel:     string(sc.WakeModel),
		Superposition: string(sc.Superposition),
		Turbulence:    string(sc.Turbulence),
		RotorPoints:   sc.RotorPoints,
		MaxIterations: sc.MaxIterations,
		Tolerance:     sc.Tolerance,
	}
	return con
}

// ReadRunConfig reads and checks the run file fname.
func ReadRunConfig(fname string) (*RunConfig, error) {
	con := DefaultRunConfig()
	if err := gcfg.ReadFileInto(con, fname); err != nil {
		return nil, err
	}
	if err := con.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return con, nil
}

// ParseRunConfig reads and checks a run file held in a string.
func ParseRunConfig(text string) (*RunConfig, error) {
	con := DefaultRunConfig()
	if err := gcfg.ReadStringInto(con, text); err != nil {
		return nil, err
	}
	if err := con.CheckInit(); err != nil {
		return nil, err
	}
	return con, nil
}

// CheckInit returns a *farm.ConfigurationError describing the first problem
// with the run file.
func (con *RunConfig) CheckInit() error {
	switch {
	case !con.Farm.ValidTurbineLibrary():
		return farm.Configurationf("Need to specify Farm.TurbineLibrary.")
	case len(con.Turbine) == 0:
		return farm.Configurationf("Need at least one [Turbine] section.")
	case !con.Solver.ValidWakeModel():
		return farm.Configurationf(
			"'%s' is not a valid Solver.WakeModel.", con.Solver.WakeModel,
		)
	case !con.Solver.ValidSuperposition():
		return farm.Configurationf(
			"'%s' is not a valid Solver.Superposition.",
			con.Solver.Superposition,
		)
	case !con.Solver.ValidTurbulence():
		return farm.Configurationf(
			"'%s' is not a valid Solver.Turbulence.", con.Solver.Turbulence,
		)
	}

	if d := con.Domain(); d != nil && !d.Valid() {
		return farm.Configurationf(
			"Farm bounds have a minimum above a maximum: [%v, %v].",
			d.Min, d.Max,
		)
	}

	sc := con.SolverConfig()
	if err := sc.CheckInit(); err != nil {
		return farm.Configurationf("Solver: %s", err.Error())
	}

	for _, name := range con.TurbineNames() {
		if err := con.Turbine[name].CheckInit(name); err != nil {
			return farm.Configurationf("%s", err.Error())
		}
	}
	for _, name := range con.PlaneNames() {
		if err := con.Plane[name].CheckInit(name); err != nil {
			return farm.Configurationf("%s", err.Error())
		}
	}

	if _, err := con.Conditions(); err != nil {
		return err
	}
	return nil
}

// TurbineNames returns the names of the [Turbine] sections in sorted order.
// This is the order in which turbines are placed in the farm.
func (con *RunConfig) TurbineNames() []string {
	return sortedKeys(con.Turbine)
}

// PlaneNames returns the names of the [Plane] sections in sorted order.
func (con *RunConfig) PlaneNames() []string {
	return sortedKeys(con.Plane)
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SolverConfig converts the [Solver] section into a solver.Config.
func (con *RunConfig) SolverConfig() solver.Config {
	return solver.Config{
		WakeModel:     wake.Kind(con.Solver.WakeModel),
		Superposition: wake.SuperpositionKind(con.Solver.Superposition),
		Turbulence:    wake.TurbulenceKind(con.Solver.Turbulence),
		RotorPoints:   con.Solver.RotorPoints,
		MaxIterations: con.Solver.MaxIterations,
		Tolerance:     con.Solver.Tolerance,
		Workers:       con.Solver.Workers,
	}
}

// Conditions converts the [Wind] section into ambient conditions.
func (con *RunConfig) Conditions() ([]farm.Condition, error) {
	w := &con.Wind
	return farm.Conditions(
		w.Speed, w.Direction, w.TurbulenceIntensity, w.Shear, w.AirDensity,
	)
}

// Domain returns the configured domain, or nil if none was given.
func (con *RunConfig) Domain() *geom.Box {
	f := &con.Farm
	if !f.ValidDomain() {
		return nil
	}
	return &geom.Box{
		Min: geom.Vec{f.XMin, f.YMin, f.ZMin},
		Max: geom.Vec{f.XMax, f.YMax, f.ZMax},
	}
}

// Controls returns the yaw and tilt set points in turbine order. Tilt is nil
// if no turbine sets it.
func (con *RunConfig) Controls(f *farm.Farm) solver.Controls {
	names := con.TurbineNames()
	ctrl := solver.Controls{Yaw: make([]float64, len(names))}

	for i, name := range names {
		tc := con.Turbine[name]
		ctrl.Yaw[i] = tc.Yaw
		if tc.Tilt == "" {
			continue
		}
		if ctrl.Tilt == nil {
			ctrl.Tilt = make([]float64, len(names))
			for j := range ctrl.Tilt {
				ctrl.Tilt[j] = f.Placements[j].Turbine.RefTilt
			}
		}
		ctrl.Tilt[i], _ = strconv.ParseFloat(tc.Tilt, 64)
	}
	return ctrl
}

// NamedPlane is a cut plane requested by a [Plane] section.
type NamedPlane struct {
	Name string
	Spec flow.PlaneSpec
}

// Planes returns the requested cut planes in sorted order.
func (con *RunConfig) Planes() []NamedPlane {
	out := []NamedPlane{}
	for _, name := range con.PlaneNames() {
		pc := con.Plane[name]
		normal, _ := flow.ParseAxis(pc.Normal)
		a1, a2 := normal.InPlane()

		spec := flow.PlaneSpec{
			Normal:     normal,
			Offset:     pc.Offset,
			Resolution: [2]int{pc.Resolution1, pc.Resolution2},
		}
		spec.Bounds.Min[a1], spec.Bounds.Max[a1] = pc.Min1, pc.Max1
		spec.Bounds.Min[a2], spec.Bounds.Max[a2] = pc.Min2, pc.Max2
		out = append(out, NamedPlane{strings.TrimSpace(name), spec})
	}
	return out
}
