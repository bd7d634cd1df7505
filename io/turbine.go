package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/gowake/turbine"
)

const ExampleTurbineFile = `# Turbines are described with an absolute power curve in kW and either thrust
# coefficients or absolute thrust in kN.
turbine_type: example_5MW
hub_height: 90.0
rotor_diameter: 126.0
TSR: 8.0
power_thrust_table:
  ref_air_density: 1.225
  ref_tilt: 5.0
  cosine_loss_exponent_yaw: 1.88
  cosine_loss_exponent_tilt: 1.88
  wind_speed: [3.0, 5.0, 7.0, 9.0, 11.0, 13.0, 25.0]
  power: [40.5, 403.9, 1255.0, 2585.0, 4525.0, 5000.0, 5000.0]
  thrust_coefficient: [0.98, 0.85, 0.78, 0.77, 0.76, 0.42, 0.05]

# Alternatively, a legacy table of power and thrust coefficients may be given
# as power_coefficient and thrust_coefficient, in which case
# generator_efficiency is required:
#
# generator_efficiency: 0.944
# power_thrust_table:
#   ...
#   wind_speed: [...]
#   power_coefficient: [...]
#   thrust_coefficient: [...]
#
# The table may also be read from a whitespace-separated text file. Its
# columns are wind speed followed by the two columns named in curve_columns:
#
# curve_file: example_5MW.txt
# curve_columns: [power, thrust_coefficient]`

// turbineFile is the YAML layout of a turbine definition. The v3 fields
// (pP, pT, ref_density_cp_ct, ref_tilt_cp_ct) describe older files whose
// power and thrust columns hold coefficients.
type turbineFile struct {
	TurbineType         string  `yaml:"turbine_type"`
	HubHeight           float64 `yaml:"hub_height"`
	RotorDiameter       float64 `yaml:"rotor_diameter"`
	TSR                 float64 `yaml:"TSR"`
	GeneratorEfficiency float64 `yaml:"generator_efficiency"`

	CurveFile    string   `yaml:"curve_file"`
	CurveColumns []string `yaml:"curve_columns"`

	PowerThrustTable powerThrustTable `yaml:"power_thrust_table"`

	PP             *float64 `yaml:"pP"`
	PT             *float64 `yaml:"pT"`
	RefDensityCpCt *float64 `yaml:"ref_density_cp_ct"`
	RefTiltCpCt    *float64 `yaml:"ref_tilt_cp_ct"`
}

type powerThrustTable struct {
	RefAirDensity          float64 `yaml:"ref_air_density"`
	RefTilt                float64 `yaml:"ref_tilt"`
	CosineLossExponentYaw  float64 `yaml:"cosine_loss_exponent_yaw"`
	CosineLossExponentTilt float64 `yaml:"cosine_loss_exponent_tilt"`

	WindSpeed         []float64 `yaml:"wind_speed"`
	Power             []float64 `yaml:"power"`
	PowerCoefficient  []float64 `yaml:"power_coefficient"`
	Thrust            []float64 `yaml:"thrust"`
	ThrustCoefficient []float64 `yaml:"thrust_coefficient"`
}

func (tf *turbineFile) isV3() bool {
	return tf.PP != nil || tf.PT != nil ||
		tf.RefDensityCpCt != nil || tf.RefTiltCpCt != nil
}

// ReadTurbine reads a YAML turbine definition. A relative curve_file is
// resolved against the directory of fname. Non-fatal problems found while
// building the turbine are logged at warn level.
func ReadTurbine(fname string, log zerolog.Logger) (*turbine.Turbine, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	t, err := parseTurbine(b, filepath.Dir(fname))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	logWarnings(t, log)
	return t, nil
}

// ParseTurbine parses a YAML turbine definition held in memory. A relative
// curve_file is resolved against the working directory.
func ParseTurbine(text []byte) (*turbine.Turbine, error) {
	return parseTurbine(text, ".")
}

func parseTurbine(text []byte, dir string) (*turbine.Turbine, error) {
	tf := &turbineFile{}
	if err := yaml.Unmarshal(text, tf); err != nil {
		return nil, err
	}
	name := tf.TurbineType
	if name == "" {
		return nil, &turbine.MissingParameterError{
			Turbine: "?", Parameter: "turbine_type",
		}
	}

	ptt := &tf.PowerThrustTable
	p := turbine.Params{
		RotorDiameter:          tf.RotorDiameter,
		HubHeight:              tf.HubHeight,
		TSR:                    tf.TSR,
		RefAirDensity:          ptt.RefAirDensity,
		RefTilt:                ptt.RefTilt,
		CosineLossExponentYaw:  ptt.CosineLossExponentYaw,
		CosineLossExponentTilt: ptt.CosineLossExponentTilt,
		GeneratorEfficiency:    tf.GeneratorEfficiency,
	}

	if tf.CurveFile != "" {
		path := tf.CurveFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if err := readCurveInto(path, tf.CurveColumns, ptt); err != nil {
			return nil, err
		}
	}

	var tab turbine.Table
	if tf.isV3() {
		tab = v3Table(tf, &p)
	} else {
		var err error
		if tab, err = v4Table(name, ptt); err != nil {
			return nil, err
		}
	}

	return turbine.Build(name, tab, p)
}

// v3Table reads the older layout, where power and thrust hold coefficients
// and the cosine-loss parameters live at the top level.
func v3Table(tf *turbineFile, p *turbine.Params) turbine.Table {
	ptt := &tf.PowerThrustTable
	if tf.PP != nil {
		p.CosineLossExponentYaw = *tf.PP
	}
	if tf.PT != nil {
		p.CosineLossExponentTilt = *tf.PT
	}
	if tf.RefDensityCpCt != nil {
		p.RefAirDensity = *tf.RefDensityCpCt
	}
	if tf.RefTiltCpCt != nil {
		p.RefTilt = *tf.RefTiltCpCt
	}
	return &turbine.CoefficientTable{
		WindSpeed:         ptt.WindSpeed,
		PowerCoefficient:  ptt.Power,
		ThrustCoefficient: ptt.Thrust,
	}
}

func v4Table(name string, ptt *powerThrustTable) (turbine.Table, error) {
	hasPower, hasCp := ptt.Power != nil, ptt.PowerCoefficient != nil
	switch {
	case hasPower && hasCp:
		return nil, &turbine.TableError{
			Turbine: name,
			Reason:  "both power and power_coefficient given; they are exclusive",
		}
	case hasCp:
		if ptt.Thrust != nil {
			return nil, &turbine.TableError{
				Turbine: name,
				Reason:  "power_coefficient must be paired with thrust_coefficient",
			}
		}
		return &turbine.CoefficientTable{
			WindSpeed:         ptt.WindSpeed,
			PowerCoefficient:  ptt.PowerCoefficient,
			ThrustCoefficient: ptt.ThrustCoefficient,
		}, nil
	case hasPower:
		return &turbine.AbsoluteTable{
			WindSpeed:         ptt.WindSpeed,
			Power:             ptt.Power,
			Thrust:            ptt.Thrust,
			ThrustCoefficient: ptt.ThrustCoefficient,
		}, nil
	default:
		return nil, &turbine.MissingParameterError{
			Turbine: name, Parameter: "power",
		}
	}
}

func logWarnings(t *turbine.Turbine, log zerolog.Logger) {
	for _, w := range t.Warnings {
		log.Warn().Str("turbine", t.Name).Err(w).Msg("Turbine definition")
	}
}
