package io

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// DefaultCurveColumns names the second and third columns of a curve file when
// curve_columns is not given.
var DefaultCurveColumns = []string{"power", "thrust_coefficient"}

// ReadCurveTable reads the first three columns of a whitespace-separated
// table: wind speed and the two columns that follow it.
func ReadCurveTable(fname string) (ws, c1, c2 []float64, err error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2}, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return cols[0], cols[1], cols[2], nil
}

// readCurveInto fills the columns of ptt named by names from a curve file.
func readCurveInto(fname string, names []string, ptt *powerThrustTable) error {
	if names == nil {
		names = DefaultCurveColumns
	}
	if len(names) != 2 {
		return fmt.Errorf(
			"curve_columns must name two columns, but names %d", len(names),
		)
	}

	ws, c1, c2, err := ReadCurveTable(fname)
	if err != nil {
		return err
	}
	ptt.WindSpeed = ws

	for i, col := range [][]float64{c1, c2} {
		switch names[i] {
		case "power":
			ptt.Power = col
		case "power_coefficient":
			ptt.PowerCoefficient = col
		case "thrust":
			ptt.Thrust = col
		case "thrust_coefficient":
			ptt.ThrustCoefficient = col
		default:
			return fmt.Errorf("'%s' is not a valid curve column", names[i])
		}
	}
	return nil
}
