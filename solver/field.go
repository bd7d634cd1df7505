package solver

import (
	"fmt"

	"github.com/phil-mansfield/gowake/flow"
	"github.com/phil-mansfield/gowake/geom"
)

// DefaultPadding is the number of rotor diameters by which flow fields extend
// past the layout when the farm has no explicit domain.
const DefaultPadding = 3.0

// CutPlane samples the solved flow on an axis-aligned plane. The wakes are
// re-stamped with the operating points stored in res, so the plane is
// consistent with the turbine outputs. Each in-plane axis along which
// spec.Bounds is empty takes the farm's bounds.
func (s *Solver) CutPlane(res *Result, spec flow.PlaneSpec) (*flow.Plane, error) {
	if err := checkResult(res); err != nil {
		return nil, err
	}

	auto := res.Farm.Bounds(DefaultPadding)
	if spec.Normal != flow.Z {
		auto.Min[2] = 0
	}
	a1, a2 := spec.Normal.InPlane()
	for _, k := range []int{a1, a2} {
		if spec.Bounds.Min[k] == spec.Bounds.Max[k] {
			spec.Bounds.Min[k], spec.Bounds.Max[k] = auto.Min[k], auto.Max[k]
		}
	}

	g, pl, err := flow.NewPlaneGrid(res.Frame, &spec, res.profile)
	if err != nil {
		return nil, err
	}
	s.restamp(res, g)
	pl.Fill(g)
	return pl, nil
}

// FullField samples the solved flow on a 3D grid spanning box, which defaults
// to the farm's bounds when it is empty.
func (s *Solver) FullField(
	res *Result, box geom.Box, shape [3]int,
) (*flow.Grid, [3][]float64, error) {
	if err := checkResult(res); err != nil {
		return nil, [3][]float64{}, err
	}
	if box.Min == box.Max {
		box = res.Farm.Bounds(DefaultPadding)
	}

	g, axes, err := flow.NewBoxGrid(res.Frame, box, shape, res.profile)
	if err != nil {
		return nil, axes, err
	}
	s.restamp(res, g)
	return g, axes, nil
}

func (s *Solver) restamp(res *Result, g *flow.Grid) {
	for _, i := range res.Order {
		g.Stamp(&res.sources[i], res.model, res.sup, s.cfg.workers())
	}
}

func checkResult(res *Result) error {
	if res == nil || !res.State.Done() {
		return fmt.Errorf("flow fields need a finished solve")
	}
	return nil
}
