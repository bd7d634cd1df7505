package flow

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/gowake/geom"
)

// Axis is one of the three world axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis converts "X", "Y" or "Z" into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "X", "x":
		return X, nil
	case "Y", "y":
		return Y, nil
	case "Z", "z":
		return Z, nil
	}
	return 0, fmt.Errorf("'%s' is not an axis. Must be X, Y, or Z", s)
}

// InPlane returns the two world axes spanned by a plane normal to a.
func (a Axis) InPlane() (a1, a2 int) {
	switch a {
	case X:
		return 1, 2
	case Y:
		return 0, 2
	default:
		return 0, 1
	}
}

// PlaneSpec describes an axis-aligned cut plane in world coordinates.
type PlaneSpec struct {
	Normal Axis
	// Offset is the plane's position along Normal.
	Offset float64
	// Resolution is the number of samples along the plane's two axes.
	Resolution [2]int
	// Bounds limits the extent of the plane along its two axes.
	Bounds geom.Box
}

// Plane is a sampled cut plane. U[j, i] is the streamwise velocity at
// (Axis1[i], Axis2[j]).
type Plane struct {
	Normal       Axis
	Offset       float64
	Axis1, Axis2 []float64
	U            *mat.Dense
}

// Span returns n evenly spaced values from lo to hi. A single value sits at
// the midpoint.
func Span(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = (lo + hi) / 2
		return out
	}
	return floats.Span(out, lo, hi)
}

// NewPlaneGrid lays out the sample points of a cut plane. The returned Plane
// has its axes set and is filled in by Fill once the grid has been stamped.
func NewPlaneGrid(
	frame *geom.WindFrame, spec *PlaneSpec, prof Profile,
) (*Grid, *Plane, error) {
	n1, n2 := spec.Resolution[0], spec.Resolution[1]
	if n1 < 1 || n2 < 1 {
		return nil, nil, fmt.Errorf(
			"plane resolution must be positive, got %d x %d", n1, n2,
		)
	} else if spec.Normal < X || spec.Normal > Z {
		return nil, nil, fmt.Errorf("invalid plane normal %v", spec.Normal)
	}

	a1, a2 := spec.Normal.InPlane()
	b := &spec.Bounds
	pl := &Plane{
		Normal: spec.Normal,
		Offset: spec.Offset,
		Axis1:  Span(n1, b.Min[a1], b.Max[a1]),
		Axis2:  Span(n2, b.Min[a2], b.Max[a2]),
		U:      mat.NewDense(n2, n1, nil),
	}

	g := newGrid([3]int{1, n2, n1})
	for j := 0; j < n2; j++ {
		for i := 0; i < n1; i++ {
			var w geom.Vec
			w[spec.Normal] = spec.Offset
			w[a1], w[a2] = pl.Axis1[i], pl.Axis2[j]
			g.Points[g.Idx(0, j, i)] = frame.ToWind(w)
		}
	}
	g.SetAmbient(prof)

	return g, pl, nil
}

// Fill copies the waked velocities of g, which must have been created along
// with pl, into pl.U.
func (pl *Plane) Fill(g *Grid) {
	n2, n1 := pl.U.Dims()
	for j := 0; j < n2; j++ {
		for i := 0; i < n1; i++ {
			pl.U.Set(j, i, g.Velocity(g.Idx(0, j, i)))
		}
	}
}

// NewBoxGrid samples a box in world coordinates at res[0] x res[1] x res[2]
// points. The returned axes hold the world coordinates along each dimension.
func NewBoxGrid(
	frame *geom.WindFrame, box geom.Box, res [3]int, prof Profile,
) (*Grid, [3][]float64, error) {
	var axes [3][]float64
	for d := 0; d < 3; d++ {
		if res[d] < 1 {
			return nil, axes, fmt.Errorf(
				"grid resolution must be positive, got %v", res,
			)
		}
		axes[d] = Span(res[d], box.Min[d], box.Max[d])
	}

	g := newGrid(res)
	for i, x := range axes[0] {
		for j, y := range axes[1] {
			for k, z := range axes[2] {
				g.Points[g.Idx(i, j, k)] = frame.ToWind(geom.Vec{x, y, z})
			}
		}
	}
	g.SetAmbient(prof)

	return g, axes, nil
}
