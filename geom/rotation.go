package geom

import (
	. "math"
)

// WindFrame rotates world coordinates into the frame of the ambient wind.
// Wind directions are meteorological: the direction the wind blows from, in
// degrees clockwise from north, so 270 is a westerly flowing towards +x.
//
// In the wind frame x is streamwise, y is crosswise (to the left of the flow)
// and z is unchanged.
type WindFrame struct {
	Direction float64
	// Center is the point the rotation is performed around.
	Center Vec

	// flow direction and its left-hand normal in world coordinates.
	fx, fy, nx, ny float64
}

// NewWindFrame creates a WindFrame for the given direction rotated about
// center.
func NewWindFrame(direction float64, center Vec) *WindFrame {
	rad := direction * Pi / 180
	f := &WindFrame{Direction: direction, Center: center}
	f.fx, f.fy = -Sin(rad), -Cos(rad)
	f.nx, f.ny = -f.fy, f.fx
	f.snap()
	return f
}

// snap removes the floating point noise left by Sin and Cos at multiples of
// 90 degrees so that aligned layouts stay exactly aligned.
func (f *WindFrame) snap() {
	for _, c := range []*float64{&f.fx, &f.fy, &f.nx, &f.ny} {
		if Abs(*c) < 1e-15 {
			*c = 0
		}
	}
}

// ToWind converts a world-frame point into the wind frame.
func (f *WindFrame) ToWind(v Vec) Vec {
	dx, dy := v[0]-f.Center[0], v[1]-f.Center[1]
	return Vec{
		dx*f.fx + dy*f.fy + f.Center[0],
		dx*f.nx + dy*f.ny + f.Center[1],
		v[2],
	}
}

// ToWorld converts a wind-frame point back into the world frame.
func (f *WindFrame) ToWorld(v Vec) Vec {
	ds, dc := v[0]-f.Center[0], v[1]-f.Center[1]
	return Vec{
		ds*f.fx + dc*f.nx + f.Center[0],
		ds*f.fy + dc*f.ny + f.Center[1],
		v[2],
	}
}

// Streamwise returns the projection of a world-frame point onto the flow
// direction, relative to the frame's center.
func (f *WindFrame) Streamwise(v Vec) float64 {
	return (v[0]-f.Center[0])*f.fx + (v[1]-f.Center[1])*f.fy
}
