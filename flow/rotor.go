package flow

import (
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/gowake/geom"
)

// RotorRadiusRatio is the fraction of the rotor radius spanned by the rotor
// sample points.
const RotorRadiusRatio = 0.5

// RotorGrid samples the rotor discs of a set of turbines. Its first axis
// indexes turbines and the remaining two are the crosswise and vertical
// sample positions on each disc.
type RotorGrid struct {
	*Grid
	Hubs []geom.Vec
}

// NewRotorGrid places n x n points on each rotor disc, centered on hubs given
// in the wind frame. The points span RotorRadiusRatio of each radius.
func NewRotorGrid(hubs []geom.Vec, diameters []float64, n int) *RotorGrid {
	if n < 1 {
		n = 1
	}
	g := &RotorGrid{newGrid([3]int{len(hubs), n, n}), hubs}

	offsets := make([]float64, n)
	for t, hub := range hubs {
		RotorOffsets(offsets, diameters[t]/2)
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				g.Points[g.Idx(t, j, k)] = geom.Vec{
					hub[0], hub[1] + offsets[j], hub[2] + offsets[k],
				}
			}
		}
	}
	return g
}

// RotorOffsets fills dst with evenly spaced offsets across a rotor of the
// given radius. A single point sits at the hub.
func RotorOffsets(dst []float64, radius float64) []float64 {
	if len(dst) == 1 {
		dst[0] = 0
		return dst
	}
	r := RotorRadiusRatio * radius
	return floats.Span(dst, -r, r)
}

// Turbines returns the number of rotors in the grid.
func (g *RotorGrid) Turbines() int { return g.Shape[0] }

// RotorVelocity returns the cube root of the mean cubed velocity over rotor
// t's sample points.
func (g *RotorGrid) RotorVelocity(t int) float64 {
	lo, hi := g.Slab(t)
	return g.rotorAverage(lo, hi)
}

// RotorPoints returns the sample points of rotor t.
func (g *RotorGrid) RotorPoints(t int) []geom.Vec {
	lo, hi := g.Slab(t)
	return g.Points[lo:hi]
}
