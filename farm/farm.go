/*package farm describes a wind farm: where its turbines are, what region of
space the flow is solved over, and the ambient conditions it operates in.
*/
package farm

import (
	"math"

	"github.com/phil-mansfield/gowake/geom"
	"github.com/phil-mansfield/gowake/turbine"
)

// Placement positions one turbine in the farm. Coordinates are world
// coordinates in meters with x towards the east and y towards the north.
type Placement struct {
	Name    string
	Turbine *turbine.Turbine
	X, Y    float64
	// HubHeight overrides the turbine's hub height when positive.
	HubHeight float64
}

// Hub returns the world position of the rotor hub.
func (p *Placement) Hub() geom.Vec {
	z := p.HubHeight
	if z <= 0 && p.Turbine != nil {
		z = p.Turbine.HubHeight
	}
	return geom.Vec{p.X, p.Y, z}
}

// Farm is an ordered collection of placements. Turbine indices in solver
// results refer to this order.
type Farm struct {
	Placements []Placement

	// Domain bounds every hub when set. Otherwise it is derived from the
	// layout.
	Domain *geom.Box
	// RefHeight is the height at which the ambient wind speed is given. It
	// defaults to the first turbine's hub height.
	RefHeight float64
}

// New creates a Farm from a list of placements.
func New(ps ...Placement) *Farm {
	return &Farm{Placements: append([]Placement{}, ps...)}
}

// Add appends a turbine to the farm and returns its index.
func (f *Farm) Add(name string, t *turbine.Turbine, x, y float64) int {
	f.Placements = append(f.Placements, Placement{Name: name, Turbine: t, X: x, Y: y})
	return len(f.Placements) - 1
}

// Len returns the number of turbines in the farm.
func (f *Farm) Len() int { return len(f.Placements) }

// Hubs returns the hub position of every turbine.
func (f *Farm) Hubs() []geom.Vec {
	out := make([]geom.Vec, len(f.Placements))
	for i := range f.Placements {
		out[i] = f.Placements[i].Hub()
	}
	return out
}

// Validate checks that the farm can be solved.
func (f *Farm) Validate() error {
	if len(f.Placements) == 0 {
		return Configurationf("farm has no turbines")
	}
	if f.Domain != nil && !f.Domain.Valid() {
		return Configurationf(
			"domain minimum %v exceeds maximum %v", f.Domain.Min, f.Domain.Max,
		)
	}

	for i := range f.Placements {
		p := &f.Placements[i]
		if p.Turbine == nil {
			return Configurationf("turbine %d (%s) has no definition", i, p.Name)
		}
		hub := p.Hub()
		for k := 0; k < 3; k++ {
			if math.IsNaN(hub[k]) || math.IsInf(hub[k], 0) {
				return Configurationf(
					"turbine %d (%s) has non-finite position %v", i, p.Name, hub,
				)
			}
		}
		if hub[2] <= 0 {
			return Configurationf(
				"turbine %d (%s) has hub height %g; it must be above ground",
				i, p.Name, hub[2],
			)
		}
		if f.Domain != nil && !f.Domain.Contains(hub) {
			return Configurationf(
				"turbine %d (%s) at %v is outside of the domain [%v, %v]",
				i, p.Name, hub, f.Domain.Min, f.Domain.Max,
			)
		}
	}
	return nil
}

// ReferenceHeight returns RefHeight, or the first hub height when it is
// unset.
func (f *Farm) ReferenceHeight() float64 {
	if f.RefHeight > 0 || len(f.Placements) == 0 {
		return f.RefHeight
	}
	return f.Placements[0].Hub()[2]
}

// Center returns the center of the layout's bounding box, at zero height.
// Wind-frame rotations are performed about this point.
func (f *Farm) Center() geom.Vec {
	b := f.layoutBox()
	c := b.Center()
	c[2] = 0
	return c
}

// Bounds returns Domain if it is set. Otherwise it returns the layout's
// bounding box padded by pad rotor diameters of the largest rotor.
func (f *Farm) Bounds(pad float64) geom.Box {
	if f.Domain != nil {
		return *f.Domain
	}
	b := f.layoutBox()
	return b.Expand(pad * f.maxDiameter())
}

// CompleteDomain replaces every axis of Domain whose minimum equals its
// maximum, usually because neither was given, with that axis of the padded
// layout box used by Bounds.
func (f *Farm) CompleteDomain(pad float64) {
	if f.Domain == nil {
		return
	}
	auto := f.layoutBox()
	auto = auto.Expand(pad * f.maxDiameter())
	for k := 0; k < 3; k++ {
		if f.Domain.Min[k] == f.Domain.Max[k] {
			f.Domain.Min[k], f.Domain.Max[k] = auto.Min[k], auto.Max[k]
		}
	}
}

func (f *Farm) layoutBox() geom.Box {
	if len(f.Placements) == 0 {
		return geom.Box{}
	}
	b := geom.Box{Min: f.Placements[0].Hub(), Max: f.Placements[0].Hub()}
	for i := range f.Placements {
		hub := f.Placements[i].Hub()
		for k := 0; k < 3; k++ {
			b.Min[k] = math.Min(b.Min[k], hub[k])
			b.Max[k] = math.Max(b.Max[k], hub[k])
		}
	}
	return b
}

func (f *Farm) maxDiameter() float64 {
	d := 0.0
	for i := range f.Placements {
		if t := f.Placements[i].Turbine; t != nil {
			d = math.Max(d, t.RotorDiameter)
		}
	}
	return d
}
