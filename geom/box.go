package geom

// Box is an axis-aligned box with inclusive bounds.
type Box struct {
	Min, Max Vec
}

// Contains returns true if v is inside the box or on its boundary.
func (b *Box) Contains(v Vec) bool {
	for i := 0; i < 3; i++ {
		if v[i] < b.Min[i] || v[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Width returns the extent of the box along each axis.
func (b *Box) Width() Vec { return b.Max.Sub(b.Min) }

// Center returns the midpoint of the box.
func (b *Box) Center() Vec {
	return Vec{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Valid returns true if Min does not exceed Max along any axis.
func (b *Box) Valid() bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Expand grows the box by pad on every side. The result never extends below
// the ground at z = 0.
func (b *Box) Expand(pad float64) Box {
	out := Box{
		Min: Vec{b.Min[0] - pad, b.Min[1] - pad, b.Min[2] - pad},
		Max: Vec{b.Max[0] + pad, b.Max[1] + pad, b.Max[2] + pad},
	}
	if out.Min[2] < 0 {
		out.Min[2] = 0
	}
	return out
}
