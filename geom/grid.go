package geom

// Grid provides an interface for reasoning over a 1D slice as if it were a
// 3D grid. The first axis varies slowest.
type Grid struct {
	Shape                [3]int
	Length, Area, Volume int
}

// NewGrid returns a new Grid instance.
func NewGrid(shape [3]int) *Grid {
	g := &Grid{}
	g.Init(shape)
	return g
}

// Init initializes a Grid instance.
func (g *Grid) Init(shape [3]int) {
	g.Shape = shape

	g.Length = shape[2]
	g.Area = shape[1] * shape[2]
	g.Volume = shape[0] * shape[1] * shape[2]
}

// Idx returns the grid index corresponding to a set of coordinates.
func (g *Grid) Idx(i, j, k int) int {
	return i*g.Area + j*g.Length + k
}

// IdxCheck returns an index and true if the given coordinate are valid and
// false otherwise.
func (g *Grid) IdxCheck(i, j, k int) (idx int, ok bool) {
	if !g.BoundsCheck(i, j, k) {
		return -1, false
	}

	return g.Idx(i, j, k), true
}

// BoundsCheck returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid) BoundsCheck(i, j, k int) bool {
	return (0 <= i && 0 <= j && 0 <= k) &&
		(i < g.Shape[0] && j < g.Shape[1] && k < g.Shape[2])
}

// Coords returns the i, j, k coordinates of a point from its grid index.
func (g *Grid) Coords(idx int) (i, j, k int) {
	i = idx / g.Area
	j = (idx % g.Area) / g.Length
	k = idx % g.Length
	return i, j, k
}

// Slab returns the half-open index range [lo, hi) covered by the first-axis
// slice i.
func (g *Grid) Slab(i int) (lo, hi int) {
	return i * g.Area, (i + 1) * g.Area
}
