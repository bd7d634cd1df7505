/*package flow contains the sample grids over which wake deficits are
accumulated, along with the ambient wind profile they are measured against.

Every grid stores its points in the wind frame. The deficit at each point
starts at zero and can only be changed with Stamp, which merges in one wake
through a Superposition rule.
*/
package flow

import (
	"math"

	"github.com/phil-mansfield/gowake/geom"
	"github.com/phil-mansfield/gowake/wake"
)

// Grid is a set of sample points laid out as a 3D grid.
type Grid struct {
	geom.Grid

	// Points are the sample locations in the wind frame.
	Points []geom.Vec
	// Ambient is the undisturbed streamwise velocity at each point.
	Ambient []float64

	deficit []float64
}

func newGrid(shape [3]int) *Grid {
	g := &Grid{}
	g.Init(shape)
	g.Points = make([]geom.Vec, g.Volume)
	g.Ambient = make([]float64, g.Volume)
	g.deficit = make([]float64, g.Volume)
	return g
}

// SetAmbient evaluates prof at the height of every point.
func (g *Grid) SetAmbient(prof Profile) {
	for i, p := range g.Points {
		g.Ambient[i] = prof.At(p[2])
	}
}

// Reset clears the accumulated deficit.
func (g *Grid) Reset() {
	for i := range g.deficit {
		g.deficit[i] = 0
	}
}

// Deficit returns the accumulated fractional deficit at point i.
func (g *Grid) Deficit(i int) float64 { return g.deficit[i] }

// Velocity returns the waked streamwise velocity at point i.
func (g *Grid) Velocity(i int) float64 {
	return g.Ambient[i] * (1 - g.deficit[i])
}

// Velocities writes the waked velocity of every point into out, which is
// allocated if nil.
func (g *Grid) Velocities(out []float64) []float64 {
	if out == nil {
		out = make([]float64, g.Volume)
	}
	for i := range out {
		out[i] = g.Velocity(i)
	}
	return out
}

// Stamp merges the wake of src into every point strictly downstream of it.
// The points are split into contiguous ranges across workers goroutines.
// Each point is only touched by one worker, so the result does not depend on
// workers.
func (g *Grid) Stamp(
	src *wake.Source, model wake.Model, sup wake.Superposition, workers int,
) {
	if workers < 1 {
		workers = 1
	}
	if workers > g.Volume {
		workers = g.Volume
	}
	if workers <= 1 {
		g.stampRange(0, g.Volume, src, model, sup)
		return
	}

	out := make(chan int, workers)
	for id := 0; id < workers-1; id++ {
		go g.chanStamp(id, workers, src, model, sup, out)
	}
	g.chanStamp(workers-1, workers, src, model, sup, out)

	for i := 0; i < workers; i++ {
		<-out
	}
}

func (g *Grid) chanStamp(
	id, workers int, src *wake.Source,
	model wake.Model, sup wake.Superposition, out chan<- int,
) {
	lo, hi := chunk(id, workers, g.Volume)
	g.stampRange(lo, hi, src, model, sup)
	out <- id
}

func (g *Grid) stampRange(
	lo, hi int, src *wake.Source, model wake.Model, sup wake.Superposition,
) {
	for i := lo; i < hi; i++ {
		p := g.Points[i]
		if p[0] <= src.Position[0] {
			continue
		}
		d := model.Deficit(p, src)
		if d > 0 {
			g.deficit[i] = sup.Combine(g.deficit[i], d)
		}
	}
}

// chunk returns the half-open range of n items handled by worker id.
func chunk(id, workers, n int) (lo, hi int) {
	size := n / workers
	rem := n % workers
	lo = id*size + min(id, rem)
	hi = lo + size
	if id < rem {
		hi++
	}
	return lo, hi
}

// rotorAverage returns the cube root of the mean cubed velocity over the
// index range [lo, hi). Negative velocities count as zero.
func (g *Grid) rotorAverage(lo, hi int) float64 {
	sum := 0.0
	for i := lo; i < hi; i++ {
		u := math.Max(g.Velocity(i), 0)
		sum += u * u * u
	}
	return math.Cbrt(sum / float64(hi-lo))
}
