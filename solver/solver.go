/*package solver computes the steady-state operating point of every turbine in
a farm.

Turbines are visited from upstream to downstream. Each turbine reads the
waked velocity on its rotor, converts it into a thrust coefficient and power
through its curve, and stamps its own wake onto everything downstream of it.
When wake-added turbulence is enabled, the turbulence intensity seen by each
rotor depends on the operating points found in the previous pass, and passes
are repeated until the rotor velocities stop changing.
*/
package solver

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/gowake/farm"
	"github.com/phil-mansfield/gowake/flow"
	"github.com/phil-mansfield/gowake/geom"
	"github.com/phil-mansfield/gowake/wake"
)

// overlapThreshold is the smallest deficit at a rotor point that counts
// that point as lying inside an upstream wake.
const overlapThreshold = 0.01

// Controls are the per-turbine set points for one solve. A nil Yaw means no
// yaw misalignment, and a nil Tilt means each turbine's reference tilt.
type Controls struct {
	Yaw, Tilt []float64
}

// TurbineState is the operating point of one turbine.
type TurbineState struct {
	Name      string
	Yaw, Tilt float64
	// Velocity is the rotor-averaged incident wind speed in m/s.
	Velocity float64
	Ct, AxialInduction float64
	// TI is the turbulence intensity incident on the rotor.
	TI float64
	// Power is in kW.
	Power float64
}

// Result is the outcome of one solve.
type Result struct {
	State      State
	Iterations int
	// Order lists turbine indices from upstream to downstream.
	Order    []int
	Turbines []TurbineState

	Farm      *farm.Farm
	Condition farm.Condition
	Frame     *geom.WindFrame
	// Grid holds the rotor sample points and their final deficits.
	Grid *flow.RotorGrid

	profile flow.Profile
	sources []wake.Source
	model   wake.Model
	sup     wake.Superposition
}

// FarmPower returns the total power of the farm in kW.
func (r *Result) FarmPower() float64 {
	ps := make([]float64, len(r.Turbines))
	for i := range r.Turbines {
		ps[i] = r.Turbines[i].Power
	}
	return floats.Sum(ps)
}

// Solver holds the wake, superposition and turbulence models used for every
// solve. It is safe for concurrent use.
type Solver struct {
	cfg   Config
	log   zerolog.Logger
	model wake.Model
	sup   wake.Superposition
	turb  wake.TurbulenceModel
}

// New creates a Solver from a Config.
func New(cfg Config) (*Solver, error) {
	if err := cfg.CheckInit(); err != nil {
		return nil, farm.Configurationf("%s", err.Error())
	}

	s := &Solver{cfg: cfg, log: zerolog.Nop()}
	if cfg.Log != nil {
		s.log = *cfg.Log
	}

	var err error
	if s.model, err = wake.NewModel(cfg.WakeModel); err != nil {
		return nil, farm.Configurationf("%s", err.Error())
	}
	if s.sup, err = wake.NewSuperposition(cfg.Superposition); err != nil {
		return nil, farm.Configurationf("%s", err.Error())
	}
	if s.turb, err = wake.NewTurbulence(cfg.Turbulence); err != nil {
		return nil, farm.Configurationf("%s", err.Error())
	}
	return s, nil
}

// Config returns the configuration the Solver was created with.
func (s *Solver) Config() Config { return s.cfg }

// Solve finds the operating point of every turbine in f under cond. Invalid
// input is reported as a *farm.ConfigurationError before any pass is run.
// Failing to converge is not an error: the result is returned with the
// MaxItersReached state.
func (s *Solver) Solve(
	f *farm.Farm, cond farm.Condition, ctrl Controls,
) (*Result, error) {
	return s.solve(f, cond, ctrl, s.cfg.workers())
}

func (s *Solver) solve(
	f *farm.Farm, cond farm.Condition, ctrl Controls, workers int,
) (*Result, error) {
	yaw, tilt, err := checkInput(f, &cond, &ctrl)
	if err != nil {
		return nil, err
	}

	n := f.Len()
	res := &Result{
		State:     Ordering,
		Farm:      f,
		Condition: cond,
		Turbines:  make([]TurbineState, n),
		sources:   make([]wake.Source, n),
		model:     s.model,
		sup:       s.sup,
	}

	res.Frame = geom.NewWindFrame(cond.Direction, f.Center())
	hubs := f.Hubs()
	diameters := make([]float64, n)
	for i := range hubs {
		hubs[i] = res.Frame.ToWind(hubs[i])
		diameters[i] = f.Placements[i].Turbine.RotorDiameter
	}
	res.Order = streamwiseOrder(hubs)

	res.profile = flow.Profile{
		Speed: cond.Speed, Exponent: cond.Shear, RefHeight: f.ReferenceHeight(),
	}
	res.Grid = flow.NewRotorGrid(hubs, diameters, s.cfg.RotorPoints)
	res.Grid.SetAmbient(res.profile)

	log := s.log.With().Stringer("condition", cond).Logger()
	log.Debug().Ints("order", res.Order).Msg("Ordered turbines")

	ti := make([]float64, n)
	for i := range ti {
		ti[i] = cond.TurbulenceIntensity
	}
	prev := make([]float64, n)

	res.State = Iterating
	for k := 1; k <= s.cfg.MaxIterations; k++ {
		res.Iterations = k
		s.pass(res, yaw, tilt, ti, workers)

		delta := math.Inf(1)
		if k > 1 {
			delta = maxChange(res.Turbines, prev)
		}
		for i := range prev {
			prev[i] = res.Turbines[i].Velocity
		}
		log.Debug().Int("pass", k).Float64("delta", delta).Msg("Finished pass")

		if s.turb == nil {
			res.State = Converged
			break
		}
		next := s.addedTurbulence(res, cond.TurbulenceIntensity)
		if delta < s.cfg.Tolerance || floats.Equal(next, ti) {
			res.State = Converged
			break
		}
		copy(ti, next)
	}

	if res.State != Converged {
		res.State = MaxItersReached
		log.Warn().Int("iterations", res.Iterations).
			Float64("tolerance", s.cfg.Tolerance).
			Msg("Turbulence feedback did not converge")
	}

	return res, nil
}

// pass visits every turbine in order, sets its operating point from the
// current rotor velocity and stamps its wake.
func (s *Solver) pass(res *Result, yaw, tilt, ti []float64, workers int) {
	res.Grid.Reset()
	rho := res.Condition.AirDensity

	for _, i := range res.Order {
		pl := &res.Farm.Placements[i]
		tb := pl.Turbine

		v := res.Grid.RotorVelocity(i)
		vRho := v
		if rho > 0 {
			vRho = tb.DensityCorrectedVelocity(v, rho)
		}

		st := &res.Turbines[i]
		*st = TurbineState{
			Name:     pl.Name,
			Yaw:      yaw[i],
			Tilt:     tilt[i],
			Velocity: v,
			TI:       ti[i],
		}
		st.Ct = tb.ThrustCoefficient(vRho, st.Yaw, st.Tilt)
		st.AxialInduction = tb.AxialInduction(vRho, st.Yaw, st.Tilt)
		st.Power = tb.Power(vRho, st.Yaw, st.Tilt)

		res.sources[i] = wake.Source{
			Position:       res.Grid.Hubs[i],
			Diameter:       tb.RotorDiameter,
			Ct:             st.Ct,
			AxialInduction: st.AxialInduction,
			Yaw:            st.Yaw,
			TI:             st.TI,
		}
		res.Grid.Stamp(&res.sources[i], s.model, s.sup, workers)
	}
}

// addedTurbulence returns the turbulence intensity at each rotor implied by
// the operating points of the last pass.
func (s *Solver) addedTurbulence(res *Result, ti0 float64) []float64 {
	hubs := res.Grid.Hubs
	out := make([]float64, len(hubs))
	added := make([]float64, 0, len(hubs))

	for i := range hubs {
		added = added[:0]
		pts := res.Grid.RotorPoints(i)
		for j := range hubs {
			src := &res.sources[j]
			dx := hubs[i][0] - hubs[j][0]
			if dx <= 0 {
				continue
			}
			overlap := rotorOverlap(pts, src, s.model)
			if overlap == 0 {
				continue
			}
			added = append(added, overlap*s.turb.Added(
				dx, src.Diameter, src.AxialInduction, ti0,
			))
		}
		out[i] = wake.CombineTurbulence(ti0, added)
	}
	return out
}

// rotorOverlap returns the fraction of rotor points inside src's wake.
func rotorOverlap(pts []geom.Vec, src *wake.Source, m wake.Model) float64 {
	inside := 0
	for _, p := range pts {
		if m.Deficit(p, src) > overlapThreshold {
			inside++
		}
	}
	return float64(inside) / float64(len(pts))
}

// streamwiseOrder returns turbine indices sorted by streamwise position, with
// ties broken by index.
func streamwiseOrder(hubs []geom.Vec) []int {
	order := make([]int, len(hubs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return hubs[order[a]][0] < hubs[order[b]][0]
	})
	return order
}

func maxChange(ts []TurbineState, prev []float64) float64 {
	d := 0.0
	for i := range ts {
		d = math.Max(d, math.Abs(ts[i].Velocity-prev[i]))
	}
	return d
}

// checkInput validates a solve's input and expands its controls into one
// yaw and tilt per turbine.
func checkInput(
	f *farm.Farm, cond *farm.Condition, ctrl *Controls,
) (yaw, tilt []float64, err error) {
	if f == nil {
		return nil, nil, farm.Configurationf("no farm given")
	}
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}
	if err := cond.Validate(); err != nil {
		return nil, nil, err
	}

	n := f.Len()
	if ctrl.Yaw != nil && len(ctrl.Yaw) != n {
		return nil, nil, farm.Configurationf(
			"%d yaw angles given for %d turbines", len(ctrl.Yaw), n,
		)
	} else if ctrl.Tilt != nil && len(ctrl.Tilt) != n {
		return nil, nil, farm.Configurationf(
			"%d tilt angles given for %d turbines", len(ctrl.Tilt), n,
		)
	}

	yaw, tilt = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		if ctrl.Yaw != nil {
			yaw[i] = ctrl.Yaw[i]
		}
		if ctrl.Tilt != nil {
			tilt[i] = ctrl.Tilt[i]
		} else {
			tilt[i] = f.Placements[i].Turbine.RefTilt
		}
		if math.IsNaN(yaw[i]) || math.IsInf(yaw[i], 0) ||
			math.IsNaN(tilt[i]) || math.IsInf(tilt[i], 0) {
			return nil, nil, farm.Configurationf(
				"turbine %d has non-finite yaw %g or tilt %g", i, yaw[i], tilt[i],
			)
		}
	}
	return yaw, tilt, nil
}
