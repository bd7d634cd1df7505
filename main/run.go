package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/phil-mansfield/gowake/io"
	"github.com/phil-mansfield/gowake/solver"
	"github.com/phil-mansfield/gowake/store"
)

type runOptions struct {
	// Label is the name results are stored under.
	Label string
	// Database is used when the run file does not name one.
	Database string
	// Threads overrides NumCores when Solver.Workers is unset.
	Threads int
}

// runMain solves every condition in a run file, then stores the results
// and writes the requested cut planes.
func runMain(
	ctx context.Context, con *io.RunConfig, opt runOptions, log zerolog.Logger,
) error {
	loader := io.NewLoader(con.Farm.TurbineLibrary, log)
	f, err := loader.Farm(con)
	if err != nil {
		return err
	}

	cfg := con.SolverConfig()
	cfg.Log = &log
	if cfg.Workers == 0 && opt.Threads > 0 {
		cfg.Workers = opt.Threads
	}
	s, err := solver.New(cfg)
	if err != nil {
		return err
	}

	conds, err := con.Conditions()
	if err != nil {
		return err
	}

	log.Info().Int("turbines", f.Len()).Int("conditions", len(conds)).
		Str("wake", string(cfg.WakeModel)).Msg("Solving farm")

	results, err := s.SolveBatch(ctx, f, conds, con.Controls(f))
	if err != nil {
		return err
	}

	for _, res := range results {
		logResult(log, res)
	}

	dbPath := con.Farm.Database
	if dbPath == "" {
		dbPath = opt.Database
	}
	if dbPath != "" {
		if err := saveResults(dbPath, opt.Label, cfg, results, log); err != nil {
			return err
		}
	}

	return writePlanes(s, con, results, log)
}

func logResult(log zerolog.Logger, res *solver.Result) {
	ev := log.Info()
	if res.State != solver.Converged {
		ev = log.Warn()
	}
	ev.Str("condition", res.Condition.String()).
		Str("state", res.State.String()).
		Int("iterations", res.Iterations).
		Float64("power_kW", res.FarmPower()).
		Msg("Solved condition")

	for _, ts := range res.Turbines {
		log.Debug().Str("turbine", ts.Name).
			Float64("velocity", ts.Velocity).
			Float64("Ct", ts.Ct).
			Float64("TI", ts.TI).
			Float64("power_kW", ts.Power).
			Msg("Turbine state")
	}
}

func saveResults(
	path, label string, cfg solver.Config,
	results []*solver.Result, log zerolog.Logger,
) error {
	db, err := store.Open(path, log)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, res := range results {
		if _, err := db.Save(label, cfg, res); err != nil {
			return err
		}
	}
	log.Info().Str("label", label).Int("runs", len(results)).
		Msg("Stored results")
	return nil
}

// writePlanes writes every requested plane for every condition. With more
// than one condition the condition index is appended to the file name.
func writePlanes(
	s *solver.Solver, con *io.RunConfig,
	results []*solver.Result, log zerolog.Logger,
) error {
	planes := con.Planes()
	if len(planes) == 0 {
		return nil
	}
	if !con.Farm.ValidOutput() {
		log.Warn().Int("planes", len(planes)).
			Msg("No Farm.Output directory given; planes are not written")
		return nil
	}
	if err := os.MkdirAll(con.Farm.Output, 0755); err != nil {
		return err
	}

	ext := ".txt"
	if con.Farm.Binary {
		ext = ".plane"
	}

	for i, res := range results {
		for _, np := range planes {
			pl, err := s.CutPlane(res, np.Spec)
			if err != nil {
				return fmt.Errorf("Plane '%s': %w", np.Name, err)
			}

			name := np.Name
			if len(results) > 1 {
				name = fmt.Sprintf("%s_%03d", np.Name, i)
			}
			fname := filepath.Join(con.Farm.Output, name+ext)
			if err := io.WritePlaneFile(fname, pl, con.Farm.Binary); err != nil {
				return err
			}
			log.Debug().Str("file", fname).Msg("Wrote plane")
		}
	}
	return nil
}
