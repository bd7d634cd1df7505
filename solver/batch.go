package solver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/gowake/farm"
)

// SolveBatch solves f under each condition in conds. Conditions are
// independent and are solved concurrently on up to Config.Workers
// goroutines, each stamping wakes on a single goroutine. Results are in the
// same order as conds. The context is checked before each condition starts.
func (s *Solver) SolveBatch(
	ctx context.Context, f *farm.Farm, conds []farm.Condition, ctrl Controls,
) ([]*Result, error) {
	out := make([]*Result, len(conds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.workers())

	for i := range conds {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.solve(f, conds[i], ctrl, 1)
			if err != nil {
				return fmt.Errorf("condition %d (%v): %w", i, conds[i], err)
			}
			out[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug().Int("conditions", len(conds)).Msg("Finished batch")
	return out, nil
}
