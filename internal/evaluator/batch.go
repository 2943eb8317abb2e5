package evaluator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"chainlex/internal/entity"
	"chainlex/internal/logging"
)

// Request pairs a rule with the entity it should be checked against.
type Request struct {
	RuleID string
	Entity entity.Entity
}

// EvaluateBatch evaluates many rule/entity pairs concurrently. Evaluations
// are independent and read-only, so they fan out across CPUs; results come
// back in request order. The only error source is context cancellation.
func (e *Evaluator) EvaluateBatch(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}

	timer := logging.StartTimer(logging.CategoryEvaluator, "batch evaluation")
	defer timer.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Evaluate(req.RuleID, req.Entity)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
