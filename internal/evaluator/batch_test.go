package evaluator

import (
	"context"
	"testing"

	"chainlex/internal/entity"
)

func TestEvaluateBatch(t *testing.T) {
	e := builtinEvaluator(t)

	killing := entity.FromMap(map[string]any{
		"act_committed":     true,
		"unlawful":          true,
		"killing_of_person": true,
		"intention_to_kill": true,
	})
	contract := entity.FromMap(map[string]any{
		"offer":      true,
		"acceptance": true,
	})

	reqs := []Request{
		{RuleID: "murder?", Entity: killing},
		{RuleID: "contract-valid?", Entity: contract},
		{RuleID: "contract-valid?", Entity: killing},
		{RuleID: "no-such-rule?", Entity: contract},
	}

	results, err := e.EvaluateBatch(context.Background(), reqs)
	if err != nil {
		t.Fatalf("EvaluateBatch failed: %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("results = %d, want %d", len(results), len(reqs))
	}
	// Results arrive in request order.
	if !results[0].Holds || results[0].RuleID != "murder?" {
		t.Errorf("result 0 = %+v", results[0])
	}
	if !results[1].Holds {
		t.Errorf("result 1 = %+v", results[1])
	}
	if results[2].Holds {
		t.Errorf("result 2 should not hold: %+v", results[2])
	}
	if results[3].Known {
		t.Errorf("result 3 should be unknown: %+v", results[3])
	}
}

func TestEvaluateBatchCancelled(t *testing.T) {
	e := builtinEvaluator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := make([]Request, 256)
	for i := range reqs {
		reqs[i] = Request{RuleID: "mens-rea?", Entity: entity.FromMap(map[string]any{"intention": true})}
	}
	if _, err := e.EvaluateBatch(ctx, reqs); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestEvaluateBatchEmpty(t *testing.T) {
	e := builtinEvaluator(t)
	results, err := e.EvaluateBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("EvaluateBatch(nil) errored: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}
