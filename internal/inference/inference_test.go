package inference

import (
	"math"
	"testing"
)

func TestDecayTable(t *testing.T) {
	cases := []struct {
		typ  Type
		want float64
	}{
		{Deductive, 0.95},
		{Inductive, 0.80},
		{Abductive, 0.70},
		{Analogical, 0.65},
		{Unknown, 0.50},
		{Type("statistical"), 0.50}, // unrecognized falls back
	}
	for _, tc := range cases {
		if got := Decay(tc.typ); got != tc.want {
			t.Errorf("Decay(%s) = %v, want %v", tc.typ, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Type
	}{
		{"deductive", Deductive},
		{"Deductive", Deductive},
		{"  INDUCTIVE ", Inductive},
		{"abductive", Abductive},
		{"analogical", Analogical},
		{"", Unknown},
		{"mystical", Unknown},
	}
	for _, tc := range cases {
		if got := Parse(tc.in); got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestStep(t *testing.T) {
	if got := Step(1.0, Deductive); got != 0.95 {
		t.Errorf("Step(1.0, deductive) = %v, want 0.95", got)
	}
	if got := Step(0.8, Abductive); got != 0.56 {
		t.Errorf("Step(0.8, abductive) = %v, want 0.56", got)
	}
	// Unrecognized type halves, never aborts.
	if got := Step(1.0, Type("bogus")); got != 0.50 {
		t.Errorf("Step with unknown type = %v, want 0.50", got)
	}
}

func TestChainTwoDeductiveSteps(t *testing.T) {
	got := Chain(1.0, []Type{Deductive, Deductive})
	if got != 0.9025 {
		t.Fatalf("Chain(1.0, deductive x2) = %v, want 0.9025", got)
	}
}

func TestChainMonotonicNonIncreasing(t *testing.T) {
	types := []Type{Deductive, Inductive, Abductive, Analogical, Unknown}
	prev := 1.0
	for i := 1; i <= len(types); i++ {
		c := Chain(1.0, types[:i])
		if c > prev {
			t.Fatalf("confidence increased along chain: %v -> %v at step %d", prev, c, i)
		}
		prev = c
	}
}

func TestChainDeductivePowers(t *testing.T) {
	for n := 1; n <= 6; n++ {
		types := make([]Type, n)
		for i := range types {
			types[i] = Deductive
		}
		want := Round(math.Pow(0.95, float64(n)))
		if got := Chain(1.0, types); got != want {
			t.Errorf("Chain(1.0, deductive x%d) = %v, want %v", n, got, want)
		}
	}
}

func TestCombinePolicies(t *testing.T) {
	confs := []float64{0.9, 0.6, 0.8}

	if got := Combine(CombineMin, confs); got != 0.6 {
		t.Errorf("CombineMin = %v, want 0.6", got)
	}
	if got := Combine(CombineProduct, confs); math.Abs(got-0.432) > 1e-9 {
		t.Errorf("CombineProduct = %v, want 0.432", got)
	}
	if got := Combine(CombineMean, confs); math.Abs(got-0.7666666) > 1e-6 {
		t.Errorf("CombineMean = %v", got)
	}
}

func TestCombineEmptyIsAxiomatic(t *testing.T) {
	if got := Combine(CombineMin, nil); got != 1.0 {
		t.Errorf("Combine with no premises = %v, want 1.0", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(0.857375); got != 0.8574 {
		t.Errorf("Round = %v, want 0.8574", got)
	}
	if got := Round(0.90250); got != 0.9025 {
		t.Errorf("Round = %v, want 0.9025", got)
	}
}
