package entity

import (
	"testing"
)

// ============================================================================
// NORMALIZATION
// ============================================================================

func TestFromMapAndFromPairsProduceSameEntity(t *testing.T) {
	fromMap := FromMap(map[string]any{
		"unlawful":          true,
		"intention_to_kill": true,
		"victim_age":        34,
	})
	fromPairs := FromPairs([]any{
		[]any{"victim_age", 34},
		[]any{"unlawful", true},
		[]any{"intention_to_kill", true},
	})

	if !fromMap.EqualTo(fromPairs) {
		t.Fatalf("table-like and list-like forms should normalize to the same entity")
	}
	if fromMap.Len() != 3 {
		t.Errorf("Len() = %d, want 3", fromMap.Len())
	}
}

func TestFromMapSortsKeys(t *testing.T) {
	e := FromMap(map[string]any{"c": 1, "a": 2, "b": 3})
	keys := e.Keys()
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("Keys() = %v, want %v", keys, want)
		}
	}
}

func TestFromPairsSkipsMalformedElements(t *testing.T) {
	e := FromPairs([]any{
		[]any{"ok", true},
		"not a pair",
		[]any{"too", "many", "elements"},
		[]any{42, "non-string key"},
	})
	if e.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (malformed elements skipped)", e.Len())
	}
	if !e.Bool("ok", false) {
		t.Errorf("surviving attribute lost")
	}
}

func TestFromPairsLastDuplicateWins(t *testing.T) {
	e := FromPairs([]any{
		[]any{"status", "draft"},
		[]any{"status", "final"},
	})
	if got := e.String("status", ""); got != "final" {
		t.Errorf("String(status) = %q, want %q", got, "final")
	}
	if e.Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Len())
	}
}

func TestNumericNormalization(t *testing.T) {
	e := FromMap(map[string]any{
		"i":   int(3),
		"i64": int64(3),
		"f32": float32(3),
	})
	for _, key := range []string{"i", "i64", "f32"} {
		if got := e.Number(key, 0); got != 3 {
			t.Errorf("Number(%s) = %v, want 3", key, got)
		}
	}
}

func TestNestedMapBecomesEntity(t *testing.T) {
	e := FromMap(map[string]any{
		"offer": map[string]any{"present": true, "value": 100},
	})
	child := e.Child("offer")
	if !child.Bool("present", false) {
		t.Errorf("nested entity lost attribute")
	}
	if child.Number("value", 0) != 100 {
		t.Errorf("nested numeric not normalized")
	}
}

// ============================================================================
// ACCESS AND DEFAULTS
// ============================================================================

func TestAccessorsDefaultOnAbsence(t *testing.T) {
	e := FromMap(map[string]any{"present": true})

	if !e.Bool("voluntary", true) {
		t.Errorf("Bool default on absence not honored")
	}
	if e.Bool("serious_misconduct", false) {
		t.Errorf("Bool default false on absence not honored")
	}
	if got := e.Number("age", 18); got != 18 {
		t.Errorf("Number default on absence = %v, want 18", got)
	}
	if got := e.String("domain", "general"); got != "general" {
		t.Errorf("String default on absence = %q", got)
	}
}

func TestAccessorsDefaultOnTypeMismatch(t *testing.T) {
	e := FromMap(map[string]any{"flag": "yes", "count": true})
	if e.Bool("flag", false) {
		t.Errorf("Bool should not coerce a string")
	}
	if got := e.Number("count", -1); got != -1 {
		t.Errorf("Number should not coerce a bool, got %v", got)
	}
}

func TestGetOr(t *testing.T) {
	e := FromMap(map[string]any{"x": 1})
	if got := e.GetOr("x", nil); got != float64(1) {
		t.Errorf("GetOr present = %v", got)
	}
	if got := e.GetOr("y", "fallback"); got != "fallback" {
		t.Errorf("GetOr absent = %v", got)
	}
}

// ============================================================================
// IMMUTABILITY
// ============================================================================

func TestSetDoesNotMutateReceiver(t *testing.T) {
	base := FromMap(map[string]any{"intention_to_kill": true})
	flipped := base.Set("intention_to_kill", false)

	if !base.Bool("intention_to_kill", false) {
		t.Fatalf("Set mutated the original entity")
	}
	if flipped.Bool("intention_to_kill", true) {
		t.Fatalf("Set did not apply on the copy")
	}
}

func TestSetAddsNewKeyAtEnd(t *testing.T) {
	e := FromMap(map[string]any{"a": 1}).Set("z", 2).Set("a", 9)
	keys := e.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "z" {
		t.Fatalf("Keys() = %v, want [a z]", keys)
	}
	if e.Number("a", 0) != 9 {
		t.Errorf("overwrite did not take")
	}
}

func TestMapCopyIsDetached(t *testing.T) {
	e := FromMap(map[string]any{"a": 1})
	m := e.Map()
	m["a"] = float64(99)
	if e.Number("a", 0) != 1 {
		t.Errorf("mutating Map() result must not affect the entity")
	}
}

// ============================================================================
// EQUALITY
// ============================================================================

func TestEqualTypeDirected(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"bools equal", true, true, true},
		{"bools differ", true, false, false},
		{"numbers equal", float64(2), float64(2), true},
		{"strings equal", "x", "x", true},
		{"symbols equal", Symbol("valid"), Symbol("valid"), true},
		{"symbol vs string", Symbol("valid"), "valid", false},
		{"number vs string", float64(1), "1", false},
		{"bool vs number", true, float64(1), false},
		{"nil vs nil", nil, nil, false},
	}
	for _, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: Equal(%v, %v) = %v, want %v", tc.name, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEntityEqualityIgnoresKeyOrder(t *testing.T) {
	a := FromPairs([]any{[]any{"x", 1}, []any{"y", 2}})
	b := FromPairs([]any{[]any{"y", 2}, []any{"x", 1}})
	if !a.EqualTo(b) {
		t.Errorf("entities with same content in different order should be equal")
	}
}

func TestEntityInequality(t *testing.T) {
	a := FromMap(map[string]any{"x": 1})
	b := FromMap(map[string]any{"x": 2})
	c := FromMap(map[string]any{"x": 1, "y": 2})
	if a.EqualTo(b) {
		t.Errorf("different values should not be equal")
	}
	if a.EqualTo(c) {
		t.Errorf("different sizes should not be equal")
	}
}
