package units

import (
	"errors"
	"math"
	"testing"
)

func TestConvertAreaIdentity(t *testing.T) {
	for _, u := range Units() {
		got, err := ConvertArea(42.5, u, u)
		if err != nil {
			t.Fatalf("ConvertArea(42.5, %q, %q): %v", u, u, err)
		}
		if got != 42.5 {
			t.Fatalf("identity round-trip for %q: got %v, want 42.5", u, got)
		}
	}
}

func TestConvertAreaKnownValues(t *testing.T) {
	cases := []struct {
		value    float64
		from, to string
		want     float64
		tol      float64
	}{
		{10000, "m2", "hectare", 1.0, 0},
		{2, "acre", "m2", 8093.7128448, 1e-6},
		{1, "km2", "acre", 247.105, 1e-3},
		{1, "hectare", "m2", 10000, 0},
		{3, "km2", "hectare", 300, 1e-9},
	}
	for _, c := range cases {
		got, err := ConvertArea(c.value, c.from, c.to)
		if err != nil {
			t.Fatalf("ConvertArea(%v, %q, %q): %v", c.value, c.from, c.to, err)
		}
		if math.Abs(got-c.want) > c.tol {
			t.Fatalf("ConvertArea(%v, %q, %q) = %v, want %v", c.value, c.from, c.to, got, c.want)
		}
	}
}

func TestConvertAreaCaseInsensitive(t *testing.T) {
	got, err := ConvertArea(10000, "M2", "Hectare")
	if err != nil {
		t.Fatalf("ConvertArea with mixed case: %v", err)
	}
	if got != 1.0 {
		t.Fatalf("ConvertArea(10000, M2, Hectare) = %v, want 1", got)
	}
}

func TestConvertAreaUnknownUnit(t *testing.T) {
	if _, err := ConvertArea(1, "furlong", "m2"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("from furlong: got %v, want ErrUnknownUnit", err)
	}
	if _, err := ConvertArea(1, "m2", "furlong"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("to furlong: got %v, want ErrUnknownUnit", err)
	}
}
