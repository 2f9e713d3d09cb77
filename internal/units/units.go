package units

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownUnit indicates an area unit outside the supported set.
var ErrUnknownUnit = errors.New("unknown area unit")

// Conversion factors to square meters.
var factorsToM2 = map[string]float64{
	"m2":      1,
	"km2":     1_000_000,
	"hectare": 10_000,
	"acre":    4046.8564224,
}

// ConvertArea converts an area measurement between square meters, square
// kilometers, acres, and hectares. Unit names are case-insensitive.
// The value is converted to square meters first, then to the target unit;
// no rounding is applied.
func ConvertArea(value float64, fromUnit, toUnit string) (float64, error) {
	from := strings.ToLower(strings.TrimSpace(fromUnit))
	to := strings.ToLower(strings.TrimSpace(toUnit))

	ff, ok := factorsToM2[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q (use one of %s)", ErrUnknownUnit, fromUnit, unitList())
	}
	tf, ok := factorsToM2[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q (use one of %s)", ErrUnknownUnit, toUnit, unitList())
	}

	return value * ff / tf, nil
}

// Units returns the supported unit names, sorted.
func Units() []string {
	out := make([]string, 0, len(factorsToM2))
	for u := range factorsToM2 {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

func unitList() string {
	return strings.Join(Units(), ", ")
}
