package quantity

import (
	"math"
	"strconv"
	"strings"

	"github.com/itt-ustutt/quantity/pkg/quantity/catalog"
	"github.com/itt-ustutt/quantity/pkg/quantity/unit"
)

// Format renders a quantity as "<magnitude> <unit-expression>". The unit
// expression comes from the display table when the vector matches a row
// exactly, rescaled by an engineering prefix so the magnitude lands in a
// readable range; otherwise the raw base-unit product is printed.
func Format(q Quantity) string {
	if q.IsDimensionless() {
		return q.value.Inspect()
	}

	d, ok := catalog.LookupDisplay(q.unit)
	if !ok {
		return q.value.Inspect() + " " + q.unit.String()
	}

	label := d.Label
	switch v := q.value.(type) {
	case Scalar:
		scaled := float64(v) / d.Factor
		scaled, label = applyPrefix(scaled, scaled, d)
		return formatFloat(scaled) + " " + label
	case Array:
		scaled := make([]float64, len(v))
		rep := 0.0
		for i, f := range v {
			scaled[i] = f / d.Factor
			if a := math.Abs(scaled[i]); !math.IsInf(a, 0) && a > rep {
				rep = a
			}
		}
		factor := 1.0
		factor, label = prefixFor(rep, d)
		parts := make([]string, len(scaled))
		for i, f := range scaled {
			parts[i] = formatFloat(f / factor)
		}
		return "[" + strings.Join(parts, ", ") + "] " + label
	default:
		return q.value.Inspect() + " " + label
	}
}

// applyPrefix rescales a scalar by the prefix chosen for rep and returns
// the new magnitude and label.
func applyPrefix(scaled, rep float64, d catalog.Display) (float64, string) {
	factor, label := prefixFor(rep, d)
	return scaled / factor, label
}

// prefixFor picks the engineering prefix for a representative magnitude.
// Prefixes step in powers of a thousand, never drop below pico, and never
// exceed the display row's bound. Rows with a zero bound take no prefix.
func prefixFor(rep float64, d catalog.Display) (float64, string) {
	abs := math.Abs(rep)
	if d.MaxPrefix == 0 || abs == 0 || math.IsNaN(abs) || math.IsInf(abs, 0) {
		return 1, d.Label
	}
	e := 3 * floorDiv(int(math.Floor(math.Log10(abs))), 3)
	if e < -12 {
		e = -12
	}
	if max := int(math.Round(math.Log10(d.MaxPrefix))); e > max {
		e = max
	}
	if e == 0 {
		return 1, d.Label
	}
	sym, ok := catalog.PrefixForExponent(e)
	if !ok {
		return 1, d.Label
	}
	return math.Pow(10, float64(e)), sym + d.Label
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// unitLabel names a vector for error messages: the display label when the
// table knows it, the base-unit product otherwise.
func unitLabel(v unit.Vector) string {
	if v.IsZero() {
		return "dimensionless"
	}
	if d, ok := catalog.LookupDisplay(v); ok {
		return d.Label
	}
	return v.String()
}
