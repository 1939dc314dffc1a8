package quantity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/itt-ustutt/quantity/pkg/quantity/parser"
)

// Parse reads the canonical text form "<magnitude> <unit-expression>" back
// into a Quantity. Affine units are accepted here: "25 °C" converts to
// 298.15 K. A missing unit expression yields a dimensionless quantity.
func Parse(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	mag, rest, _ := strings.Cut(s, " ")
	v, err := strconv.ParseFloat(mag, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q is not a number", parser.ErrMalformedUnitString, mag)
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return FromFloat(v), nil
	}
	r, err := parser.Parse(rest)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: Scalar(v*r.Factor + r.Offset), unit: r.Vector}, nil
}

// ParseUnit resolves a unit expression alone into the quantity one of that
// unit represents: ParseUnit("kPa") is the same quantity as
// Pascal.MulFloat(1000). Affine units make no sense without a magnitude
// and are rejected.
func ParseUnit(s string) (Quantity, error) {
	r, err := parser.Parse(strings.TrimSpace(s))
	if err != nil {
		return Quantity{}, err
	}
	if r.Offset != 0 {
		return Quantity{}, fmt.Errorf("%w: %q needs a magnitude to convert", parser.ErrAffineUnitMisuse, s)
	}
	return Quantity{value: Scalar(r.Factor), unit: r.Vector}, nil
}
