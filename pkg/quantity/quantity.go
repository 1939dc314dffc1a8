package quantity

import (
	"fmt"

	"github.com/itt-ustutt/quantity/pkg/quantity/unit"
)

// Quantity pairs a magnitude with the exponent vector of its unit. The
// magnitude is always stored in base SI representation; the vector denotes
// dimension, never a display scale. Quantities are immutable values: every
// operation returns a new Quantity and a failed operation leaves its
// operands untouched.
type Quantity struct {
	value Value
	unit  unit.Vector
}

// New pairs a magnitude with a unit vector. Most callers should instead
// multiply a raw value by one of the catalog quantities (Meter, Joule,
// ...), which guarantees the vector originated from catalog-validated
// combinations.
func New(v Value, u unit.Vector) Quantity {
	return Quantity{value: v, unit: u}
}

// FromFloat wraps a bare number as a dimensionless Quantity.
func FromFloat(f float64) Quantity {
	return Quantity{value: Scalar(f)}
}

// FromExponents is the host-boundary constructor: a magnitude plus a
// 7-length integer exponent list. Any other length is
// ErrMalformedUnitSpecifier.
func FromExponents(v Value, exps []int) (Quantity, error) {
	if len(exps) != unit.Dims {
		return Quantity{}, fmt.Errorf("%w: got %d exponents, want %d", ErrMalformedUnitSpecifier, len(exps), unit.Dims)
	}
	var a [unit.Dims]int
	copy(a[:], exps)
	return Quantity{value: v, unit: unit.FromInts(a)}, nil
}

// Value returns the magnitude in base SI representation.
func (q Quantity) Value() Value { return q.value }

// Unit returns the exponent vector.
func (q Quantity) Unit() unit.Vector { return q.unit }

// IsDimensionless reports whether the vector is zero.
func (q Quantity) IsDimensionless() bool { return q.unit.IsZero() }

// HasUnit reports whether both quantities share a vector. Unlike Equal it
// is purely structural and never errors.
func (q Quantity) HasUnit(o Quantity) bool { return q.unit == o.unit }

// checkUnits is the gate for every operation that requires equal vectors.
func (q Quantity) checkUnits(o Quantity) error {
	if q.unit != o.unit {
		return fmt.Errorf("%w: %q and %q", ErrDimensionMismatch, unitLabel(q.unit), unitLabel(o.unit))
	}
	return nil
}

// Mul multiplies magnitudes and adds exponent vectors.
func (q Quantity) Mul(o Quantity) (Quantity, error) {
	v, err := q.value.Mul(o.value)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, unit: q.unit.Mul(o.unit)}, nil
}

// Div divides magnitudes and subtracts exponent vectors.
func (q Quantity) Div(o Quantity) (Quantity, error) {
	v, err := q.value.Div(o.value)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, unit: q.unit.Div(o.unit)}, nil
}

// MulFloat treats f as a dimensionless quantity.
func (q Quantity) MulFloat(f float64) Quantity {
	v, _ := q.value.Mul(Scalar(f))
	return Quantity{value: v, unit: q.unit}
}

// DivFloat treats f as a dimensionless quantity.
func (q Quantity) DivFloat(f float64) Quantity {
	v, _ := q.value.Div(Scalar(f))
	return Quantity{value: v, unit: q.unit}
}

// Add requires equal vectors; a mismatch is ErrDimensionMismatch, never a
// coerced result.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	if err := q.checkUnits(o); err != nil {
		return Quantity{}, err
	}
	v, err := q.value.Add(o.value)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, unit: q.unit}, nil
}

// Sub requires equal vectors.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	if err := q.checkUnits(o); err != nil {
		return Quantity{}, err
	}
	v, err := q.value.Sub(o.value)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, unit: q.unit}, nil
}

// Pow raises the quantity to an integer power of any sign.
func (q Quantity) Pow(n int) (Quantity, error) {
	u := q.unit.Pow(n)
	if p, ok := q.value.(Power); ok {
		v, err := p.Pow(n)
		if err != nil {
			return Quantity{}, err
		}
		return Quantity{value: v, unit: u}, nil
	}
	if n < 0 {
		return Quantity{}, fmt.Errorf("%w: %T cannot be raised to negative powers", ErrUnsupported, q.value)
	}
	v := Value(Scalar(1))
	var err error
	for i := 0; i < n; i++ {
		if v, err = v.Mul(q.value); err != nil {
			return Quantity{}, err
		}
	}
	return Quantity{value: v, unit: u}, nil
}

// Sqrt halves the exponent vector and takes the magnitude's square root.
// Vectors not divisible by two fail with ErrNonIntegerRoot; magnitude
// types without the root capability fail with ErrUnsupported.
func (q Quantity) Sqrt() (Quantity, error) { return q.root(2) }

// Cbrt is the cube-root analog of Sqrt.
func (q Quantity) Cbrt() (Quantity, error) { return q.root(3) }

func (q Quantity) root(n int) (Quantity, error) {
	u, err := q.unit.Root(n)
	if err != nil {
		return Quantity{}, err
	}
	r, ok := q.value.(Rooter)
	if !ok {
		return Quantity{}, fmt.Errorf("%w: %T cannot take roots", ErrUnsupported, q.value)
	}
	var v Value
	if n == 2 {
		v, err = r.Sqrt()
	} else {
		v, err = r.Cbrt()
	}
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, unit: u}, nil
}

// Neg negates the magnitude.
func (q Quantity) Neg() Quantity {
	return Quantity{value: q.value.Neg(), unit: q.unit}
}

// Abs takes the magnitude's absolute value.
func (q Quantity) Abs() Quantity {
	return Quantity{value: q.value.Abs(), unit: q.unit}
}

// Equal compares magnitudes after requiring equal vectors. Comparing
// across units is an error, never false.
func (q Quantity) Equal(o Quantity) (bool, error) {
	if err := q.checkUnits(o); err != nil {
		return false, err
	}
	return q.value.Equal(o.value)
}

// Cmp orders magnitudes after requiring equal vectors. It needs the
// Ordered capability.
func (q Quantity) Cmp(o Quantity) (int, error) {
	if err := q.checkUnits(o); err != nil {
		return 0, err
	}
	ord, ok := q.value.(Ordered)
	if !ok {
		return 0, fmt.Errorf("%w: %T has no ordering", ErrUnsupported, q.value)
	}
	return ord.Cmp(o.value)
}

// In converts the quantity into its raw numeric value expressed in the
// given catalog unit: division, with the result required to be
// dimensionless.
func (q Quantity) In(u Quantity) (Value, error) {
	r, err := q.Div(u)
	if err != nil {
		return nil, err
	}
	if !r.IsDimensionless() {
		return nil, fmt.Errorf("%w: %q is not %q", ErrDimensionMismatch, unitLabel(q.unit), unitLabel(u.unit))
	}
	return r.value, nil
}

// Len exposes the Sequence capability of array magnitudes; scalar
// quantities have length -1.
func (q Quantity) Len() int {
	if s, ok := q.value.(Sequence); ok {
		return s.Len()
	}
	return -1
}

// Index returns the element quantity at position i of an array magnitude.
func (q Quantity) Index(i int) (Quantity, error) {
	s, ok := q.value.(Sequence)
	if !ok {
		return Quantity{}, fmt.Errorf("%w: %T is not indexable", ErrUnsupported, q.value)
	}
	v, err := s.Index(i)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, unit: q.unit}, nil
}

// Slice returns the subrange [i, j) of an array magnitude.
func (q Quantity) Slice(i, j int) (Quantity, error) {
	s, ok := q.value.(Sequence)
	if !ok {
		return Quantity{}, fmt.Errorf("%w: %T is not sliceable", ErrUnsupported, q.value)
	}
	v, err := s.Slice(i, j)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: v, unit: q.unit}, nil
}

// String renders the canonical text form "<magnitude> <unit-expression>".
func (q Quantity) String() string { return Format(q) }
