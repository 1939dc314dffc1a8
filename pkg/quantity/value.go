package quantity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is the fixed capability set the engine demands of a magnitude
// type: ring arithmetic, negation, absolute value and equality. Everything
// else (roots, ordering, indexing, integer powers) is optional and probed
// through the narrower interfaces below; an operation needing a missing
// capability fails with ErrUnsupported.
type Value interface {
	Inspect() string
	Add(Value) (Value, error)
	Sub(Value) (Value, error)
	Mul(Value) (Value, error)
	Div(Value) (Value, error)
	Neg() Value
	Abs() Value
	Equal(Value) (bool, error)
}

// Rooter is the optional root-extraction capability.
type Rooter interface {
	Sqrt() (Value, error)
	Cbrt() (Value, error)
}

// Ordered is the optional total-ordering capability.
type Ordered interface {
	// Cmp returns -1, 0 or +1.
	Cmp(Value) (int, error)
}

// Power is the optional integer-power capability. Without it, Pow falls
// back to repeated multiplication for positive exponents.
type Power interface {
	Pow(n int) (Value, error)
}

// Sequence is the optional capability of magnitudes that are ordered
// collections of raw values.
type Sequence interface {
	Len() int
	Index(i int) (Value, error)
	Slice(i, j int) (Value, error)
}

// Scalar is a float64 magnitude. Arithmetic follows IEEE semantics;
// division by zero produces infinities rather than errors, as the
// underlying number type does.
type Scalar float64

func (s Scalar) Inspect() string {
	return strconv.FormatFloat(float64(s), 'g', -1, 64)
}

func (s Scalar) Add(o Value) (Value, error) { return scalarOp(s, o, func(a, b float64) float64 { return a + b }) }
func (s Scalar) Sub(o Value) (Value, error) { return scalarOp(s, o, func(a, b float64) float64 { return a - b }) }
func (s Scalar) Mul(o Value) (Value, error) { return scalarOp(s, o, func(a, b float64) float64 { return a * b }) }
func (s Scalar) Div(o Value) (Value, error) { return scalarOp(s, o, func(a, b float64) float64 { return a / b }) }

func scalarOp(s Scalar, o Value, f func(a, b float64) float64) (Value, error) {
	switch o := o.(type) {
	case Scalar:
		return Scalar(f(float64(s), float64(o))), nil
	case Array:
		out := make(Array, len(o))
		for i, v := range o {
			out[i] = f(float64(s), v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: scalar with %T", ErrUnsupported, o)
	}
}

func (s Scalar) Neg() Value { return -s }
func (s Scalar) Abs() Value { return Scalar(math.Abs(float64(s))) }

func (s Scalar) Equal(o Value) (bool, error) {
	if o, ok := o.(Scalar); ok {
		return s == o, nil
	}
	return false, nil
}

func (s Scalar) Cmp(o Value) (int, error) {
	o2, ok := o.(Scalar)
	if !ok {
		return 0, fmt.Errorf("%w: ordering scalar against %T", ErrUnsupported, o)
	}
	switch {
	case s < o2:
		return -1, nil
	case s > o2:
		return 1, nil
	default:
		return 0, nil
	}
}

func (s Scalar) Sqrt() (Value, error) { return Scalar(math.Sqrt(float64(s))), nil }
func (s Scalar) Cbrt() (Value, error) { return Scalar(math.Cbrt(float64(s))), nil }

func (s Scalar) Pow(n int) (Value, error) {
	return Scalar(math.Pow(float64(s), float64(n))), nil
}

// Array is a homogeneous sequence of raw float64 values. All arithmetic is
// elementwise; combining with a Scalar broadcasts it over every position.
type Array []float64

func (a Array) Inspect() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (a Array) Add(o Value) (Value, error) { return arrayOp(a, o, func(x, y float64) float64 { return x + y }) }
func (a Array) Sub(o Value) (Value, error) { return arrayOp(a, o, func(x, y float64) float64 { return x - y }) }
func (a Array) Mul(o Value) (Value, error) { return arrayOp(a, o, func(x, y float64) float64 { return x * y }) }
func (a Array) Div(o Value) (Value, error) { return arrayOp(a, o, func(x, y float64) float64 { return x / y }) }

func arrayOp(a Array, o Value, f func(x, y float64) float64) (Value, error) {
	switch o := o.(type) {
	case Scalar:
		out := make(Array, len(a))
		for i, v := range a {
			out[i] = f(v, float64(o))
		}
		return out, nil
	case Array:
		if len(a) != len(o) {
			return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(o))
		}
		out := make(Array, len(a))
		for i, v := range a {
			out[i] = f(v, o[i])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: array with %T", ErrUnsupported, o)
	}
}

func (a Array) Neg() Value {
	out := make(Array, len(a))
	for i, v := range a {
		out[i] = -v
	}
	return out
}

func (a Array) Abs() Value {
	out := make(Array, len(a))
	for i, v := range a {
		out[i] = math.Abs(v)
	}
	return out
}

func (a Array) Equal(o Value) (bool, error) {
	o2, ok := o.(Array)
	if !ok || len(a) != len(o2) {
		return false, nil
	}
	for i, v := range a {
		if v != o2[i] {
			return false, nil
		}
	}
	return true, nil
}

func (a Array) Sqrt() (Value, error) {
	out := make(Array, len(a))
	for i, v := range a {
		out[i] = math.Sqrt(v)
	}
	return out, nil
}

func (a Array) Cbrt() (Value, error) {
	out := make(Array, len(a))
	for i, v := range a {
		out[i] = math.Cbrt(v)
	}
	return out, nil
}

func (a Array) Pow(n int) (Value, error) {
	out := make(Array, len(a))
	for i, v := range a {
		out[i] = math.Pow(v, float64(n))
	}
	return out, nil
}

func (a Array) Len() int { return len(a) }

func (a Array) Index(i int) (Value, error) {
	if i < 0 || i >= len(a) {
		return nil, fmt.Errorf("%w: index %d out of range [0, %d)", ErrUnsupported, i, len(a))
	}
	return Scalar(a[i]), nil
}

func (a Array) Slice(i, j int) (Value, error) {
	if i < 0 || j > len(a) || i > j {
		return nil, fmt.Errorf("%w: slice [%d:%d] out of range [0, %d)", ErrUnsupported, i, j, len(a))
	}
	out := make(Array, j-i)
	copy(out, a[i:j])
	return out, nil
}
