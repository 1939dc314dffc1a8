package quantity

import (
	"fmt"
	"math"
)

// FromList collects scalar quantities into one array quantity. Every item
// must carry the same vector; the first mismatch is reported by index. An
// empty list yields an empty dimensionless array.
func FromList(items []Quantity) (Quantity, error) {
	if len(items) == 0 {
		return Quantity{value: Array{}}, nil
	}
	u := items[0].unit
	out := make(Array, len(items))
	for i, q := range items {
		if q.unit != u {
			return Quantity{}, fmt.Errorf("%w: item %d has unit %q, want %q",
				ErrHeterogeneousArray, i, unitLabel(q.unit), unitLabel(u))
		}
		s, ok := q.value.(Scalar)
		if !ok {
			return Quantity{}, fmt.Errorf("%w: item %d is %T, want a scalar",
				ErrHeterogeneousArray, i, q.value)
		}
		out[i] = float64(s)
	}
	return Quantity{value: out, unit: u}, nil
}

// Linspace builds n evenly spaced samples from start to end inclusive.
// Both endpoints must share a vector and n must be at least one; n == 1
// yields just the start point.
func Linspace(start, end Quantity, n int) (Quantity, error) {
	a, b, err := endpoints(start, end, n)
	if err != nil {
		return Quantity{}, err
	}
	out := make(Array, n)
	if n == 1 {
		out[0] = a
	} else {
		step := (b - a) / float64(n-1)
		for i := range out {
			out[i] = a + float64(i)*step
		}
		out[n-1] = b
	}
	return Quantity{value: out, unit: start.unit}, nil
}

// Logspace builds n geometrically spaced samples from start to end
// inclusive: linear interpolation in log10, then exponentiation. Both
// endpoints must be positive.
func Logspace(start, end Quantity, n int) (Quantity, error) {
	a, b, err := endpoints(start, end, n)
	if err != nil {
		return Quantity{}, err
	}
	if a <= 0 || b <= 0 {
		return Quantity{}, fmt.Errorf("%w: endpoints %v and %v", ErrNonPositiveEndpoint, a, b)
	}
	la, lb := math.Log10(a), math.Log10(b)
	out := make(Array, n)
	if n == 1 {
		out[0] = a
	} else {
		step := (lb - la) / float64(n-1)
		for i := range out {
			out[i] = math.Pow(10, la+float64(i)*step)
		}
		out[0], out[n-1] = a, b
	}
	return Quantity{value: out, unit: start.unit}, nil
}

func endpoints(start, end Quantity, n int) (float64, float64, error) {
	if n < 1 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidSampleCount, n)
	}
	if err := start.checkUnits(end); err != nil {
		return 0, 0, err
	}
	a, ok := start.value.(Scalar)
	if !ok {
		return 0, 0, fmt.Errorf("%w: start is %T, want a scalar", ErrUnsupported, start.value)
	}
	b, ok := end.value.(Scalar)
	if !ok {
		return 0, 0, fmt.Errorf("%w: end is %T, want a scalar", ErrUnsupported, end.value)
	}
	return float64(a), float64(b), nil
}
