// Package unit implements the exponent-vector representation of physical
// units. A Vector holds one rational exponent per SI base dimension; the
// algebra on Vectors carries the dimensional bookkeeping for all quantity
// arithmetic.
package unit

import (
	"errors"
	"fmt"
	"strings"
)

// Dims is the number of SI base dimensions: length, mass, time, current,
// substance, temperature, luminous intensity.
const Dims = 7

// ErrNonIntegerRoot is returned when a root would produce fractional
// exponents that are not exactly representable for the requested index.
var ErrNonIntegerRoot = errors.New("unit exponents are not multiples of root index")

// Ratio is an exact rational exponent, always stored normalized: the
// denominator is positive and the fraction is fully reduced. The zero
// value is the rational 0.
type Ratio struct {
	num int
	den int
}

// NewRatio builds a normalized rational. A zero denominator panics; it can
// only arise from a programming error, never from input.
func NewRatio(num, den int) Ratio {
	if den == 0 {
		panic("unit: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return Ratio{}
	}
	g := gcd(abs(num), den)
	return Ratio{num: num / g, den: den / g}
}

// Int returns the rational n/1.
func Int(n int) Ratio {
	if n == 0 {
		return Ratio{}
	}
	return Ratio{num: n, den: 1}
}

func (r Ratio) Num() int { return r.num }

func (r Ratio) Den() int {
	if r.den == 0 {
		return 1
	}
	return r.den
}

func (r Ratio) IsZero() bool { return r.num == 0 }

// IsInt reports whether the rational is a whole number.
func (r Ratio) IsInt() bool { return r.num == 0 || r.den == 1 }

func (r Ratio) Add(o Ratio) Ratio {
	return NewRatio(r.num*o.Den()+o.num*r.Den(), r.Den()*o.Den())
}

func (r Ratio) Sub(o Ratio) Ratio {
	return NewRatio(r.num*o.Den()-o.num*r.Den(), r.Den()*o.Den())
}

func (r Ratio) Mul(o Ratio) Ratio {
	return NewRatio(r.num*o.num, r.Den()*o.Den())
}

func (r Ratio) Neg() Ratio {
	return Ratio{num: -r.num, den: r.den}
}

func (r Ratio) String() string {
	if r.IsInt() {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// Vector is the dimensional signature of a unit: one rational exponent per
// base dimension, in the order m, kg, s, A, mol, K, cd. Vectors are plain
// values; all operations return new Vectors. The zero value is the
// dimensionless vector, so Vector is usable directly as a map key.
type Vector [Dims]Ratio

// Dimensionless is the zero vector.
var Dimensionless = Vector{}

// FromInts builds a Vector from integer exponents.
func FromInts(exps [Dims]int) Vector {
	var v Vector
	for i, e := range exps {
		v[i] = Int(e)
	}
	return v
}

// Base returns the Vector with exponent 1 in dimension i.
func Base(i int) Vector {
	var v Vector
	v[i] = Int(1)
	return v
}

func (v Vector) IsZero() bool { return v == Dimensionless }

// Mul is the vector of a unit product: exponents add componentwise.
func (v Vector) Mul(o Vector) Vector {
	var out Vector
	for i := range v {
		out[i] = v[i].Add(o[i])
	}
	return out
}

// Div is the vector of a unit quotient: exponents subtract componentwise.
func (v Vector) Div(o Vector) Vector {
	var out Vector
	for i := range v {
		out[i] = v[i].Sub(o[i])
	}
	return out
}

// Recip negates every exponent.
func (v Vector) Recip() Vector {
	var out Vector
	for i := range v {
		out[i] = v[i].Neg()
	}
	return out
}

// Scale multiplies every exponent by the rational r; it implements raising
// a unit to an arbitrary rational power.
func (v Vector) Scale(r Ratio) Vector {
	var out Vector
	for i := range v {
		out[i] = v[i].Mul(r)
	}
	return out
}

// Pow scales by the integer n.
func (v Vector) Pow(n int) Vector {
	return v.Scale(Int(n))
}

// DivisibleBy reports whether every exponent is an integer multiple of n.
// It gates Root: only divisible vectors have exact integer roots.
func (v Vector) DivisibleBy(n int) bool {
	for _, e := range v {
		if !e.IsInt() || e.num%n != 0 {
			return false
		}
	}
	return true
}

// Root divides every exponent by n. It fails with ErrNonIntegerRoot unless
// the vector is divisible by n; the receiver is unaffected either way.
func (v Vector) Root(n int) (Vector, error) {
	if !v.DivisibleBy(n) {
		return Vector{}, fmt.Errorf("%w: %s root of %s", ErrNonIntegerRoot, ordinal(n), v)
	}
	var out Vector
	for i, e := range v {
		out[i] = NewRatio(e.num, n)
	}
	return out, nil
}

// Exponents returns a copy of the raw exponents.
func (v Vector) Exponents() [Dims]Ratio { return v }

var baseSymbols = [Dims]string{"m", "kg", "s", "A", "mol", "K", "cd"}

// BaseSymbol returns the base-unit symbol of dimension i.
func BaseSymbol(i int) string { return baseSymbols[i] }

// String renders the vector in base-unit symbols with explicit exponents,
// omitting zero exponents. The dimensionless vector renders empty.
func (v Vector) String() string {
	var parts []string
	for i, e := range v {
		switch {
		case e.IsZero():
		case e == Int(1):
			parts = append(parts, baseSymbols[i])
		case e == Int(2):
			parts = append(parts, baseSymbols[i]+"²")
		case e == Int(3):
			parts = append(parts, baseSymbols[i]+"³")
		default:
			parts = append(parts, fmt.Sprintf("%s^%s", baseSymbols[i], e))
		}
	}
	return strings.Join(parts, " ")
}

func ordinal(n int) string {
	switch n {
	case 2:
		return "square"
	case 3:
		return "cube"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
