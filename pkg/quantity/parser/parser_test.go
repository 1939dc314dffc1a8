package parser

import (
	"errors"
	"math"
	"testing"

	"github.com/itt-ustutt/quantity/pkg/quantity/unit"
)

func vec(exps [unit.Dims]int) unit.Vector { return unit.FromInts(exps) }

func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}

func TestParse(t *testing.T) {
	tests := []struct {
		input      string
		wantVec    unit.Vector
		wantFactor float64
	}{
		{"", unit.Dimensionless, 1},
		{"m", vec([unit.Dims]int{1, 0, 0, 0, 0, 0, 0}), 1},
		{"Hz", vec([unit.Dims]int{0, 0, -1, 0, 0, 0, 0}), 1},
		{"kPa", vec([unit.Dims]int{-1, 1, -2, 0, 0, 0, 0}), 1e3},
		{"J/mol/K", vec([unit.Dims]int{2, 1, -2, 0, -1, -1, 0}), 1},
		{"mol", vec([unit.Dims]int{0, 0, 0, 0, 1, 0, 0}), 1},
		{"ms", vec([unit.Dims]int{0, 0, 1, 0, 0, 0, 0}), 1e-3},
		{"min", vec([unit.Dims]int{0, 0, 1, 0, 0, 0, 0}), 60},
		{"Js", vec([unit.Dims]int{2, 1, -1, 0, 0, 0, 0}), 1},
		{"J·s", vec([unit.Dims]int{2, 1, -1, 0, 0, 0, 0}), 1},
		{"J*s", vec([unit.Dims]int{2, 1, -1, 0, 0, 0, 0}), 1},
		{"m²", vec([unit.Dims]int{2, 0, 0, 0, 0, 0, 0}), 1},
		{"m^3", vec([unit.Dims]int{3, 0, 0, 0, 0, 0, 0}), 1},
		{"m^-2", vec([unit.Dims]int{-2, 0, 0, 0, 0, 0, 0}), 1},
		{"kg m/s^2", vec([unit.Dims]int{1, 1, -2, 0, 0, 0, 0}), 1},
		{"m^2/s", vec([unit.Dims]int{2, 0, -1, 0, 0, 0, 0}), 1},
		{"m/s²", vec([unit.Dims]int{1, 0, -2, 0, 0, 0, 0}), 1},
		{"cm", vec([unit.Dims]int{1, 0, 0, 0, 0, 0, 0}), 1e-2},
		{"µm", vec([unit.Dims]int{1, 0, 0, 0, 0, 0, 0}), 1e-6},
		{"km²", vec([unit.Dims]int{2, 0, 0, 0, 0, 0, 0}), 1e6},
		{"bar", vec([unit.Dims]int{-1, 1, -2, 0, 0, 0, 0}), 1e5},
		{"mbar", vec([unit.Dims]int{-1, 1, -2, 0, 0, 0, 0}), 1e2},
		{"das", vec([unit.Dims]int{0, 0, 1, 0, 0, 0, 0}), 10},
		{"Å", vec([unit.Dims]int{1, 0, 0, 0, 0, 0, 0}), 1e-10},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if r.Vector != tt.wantVec {
				t.Errorf("vector = %v, want %v", r.Vector, tt.wantVec)
			}
			if !approxEqual(r.Factor, tt.wantFactor) {
				t.Errorf("factor = %v, want %v", r.Factor, tt.wantFactor)
			}
			if r.Offset != 0 {
				t.Errorf("offset = %v, want 0", r.Offset)
			}
		})
	}
}

func TestParseRationalExponent(t *testing.T) {
	r, err := Parse("m^1/2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := unit.Base(0).Scale(unit.NewRatio(1, 2))
	if r.Vector != want {
		t.Errorf("vector = %v, want %v", r.Vector, want)
	}

	// "^2/3" is a rational exponent, not a division by 3
	r, err = Parse("s^2/3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want = unit.Base(2).Scale(unit.NewRatio(2, 3))
	if r.Vector != want {
		t.Errorf("vector = %v, want %v", r.Vector, want)
	}
}

func TestParseAffine(t *testing.T) {
	r, err := Parse("°C")
	if err != nil {
		t.Fatalf("Parse(°C): %v", err)
	}
	if r.Offset != 273.15 || r.Factor != 1 {
		t.Errorf("celsius = %+v", r)
	}
	if r.Vector != vec([unit.Dims]int{0, 0, 0, 0, 0, 1, 0}) {
		t.Errorf("celsius vector = %v", r.Vector)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"xyz", ErrUnknownSymbol},
		{"m xq", ErrUnknownSymbol},
		{"m/", ErrMalformedUnitString},
		{"*m", ErrMalformedUnitString},
		{"m^", ErrMalformedUnitString},
		{"m^x", ErrMalformedUnitString},
		{"m^1/0", ErrMalformedUnitString},
		{"/s", ErrMalformedUnitString},
		{"m ? s", ErrMalformedUnitString},
		{"°C^2", ErrAffineUnitMisuse},
		{"°C²", ErrAffineUnitMisuse},
		{"m°C", ErrAffineUnitMisuse},
		{"°C*K", ErrAffineUnitMisuse},
		{"K °C", ErrAffineUnitMisuse},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	inputs := []string{"m", "kPa", "kg m/s^2", "J/mol/K"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(inputs[i%len(inputs)]); err != nil {
			b.Fatal(err)
		}
	}
}
