package unit

import (
	"errors"
	"testing"
)

func TestRatio(t *testing.T) {
	t.Run("Normalization", testRatioNormalization)
	t.Run("Arithmetic", testRatioArithmetic)
	t.Run("String", testRatioString)
}

func testRatioNormalization(t *testing.T) {
	tests := []struct {
		num, den     int
		wantNum      int
		wantDen      int
	}{
		{1, 2, 1, 2},
		{2, 4, 1, 2},
		{-2, 4, -1, 2},
		{2, -4, -1, 2},
		{-2, -4, 1, 2},
		{0, 5, 0, 1},
		{6, 3, 2, 1},
	}

	for _, tt := range tests {
		r := NewRatio(tt.num, tt.den)
		if r.Num() != tt.wantNum || r.Den() != tt.wantDen {
			t.Errorf("NewRatio(%d, %d) = %d/%d, want %d/%d",
				tt.num, tt.den, r.Num(), r.Den(), tt.wantNum, tt.wantDen)
		}
	}

	// Equal rationals must be equal values, whatever form they were
	// built from.
	if NewRatio(2, 4) != NewRatio(1, 2) {
		t.Error("NewRatio(2,4) and NewRatio(1,2) should be the same value")
	}
	if NewRatio(0, 7) != Int(0) {
		t.Error("all zero rationals should be the zero value")
	}

	defer func() {
		if recover() == nil {
			t.Error("NewRatio with zero denominator should panic")
		}
	}()
	NewRatio(1, 0)
}

func testRatioArithmetic(t *testing.T) {
	half := NewRatio(1, 2)
	third := NewRatio(1, 3)

	if got := half.Add(third); got != NewRatio(5, 6) {
		t.Errorf("1/2 + 1/3 = %s, want 5/6", got)
	}
	if got := half.Sub(third); got != NewRatio(1, 6) {
		t.Errorf("1/2 - 1/3 = %s, want 1/6", got)
	}
	if got := half.Mul(third); got != NewRatio(1, 6) {
		t.Errorf("1/2 * 1/3 = %s, want 1/6", got)
	}
	if got := half.Neg(); got != NewRatio(-1, 2) {
		t.Errorf("-(1/2) = %s, want -1/2", got)
	}
	if got := half.Add(half); got != Int(1) {
		t.Errorf("1/2 + 1/2 = %s, want 1", got)
	}
	if !Int(2).IsInt() || NewRatio(1, 2).IsInt() {
		t.Error("IsInt misclassifies")
	}
}

func testRatioString(t *testing.T) {
	tests := []struct {
		r    Ratio
		want string
	}{
		{Int(0), "0"},
		{Int(3), "3"},
		{Int(-2), "-2"},
		{NewRatio(1, 2), "1/2"},
		{NewRatio(-3, 2), "-3/2"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestVector(t *testing.T) {
	t.Run("Algebra", testVectorAlgebra)
	t.Run("Root", testVectorRoot)
	t.Run("String", testVectorString)
	t.Run("MapKey", testVectorMapKey)
}

func testVectorAlgebra(t *testing.T) {
	meter := Base(0)
	second := Base(2)

	speed := meter.Div(second)
	if speed.Exponents()[0] != Int(1) || speed.Exponents()[2] != Int(-1) {
		t.Errorf("m/s = %v", speed)
	}

	// Mul and Div are inverse
	if speed.Mul(second) != meter {
		t.Error("(m/s)·s should be m")
	}

	// Recip negates
	hertz := second.Recip()
	if hertz != FromInts([Dims]int{0, 0, -1, 0, 0, 0, 0}) {
		t.Errorf("1/s = %v", hertz)
	}

	// Pow scales
	area := meter.Pow(2)
	if area != FromInts([Dims]int{2, 0, 0, 0, 0, 0, 0}) {
		t.Errorf("m² = %v", area)
	}
	if meter.Pow(0) != Dimensionless {
		t.Error("m⁰ should be dimensionless")
	}

	// Scale by a rational
	if got := area.Scale(NewRatio(1, 2)); got != meter {
		t.Errorf("(m²)^1/2 = %v, want m", got)
	}

	if !Dimensionless.IsZero() || meter.IsZero() {
		t.Error("IsZero misclassifies")
	}
}

func testVectorRoot(t *testing.T) {
	area := Base(0).Pow(2)
	got, err := area.Root(2)
	if err != nil {
		t.Fatalf("Root(2) of m²: %v", err)
	}
	if got != Base(0) {
		t.Errorf("sqrt(m²) = %v, want m", got)
	}

	volume := Base(0).Pow(3)
	got, err = volume.Root(3)
	if err != nil {
		t.Fatalf("Root(3) of m³: %v", err)
	}
	if got != Base(0) {
		t.Errorf("cbrt(m³) = %v, want m", got)
	}

	// m has no exact square root
	if _, err := Base(0).Root(2); !errors.Is(err, ErrNonIntegerRoot) {
		t.Errorf("sqrt(m) error = %v, want ErrNonIntegerRoot", err)
	}

	// Dimensionless roots always succeed
	if _, err := Dimensionless.Root(5); err != nil {
		t.Errorf("root of dimensionless: %v", err)
	}

	if !volume.DivisibleBy(3) || volume.DivisibleBy(2) {
		t.Error("DivisibleBy misclassifies m³")
	}
}

func testVectorString(t *testing.T) {
	tests := []struct {
		v    Vector
		want string
	}{
		{Dimensionless, ""},
		{Base(0), "m"},
		{Base(0).Pow(2), "m²"},
		{Base(0).Pow(3), "m³"},
		{FromInts([Dims]int{1, 1, -2, 0, 0, 0, 0}), "m kg s^-2"},
		{FromInts([Dims]int{2, 1, -3, -1, 0, 0, 0}), "m² kg s^-3 A^-1"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	half := Base(2).Scale(NewRatio(-1, 2))
	if got := half.String(); got != "s^-1/2" {
		t.Errorf("String() = %q, want %q", got, "s^-1/2")
	}
}

func testVectorMapKey(t *testing.T) {
	m := map[Vector]string{
		Base(0).Pow(2):                Base(0).Pow(2).String(),
		FromInts([Dims]int{2, 0, 0, 0, 0, 0, 0}): "area",
	}
	// Both constructions of m² are the same key
	if len(m) != 1 {
		t.Fatalf("expected one map entry, got %d", len(m))
	}
	if m[Base(0).Mul(Base(0))] != "area" {
		t.Error("lookup through a third construction of m² failed")
	}
}
