package catalog

import (
	"math"
	"testing"

	"github.com/itt-ustutt/quantity/pkg/quantity/unit"
)

func TestLookupSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		exps   [unit.Dims]int
		factor float64
		offset float64
	}{
		{"m", [unit.Dims]int{1, 0, 0, 0, 0, 0, 0}, 1, 0},
		{"kg", [unit.Dims]int{0, 1, 0, 0, 0, 0, 0}, 1, 0},
		{"Hz", [unit.Dims]int{0, 0, -1, 0, 0, 0, 0}, 1, 0},
		{"Pa", [unit.Dims]int{-1, 1, -2, 0, 0, 0, 0}, 1, 0},
		{"J", [unit.Dims]int{2, 1, -2, 0, 0, 0, 0}, 1, 0},
		{"Ω", [unit.Dims]int{2, 1, -3, -2, 0, 0, 0}, 1, 0},
		{"bar", [unit.Dims]int{-1, 1, -2, 0, 0, 0, 0}, 1e5, 0},
		{"min", [unit.Dims]int{0, 0, 1, 0, 0, 0, 0}, 60, 0},
		{"g", [unit.Dims]int{0, 1, 0, 0, 0, 0, 0}, 1e-3, 0},
		{"°C", [unit.Dims]int{0, 0, 0, 0, 0, 1, 0}, 1, 273.15},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			e, ok := LookupSymbol(tt.symbol)
			if !ok {
				t.Fatalf("symbol %q not found", tt.symbol)
			}
			if e.Vector != unit.FromInts(tt.exps) {
				t.Errorf("vector = %v, want %v", e.Vector, unit.FromInts(tt.exps))
			}
			if e.Factor != tt.factor {
				t.Errorf("factor = %v, want %v", e.Factor, tt.factor)
			}
			if e.Offset != tt.offset {
				t.Errorf("offset = %v, want %v", e.Offset, tt.offset)
			}
		})
	}

	if _, ok := LookupSymbol("xyz"); ok {
		t.Error("LookupSymbol should miss on unknown symbols")
	}
	if e, _ := LookupSymbol("°C"); !e.IsAffine() {
		t.Error("°C should be affine")
	}
	if e, _ := LookupSymbol("bar"); e.IsAffine() {
		t.Error("bar should not be affine")
	}
}

func TestPrefixes(t *testing.T) {
	if n := len(Prefixes()); n != 24 {
		t.Errorf("prefix count = %d, want 24", n)
	}

	k, ok := LookupPrefix("k")
	if !ok || k.Exponent != 3 {
		t.Fatalf("k prefix = %+v, %v", k, ok)
	}
	if k.Factor() != 1e3 {
		t.Errorf("k factor = %v", k.Factor())
	}

	mu, ok := LookupPrefix("µ")
	if !ok || mu.Exponent != -6 {
		t.Errorf("µ prefix = %+v, %v", mu, ok)
	}

	da, ok := LookupPrefix("da")
	if !ok || da.Exponent != 1 {
		t.Errorf("da prefix = %+v, %v", da, ok)
	}

	// Every engineering step in [-30, 30] has a symbol
	for e := -30; e <= 30; e += 3 {
		if e == 0 {
			continue
		}
		if _, ok := PrefixForExponent(e); !ok {
			t.Errorf("no prefix for exponent %d", e)
		}
	}
	if s, _ := PrefixForExponent(3); s != "k" {
		t.Errorf("PrefixForExponent(3) = %q", s)
	}
}

func TestConstants(t *testing.T) {
	rgas, ok := LookupConstant("RGAS")
	if !ok {
		t.Fatal("RGAS not found")
	}
	if rgas.Value != 8.31446261815324 {
		t.Errorf("RGAS = %v", rgas.Value)
	}
	if rgas.Vector != unit.FromInts([unit.Dims]int{2, 1, -2, 0, -1, -1, 0}) {
		t.Errorf("RGAS vector = %v", rgas.Vector)
	}

	// RGAS = KB·NAV must hold inside the table
	kb, _ := LookupConstant("KB")
	nav, _ := LookupConstant("NAV")
	if got := kb.Value * nav.Value; math.Abs(got-rgas.Value) > 1e-10 {
		t.Errorf("KB·NAV = %v, want %v", got, rgas.Value)
	}
	if kb.Vector.Mul(nav.Vector) != rgas.Vector {
		t.Error("KB·NAV vector should equal RGAS vector")
	}

	if _, ok := LookupConstant("NOPE"); ok {
		t.Error("LookupConstant should miss on unknown names")
	}
}

func TestDisplayTable(t *testing.T) {
	pa, _ := LookupSymbol("Pa")
	d, ok := LookupDisplay(pa.Vector)
	if !ok {
		t.Fatal("no display row for the pascal vector")
	}
	if d.Label != "Pa" {
		t.Errorf("label = %q, want Pa", d.Label)
	}
	if d.MaxPrefix != 1e15 {
		t.Errorf("max prefix = %v, want 1e15", d.MaxPrefix)
	}

	// Compound expression rows resolve their factor
	molar := unit.FromInts([unit.Dims]int{2, 1, -2, 0, -1, -1, 0}) // J/mol/K
	d, ok = LookupDisplay(molar)
	if !ok {
		t.Fatal("no display row for J/mol/K")
	}
	if d.Label != "J/mol/K" || d.Factor != 1 {
		t.Errorf("row = %+v", d)
	}

	// Mass displays in grams, factor 1e-3
	kg, _ := LookupSymbol("kg")
	d, ok = LookupDisplay(kg.Vector)
	if !ok {
		t.Fatal("no display row for mass")
	}
	if d.Label != "g" || d.Factor != 1e-3 {
		t.Errorf("mass row = %+v", d)
	}

	// Product rows drop the '*' in labels
	js := unit.FromInts([unit.Dims]int{2, 1, -1, 0, 0, 0, 0})
	if d, ok = LookupDisplay(js); !ok || d.Label != "Js" {
		t.Errorf("J·s row = %+v, %v", d, ok)
	}

	if _, ok := LookupDisplay(unit.FromInts([unit.Dims]int{0, 0, 0, 0, 2, 0, 0})); ok {
		t.Error("mol² should have no display row")
	}
}

func TestMaxSymbolLen(t *testing.T) {
	if got := MaxSymbolLen(); got != 3 {
		t.Errorf("MaxSymbolLen = %d, want 3", got)
	}
}
