// Package catalog holds the static registry of named units, prefixes and
// physical constants. The tables are data, not behavior: they are embedded
// as YAML, parsed exactly once on first use, and read-only afterwards, so
// the registry can be shared freely across concurrent readers.
package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/itt-ustutt/quantity/pkg/quantity/unit"
)

//go:embed tables.yaml
var tablesYAML []byte

// Entry is one named unit: its symbol, dimensional signature, conversion
// factor into base representation and, for affine units, an additive
// offset. Factor is always positive; Offset is zero for ordinary units.
type Entry struct {
	Symbol string
	Vector unit.Vector
	Factor float64
	Offset float64
}

// IsAffine reports whether converting through this entry involves an
// additive offset (e.g. Celsius).
func (e Entry) IsAffine() bool { return e.Offset != 0 }

// Prefix is a decimal prefix: its symbol and power of ten.
type Prefix struct {
	Symbol   string
	Exponent int
}

// Factor returns the multiplier the prefix stands for.
func (p Prefix) Factor() float64 { return math.Pow(10, float64(p.Exponent)) }

// Constant is a named physical constant expressed in base representation.
type Constant struct {
	Name   string
	Value  float64
	Vector unit.Vector
}

// Display is one formatter table row: a compound unit label resolved into
// its vector and factor. MaxPrefix bounds how large an engineering prefix
// the formatter may attach; zero means no prefix at all.
type Display struct {
	Label     string
	Vector    unit.Vector
	Factor    float64
	MaxPrefix float64
}

type rawTables struct {
	Base []struct {
		Symbol string `yaml:"symbol"`
		Dim    int    `yaml:"dim"`
	} `yaml:"base"`
	Derived []struct {
		Symbol    string `yaml:"symbol"`
		Exponents []int  `yaml:"exponents"`
	} `yaml:"derived"`
	Additional []struct {
		Symbol    string  `yaml:"symbol"`
		Exponents []int   `yaml:"exponents"`
		Factor    float64 `yaml:"factor"`
	} `yaml:"additional"`
	Affine []struct {
		Symbol    string  `yaml:"symbol"`
		Exponents []int   `yaml:"exponents"`
		Factor    float64 `yaml:"factor"`
		Offset    float64 `yaml:"offset"`
	} `yaml:"affine"`
	Prefixes []struct {
		Symbol   string `yaml:"symbol"`
		Exponent int    `yaml:"exponent"`
	} `yaml:"prefixes"`
	Constants []struct {
		Name      string  `yaml:"name"`
		Value     float64 `yaml:"value"`
		Exponents []int   `yaml:"exponents"`
	} `yaml:"constants"`
	Display []struct {
		Expr   string `yaml:"expr"`
		Prefix string `yaml:"prefix"`
	} `yaml:"display"`
}

type registry struct {
	entries   []Entry
	bySymbol  map[string]Entry
	prefixes  []Prefix
	byPrefix  map[string]Prefix
	byExp     map[int]string
	constants []Constant
	byName    map[string]Constant
	displays  []Display
	byVector  map[unit.Vector]Display
	maxSymLen int
}

var (
	once sync.Once
	reg  *registry
)

// load builds the registry from the embedded tables. The tables ship with
// the binary, so a malformed table is a build defect and panics.
func load() {
	var raw rawTables
	if err := yaml.Unmarshal(tablesYAML, &raw); err != nil {
		panic(fmt.Sprintf("catalog: embedded tables are invalid: %v", err))
	}

	r := &registry{
		bySymbol: make(map[string]Entry),
		byPrefix: make(map[string]Prefix),
		byExp:    make(map[int]string),
		byName:   make(map[string]Constant),
		byVector: make(map[unit.Vector]Display),
	}

	add := func(e Entry) {
		if _, dup := r.bySymbol[e.Symbol]; dup {
			panic(fmt.Sprintf("catalog: duplicate symbol %q", e.Symbol))
		}
		r.entries = append(r.entries, e)
		r.bySymbol[e.Symbol] = e
		if n := len([]rune(e.Symbol)); n > r.maxSymLen {
			r.maxSymLen = n
		}
	}

	for _, b := range raw.Base {
		add(Entry{Symbol: b.Symbol, Vector: unit.Base(b.Dim), Factor: 1})
	}
	for _, d := range raw.Derived {
		add(Entry{Symbol: d.Symbol, Vector: vectorOf(d.Symbol, d.Exponents), Factor: 1})
	}
	for _, a := range raw.Additional {
		add(Entry{Symbol: a.Symbol, Vector: vectorOf(a.Symbol, a.Exponents), Factor: a.Factor})
	}
	for _, a := range raw.Affine {
		add(Entry{Symbol: a.Symbol, Vector: vectorOf(a.Symbol, a.Exponents), Factor: a.Factor, Offset: a.Offset})
	}

	for _, p := range raw.Prefixes {
		pf := Prefix{Symbol: p.Symbol, Exponent: p.Exponent}
		r.prefixes = append(r.prefixes, pf)
		r.byPrefix[p.Symbol] = pf
		r.byExp[p.Exponent] = p.Symbol
	}

	for _, c := range raw.Constants {
		cn := Constant{Name: c.Name, Value: c.Value, Vector: vectorOf(c.Name, c.Exponents)}
		r.constants = append(r.constants, cn)
		r.byName[c.Name] = cn
	}

	for _, d := range raw.Display {
		vec, factor, err := resolveExpr(d.Expr, r.bySymbol)
		if err != nil {
			panic(fmt.Sprintf("catalog: display expression %q: %v", d.Expr, err))
		}
		disp := Display{
			Label:     strings.ReplaceAll(d.Expr, "*", ""),
			Vector:    vec,
			Factor:    factor,
			MaxPrefix: prefixBound(d.Prefix),
		}
		r.displays = append(r.displays, disp)
		r.byVector[vec] = disp
	}

	reg = r
}

func ensure() *registry {
	once.Do(load)
	return reg
}

func vectorOf(symbol string, exps []int) unit.Vector {
	if len(exps) != unit.Dims {
		panic(fmt.Sprintf("catalog: %q has %d exponents, want %d", symbol, len(exps), unit.Dims))
	}
	var a [unit.Dims]int
	copy(a[:], exps)
	return unit.FromInts(a)
}

func prefixBound(name string) float64 {
	switch name {
	case "none", "":
		return 0
	case "kilo":
		return 1e3
	case "mega":
		return 1e6
	case "peta":
		return 1e15
	default:
		panic(fmt.Sprintf("catalog: unknown prefix bound %q", name))
	}
}

// resolveExpr reduces a display expression like "J/mol/K" or "m³" against
// the symbol table. The grammar is deliberately tiny: symbols joined by
// '*' and '/', with superscript squares and cubes.
func resolveExpr(expr string, symbols map[string]Entry) (unit.Vector, float64, error) {
	vec := unit.Dimensionless
	factor := 1.0
	sign := 1
	for _, term := range splitTerms(expr) {
		if term == "*" {
			sign = 1
			continue
		}
		if term == "/" {
			sign = -1
			continue
		}
		sym, exp := trimSuperscript(term)
		e, ok := symbols[sym]
		if !ok {
			return unit.Vector{}, 0, fmt.Errorf("unknown symbol %q", sym)
		}
		exp *= sign
		vec = vec.Mul(e.Vector.Pow(exp))
		factor *= math.Pow(e.Factor, float64(exp))
	}
	return vec, factor, nil
}

func splitTerms(expr string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range expr {
		if r == '*' || r == '/' {
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			out = append(out, string(r))
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func trimSuperscript(term string) (string, int) {
	switch {
	case strings.HasSuffix(term, "²"):
		return strings.TrimSuffix(term, "²"), 2
	case strings.HasSuffix(term, "³"):
		return strings.TrimSuffix(term, "³"), 3
	default:
		return term, 1
	}
}

// Entries returns every named unit in table order.
func Entries() []Entry {
	r := ensure()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// LookupSymbol finds a unit by its exact symbol.
func LookupSymbol(symbol string) (Entry, bool) {
	e, ok := ensure().bySymbol[symbol]
	return e, ok
}

// MaxSymbolLen is the rune length of the longest registered symbol. The
// parser uses it to bound maximal-munch lookahead.
func MaxSymbolLen() int { return ensure().maxSymLen }

// Prefixes returns every decimal prefix in table order.
func Prefixes() []Prefix {
	r := ensure()
	out := make([]Prefix, len(r.prefixes))
	copy(out, r.prefixes)
	return out
}

// LookupPrefix finds a prefix by symbol.
func LookupPrefix(symbol string) (Prefix, bool) {
	p, ok := ensure().byPrefix[symbol]
	return p, ok
}

// PrefixForExponent returns the prefix symbol for a power of ten, if one
// exists.
func PrefixForExponent(exp int) (string, bool) {
	s, ok := ensure().byExp[exp]
	return s, ok
}

// Constants returns every physical constant in table order.
func Constants() []Constant {
	r := ensure()
	out := make([]Constant, len(r.constants))
	copy(out, r.constants)
	return out
}

// LookupConstant finds a constant by name.
func LookupConstant(name string) (Constant, bool) {
	c, ok := ensure().byName[name]
	return c, ok
}

// LookupDisplay finds the formatter row matching a vector exactly.
func LookupDisplay(v unit.Vector) (Display, bool) {
	d, ok := ensure().byVector[v]
	return d, ok
}
