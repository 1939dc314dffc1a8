package quantity

import (
	"fmt"

	"github.com/itt-ustutt/quantity/pkg/quantity/catalog"
)

func unitQuantity(symbol string) Quantity {
	e, ok := catalog.LookupSymbol(symbol)
	if !ok {
		panic("quantity: no catalog entry " + symbol)
	}
	if e.IsAffine() {
		panic("quantity: affine entry " + symbol + " has no multiplicative quantity")
	}
	return Quantity{value: Scalar(e.Factor), unit: e.Vector}
}

// Constant returns the named catalog constant ("RGAS", "KB", ...) as a
// Quantity.
func Constant(name string) (Quantity, error) {
	c, ok := catalog.LookupConstant(name)
	if !ok {
		return Quantity{}, fmt.Errorf("%w: constant %q", ErrUnknownSymbol, name)
	}
	return Quantity{value: Scalar(c.Value), unit: c.Vector}, nil
}

func constQuantity(name string) Quantity {
	c, ok := catalog.LookupConstant(name)
	if !ok {
		panic("quantity: no catalog constant " + name)
	}
	return Quantity{value: Scalar(c.Value), unit: c.Vector}
}

// Base SI units.
var (
	Meter    = unitQuantity("m")
	Kilogram = unitQuantity("kg")
	Second   = unitQuantity("s")
	Ampere   = unitQuantity("A")
	Mol      = unitQuantity("mol")
	Kelvin   = unitQuantity("K")
	Candela  = unitQuantity("cd")
)

// Derived units with factor one.
var (
	Hertz   = unitQuantity("Hz")
	Newton  = unitQuantity("N")
	Pascal  = unitQuantity("Pa")
	Joule   = unitQuantity("J")
	Watt    = unitQuantity("W")
	Coulomb = unitQuantity("C")
	Volt    = unitQuantity("V")
	Farad   = unitQuantity("F")
	Ohm     = unitQuantity("Ω")
	Siemens = unitQuantity("S")
	Weber   = unitQuantity("Wb")
	Tesla   = unitQuantity("T")
	Henry   = unitQuantity("H")
	Lumen   = unitQuantity("lm")
)

// Accepted non-SI units.
var (
	Angstrom         = unitQuantity("Å")
	AtomicMassUnit   = unitQuantity("u")
	AstronomicalUnit = unitQuantity("au")
	Bar              = unitQuantity("bar")
	Calorie          = unitQuantity("cal")
	Day              = unitQuantity("day")
	Gram             = unitQuantity("g")
	Hour             = unitQuantity("h")
	Liter            = unitQuantity("l")
	Minute           = unitQuantity("min")
)

// Defining constants of the SI and common physical constants.
var (
	CaesiumFrequency      = constQuantity("DVCS")
	SpeedOfLight          = constQuantity("CLIGHT")
	Planck                = constQuantity("PLANCK")
	ElementaryCharge      = constQuantity("QE")
	Boltzmann             = constQuantity("KB")
	Avogadro              = constQuantity("NAV")
	LuminousEfficacy      = constQuantity("KCD")
	GravitationalConstant = constQuantity("G")
	GasConstant           = constQuantity("RGAS")
)

// Decimal prefixes as plain multipliers.
const (
	Quecto = 1e-30
	Ronto  = 1e-27
	Yocto  = 1e-24
	Zepto  = 1e-21
	Atto   = 1e-18
	Femto  = 1e-15
	Pico   = 1e-12
	Nano   = 1e-9
	Micro  = 1e-6
	Milli  = 1e-3
	Centi  = 1e-2
	Deci   = 1e-1
	Deca   = 1e1
	Hecto  = 1e2
	Kilo   = 1e3
	Mega   = 1e6
	Giga   = 1e9
	Tera   = 1e12
	Peta   = 1e15
	Exa    = 1e18
	Zetta  = 1e21
	Yotta  = 1e24
	Ronna  = 1e27
	Quetta = 1e30
)
