package quantity

import (
	"github.com/itt-ustutt/quantity/pkg/quantity/catalog"
	"github.com/itt-ustutt/quantity/pkg/quantity/unit"
)

// Affine is a unit on an affine scale: conversion to base representation
// is v*factor + offset, so it cannot take part in quantity algebra. It
// converts raw values in and out and nothing else.
type Affine struct {
	symbol string
	unit   unit.Vector
	factor float64
	offset float64
}

// Celsius is the affine degree-Celsius scale, offset 273.15 from kelvin.
var Celsius = mustAffine("°C")

func mustAffine(symbol string) Affine {
	e, ok := catalog.LookupSymbol(symbol)
	if !ok || !e.IsAffine() {
		panic("quantity: no affine catalog entry " + symbol)
	}
	return Affine{symbol: e.Symbol, unit: e.Vector, factor: e.Factor, offset: e.Offset}
}

// Symbol returns the display symbol of the scale.
func (a Affine) Symbol() string { return a.symbol }

// Quantity converts a raw value on the affine scale into an absolute
// Quantity: 25 on the Celsius scale becomes 298.15 K.
func (a Affine) Quantity(v float64) Quantity {
	return Quantity{value: Scalar(v*a.factor + a.offset), unit: a.unit}
}

// InAffine converts the quantity onto an affine scale: 298.15 K on the
// Celsius scale is 25.
func (q Quantity) InAffine(a Affine) (Value, error) { return a.From(q) }

// From converts an absolute Quantity back onto the affine scale.
func (a Affine) From(q Quantity) (Value, error) {
	if q.unit != a.unit {
		return nil, q.checkUnits(Quantity{value: Scalar(0), unit: a.unit})
	}
	v, err := q.value.Sub(Scalar(a.offset))
	if err != nil {
		return nil, err
	}
	return v.Div(Scalar(a.factor))
}
