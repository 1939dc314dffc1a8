// Package quantity implements dimensioned arithmetic on SI quantities.
//
// A Quantity pairs a magnitude (a scalar or an array of float64, always in
// base SI representation) with a seven-dimensional exponent vector over
// the base units m, kg, s, A, mol, K and cd. Arithmetic tracks the vector
// through every operation and refuses dimensionally unsound ones:
//
//	p, _ := n.Mul(temperature)        // exponents add
//	_, err := Meter.Add(Second)       // ErrDimensionMismatch
//
// Quantities are built by multiplying raw numbers with the catalog units
// (Meter, Joule, Pascal, ...) or parsed from text; String renders them
// with derived-unit labels and engineering prefixes, so the text form
// round-trips through Parse.
package quantity
