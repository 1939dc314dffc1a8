package quantity

import (
	"errors"

	"github.com/itt-ustutt/quantity/pkg/quantity/parser"
	"github.com/itt-ustutt/quantity/pkg/quantity/unit"
)

// Every failure mode of the engine maps to exactly one of these sentinel
// errors, tested with errors.Is. They are programming-error signals:
// synchronous, local and non-retryable. No operation coerces silently or
// falls back to a default unit.
var (
	// ErrDimensionMismatch: add, sub, compare or convert across unequal
	// unit vectors.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrMalformedUnitSpecifier: an exponent list of the wrong shape at
	// the construction boundary.
	ErrMalformedUnitSpecifier = errors.New("malformed unit specifier")
	// ErrHeterogeneousArray: array construction over mixed unit vectors.
	ErrHeterogeneousArray = errors.New("heterogeneous array")
	// ErrInvalidSampleCount: interpolation with fewer than one sample.
	ErrInvalidSampleCount = errors.New("invalid sample count")
	// ErrNonPositiveEndpoint: logarithmic interpolation from or to a
	// non-positive magnitude.
	ErrNonPositiveEndpoint = errors.New("non-positive interpolation endpoint")
	// ErrLengthMismatch: elementwise arithmetic over arrays of different
	// lengths.
	ErrLengthMismatch = errors.New("array length mismatch")
	// ErrUnsupported: the magnitude type lacks a capability an operation
	// needs (roots, ordering, indexing).
	ErrUnsupported = errors.New("unsupported value operation")

	// Re-exported from the subpackages that detect them, so callers can
	// match every engine error kind through this package.
	ErrNonIntegerRoot      = unit.ErrNonIntegerRoot
	ErrUnknownSymbol       = parser.ErrUnknownSymbol
	ErrMalformedUnitString = parser.ErrMalformedUnitString
	ErrAffineUnitMisuse    = parser.ErrAffineUnitMisuse
)
