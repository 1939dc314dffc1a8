package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itt-ustutt/quantity/pkg/quantity"
	"github.com/itt-ustutt/quantity/pkg/quantity/catalog"
)

// DefaultMaxNodes bounds the expression tree size a single evaluation may
// submit. Interactive hosts pass untrusted input, so the bound is checked
// before any arithmetic runs.
const DefaultMaxNodes = 256

var (
	// ErrSyntax reports input the parser could not understand.
	ErrSyntax = errors.New("syntax error")
	// ErrTooComplex reports an expression over the node budget.
	ErrTooComplex = errors.New("expression too complex")
)

type builtin func(quantity.Quantity) (quantity.Quantity, error)

var builtins = map[string]builtin{
	"sqrt": quantity.Quantity.Sqrt,
	"cbrt": quantity.Quantity.Cbrt,
	"abs": func(q quantity.Quantity) (quantity.Quantity, error) {
		return q.Abs(), nil
	},
}

// Evaluator turns expression strings into quantities.
type Evaluator struct {
	// MaxNodes overrides DefaultMaxNodes when positive.
	MaxNodes int
}

func New() *Evaluator {
	return &Evaluator{MaxNodes: DefaultMaxNodes}
}

// Evaluate parses and evaluates one expression.
func (e *Evaluator) Evaluate(input string) (quantity.Quantity, error) {
	p := NewParser(NewLexer(input))
	exp := p.ParseExpression()
	if msgs := p.Errors(); len(msgs) > 0 {
		return quantity.Quantity{}, fmt.Errorf("%w: %s", ErrSyntax, strings.Join(msgs, "; "))
	}

	max := e.MaxNodes
	if max <= 0 {
		max = DefaultMaxNodes
	}
	if n := CountNodes(exp); n > max {
		return quantity.Quantity{}, fmt.Errorf("%w: %d nodes, limit %d", ErrTooComplex, n, max)
	}

	return e.eval(exp)
}

func (e *Evaluator) eval(node Expression) (quantity.Quantity, error) {
	switch n := node.(type) {
	case *IntegerLiteral:
		return quantity.FromFloat(float64(n.Value)), nil
	case *FloatLiteral:
		return quantity.FromFloat(n.Value), nil
	case *UnitExpression:
		return e.evalUnit(n)
	case *Identifier:
		return resolveIdent(n.Value)
	case *PrefixExpression:
		right, err := e.eval(n.Right)
		if err != nil {
			return quantity.Quantity{}, err
		}
		if n.Operator != "-" {
			return quantity.Quantity{}, fmt.Errorf("%w: unknown operator %q", ErrSyntax, n.Operator)
		}
		return right.Neg(), nil
	case *InfixExpression:
		return e.evalInfix(n)
	case *CallExpression:
		return e.evalCall(n)
	default:
		return quantity.Quantity{}, fmt.Errorf("%w: unexpected node %T", ErrSyntax, node)
	}
}

// evalUnit applies a unit annotation to its literal. The annotation goes
// through the full unit grammar, so affine units convert here: "25 °C"
// is 298.15 K.
func (e *Evaluator) evalUnit(n *UnitExpression) (quantity.Quantity, error) {
	var magnitude float64
	switch lit := n.Value.(type) {
	case *IntegerLiteral:
		magnitude = float64(lit.Value)
	case *FloatLiteral:
		magnitude = lit.Value
	default:
		return quantity.Quantity{}, fmt.Errorf("%w: unit %q must follow a number", ErrSyntax, n.Unit)
	}
	return quantity.Parse(fmt.Sprintf("%v %s", magnitude, n.Unit))
}

// resolveIdent tries catalog constants first, then reads the identifier
// as a unit expression standing for one of that unit.
func resolveIdent(name string) (quantity.Quantity, error) {
	if _, ok := catalog.LookupConstant(name); ok {
		return quantity.Constant(name)
	}
	return quantity.ParseUnit(name)
}

func (e *Evaluator) evalInfix(n *InfixExpression) (quantity.Quantity, error) {
	left, err := e.eval(n.Left)
	if err != nil {
		return quantity.Quantity{}, err
	}

	if n.Operator == "^" {
		exp, ok := n.Right.(*IntegerLiteral)
		if !ok {
			return quantity.Quantity{}, fmt.Errorf("%w: exponent must be an integer literal", ErrSyntax)
		}
		return left.Pow(int(exp.Value))
	}

	right, err := e.eval(n.Right)
	if err != nil {
		return quantity.Quantity{}, err
	}

	switch n.Operator {
	case "+":
		return left.Add(right)
	case "-":
		return left.Sub(right)
	case "*", "·":
		return left.Mul(right)
	case "/":
		return left.Div(right)
	default:
		return quantity.Quantity{}, fmt.Errorf("%w: unknown operator %q", ErrSyntax, n.Operator)
	}
}

func (e *Evaluator) evalCall(n *CallExpression) (quantity.Quantity, error) {
	ident, ok := n.Function.(*Identifier)
	if !ok {
		return quantity.Quantity{}, fmt.Errorf("%w: %s is not callable", ErrSyntax, n.Function)
	}
	fn, ok := builtins[ident.Value]
	if !ok {
		return quantity.Quantity{}, fmt.Errorf("%w: unknown function %q", ErrSyntax, ident.Value)
	}
	if len(n.Arguments) != 1 {
		return quantity.Quantity{}, fmt.Errorf("%w: %s takes one argument, got %d", ErrSyntax, ident.Value, len(n.Arguments))
	}
	arg, err := e.eval(n.Arguments[0])
	if err != nil {
		return quantity.Quantity{}, err
	}
	return fn(arg)
}
