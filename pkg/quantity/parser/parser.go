package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/itt-ustutt/quantity/pkg/quantity/catalog"
	"github.com/itt-ustutt/quantity/pkg/quantity/unit"
)

var (
	// ErrUnknownSymbol is returned when no catalog symbol or prefix+symbol
	// combination matches part of the input.
	ErrUnknownSymbol = errors.New("unknown unit symbol")
	// ErrMalformedUnitString is returned for syntax errors: stray
	// operators, bad exponents, unexpected characters.
	ErrMalformedUnitString = errors.New("malformed unit string")
	// ErrAffineUnitMisuse is returned when an affine unit carries a prefix
	// or exponent, or is combined with any other term.
	ErrAffineUnitMisuse = errors.New("affine unit misuse")
)

// Result is the parsed meaning of a unit expression: the exponent vector,
// the factor converting one of the written unit into base representation,
// and a nonzero offset when the expression is a lone affine unit.
type Result struct {
	Vector unit.Vector
	Factor float64
	Offset float64
}

// group is one resolved (prefix, symbol, exponent) token.
type group struct {
	prefixExp int
	entry     catalog.Entry
	exp       unit.Ratio
	pos       int
}

type Parser struct {
	l *Lexer

	curToken  Token
	peekToken Token
}

func New(l *Lexer) *Parser {
	p := &Parser{l: l}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Parse resolves a unit expression. The empty string is the dimensionless
// unit with factor 1.
func Parse(input string) (Result, error) {
	return New(NewLexer(input)).parse()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) parse() (Result, error) {
	var groups []group

	sign := 1
	expectTerm := false
	for p.curToken.Type != EOF {
		switch p.curToken.Type {
		case SYMBOL:
			run, err := munchRun(p.curToken.Literal, p.curToken.Position)
			if err != nil {
				return Result{}, err
			}
			if sign < 0 {
				for i := range run {
					run[i].exp = run[i].exp.Neg()
				}
			}
			sign = 1
			expectTerm = false
			p.nextToken()

			// An exponent binds to the last symbol of the run.
			switch p.curToken.Type {
			case SUPER:
				n, _ := strconv.Atoi(p.curToken.Literal)
				run[len(run)-1].exp = run[len(run)-1].exp.Mul(unit.Int(n))
				p.nextToken()
			case CARET:
				exp, divides, err := p.parseExponent()
				if err != nil {
					return Result{}, err
				}
				run[len(run)-1].exp = run[len(run)-1].exp.Mul(exp)
				if divides {
					sign = -1
					expectTerm = true
				}
			}
			groups = append(groups, run...)

		case STAR:
			if expectTerm || len(groups) == 0 {
				return Result{}, p.malformed(p.curToken)
			}
			expectTerm = true
			p.nextToken()

		case SLASH:
			if expectTerm || len(groups) == 0 {
				return Result{}, p.malformed(p.curToken)
			}
			sign = -1
			expectTerm = true
			p.nextToken()

		default:
			return Result{}, p.malformed(p.curToken)
		}
	}
	if expectTerm {
		return Result{}, fmt.Errorf("%w: expression ends after operator", ErrMalformedUnitString)
	}

	return combine(groups)
}

// parseExponent consumes "^" [-] digits [ "/" digits ]. The trailing slash
// is ambiguous: "m^1/2" is a rational exponent, "m^2/s" a division. When
// the slash is followed by a symbol it was an operator, which the caller
// must honor; that case is reported via divides.
func (p *Parser) parseExponent() (exp unit.Ratio, divides bool, err error) {
	// curToken is CARET
	p.nextToken()

	neg := false
	if p.curToken.Type == MINUS {
		neg = true
		p.nextToken()
	}
	if p.curToken.Type != NUMBER {
		return unit.Ratio{}, false, p.malformed(p.curToken)
	}
	num, _ := strconv.Atoi(p.curToken.Literal)
	if neg {
		num = -num
	}
	den := 1
	p.nextToken()

	if p.curToken.Type == SLASH {
		p.nextToken()
		if p.curToken.Type == NUMBER {
			den, _ = strconv.Atoi(p.curToken.Literal)
			if den == 0 {
				return unit.Ratio{}, false, fmt.Errorf("%w: zero exponent denominator", ErrMalformedUnitString)
			}
			p.nextToken()
		} else {
			divides = true
		}
	}
	return unit.NewRatio(num, den), divides, nil
}

func (p *Parser) malformed(tok Token) error {
	if tok.Type == EOF {
		return fmt.Errorf("%w: unexpected end of expression", ErrMalformedUnitString)
	}
	return fmt.Errorf("%w: unexpected %q at position %d", ErrMalformedUnitString, tok.Literal, tok.Position)
}

// munchRun splits an identifier run like "kPa" or "Js" into catalog
// groups by maximal munch: the longest valid prefix+symbol combination
// wins, and a bare symbol beats a prefixed one of the same length.
func munchRun(run string, pos int) ([]group, error) {
	rs := []rune(run)
	maxLen := catalog.MaxSymbolLen() + 2 // longest prefix is two runes

	var groups []group
	for i := 0; i < len(rs); {
		rem := len(rs) - i
		limit := maxLen
		if rem < limit {
			limit = rem
		}

		matched := 0
		for l := limit; l > 0 && matched == 0; l-- {
			if e, ok := catalog.LookupSymbol(string(rs[i : i+l])); ok {
				groups = append(groups, group{entry: e, exp: unit.Int(1), pos: pos + i})
				matched = l
				break
			}
			for plen := 1; plen < l; plen++ {
				pf, ok := catalog.LookupPrefix(string(rs[i : i+plen]))
				if !ok {
					continue
				}
				e, ok := catalog.LookupSymbol(string(rs[i+plen : i+l]))
				if !ok {
					continue
				}
				groups = append(groups, group{prefixExp: pf.Exponent, entry: e, exp: unit.Int(1), pos: pos + i})
				matched = l
				break
			}
		}
		if matched == 0 {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownSymbol, string(rs[i:]), pos+i)
		}
		i += matched
	}
	return groups, nil
}

// combine folds resolved groups into the final vector and factor. Affine
// units are only legal alone, unprefixed, with exponent 1.
func combine(groups []group) (Result, error) {
	for _, g := range groups {
		if !g.entry.IsAffine() {
			continue
		}
		if len(groups) > 1 {
			return Result{}, fmt.Errorf("%w: %q cannot be combined with other units", ErrAffineUnitMisuse, g.entry.Symbol)
		}
		if g.prefixExp != 0 {
			return Result{}, fmt.Errorf("%w: %q cannot carry a prefix", ErrAffineUnitMisuse, g.entry.Symbol)
		}
		if g.exp != unit.Int(1) {
			return Result{}, fmt.Errorf("%w: %q cannot carry an exponent", ErrAffineUnitMisuse, g.entry.Symbol)
		}
		return Result{Vector: g.entry.Vector, Factor: g.entry.Factor, Offset: g.entry.Offset}, nil
	}

	vec := unit.Dimensionless
	factor := 1.0
	for _, g := range groups {
		vec = vec.Mul(g.entry.Vector.Scale(g.exp))
		e := float64(g.exp.Num()) / float64(g.exp.Den())
		factor *= math.Pow(g.entry.Factor, e)
		factor *= math.Pow(10, float64(g.prefixExp)*e)
	}
	return Result{Vector: vec, Factor: factor}, nil
}
