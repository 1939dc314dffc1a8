// Package parser turns unit expressions like "kPa", "J/mol/K" or "kg m^-2"
// back into an exponent vector and conversion factor, resolving symbols and
// prefixes against the catalog.
package parser

import "unicode"

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	SYMBOL // identifier run, e.g. "kPa", "mol", "Js"
	NUMBER // unsigned integer, only meaningful inside exponents

	// Operators
	CARET // ^
	STAR  // * or ·
	SLASH // /
	MINUS // -
	SUPER // superscript ² or ³
)

type Token struct {
	Type     TokenType
	Literal  string
	Position int
}

type Lexer struct {
	input        []rune
	position     int  // current position in input (points to current rune)
	readPosition int  // current reading position in input (after current rune)
	ch           rune // current rune under examination
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: []rune(input)}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Position = l.position

	switch l.ch {
	case '^':
		tok = Token{Type: CARET, Literal: "^", Position: l.position}
	case '*', '·':
		tok = Token{Type: STAR, Literal: string(l.ch), Position: l.position}
	case '/':
		tok = Token{Type: SLASH, Literal: "/", Position: l.position}
	case '-':
		tok = Token{Type: MINUS, Literal: "-", Position: l.position}
	case '²':
		tok = Token{Type: SUPER, Literal: "2", Position: l.position}
	case '³':
		tok = Token{Type: SUPER, Literal: "3", Position: l.position}
	case 0:
		tok.Literal = ""
		tok.Type = EOF
	default:
		if isSymbolRune(l.ch) {
			tok.Literal = l.readSymbol()
			tok.Type = SYMBOL
			return tok
		} else if isDigit(l.ch) {
			tok.Literal = l.readNumber()
			tok.Type = NUMBER
			return tok
		}
		tok = Token{Type: ILLEGAL, Literal: string(l.ch), Position: l.position}
	}

	l.readChar()
	return tok
}

func (l *Lexer) readSymbol() string {
	position := l.position
	for isSymbolRune(l.ch) {
		l.readChar()
	}
	return string(l.input[position:l.position])
}

func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[position:l.position])
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// isSymbolRune accepts everything a unit symbol may contain. The degree
// sign is not a letter in Unicode but appears in "°C".
func isSymbolRune(ch rune) bool {
	if ch == '²' || ch == '³' {
		return false
	}
	return unicode.IsLetter(ch) || ch == '°'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (t TokenType) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case SYMBOL:
		return "SYMBOL"
	case NUMBER:
		return "NUMBER"
	case CARET:
		return "^"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case MINUS:
		return "-"
	case SUPER:
		return "SUPER"
	default:
		return "UNKNOWN"
	}
}
