// Package calc is a small expression calculator over quantities: literals
// with unit annotations, catalog constants, the four arithmetic operators,
// integer powers and a handful of functions. It exists so hosts — the
// demo REPL and the dashboard — can evaluate user input without linking
// the engine API call by call.
package calc

import "unicode"

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT  // constant names and unit annotations
	INT    // integers
	FLOAT  // floating point numbers
	STRING // quoted unit annotations, e.g. "J/mol/K"

	// Operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
	CARET // ^

	// Delimiters
	COMMA  // ,
	LPAREN // (
	RPAREN // )
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

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Position = l.position

	switch l.ch {
	case '+':
		tok = Token{Type: PLUS, Literal: "+", Position: l.position}
	case '-':
		tok = Token{Type: MINUS, Literal: "-", Position: l.position}
	case '*', '·':
		tok = Token{Type: STAR, Literal: string(l.ch), Position: l.position}
	case '/':
		tok = Token{Type: SLASH, Literal: "/", Position: l.position}
	case '^':
		tok = Token{Type: CARET, Literal: "^", Position: l.position}
	case ',':
		tok = Token{Type: COMMA, Literal: ",", Position: l.position}
	case '(':
		tok = Token{Type: LPAREN, Literal: "(", Position: l.position}
	case ')':
		tok = Token{Type: RPAREN, Literal: ")", Position: l.position}
	case '"':
		tok.Type = STRING
		tok.Literal = l.readString()
	case 0:
		tok.Literal = ""
		tok.Type = EOF
	default:
		if isIdentStart(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = IDENT
			return tok
		} else if isDigit(l.ch) {
			tok.Type, tok.Literal = l.readNumber()
			return tok
		}
		tok = Token{Type: ILLEGAL, Literal: string(l.ch), Position: l.position}
	}

	l.readChar()
	return tok
}

// readIdentifier reads a maximal unit-ish run. Unit annotations carry
// structure of their own ("m^3", "J/mol/K", "m²"), so the run keeps
// going over '/', '*' and '^' when they glue two symbol parts together
// with no whitespace; the run as a whole is resolved later.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for {
		switch {
		case isIdentRune(l.ch):
			l.readChar()
		case (l.ch == '/' || l.ch == '*' || l.ch == '·') && isIdentStart(l.peekChar()):
			l.readChar()
		case l.ch == '^' && (isDigit(l.peekChar()) || l.peekChar() == '-'):
			l.readChar()
			if l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		default:
			return string(l.input[position:l.position])
		}
	}
}

func (l *Lexer) readNumber() (TokenType, string) {
	position := l.position
	tokenType := INT

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '-' || next == '+' {
			tokenType = FLOAT
			l.readChar()
			if l.ch == '-' || l.ch == '+' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return tokenType, string(l.input[position:l.position])
}

func (l *Lexer) readString() string {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
	}
	return string(l.input[position:l.position])
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isIdentStart(ch rune) bool {
	return (unicode.IsLetter(ch) || ch == '°') && ch != '²' && ch != '³'
}

func isIdentRune(ch rune) bool {
	return isIdentStart(ch) || ch == '²' || ch == '³' || ch == '_'
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
	case IDENT:
		return "IDENT"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case STRING:
		return "STRING"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case CARET:
		return "^"
	case COMMA:
		return ","
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	default:
		return "UNKNOWN"
	}
}
