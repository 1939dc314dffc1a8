package calc

import (
	"bytes"
	"strings"
)

type Node interface {
	TokenLiteral() string
	String() string
}

type Expression interface {
	Node
	expressionNode()
}

type Identifier struct {
	Token Token // the IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

type IntegerLiteral struct {
	Token Token // the INT token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

type FloatLiteral struct {
	Token Token // the FLOAT token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// UnitExpression annotates a numeric literal with a unit string, as in
// "1.5 m^3" or `8.314 "J/mol/K"`.
type UnitExpression struct {
	Token Token // the unit token
	Value Expression
	Unit  string
}

func (ue *UnitExpression) expressionNode()      {}
func (ue *UnitExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnitExpression) String() string {
	var out bytes.Buffer
	if ue.Value != nil {
		out.WriteString(ue.Value.String())
	}
	out.WriteString(" ")
	out.WriteString(ue.Unit)
	return out.String()
}

type InfixExpression struct {
	Token    Token // the operator token, e.g. +, -, *, /, ^
	Left     Expression
	Operator string
	Right    Expression
}

func (oe *InfixExpression) expressionNode()      {}
func (oe *InfixExpression) TokenLiteral() string { return oe.Token.Literal }
func (oe *InfixExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	if oe.Left != nil {
		out.WriteString(oe.Left.String())
	}
	out.WriteString(" " + oe.Operator + " ")
	if oe.Right != nil {
		out.WriteString(oe.Right.String())
	}
	out.WriteString(")")
	return out.String()
}

type PrefixExpression struct {
	Token    Token // the prefix token, e.g. -
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(pe.Operator)
	if pe.Right != nil {
		out.WriteString(pe.Right.String())
	}
	out.WriteString(")")
	return out.String()
}

type CallExpression struct {
	Token     Token      // the '(' token
	Function  Expression // always an Identifier
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	var args []string
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}
	if ce.Function != nil {
		out.WriteString(ce.Function.String())
	}
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// CountNodes reports the size of an expression tree. The evaluator uses
// it to bound how much work a single evaluation may request.
func CountNodes(node Node) int {
	if node == nil {
		return 0
	}
	count := 1
	switch n := node.(type) {
	case *UnitExpression:
		count += CountNodes(n.Value)
	case *InfixExpression:
		count += CountNodes(n.Left)
		count += CountNodes(n.Right)
	case *PrefixExpression:
		count += CountNodes(n.Right)
	case *CallExpression:
		count += CountNodes(n.Function)
		for _, a := range n.Arguments {
			count += CountNodes(a)
		}
	}
	return count
}
