// Package ast defines the expression language's abstract syntax tree.
package ast

import (
	"strconv"
	"strings"

	"github.com/arithjit/anita/internal/lexer"
)

// Node is the base interface every AST node implements.
type Node interface {
	Pos() lexer.Position
	String() string
}

// Expression is any node that produces a value when lowered (Assign is the
// one variant that does not, but it is still an Expression so it can occur
// as the "side" half of a Chain).
type Expression interface {
	Node
	expressionNode()
}

// VariableRead reads the current value of a formal or assigned local.
type VariableRead struct {
	Token lexer.Token
	Name  string
}

func (n *VariableRead) expressionNode()     {}
func (n *VariableRead) Pos() lexer.Position { return n.Token.Pos }
func (n *VariableRead) String() string      { return n.Name }

// Const is a 32-bit float literal. Values are always non-negative; a
// leading "-" in source is parsed as unary Neg over a Const, per spec §4.1's
// grammar placing unary "-" at precedence level 7.
type Const struct {
	Token lexer.Token
	Value float32
}

func (n *Const) expressionNode()     {}
func (n *Const) Pos() lexer.Position { return n.Token.Pos }
func (n *Const) String() string      { return strconv.FormatFloat(float64(n.Value), 'g', -1, 32) }

// Chain sequences Side (evaluated for effect only, value discarded) then
// Ret (whose value is the Chain's value).
type Chain struct {
	Token lexer.Token
	Side  Expression
	Ret   Expression
}

func (n *Chain) expressionNode()     {}
func (n *Chain) Pos() lexer.Position { return n.Token.Pos }
func (n *Chain) String() string      { return n.Side.String() + "; " + n.Ret.String() }

// Call invokes an external helper function by name.
type Call struct {
	Token lexer.Token
	Name  string
	Args  []Expression
}

func (n *Call) expressionNode()     {}
func (n *Call) Pos() lexer.Position { return n.Token.Pos }
func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}

// BinaryOp enumerates the binary operators of spec §3.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Exp
	Eq
	Neq
	Gt
	Lt
	Geq
	Leq
	And
	Or
)

var binaryOpSymbols = map[BinaryOp]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Exp: "^",
	Eq: "==", Neq: "!=", Gt: ">", Lt: "<", Geq: ">=", Leq: "<=",
	And: "&&", Or: "||",
}

func (op BinaryOp) String() string { return binaryOpSymbols[op] }

// BinaryExpr is one of Add/Sub/Mul/Div/Mod/Exp/Eq/Neq/Gt/Lt/Geq/Leq/And/Or.
type BinaryExpr struct {
	Token lexer.Token
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (n *BinaryExpr) expressionNode()     {}
func (n *BinaryExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

// UnaryOp enumerates the unary operators of spec §3.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

func (op UnaryOp) String() string {
	if op == Not {
		return "!"
	}
	return "-"
}

// UnaryExpr is Neg or Not applied to Operand.
type UnaryExpr struct {
	Token   lexer.Token
	Op      UnaryOp
	Operand Expression
}

func (n *UnaryExpr) expressionNode()     {}
func (n *UnaryExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *UnaryExpr) String() string      { return n.Op.String() + n.Operand.String() }

// Assign evaluates Value and binds it to Name. It produces no value; per
// the spec §9 Open Question this module resolves "no value" (sequencing via
// Chain/";" is required to use the assigned value afterward).
type Assign struct {
	Token lexer.Token
	Name  string
	Value Expression
}

func (n *Assign) expressionNode()     {}
func (n *Assign) Pos() lexer.Position { return n.Token.Pos }
func (n *Assign) String() string      { return n.Name + " = " + n.Value.String() }
