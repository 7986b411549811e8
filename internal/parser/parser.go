// Package parser implements the Pratt (precedence-climbing) parser of
// spec §4.1, producing an internal/ast tree.
package parser

import (
	"fmt"
	"strconv"

	"github.com/arithjit/anita/internal/ast"
	"github.com/arithjit/anita/internal/errors"
	"github.com/arithjit/anita/internal/lexer"
)

// Precedence levels, lowest to highest, mirroring spec §4.1's grammar table.
const (
	_ int = iota
	lowest
	assignment // ident = expr (level 2, right-associative)
	logical    // && || (level 3)
	comparison // == != > >= < <= (level 4)
	additive   // + - (level 5)
	multiplicative // * / % ^ (level 6)
	prefix         // ! unary - (level 7)
	call           // ( ... ) grouping/call (level 8)
)

var precedences = map[lexer.TokenType]int{
	lexer.AND_AND: logical,
	lexer.OR_OR:   logical,
	lexer.EQ:      comparison,
	lexer.NEQ:     comparison,
	lexer.GT:      comparison,
	lexer.GEQ:     comparison,
	lexer.LT:      comparison,
	lexer.LEQ:     comparison,
	lexer.PLUS:    additive,
	lexer.MINUS:   additive,
	lexer.STAR:    multiplicative,
	lexer.SLASH:   multiplicative,
	lexer.PCT:     multiplicative,
	lexer.CARET:   multiplicative,
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS:    ast.Add,
	lexer.MINUS:   ast.Sub,
	lexer.STAR:    ast.Mul,
	lexer.SLASH:   ast.Div,
	lexer.PCT:     ast.Mod,
	lexer.CARET:   ast.Exp,
	lexer.EQ:      ast.Eq,
	lexer.NEQ:     ast.Neq,
	lexer.GT:      ast.Gt,
	lexer.LT:      ast.Lt,
	lexer.GEQ:     ast.Geq,
	lexer.LEQ:     ast.Leq,
	lexer.AND_AND: ast.And,
	lexer.OR_OR:   ast.Or,
}

// Parser is a single-use, hand-written Pratt parser over a token stream.
type Parser struct {
	l         *lexer.Lexer
	cur, peek lexer.Token
}

// New creates a Parser over source.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

// Parse parses the full expression grammar: a top-level ";"-separated
// sequence (level 1), lowering to nested ast.Chain nodes, and requires the
// input to be fully consumed.
func (p *Parser) Parse() (ast.Expression, error) {
	if p.cur.Type == lexer.EOF {
		return nil, &errors.ParseError{Pos: p.cur.Pos, Expected: "an expression"}
	}

	expr, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.EOF {
		return nil, &errors.ParseError{
			Pos:      p.cur.Pos,
			Expected: fmt.Sprintf("end of input, got %q", p.cur.Literal),
		}
	}
	return expr, nil
}

// parseSequence handles ";" (level 1), right-nesting into Chain.
func (p *Parser) parseSequence() (ast.Expression, error) {
	first, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.SEMI {
		return first, nil
	}
	tok := p.cur
	p.next()
	if p.cur.Type == lexer.EOF {
		// Trailing ";" with nothing after: rest of the chain has no value;
		// Ret must have one (spec §3 invariant) — surface as a parse error
		// rather than a translator-time RootEvaluatesInNoValue, since the
		// grammar itself requires a ret expression after ";".
		return nil, &errors.ParseError{Pos: p.cur.Pos, Expected: "an expression after ';'"}
	}
	rest, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	return &ast.Chain{Token: tok, Side: first, Ret: rest}, nil
}

// parseAssignment handles "ident = expr" (level 2, right-associative),
// falling through to logical-or-and-below for everything else.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	if p.cur.Type == lexer.IDENT && p.peek.Type == lexer.ASSIGN {
		nameTok := p.cur
		p.next() // consume ident
		tok := p.cur
		p.next() // consume "="
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Token: tok, Name: nameTok.Literal, Value: value}, nil
	}
	return p.parseBinary(lowest)
}

// parseBinary implements precedence-climbing for levels 3-6. Every operator
// is left-associative except "^" (spec §4.1), which recurses at prec-1 so
// same-precedence exponentiations nest into the right operand instead of
// being picked up again by this loop.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := precedences[p.cur.Type]
		if !ok || prec <= minPrec {
			return left, nil
		}
		opTok := p.cur
		op := binaryOps[opTok.Type]
		p.next()
		nextMin := prec
		if op == ast.Exp {
			nextMin = prec - 1
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Token: opTok, Op: op, Left: left, Right: right}
	}
}

// parseUnary handles "!" and unary "-" (level 7, prefix, right-associative).
func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.BANG:
		tok := p.cur
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: tok, Op: ast.Not, Operand: operand}, nil
	case lexer.MINUS:
		tok := p.cur
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: tok, Op: ast.Neg, Operand: operand}, nil
	default:
		return p.parsePrimary()
	}
}

// parsePrimary handles level 8: grouping, call, variable read, literal.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.NUMBER:
		tok := p.cur
		v, err := parseFloat32(tok.Literal)
		if err != nil {
			return nil, &errors.ParseError{Pos: tok.Pos, Expected: "a numeric literal"}
		}
		p.next()
		return &ast.Const{Token: tok, Value: v}, nil

	case lexer.IDENT:
		tok := p.cur
		p.next()
		if p.cur.Type != lexer.LPAREN {
			return &ast.VariableRead{Token: tok, Name: tok.Literal}, nil
		}
		p.next() // consume "("
		var args []ast.Expression
		if p.cur.Type != lexer.RPAREN {
			for {
				arg, err := p.parseAssignment()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.cur.Type != lexer.COMMA {
					break
				}
				p.next()
			}
		}
		if p.cur.Type != lexer.RPAREN {
			return nil, &errors.ParseError{Pos: p.cur.Pos, Expected: "')' to close call arguments"}
		}
		p.next()
		return &ast.Call{Token: tok, Name: tok.Literal, Args: args}, nil

	case lexer.LPAREN:
		p.next()
		inner, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != lexer.RPAREN {
			return nil, &errors.ParseError{Pos: p.cur.Pos, Expected: "')' to close group"}
		}
		p.next()
		return inner, nil

	default:
		return nil, &errors.ParseError{
			Pos:      p.cur.Pos,
			Expected: fmt.Sprintf("an expression, got %q", p.cur.Literal),
		}
	}
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}
