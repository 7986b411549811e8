// Package errors defines the flat error taxonomy callers of this module's
// JIT can distinguish by type (spec §7), plus source-context formatting in
// the style of the teacher's CompilerError.
package errors

import (
	"fmt"
	"strings"

	"github.com/arithjit/anita/internal/lexer"
)

// ParseError is returned by the parser; it has no side effects on the
// caller-visible state.
type ParseError struct {
	Pos      lexer.Position
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: expected %s", e.Pos.Line, e.Pos.Column, e.Expected)
}

// Format renders the error with a caret pointing at the offending column,
// in the style of the teacher's CompilerError.Format.
func (e *ParseError) Format(source string) string {
	return formatWithCaret(source, e.Pos, e.Error())
}

// UseOfUninitializedVariables is the scope-check failure of spec §4.2: every
// identifier read but never assigned and not a formal.
type UseOfUninitializedVariables struct {
	Names []string
}

func (e *UseOfUninitializedVariables) Error() string {
	return fmt.Sprintf("use of uninitialized variable(s): %s", strings.Join(e.Names, ", "))
}

// RootEvaluatesInNoValue is returned when the root expression is a bare
// assignment or other value-less construct.
type RootEvaluatesInNoValue struct{}

func (e *RootEvaluatesInNoValue) Error() string {
	return "root expression evaluates to no value"
}

// ExpressionEvaluatesToNoValue is returned when a non-root context required
// a value (a binary operand, a call argument, the ret side of a Chain) and
// the sub-expression produced none.
type ExpressionEvaluatesToNoValue struct {
	Expr string
}

func (e *ExpressionEvaluatesToNoValue) Error() string {
	return fmt.Sprintf("expression evaluates to no value: %s", e.Expr)
}

// FunctionNotFound is returned when a call targets a name the registry does
// not know.
type FunctionNotFound struct {
	Name string
}

func (e *FunctionNotFound) Error() string {
	return fmt.Sprintf("function not found: %s", e.Name)
}

// ModuleError wraps a failure from the code-generator collaborator (§6.1):
// declaration/definition failures, symbol name clashes. Unrecoverable
// within this API.
type ModuleError struct {
	Err error
}

func (e *ModuleError) Error() string { return fmt.Sprintf("module error: %s", e.Err) }
func (e *ModuleError) Unwrap() error { return e.Err }

func formatWithCaret(source string, pos lexer.Position, message string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "error at line %d, column %d\n", pos.Line, pos.Column)

	lines := strings.Split(source, "\n")
	if pos.Line >= 1 && pos.Line <= len(lines) {
		line := lines[pos.Line-1]
		prefix := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString("^\n")
	}
	sb.WriteString(message)
	return sb.String()
}
