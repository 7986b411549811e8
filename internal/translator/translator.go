// Package translator implements the IR translator of spec §4.4: a
// recursive, single-pass lowering from internal/ast to internal/codegen's
// IR, threading the element-type adapter, a variable table, and a lazy
// external-function table.
package translator

import (
	"fmt"

	"github.com/arithjit/anita/internal/ast"
	"github.com/arithjit/anita/internal/codegen"
	"github.com/arithjit/anita/internal/errors"
	"github.com/arithjit/anita/internal/numeric"
	"github.com/arithjit/anita/internal/registry"
)

// InbuiltPow is the reserved name of the exponentiation helper the JIT
// driver always preregisters (spec §4.4 "Exp is lowered as a call to the
// reserved inbuilt_pow helper").
const InbuiltPow = "inbuilt_pow"

// Translator walks one AST once, emitting IR into b.
type Translator[T numeric.Numeric] struct {
	adapter numeric.ElementType[T]
	module  codegen.Module[T]
	reg     registry.Registry[T]
	b       *codegen.FunctionBuilder[T]
	funcs   map[string]codegen.FuncRef[T]
}

// New creates a Translator over an already-prepared FunctionBuilder whose
// entry block's parameters are bound to the declared formals (spec §4.4).
func New[T numeric.Numeric](adapter numeric.ElementType[T], module codegen.Module[T], reg registry.Registry[T], b *codegen.FunctionBuilder[T]) *Translator[T] {
	return &Translator[T]{
		adapter: adapter,
		module:  module,
		reg:     reg,
		b:       b,
		funcs:   make(map[string]codegen.FuncRef[T]),
	}
}

// Translate lowers e, returning its value and true, or false if e is a
// value-less construct (only *ast.Assign).
func (t *Translator[T]) Translate(e ast.Expression) (codegen.Value[T], bool, error) {
	switch n := e.(type) {
	case *ast.VariableRead:
		return t.b.UseLocal(n.Name), true, nil

	case *ast.Const:
		return t.b.ConstFloat(t.adapter.Const(n.Value)), true, nil

	case *ast.Chain:
		if _, _, err := t.translateDiscard(n.Side); err != nil {
			return codegen.Value[T]{}, false, err
		}
		ret, err := t.TranslateValue(n.Ret)
		if err != nil {
			return codegen.Value[T]{}, false, err
		}
		return ret, true, nil

	case *ast.Call:
		return t.translateCall(n)

	case *ast.BinaryExpr:
		return t.translateBinary(n)

	case *ast.UnaryExpr:
		return t.translateUnary(n)

	case *ast.Assign:
		v, err := t.TranslateValue(n.Value)
		if err != nil {
			return codegen.Value[T]{}, false, err
		}
		t.b.DefineLocal(n.Name, v)
		return codegen.Value[T]{}, false, nil
	}
	return codegen.Value[T]{}, false, fmt.Errorf("translator: unhandled ast node %T", e)
}

// translateDiscard runs Translate purely for side effects; the result (if
// any) is ignored, matching Chain's "side is evaluated for its side
// effects; its value, if any, is discarded" (spec §4.4).
func (t *Translator[T]) translateDiscard(e ast.Expression) (codegen.Value[T], bool, error) {
	return t.Translate(e)
}

// TranslateValue requires e to produce a value, failing with
// ExpressionEvaluatesToNoValue otherwise (spec §4.4).
func (t *Translator[T]) TranslateValue(e ast.Expression) (codegen.Value[T], error) {
	v, ok, err := t.Translate(e)
	if err != nil {
		return codegen.Value[T]{}, err
	}
	if !ok {
		return codegen.Value[T]{}, &errors.ExpressionEvaluatesToNoValue{Expr: e.String()}
	}
	return v, nil
}

func (t *Translator[T]) translateBinary(n *ast.BinaryExpr) (codegen.Value[T], bool, error) {
	left, err := t.TranslateValue(n.Left)
	if err != nil {
		return codegen.Value[T]{}, false, err
	}
	right, err := t.TranslateValue(n.Right)
	if err != nil {
		return codegen.Value[T]{}, false, err
	}

	if n.Op == ast.Exp {
		ref, err := t.resolveFunc(InbuiltPow)
		if err != nil {
			return codegen.Value[T]{}, false, err
		}
		return t.b.Call(ref, []codegen.Value[T]{left, right}), true, nil
	}

	var op func(a, b T) T
	switch n.Op {
	case ast.Add:
		op = t.adapter.Add
	case ast.Sub:
		op = t.adapter.Sub
	case ast.Mul:
		op = t.adapter.Mul
	case ast.Div:
		op = t.adapter.Div
	case ast.Mod:
		op = t.adapter.Mod
	case ast.Eq:
		op = t.adapter.Eq
	case ast.Neq:
		op = t.adapter.Neq
	case ast.Gt:
		op = t.adapter.Gt
	case ast.Lt:
		op = t.adapter.Lt
	case ast.Geq:
		op = t.adapter.Geq
	case ast.Leq:
		op = t.adapter.Leq
	case ast.And:
		op = t.adapter.And
	case ast.Or:
		op = t.adapter.Or
	default:
		return codegen.Value[T]{}, false, fmt.Errorf("translator: unhandled binary op %v", n.Op)
	}
	return t.b.Binary(left, right, op), true, nil
}

func (t *Translator[T]) translateUnary(n *ast.UnaryExpr) (codegen.Value[T], bool, error) {
	operand, err := t.TranslateValue(n.Operand)
	if err != nil {
		return codegen.Value[T]{}, false, err
	}
	var op func(T) T
	switch n.Op {
	case ast.Neg:
		op = t.adapter.Neg
	case ast.Not:
		op = t.adapter.Not
	default:
		return codegen.Value[T]{}, false, fmt.Errorf("translator: unhandled unary op %v", n.Op)
	}
	return t.b.Unary(operand, op), true, nil
}

func (t *Translator[T]) translateCall(n *ast.Call) (codegen.Value[T], bool, error) {
	args := make([]codegen.Value[T], len(n.Args))
	for i, a := range n.Args {
		v, err := t.TranslateValue(a)
		if err != nil {
			return codegen.Value[T]{}, false, err
		}
		args[i] = v
	}
	ref, err := t.resolveFunc(n.Name)
	if err != nil {
		return codegen.Value[T]{}, false, err
	}
	return t.b.Call(ref, args), true, nil
}

// Preimport resolves and caches name without emitting any call, so later
// translation of an expression that may or may not use name (e.g. the
// inbuilt_pow helper, eagerly declared at compile start per spec §4.5 step
// 4) does not pay a first-use resolution cost mid-expression.
func (t *Translator[T]) Preimport(name string) error {
	_, err := t.resolveFunc(name)
	return err
}

// resolveFunc implements spec §4.4's lazy function symbol table lookup:
// reuse if cached, else ask the registry for a signature; on a registry
// miss, fall back to a symbol the module already knows (such as
// inbuilt_pow), else FunctionNotFound; then declare as an imported symbol
// and cache.
func (t *Translator[T]) resolveFunc(name string) (codegen.FuncRef[T], error) {
	if ref, ok := t.funcs[name]; ok {
		return ref, nil
	}

	if _, ok := t.reg.FunctionSignature(name, registry.Default); !ok {
		if ref, ok := t.module.DeclareFuncInFunc(name); ok {
			t.funcs[name] = ref
			return ref, nil
		}
		return codegen.FuncRef[T]{}, &errors.FunctionNotFound{Name: name}
	}

	ref, ok := t.module.DeclareFuncInFunc(name)
	if !ok {
		return codegen.FuncRef[T]{}, &errors.FunctionNotFound{Name: name}
	}
	t.funcs[name] = ref
	return ref, nil
}
