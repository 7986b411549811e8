// Package jit is the public compile surface: the JIT driver (spec §4.5),
// the artifact handle (spec §4.6), and the convenience builder (spec §6.3)
// that together turn an expression string and a parameter list into a
// callable, natively-typed function pointer.
package jit

import (
	"fmt"
	"io"
	"runtime"

	"github.com/arithjit/anita/internal/codegen"
	ierrors "github.com/arithjit/anita/internal/errors"
	"github.com/arithjit/anita/internal/numeric"
	"github.com/arithjit/anita/internal/parser"
	"github.com/arithjit/anita/internal/registry"
	"github.com/arithjit/anita/internal/scope"
	"github.com/arithjit/anita/internal/translator"
)

// defaultExportName is the fixed export name the driver declares the
// compiled function under (spec §4.5 step 7).
const defaultExportName = "expression"

// supportedArches stands in for the host-ISA detector of spec §4.5 step 2.
// This module's backend (internal/codegen.SoftISA) is pure Go and does not
// actually depend on the host instruction set, but the driver still
// performs — and can fail fatally on — the detection step the spec
// requires, so a caller porting this driver onto a real native backend has
// the same construction-time contract to rely on.
var supportedArches = map[string]bool{"amd64": true, "arm64": true, "386": true, "arm": true}

// Option configures a JIT at construction time, in the style of the
// teacher lexer's functional options.
type Option[T numeric.Numeric] func(*JIT[T])

// WithRegistry supplies the function-registry collaborator (spec §6.2).
// The default is an empty registry.
func WithRegistry[T numeric.Numeric](reg registry.Registry[T]) Option[T] {
	return func(j *JIT[T]) { j.registry = reg }
}

// WithExportName overrides the fixed export name functions are declared
// under (default "expression").
func WithExportName[T numeric.Numeric](name string) Option[T] {
	return func(j *JIT[T]) { j.exportName = name }
}

// WithTrace enables compile tracing to w (disabled by default).
func WithTrace[T numeric.Numeric](w io.Writer) Option[T] {
	return func(j *JIT[T]) { j.trace = w }
}

// JIT is one compile request's driver. Per spec §4.5/§9, it owns no global
// mutable state beyond its preregistered symbol set; in practice only one
// Compile call is made per instance.
type JIT[T numeric.Numeric] struct {
	adapter    numeric.ElementType[T]
	registry   registry.Registry[T]
	exportName string
	trace      io.Writer
	module     codegen.Module[T]
}

// New constructs a JIT specialized to element type T via adapter. Per spec
// §4.5 step 2, an unsupported host ISA is a fatal programmer error: New
// panics rather than returning an error.
func New[T numeric.Numeric](adapter numeric.ElementType[T], opts ...Option[T]) *JIT[T] {
	if !supportedArches[runtime.GOARCH] {
		panic(fmt.Sprintf("jit: unsupported host architecture %q", runtime.GOARCH))
	}

	j := &JIT[T]{
		adapter:    adapter,
		registry:   registry.Empty[T](),
		exportName: defaultExportName,
	}
	for _, opt := range opts {
		opt(j)
	}

	j.module = codegen.NewSoftISA[T]()
	// Step 4: iterate the registry's symbols and register each as resolvable.
	for _, sym := range j.registry.FunctionSymbols() {
		fn, ok := j.registry.Resolve(sym.Name)
		if !ok {
			continue
		}
		j.module.RegisterSymbol(sym.Name, fn)
	}
	// Step 3: preregister inbuilt_pow with the adapter's implementation,
	// after the caller's registry so a user entry of the same name cannot
	// shadow it (per original_source/anita_core/src/function_manager.rs).
	j.module.RegisterSymbol(translator.InbuiltPow, func(args []T) T {
		return adapter.Pow(args[0], args[1])
	})
	return j
}

func (j *JIT[T]) logf(format string, args ...any) {
	if j.trace != nil {
		fmt.Fprintf(j.trace, format+"\n", args...)
	}
}

// Compile implements spec §4.5's compile operation, returning the raw
// compiled callable (the closure-backend equivalent of a native code
// pointer — see internal/codegen's DESIGN.md entry).
func (j *JIT[T]) Compile(expression string, parameters []string) (func(args []T) T, error) {
	j.logf("compiling %q with params %v", expression, parameters)

	// Step 1: parse.
	root, err := parser.New(expression).Parse()
	if err != nil {
		return nil, err
	}

	// Step 2/3: extend the signature, create the builder, bind formals.
	sig := codegen.Signature{ParamCount: len(parameters)}
	b := codegen.NewFunctionBuilder[T](len(parameters))
	formalSet := make(map[string]struct{}, len(parameters))
	for i, name := range parameters {
		param := b.Param(i)
		b.DeclareLocal(name, &param)
		formalSet[name] = struct{}{}
	}

	if err := scope.CheckUninitialized(root, parameters); err != nil {
		return nil, err
	}

	// Declare remaining locals (assignment targets not already formals),
	// zero-initialized so a read that syntactically precedes its defining
	// assignment (legal per spec §4.2's order-insensitive scope check)
	// observes 0 rather than panicking — see DESIGN.md.
	zero := b.ConstFloat(j.adapter.Const(0))
	for _, name := range scope.Locals(root) {
		if _, isFormal := formalSet[name]; isFormal {
			continue
		}
		b.DeclareLocal(name, &zero)
	}

	// Step 4: declare the inbuilt_pow import eagerly.
	tr := translator.New[T](j.adapter, j.module, j.registry, b)
	if err := tr.Preimport(translator.InbuiltPow); err != nil {
		return nil, &ierrors.ModuleError{Err: err}
	}

	// Step 5: translate the root.
	value, hasValue, err := tr.Translate(root)
	if err != nil {
		return nil, err
	}
	if !hasValue {
		return nil, &ierrors.RootEvaluatesInNoValue{}
	}

	// Step 6: emit return, finalize the builder.
	b.Return(value)

	// Step 7: declare under the fixed export name, define, finalize.
	id, err := j.module.DeclareFunction(j.exportName, codegen.LinkageExport, sig)
	if err != nil {
		return nil, &ierrors.ModuleError{Err: err}
	}
	if err := j.module.DefineFunction(id, b); err != nil {
		return nil, &ierrors.ModuleError{Err: err}
	}
	if err := j.module.FinalizeDefinitions(); err != nil {
		return nil, &ierrors.ModuleError{Err: err}
	}

	// Step 8: return the finalized function.
	fn, err := j.module.GetFinalizedFunction(id)
	if err != nil {
		return nil, &ierrors.ModuleError{Err: err}
	}
	return fn, nil
}

// Dissolve hands over ownership of the finalized module to the caller
// (spec §4.5: "the driver provides a dissolve operation that hands over
// ownership of the finalized module"). Must be called at most once, after
// a successful Compile.
func (j *JIT[T]) Dissolve() codegen.Module[T] {
	mod := j.module
	j.module = nil
	return mod
}
