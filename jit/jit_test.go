package jit_test

import (
	"errors"
	"testing"

	ierrors "github.com/arithjit/anita/internal/errors"
	"github.com/arithjit/anita/internal/numeric"
	"github.com/arithjit/anita/internal/registry"
	"github.com/arithjit/anita/jit"
)

func TestCompileArithmetic(t *testing.T) {
	h, err := jit.Compile[float32, func(float32, float32) float32](numeric.Scalar{}, "x + y * 2", []string{"x", "y"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer h.Release()

	fn := h.Func()
	if got := fn(1, 2); got != 5 {
		t.Fatalf("fn(1, 2) = %v, want 5", got)
	}
}

func TestCompileAssignAndChain(t *testing.T) {
	h, err := jit.Compile[float32, func(float32) float32](numeric.Scalar{}, "y = x * x; y + 1", []string{"x"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer h.Release()

	if got := h.Func()(3); got != 10 {
		t.Fatalf("fn(3) = %v, want 10", got)
	}
}

func TestCompileExponentiation(t *testing.T) {
	h, err := jit.Compile[float32, func(float32) float32](numeric.Scalar{}, "x ^ 3", []string{"x"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer h.Release()

	if got := h.Func()(2); got != 8 {
		t.Fatalf("fn(2) = %v, want 8", got)
	}
}

func TestCompileUninitializedVariable(t *testing.T) {
	_, err := jit.Compile[float32, func(float32) float32](numeric.Scalar{}, "x + y", []string{"x"})
	var target *ierrors.UseOfUninitializedVariables
	if !errors.As(err, &target) {
		t.Fatalf("Compile error = %v, want *errors.UseOfUninitializedVariables", err)
	}
}

func TestCompileRootEvaluatesInNoValue(t *testing.T) {
	_, err := jit.Compile[float32, func(float32) float32](numeric.Scalar{}, "x = 1", []string{"x"})
	var target *ierrors.RootEvaluatesInNoValue
	if !errors.As(err, &target) {
		t.Fatalf("Compile error = %v, want *errors.RootEvaluatesInNoValue", err)
	}
}

func TestCompileFunctionNotFound(t *testing.T) {
	_, err := jit.Compile[float32, func(float32) float32](numeric.Scalar{}, "missing(x)", []string{"x"})
	var target *ierrors.FunctionNotFound
	if !errors.As(err, &target) {
		t.Fatalf("Compile error = %v, want *errors.FunctionNotFound", err)
	}
}

func TestCompileWithRegistry(t *testing.T) {
	reg := registry.New[float32](registry.Entry[float32]{
		Name:  "double",
		Arity: 1,
		Fn:    func(args []float32) float32 { return args[0] * 2 },
	})

	h, err := jit.Compile[float32, func(float32) float32](numeric.Scalar{}, "double(x) + 1", []string{"x"}, jit.WithRegistry[float32](reg))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer h.Release()

	if got := h.Func()(4); got != 9 {
		t.Fatalf("fn(4) = %v, want 9", got)
	}
}

func TestCompileVectorElementType(t *testing.T) {
	h, err := jit.Compile[[4]float32, func([4]float32) [4]float32](numeric.Vector4{}, "x + x", []string{"x"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer h.Release()

	got := h.Func()([4]float32{1, 2, 3, 4})
	want := [4]float32{2, 4, 6, 8}
	if got != want {
		t.Fatalf("fn(...) = %v, want %v", got, want)
	}
}

func TestHandleReleaseIdempotent(t *testing.T) {
	h, err := jit.Compile[float32, func(float32) float32](numeric.Scalar{}, "x", []string{"x"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	h.Release()
	h.Release()
}

func TestJITMultipleOptions(t *testing.T) {
	j := jit.New[float32](numeric.Scalar{}, jit.WithExportName[float32]("custom"))
	fn, err := j.Compile("x * 2", []string{"x"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer j.Dissolve().FreeMemory()

	if got := fn([]float32{5}); got != 10 {
		t.Fatalf("fn([5]) = %v, want 10", got)
	}
}
