package registry

import "testing"

func TestEmptyRegistryNeverResolves(t *testing.T) {
	r := Empty[float32]()
	if syms := r.FunctionSymbols(); len(syms) != 0 {
		t.Fatalf("FunctionSymbols() = %v, want empty", syms)
	}
	if _, ok := r.Resolve("anything"); ok {
		t.Fatal("Resolve(\"anything\") = true, want false")
	}
}

func TestRegistryResolveAndSignature(t *testing.T) {
	r := New[float32](Entry[float32]{
		Name:  "double",
		Arity: 1,
		Fn:    func(args []float32) float32 { return args[0] * 2 },
	})

	fn, ok := r.Resolve("double")
	if !ok {
		t.Fatal("Resolve(\"double\") = false, want true")
	}
	if got := fn([]float32{3}); got != 6 {
		t.Fatalf("fn([3]) = %v, want 6", got)
	}

	sig, ok := r.FunctionSignature("double", Default)
	if !ok || sig.ParamCount != 1 {
		t.Fatalf("FunctionSignature = %+v, %v", sig, ok)
	}
}

func TestRegistryFunctionSymbolsPreservesInsertionOrder(t *testing.T) {
	r := New[float32](
		Entry[float32]{Name: "a", Arity: 0, Fn: func([]float32) float32 { return 0 }},
		Entry[float32]{Name: "b", Arity: 0, Fn: func([]float32) float32 { return 0 }},
	)
	syms := r.FunctionSymbols()
	if len(syms) != 2 || syms[0].Name != "a" || syms[1].Name != "b" {
		t.Fatalf("got %v", syms)
	}
}

func TestRegistryDuplicateNameKeepsLastEntryOnce(t *testing.T) {
	r := New[float32](
		Entry[float32]{Name: "a", Arity: 0, Fn: func([]float32) float32 { return 1 }},
		Entry[float32]{Name: "a", Arity: 0, Fn: func([]float32) float32 { return 2 }},
	)
	syms := r.FunctionSymbols()
	if len(syms) != 1 {
		t.Fatalf("got %d symbols, want 1", len(syms))
	}
	fn, _ := r.Resolve("a")
	if got := fn(nil); got != 2 {
		t.Fatalf("fn(nil) = %v, want 2 (last entry wins)", got)
	}
}
