package codegen

import "testing"

func TestFunctionBuilderParamsAndReturn(t *testing.T) {
	b := NewFunctionBuilder[float32](2)
	x := b.Param(0)
	y := b.Param(1)
	sum := b.Binary(x, y, func(a, c float32) float32 { return a + c })
	b.Return(sum)

	fn, ok := b.Finalize()
	if !ok {
		t.Fatal("Finalize() returned false, want true")
	}
	if got := fn([]float32{2, 3}); got != 5 {
		t.Fatalf("fn(2, 3) = %v, want 5", got)
	}
}

func TestFunctionBuilderFinalizeWithoutReturn(t *testing.T) {
	b := NewFunctionBuilder[float32](0)
	if _, ok := b.Finalize(); ok {
		t.Fatal("Finalize() = true, want false (Return was never called)")
	}
}

func TestFunctionBuilderLocals(t *testing.T) {
	b := NewFunctionBuilder[float32](1)
	x := b.Param(0)
	b.DeclareLocal("x", &x)
	doubled := b.Unary(b.UseLocal("x"), func(v float32) float32 { return v * 2 })
	b.DefineLocal("y", doubled)
	b.Return(b.UseLocal("y"))

	fn, _ := b.Finalize()
	if got := fn([]float32{4}); got != 8 {
		t.Fatalf("fn(4) = %v, want 8", got)
	}
}

func TestFunctionBuilderUseUndeclaredLocalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic reading an undeclared local")
		}
	}()
	b := NewFunctionBuilder[float32](0)
	b.UseLocal("missing")
}

func TestSoftISACompileAndCall(t *testing.T) {
	m := NewSoftISA[float32]()
	id, err := m.DeclareFunction("expression", LinkageExport, Signature{ParamCount: 1})
	if err != nil {
		t.Fatalf("DeclareFunction: %v", err)
	}

	b := NewFunctionBuilder[float32](1)
	b.Return(b.Unary(b.Param(0), func(v float32) float32 { return v * v }))
	if err := m.DefineFunction(id, b); err != nil {
		t.Fatalf("DefineFunction: %v", err)
	}
	if err := m.FinalizeDefinitions(); err != nil {
		t.Fatalf("FinalizeDefinitions: %v", err)
	}
	defer m.FreeMemory()

	fn, err := m.GetFinalizedFunction(id)
	if err != nil {
		t.Fatalf("GetFinalizedFunction: %v", err)
	}
	if got := fn([]float32{3}); got != 9 {
		t.Fatalf("fn(3) = %v, want 9", got)
	}
}

func TestSoftISAFinalizeRejectsUndefinedFunction(t *testing.T) {
	m := NewSoftISA[float32]()
	if _, err := m.DeclareFunction("f", LinkageLocal, Signature{}); err != nil {
		t.Fatalf("DeclareFunction: %v", err)
	}
	if err := m.FinalizeDefinitions(); err == nil {
		t.Fatal("expected FinalizeDefinitions to reject an undefined function")
	}
}

func TestSoftISARegisterSymbolAndDeclareFuncInFunc(t *testing.T) {
	m := NewSoftISA[float32]()
	m.RegisterSymbol("helper", func(args []float32) float32 { return args[0] + 1 })

	ref, ok := m.DeclareFuncInFunc("helper")
	if !ok {
		t.Fatal("DeclareFuncInFunc(\"helper\") = false, want true")
	}

	b := NewFunctionBuilder[float32](1)
	b.Return(b.Call(ref, []Value[float32]{b.Param(0)}))
	fn, _ := b.Finalize()
	if got := fn([]float32{4}); got != 5 {
		t.Fatalf("fn(4) = %v, want 5", got)
	}
}

func TestSoftISAFreeMemoryIdempotent(t *testing.T) {
	m := NewSoftISA[float32]()
	id, _ := m.DeclareFunction("f", LinkageExport, Signature{})
	b := NewFunctionBuilder[float32](0)
	b.Return(b.ConstFloat(1))
	_ = m.DefineFunction(id, b)
	_ = m.FinalizeDefinitions()

	m.FreeMemory()
	m.FreeMemory()
}
