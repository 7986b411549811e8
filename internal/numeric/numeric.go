// Package numeric is the element-type adapter of spec §4.3: the one place
// that distinguishes scalar from SIMD element types. Every other package in
// this module is written against the generic ElementType[T] capability set
// and is oblivious to which concrete T it was instantiated with.
package numeric

// Numeric constrains the element type T every parameter, local, constant,
// and return value in a single compile shares: either a 32-bit float
// scalar or a 4-lane 32-bit float vector (per original_source/f32x4.rs,
// see SPEC_FULL.md).
type Numeric interface {
	float32 | [4]float32
}

// ElementType is the capability set spec §4.3 describes, parameterized by
// the chosen element type T.
type ElementType[T Numeric] interface {
	// IRType names T's IR representation ("f32" or "f32x4").
	IRType() string

	// Const materializes a scalar literal as a T value (splatting across
	// lanes for vector T).
	Const(v float32) T

	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Div(a, b T) T
	Neg(a T) T

	// Mod computes v - trunc(v/m)*m: fused floating remainder toward zero.
	Mod(v, m T) T

	// Comparisons lower to a truthy value in T's domain: 1.0 where the
	// comparison holds, 0.0 where it does not (per lane, for vector T).
	Eq(a, b T) T
	Neq(a, b T) T
	Gt(a, b T) T
	Lt(a, b T) T
	Geq(a, b T) T
	Leq(a, b T) T

	// Logical ops treat "truthy" as "not equal to 0" and never short-circuit
	// (spec §9: both operands are always evaluated by the translator before
	// these are called).
	Not(a T) T
	And(a, b T) T
	Or(a, b T) T

	// Pow is the inbuilt_pow host-ABI helper the JIT always preregisters.
	Pow(a, b T) T
}
