package numeric

import "math"

// Scalar implements ElementType[float32]: the plain 32-bit float element
// type. inbuilt_pow is the platform powf equivalent (spec §4.3).
type Scalar struct{}

var _ ElementType[float32] = Scalar{}

func (Scalar) IRType() string           { return "f32" }
func (Scalar) Const(v float32) float32  { return v }

func (Scalar) Add(a, b float32) float32 { return a + b }
func (Scalar) Sub(a, b float32) float32 { return a - b }
func (Scalar) Mul(a, b float32) float32 { return a * b }
func (Scalar) Div(a, b float32) float32 { return a / b }
func (Scalar) Neg(a float32) float32    { return -a }

func (Scalar) Mod(v, m float32) float32 {
	return v - float32(math.Trunc(float64(v/m)))*m
}

func boolF32(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func (Scalar) Eq(a, b float32) float32  { return boolF32(a == b) }
func (Scalar) Neq(a, b float32) float32 { return boolF32(a != b) }
func (Scalar) Gt(a, b float32) float32  { return boolF32(a > b) }
func (Scalar) Lt(a, b float32) float32  { return boolF32(a < b) }
func (Scalar) Geq(a, b float32) float32 { return boolF32(a >= b) }
func (Scalar) Leq(a, b float32) float32 { return boolF32(a <= b) }

func (Scalar) Not(a float32) float32    { return boolF32(a == 0) }
func (Scalar) And(a, b float32) float32 { return boolF32(boolF32(a != 0)+boolF32(b != 0) == 2) }
func (Scalar) Or(a, b float32) float32  { return boolF32(boolF32(a != 0)+boolF32(b != 0) != 0) }

func (Scalar) Pow(a, b float32) float32 {
	return float32(math.Pow(float64(a), float64(b)))
}
