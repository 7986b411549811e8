package numeric

import "math"

// Vector4 implements ElementType[[4]float32]: a 4-lane 32-bit float vector
// (SSE width). Every operation is applied lane-wise. Per
// original_source/f32x4.rs, inbuilt_pow is computed as exp(b*ln(a))
// lane-wise rather than a vectorized libm powf (spec §4.3).
type Vector4 struct{}

var _ ElementType[[4]float32] = Vector4{}

func (Vector4) IRType() string { return "f32x4" }

func (Vector4) Const(v float32) [4]float32 {
	return [4]float32{v, v, v, v}
}

func lanewise(a, b [4]float32, f func(x, y float32) float32) [4]float32 {
	var out [4]float32
	for i := range out {
		out[i] = f(a[i], b[i])
	}
	return out
}

func (Vector4) Add(a, b [4]float32) [4]float32 { return lanewise(a, b, func(x, y float32) float32 { return x + y }) }
func (Vector4) Sub(a, b [4]float32) [4]float32 { return lanewise(a, b, func(x, y float32) float32 { return x - y }) }
func (Vector4) Mul(a, b [4]float32) [4]float32 { return lanewise(a, b, func(x, y float32) float32 { return x * y }) }
func (Vector4) Div(a, b [4]float32) [4]float32 { return lanewise(a, b, func(x, y float32) float32 { return x / y }) }

func (Vector4) Neg(a [4]float32) [4]float32 {
	var out [4]float32
	for i := range out {
		out[i] = -a[i]
	}
	return out
}

func (Vector4) Mod(v, m [4]float32) [4]float32 {
	return lanewise(v, m, func(x, y float32) float32 {
		return x - float32(math.Trunc(float64(x/y)))*y
	})
}

func (Vector4) Eq(a, b [4]float32) [4]float32 {
	return lanewise(a, b, func(x, y float32) float32 { return boolF32(x == y) })
}
func (Vector4) Neq(a, b [4]float32) [4]float32 {
	return lanewise(a, b, func(x, y float32) float32 { return boolF32(x != y) })
}
func (Vector4) Gt(a, b [4]float32) [4]float32 {
	return lanewise(a, b, func(x, y float32) float32 { return boolF32(x > y) })
}
func (Vector4) Lt(a, b [4]float32) [4]float32 {
	return lanewise(a, b, func(x, y float32) float32 { return boolF32(x < y) })
}
func (Vector4) Geq(a, b [4]float32) [4]float32 {
	return lanewise(a, b, func(x, y float32) float32 { return boolF32(x >= y) })
}
func (Vector4) Leq(a, b [4]float32) [4]float32 {
	return lanewise(a, b, func(x, y float32) float32 { return boolF32(x <= y) })
}

func (Vector4) Not(a [4]float32) [4]float32 {
	var out [4]float32
	for i := range out {
		out[i] = boolF32(a[i] == 0)
	}
	return out
}

func (Vector4) And(a, b [4]float32) [4]float32 {
	return lanewise(a, b, func(x, y float32) float32 {
		return boolF32(boolF32(x != 0)+boolF32(y != 0) == 2)
	})
}

func (Vector4) Or(a, b [4]float32) [4]float32 {
	return lanewise(a, b, func(x, y float32) float32 {
		return boolF32(boolF32(x != 0)+boolF32(y != 0) != 0)
	})
}

func (Vector4) Pow(a, b [4]float32) [4]float32 {
	return lanewise(a, b, func(x, y float32) float32 {
		return float32(math.Exp(float64(y) * math.Log(float64(x))))
	})
}
