package jit

import (
	"github.com/arithjit/anita/internal/numeric"
	"github.com/arithjit/anita/internal/registry"
)

// Compile is the convenience builder of spec §6.3: it creates a JIT
// specialized to adapter, compiles expression against parameters, and
// wraps the result's raw function pointer and module ownership together
// in a Handle typed as F. The JIT itself is discarded; this is the
// "one compile, dissolve, done" path most callers want.
func Compile[T numeric.Numeric, F any](adapter numeric.ElementType[T], expression string, parameters []string, opts ...Option[T]) (*Handle[T, F], error) {
	j := New[T](adapter, opts...)
	raw, err := j.Compile(expression, parameters)
	if err != nil {
		return nil, err
	}
	return newHandle[T, F](j.Dissolve(), raw)
}

// Registry re-exports registry.Registry so callers configuring a JIT via
// WithRegistry do not need a second import for the type alone.
type Registry[T numeric.Numeric] = registry.Registry[T]
