package jit

import (
	"fmt"
	"reflect"
	"runtime"
	"sync/atomic"

	"github.com/arithjit/anita/internal/codegen"
	"github.com/arithjit/anita/internal/numeric"
)

// Handle is the compiled artifact of spec §4.6: a caller-typed function
// pointer F plus ownership of the module it was finalized from. F must be
// a func type whose parameters and return are all the Go type underlying
// T (float32, or [4]float32 for the vector element type) — Compile
// rejects any other F at construction.
//
// A Handle is safe to call from multiple goroutines concurrently (Func
// only ever reads a value fixed at construction). It is the caller's
// responsibility to stop calling through Func before releasing the
// handle; Release itself is safe to call concurrently with itself and is
// idempotent.
type Handle[T numeric.Numeric, F any] struct {
	fn     F
	module codegen.Module[T]
	closed atomic.Bool
}

func newHandle[T numeric.Numeric, F any](module codegen.Module[T], raw func(args []T) T) (*Handle[T, F], error) {
	var zero F
	ft := reflect.TypeOf(zero)
	if ft == nil || ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("jit: type parameter F must be a function type, got %T", zero)
	}

	elemType := reflect.TypeOf(*new(T))
	if ft.NumOut() != 1 || ft.Out(0) != elemType {
		return nil, fmt.Errorf("jit: F must return %s, got %s", elemType, ft)
	}
	for i := 0; i < ft.NumIn(); i++ {
		if ft.In(i) != elemType {
			return nil, fmt.Errorf("jit: F's parameter %d must be %s, got %s", i, elemType, ft.In(i))
		}
	}

	wrapped := reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		args := make([]T, len(in))
		for i, v := range in {
			args[i] = v.Interface().(T)
		}
		return []reflect.Value{reflect.ValueOf(raw(args))}
	})

	h := &Handle[T, F]{fn: wrapped.Interface().(F), module: module}
	runtime.SetFinalizer(h, (*Handle[T, F]).release)
	return h, nil
}

// Func returns the callable compiled function.
func (h *Handle[T, F]) Func() F {
	return h.fn
}

// Release frees the artifact's executable resource (spec §4.6). Safe to
// call more than once; only the first call has an effect.
func (h *Handle[T, F]) Release() {
	h.release()
}

func (h *Handle[T, F]) release() {
	if h.closed.CompareAndSwap(false, true) {
		h.module.FreeMemory()
	}
}
