package codegen

import (
	"fmt"
	"sync"
	"syscall"
)

// pageSize stands in for "the finalized code pages" the spec's artifact
// handle owns (§4.6). This backend's actual callables are Go closures, not
// machine code read out of this buffer — see DESIGN.md — but the buffer is
// a real anonymous RW mapping, mmap'd on FinalizeDefinitions and munmap'd
// exactly once by FreeMemory, so the handle's release-order and
// freed-exactly-once invariants are exercised against a genuine OS
// resource rather than a bare boolean flag.
const pageSize = 4096

// SoftISA is this module's one Module[T] implementation: functions are
// declared, defined with a *FunctionBuilder[T], and "finalized" by mmap'ing
// a page that represents ownership of the compiled closures.
type SoftISA[T any] struct {
	mu        sync.Mutex
	functions []funcSlot[T]
	byName    map[string]FuncID
	symbols   map[string]func(args []T) T
	pages     []byte
	finalized bool
	freed     bool
}

type funcSlot[T any] struct {
	name    string
	linkage Linkage
	sig     Signature
	body    func(args []T) T
	defined bool
}

// NewSoftISA constructs an empty module.
func NewSoftISA[T any]() *SoftISA[T] {
	return &SoftISA[T]{
		byName:  make(map[string]FuncID),
		symbols: make(map[string]func(args []T) T),
	}
}

func (m *SoftISA[T]) DeclareFunction(name string, linkage Linkage, sig Signature) (FuncID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byName[name]; ok {
		return id, nil
	}
	id := FuncID(len(m.functions))
	m.functions = append(m.functions, funcSlot[T]{name: name, linkage: linkage, sig: sig})
	m.byName[name] = id
	return id, nil
}

func (m *SoftISA[T]) DefineFunction(id FuncID, b *FunctionBuilder[T]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if int(id) < 0 || int(id) >= len(m.functions) {
		return fmt.Errorf("codegen: unknown function id %d", id)
	}
	body, ok := b.Finalize()
	if !ok {
		return fmt.Errorf("codegen: function %q defined with no return value", m.functions[id].name)
	}
	m.functions[id].body = body
	m.functions[id].defined = true
	return nil
}

func (m *SoftISA[T]) RegisterSymbol(name string, fn func(args []T) T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symbols[name] = fn
}

func (m *SoftISA[T]) DeclareFuncInFunc(name string) (FuncRef[T], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fn, ok := m.symbols[name]; ok {
		return FuncRef[T]{name: name, call: fn}, true
	}
	if id, ok := m.byName[name]; ok {
		slot := &m.functions[id]
		return FuncRef[T]{name: name, call: func(args []T) T {
			if !slot.defined {
				panic("codegen: call to undefined function " + name)
			}
			return slot.body(args)
		}}, true
	}
	return FuncRef[T]{}, false
}

// FinalizeDefinitions mmaps the module's code-page stand-in and verifies
// every declared function was defined.
func (m *SoftISA[T]) FinalizeDefinitions() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.functions {
		if !f.defined {
			return fmt.Errorf("codegen: function %q declared but never defined", f.name)
		}
	}

	pages, err := syscall.Mmap(-1, 0, pageSize,
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return fmt.Errorf("codegen: mmap code pages: %w", err)
	}
	m.pages = pages
	m.finalized = true
	return nil
}

func (m *SoftISA[T]) GetFinalizedFunction(id FuncID) (func(args []T) T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.finalized {
		return nil, fmt.Errorf("codegen: module not finalized")
	}
	if int(id) < 0 || int(id) >= len(m.functions) {
		return nil, fmt.Errorf("codegen: unknown function id %d", id)
	}
	return m.functions[id].body, nil
}

// FreeMemory unmaps the module's code pages. Safe to call multiple times;
// only the first call has an effect, matching the "freed exactly once"
// contract the artifact handle relies on (spec §4.6/§5).
func (m *SoftISA[T]) FreeMemory() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.freed || m.pages == nil {
		m.freed = true
		return
	}
	_ = syscall.Munmap(m.pages)
	m.pages = nil
	m.freed = true
}
