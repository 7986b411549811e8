// Package scope implements the static scope analysis of spec §4.2: the
// read/write/all identifier sets and the use-of-uninitialized-variable
// check that runs before IR lowering begins.
package scope

import (
	"sort"

	"github.com/arithjit/anita/internal/ast"
	"github.com/arithjit/anita/internal/errors"
)

// Sets holds the three multi-sets spec §4.2 defines, each reduced to a set
// (duplicates collapse; order is not meaningful here).
type Sets struct {
	Read  map[string]struct{}
	Write map[string]struct{}
	All   map[string]struct{}
}

func newSets() Sets {
	return Sets{Read: map[string]struct{}{}, Write: map[string]struct{}{}, All: map[string]struct{}{}}
}

// Analyze computes read(e), write(e), and all(e) by recursive descent.
func Analyze(e ast.Expression) Sets {
	s := newSets()
	walk(e, &s)
	return s
}

func walk(e ast.Expression, s *Sets) {
	switch n := e.(type) {
	case *ast.VariableRead:
		s.Read[n.Name] = struct{}{}
		s.All[n.Name] = struct{}{}
	case *ast.Const:
		// no identifiers
	case *ast.Chain:
		walk(n.Side, s)
		walk(n.Ret, s)
	case *ast.Call:
		for _, a := range n.Args {
			walk(a, s)
		}
	case *ast.BinaryExpr:
		walk(n.Left, s)
		walk(n.Right, s)
	case *ast.UnaryExpr:
		walk(n.Operand, s)
	case *ast.Assign:
		s.Write[n.Name] = struct{}{}
		s.All[n.Name] = struct{}{}
		walk(n.Value, s)
	}
}

// Locals returns the de-duplicated union read(e) ∪ write(e), in the order
// each identifier is first encountered during a left-to-right walk — a
// deterministic tie-break this module chooses per DESIGN.md, since spec
// §4.2 leaves the order unspecified.
func Locals(e ast.Expression) []string {
	var order []string
	seen := map[string]struct{}{}
	var visit func(ast.Expression)
	visit = func(e ast.Expression) {
		switch n := e.(type) {
		case *ast.VariableRead:
			record(n.Name, &order, seen)
		case *ast.Chain:
			visit(n.Side)
			visit(n.Ret)
		case *ast.Call:
			for _, a := range n.Args {
				visit(a)
			}
		case *ast.BinaryExpr:
			visit(n.Left)
			visit(n.Right)
		case *ast.UnaryExpr:
			visit(n.Operand)
		case *ast.Assign:
			record(n.Name, &order, seen)
			visit(n.Value)
		}
	}
	visit(e)
	return order
}

func record(name string, order *[]string, seen map[string]struct{}) {
	if _, ok := seen[name]; ok {
		return
	}
	seen[name] = struct{}{}
	*order = append(*order, name)
}

// CheckUninitialized validates that every identifier in all(e)\write(e) is
// a declared formal, returning *errors.UseOfUninitializedVariables listing
// every offending identifier (as a set, sorted for deterministic output)
// otherwise.
func CheckUninitialized(e ast.Expression, formals []string) error {
	s := Analyze(e)

	formalSet := make(map[string]struct{}, len(formals))
	for _, f := range formals {
		formalSet[f] = struct{}{}
	}

	var bad []string
	for name := range s.All {
		if _, written := s.Write[name]; written {
			continue
		}
		if _, formal := formalSet[name]; formal {
			continue
		}
		bad = append(bad, name)
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return &errors.UseOfUninitializedVariables{Names: bad}
}
