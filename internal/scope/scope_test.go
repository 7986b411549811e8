package scope

import (
	"testing"

	"github.com/arithjit/anita/internal/errors"
	"github.com/arithjit/anita/internal/parser"
)

func TestAnalyzeReadWriteAll(t *testing.T) {
	root, err := parser.New("x = y + 1; x").Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := Analyze(root)

	if _, ok := s.Write["x"]; !ok {
		t.Fatal("expected x in Write")
	}
	if _, ok := s.Read["y"]; !ok {
		t.Fatal("expected y in Read")
	}
	if _, ok := s.Read["x"]; !ok {
		t.Fatal("expected x in Read (used in the ret position)")
	}
	if len(s.All) != 2 {
		t.Fatalf("len(All) = %d, want 2", len(s.All))
	}
}

func TestLocalsOrderIsFirstEncounter(t *testing.T) {
	root, err := parser.New("b + a + b").Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := Locals(root)
	want := []string{"b", "a"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCheckUninitializedPassesForFormal(t *testing.T) {
	root, err := parser.New("x + 1").Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := CheckUninitialized(root, []string{"x"}); err != nil {
		t.Fatalf("CheckUninitialized: %v", err)
	}
}

func TestCheckUninitializedPassesForAssignedAfterUse(t *testing.T) {
	root, err := parser.New("x + (x = 5)").Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// Per the spec's order-insensitive scope check, x is assigned somewhere
	// in the tree, so this passes even though the assignment textually
	// follows the read.
	if err := CheckUninitialized(root, nil); err != nil {
		t.Fatalf("CheckUninitialized: %v", err)
	}
}

func TestCheckUninitializedFailsForUnboundRead(t *testing.T) {
	root, err := parser.New("x + y").Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = CheckUninitialized(root, []string{"x"})
	var target *errors.UseOfUninitializedVariables
	if err == nil {
		t.Fatal("expected an error")
	}
	e, ok := err.(*errors.UseOfUninitializedVariables)
	if !ok {
		t.Fatalf("got %T, want *errors.UseOfUninitializedVariables", err)
	}
	target = e
	if len(target.Names) != 1 || target.Names[0] != "y" {
		t.Fatalf("got %v, want [y]", target.Names)
	}
}
