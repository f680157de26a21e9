package syms

import (
	"testing"

	"pl0c/machine"
	"pl0c/types"
)

func TestLookupWalksParents(t *testing.T) {
	outer := NewScope(nil)
	inner := NewScope(outer)

	outerEntry := NewConstantEntry("n", types.IntegerType, 10)
	outer.Define(outerEntry)

	if got := inner.Lookup("n"); got != outerEntry {
		t.Error("inner scope did not resolve entry from parent")
	}

	if got := inner.Lookup("missing"); got != nil {
		t.Errorf("undefined identifier resolved to %v", got)
	}
}

func TestLookupShadowing(t *testing.T) {
	outer := NewScope(nil)
	inner := NewScope(outer)

	outer.Define(NewConstantEntry("n", types.IntegerType, 1))
	innerEntry := NewConstantEntry("n", types.IntegerType, 2)
	inner.Define(innerEntry)

	if got := inner.Lookup("n"); got != innerEntry {
		t.Error("inner declaration does not shadow the outer one")
	}
}

func TestDefineRejectsDuplicates(t *testing.T) {
	scope := NewScope(nil)

	if !scope.Define(NewConstantEntry("n", types.IntegerType, 1)) {
		t.Fatal("first declaration rejected")
	}

	if scope.Define(NewConstantEntry("n", types.IntegerType, 2)) {
		t.Error("duplicate declaration accepted")
	}
}

func TestOperatorNamespaceIsDisjoint(t *testing.T) {
	scope := NewPredefinedScope()
	child := NewScope(scope)

	// A user declaration named like an operator must not shadow it.
	child.Define(NewConstantEntry("pred", types.IntegerType, 0))

	if entry := child.LookupOperator("pred"); entry == nil {
		t.Fatal("operator hidden by an ordinary declaration")
	} else if _, ok := entry.Type.(*types.IntersectionType); !ok {
		t.Errorf("pred operator type = %T, want intersection", entry.Type)
	}
}

func TestAllocVariableSpace(t *testing.T) {
	entry := NewProcedureEntry("main", 1)
	scope := NewScope(nil)
	scope.SetOwner(entry)
	entry.LocalScope = scope

	if off := scope.AllocVariableSpace(1); off != machine.FrameReserved {
		t.Errorf("first offset = %d, want %d", off, machine.FrameReserved)
	}

	if off := scope.AllocVariableSpace(4); off != machine.FrameReserved+1 {
		t.Errorf("second offset = %d, want %d", off, machine.FrameReserved+1)
	}

	if space := scope.VariableSpace(); space != 5 {
		t.Errorf("variable space = %d, want 5", space)
	}
}

func TestExtensionScopeAllocatesIntoOwnerFrame(t *testing.T) {
	entry := NewProcedureEntry("main", 1)
	procScope := NewScope(nil)
	procScope.SetOwner(entry)
	entry.LocalScope = procScope

	procScope.AllocVariableSpace(1)

	ext := NewExtensionScope(procScope)
	if ext.Level() != procScope.Level() {
		t.Errorf("extension scope level = %d, want %d", ext.Level(), procScope.Level())
	}

	if off := ext.AllocVariableSpace(1); off != machine.FrameReserved+1 {
		t.Errorf("hidden slot offset = %d, want %d", off, machine.FrameReserved+1)
	}

	// The hidden slot extends the procedure's frame.
	if space := procScope.VariableSpace(); space != 2 {
		t.Errorf("owner variable space = %d, want 2", space)
	}
}

func TestPredefinedScope(t *testing.T) {
	scope := NewPredefinedScope()

	if entry, ok := scope.Lookup("int").(*TypeEntry); !ok || !types.Equals(entry.Type, types.IntegerType) {
		t.Error("int type entry missing or wrong")
	}

	if entry, ok := scope.Lookup("true").(*ConstantEntry); !ok || entry.Value != 1 {
		t.Error("true constant missing or wrong")
	}

	for _, name := range []string{"+", "-", "*", "/", "<", "<=", ">", ">=", "=", "<>", "neg", "pred", "succ"} {
		if scope.LookupOperator(name) == nil {
			t.Errorf("operator %s missing from predefined scope", name)
		}
	}

	if _, ok := scope.LookupOperator("=").Type.(*types.IntersectionType); !ok {
		t.Error("equality operator is not overloaded")
	}
}

func TestExtendScalarOperators(t *testing.T) {
	scope := NewPredefinedScope()

	predBefore := len(scope.LookupOperator("pred").Type.(*types.IntersectionType).Types)

	color := types.NewScalarType("color", 1, 0, 2)
	ExtendScalarOperators(scope, color)

	it := scope.LookupOperator("pred").Type.(*types.IntersectionType)
	if len(it.Types) != predBefore+1 {
		t.Fatalf("pred candidates = %d, want %d", len(it.Types), predBefore+1)
	}

	last := it.Types[len(it.Types)-1]
	if !types.Equals(last.Func.Arg, color) {
		t.Errorf("new candidate operand = %s, want color", last.Func.Arg.Repr())
	}
}
