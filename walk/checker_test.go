package walk

import (
	"strings"
	"testing"

	"pl0c/ast"
	"pl0c/report"
	"pl0c/syms"
	"pl0c/syntax"
	"pl0c/types"
)

// parseAndCheck parses and checks a source program, failing the test on
// parse errors.  It returns the elaborated program.
func parseAndCheck(t *testing.T, source string) *ast.ProcedureDecl {
	t.Helper()
	report.InitReporter(report.LogLevelSilent, "test")

	program := syntax.NewParser(strings.NewReader(source)).Parse()
	if report.AnyErrors() {
		t.Fatalf("unexpected parse errors (%d)", report.ErrorCount())
	}

	Check(program)
	return program
}

// checkOK asserts the program checked without errors.
func checkOK(t *testing.T, program *ast.ProcedureDecl) *ast.ProcedureDecl {
	t.Helper()

	if report.AnyErrors() {
		t.Fatalf("unexpected check errors (%d)", report.ErrorCount())
	}

	return program
}

// mainStmts returns the statements of the program's main body.
func mainStmts(program *ast.ProcedureDecl) []ast.Stmt {
	return program.Block.Body.(*ast.StmtList).Stmts
}

// -----------------------------------------------------------------------------

func TestAssignElaboration(t *testing.T) {
	program := checkOK(t, parseAndCheck(t, `
		var x: int;
		begin x := 5; x := x end.`))

	stmts := mainStmts(program)

	// x := 5 widens the literal's point subrange to int.
	assign := stmts[0].(*ast.AssignStmt)
	if _, ok := assign.Target.(*ast.VariableExpr); !ok {
		t.Errorf("target = %T, want variable", assign.Target)
	}

	widen, ok := assign.Value.(*ast.WidenSubrangeExpr)
	if !ok {
		t.Fatalf("value = %T, want widen", assign.Value)
	}

	if !types.Equals(widen.Type(), types.IntegerType) {
		t.Errorf("widened type = %s, want int", widen.Type().Repr())
	}

	// x := x dereferences the r-value occurrence.
	assign = stmts[1].(*ast.AssignStmt)
	deref, ok := assign.Value.(*ast.DereferenceExpr)
	if !ok {
		t.Fatalf("value = %T, want dereference", assign.Value)
	}

	if _, ok := deref.LValue.(*ast.VariableExpr); !ok {
		t.Errorf("dereference operand = %T, want variable", deref.LValue)
	}
}

func TestNoIdentifiersRemain(t *testing.T) {
	program := checkOK(t, parseAndCheck(t, `
		const n = 3;
		var x: int;
		begin
			x := n;
			if x < n then write x else write n;
			while x > 0 do x := x - 1
		end.`))

	walkStmtExprs(t, program.Block.Body, func(expr ast.Expr) {
		if _, ok := expr.(*ast.IdentifierExpr); ok {
			t.Errorf("identifier node survived elaboration at %v", expr.Span())
		}

		if expr.Type() == nil {
			t.Errorf("expression %T has no type after elaboration", expr)
		}
	})
}

// walkStmtExprs applies fn to every expression node reachable from stmt.
func walkStmtExprs(t *testing.T, stmt ast.Stmt, fn func(ast.Expr)) {
	t.Helper()

	var walkExpr func(ast.Expr)
	walkExpr = func(expr ast.Expr) {
		if expr == nil {
			return
		}

		fn(expr)

		switch e := expr.(type) {
		case *ast.BinaryExpr:
			walkExpr(e.Left)
			walkExpr(e.Right)
		case *ast.UnaryExpr:
			walkExpr(e.Operand)
		case *ast.ArrayIndexExpr:
			walkExpr(e.Base)
			walkExpr(e.Index)
		case *ast.DereferenceExpr:
			walkExpr(e.LValue)
		case *ast.NarrowSubrangeExpr:
			walkExpr(e.Operand)
		case *ast.WidenSubrangeExpr:
			walkExpr(e.Operand)
		}
	}

	var walkStmt func(ast.Stmt)
	walkStmt = func(stmt ast.Stmt) {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			walkExpr(s.Target)
			walkExpr(s.Value)
		case *ast.ReadStmt:
			walkExpr(s.Target)
		case *ast.WriteStmt:
			walkExpr(s.Value)
		case *ast.IfStmt:
			walkExpr(s.Cond)
			walkStmt(s.Then)
			walkStmt(s.Else)
		case *ast.WhileStmt:
			walkExpr(s.Cond)
			walkStmt(s.Body)
		case *ast.ForStmt:
			walkExpr(s.Control)
			walkExpr(s.Lower)
			walkExpr(s.Upper)
			walkStmt(s.Body)
		case *ast.StmtList:
			for _, inner := range s.Stmts {
				walkStmt(inner)
			}
		}
	}

	walkStmt(stmt)
}

func TestAssignTypeMismatch(t *testing.T) {
	program := parseAndCheck(t, `
		var x: boolean;
		    y: int;
		begin x := y; y := 1 end.`)

	if report.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", report.ErrorCount())
	}

	// The offending statement is error-marked; checking continued past it.
	assign := mainStmts(program)[0].(*ast.AssignStmt)
	if !types.IsError(assign.Value.Type()) {
		t.Error("mismatched value not error-marked")
	}

	if !types.IsError(assign.Target.Type()) {
		t.Error("mismatched target not error-marked")
	}

	second := mainStmts(program)[1].(*ast.AssignStmt)
	if types.IsError(second.Value.Type()) {
		t.Error("error cascaded into the following statement")
	}
}

func TestAssignToNonVariable(t *testing.T) {
	parseAndCheck(t, `
		const n = 3;
		begin n := 4 end.`)

	if report.ErrorCount() == 0 {
		t.Error("assignment to a constant not rejected")
	}
}

func TestReadRequiresIntegerVariable(t *testing.T) {
	tests := []struct {
		name   string
		source string
		errors int
	}{
		{"integer variable", "var x: int; begin read x end.", 0},
		{"boolean variable", "var b: boolean; begin read b end.", 1},
		{"constant", "const n = 1; begin read n end.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseAndCheck(t, tt.source)

			if report.ErrorCount() != tt.errors {
				t.Errorf("error count = %d, want %d", report.ErrorCount(), tt.errors)
			}
		})
	}
}

func TestCallResolution(t *testing.T) {
	program := checkOK(t, parseAndCheck(t, `
		procedure p;
		begin write 1 end;
		begin call p end.`))

	call := mainStmts(program)[0].(*ast.CallStmt)
	if call.Proc == nil || call.Proc.Ident() != "p" {
		t.Error("call not resolved to its procedure entry")
	}

	parseAndCheck(t, `var x: int; begin call x end.`)
	if report.ErrorCount() != 1 {
		t.Errorf("calling a variable: error count = %d, want 1", report.ErrorCount())
	}
}

func TestConditionCoercedToBoolean(t *testing.T) {
	parseAndCheck(t, `var x: int; begin if x then write 1 end.`)
	if report.ErrorCount() != 1 {
		t.Errorf("non-boolean condition: error count = %d, want 1", report.ErrorCount())
	}
}

// -----------------------------------------------------------------------------

func TestOverloadedEqualsPicksFirstMatch(t *testing.T) {
	program := checkOK(t, parseAndCheck(t, `
		var x: 1..10;
		    y: int;
		    b: boolean;
		begin b := x = y end.`))

	assign := mainStmts(program)[0].(*ast.AssignStmt)
	binary := assign.Value.(*ast.BinaryExpr)

	if binary.Kind != types.OpEqual {
		t.Fatalf("resolved kind = %s, want =", binary.Kind.Repr())
	}

	// The int candidate wins: x widens out of its subrange.
	if _, ok := binary.Left.(*ast.WidenSubrangeExpr); !ok {
		t.Errorf("left operand = %T, want widen to int", binary.Left)
	}

	if !types.Equals(binary.Type(), types.BooleanType) {
		t.Errorf("result type = %s, want boolean", binary.Type().Repr())
	}
}

func TestOverloadedEqualsBooleanCandidate(t *testing.T) {
	program := checkOK(t, parseAndCheck(t, `
		var a: boolean;
		    b: boolean;
		begin a := a = b end.`))

	assign := mainStmts(program)[0].(*ast.AssignStmt)
	binary := assign.Value.(*ast.BinaryExpr)

	// The int candidate fails on boolean operands; the boolean candidate is
	// tried next and wins.
	if binary.Kind != types.OpEqual {
		t.Fatalf("resolved kind = %s, want =", binary.Kind.Repr())
	}

	deref, ok := binary.Left.(*ast.DereferenceExpr)
	if !ok || !types.Equals(deref.Type(), types.BooleanType) {
		t.Errorf("left operand = %T of %s, want boolean dereference", binary.Left, binary.Left.Type().Repr())
	}
}

func TestOverloadMismatchReported(t *testing.T) {
	parseAndCheck(t, `
		var b: boolean;
		    x: int;
		begin b := b = x end.`)

	if report.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", report.ErrorCount())
	}
}

func TestPredSuccResolution(t *testing.T) {
	program := checkOK(t, parseAndCheck(t, `
		type color = (red, green, blue);
		var c: color;
		begin c := succ(red); c := pred(c) end.`))

	assign := mainStmts(program)[0].(*ast.AssignStmt)
	unary := assign.Value.(*ast.UnaryExpr)

	if unary.Kind != types.OpSucc {
		t.Fatalf("resolved kind = %s, want succ", unary.Kind.Repr())
	}

	scalar, ok := unary.Type().(*types.ScalarType)
	if !ok || scalar.Repr() != "color" {
		t.Errorf("result type = %s, want color", unary.Type().Repr())
	}

	// Every unary application reserves a hidden frame slot.
	second := mainStmts(program)[1].(*ast.AssignStmt).Value.(*ast.UnaryExpr)
	if unary.IdxOffset == second.IdxOffset {
		t.Error("unary applications share a hidden slot")
	}
}

func TestPredOnIntegerRejected(t *testing.T) {
	parseAndCheck(t, `var x: int; begin x := pred(x) end.`)

	if report.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", report.ErrorCount())
	}
}

// -----------------------------------------------------------------------------

func TestArrayIndexElaboration(t *testing.T) {
	program := checkOK(t, parseAndCheck(t, `
		var a: array [2..5] of int;
		    i: int;
		begin a[i+1] := 0 end.`))

	assign := mainStmts(program)[0].(*ast.AssignStmt)
	indexExp := assign.Target.(*ast.ArrayIndexExpr)

	// The indexing denotes the element's address.
	refType, ok := indexExp.Type().(*types.ReferenceType)
	if !ok || !types.Equals(refType.Base, types.IntegerType) {
		t.Fatalf("indexing type = %s, want ref(int)", indexExp.Type().Repr())
	}

	// The index is narrowed into the array's index subrange.
	narrow, ok := indexExp.Index.(*ast.NarrowSubrangeExpr)
	if !ok {
		t.Fatalf("index = %T, want narrow", indexExp.Index)
	}

	if narrow.Subrange().Lower() != 2 || narrow.Subrange().Upper() != 5 {
		t.Errorf("narrow target = %s, want 2..5", narrow.Subrange().Repr())
	}
}

func TestIndexingNonArray(t *testing.T) {
	parseAndCheck(t, `var x: int; begin x[1] := 0 end.`)

	if report.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", report.ErrorCount())
	}
}

// -----------------------------------------------------------------------------

func TestForLoopScalarSynthesis(t *testing.T) {
	program := checkOK(t, parseAndCheck(t, `
		var i: int;
		begin for i := 1 to 3 do write i end.`))

	forStmt := mainStmts(program)[0].(*ast.ForStmt)

	refType := forStmt.Control.Type().(*types.ReferenceType)
	scalar, ok := refType.Base.(*types.ScalarType)
	if !ok {
		t.Fatalf("control base type = %s, want synthesized scalar", refType.Base.Repr())
	}

	if scalar.Repr() != "ScalarTypeFor" || scalar.Lower() != 1 || scalar.Upper() != 3 {
		t.Errorf("synthesized scalar = %s over [%d, %d]", scalar.Repr(), scalar.Lower(), scalar.Upper())
	}

	// Two hidden single-word slots beyond the loop variable.
	if forStmt.LowOffset == 0 || forStmt.HighOffset != forStmt.LowOffset+1 {
		t.Errorf("hidden slots at %d, %d", forStmt.LowOffset, forStmt.HighOffset)
	}

	// The loop variable entry is read-only from now on.
	control := forStmt.Control.(*ast.VariableExpr)
	if !control.Variable.ReadOnly() {
		t.Error("loop variable not marked read-only")
	}
}

func TestForLoopScalarBoundAdopted(t *testing.T) {
	program := checkOK(t, parseAndCheck(t, `
		type color = (red, green, blue);
		var c: color;
		begin for c := red to blue do write 1 end.`))

	forStmt := mainStmts(program)[0].(*ast.ForStmt)

	refType := forStmt.Control.Type().(*types.ReferenceType)
	if refType.Base.Repr() != "color" {
		t.Errorf("control base type = %s, want color", refType.Base.Repr())
	}
}

func TestForLoopVariableNotAssignable(t *testing.T) {
	parseAndCheck(t, `
		var i: int;
		begin for i := 1 to 3 do i := 5 end.`)

	if report.ErrorCount() != 1 {
		t.Errorf("assigning the loop variable: error count = %d, want 1", report.ErrorCount())
	}
}

func TestForLoopVariableNotReadable(t *testing.T) {
	parseAndCheck(t, `
		var i: int;
		begin for i := 1 to 3 do read i end.`)

	if report.ErrorCount() != 1 {
		t.Errorf("reading into the loop variable: error count = %d, want 1", report.ErrorCount())
	}
}

// -----------------------------------------------------------------------------

func TestCoercionIdempotence(t *testing.T) {
	report.InitReporter(report.LogLevelSilent, "test")

	c := &Checker{trace: report.NewTracer("checking")}
	entry := syms.NewVarEntry("x", types.IntegerType, 1, 3)
	varExp := ast.NewVariableExpr(nil, entry)

	once := c.coerceExp(types.IntegerType, varExp)
	twice := c.coerceExp(types.IntegerType, once)

	if once != twice {
		t.Error("coercion to the same type is not idempotent")
	}

	if _, ok := once.(*ast.DereferenceExpr); !ok {
		t.Errorf("coerced node = %T, want dereference", once)
	}

	if report.AnyErrors() {
		t.Error("coercion reported spurious errors")
	}
}

func TestCoercionPriority(t *testing.T) {
	report.InitReporter(report.LogLevelSilent, "test")
	c := &Checker{trace: report.NewTracer("checking")}

	subrange := types.NewSubrangeType(types.IntegerType, 2, 5)
	entry := syms.NewVarEntry("x", types.IntegerType, 1, 3)

	// ref(int) -> 2..5 dereferences then narrows.
	coerced, ok := c.tryCoerce(subrange, ast.NewVariableExpr(nil, entry))
	if !ok {
		t.Fatal("coercion failed")
	}

	narrow, ok := coerced.(*ast.NarrowSubrangeExpr)
	if !ok {
		t.Fatalf("outer node = %T, want narrow", coerced)
	}

	if _, ok := narrow.Operand.(*ast.DereferenceExpr); !ok {
		t.Errorf("inner node = %T, want dereference", narrow.Operand)
	}

	// boolean does not coerce to int.
	boolEntry := syms.NewVarEntry("b", types.BooleanType, 1, 4)
	if _, ok := c.tryCoerce(types.IntegerType, ast.NewVariableExpr(nil, boolEntry)); ok {
		t.Error("boolean coerced to int")
	}

	// Error-typed operands absorb silently.
	if _, ok := c.tryCoerce(types.IntegerType, ast.NewErrorExpr(nil)); !ok {
		t.Error("error-typed expression did not absorb coercion")
	}
}
