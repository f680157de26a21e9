package walk

import (
	"pl0c/ast"
	"pl0c/report"
	"pl0c/syms"
	"pl0c/types"
)

// checkStmt checks a statement node, elaborating the expressions it contains
// in place.
func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ErrorStmt:
		// Nothing to check: already invalid.
	case *ast.AssignStmt:
		c.checkAssign(s)
	case *ast.ReadStmt:
		c.checkRead(s)
	case *ast.WriteStmt:
		c.checkWrite(s)
	case *ast.CallStmt:
		c.checkCall(s)
	case *ast.IfStmt:
		c.checkIf(s)
	case *ast.WhileStmt:
		c.checkWhile(s)
	case *ast.ForStmt:
		c.checkFor(s)
	case *ast.StmtList:
		c.trace.Begin("StatementList")
		for _, inner := range s.Stmts {
			c.checkStmt(inner)
		}
		c.trace.End("StatementList")
	default:
		report.ReportICE("unknown statement node %T", stmt)
	}
}

// checkAssign checks an assignment statement: the target must elaborate to a
// writable l-value and the value is coerced to the l-value's base type.
func (c *Checker) checkAssign(s *ast.AssignStmt) {
	c.trace.Begin("Assignment")
	defer c.trace.End("Assignment")

	left := c.checkExpr(s.Target)
	s.Target = left

	exp := c.checkExpr(s.Value)
	s.Value = exp

	if refType, ok := left.Type().(*types.ReferenceType); ok {
		c.checkWritable(left)

		// The right side must be assignment compatible with the base type of
		// the left side's reference type.
		s.Value = c.coerceExp(refType.Base, exp)
		if types.IsError(s.Value.Type()) {
			left.SetType(types.ErrorType)
		}
	} else if !types.IsError(left.Type()) {
		c.error(left.Span(), "variable expected")
	}
}

// checkRead checks a read statement: the target must be an integer l-value.
func (c *Checker) checkRead(s *ast.ReadStmt) {
	c.trace.Begin("Read")
	defer c.trace.End("Read")

	lval := c.checkExpr(s.Target)
	s.Target = lval

	if refType, ok := lval.Type().(*types.ReferenceType); ok {
		c.checkWritable(lval)

		if !types.Equals(types.IntegerType, refType.Base) {
			c.error(lval.Span(), "integer variable expected")
		}
	} else if !types.IsError(lval.Type()) {
		c.error(lval.Span(), "variable expected")
	}
}

// checkWritable rejects writes through a read-only variable.  The read-only
// bit is set when a variable becomes the control variable of a `for` loop.
func (c *Checker) checkWritable(lval ast.Expr) {
	if varExp, ok := lval.(*ast.VariableExpr); ok && varExp.Variable.ReadOnly() {
		c.error(lval.Span(), "cannot assign to loop variable %s", varExp.Variable.Ident())
	}
}

// checkWrite checks a write statement: the written value is coerced to
// integer.
func (c *Checker) checkWrite(s *ast.WriteStmt) {
	c.trace.Begin("Write")
	defer c.trace.End("Write")

	exp := c.checkExpr(s.Value)
	s.Value = c.coerceExp(types.IntegerType, exp)
}

// checkCall checks a call statement: the callee must resolve to a procedure
// entry.
func (c *Checker) checkCall(s *ast.CallStmt) {
	c.trace.Begin("Call")
	defer c.trace.End("Call")

	if procEntry, ok := c.scope.Lookup(s.Name).(*syms.ProcedureEntry); ok {
		s.Proc = procEntry
	} else {
		c.error(s.Span(), "Procedure identifier required")
	}
}

// checkIf checks an if statement: the condition is coerced to boolean and
// both branches are checked.
func (c *Checker) checkIf(s *ast.IfStmt) {
	c.trace.Begin("If")
	defer c.trace.End("If")

	s.Cond = c.checkCondition(s.Cond)
	c.checkStmt(s.Then)
	c.checkStmt(s.Else)
}

// checkWhile checks a while statement: the condition is coerced to boolean
// and the body is checked.
func (c *Checker) checkWhile(s *ast.WhileStmt) {
	c.trace.Begin("While")
	defer c.trace.End("While")

	s.Cond = c.checkCondition(s.Cond)
	c.checkStmt(s.Body)
}

// checkFor checks a for statement.  The bound expressions are elaborated in
// the enclosing scope; the loop's inner scope then owns two hidden frame
// slots for the bound snapshots.  The controlling scalar type is inferred
// from the bounds where possible, the loop variable is retyped as a
// reference to it and marked read-only, and both bounds are coerced to it.
func (c *Checker) checkFor(s *ast.ForStmt) {
	c.trace.Begin("For")
	defer c.trace.End("For")

	upperExp := c.checkExpr(s.Upper)
	lowerExp := c.checkExpr(s.Lower)

	// Enter the loop's pre-built inner scope.  It allocates into the frame
	// of the enclosing procedure.
	localScope := s.Scope
	localScope.SetOwner(c.scope.Owner())

	savedScope := c.scope
	c.scope = localScope
	defer func() { c.scope = savedScope }()

	s.LowOffset = localScope.AllocVariableSpace(1)
	s.HighOffset = localScope.AllocVariableSpace(1)

	controlExp := c.checkExpr(s.Control)

	// The control variable is read-only for the rest of the compilation, so
	// the mark must land before the body is checked: assignments and reads
	// targeting it inside the body are rejected by the writability check.
	if varExp, ok := controlExp.(*ast.VariableExpr); ok {
		varExp.Variable.SetReadOnly()
	}

	c.checkStmt(s.Body)

	refType, ok := controlExp.Type().(*types.ReferenceType)
	if !ok {
		if !types.IsError(controlExp.Type()) {
			c.error(controlExp.Span(), "variable expected")
		}

		controlExp.SetType(types.ErrorType)
		s.Control = controlExp
		s.Upper = upperExp
		s.Lower = lowerExp
		return
	}

	// Determine the controlling scalar type: a scalar-typed bound wins, two
	// constant bounds synthesize an anonymous scalar over their values, and
	// otherwise the loop variable keeps its own base type.
	scalarType := refType.Base

	scalarBounds := 0
	if st, ok := upperExp.Type().(*types.ScalarType); ok {
		scalarType = st
		scalarBounds++
	}
	if st, ok := lowerExp.Type().(*types.ScalarType); ok {
		scalarType = st
		scalarBounds++
	}

	if scalarBounds == 0 {
		upperConst, upperOk := upperExp.(*ast.ConstExpr)
		lowerConst, lowerOk := lowerExp.(*ast.ConstExpr)

		if upperOk && lowerOk {
			scalarType = types.NewScalarType("ScalarTypeFor", 1, lowerConst.Value, upperConst.Value)
		}
	}

	// Retype the loop variable as a reference to the controlling scalar and
	// the bounds as the scalar itself (or a reference to it for plain
	// variable bounds, which then dereference during coercion).
	controlRefType := types.NewReferenceType(scalarType)
	controlExp.SetType(controlRefType)

	if _, ok := upperExp.(*ast.VariableExpr); ok {
		upperExp.SetType(controlRefType)
	} else {
		upperExp.SetType(scalarType)
	}

	if _, ok := lowerExp.(*ast.VariableExpr); ok {
		lowerExp.SetType(controlRefType)
	} else {
		lowerExp.SetType(scalarType)
	}

	s.Control = controlExp
	s.Upper = c.coerceExp(scalarType, upperExp)
	s.Lower = c.coerceExp(scalarType, lowerExp)
}
