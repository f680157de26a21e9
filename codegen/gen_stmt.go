package codegen

import (
	"pl0c/ast"
	"pl0c/machine"
	"pl0c/report"
	"pl0c/types"
)

// genStmt generates the code for a statement.
func (g *Generator) genStmt(stmt ast.Stmt) *Code {
	switch s := stmt.(type) {
	case *ast.StmtList:
		g.trace.Begin("StatementList")
		defer g.trace.End("StatementList")

		code := NewCode()
		for _, inner := range s.Stmts {
			code.Append(g.genStmt(inner))
		}

		return code
	case *ast.AssignStmt:
		return g.genAssign(s)
	case *ast.ReadStmt:
		return g.genRead(s)
	case *ast.WriteStmt:
		return g.genWrite(s)
	case *ast.CallStmt:
		return g.genCall(s)
	case *ast.IfStmt:
		return g.genIf(s)
	case *ast.WhileStmt:
		return g.genWhile(s)
	case *ast.ForStmt:
		return g.genFor(s)
	case *ast.ErrorStmt:
		report.ReportICE("generateCode called on an error statement")
		return nil
	default:
		report.ReportICE("unknown statement node %T", stmt)
		return nil
	}
}

// genAssign generates an assignment: the value, the target address, and a
// store sized for the value's type.
func (g *Generator) genAssign(s *ast.AssignStmt) *Code {
	g.trace.Begin("Assignment")
	defer g.trace.End("Assignment")

	code := g.genExpr(s.Value)
	code.Append(g.genExpr(s.Target))
	code.GenStore(s.Value.Type())
	return code
}

// genRead generates a read: an integer from input, the target address, and a
// store sized for the target's base type.
func (g *Generator) genRead(s *ast.ReadStmt) *Code {
	g.trace.Begin("Read")
	defer g.trace.End("Read")

	code := NewCode()
	code.GenerateOp(machine.READ)
	code.Append(g.genExpr(s.Target))
	code.GenStore(types.OptDereference(s.Target.Type()))
	return code
}

// genWrite generates a write: the value followed by the output operation.
func (g *Generator) genWrite(s *ast.WriteStmt) *Code {
	g.trace.Begin("Write")
	defer g.trace.End("Write")

	code := g.genExpr(s.Value)
	code.GenerateOp(machine.WRITE)
	return code
}

// genCall generates a procedure call.  The call carries the static level
// delta to the callee's defining frame; the code address is resolved at load
// time.
func (g *Generator) genCall(s *ast.CallStmt) *Code {
	g.trace.Begin("Call")
	defer g.trace.End("Call")

	code := NewCode()
	code.GenCall(g.staticLevel-s.Proc.Level, s.Proc)
	return code
}

// genIf generates an if statement from the code for its components.
func (g *Generator) genIf(s *ast.IfStmt) *Code {
	g.trace.Begin("If")
	defer g.trace.End("If")

	code := NewCode()
	code.GenIfThenElse(g.genExpr(s.Cond), g.genStmt(s.Then), g.genStmt(s.Else))
	return code
}

// genWhile generates a test-first while loop: the condition, a branch past
// the body on false, the body, and a branch back to the condition.
func (g *Generator) genWhile(s *ast.WhileStmt) *Code {
	g.trace.Begin("While")
	defer g.trace.End("While")

	code := g.genExpr(s.Cond)
	bodyCode := g.genStmt(s.Body)

	// The forward offset is the size of the body plus the back-branch that
	// follows it; the back offset spans everything emitted so far plus the
	// back-branch itself.
	code.GenJumpIfFalse(bodyCode.Size() + SizeJumpAlways)
	code.Append(bodyCode)
	code.GenJumpAlways(-(code.Size() + SizeJumpAlways))
	return code
}

// genFor generates an ascending, inclusive for loop.  The bounds are
// evaluated once and snapshotted into the loop's hidden frame slots, so the
// body cannot perturb the iteration.  Each round trip tests the snapshots
// against the loop variable, runs the body, and increments the variable.
func (g *Generator) genFor(s *ast.ForStmt) *Code {
	g.trace.Begin("For")
	defer g.trace.End("For")

	varBaseType := s.Control.Type().(*types.ReferenceType).Base

	lowerCode := g.genExpr(s.Lower)
	upperCode := g.genExpr(s.Upper)
	varCode := g.genExpr(s.Control)

	// Initialization: the lower bound into the loop variable, then both
	// bounds into their hidden slots.
	initCode := NewCode()
	initCode.Append(lowerCode)
	initCode.Append(varCode)
	initCode.GenStore(varBaseType)
	initCode.Append(lowerCode)
	initCode.GenLoadConstant(s.LowOffset)
	initCode.GenStore(varBaseType)
	initCode.Append(upperCode)
	initCode.GenLoadConstant(s.HighOffset)
	initCode.GenStore(varBaseType)

	bodyCode := g.genStmt(s.Body)

	// The increment of the loop variable runs at the end of every iteration.
	incrCode := NewCode()
	incrCode.Append(varCode)
	incrCode.GenLoad(varBaseType)
	incrCode.GenLoadConstant(1)
	incrCode.GenerateOp(machine.ADD)
	incrCode.Append(varCode)
	incrCode.GenStore(varBaseType)
	bodyCode.Append(incrCode)

	// Lower test: exit unless lowSlot <= loop variable.
	lowerTest := NewCode()
	lowerTest.GenLoadConstant(s.LowOffset)
	lowerTest.GenLoad(varBaseType)
	lowerTest.Append(varCode)
	lowerTest.GenLoad(varBaseType)
	lowerTest.GenerateOp(machine.LESSEQ)
	lowerTest.GenJumpIfFalse(bodyCode.Size() + SizeJumpAlways)

	// Upper test: exit unless loop variable <= highSlot.  Runs first, so its
	// exit branch also spans the lower test.
	upperTest := NewCode()
	upperTest.Append(varCode)
	upperTest.GenLoad(varBaseType)
	upperTest.GenLoadConstant(s.HighOffset)
	upperTest.GenLoad(varBaseType)
	upperTest.GenerateOp(machine.LESSEQ)
	upperTest.GenJumpIfFalse(bodyCode.Size() + SizeJumpAlways + lowerTest.Size())

	code := NewCode()
	code.Append(initCode)
	code.Append(upperTest)
	code.Append(lowerTest)
	code.Append(bodyCode)
	code.GenJumpAlways(-(code.Size() + SizeJumpAlways - initCode.Size()))
	return code
}
