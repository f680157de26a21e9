package codegen

import (
	"pl0c/ast"
	"pl0c/machine"
	"pl0c/report"
	"pl0c/types"
)

// genExpr generates the code for an expression.  An r-value expression leaves
// its value on the stack; an l-value expression (variable or array indexing)
// leaves the cell's address.
func (g *Generator) genExpr(expr ast.Expr) *Code {
	switch e := expr.(type) {
	case *ast.ConstExpr:
		return g.genConst(e)
	case *ast.VariableExpr:
		return g.genVariable(e)
	case *ast.BinaryExpr:
		return g.genBinary(e)
	case *ast.UnaryExpr:
		return g.genUnary(e)
	case *ast.ArrayIndexExpr:
		return g.genArrayIndex(e)
	case *ast.DereferenceExpr:
		return g.genDereference(e)
	case *ast.NarrowSubrangeExpr:
		return g.genNarrowSubrange(e)
	case *ast.WidenSubrangeExpr:
		return g.genWidenSubrange(e)
	case *ast.IdentifierExpr:
		report.ReportICE("generateCode called on an unresolved identifier")
		return nil
	case *ast.ErrorExpr:
		report.ReportICE("generateCode called on an error expression")
		return nil
	default:
		report.ReportICE("unknown expression node %T", expr)
		return nil
	}
}

// genConst generates a constant push, using the dedicated zero and one
// operations where they apply.
func (g *Generator) genConst(e *ast.ConstExpr) *Code {
	g.trace.Begin("Const")
	defer g.trace.End("Const")

	code := NewCode()
	switch e.Value {
	case 0:
		code.GenerateOp(machine.ZERO)
	case 1:
		code.GenerateOp(machine.ONE)
	default:
		code.GenLoadConstant(e.Value)
	}

	return code
}

// genVariable generates the address of a variable: its frame offset reached
// through the static link chain.
func (g *Generator) genVariable(e *ast.VariableExpr) *Code {
	g.trace.Begin("Variable")
	defer g.trace.End("Variable")

	code := NewCode()
	code.GenMemRef(g.staticLevel-e.Variable.Level, e.Variable.Offset)
	return code
}

// genArgs generates the operand values in the given order.
func (g *Generator) genArgs(left, right ast.Expr) *Code {
	code := g.genExpr(left)
	code.Append(g.genExpr(right))
	return code
}

// genBinary generates a binary operator application, dispatching on the
// operator kind the static checker resolved.  Subtraction negates and adds;
// inequality complements an equality; the greater-than forms reverse their
// operands and use the less-than operations.
func (g *Generator) genBinary(e *ast.BinaryExpr) *Code {
	g.trace.Begin("Binary")
	defer g.trace.End("Binary")

	var code *Code
	switch e.Kind {
	case types.OpAdd:
		code = g.genArgs(e.Left, e.Right)
		code.GenerateOp(machine.ADD)
	case types.OpSub:
		code = g.genArgs(e.Left, e.Right)
		code.GenerateOp(machine.NEGATE)
		code.GenerateOp(machine.ADD)
	case types.OpMul:
		code = g.genArgs(e.Left, e.Right)
		code.GenerateOp(machine.MPY)
	case types.OpDiv:
		code = g.genArgs(e.Left, e.Right)
		code.GenerateOp(machine.DIV)
	case types.OpEqual:
		code = g.genArgs(e.Left, e.Right)
		code.GenerateOp(machine.EQUAL)
	case types.OpNotEqual:
		code = g.genArgs(e.Left, e.Right)
		code.GenerateOp(machine.EQUAL)
		code.GenBoolNot()
	case types.OpLess:
		code = g.genArgs(e.Left, e.Right)
		code.GenerateOp(machine.LESS)
	case types.OpLessEq:
		code = g.genArgs(e.Left, e.Right)
		code.GenerateOp(machine.LESSEQ)
	case types.OpGreater:
		// Generate argument values in reverse order and use LESS.
		code = g.genArgs(e.Right, e.Left)
		code.GenerateOp(machine.LESS)
	case types.OpGreaterEq:
		// Generate argument values in reverse order and use LESSEQ.
		code = g.genArgs(e.Right, e.Left)
		code.GenerateOp(machine.LESSEQ)
	default:
		report.ReportICE("unknown binary operator %s", e.Kind.Repr())
		return nil
	}

	return code
}

// genArrayIndex generates the address of an array element: the array's base
// address plus the zero-based index scaled by the element size.  The index
// expression carries its own bounds check where the checker inserted one.
func (g *Generator) genArrayIndex(e *ast.ArrayIndexExpr) *Code {
	g.trace.Begin("ArrayIndexing")
	defer g.trace.End("ArrayIndexing")

	argType, ok := e.Index.Type().(types.Bounded)
	if !ok {
		report.ReportICE("array index of unbounded type %s", e.Index.Type().Repr())
		return nil
	}

	code := g.genExpr(e.Base)

	// Rebase the index to zero by subtracting the index type's lower bound.
	code.Append(g.genExpr(e.Index))
	code.GenLoadConstant(argType.Lower())
	code.GenerateOp(machine.NEGATE)
	code.GenerateOp(machine.ADD)

	// Scale by the element size and add to the base address.
	elemSize := e.Type().(*types.ReferenceType).Base.Size()
	code.GenLoadConstant(elemSize)
	code.GenerateOp(machine.MPY)
	code.GenerateOp(machine.ADD)
	return code
}

// genUnary generates a unary operator application.  pred and succ implement
// a cyclic step over the operand's scalar range: the stepped value is spilled
// to the application's hidden frame slot, wrapped by the range width if it
// left the range, and loaded back as the result.
func (g *Generator) genUnary(e *ast.UnaryExpr) *Code {
	g.trace.Begin("Unary")
	defer g.trace.End("Unary")

	code := g.genExpr(e.Operand)

	switch e.Kind {
	case types.OpNeg:
		code.GenerateOp(machine.NEGATE)
	case types.OpPred:
		code.Append(g.genCyclicStep(e, -1))
	case types.OpSucc:
		code.Append(g.genCyclicStep(e, +1))
	default:
		report.ReportICE("unknown unary operator %s", e.Kind.Repr())
		return nil
	}

	return code
}

// genCyclicStep generates the stepping code shared by pred and succ.  The
// operand's value is on the stack when the fragment begins; the stepped and
// wrapped value is on the stack when it ends.
func (g *Generator) genCyclicStep(e *ast.UnaryExpr, step int) *Code {
	argType, ok := e.Operand.Type().(types.Bounded)
	if !ok {
		report.ReportICE("cyclic step over unbounded type %s", e.Operand.Type().Repr())
		return nil
	}

	varBaseType := e.Operand.Type()
	lower := argType.Lower()
	upper := argType.Upper()
	width := upper - lower + 1

	// Step the value and spill it to the hidden slot.
	initCode := NewCode()
	initCode.GenLoadConstant(1)
	if step < 0 {
		initCode.GenerateOp(machine.NEGATE)
	}
	initCode.GenerateOp(machine.ADD)
	initCode.GenLoadConstant(e.IdxOffset)
	initCode.GenStore(varBaseType)

	// Wrap by the range width: upward past the lower bound for pred,
	// downward past the upper bound for succ.
	wrapCode := NewCode()
	wrapCode.GenLoadConstant(e.IdxOffset)
	wrapCode.GenLoad(varBaseType)
	wrapCode.GenLoadConstant(width)
	if step > 0 {
		wrapCode.GenerateOp(machine.NEGATE)
	}
	wrapCode.GenerateOp(machine.ADD)
	wrapCode.GenLoadConstant(e.IdxOffset)
	wrapCode.GenStore(varBaseType)

	// Skip the wrap while the stepped value is still in range.
	testCode := NewCode()
	if step < 0 {
		testCode.GenLoadConstant(lower)
		testCode.GenLoadConstant(e.IdxOffset)
		testCode.GenLoad(varBaseType)
	} else {
		testCode.GenLoadConstant(e.IdxOffset)
		testCode.GenLoad(varBaseType)
		testCode.GenLoadConstant(upper)
	}
	testCode.GenerateOp(machine.LESSEQ)
	testCode.GenJumpIfFalse(SizeJumpAlways)
	testCode.GenJumpAlways(wrapCode.Size())

	code := NewCode()
	code.Append(initCode)
	code.Append(testCode)
	code.Append(wrapCode)
	code.GenLoadConstant(e.IdxOffset)
	code.GenLoad(varBaseType)
	return code
}

// genDereference generates a load of the value out of an l-value's cell.
func (g *Generator) genDereference(e *ast.DereferenceExpr) *Code {
	g.trace.Begin("Dereference")
	defer g.trace.End("Dereference")

	code := g.genExpr(e.LValue)
	code.GenLoad(e.Type())
	return code
}

// genNarrowSubrange generates the operand followed by the runtime bounds
// check against the target subrange.
func (g *Generator) genNarrowSubrange(e *ast.NarrowSubrangeExpr) *Code {
	g.trace.Begin("NarrowSubrange")
	defer g.trace.End("NarrowSubrange")

	subrange := e.Subrange()
	code := g.genExpr(e.Operand)
	code.GenBoundsCheck(subrange.Lower(), subrange.Upper())
	return code
}

// genWidenSubrange generates the operand unchanged: widening a subrange to
// its base type requires no runtime work.
func (g *Generator) genWidenSubrange(e *ast.WidenSubrangeExpr) *Code {
	g.trace.Begin("WidenSubrange")
	defer g.trace.End("WidenSubrange")

	return g.genExpr(e.Operand)
}
