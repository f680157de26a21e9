package walk

import (
	"pl0c/ast"
	"pl0c/report"
	"pl0c/types"
)

// checkBinary checks a binary operator application.  Operators can be
// overloaded: an overloaded operator advertises an intersection of candidate
// function types which are tried in order; the first candidate both operands
// coerce to wins.
func (c *Checker) checkBinary(e *ast.BinaryExpr) ast.Expr {
	c.trace.Begin("Binary")
	defer c.trace.End("Binary")

	left := c.checkExpr(e.Left)
	right := c.checkExpr(e.Right)
	e.Left = left
	e.Right = right

	opEntry := c.scope.LookupOperator(e.Name)
	if opEntry == nil {
		report.ReportICE("no symbol entry for operator %s", e.Name)
		return nil
	}

	switch opType := opEntry.Type.(type) {
	case *types.OperatorType:
		// The operator is not overloaded: force both operands to the
		// candidate's parameter types.
		argTypes := opType.Func.Arg.(*types.ProductType).Types
		e.Left = c.coerceExp(argTypes[0], left)
		e.Right = c.coerceExp(argTypes[1], right)
		e.SetType(opType.Func.Result)
		e.Kind = opType.Kind
	case *types.IntersectionType:
		report.DebugMessage("Coercing %s and %s to %s",
			left.Type().Repr(), right.Type().Repr(), opType.Repr())
		report.IncDebug()

		for _, candidate := range opType.Types {
			argTypes := candidate.Func.Arg.(*types.ProductType).Types

			newLeft, ok := c.tryCoerce(argTypes[0], left)
			if !ok {
				continue
			}

			newRight, ok := c.tryCoerce(argTypes[1], right)
			if !ok {
				continue
			}

			// Both coercions succeeded: this candidate wins.
			e.Left = newLeft
			e.Right = newRight
			e.SetType(candidate.Func.Result)
			e.Kind = candidate.Kind

			report.DecDebug()
			return e
		}

		report.DecDebug()
		report.DebugMessage("Failed to coerce %s and %s to %s",
			left.Type().Repr(), right.Type().Repr(), opType.Repr())

		c.error(e.Span(), "Type of arguments (%s*%s) does not match %s",
			left.Type().Repr(), right.Type().Repr(), opType.Repr())
		e.SetType(types.ErrorType)
	default:
		report.ReportICE("invalid operator type for %s", e.Name)
	}

	return e
}

// checkUnary checks a unary operator application.  Overload resolution works
// as for binary operators.  Every unary application also reserves one hidden
// word in the current frame: pred and succ spill their working value there
// during the wrap test.
func (c *Checker) checkUnary(e *ast.UnaryExpr) ast.Expr {
	c.trace.Begin("Unary")
	defer c.trace.End("Unary")

	e.IdxOffset = c.scope.AllocVariableSpace(1)

	arg := c.checkExpr(e.Operand)
	e.Operand = arg

	opEntry := c.scope.LookupOperator(e.Name)
	if opEntry == nil {
		report.ReportICE("no symbol entry for operator %s", e.Name)
		return nil
	}

	switch opType := opEntry.Type.(type) {
	case *types.OperatorType:
		e.Operand = c.coerceExp(opType.Func.Arg, arg)
		e.SetType(opType.Func.Result)
		e.Kind = opType.Kind
	case *types.IntersectionType:
		report.DebugMessage("Coercing %s to %s", arg.Type().Repr(), opType.Repr())
		report.IncDebug()

		for _, candidate := range opType.Types {
			newArg, ok := c.tryCoerce(candidate.Func.Arg, arg)
			if !ok {
				continue
			}

			e.Operand = newArg
			e.SetType(candidate.Func.Result)
			e.Kind = candidate.Kind

			report.DecDebug()
			return e
		}

		report.DecDebug()
		report.DebugMessage("Failed to coerce %s to %s",
			arg.Type().Repr(), opType.Repr())

		c.error(e.Span(), "Type of argument %s does not match %s",
			arg.Type().Repr(), opType.Repr())
		e.SetType(types.ErrorType)
	default:
		report.ReportICE("invalid operator type for %s", e.Name)
	}

	return e
}
