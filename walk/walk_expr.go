package walk

import (
	"pl0c/ast"
	"pl0c/report"
	"pl0c/syms"
	"pl0c/types"
)

// checkExpr checks an expression node and returns its elaborated form.  The
// returned node replaces the input node in its parent: identifiers become
// constants or variables, and every node ends up with an exact type or the
// error sentinel.
func (c *Checker) checkExpr(expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.ErrorExpr, *ast.ConstExpr, *ast.VariableExpr,
		*ast.NarrowSubrangeExpr, *ast.WidenSubrangeExpr:
		// Types already set up: nothing to check.
		return expr
	case *ast.IdentifierExpr:
		return c.checkIdentifier(e)
	case *ast.DereferenceExpr:
		return c.checkDereference(e)
	case *ast.BinaryExpr:
		return c.checkBinary(e)
	case *ast.UnaryExpr:
		return c.checkUnary(e)
	case *ast.ArrayIndexExpr:
		return c.checkArrayIndex(e)
	default:
		report.ReportICE("unknown expression node %T", expr)
		return nil
	}
}

// checkIdentifier resolves an identifier.  At parse time one cannot tell
// whether an identifier was declared as a constant or a variable, so the
// parser emits a bare identifier node and it is replaced here.
func (c *Checker) checkIdentifier(e *ast.IdentifierExpr) ast.Expr {
	c.trace.Begin("Identifier")
	defer c.trace.End("Identifier")

	switch entry := c.scope.Lookup(e.Name).(type) {
	case *syms.ConstantEntry:
		report.DebugMessage("Transformed %s to Constant", e.Name)
		return ast.NewConstExpr(e.Span(), entry.Type, entry.Value)
	case *syms.VarEntry:
		report.DebugMessage("Transformed %s to Variable", e.Name)
		return ast.NewVariableExpr(e.Span(), entry)
	default:
		// Undefined identifier or a type or procedure identifier.
		c.error(e.Span(), "Constant or variable identifier required")
		return ast.NewErrorExpr(e.Span())
	}
}

// checkDereference checks an explicit dereference: the operand must be an
// l-value and the node's type is the base type of its reference type.
func (c *Checker) checkDereference(e *ast.DereferenceExpr) ast.Expr {
	c.trace.Begin("Dereference")
	defer c.trace.End("Dereference")

	lval := c.checkExpr(e.LValue)
	e.LValue = lval

	if refType, ok := lval.Type().(*types.ReferenceType); ok {
		e.SetType(refType.Base)
	} else if types.IsError(lval.Type()) {
		e.SetType(types.ErrorType)
	} else {
		c.error(e.Span(), "cannot dereference an expression which isn't a reference")
		e.SetType(types.ErrorType)
	}

	return e
}

// checkArrayIndex checks an array element access.  The base must elaborate to
// a reference to an array; the node's type becomes a reference to the element
// type and the index is coerced to the array's index type.
func (c *Checker) checkArrayIndex(e *ast.ArrayIndexExpr) ast.Expr {
	c.trace.Begin("ArrayIndexing")
	defer c.trace.End("ArrayIndexing")

	baseExp := c.checkExpr(e.Base)
	argExp := c.checkExpr(e.Index)
	e.Base = baseExp
	e.Index = argExp

	refType, ok := baseExp.Type().(*types.ReferenceType)
	if !ok {
		if !types.IsError(baseExp.Type()) {
			c.error(baseExp.Span(), "Should be ReferenceType")
		}

		e.SetType(types.ErrorType)
		return e
	}

	arrayType, ok := refType.Base.(*types.ArrayType)
	if !ok {
		c.error(baseExp.Span(), "must be an array type")
		e.SetType(types.ErrorType)
		return e
	}

	e.SetType(types.NewReferenceType(arrayType.Elem))

	// Coercion to the index type dereferences a plain variable index and
	// narrows anything not already typed as the index subrange, which adds
	// the runtime bounds check.  An index already of the index type is left
	// without a check.
	e.Index = c.coerceExp(arrayType.Index, argExp)
	return e
}
