package walk

import (
	"pl0c/ast"
	"pl0c/types"
)

// tryCoerce attempts to coerce exp to the destination type, returning the
// coerced expression and whether coercion succeeded.  At most one conversion
// node is inserted per step, in a fixed priority:
//
//  1. if the types already match, the expression is returned unchanged;
//  2. a reference whose base matches is dereferenced;
//  3. a reference whose base coerces is dereferenced and coerced;
//  4. a value coercible to the base of a destination subrange is narrowed
//     (with a runtime bounds check);
//  5. a subrange-typed value is widened to its base and coerced.
//
// Error-typed expressions coerce to anything: they have already been
// reported and absorbing them here suppresses cascading errors.  Failure
// never reports; overload resolution uses it to reject candidates.
func (c *Checker) tryCoerce(dest types.Type, exp ast.Expr) (ast.Expr, bool) {
	if types.IsError(exp.Type()) {
		return exp, true
	}

	if types.Equals(exp.Type(), dest) {
		return exp, true
	}

	if refType, ok := exp.Type().(*types.ReferenceType); ok {
		deref := ast.NewDereferenceExpr(exp)
		deref.SetType(refType.Base)

		if types.Equals(refType.Base, dest) {
			return deref, true
		}

		return c.tryCoerce(dest, deref)
	}

	if subrange, ok := dest.(*types.SubrangeType); ok {
		if inner, ok := c.tryCoerce(subrange.Base, exp); ok {
			return ast.NewNarrowSubrangeExpr(subrange, inner), true
		}
	}

	if subrange, ok := exp.Type().(*types.SubrangeType); ok {
		widened := ast.NewWidenSubrangeExpr(subrange.Base, exp)

		if types.Equals(subrange.Base, dest) {
			return widened, true
		}

		return c.tryCoerce(dest, widened)
	}

	return exp, false
}

// coerceExp coerces exp to the destination type where a mismatch is fatal to
// the site: on failure a static error is reported and an error-typed node is
// returned in the expression's place.
func (c *Checker) coerceExp(dest types.Type, exp ast.Expr) ast.Expr {
	if newExp, ok := c.tryCoerce(dest, exp); ok {
		return newExp
	}

	c.error(exp.Span(), "no matching conversion from %s to %s",
		exp.Type().Repr(), dest.Repr())
	return ast.NewErrorExpr(exp.Span())
}

// checkCondition checks a controlling condition: the expression is elaborated
// and coerced to boolean.
func (c *Checker) checkCondition(cond ast.Expr) ast.Expr {
	return c.coerceExp(types.BooleanType, c.checkExpr(cond))
}
