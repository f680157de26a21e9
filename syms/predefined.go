package syms

import (
	"pl0c/types"
)

// NewPredefinedScope builds the level-0 scope holding the predefined types,
// constants, and operators.  Every compilation gets a fresh predefined scope:
// user scalar declarations extend the pred/succ operator intersections in
// place, so the scope cannot be shared between compilations.
func NewPredefinedScope() *Scope {
	scope := NewScope(nil)

	scope.Define(NewTypeEntry("int", types.IntegerType))
	scope.Define(NewTypeEntry("boolean", types.BooleanType))

	scope.Define(NewConstantEntry("false", types.BooleanType, 0))
	scope.Define(NewConstantEntry("true", types.BooleanType, 1))

	// Arithmetic binary operators: int * int -> int.
	defineBinaryOperator(scope, "+", types.OpAdd, types.IntegerType, types.IntegerType)
	defineBinaryOperator(scope, "-", types.OpSub, types.IntegerType, types.IntegerType)
	defineBinaryOperator(scope, "*", types.OpMul, types.IntegerType, types.IntegerType)
	defineBinaryOperator(scope, "/", types.OpDiv, types.IntegerType, types.IntegerType)

	// Relational operators: int * int -> boolean.
	defineBinaryOperator(scope, "<", types.OpLess, types.IntegerType, types.BooleanType)
	defineBinaryOperator(scope, "<=", types.OpLessEq, types.IntegerType, types.BooleanType)
	defineBinaryOperator(scope, ">", types.OpGreater, types.IntegerType, types.BooleanType)
	defineBinaryOperator(scope, ">=", types.OpGreaterEq, types.IntegerType, types.BooleanType)

	// Equality operators are overloaded over int and boolean operands.  The
	// int candidate comes first: resolution tries candidates in order.
	scope.DefineOperator(NewOperatorEntry("=", types.NewIntersectionType(
		binaryCandidate(types.OpEqual, types.IntegerType, types.BooleanType),
		binaryCandidate(types.OpEqual, types.BooleanType, types.BooleanType),
	)))
	scope.DefineOperator(NewOperatorEntry("<>", types.NewIntersectionType(
		binaryCandidate(types.OpNotEqual, types.IntegerType, types.BooleanType),
		binaryCandidate(types.OpNotEqual, types.BooleanType, types.BooleanType),
	)))

	// Unary negation: int -> int.
	scope.DefineOperator(NewOperatorEntry("neg", types.NewOperatorType(
		types.OpNeg,
		types.NewFuncType(types.IntegerType, types.IntegerType),
	)))

	// Cyclic successor and predecessor.  Seeded with the boolean candidate;
	// each user scalar declaration appends its own candidate via
	// ExtendScalarOperators.
	scope.DefineOperator(NewOperatorEntry("pred", types.NewIntersectionType(
		unaryCandidate(types.OpPred, types.BooleanType),
	)))
	scope.DefineOperator(NewOperatorEntry("succ", types.NewIntersectionType(
		unaryCandidate(types.OpSucc, types.BooleanType),
	)))

	return scope
}

// ExtendScalarOperators appends pred/succ overload candidates for a newly
// declared scalar type.  Candidates accumulate in declaration order after the
// predefined ones.
func ExtendScalarOperators(scope *Scope, scalar *types.ScalarType) {
	for _, op := range []struct {
		name string
		kind types.OpKind
	}{
		{"pred", types.OpPred},
		{"succ", types.OpSucc},
	} {
		entry := scope.LookupOperator(op.name)
		if entry == nil {
			continue
		}

		if it, ok := entry.Type.(*types.IntersectionType); ok {
			it.AddType(unaryCandidate(op.kind, scalar))
		}
	}
}

// -----------------------------------------------------------------------------

// binaryCandidate builds an overload candidate operand * operand -> result.
func binaryCandidate(kind types.OpKind, operand, result types.Type) *types.OperatorType {
	return types.NewOperatorType(kind, types.NewFuncType(
		types.NewProductType(operand, operand),
		result,
	))
}

// unaryCandidate builds an overload candidate operand -> operand.
func unaryCandidate(kind types.OpKind, operand types.Type) *types.OperatorType {
	return types.NewOperatorType(kind, types.NewFuncType(operand, operand))
}

// defineBinaryOperator registers a non-overloaded binary operator
// operand * operand -> result under the given name.
func defineBinaryOperator(scope *Scope, name string, kind types.OpKind, operand, result types.Type) {
	scope.DefineOperator(NewOperatorEntry(name, binaryCandidate(kind, operand, result)))
}
