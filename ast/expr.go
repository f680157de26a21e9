package ast

import (
	"pl0c/report"
	"pl0c/syms"
	"pl0c/types"
)

// Expr represents an expression node.  Every expression carries a type which
// the static checker makes exact: after elaboration an l-value has a
// reference type, an r-value has a non-reference type, and a failed node has
// the error sentinel.
type Expr interface {
	Node

	// Type is the yielded type of the expression.
	Type() types.Type

	// SetType sets the type of the expression.
	SetType(types.Type)
}

// ExprBase is the base struct for all expressions.
type ExprBase struct {
	ASTBase

	typ types.Type
}

// NewExprBase creates a new expression base with the given span and type.
func NewExprBase(span *report.TextSpan, typ types.Type) ExprBase {
	return ExprBase{ASTBase: NewASTBaseOn(span), typ: typ}
}

func (eb *ExprBase) Type() types.Type {
	return eb.typ
}

func (eb *ExprBase) SetType(typ types.Type) {
	eb.typ = typ
}

// -----------------------------------------------------------------------------

// ErrorExpr marks an expression that failed to parse or check.  Its type is
// always the error sentinel.
type ErrorExpr struct {
	ExprBase
}

// NewErrorExpr creates a new error expression at the given span.
func NewErrorExpr(span *report.TextSpan) *ErrorExpr {
	return &ErrorExpr{ExprBase: NewExprBase(span, types.ErrorType)}
}

// -----------------------------------------------------------------------------

// ConstExpr represents a constant value, either literal or the folded value
// of a constant identifier.
type ConstExpr struct {
	ExprBase

	// The constant's value.
	Value int
}

// NewConstExpr creates a new constant of the given type and value.
func NewConstExpr(span *report.TextSpan, typ types.Type, value int) *ConstExpr {
	return &ConstExpr{ExprBase: NewExprBase(span, typ), Value: value}
}

// -----------------------------------------------------------------------------

// IdentifierExpr represents a not-yet-resolved identifier.  At parse time one
// cannot tell whether an identifier names a constant or a variable; the
// static checker replaces every identifier with a ConstExpr or VariableExpr.
type IdentifierExpr struct {
	ExprBase

	// The identifier's name.
	Name string
}

// NewIdentifierExpr creates a new unresolved identifier expression.
func NewIdentifierExpr(span *report.TextSpan, name string) *IdentifierExpr {
	return &IdentifierExpr{ExprBase: NewExprBase(span, nil), Name: name}
}

// -----------------------------------------------------------------------------

// VariableExpr represents a resolved variable reference.  Its type is the
// variable's reference type: the expression denotes the variable's address.
type VariableExpr struct {
	ExprBase

	// The symbol entry of the variable.
	Variable *syms.VarEntry
}

// NewVariableExpr creates a new variable reference for the given entry.
func NewVariableExpr(span *report.TextSpan, entry *syms.VarEntry) *VariableExpr {
	return &VariableExpr{ExprBase: NewExprBase(span, entry.Type), Variable: entry}
}

// -----------------------------------------------------------------------------

// BinaryExpr represents a binary operator application.
type BinaryExpr struct {
	ExprBase

	// The source name of the operator, used to look up its advertised type.
	Name string

	// The operator kind resolved by the static checker.
	Kind types.OpKind

	// The operand expressions.
	Left, Right Expr
}

// NewBinaryExpr creates a new unresolved binary operator application.
func NewBinaryExpr(span *report.TextSpan, name string, left, right Expr) *BinaryExpr {
	return &BinaryExpr{
		ExprBase: NewExprBase(span, nil),
		Name:     name,
		Left:     left,
		Right:    right,
	}
}

// -----------------------------------------------------------------------------

// UnaryExpr represents a unary operator application.
type UnaryExpr struct {
	ExprBase

	// The source name of the operator, used to look up its advertised type.
	Name string

	// The operator kind resolved by the static checker.
	Kind types.OpKind

	// The operand expression.
	Operand Expr

	// The frame offset of the hidden word reserved for this application.
	// pred/succ spill their working value there during the wrap test.
	IdxOffset int
}

// NewUnaryExpr creates a new unresolved unary operator application.
func NewUnaryExpr(span *report.TextSpan, name string, operand Expr) *UnaryExpr {
	return &UnaryExpr{ExprBase: NewExprBase(span, nil), Name: name, Operand: operand}
}

// -----------------------------------------------------------------------------

// ArrayIndexExpr represents an array element access.  After checking, the
// base is a reference to an array and the node's type is a reference to the
// element type: the expression denotes the element's address.
type ArrayIndexExpr struct {
	ExprBase

	// The expression yielding the array's base address.
	Base Expr

	// The index expression.
	Index Expr
}

// NewArrayIndexExpr creates a new array indexing expression.
func NewArrayIndexExpr(span *report.TextSpan, base, index Expr) *ArrayIndexExpr {
	return &ArrayIndexExpr{ExprBase: NewExprBase(span, nil), Base: base, Index: index}
}

// -----------------------------------------------------------------------------

// DereferenceExpr loads the value out of an l-value: its operand has type
// ref(T) and the node has type T.  The static checker inserts one wherever an
// r-value is required and an l-value is supplied.
type DereferenceExpr struct {
	ExprBase

	// The l-value being dereferenced.
	LValue Expr
}

// NewDereferenceExpr creates a new dereference of the given l-value.  The
// node's type is set by the static checker.
func NewDereferenceExpr(lval Expr) *DereferenceExpr {
	return &DereferenceExpr{ExprBase: NewExprBase(lval.Span(), nil), LValue: lval}
}

// -----------------------------------------------------------------------------

// NarrowSubrangeExpr narrows its operand into a subrange, checking the value
// against the subrange bounds at run time.  Inserted by coercion; its type is
// the target subrange.
type NarrowSubrangeExpr struct {
	ExprBase

	// The expression being narrowed.
	Operand Expr
}

// NewNarrowSubrangeExpr creates a new narrowing of operand into subrange.
func NewNarrowSubrangeExpr(subrange *types.SubrangeType, operand Expr) *NarrowSubrangeExpr {
	return &NarrowSubrangeExpr{ExprBase: NewExprBase(operand.Span(), subrange), Operand: operand}
}

// Subrange returns the target subrange type of the narrowing.
func (ne *NarrowSubrangeExpr) Subrange() *types.SubrangeType {
	return ne.Type().(*types.SubrangeType)
}

// -----------------------------------------------------------------------------

// WidenSubrangeExpr widens its subrange-typed operand to the subrange's base
// type.  Inserted by coercion; widening needs no runtime work.
type WidenSubrangeExpr struct {
	ExprBase

	// The expression being widened.
	Operand Expr
}

// NewWidenSubrangeExpr creates a new widening of operand to the given base
// type.
func NewWidenSubrangeExpr(base types.Type, operand Expr) *WidenSubrangeExpr {
	return &WidenSubrangeExpr{ExprBase: NewExprBase(operand.Span(), base), Operand: operand}
}
