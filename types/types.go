package types

import (
	"fmt"
	"strings"

	"pl0c/util"
)

// Type represents a data type of the source language.
type Type interface {
	// Returns whether this type is equal to the other type.  This should only
	// be called within methods of type instances: external code uses Equals.
	equals(other Type) bool

	// Returns the amount of stack space, in words, occupied by a value of
	// this type.
	Size() int

	// Returns the representative string for this type.
	Repr() string
}

// -----------------------------------------------------------------------------

// errorType is the sentinel type given to every node whose type is erroneous.
// It absorbs cascading failures: an operand of this type has already been
// reported and is never reported again.
type errorType struct{}

// ErrorType is the single shared instance of the error sentinel.
var ErrorType Type = errorType{}

func (et errorType) equals(other Type) bool {
	_, ok := other.(errorType)
	return ok
}

func (et errorType) Size() int {
	return 0
}

func (et errorType) Repr() string {
	return "<error>"
}

// -----------------------------------------------------------------------------

// ScalarType represents a dense integer interval with a name.  The predefined
// `int` and `boolean` types are scalar types, as are user-declared scalar
// (enumeration) types and the anonymous scalars synthesized for `for` loops.
type ScalarType struct {
	// The name of the scalar type.
	name string

	// The space occupied by a value of this type in words.
	space int

	// The inclusive bounds of the interval.
	lower, upper int
}

// NewScalarType creates a new scalar type over [lower, upper].
func NewScalarType(name string, space, lower, upper int) *ScalarType {
	return &ScalarType{name: name, space: space, lower: lower, upper: upper}
}

// Scalar and subrange equality is structural: same name and same bounds.
func (st *ScalarType) equals(other Type) bool {
	if ost, ok := other.(*ScalarType); ok {
		return st.name == ost.name && st.lower == ost.lower && st.upper == ost.upper
	}

	return false
}

func (st *ScalarType) Size() int {
	return st.space
}

func (st *ScalarType) Repr() string {
	return st.name
}

func (st *ScalarType) Lower() int {
	return st.lower
}

func (st *ScalarType) Upper() int {
	return st.upper
}

// -----------------------------------------------------------------------------

// SubrangeType represents a refinement of a scalar base type with tighter
// bounds.  Values narrow into a subrange through a runtime bounds check and
// widen back to the base type for free.
type SubrangeType struct {
	// The scalar type being refined.
	Base Type

	// The inclusive bounds of the refinement.
	lower, upper int
}

// NewSubrangeType creates a new subrange of base over [lower, upper].
func NewSubrangeType(base Type, lower, upper int) *SubrangeType {
	return &SubrangeType{Base: base, lower: lower, upper: upper}
}

func (st *SubrangeType) equals(other Type) bool {
	if ost, ok := other.(*SubrangeType); ok {
		return Equals(st.Base, ost.Base) && st.lower == ost.lower && st.upper == ost.upper
	}

	return false
}

func (st *SubrangeType) Size() int {
	return st.Base.Size()
}

func (st *SubrangeType) Repr() string {
	return fmt.Sprintf("%d..%d", st.lower, st.upper)
}

func (st *SubrangeType) Lower() int {
	return st.lower
}

func (st *SubrangeType) Upper() int {
	return st.upper
}

// -----------------------------------------------------------------------------

// ReferenceType is the type of an l-value: a memory cell holding a value of
// the base type.  Reference types have identity equality: each variable entry
// owns exactly one reference type instance.
type ReferenceType struct {
	// The type of the value stored in the referenced cell.
	Base Type
}

// NewReferenceType creates a new reference to base.
func NewReferenceType(base Type) *ReferenceType {
	return &ReferenceType{Base: base}
}

func (rt *ReferenceType) equals(other Type) bool {
	return rt == other
}

func (rt *ReferenceType) Size() int {
	return 1
}

func (rt *ReferenceType) Repr() string {
	return "ref(" + rt.Base.Repr() + ")"
}

// -----------------------------------------------------------------------------

// ArrayType represents a one-dimensional array type.  The index type is
// always a scalar or subrange type.  Array types have identity equality.
type ArrayType struct {
	// The type used to index the array.
	Index Type

	// The type of the array's elements.
	Elem Type
}

// NewArrayType creates a new array type indexed by index with elements of
// type elem.
func NewArrayType(index, elem Type) *ArrayType {
	return &ArrayType{Index: index, Elem: elem}
}

func (at *ArrayType) equals(other Type) bool {
	return at == other
}

func (at *ArrayType) Size() int {
	if bounded, ok := at.Index.(Bounded); ok {
		return (bounded.Upper() - bounded.Lower() + 1) * at.Elem.Size()
	}

	return 0
}

func (at *ArrayType) Repr() string {
	return "array[" + at.Index.Repr() + "] of " + at.Elem.Repr()
}

// -----------------------------------------------------------------------------

// FuncType represents the type of an operator: a mapping from an argument
// type to a result type.  For binary operators the argument type is a
// ProductType of the two operand types.
type FuncType struct {
	// The argument type of the operator.
	Arg Type

	// The result type of the operator.
	Result Type
}

// NewFuncType creates a new function type from arg to result.
func NewFuncType(arg, result Type) *FuncType {
	return &FuncType{Arg: arg, Result: result}
}

func (ft *FuncType) equals(other Type) bool {
	if oft, ok := other.(*FuncType); ok {
		return Equals(ft.Arg, oft.Arg) && Equals(ft.Result, oft.Result)
	}

	return false
}

func (ft *FuncType) Size() int {
	return 0
}

func (ft *FuncType) Repr() string {
	return ft.Arg.Repr() + " -> " + ft.Result.Repr()
}

// -----------------------------------------------------------------------------

// ProductType is a tuple of types used as the argument type of multi-operand
// operators.
type ProductType struct {
	// The element types of the product in operand order.
	Types []Type
}

// NewProductType creates a new product over the given types.
func NewProductType(typs ...Type) *ProductType {
	return &ProductType{Types: typs}
}

func (pt *ProductType) equals(other Type) bool {
	opt, ok := other.(*ProductType)
	if !ok || len(pt.Types) != len(opt.Types) {
		return false
	}

	for i, typ := range pt.Types {
		if !Equals(typ, opt.Types[i]) {
			return false
		}
	}

	return true
}

func (pt *ProductType) Size() int {
	size := 0
	for _, typ := range pt.Types {
		size += typ.Size()
	}

	return size
}

func (pt *ProductType) Repr() string {
	return "(" + strings.Join(util.Map(pt.Types, Type.Repr), "*") + ")"
}

// -----------------------------------------------------------------------------

// OperatorType represents an individual overload candidate of an operator: a
// resolved operator kind together with the function type of the candidate.
type OperatorType struct {
	// The operator kind this candidate resolves to.
	Kind OpKind

	// The function type of the candidate.
	Func *FuncType
}

// NewOperatorType creates a new operator candidate.
func NewOperatorType(kind OpKind, fn *FuncType) *OperatorType {
	return &OperatorType{Kind: kind, Func: fn}
}

func (ot *OperatorType) equals(other Type) bool {
	if oot, ok := other.(*OperatorType); ok {
		return ot.Kind == oot.Kind && ot.Func.equals(oot.Func)
	}

	return false
}

func (ot *OperatorType) Size() int {
	return 0
}

func (ot *OperatorType) Repr() string {
	return ot.Func.Repr()
}

// -----------------------------------------------------------------------------

// IntersectionType is the advertised type of an overloaded operator name: the
// set of its overload candidates in resolution order.
type IntersectionType struct {
	// The overload candidates in the order they are tried.
	Types []*OperatorType
}

// NewIntersectionType creates a new intersection over the given candidates.
func NewIntersectionType(typs ...*OperatorType) *IntersectionType {
	return &IntersectionType{Types: typs}
}

// AddType appends a new candidate to the intersection.  Candidates are tried
// in insertion order so earlier candidates take priority.
func (it *IntersectionType) AddType(ot *OperatorType) {
	it.Types = append(it.Types, ot)
}

func (it *IntersectionType) equals(other Type) bool {
	return it == other
}

func (it *IntersectionType) Size() int {
	return 0
}

func (it *IntersectionType) Repr() string {
	return "(" + strings.Join(util.Map(it.Types, (*OperatorType).Repr), " | ") + ")"
}
