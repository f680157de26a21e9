package syms

import (
	"pl0c/types"
)

// Entry represents a symbol-table entry: a named constant, variable,
// procedure, type, or operator.
type Entry interface {
	// The identifier naming the entry.
	Ident() string
}

// -----------------------------------------------------------------------------

// ConstantEntry is the entry for a declared read-only constant.
type ConstantEntry struct {
	name string

	// The type of the constant.
	Type types.Type

	// The value of the constant.
	Value int
}

// NewConstantEntry creates a new constant entry.
func NewConstantEntry(name string, typ types.Type, value int) *ConstantEntry {
	return &ConstantEntry{name: name, Type: typ, Value: value}
}

func (ce *ConstantEntry) Ident() string {
	return ce.name
}

// -----------------------------------------------------------------------------

// VarEntry is the entry for a declared variable.  Its type is always a
// reference type: the variable names a memory cell holding a value of the
// reference's base type.
type VarEntry struct {
	name string

	// The reference type of the variable.  Each variable owns exactly one
	// reference type instance.
	Type *types.ReferenceType

	// The static nesting level of the frame holding the variable.
	Level int

	// The word offset of the variable within its frame.
	Offset int

	// Whether the variable may be assigned to.  The read-only bit is set when
	// the variable becomes the control variable of a `for` loop and is never
	// cleared.
	readOnly bool
}

// NewVarEntry creates a new variable entry of the given base type at the
// given level and offset.
func NewVarEntry(name string, base types.Type, level, offset int) *VarEntry {
	return &VarEntry{
		name:   name,
		Type:   types.NewReferenceType(base),
		Level:  level,
		Offset: offset,
	}
}

func (ve *VarEntry) Ident() string {
	return ve.name
}

// ReadOnly returns whether the variable is read-only.
func (ve *VarEntry) ReadOnly() bool {
	return ve.readOnly
}

// SetReadOnly marks the variable read-only.
func (ve *VarEntry) SetReadOnly() {
	ve.readOnly = true
}

// -----------------------------------------------------------------------------

// ProcedureEntry is the entry for a declared procedure.  The parser pre-builds
// one for every procedure declaration (including the main program) together
// with its local scope and static level; the static checker attaches the
// checked block.
type ProcedureEntry struct {
	name string

	// The static nesting level of the procedure.  The main program is at
	// level 1.
	Level int

	// The scope holding the procedure's local declarations.
	LocalScope *Scope

	// The procedure's block AST.  Stored untyped to avoid an import cycle
	// with the ast package; the static checker sets it and the loader reads
	// it back.
	Block any
}

// NewProcedureEntry creates a new procedure entry at the given level.  Its
// local scope is attached by the parser once the scope is built.
func NewProcedureEntry(name string, level int) *ProcedureEntry {
	return &ProcedureEntry{name: name, Level: level}
}

func (pe *ProcedureEntry) Ident() string {
	return pe.name
}

// -----------------------------------------------------------------------------

// TypeEntry is the entry for a declared type identifier.
type TypeEntry struct {
	name string

	// The declared type.
	Type types.Type
}

// NewTypeEntry creates a new type entry.
func NewTypeEntry(name string, typ types.Type) *TypeEntry {
	return &TypeEntry{name: name, Type: typ}
}

func (te *TypeEntry) Ident() string {
	return te.name
}

// -----------------------------------------------------------------------------

// OperatorEntry is the entry for an operator name.  Operators live in a
// namespace disjoint from ordinary identifiers: no declaration can shadow
// them.  The entry's type is either a single OperatorType or an
// IntersectionType of overload candidates.
type OperatorEntry struct {
	name string

	// The advertised type of the operator.
	Type types.Type
}

// NewOperatorEntry creates a new operator entry.
func NewOperatorEntry(name string, typ types.Type) *OperatorEntry {
	return &OperatorEntry{name: name, Type: typ}
}

func (oe *OperatorEntry) Ident() string {
	return oe.name
}
