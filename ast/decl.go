package ast

import (
	"pl0c/syms"
)

// Block represents a procedure body: nested procedure declarations, the local
// scope they and the block's variables live in, and the body statement.
type Block struct {
	ASTBase

	// The nested procedure declarations in source order.
	Procs []*ProcedureDecl

	// The body statement of the block.
	Body Stmt

	// The scope holding the block's local declarations.
	Locals *syms.Scope
}

// ProcedureDecl represents a procedure declaration.  The main program is a
// special case of a procedure.  The parser pre-builds the procedure entry
// together with its local scope and static level.
type ProcedureDecl struct {
	ASTBase

	// The procedure's pre-built symbol entry.
	Entry *syms.ProcedureEntry

	// The procedure's block.
	Block *Block
}
