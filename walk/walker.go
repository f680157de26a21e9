package walk

import (
	"fmt"

	"pl0c/ast"
	"pl0c/report"
	"pl0c/syms"
)

// Checker performs the static semantic checks on the abstract syntax tree:
// it resolves identifiers against the scope tree, assigns a type to every
// expression node, and rewrites the tree so that every implicit conversion is
// an explicit node.  After a successful check the tree is type-exact and
// ready for code generation.
type Checker struct {
	// The scope of the procedure currently being checked.
	scope *syms.Scope

	// The visitor tracer for debug output.
	trace *report.Tracer
}

// Check semantically analyzes the program.  The main program is a special
// case of a procedure.  Errors are reported through the report package;
// checking continues past static errors so that a single pass surfaces as
// many as possible.
func Check(program *ast.ProcedureDecl) {
	c := &Checker{
		scope: program.Entry.LocalScope.Parent(),
		trace: report.NewTracer("checking"),
	}

	c.trace.Begin("Program")
	c.checkProcedure(program)
	c.trace.End("Program")
}

// checkProcedure checks a procedure declaration: it attaches the block to the
// procedure's symbol entry, enters the local scope, checks the block, and
// restores the parent scope on every exit path.
func (c *Checker) checkProcedure(proc *ast.ProcedureDecl) {
	c.trace.Begin("Procedure")
	defer c.trace.End("Procedure")

	procEntry := proc.Entry

	// Save the block's abstract syntax tree in the procedure entry.
	procEntry.Block = proc.Block

	// Resolve all references to identifiers within the declarations and
	// enter the local scope of the procedure.
	localScope := procEntry.LocalScope
	localScope.Resolve()

	savedScope := c.scope
	c.scope = localScope
	defer func() { c.scope = savedScope }()

	c.checkBlock(proc.Block)
}

// checkBlock checks the nested procedures of a block and then its body.
func (c *Checker) checkBlock(block *ast.Block) {
	c.trace.Begin("Block")
	defer c.trace.End("Block")

	for _, proc := range block.Procs {
		c.checkProcedure(proc)
	}

	c.checkStmt(block.Body)
}

// -----------------------------------------------------------------------------

// error reports a static error.  The offending node is annotated with the
// error sentinel by the caller and checking continues.
func (c *Checker) error(span *report.TextSpan, msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	report.DebugMessage("%s", formatted)
	report.ReportError(span, "%s", formatted)
}
