package codegen

import (
	"pl0c/ast"
	"pl0c/machine"
	"pl0c/report"
)

// Generator lowers the checked abstract syntax tree to stack-machine code.
// It must only run on a tree the static checker elaborated without errors:
// encountering an unresolved identifier or an error node here is an internal
// compiler error.
type Generator struct {
	// Current static level of nesting into procedures.
	staticLevel int

	// Table of code for each procedure.
	procedures *Procedures

	// The visitor tracer for debug output.
	trace *report.Tracer
}

// Generate generates the code for the program and all its procedures.
func Generate(program *ast.ProcedureDecl) *Procedures {
	g := &Generator{
		procedures: NewProcedures(),
		trace:      report.NewTracer("generating"),
	}

	g.trace.Begin("Program")
	defer g.trace.End("Program")

	// The main program is at static level 1.
	g.staticLevel = program.Entry.LocalScope.Level()
	if g.staticLevel != 1 {
		report.ReportICE("main program at static level %d", g.staticLevel)
	}

	g.genProcedure(program)
	return g.procedures
}

// genProcedure generates the code for a single procedure and registers it
// under the procedure's entry.
func (g *Generator) genProcedure(proc *ast.ProcedureDecl) {
	g.trace.Begin("Procedure")
	defer g.trace.End("Procedure")

	code := g.genBlock(proc.Block)
	code.GenerateOp(machine.RETURN)
	g.procedures.AddProcedure(proc.Entry, code)
}

// genBlock generates the code for a block: the frame extension for its local
// variables followed by the body.  The block's nested procedures are
// generated afterwards, one static level deeper.
func (g *Generator) genBlock(block *ast.Block) *Code {
	g.trace.Begin("Block")
	defer g.trace.End("Block")

	code := NewCode()
	code.GenAllocStack(block.Locals.VariableSpace())
	code.Append(g.genStmt(block.Body))

	g.staticLevel++
	for _, proc := range block.Procs {
		g.genProcedure(proc)
	}
	g.staticLevel--

	return code
}
