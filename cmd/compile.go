package cmd

import (
	"fmt"
	"os"

	"pl0c/codegen"
	"pl0c/report"
	"pl0c/syntax"
	"pl0c/walk"
)

// Compiler orchestrates the compilation phases for a single source program:
// parse, check, generate, and write the resulting code listing.
type Compiler struct {
	// The path of the source program being compiled.
	srcPath string

	// The path the code listing is written to.  Empty writes to standard
	// output.
	outPath string
}

// NewCompiler creates a compiler for the given source program.
func NewCompiler(srcPath, outPath string) *Compiler {
	return &Compiler{srcPath: srcPath, outPath: outPath}
}

// Compile runs all compilation phases.  It returns whether compilation
// succeeded.  Parsing and checking errors stop compilation between phases so
// code generation only ever sees a fully elaborated tree.
func (c *Compiler) Compile() bool {
	f, err := os.Open(c.srcPath)
	if err != nil {
		report.ReportFatal("unable to open source file: %s", err.Error())
	}
	defer f.Close()

	program := syntax.NewParser(f).Parse()
	if report.AnyErrors() {
		return false
	}

	walk.Check(program)
	if report.AnyErrors() {
		return false
	}

	procedures := codegen.Generate(program)

	listing := procedures.String()
	if c.outPath == "" {
		fmt.Print(listing)
		return true
	}

	if err := os.WriteFile(c.outPath, []byte(listing), 0o644); err != nil {
		report.ReportFatal("unable to write listing: %s", err.Error())
	}

	return true
}
