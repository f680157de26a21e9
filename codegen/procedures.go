package codegen

import (
	"strings"

	"pl0c/syms"
)

// Procedures is the output of code generation: a mapping from procedure entry
// to its code blob, suitable for a linker/loader.  Entries are kept in
// generation order so listings are deterministic.
type Procedures struct {
	order []*syms.ProcedureEntry
	codes map[*syms.ProcedureEntry]*Code
}

// NewProcedures creates an empty procedure table.
func NewProcedures() *Procedures {
	return &Procedures{codes: make(map[*syms.ProcedureEntry]*Code)}
}

// AddProcedure registers the code blob for a procedure entry.
func (p *Procedures) AddProcedure(entry *syms.ProcedureEntry, code *Code) {
	if _, ok := p.codes[entry]; !ok {
		p.order = append(p.order, entry)
	}

	p.codes[entry] = code
}

// Code returns the code blob generated for the given entry, or nil.
func (p *Procedures) Code(entry *syms.ProcedureEntry) *Code {
	return p.codes[entry]
}

// Entries returns the procedure entries in generation order.
func (p *Procedures) Entries() []*syms.ProcedureEntry {
	return p.order
}

// String renders a listing of every procedure's code.
func (p *Procedures) String() string {
	sb := strings.Builder{}

	for _, entry := range p.order {
		sb.WriteString(entry.Ident() + ":\n")
		sb.WriteString(p.codes[entry].String())
	}

	return sb.String()
}
