package report

// Tracer traces the progress of a tree-walking pass.  Every visit method of
// the static checker and the code generator brackets its work with Begin and
// End so that, at the verbose log level, the nesting of the traversal is
// visible as an indented trace.
type Tracer struct {
	// The name of the pass being traced, eg. "checking" or "generating".
	phase string
}

// NewTracer creates a tracer for the named pass.
func NewTracer(phase string) *Tracer {
	return &Tracer{phase: phase}
}

// Begin records entry to the named tree node and increases the trace depth.
func (t *Tracer) Begin(node string) {
	DebugMessage("%s %s", t.phase, node)
	IncDebug()
}

// End marks exit from the named tree node by decreasing the trace depth.  It
// emits no message.
func (t *Tracer) End(node string) {
	DecDebug()
}
