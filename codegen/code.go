package codegen

import (
	"fmt"
	"strings"

	"pl0c/machine"
	"pl0c/syms"
	"pl0c/types"
)

// Encoded instruction widths in words for the variable-width instructions.
// Branch offsets are computed by callers from the sizes of fragments already
// emitted, so these are part of the emitter's contract.
const (
	SizeJumpAlways  = 2
	SizeJumpIfFalse = 2
)

// Instr is a single encoded instruction: an opcode plus its inline operand
// words.  A CALL additionally carries the callee's procedure entry; its code
// address is resolved at load time.
type Instr struct {
	// The instruction's opcode.
	Op machine.Operation

	// The inline operand words in encoding order.
	Args []int

	// The callee entry of a CALL instruction.
	Proc *syms.ProcedureEntry
}

// size returns the encoded width of the instruction in words.
func (in Instr) size() int {
	if in.Op == machine.CALL {
		// Opcode, level delta, and the load-time-resolved address word.
		return 3
	}

	return 1 + len(in.Args)
}

// Code is an append-only buffer of stack-machine instructions.  All jump
// offsets are relative and computed from the sizes of code already emitted:
// the buffer is assembled in a single pass and never patched.
type Code struct {
	instrs []Instr
	size   int
}

// NewCode creates an empty code buffer.
func NewCode() *Code {
	return &Code{}
}

// Size returns the current length of the buffer in words.
func (c *Code) Size() int {
	return c.size
}

// Instructions returns the emitted instructions in order.
func (c *Code) Instructions() []Instr {
	return c.instrs
}

// Append splices the contents of another buffer onto the end of this one.
// The other buffer is not modified and may be appended more than once.
func (c *Code) Append(other *Code) {
	c.instrs = append(c.instrs, other.instrs...)
	c.size += other.size
}

// emit appends a single instruction.
func (c *Code) emit(in Instr) {
	c.instrs = append(c.instrs, in)
	c.size += in.size()
}

// -----------------------------------------------------------------------------

// GenerateOp emits a nullary operation.
func (c *Code) GenerateOp(op machine.Operation) {
	c.emit(Instr{Op: op})
}

// GenLoadConstant emits a push of an inline constant.
func (c *Code) GenLoadConstant(value int) {
	c.emit(Instr{Op: machine.LOAD_CONST, Args: []int{value}})
}

// GenLoad emits a load sized for a value of the given type.
func (c *Code) GenLoad(typ types.Type) {
	c.emit(Instr{Op: machine.LOAD, Args: []int{typ.Size()}})
}

// GenStore emits a store sized for a value of the given type.
func (c *Code) GenStore(typ types.Type) {
	c.emit(Instr{Op: machine.STORE, Args: []int{typ.Size()}})
}

// GenMemRef emits the address computation for a frame slot: the offset within
// the frame levelDiff static links up from the current one.
func (c *Code) GenMemRef(levelDiff, offset int) {
	c.emit(Instr{Op: machine.MEM_REF, Args: []int{levelDiff, offset}})
}

// GenCall emits a call to the given procedure entry.  The actual code address
// is resolved at load time.
func (c *Code) GenCall(levelDiff int, proc *syms.ProcedureEntry) {
	c.emit(Instr{Op: machine.CALL, Args: []int{levelDiff}, Proc: proc})
}

// GenAllocStack emits a frame extension of the given number of words.
func (c *Code) GenAllocStack(words int) {
	c.emit(Instr{Op: machine.ALLOC_STACK, Args: []int{words}})
}

// GenBoundsCheck emits a check of the top of stack against the given
// inclusive bounds.
func (c *Code) GenBoundsCheck(lower, upper int) {
	c.emit(Instr{Op: machine.BOUNDS_CHECK, Args: []int{lower, upper}})
}

// GenBoolNot emits a boolean complement.
func (c *Code) GenBoolNot() {
	c.emit(Instr{Op: machine.BOOL_NOT})
}

// GenJumpAlways emits an unconditional branch by the given relative offset.
func (c *Code) GenJumpAlways(offset int) {
	c.emit(Instr{Op: machine.JUMP_ALWAYS, Args: []int{offset}})
}

// GenJumpIfFalse emits a branch by the given relative offset taken when the
// popped value is false.
func (c *Code) GenJumpIfFalse(offset int) {
	c.emit(Instr{Op: machine.JUMP_IF_FALSE, Args: []int{offset}})
}

// GenIfThenElse composes an if-then-else from the code for its components:
// the condition, a branch over the then part (and the jump that follows it)
// on false, the then part, a jump over the else part, and the else part.
func (c *Code) GenIfThenElse(cond, thenCode, elseCode *Code) {
	c.Append(cond)
	c.GenJumpIfFalse(thenCode.Size() + SizeJumpAlways)
	c.Append(thenCode)
	c.GenJumpAlways(elseCode.Size())
	c.Append(elseCode)
}

// -----------------------------------------------------------------------------

// String renders the buffer as a listing: one instruction per line prefixed
// with its word offset.
func (c *Code) String() string {
	sb := strings.Builder{}

	offset := 0
	for _, in := range c.instrs {
		sb.WriteString(fmt.Sprintf("%4d: %s", offset, in.Op))

		for _, arg := range in.Args {
			sb.WriteString(fmt.Sprintf(" %d", arg))
		}

		if in.Proc != nil {
			sb.WriteString(" " + in.Proc.Ident())
		}

		sb.WriteRune('\n')
		offset += in.size()
	}

	return sb.String()
}
