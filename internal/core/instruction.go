package core

import "fmt"

// Op is the instruction family tag — the closed sum of spec §3.
type Op uint8

const (
	OpStop Op = iota
	OpSet
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpPush
	OpPop
	OpCall
	OpReturn
	OpAnd
	OpOr
	OpXor
	OpNot
	OpTest
	OpCompare
	OpJump
	OpPrintRegister
	OpPrintStack
	// OpNop is not part of the user-facing mnemonic grammar of spec §6; the
	// preprocessor substitutes it for every non-executable `fn name:` line
	// so that fall-through past a label boundary is always well-defined
	// (see the fall-through policy decision in SPEC_FULL.md / DESIGN.md).
	OpNop
)

// JumpCond is the condition tag a Jump instruction carries (spec §4.6).
type JumpCond uint8

const (
	JumpUnconditional JumpCond = iota
	JumpIfZero
	JumpIfNotZero
	JumpIfSign
	JumpIfNotSign
	JumpIfOverflow
	JumpIfNotOverflow
	JumpIfGreater
	JumpIfLesser
	JumpIfGreaterOrEqual
	JumpIfLesserOrEqual
)

// Taken reports whether this condition fires given the current flags.
func (c JumpCond) Taken(f Flags) bool {
	switch c {
	case JumpUnconditional:
		return true
	case JumpIfZero:
		return f.Zero
	case JumpIfNotZero:
		return !f.Zero
	case JumpIfSign:
		return f.Sign
	case JumpIfNotSign:
		return !f.Sign
	case JumpIfOverflow:
		return f.Overflow
	case JumpIfNotOverflow:
		return !f.Overflow
	case JumpIfGreater:
		return f.Greater()
	case JumpIfLesser:
		return f.Lesser()
	case JumpIfGreaterOrEqual:
		return f.GreaterOrEqual()
	case JumpIfLesserOrEqual:
		return f.LesserOrEqual()
	default:
		panic(fmt.Sprintf("unknown jump condition %d", c))
	}
}

// Instruction is the decoded, ready-to-execute form of one source line.
// Families that don't use a field simply leave it at its zero value; the
// executor's switch on Op knows which fields are meaningful for each case.
type Instruction struct {
	Op    Op
	Width Width // width discriminant for width-polymorphic families

	Dst Register // destination register, where applicable
	Src Operand  // first/only operand
	Rhs Operand  // second operand, for Test/Compare

	Cond JumpCond // Jump condition
	Str  bool     // PrintStack Str ("s" suffix) variant
}
