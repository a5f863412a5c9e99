package core

import (
	"fmt"
	"io"
)

// Executor owns the mutable processor state (everything but the program and
// PC, which the interpreter loop in package interp tracks) and dispatches
// one decoded Instruction at a time (spec §4.6).
type Executor struct {
	Regs  *RegisterFile
	Flags Flags
	Stack *Stack
	Out   io.Writer
}

// NewExecutor builds an executor with a freshly allocated stack of the
// given capacity.
func NewExecutor(stackCapacity int, out io.Writer) *Executor {
	return &Executor{
		Regs:  NewRegisterFile(),
		Stack: NewStack(stackCapacity),
		Out:   out,
	}
}

// Execute runs one instruction. pc points at the already-advanced program
// counter (spec §4.6's pre-increment semantics): Call pushes *pc as the
// return address, and Jump/Call/Return overwrite *pc directly.
func (e *Executor) Execute(instr Instruction, pc *int) error {
	switch instr.Op {
	case OpNop:
		return nil

	case OpStop:
		return nil

	case OpSet:
		v := instr.Src.Eval(instr.Width, e.Regs)
		e.Regs.Set(instr.Dst, instr.Width, v)
		return nil

	case OpAdd:
		return e.arith(instr, instr.Width.OverflowAdd)
	case OpSub:
		return e.arith(instr, instr.Width.OverflowSub)
	case OpMul:
		return e.arith(instr, instr.Width.OverflowMul)

	case OpDiv:
		return e.divRem(instr, instr.Width.OverflowDiv)
	case OpRem:
		return e.divRem(instr, instr.Width.OverflowRem)

	case OpAnd:
		return e.bitwise(instr, instr.Width.BitAnd)
	case OpOr:
		return e.bitwise(instr, instr.Width.BitOr)
	case OpXor:
		return e.bitwise(instr, instr.Width.BitXor)

	case OpNot:
		v := e.Regs.Get(instr.Dst, instr.Width)
		r := instr.Width.BitNot(v)
		e.Flags.updateBitwise(instr.Width, r)
		e.Regs.Set(instr.Dst, instr.Width, r)
		return nil

	case OpTest:
		a := instr.Src.Eval(instr.Width, e.Regs)
		b := instr.Rhs.Eval(instr.Width, e.Regs)
		r := instr.Width.BitAnd(a, b)
		e.Flags.updateBitwise(instr.Width, r)
		return nil

	case OpCompare:
		a := instr.Src.Eval(instr.Width, e.Regs)
		b := instr.Rhs.Eval(instr.Width, e.Regs)
		r, ovf := instr.Width.OverflowSub(a, b)
		e.Flags.updateArith(instr.Width, r, ovf)
		return nil

	case OpJump:
		target := instr.Src.Eval(WidthWord, e.Regs)
		if instr.Cond.Taken(e.Flags) {
			*pc = int(target)
		}
		return nil

	case OpPush:
		v := instr.Src.Eval(instr.Width, e.Regs)
		return e.Stack.Push(instr.Width, v)

	case OpPop:
		v, err := e.Stack.Pop(instr.Width)
		if err != nil {
			return err
		}
		e.Regs.Set(instr.Dst, instr.Width, v)
		return nil

	case OpCall:
		target := instr.Src.Eval(WidthWord, e.Regs)
		if err := e.Stack.Push(WidthWord, uint64(*pc)); err != nil {
			return err
		}
		*pc = int(target)
		return nil

	case OpReturn:
		v, err := e.Stack.Pop(WidthWord)
		if err != nil {
			return err
		}
		*pc = int(v)
		return nil

	case OpPrintRegister:
		v := e.Regs.Get(instr.Dst, instr.Width)
		_, err := fmt.Fprintf(e.Out, "%s: %d\n", instr.Dst, v)
		return wrapIOError(err)

	case OpPrintStack:
		n := int(instr.Src.Eval(WidthWord, e.Regs))
		if instr.Str {
			bytes, err := e.Stack.SliceBytes(n)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(e.Out, "%s\n", string(bytes))
			return wrapIOError(err)
		}

		values, err := e.Stack.Slice(instr.Width, n)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(e.Out, "%v\n", values)
		return wrapIOError(err)

	default:
		return &UnknownInstruction{Token: fmt.Sprintf("op(%d)", instr.Op)}
	}
}

func (e *Executor) arith(instr Instruction, op func(a, b uint64) (uint64, bool)) error {
	a := e.Regs.Get(instr.Dst, instr.Width)
	b := instr.Src.Eval(instr.Width, e.Regs)
	r, ovf := op(a, b)
	e.Flags.updateArith(instr.Width, r, ovf)
	e.Regs.Set(instr.Dst, instr.Width, r)
	return nil
}

func (e *Executor) bitwise(instr Instruction, op func(a, b uint64) uint64) error {
	a := e.Regs.Get(instr.Dst, instr.Width)
	b := instr.Src.Eval(instr.Width, e.Regs)
	r := op(a, b)
	e.Flags.updateBitwise(instr.Width, r)
	e.Regs.Set(instr.Dst, instr.Width, r)
	return nil
}

// divRem implements the shared Div/Rem shape of spec §4.6: divide-by-zero
// is raised before the op runs and neither flags nor the destination are
// touched.
func (e *Executor) divRem(instr Instruction, op func(a, b uint64) (uint64, bool)) error {
	a := e.Regs.Get(instr.Dst, instr.Width)
	b := instr.Src.Eval(instr.Width, e.Regs)
	if instr.Width.IsZero(b) {
		return ErrDivideByZero
	}
	r, ovf := op(a, b)
	e.Flags.updateArith(instr.Width, r, ovf)
	e.Regs.Set(instr.Dst, instr.Width, r)
	return nil
}

func wrapIOError(err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Msg: err.Error()}
}

// Halted reports whether instr is the halt instruction (spec §4.6's Stop).
func Halted(instr Instruction) bool {
	return instr.Op == OpStop
}
