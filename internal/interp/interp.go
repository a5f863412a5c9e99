// Package interp implements the fetch/decode/execute loop described in
// spec §4.8: it owns the program, the program counter, the running flag and
// the instruction counter, and drives the core.Executor one line at a time.
package interp

import (
	"io"

	"github.com/pkg/errors"

	"github.com/kstephano-labs/gasm/internal/core"
)

// Interpreter ties together a preprocessed program and an executor, and
// drives them to completion.
type Interpreter struct {
	program *core.Program
	exec    *core.Executor

	pc      int
	running bool

	instructionCount int
}

// Options configures a new Interpreter.
type Options struct {
	StackCapacity int
	Output        io.Writer
}

// New preprocesses raw source text and builds an interpreter over the
// resulting program.
func New(source string, opts Options) (*Interpreter, error) {
	program, err := core.Preprocess(source)
	if err != nil {
		return nil, err
	}

	capacity := opts.StackCapacity
	if capacity <= 0 {
		capacity = core.DefaultStackCapacity
	}

	return &Interpreter{
		program: program,
		exec:    core.NewExecutor(capacity, opts.Output),
		pc:      1,
		running: true,
	}, nil
}

// PC returns the current program counter.
func (i *Interpreter) PC() int { return i.pc }

// Running reports whether the interpreter has not yet halted.
func (i *Interpreter) Running() bool { return i.running }

// InstructionCount returns the number of instructions executed so far.
func (i *Interpreter) InstructionCount() int { return i.instructionCount }

// Registers exposes the register file, primarily for tests.
func (i *Interpreter) Registers() *core.RegisterFile { return i.exec.Regs }

// Flags exposes the condition flags, primarily for tests.
func (i *Interpreter) Flags() core.Flags { return i.exec.Flags }

// Stack exposes the stack, primarily for tests.
func (i *Interpreter) Stack() *core.Stack { return i.exec.Stack }

// Step fetches, decodes and executes exactly one instruction (spec §4.8).
// It returns (false, nil) once a halt instruction has run and there is
// nothing left to do.
func (i *Interpreter) Step() (bool, error) {
	if !i.running {
		return false, nil
	}

	line, err := i.program.Line(i.pc)
	if err != nil {
		return false, err
	}

	instr, err := core.DecodeLine(line)
	if err != nil {
		return false, errors.Wrapf(err, "line %d", i.pc)
	}

	failedAt := i.pc
	i.pc++

	if err := i.exec.Execute(instr, &i.pc); err != nil {
		return false, errors.Wrapf(err, "line %d", failedAt)
	}
	i.instructionCount++

	if core.Halted(instr) {
		i.running = false
	}

	return i.running, nil
}

// Run drives the interpreter to completion: it steps until Stop runs or an
// error is raised (spec §4.8, §5).
func (i *Interpreter) Run() error {
	for {
		running, err := i.Step()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
	}
}
