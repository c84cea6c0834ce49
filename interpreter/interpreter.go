package interpreter

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/log"

	"lino/internals"
	"lino/lexer"
	"lino/object"
	"lino/semantic"
)

// Program is a tokenized script together with its resolved blocks. It does
// not change once prepared.
type Program struct {
	Instructions []lexer.Instruction
	Jumps        semantic.JumpTable
}

// Prepare tokenizes lines and resolves their blocks. Line numbers start at
// firstLine.
func Prepare(lines []string, firstLine int) (*Program, error) {
	instructions := lexer.TokenizeLines(lines, firstLine)
	jumps, err := semantic.ResolveBlocks(instructions)
	if err != nil {
		return nil, err
	}
	return &Program{
		Instructions: instructions,
		Jumps:        jumps,
	}, nil
}

type Interpreter struct {
	store *object.Store
	out   io.Writer
	// program counter, index of the instruction to dispatch next
	pc       int
	steps    int
	maxSteps int
}

type Option func(*Interpreter)

// WithMaxSteps stops a run after n dispatched instructions. Zero means no limit.
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) {
		i.maxSteps = n
	}
}

func NewInterpreter(store *object.Store, out io.Writer, opts ...Option) *Interpreter {
	if store == nil {
		store = object.NewStore()
	}
	i := &Interpreter{
		store: store,
		out:   out,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func newError(kind error, line int, format string, a ...any) *internals.Error {
	return internals.NewError(kind, line, format, a...)
}

func (i *Interpreter) Store() *object.Store { return i.store }

func (i *Interpreter) PC() int { return i.pc }

// Run dispatches the program from its first instruction until the program
// counter moves past the last one, or the first error.
func (i *Interpreter) Run(p *Program) error {
	i.pc = 0
	i.steps = 0
	for i.pc < len(p.Instructions) {
		if err := i.dispatch(p); err != nil {
			return err
		}
	}
	return nil
}

// RunLines prepares lines numbered from 1 and runs them.
func (i *Interpreter) RunLines(lines []string) error {
	p, err := Prepare(lines, 1)
	if err != nil {
		return err
	}
	return i.Run(p)
}

func (i *Interpreter) dispatch(p *Program) error {
	inst := p.Instructions[i.pc]

	i.steps++
	if i.maxSteps > 0 && i.steps > i.maxSteps {
		return newError(internals.ErrStepLimit, inst.Line, "stopped after %d instructions", i.maxSteps)
	}
	if log.LogVerbose() {
		log.LogVf("pc=%d line %d: %s", i.pc, inst.Line, strings.Join(inst.Tokens, " "))
	}

	tokens := inst.Tokens
	switch {
	case inst.IsNoop():
		i.pc++

	case inst.IsCloser():
		opener, ok := p.Jumps.Match(i.pc)
		if !ok {
			return newError(internals.ErrUnmatchedEnd, inst.Line, "no while or if to close")
		}
		// loops go back to test their condition again, ifs fall through
		if p.Instructions[opener].Lead() == lexer.TokenWhile {
			i.pc = opener
			return nil
		}
		i.pc++

	case inst.IsOpener():
		return i.evalBlockOpener(p, inst)

	case len(tokens) == 1:
		if err := i.evalPrint(inst); err != nil {
			return err
		}
		i.pc++

	case tokens[1] == lexer.TokenAssign:
		if err := i.evalAssignment(inst); err != nil {
			return err
		}
		i.pc++

	default:
		val, err := i.evalExpression(newCursor(inst, 0), 0)
		if err != nil {
			return err
		}
		if err := i.emit(val.Inspect()); err != nil {
			return err
		}
		i.pc++
	}
	return nil
}

func (i *Interpreter) evalBlockOpener(p *Program, inst lexer.Instruction) error {
	cond, err := i.evalCondition(newCursor(inst, 1))
	if err != nil {
		return err
	}
	if cond.Truthy() {
		i.pc++
		return nil
	}

	end, ok := p.Jumps.Match(i.pc)
	if !ok {
		return newError(internals.ErrUnmatchedOpener, inst.Line, "%s has no matching end", inst.Lead())
	}
	i.pc = end + 1
	return nil
}

func (i *Interpreter) evalPrint(inst lexer.Instruction) error {
	tok := inst.Tokens[0]
	if lexer.IsNumber(tok) {
		return i.emit(tok)
	}
	val, ok := i.store.Resolve(tok)
	if !ok {
		return newError(internals.ErrUndefinedVariable, inst.Line, "%q", tok)
	}
	return i.emit(val.Inspect())
}

func (i *Interpreter) evalAssignment(inst lexer.Instruction) error {
	name := inst.Tokens[0]
	if lexer.IsNumber(name) || lexer.IsSpecial(name) {
		return newError(internals.ErrInvalidAssignmentTarget, inst.Line, "cannot assign to %q", name)
	}
	val, err := i.evalExpression(newCursor(inst, 2), 0)
	if err != nil {
		return err
	}
	i.store.Assign(name, val)
	return nil
}

func (i *Interpreter) emit(text string) error {
	if _, err := fmt.Fprintln(i.out, text); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
