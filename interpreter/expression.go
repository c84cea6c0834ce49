package interpreter

import (
	"math"

	"lino/internals"
	"lino/lexer"
	"lino/object"
)

// cursor is the evaluation position over the half-open range [pos, end) of an
// instruction's tokens. Evaluating moves pos past what was consumed.
type cursor struct {
	tokens []string
	pos    int
	end    int
	line   int
}

func newCursor(inst lexer.Instruction, from int) *cursor {
	return &cursor{
		tokens: inst.Tokens,
		pos:    from,
		end:    len(inst.Tokens),
		line:   inst.Line,
	}
}

// operand and operator stacks of one parenthesis level
type evalStack struct {
	values []object.Number
	ops    []string
	line   int
}

func (s *evalStack) reduce() error {
	op := s.ops[len(s.ops)-1]
	s.ops = s.ops[:len(s.ops)-1]

	if len(s.values) < 2 {
		return newError(internals.ErrMissingOperand, s.line, "%q needs two operands", op)
	}
	right := s.values[len(s.values)-1]
	left := s.values[len(s.values)-2]
	s.values = s.values[:len(s.values)-2]
	s.values = append(s.values, applyOperator(op, left, right))
	return nil
}

// push reduces every pending operator that binds at least as tightly as op,
// which makes all operators left associative.
func (s *evalStack) push(op string) error {
	for len(s.ops) > 0 && lexer.Precedence[s.ops[len(s.ops)-1]] >= lexer.Precedence[op] {
		if err := s.reduce(); err != nil {
			return err
		}
	}
	s.ops = append(s.ops, op)
	return nil
}

func applyOperator(op string, left, right object.Number) object.Number {
	switch op {
	case lexer.TokenPlus:
		return left + right
	case lexer.TokenMinus:
		return left - right
	case lexer.TokenMultiply:
		return left * right
	case lexer.TokenSlash:
		return left / right
	default:
		return object.Number(math.Pow(float64(left), float64(right)))
	}
}

// evalExpression computes the arithmetic expression at the cursor. depth is
// the number of parentheses opened around it; a nested call returns once it
// consumes its closing parenthesis.
func (i *Interpreter) evalExpression(c *cursor, depth int) (object.Number, error) {
	stack := &evalStack{line: c.line}
	closed := false

	for c.pos < c.end && !closed {
		tok := c.tokens[c.pos]
		c.pos++

		switch {
		case lexer.IsNumber(tok):
			n, err := object.ParseNumber(tok)
			if err != nil {
				return 0, newError(internals.ErrMalformedExpression, c.line, "bad number %q", tok)
			}
			stack.values = append(stack.values, n)

		case tok == lexer.TokenBraceOpen:
			n, err := i.evalExpression(c, depth+1)
			if err != nil {
				return 0, err
			}
			stack.values = append(stack.values, n)

		case tok == lexer.TokenBraceClose:
			if depth == 0 {
				return 0, newError(internals.ErrMalformedExpression, c.line, "%q without matching %q", tok, lexer.TokenBraceOpen)
			}
			closed = true

		case lexer.IsOperator(tok):
			if err := stack.push(tok); err != nil {
				return 0, err
			}

		case lexer.IsSpecial(tok) || lexer.IsKeyword(tok):
			return 0, newError(internals.ErrMalformedExpression, c.line, "unexpected %q", tok)

		default:
			n, ok := i.store.Resolve(tok)
			if !ok {
				return 0, newError(internals.ErrMalformedExpression, c.line, "unknown variable %q", tok)
			}
			stack.values = append(stack.values, n)
		}
	}

	if depth > 0 && !closed {
		return 0, newError(internals.ErrMalformedExpression, c.line, "missing %q", lexer.TokenBraceClose)
	}

	for len(stack.ops) > 0 {
		if err := stack.reduce(); err != nil {
			return 0, err
		}
	}

	if len(stack.values) != 1 {
		return 0, newError(internals.ErrMalformedExpression, c.line, "expected one value, got %d", len(stack.values))
	}
	return stack.values[0], nil
}
