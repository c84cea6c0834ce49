package interpreter

import (
	"lino/internals"
	"lino/lexer"
	"lino/object"
)

// evalCondition splits the range on its first comparison and compares both
// sides, or evaluates the whole range as arithmetic when there is none.
// A comparison yields object.TRUE or object.FALSE.
func (i *Interpreter) evalCondition(c *cursor) (object.Number, error) {
	if c.pos >= c.end {
		return 0, newError(internals.ErrMalformedCondition, c.line, "empty condition")
	}

	idx := -1
	for k := c.pos; k < c.end; k++ {
		if !lexer.IsComparison(c.tokens[k]) {
			continue
		}
		if k == c.pos || k == c.end-1 {
			return 0, newError(internals.ErrMalformedCondition, c.line, "%q needs an operand on both sides", c.tokens[k])
		}
		idx = k
		break
	}

	if idx < 0 {
		return i.evalExpression(c, 0)
	}

	lhs := &cursor{tokens: c.tokens, pos: c.pos, end: idx, line: c.line}
	rhs := &cursor{tokens: c.tokens, pos: idx + 1, end: c.end, line: c.line}
	c.pos = c.end

	left, err := i.evalCondition(lhs)
	if err != nil {
		return 0, err
	}
	right, err := i.evalCondition(rhs)
	if err != nil {
		return 0, err
	}

	if c.tokens[idx] == lexer.TokenLess {
		return object.NativeBoolean(left < right), nil
	}
	return object.NativeBoolean(left > right), nil
}
