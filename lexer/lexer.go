package lexer

import (
	"unicode"
)

func NewLexer(line string) *Lexer {
	lexer := Lexer{
		Content: []rune(line),
		Cur:     0,
	}
	return &lexer
}

// Tokenize splits the line on whitespace and special symbols. A line
// without any token yields the single empty placeholder token.
func (l *Lexer) Tokenize() []string {
	l.tokens = make([]string, 0)
	l.buf = l.buf[:0]

	for l.Cur < len(l.Content) {
		char := l.Content[l.Cur]
		l.Cur++

		switch {
		case unicode.IsSpace(char):
			l.flush()
		case isSpecialRune(char):
			l.flush()
			l.tokens = append(l.tokens, string(char))
		default:
			l.buf = append(l.buf, char)
		}
	}
	l.flush()

	if len(l.tokens) == 0 {
		l.tokens = append(l.tokens, TokenEmpty)
	}
	return l.tokens
}

func (l *Lexer) flush() {
	if len(l.buf) == 0 {
		return
	}
	l.tokens = append(l.tokens, string(l.buf))
	l.buf = l.buf[:0]
}

func isSpecialRune(char rune) bool {
	_, ok := SpecialSymbols[char]
	return ok
}

// Tokenize is a shorthand for NewLexer(line).Tokenize().
func Tokenize(line string) []string {
	return NewLexer(line).Tokenize()
}

// TokenizeLines turns every line into an instruction, numbering them from
// firstLine.
func TokenizeLines(lines []string, firstLine int) []Instruction {
	program := make([]Instruction, 0, len(lines))
	for idx, line := range lines {
		program = append(program, Instruction{
			Tokens: Tokenize(line),
			Line:   firstLine + idx,
		})
	}
	return program
}
