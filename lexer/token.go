package lexer

type TokenKind = string

const (
	// Keywords
	TokenWhile TokenKind = "while"
	TokenIf    TokenKind = "if"
	TokenEnd   TokenKind = "end"

	// Units
	TokenAssign      TokenKind = "="
	TokenBraceOpen   TokenKind = "("
	TokenBraceClose  TokenKind = ")"
	TokenComment     TokenKind = "#"
	TokenExclamation TokenKind = "!"

	// Arithmetic Operators
	TokenPlus     TokenKind = "+"
	TokenMinus    TokenKind = "-"
	TokenMultiply TokenKind = "*"
	TokenSlash    TokenKind = "/"
	TokenCaret    TokenKind = "^"

	// Comparison Operators
	TokenLess    TokenKind = "<"
	TokenGreater TokenKind = ">"

	// placeholder emitted for a line without tokens
	TokenEmpty TokenKind = ""
)

// Instruction is one tokenized source line.
type Instruction struct {
	Tokens []string
	// 1-based line in the source the tokens came from
	Line int
}

// Lead returns the first token of the instruction.
func (in Instruction) Lead() string {
	if len(in.Tokens) == 0 {
		return TokenEmpty
	}
	return in.Tokens[0]
}

// IsNoop reports whether the instruction is a comment or a blank line.
func (in Instruction) IsNoop() bool {
	lead := in.Lead()
	return lead == TokenComment || (lead == TokenEmpty && len(in.Tokens) <= 1)
}

// IsOpener reports whether the instruction starts a while or if block.
func (in Instruction) IsOpener() bool {
	lead := in.Lead()
	return lead == TokenWhile || lead == TokenIf
}

// IsCloser reports whether the instruction closes a block.
func (in Instruction) IsCloser() bool {
	return in.Lead() == TokenEnd
}

type Lexer struct {
	Content []rune
	Cur     int
	// pending identifier or number
	buf    []rune
	tokens []string
}
