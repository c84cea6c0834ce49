package lexer

var (
	Keywords = map[string]TokenKind{
		"while": TokenWhile,
		"if":    TokenIf,
		"end":   TokenEnd,
		"#":     TokenComment,
	}

	// every one of these is a token on its own, whatever surrounds it
	SpecialSymbols = map[rune]TokenKind{
		'=': TokenAssign,
		'(': TokenBraceOpen,
		')': TokenBraceClose,
		'#': TokenComment,
		'+': TokenPlus,
		'-': TokenMinus,
		'*': TokenMultiply,
		'/': TokenSlash,
		'^': TokenCaret,
		'<': TokenLess,
		'>': TokenGreater,
		'!': TokenExclamation,
	}

	// binding power of the arithmetic operators, all left associative
	Precedence = map[TokenKind]int{
		TokenPlus:     1,
		TokenMinus:    1,
		TokenMultiply: 2,
		TokenSlash:    2,
		TokenCaret:    3,
	}

	Comparisons = map[TokenKind]bool{
		TokenLess:    true,
		TokenGreater: true,
	}
)

// IsNumber reports whether every character of tok is a decimal digit.
func IsNumber(tok string) bool {
	if len(tok) == 0 {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if !isDigit(tok[i]) {
			return false
		}
	}
	return true
}

func IsOperator(tok string) bool {
	_, ok := Precedence[tok]
	return ok
}

func IsComparison(tok string) bool {
	return Comparisons[tok]
}

func IsKeyword(tok string) bool {
	_, ok := Keywords[tok]
	return ok
}

func IsSpecial(tok string) bool {
	r := []rune(tok)
	if len(r) != 1 {
		return false
	}
	_, ok := SpecialSymbols[r[0]]
	return ok
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
