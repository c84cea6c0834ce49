package semantic

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"

	"lino/internals"
	"lino/lexer"
)

func program(lines ...string) []lexer.Instruction {
	return lexer.TokenizeLines(lines, 1)
}

func TestResolveBlocks(t *testing.T) {
	tests := []struct {
		input    []lexer.Instruction
		expected JumpTable
	}{
		{
			input:    program("x = 1", "x"),
			expected: JumpTable{},
		},
		{
			input: program(
				"x = 0",
				"while x < 3",
				"x = x + 1",
				"end",
				"x",
			),
			expected: JumpTable{1: 3, 3: 1},
		},
		{
			input: program(
				"while i < 3",
				"if i > 1",
				"i",
				"end",
				"j = 0",
				"while j < 2",
				"j = j + 1",
				"end",
				"i = i + 1",
				"end",
			),
			expected: JumpTable{0: 9, 9: 0, 1: 3, 3: 1, 5: 7, 7: 5},
		},
		{
			// comments and blank lines never open a block
			input:    program("# while", "", "if 1", "end"),
			expected: JumpTable{2: 3, 3: 2},
		},
	}
	for _, tt := range tests {
		jt, err := ResolveBlocks(tt.input)
		require.NoError(t, err)
		if diff := deep.Equal(jt, tt.expected); diff != nil {
			t.Error(diff)
		}
	}
}

func TestJumpTableIsInvolution(t *testing.T) {
	jt, err := ResolveBlocks(program(
		"while a < 1",
		"if b > 2",
		"while c < 3",
		"end",
		"end",
		"if d",
		"end",
		"end",
	))
	require.NoError(t, err)

	for idx, other := range jt {
		back, ok := jt.Match(other)
		require.True(t, ok)
		require.Equal(t, idx, back)
	}
}

func TestResolveBlocksErrors(t *testing.T) {
	tests := []struct {
		input []lexer.Instruction
		kind  error
		line  int
	}{
		{
			input: program("end"),
			kind:  internals.ErrUnmatchedEnd,
			line:  1,
		},
		{
			input: program("if 1", "end", "end"),
			kind:  internals.ErrUnmatchedEnd,
			line:  3,
		},
		{
			input: program("while 1", "x = 1"),
			kind:  internals.ErrUnmatchedOpener,
			line:  1,
		},
		{
			input: program("while 1", "if 2", "end", "if 3"),
			kind:  internals.ErrUnmatchedOpener,
			line:  4,
		},
	}
	for _, tt := range tests {
		jt, err := ResolveBlocks(tt.input)
		require.Nil(t, jt)
		require.ErrorIs(t, err, tt.kind)

		var tagged *internals.Error
		require.ErrorAs(t, err, &tagged)
		require.Equal(t, tt.line, tagged.Line)
	}
}

func TestPairs(t *testing.T) {
	jt := JumpTable{5: 7, 7: 5, 0: 9, 9: 0}
	expected := []Pair{{Opener: 0, End: 9}, {Opener: 5, End: 7}}
	if diff := deep.Equal(jt.Pairs(), expected); diff != nil {
		t.Error(diff)
	}
}
