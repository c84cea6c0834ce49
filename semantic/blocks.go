package semantic

import (
	"sort"

	"fortio.org/log"

	"lino/internals"
	"lino/lexer"
)

// JumpTable maps every block opener index to the index of its end, and every
// end back to its opener.
type JumpTable map[int]int

// Pair is one opener and its matching end, as instruction indices.
type Pair struct {
	Opener int
	End    int
}

// Match returns the other side of the block that starts or ends at idx.
func (jt JumpTable) Match(idx int) (int, bool) {
	other, ok := jt[idx]
	return other, ok
}

// Pairs lists every block ordered by its opener.
func (jt JumpTable) Pairs() []Pair {
	pairs := make([]Pair, 0, len(jt)/2)
	for from, to := range jt {
		if from < to {
			pairs = append(pairs, Pair{Opener: from, End: to})
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		return pairs[a].Opener < pairs[b].Opener
	})
	return pairs
}

// ResolveBlocks walks the program once and pairs every while/if with the
// nearest unclosed end.
func ResolveBlocks(program []lexer.Instruction) (JumpTable, error) {
	jt := make(JumpTable)
	open := make([]int, 0)

	for idx, inst := range program {
		switch {
		case inst.IsOpener():
			open = append(open, idx)
		case inst.IsCloser():
			if len(open) == 0 {
				return nil, internals.NewError(internals.ErrUnmatchedEnd, inst.Line, "no while or if to close")
			}
			opener := open[len(open)-1]
			open = open[:len(open)-1]
			jt[idx] = opener
			jt[opener] = idx
		}
	}

	if len(open) > 0 {
		inst := program[open[len(open)-1]]
		return nil, internals.NewError(internals.ErrUnmatchedOpener, inst.Line, "%s has no matching end", inst.Lead())
	}

	log.Debugf("resolved %d blocks over %d instructions", len(jt)/2, len(program))
	return jt, nil
}
