package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fortio.org/log"

	"lino/config"
	"lino/interpreter"
	"lino/lexer"
	"lino/object"
)

const (
	cmdVars = ":vars"
	cmdQuit = ":quit"
)

// Session keeps the variables of an interactive run and the lines of a block
// that is still open.
type Session struct {
	cfg     *config.Config
	store   *object.Store
	out     io.Writer
	pending []string
	// line number of the first pending line
	start int
	depth int
	lines int
}

func NewSession(cfg *config.Config, out io.Writer) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Session{
		cfg:   cfg,
		store: object.NewStore(),
		out:   out,
	}
}

// Prompt is the text to show before reading the next line.
func (s *Session) Prompt() string {
	if s.depth > 0 {
		return s.cfg.ContinuationPrompt
	}
	return s.cfg.Prompt
}

// Feed takes one input line. Lines are buffered while a while/if block is
// open and run together once it closes. It returns false when the session
// should end.
func (s *Session) Feed(line string) bool {
	trimmed := strings.TrimSpace(line)
	if s.depth == 0 {
		switch trimmed {
		case cmdQuit:
			return false
		case cmdVars:
			s.printVars()
			return true
		}
	}

	s.lines++
	if len(s.pending) == 0 {
		s.start = s.lines
	}
	s.pending = append(s.pending, line)

	inst := lexer.Instruction{Tokens: lexer.Tokenize(line)}
	switch {
	case inst.IsOpener():
		s.depth++
	case inst.IsCloser():
		s.depth--
	}

	// a stray end runs right away so the resolver can report it
	if s.depth <= 0 {
		s.flush()
	}
	return true
}

func (s *Session) flush() {
	chunk := s.pending
	s.pending = nil
	s.depth = 0

	p, err := interpreter.Prepare(chunk, s.start)
	if err == nil {
		i := interpreter.NewInterpreter(s.store, s.out, interpreter.WithMaxSteps(s.cfg.MaxSteps))
		err = i.Run(p)
	}
	if err != nil {
		log.LogVf("chunk starting at line %d failed: %v", s.start, err)
		fmt.Fprintln(s.out, err)
	}
}

func (s *Session) printVars() {
	for _, b := range s.store.Snapshot() {
		fmt.Fprintf(s.out, "%s = %s\n", b.Name, b.Value.Inspect())
	}
}

func (s *Session) Store() *object.Store { return s.store }

func Start(in io.Reader, out io.Writer, cfg *config.Config) {
	session := NewSession(cfg, out)
	scanner := bufio.NewScanner(in)
	for {
		io.WriteString(out, session.Prompt())
		scanned := scanner.Scan()
		if !scanned {
			io.WriteString(out, "\n")
			return
		}
		if !session.Feed(scanner.Text()) {
			return
		}
	}
}
