package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const loop = "x = 0\nwhile x < 3\nx = x + 1\nend\nx\n"

func TestRun(t *testing.T) {
	script := writeFile(t, "loop.lino", loop)

	tests := []struct {
		name     string
		args     []string
		stdin    string
		code     int
		expected string
	}{
		{
			name:     "file flag",
			args:     []string{"run", "-f", script},
			code:     ExitOK,
			expected: "3\n",
		},
		{
			name:     "positional file",
			args:     []string{"run", script},
			code:     ExitOK,
			expected: "3\n",
		},
		{
			name:     "stdin",
			args:     []string{"run"},
			stdin:    loop,
			code:     ExitOK,
			expected: "3\n",
		},
		{
			name:     "dash reads stdin",
			args:     []string{"run", "-f", "-"},
			stdin:    "2 + 3 * 4\n",
			code:     ExitOK,
			expected: "14\n",
		},
		{
			name:     "runtime error",
			args:     []string{"run"},
			stdin:    "1\ny\n",
			code:     ExitFailure,
			expected: "1\nline 2: undefined variable: \"y\"\n",
		},
		{
			name:     "resolution error prints nothing else",
			args:     []string{"run"},
			stdin:    "1\nwhile 1\n",
			code:     ExitFailure,
			expected: "line 2: block never closed: while has no matching end\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := Main(tt.args, strings.NewReader(tt.stdin), &out)
			require.Equal(t, tt.code, code)
			require.Equal(t, tt.expected, out.String())
		})
	}
}

func TestRunFailures(t *testing.T) {
	var out bytes.Buffer
	code := Main([]string{"run", "-f", filepath.Join(t.TempDir(), "missing.lino")}, strings.NewReader(""), &out)
	require.Equal(t, ExitFailure, code)

	out.Reset()
	code = Main([]string{"run", "-x"}, strings.NewReader(""), &out)
	require.Equal(t, ExitUsage, code)

	out.Reset()
	code = Main([]string{"run", "a.lino", "b.lino"}, strings.NewReader(""), &out)
	require.Equal(t, ExitUsage, code)
}

func TestRunWithConfig(t *testing.T) {
	cfg := writeFile(t, "lino.yml", "max_steps: 20\n")

	var out bytes.Buffer
	code := Main([]string{"run", "-c", cfg}, strings.NewReader("while 1\nend\n"), &out)
	require.Equal(t, ExitFailure, code)
	require.Contains(t, out.String(), "step limit exceeded")

	bad := writeFile(t, "bad.yml", "log_level: shouting\n")
	out.Reset()
	code = Main([]string{"run", "-c", bad}, strings.NewReader("1\n"), &out)
	require.Equal(t, ExitFailure, code)
	require.Contains(t, out.String(), "config validation failed")
}

func TestLex(t *testing.T) {
	var out bytes.Buffer
	code := Main([]string{"lex"}, strings.NewReader("x=(a+1)\n\n"), &out)
	require.Equal(t, ExitOK, code)
	require.Equal(t, "1: [\"x\" \"=\" \"(\" \"a\" \"+\" \"1\" \")\"]\n2: [\"\"]\n", out.String())
}

func TestBlocks(t *testing.T) {
	var out bytes.Buffer
	code := Main([]string{"blocks"}, strings.NewReader("while a < 1\nif b\nend\nend\n"), &out)
	require.Equal(t, ExitOK, code)
	require.Equal(t, "while 1 -> 4\nif 2 -> 3\n", out.String())

	out.Reset()
	code = Main([]string{"blocks"}, strings.NewReader("end\n"), &out)
	require.Equal(t, ExitFailure, code)
	require.Equal(t, "line 1: unmatched end: no while or if to close\n", out.String())
}

func TestRepl(t *testing.T) {
	var out bytes.Buffer
	code := Main([]string{"repl"}, strings.NewReader("x = 4\nx * 2\n"), &out)
	require.Equal(t, ExitOK, code)
	require.Contains(t, out.String(), "8\n")
}

func TestDispatch(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, ExitUsage, Main(nil, strings.NewReader(""), &out))

	out.Reset()
	require.Equal(t, ExitUsage, Main([]string{"compile"}, strings.NewReader(""), &out))
	require.Contains(t, out.String(), "unknown command compile")

	out.Reset()
	require.Equal(t, ExitOK, Main([]string{"help"}, strings.NewReader(""), &out))
	for name := range commands {
		require.Contains(t, out.String(), name)
	}

	out.Reset()
	require.Equal(t, ExitOK, Main([]string{"help", "run"}, strings.NewReader(""), &out))
	require.Contains(t, out.String(), "-f")

	out.Reset()
	require.Equal(t, ExitUsage, Main([]string{"help", "nope"}, strings.NewReader(""), &out))
}
