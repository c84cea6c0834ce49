package interpreter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// every testdata/*.lino runs and must print exactly its .out file, with a
// failure rendered after the output the way the run command does.
func TestGoldenScripts(t *testing.T) {
	scripts, err := filepath.Glob(filepath.Join("testdata", "*.lino"))
	require.NoError(t, err)
	require.NotEmpty(t, scripts)

	for _, script := range scripts {
		name := strings.TrimSuffix(filepath.Base(script), ".lino")
		t.Run(name, func(t *testing.T) {
			file, err := os.Open(script)
			require.NoError(t, err)
			defer file.Close()

			lines, err := ReadLines(file)
			require.NoError(t, err)

			expected, err := os.ReadFile(strings.TrimSuffix(script, ".lino") + ".out")
			require.NoError(t, err)

			var out bytes.Buffer
			if err := NewInterpreter(nil, &out).RunLines(lines); err != nil {
				fmt.Fprintln(&out, err)
			}
			require.Equal(t, string(expected), out.String())
		})
	}
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("x = 1\r\nx\n\nlast"))
	require.NoError(t, err)
	require.Equal(t, []string{"x = 1", "x", "", "last"}, lines)

	long := strings.Repeat("a", 100*1024)
	lines, err = ReadLines(strings.NewReader(long + "\n"))
	require.NoError(t, err)
	require.Equal(t, []string{long}, lines)
}
