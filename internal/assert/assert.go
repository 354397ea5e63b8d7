package assert

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assert is a wrapper around assert.Assertions and testing.T
type Assert struct {
	*assert.Assertions
	T *testing.T
}

// New creates a new Assert object
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		T:          t,
	}
}

// EqualDiagram renders with write and compares the output against expected.
// expected may be an indented raw string literal: the leading newline and the
// common indentation are stripped first.
func (a *Assert) EqualDiagram(expected string, write func(w io.Writer) error) bool {
	a.T.Helper()

	var buf bytes.Buffer
	if !a.NoError(write(&buf)) {
		return false
	}
	return a.Equal(Dedent(expected), buf.String())
}

// Dedent removes a leading newline, the indentation shared by every non-blank
// line, and trailing blank-only indentation. The result ends with one newline.
func Dedent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(strings.TrimRight(s, " \t\n"), "\n")

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		return ""
	}

	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
