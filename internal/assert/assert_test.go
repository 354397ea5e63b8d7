package assert

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "a\nb", "a\nb\n"},
		{"raw literal", "\n\t\t/proj\n\t\t└── a.txt\n\t", "/proj\n└── a.txt\n"},
		{"nested", "\n  a\n    b\n  c\n", "a\n  b\nc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedent(tt.in))
		})
	}
}

func TestEqualDiagram(t *testing.T) {
	a := New(t)

	a.EqualDiagram(`
		/proj
		└── a.txt
	`, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "/proj\n└── a.txt\n")
		return err
	})
}
