package fzf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"exact", Exact, false},
		{"char", CharSubsequence, false},
		{"word", WordSubsequence, false},
		{"", WordSubsequence, false},
		{" char ", CharSubsequence, false},
		{"fuzzy", WordSubsequence, true},
		{"Word", WordSubsequence, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_Text(t *testing.T) {
	assert := assert.New(t)

	var m Mode
	assert.NoError(m.UnmarshalText([]byte("char")))
	assert.Equal(CharSubsequence, m)

	b, err := m.MarshalText()
	assert.NoError(err)
	assert.Equal("char", string(b))

	assert.Error(m.UnmarshalText([]byte("nope")))
	assert.Equal("Mode(9)", Mode(9).String())
}

func TestUnits(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		query string
		want  []string
	}{
		{"exact keeps spaces", Exact, "doc test", []string{"doc test"}},
		{"exact empty", Exact, "", nil},
		{"char skips spaces", CharSubsequence, "d o c", []string{"d", "o", "c"}},
		{"char all spaces", CharSubsequence, "   ", nil},
		{"word split", WordSubsequence, "doc test", []string{"doc", "test"}},
		{"word double space", WordSubsequence, "doc  test ", []string{"doc", "test"}},
		{"word all spaces", WordSubsequence, "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Units(tt.mode, tt.query))
		})
	}
}
