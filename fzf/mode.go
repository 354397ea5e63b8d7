// Package fzf decides which labels stay visible for a typed query. Matching is
// case-sensitive and greedy: each query unit is searched for after the
// position where the previous unit matched, and an earlier position is never
// reconsidered.
package fzf

import (
	"fmt"
	"strings"
)

// Mode selects the match strategy.
type Mode int

const (
	// Exact keeps labels containing the whole query as a substring.
	Exact Mode = iota
	// CharSubsequence matches every non-space character of the query in order.
	CharSubsequence
	// WordSubsequence matches every space-separated word of the query in order.
	WordSubsequence
)

// DefaultMode is used when no mode is configured.
const DefaultMode = WordSubsequence

var modeNames = map[Mode]string{
	Exact:           "exact",
	CharSubsequence: "char",
	WordSubsequence: "word",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "exact", "char" or "word" to a Mode. An empty string yields
// DefaultMode.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultMode, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return DefaultMode, fmt.Errorf("unknown search mode %q (want exact, char or word)", s)
}

// UnmarshalText lets a Mode be decoded straight from config files and flags.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Units splits query into the pieces matched one after another.
//
//   - Exact: the whole query, or nothing if it is empty.
//   - CharSubsequence: every character except spaces.
//   - WordSubsequence: the query split on single spaces, empty words dropped.
func Units(mode Mode, query string) []string {
	switch mode {
	case Exact:
		if query == "" {
			return nil
		}
		return []string{query}
	case CharSubsequence:
		var units []string
		for _, r := range query {
			if r == ' ' {
				continue
			}
			units = append(units, string(r))
		}
		return units
	default:
		var units []string
		for _, w := range strings.Split(query, " ") {
			if w != "" {
				units = append(units, w)
			}
		}
		return units
	}
}
