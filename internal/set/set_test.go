package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Basic(t *testing.T) {
	assert := assert.New(t)

	s := New[string]()
	assert.Equal(0, s.Len(), "New set should be empty")

	s.Add("apple")
	s.Add("banana")
	s.Add("apple")

	assert.Equal(2, s.Len())
	assert.True(s.Contains("apple"))
	assert.False(s.Contains("orange"))
	assert.Equal([]string{"apple", "banana"}, s.Values(), "values keep insertion order")

	s.Remove("apple")
	assert.Equal(1, s.Len())
	assert.False(s.Contains("apple"))
	assert.Equal([]string{"banana"}, s.Values())

	s.Remove("missing")
	assert.Equal(1, s.Len())
}

func TestSet_Difference(t *testing.T) {
	assert := assert.New(t)

	actual := FromSlice([]string{"/p/sub", "/p/a.txt", "/p/c.txt"})
	mirrored := FromSlice([]string{"/p/a.txt", "/p/b.txt", "/p/sub"})

	assert.Equal([]string{"/p/c.txt"}, actual.Difference(mirrored).Values())
	assert.Equal([]string{"/p/b.txt"}, mirrored.Difference(actual).Values())
	assert.Equal(0, actual.Difference(actual).Len())
}
