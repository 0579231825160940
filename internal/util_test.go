package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type link struct {
	name   string
	parent *link
}

func TestReconstructPath(t *testing.T) {
	start := &link{name: "a"}
	middle := &link{name: "b", parent: start}
	end := &link{name: "c", parent: middle}

	parent := func(l *link) (*link, bool) { return l.parent, l.parent != nil }
	name := func(l *link) string { return l.name }

	t.Run("chain", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, ReconstructPath(end, parent, name))
	})

	t.Run("single node", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, ReconstructPath(start, parent, name))
	})
}

func TestReverse(t *testing.T) {
	s := []int{1, 2, 3, 4}
	Reverse(s)
	assert.Equal(t, []int{4, 3, 2, 1}, s)

	var empty []int
	Reverse(empty)
	assert.Empty(t, empty)
}
