package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemove(t *testing.T) {
	t.Run("removes first occurrence and keeps order", func(t *testing.T) {
		got, ok := Remove([]string{"a", "b", "c", "b"}, "b")
		require.True(t, ok)
		require.Equal(t, []string{"a", "c", "b"}, got)
	})

	t.Run("missing item leaves slice untouched", func(t *testing.T) {
		got, ok := Remove([]int{1, 2}, 3)
		require.False(t, ok)
		require.Equal(t, []int{1, 2}, got)
	})
}

func TestClone(t *testing.T) {
	src := []int{1, 2, 3}
	dst := Clone(src)
	dst[0] = 9
	require.Equal(t, 1, src[0], "clone should not alias the source")
	require.Nil(t, Clone[int](nil))
}
