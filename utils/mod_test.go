package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b", "c"}, "b"))
	require.Equal(t, -1, FindIndex([]string{"a", "b", "c"}, "d"))
	require.Equal(t, 2, FindIndexFunc([]int{1, 3, 4, 6}, func(n int) bool { return n%2 == 0 }))
	require.Equal(t, -1, FindIndexFunc([]int{1, 3}, func(n int) bool { return n%2 == 0 }))
}

func TestRemoveAt(t *testing.T) {
	require.Equal(t, []int{1, 3}, RemoveAt([]int{1, 2, 3}, 1))
	require.Equal(t, []int{1, 2}, RemoveAt([]int{1, 2, 3}, 2))
	require.Equal(t, []int{1, 2, 3}, RemoveAt([]int{1, 2, 3}, 3), "out of range index is ignored")
	require.Empty(t, RemoveAt([]int{1}, 0))
}
