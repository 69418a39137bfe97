package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	s := NewStack[int](4)
	require.True(t, s.IsEmpty())

	s.Push(1)
	s.Push(2)
	s.Push(3)
	require.Equal(t, 3, s.Len())

	require.Equal(t, 3, s.Pop())
	require.Equal(t, 2, s.Pop())

	s.Push(9)
	require.Equal(t, 9, s.Pop())
	require.Equal(t, 1, s.Pop())
	require.True(t, s.IsEmpty())
}

func TestStackFullCapacity(t *testing.T) {
	s := NewStack[int](4)
	for i := 0; i < 4; i++ {
		s.Push(i)
	}
	require.Equal(t, 4, s.Len())
	for i := 3; i >= 0; i-- {
		require.Equal(t, i, s.Pop())
	}
}
