package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titivuk/lino/object"
)

func TestStackPushPop(t *testing.T) {
	s := NewStack(2)
	one := &object.Number{Value: 1}
	two := &object.Number{Value: 2}

	require.NoError(t, s.Push(one))
	require.NoError(t, s.Push(two))
	assert.Equal(t, 2, s.Len())

	err := s.Push(NIL)
	require.ErrorIs(t, err, ErrStackOverflow)
	assert.EqualError(t, err, "operand stack overflow: capacity 2")

	got, ok := s.Pop()
	require.True(t, ok)
	assert.Same(t, two, got)
	got, ok = s.Pop()
	require.True(t, ok)
	assert.Same(t, one, got)

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestStackTruncate(t *testing.T) {
	s := NewStack(0)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Push(NIL))
	}

	s.truncate(2)
	assert.Equal(t, 2, s.Len())
	s.truncate(3)
	assert.Equal(t, 2, s.Len())
}

func TestNewStackDefaultsCapacity(t *testing.T) {
	assert.Equal(t, DefaultStackCapacity, NewStack(-1).capacity)
}
