package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Stack_PushPop(t *testing.T) {
	assert := assert.New(t)

	s := Stack[string]{}

	assert.True(s.Empty())
	assert.Equal(0, s.Len())

	s.Push("a")
	s.Push("b")

	assert.False(s.Empty())
	assert.Equal(2, s.Len())
	assert.Equal("b", s.Peek())

	popped := s.Pop()
	assert.Equal("b", popped)
	assert.Equal("a", s.Peek())
	assert.Equal(1, s.Len())
}

func Test_Stack_valueSemantics(t *testing.T) {
	assert := assert.New(t)

	s := Stack[string]{Of: []string{"a", "b"}}
	s2 := s

	// popping one must not be visible through the other
	s2.Pop()
	assert.Equal(2, s.Len())
	assert.Equal(1, s2.Len())

	// same with pushing
	s3 := s
	s3.Push("c")
	assert.Equal(2, s.Len())
	assert.Equal(3, s3.Len())
	assert.Equal("a", s.Peek())
}

func Test_Stack_Copy(t *testing.T) {
	assert := assert.New(t)

	s := Stack[string]{Of: []string{"a", "b"}}
	s2 := s.Copy()

	s2.Pop()
	s2.Push("x")

	assert.Equal([]string{"a", "b"}, s.Of)
	assert.Equal([]string{"x", "b"}, s2.Of)
}

func Test_Stack_String(t *testing.T) {
	assert := assert.New(t)

	s := Stack[string]{Of: []string{"a", "b"}}
	assert.Equal("Stack[a, b]", s.String())

	empty := Stack[string]{}
	assert.Equal("Stack[]", empty.String())
}
