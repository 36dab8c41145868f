package util

import (
	"fmt"
	"strings"
)

// Stack is a LIFO stack of items. The exported Of slice holds the contents
// with the top of the stack at index 0; it can be set directly to initialize
// the Stack with contents, e.g. Stack[string]{Of: []string{"top", "bottom"}}.
type Stack[E any] struct {
	Of []E
}

// Push adds the given item to the top of the stack.
func (s *Stack[E]) Push(item E) {
	if s.Of == nil {
		s.Of = make([]E, 0)
	}
	s.Of = append([]E{item}, s.Of...)
}

// Pop removes the item at the top of the stack and returns it. It panics if
// the stack is empty.
func (s *Stack[E]) Pop() E {
	if len(s.Of) == 0 {
		panic("pop of empty stack")
	}

	item := s.Of[0]
	newVals := make([]E, len(s.Of)-1)
	copy(newVals, s.Of[1:])
	s.Of = newVals
	return item
}

// Peek returns the item at the top of the stack without removing it. It
// panics if the stack is empty.
func (s Stack[E]) Peek() E {
	if len(s.Of) == 0 {
		panic("peek of empty stack")
	}
	return s.Of[0]
}

// Len returns the number of items in the stack.
func (s Stack[E]) Len() int {
	return len(s.Of)
}

// Empty returns whether the stack has no items in it.
func (s Stack[E]) Empty() bool {
	return len(s.Of) == 0
}

// Copy returns a deep-copied duplicate of this stack. Pushes and pops on the
// copy have no effect on the original, and vice versa.
func (s Stack[E]) Copy() Stack[E] {
	s2 := Stack[E]{
		Of: make([]E, len(s.Of)),
	}
	copy(s2.Of, s.Of)

	return s2
}

// String shows the contents of the stack from top to bottom.
func (s Stack[E]) String() string {
	var sb strings.Builder

	sb.WriteString("Stack[")
	for i := range s.Of {
		sb.WriteString(fmt.Sprintf("%v", s.Of[i]))
		if i+1 < len(s.Of) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune(']')

	return sb.String()
}
