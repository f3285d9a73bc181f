package evaluator

import (
	"fmt"

	"github.com/titivuk/lino/object"
)

// DefaultStackCapacity bounds the operand stack when no capacity is given.
const DefaultStackCapacity = 31337

// Stack is the operand stack shared by all expression evaluations of one
// Evaluator. Every expression pushes exactly one value.
type Stack struct {
	items    []object.Object
	capacity int
}

func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultStackCapacity
	}
	return &Stack{capacity: capacity}
}

func (s *Stack) Push(obj object.Object) error {
	if len(s.items) >= s.capacity {
		return fmt.Errorf("%w: capacity %d", ErrStackOverflow, s.capacity)
	}
	s.items = append(s.items, obj)
	return nil
}

// Pop reports false when the stack is empty.
func (s *Stack) Pop() (object.Object, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	obj := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return obj, true
}

func (s *Stack) Len() int {
	return len(s.items)
}

// truncate drops everything above n, used to clean up after a failed line.
func (s *Stack) truncate(n int) {
	for len(s.items) > n {
		s.Pop()
	}
}
