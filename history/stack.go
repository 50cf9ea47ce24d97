package history

import "github.com/zyedidia/generic/list"

// stack is a LIFO of commands that can also drop its oldest entry in O(1).
// The top is the back of the list, the oldest entry is the front.
type stack struct {
	items *list.List[Command]
	n     int
}

func newStack() stack {
	return stack{items: list.New[Command]()}
}

func (s *stack) push(c Command) {
	s.items.PushBack(c)
	s.n++
}

func (s *stack) pop() (Command, bool) {
	back := s.items.Back
	if back == nil {
		return nil, false
	}
	s.items.Remove(back)
	s.n--
	return back.Value, true
}

func (s *stack) peek() (Command, bool) {
	if s.items.Back == nil {
		return nil, false
	}
	return s.items.Back.Value, true
}

// dropOldest discards the bottom entry.
func (s *stack) dropOldest() (Command, bool) {
	front := s.items.Front
	if front == nil {
		return nil, false
	}
	s.items.Remove(front)
	s.n--
	return front.Value, true
}

func (s *stack) len() int {
	return s.n
}

func (s *stack) clear() {
	s.items = list.New[Command]()
	s.n = 0
}

// commands returns the entries oldest first.
func (s *stack) commands() []Command {
	out := make([]Command, 0, s.n)
	if s.items.Front != nil {
		s.items.Front.Each(func(c Command) {
			out = append(out, c)
		})
	}
	return out
}
