package machine

// Stack is the unbounded data and return-address stack.
type Stack struct {
	items []Word
}

func (s *Stack) Push(v Word) {
	s.items = append(s.items, v)
}

// Pop removes the top word. ok is false when the stack is empty.
func (s *Stack) Pop() (v Word, ok bool) {
	if len(s.items) == 0 {
		return 0, false
	}
	v, s.items = s.items[len(s.items)-1], s.items[:len(s.items)-1]
	return v, true
}

func (s *Stack) Len() int {
	return len(s.items)
}

// Items returns a copy of the stack, bottom first.
func (s *Stack) Items() []Word {
	return append([]Word(nil), s.items...)
}

func (s *Stack) reset(items []Word) {
	s.items = append(s.items[:0], items...)
}
