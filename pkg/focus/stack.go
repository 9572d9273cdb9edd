package focus

// Stack is the LIFO focus history. It is seeded with one element at
// construction and can never become empty: the bottom element is the
// startup focus and is never popped. Only the dispatch loop mutates it.
type Stack struct {
	frames []Focus
}

// NewStack creates a stack seeded with the initial focus.
func NewStack(initial Focus) *Stack {
	return &Stack{frames: []Focus{initial}}
}

// Current returns the active focus, the top of the stack.
func (s *Stack) Current() Focus {
	return s.frames[len(s.frames)-1]
}

// Push makes f the active focus.
func (s *Stack) Push(f Focus) {
	s.frames = append(s.frames, f)
}

// Pop removes and returns the active focus. Popping the last element is a
// broken invariant, not a recoverable condition: it panics rather than
// leaving the application without a focus.
func (s *Stack) Pop() Focus {
	if len(s.frames) <= 1 {
		panic("focus: pop would empty the stack")
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// Depth returns the number of stacked focuses.
func (s *Stack) Depth() int {
	return len(s.frames)
}
