package xmlwriter

const initialStackDepth = 8

// element is a frame on the writer's stack of open elements. The frame keeps
// the attributes buffered while the start tag is pending, and remembers the
// state that was current when the element was opened so the layout engine
// can decide whether the start tag needs its own line.
type element struct {
	uri        string
	local      string
	qname      string
	attrs      Attrs
	empty      bool
	containing State
}

// elemStack is a LIFO of open elements backed by a growable slice. Frames
// are addressed by index so closing and reopening elements does not
// reallocate.
type elemStack struct {
	elems []element
}

func newElemStack() elemStack {
	return elemStack{elems: make([]element, 0, initialStackDepth)}
}

func (s *elemStack) push(el element) {
	s.elems = append(s.elems, el)
}

func (s *elemStack) pop() {
	s.elems = s.elems[:len(s.elems)-1]
}

// top returns the innermost open element. The caller must ensure the stack
// is not empty.
func (s *elemStack) top() *element {
	return &s.elems[len(s.elems)-1]
}

func (s *elemStack) depth() int {
	return len(s.elems)
}

func (s *elemStack) clear() {
	s.elems = s.elems[:0]
}
