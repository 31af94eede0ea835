package xmlwriter

import "fmt"

// State is the position of the Writer within the document being written.
// Exactly one State is current at any time. StateBeforeDoc is the initial
// state; StateAfterDoc is terminal and can only be left via Writer.Reset().
type State int

// Range of allowed State values.
const (
	StateBeforeDoc State = iota
	StateBeforeRoot
	StateInStartTag
	StateInCData
	StateInDTD
	StateAfterTag
	StateAfterData
	StateAfterRoot
	StateAfterDoc

	stateCount int = iota
)

// stateDepth is a sentinel next-state used in the transition table for
// element closes: the real next state depends on whether the element stack
// is empty once the close action has run.
const stateDepth State = -1

var stateName = [stateCount]string{
	StateBeforeDoc:  "before-document",
	StateBeforeRoot: "before-root",
	StateInStartTag: "in-start-tag",
	StateInCData:    "in-cdata",
	StateInDTD:      "in-dtd",
	StateAfterTag:   "after-tag",
	StateAfterData:  "after-data",
	StateAfterRoot:  "after-root",
	StateAfterDoc:   "after-document",
}

// Name returns a stable name for the State. If the State is invalid, the
// Name() will be empty. String() returns a human-readable representation for
// information purposes; if a stable string is required, use this instead.
func (s State) Name() string {
	if s >= 0 && int(s) < stateCount {
		return stateName[s]
	}
	return ""
}

// String returns a human-readable representation of the State.
func (s State) String() string {
	n := s.Name()
	if n == "" {
		n = "<unknown>"
	}
	return fmt.Sprintf("%s(%d)", n, int(s))
}

// Event is the kind of structural event handled by the Writer. Every public
// write operation maps to exactly one Event.
type Event int

// Range of allowed Event values.
const (
	EventAttribute Event = iota
	EventInlineRef
	EventBlockRef
	EventCharacters
	EventComment
	EventEndCData
	EventEndDoc
	EventEndDTD
	EventEndElem
	EventNewline
	EventPI
	EventStartCData
	EventStartDoc
	EventStartDTD
	EventStartElem

	eventCount int = iota
)

var eventName = [eventCount]string{
	EventAttribute:  "attribute",
	EventInlineRef:  "inline-ref",
	EventBlockRef:   "block-ref",
	EventCharacters: "characters",
	EventComment:    "comment",
	EventEndCData:   "end-cdata",
	EventEndDoc:     "end-document",
	EventEndDTD:     "end-dtd",
	EventEndElem:    "end-element",
	EventNewline:    "newline",
	EventPI:         "pi",
	EventStartCData: "start-cdata",
	EventStartDoc:   "start-document",
	EventStartDTD:   "start-dtd",
	EventStartElem:  "start-element",
}

// Name returns a stable name for the Event. If the Event is invalid, the
// Name() will be empty.
func (e Event) Name() string {
	if e >= 0 && int(e) < eventCount {
		return eventName[e]
	}
	return ""
}

// String returns a human-readable representation of the Event.
func (e Event) String() string {
	n := e.Name()
	if n == "" {
		n = "<unknown>"
	}
	return fmt.Sprintf("%s(%d)", n, int(e))
}

// transition is one cell of the state/event table. A nil cell means the
// event is not permitted in the state. The action runs before the state
// advances, so actions observe the pre-transition state.
type transition struct {
	action func(w *Writer) error
	next   State
}

var transitions = [stateCount][eventCount]*transition{
	StateBeforeDoc: {
		EventStartDoc: {next: StateBeforeRoot},
	},
	StateBeforeRoot: {
		EventCharacters: {next: StateBeforeRoot},
		EventComment:    {next: StateBeforeRoot},
		EventInlineRef:  {next: StateBeforeRoot},
		EventBlockRef:   {next: StateBeforeRoot},
		EventNewline:    {next: StateBeforeRoot},
		EventPI:         {next: StateBeforeRoot},
		EventStartDTD:   {next: StateInDTD},
		EventStartElem:  {next: StateInStartTag},
		EventEndDoc:     {next: StateAfterDoc},
	},
	StateInStartTag: {
		EventAttribute:  {next: StateInStartTag},
		EventCharacters: {action: (*Writer).flushStartTag, next: StateAfterData},
		EventInlineRef:  {action: (*Writer).flushStartTag, next: StateAfterData},
		EventNewline:    {action: (*Writer).flushStartTag, next: StateAfterTag},
		EventPI:         {action: (*Writer).flushStartTag, next: StateAfterTag},
		EventBlockRef:   {action: (*Writer).flushStartTag, next: StateAfterTag},
		EventComment:    {action: (*Writer).flushStartTag, next: StateAfterTag},
		EventStartElem:  {action: (*Writer).flushStartTag, next: StateInStartTag},
		EventStartCData: {action: (*Writer).flushStartTag, next: StateInCData},
		EventEndElem:    {action: (*Writer).closeStartTag, next: stateDepth},
		EventEndDoc:     {action: (*Writer).closeStartTagFinal, next: StateAfterDoc},
	},
	StateInCData: {
		EventCharacters: {next: StateInCData},
		EventComment:    {next: StateInCData},
		EventInlineRef:  {next: StateInCData},
		EventBlockRef:   {next: StateInCData},
		EventNewline:    {next: StateInCData},
		EventEndCData:   {next: StateAfterData},
	},
	StateInDTD: {
		EventCharacters: {next: StateInDTD},
		EventComment:    {next: StateInDTD},
		EventNewline:    {next: StateInDTD},
		EventEndDTD:     {next: StateBeforeRoot},
	},
	StateAfterTag: {
		EventCharacters: {next: StateAfterData},
		EventInlineRef:  {next: StateAfterData},
		EventBlockRef:   {next: StateAfterTag},
		EventComment:    {next: StateAfterTag},
		EventNewline:    {next: StateAfterTag},
		EventPI:         {next: StateAfterTag},
		EventStartCData: {next: StateInCData},
		EventStartElem:  {next: StateInStartTag},
		EventEndElem:    {action: (*Writer).writeEndElement, next: stateDepth},
	},
	StateAfterData: {
		EventCharacters: {next: StateAfterData},
		EventInlineRef:  {next: StateAfterData},
		EventBlockRef:   {next: StateAfterData},
		EventComment:    {next: StateAfterData},
		EventNewline:    {next: StateAfterData},
		EventPI:         {next: StateAfterData},
		EventStartCData: {next: StateInCData},
		EventStartElem:  {next: StateInStartTag},
		EventEndElem:    {action: (*Writer).writeEndElement, next: stateDepth},
	},
	StateAfterRoot: {
		EventCharacters: {next: StateAfterRoot},
		EventComment:    {next: StateAfterRoot},
		EventInlineRef:  {next: StateAfterRoot},
		EventBlockRef:   {next: StateAfterRoot},
		EventNewline:    {next: StateAfterRoot},
		EventPI:         {next: StateAfterRoot},
		EventEndDoc:     {next: StateAfterDoc},
	},
	StateAfterDoc: {},
}

// handle validates ev against the current state, runs the cell's action and
// advances the state. It returns the state that was current when the event
// arrived.
func (w *Writer) handle(ev Event) (State, error) {
	prev := w.state
	tr := transitions[w.state][ev]
	if tr == nil {
		return prev, &EventError{Event: ev, State: w.state}
	}
	if tr.action != nil {
		if err := tr.action(w); err != nil {
			return prev, err
		}
	}
	next := tr.next
	if next == stateDepth {
		if w.stack.depth() == 0 {
			next = StateAfterRoot
		} else {
			next = StateAfterTag
		}
	}
	w.state = next
	return prev, nil
}

// flushStartTag completes the pending start tag without minimizing it.
func (w *Writer) flushStartTag() error {
	return w.writeStartElement(false)
}

// closeStartTag handles an end-element arriving while the start tag is still
// open: the tag is minimized if configured, otherwise both tags are written.
// If the pending element was pushed as an empty element it self-closes and
// the end-element applies to its parent.
func (w *Writer) closeStartTag() error {
	empty := w.stack.top().empty
	if err := w.writeStartElement(w.minimize); err != nil {
		return err
	}
	if empty || !w.minimize {
		return w.writeEndElement()
	}
	return nil
}

// closeStartTagFinal handles an end-document arriving while a start tag is
// still open.
func (w *Writer) closeStartTagFinal() error {
	if err := w.writeStartElement(w.minimize); err != nil {
		return err
	}
	if !w.minimize {
		return w.writeEndElement()
	}
	return nil
}
