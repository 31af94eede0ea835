package xmlwriter

import (
	"fmt"
	"runtime"
)

// EventError is returned when an operation raises an event that is not
// permitted in the writer's current state. The error is fatal to the
// in-progress document: the only recovery is Reset (with a fresh sink if
// necessary) or a new Writer.
type EventError struct {
	Event Event
	State State
}

func (e *EventError) Error() string {
	return fmt.Sprintf("xmlwriter: event %s not allowed in state %s", e.Event.Name(), e.State.Name())
}

/*
ErrCollector allows you to defer raising an error until after a series of
procedural calls.

For any sufficiently complex procedural XML assembly, checking every single
call is patently ridiculous:

	if err := w.StartDocument(); err != nil {
		return err
	}
	if err := w.StartElement("elem"); err != nil {
		return err
	}
	if err := w.AddAttribute("attr", "yep"); err != nil {
		return err
	}

ErrCollector lets you assume it is ok to keep writing until the end of a
controlled block, then fail with the first error that occurred. This mirrors
an idiom used internally (see printer.cachedWriteError), which was itself
cribbed from the stdlib's xml package.

For functions that return an error:

	func write(w *xmlwriter.Writer) (err error) {
		ec := &xmlwriter.ErrCollector{}
		defer ec.Set(&err)
		ec.Do(
			w.StartDocument(),
			w.StartElement("elem"),
			w.AddAttribute("attr", "yep"),
		)
		return
	}

If you want to panic instead, substitute `defer ec.Set(&err)` with `defer
ec.Panic()`.

It is entirely the responsibility of the library's user to remember to call
either `ec.Set()` or `ec.Panic()`. If you don't, you'll be swallowing
errors.
*/
type ErrCollector struct {
	File  string
	Line  int
	Index int
	Err   error
}

// Error implements the error interface.
func (e *ErrCollector) Error() string {
	return fmt.Sprintf("error at %s:%d #%d - %v", e.File, e.Line, e.Index, e.Err)
}

// Unwrap returns the collected error.
func (e *ErrCollector) Unwrap() error {
	return e.Err
}

// Panic causes the collector to panic if any error has been collected.
// It should be called in a defer.
func (e *ErrCollector) Panic() {
	if e.Err != nil {
		panic(e)
	}
}

// Set assigns the collector's internal error to an external error variable.
// It should be called in a defer with a named return.
func (e *ErrCollector) Set(err *error) {
	if e.Err != nil {
		*err = e
	}
}

// Do collects the first error in a list of errors and holds on to it.
//
// The calls passed to Do are not short circuited on failure - the first
// error is retained and the rest are discarded. It is only intended to be
// used when you know that subsequent calls after the first error are safe
// to make.
func (e *ErrCollector) Do(errs ...error) {
	for i, err := range errs {
		if err != nil {
			_, file, line, _ := runtime.Caller(1)
			e.Err = err
			e.Index = i + 1
			e.File = file
			e.Line = line
			return
		}
	}
}

// Must collects the first error in a list of errors and panics with it.
func (e *ErrCollector) Must(errs ...error) {
	for i, err := range errs {
		if err != nil {
			_, file, line, _ := runtime.Caller(1)
			e.Err = err
			e.Index = i + 1
			e.File = file
			e.Line = line
			panic(e)
		}
	}
}
