package framework

// EventKind identifies a step in the lifecycle of a test run.
type EventKind string

const (
	EventSuite    EventKind = "suite"
	EventSuiteEnd EventKind = "suite end"
	EventTest     EventKind = "test"
	EventPass     EventKind = "pass"
	EventFail     EventKind = "fail"
	EventPending  EventKind = "pending"
	EventEnd      EventKind = "end"
)

// Event is delivered to a Listener for every step of a run. Which fields are set depends
// on Kind:
//
//   - EventSuite, EventSuiteEnd: Suite
//   - EventTest: Test
//   - EventPass: Test, DebugOutput
//   - EventFail: Test, Failure, DebugOutput
//   - EventPending: Test, Reason
//   - EventEnd: Failures
type Event struct {
	Kind        EventKind
	Suite       *Suite
	Test        *Test
	Failure     *Failure
	Reason      string
	DebugOutput CapturedOutput
	Failures    int
}

// Listener receives events from a Runner. Events are delivered one at a time, on the
// goroutine that called Runner.Run.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts an ordinary function to the Listener interface.
type ListenerFunc func(Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Listeners delivers each event to every listener in order.
type Listeners []Listener

func (ls Listeners) HandleEvent(e Event) {
	for _, l := range ls {
		l.HandleEvent(e)
	}
}

type nullListener struct{}

func (n nullListener) HandleEvent(Event) {}
