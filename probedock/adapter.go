package probedock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/rs/zerolog"

	"github.com/probedock/probedock-demo-go/framework"
)

// State is the position of an Adapter in its lifecycle.
type State int

// StateIdle is only the zero value; NewAdapter returns an adapter that is already collecting.
const (
	StateIdle State = iota
	StateCollecting
	StateClosed
	StateFlushed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	case StateClosed:
		return "closed"
	case StateFlushed:
		return "flushed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Adapter turns runner events into a RunReport and hands the report to a Flusher once the
// process is ready to exit.
//
// The adapter starts collecting as soon as it is created. Shutdown closes the report and
// flushes it; any event received after that is a LifecycleViolation and panics.
type Adapter struct {
	acc      *Accumulator
	flusher  *Flusher
	log      zerolog.Logger
	now      func() time.Time
	state    State
	runEnded bool
	exitCode int
	handlers map[framework.EventKind]func(framework.Event) error
}

func NewAdapter(acc *Accumulator, flusher *Flusher, log zerolog.Logger) *Adapter {
	a := &Adapter{
		acc:     acc,
		flusher: flusher,
		log:     log,
		now:     time.Now,
		state:   StateCollecting,
	}
	a.handlers = map[framework.EventKind]func(framework.Event) error{
		framework.EventSuite:    a.onSuite,
		framework.EventSuiteEnd: a.onSuiteEnd,
		framework.EventTest:     a.onTest,
		framework.EventPass:     a.onPass,
		framework.EventFail:     a.onFail,
		framework.EventPending:  a.onPending,
		framework.EventEnd:      a.onEnd,
	}
	return a
}

func (a *Adapter) State() State {
	return a.state
}

// ExitCode is the number of failures reported at the end of the run.
func (a *Adapter) ExitCode() int {
	return a.exitCode
}

// HandleEvent implements framework.Listener.
func (a *Adapter) HandleEvent(e framework.Event) {
	if a.state != StateCollecting {
		panic(&LifecycleViolation{State: a.state, Operation: fmt.Sprintf("received %q event", e.Kind)})
	}
	handler, ok := a.handlers[e.Kind]
	if !ok {
		a.log.Warn().Str("event", string(e.Kind)).Msg("Ignoring unknown runner event")
		return
	}
	if err := handler(e); err != nil {
		var violation *LifecycleViolation
		if errors.As(err, &violation) {
			panic(violation)
		}
		a.log.Error().Err(err).Str("event", string(e.Kind)).Msg("Test result was not recorded")
	}
}

func (a *Adapter) onSuite(e framework.Event) error {
	if !e.Suite.IsRoot() {
		a.log.Debug().Str("suite", e.Suite.Title).Msg("Execution of test suite started")
	}
	return nil
}

func (a *Adapter) onSuiteEnd(e framework.Event) error {
	if !e.Suite.IsRoot() {
		a.log.Debug().Str("suite", e.Suite.Title).Msg("Execution of test suite completed")
	}
	return nil
}

func (a *Adapter) onTest(e framework.Event) error {
	a.log.Debug().Str("test", e.Test.ID().String()).Msg("Execution of test started")
	return nil
}

func (a *Adapter) onPending(e framework.Event) error {
	a.log.Debug().Str("test", e.Test.ID().String()).Str("reason", e.Reason).Msg("Test skipped, not reported")
	return nil
}

func (a *Adapter) onPass(e framework.Event) error {
	md, err := Extract(e.Test)
	if err != nil {
		return err
	}
	return a.acc.RecordPass(md.Name, md.Tags, e.Test.Duration.Milliseconds())
}

func (a *Adapter) onFail(e framework.Event) error {
	md, err := Extract(e.Test)
	if err != nil {
		return err
	}
	return a.acc.RecordFail(md.Name, md.Tags, e.Test.Duration.Milliseconds(), FormatMessage(e.Failure))
}

func (a *Adapter) onEnd(e framework.Event) error {
	a.runEnded = true
	a.exitCode = e.Failures
	a.log.Info().Int("failures", e.Failures).Msg("Test runner has finished")
	return nil
}

// Shutdown closes the report, flushes it, and waits for the flush to settle. It returns
// the exit code for the process, which only depends on the number of failed tests, and
// any error from the flush, which is informational.
//
// Shutdown must be called exactly once, after the runner has quiesced.
func (a *Adapter) Shutdown(ctx context.Context) (int, error) {
	if a.state != StateCollecting {
		panic(&LifecycleViolation{State: a.state, Operation: "shutting down"})
	}
	if !a.runEnded {
		a.log.Warn().Msg("Shutting down before the runner reported the end of the run")
	}
	if err := a.acc.Close(a.now()); err != nil {
		panic(err)
	}
	a.state = StateClosed

	result := <-a.flusher.Flush(ctx, a.acc.Snapshot())
	a.state = StateFlushed
	return a.exitCode, result.Err()
}

// FormatMessage builds the failure message sent to Probe Dock: the failure kind and text,
// followed by the expected and actual values when the failure has them.
func FormatMessage(f *framework.Failure) string {
	if f == nil {
		return ""
	}
	msg := f.Kind + ": " + stripansi.Strip(f.Message)
	if f.HasValues() {
		msg += " (expected: " + f.Expected.OrElse("undefined") + ", actual: " + f.Actual.OrElse("undefined") + ")"
	}
	return msg
}
