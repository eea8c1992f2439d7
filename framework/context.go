package framework

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultTimeout is used for tests that do not call T.SetTimeout.
const DefaultTimeout = time.Second * 2

type RunnerOptions struct {
	// Filter decides which tests run. Tests it rejects are reported as pending.
	Filter Filter

	// Listener receives the lifecycle events of the run.
	Listener Listener

	// DefaultTimeout bounds every test that does not set its own timeout.
	DefaultTimeout time.Duration

	// DebugLogger receives the runner's own diagnostic output.
	DebugLogger Logger
}

// Runner executes a hierarchy of suites and tests and reports each step to a Listener.
//
// A Runner runs tests one at a time. Each test body gets its own goroutine so that it can
// be abandoned when it exceeds its timeout; abandoned bodies count as pending work until
// they return, see Quiesce.
type Runner struct {
	filter         Filter
	listener       Listener
	defaultTimeout time.Duration
	logger         Logger
	results        Results
	pending        sync.WaitGroup
	started        bool
}

// Context is the handle passed to suite bodies.
type Context struct {
	runner *Runner
	suite  *Suite
}

func NewRunner(opts RunnerOptions) *Runner {
	r := &Runner{
		filter:         opts.Filter,
		listener:       opts.Listener,
		defaultTimeout: opts.DefaultTimeout,
		logger:         opts.DebugLogger,
	}
	if r.listener == nil {
		r.listener = nullListener{}
	}
	if r.defaultTimeout <= 0 {
		r.defaultTimeout = DefaultTimeout
	}
	if r.logger == nil {
		r.logger = NullLogger()
	}
	return r
}

// Run executes action against the root suite and returns once every test declared in it
// has finished or timed out. It can only be called once per Runner.
func (r *Runner) Run(action func(*Context)) Results {
	if r.started {
		panic("framework: Runner.Run called more than once")
	}
	r.started = true

	root := NewRootSuite()
	r.emit(Event{Kind: EventSuite, Suite: root})
	action(&Context{runner: r, suite: root})
	r.emit(Event{Kind: EventSuiteEnd, Suite: root})
	r.emit(Event{Kind: EventEnd, Failures: len(r.results.Failures)})
	return r.results
}

// Quiesce waits until every abandoned test body has returned, or until ctx is done.
func (r *Runner) Quiesce(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("abandoned tests are still running: %w", ctx.Err())
	}
}

func (r *Runner) emit(e Event) {
	r.listener.HandleEvent(e)
}

// Suite returns the suite this context belongs to.
func (c *Context) Suite() *Suite {
	return c.suite
}

// Describe declares a nested suite and runs its body immediately.
func (c *Context) Describe(title string, action func(*Context)) {
	s := NewSuite(title, c.suite)
	c.runner.emit(Event{Kind: EventSuite, Suite: s})
	action(&Context{runner: c.runner, suite: s})
	c.runner.emit(Event{Kind: EventSuiteEnd, Suite: s})
}

// It declares a test in the current suite and runs it immediately. It returns when the test
// body has returned or its timeout has expired.
func (c *Context) It(title string, action func(*T)) {
	c.runner.runTest(NewTest(title, c.suite), action)
}

func (r *Runner) runTest(test *Test, action func(*T)) {
	id := test.ID()
	r.emit(Event{Kind: EventTest, Test: test})

	if r.filter != nil && !r.filter(id) {
		test.State = StatePending
		r.results.Tests = append(r.results.Tests, TestResult{TestID: id, Skipped: true})
		r.emit(Event{Kind: EventPending, Test: test, Reason: "excluded by filter parameters"})
		return
	}

	t := newT(test, r.defaultTimeout)
	started := time.Now()
	finished := make(chan struct{})
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		defer close(finished)
		t.run(action)
	}()

	r.await(t, started, finished)
	test.Duration = time.Since(started)

	failure, skipped, reason := t.outcome()
	result := TestResult{TestID: id, Failure: failure, Skipped: skipped, Duration: test.Duration}
	r.results.Tests = append(r.results.Tests, result)

	switch {
	case skipped:
		test.State = StatePending
		r.emit(Event{Kind: EventPending, Test: test, Reason: reason})
	case failure != nil:
		test.State = StateFailed
		r.results.Failures = append(r.results.Failures, result)
		r.emit(Event{Kind: EventFail, Test: test, Failure: failure, DebugOutput: t.debugLogger.Output()})
	default:
		test.State = StatePassed
		r.emit(Event{Kind: EventPass, Test: test, DebugOutput: t.debugLogger.Output()})
	}
}

// await blocks until the test body finishes or its timeout, measured from the start of the
// test, expires. The timeout can be changed by the body while it runs.
func (r *Runner) await(t *T, started time.Time, finished <-chan struct{}) {
	for {
		timeout := t.Timeout()
		remaining := timeout - time.Since(started)
		if remaining <= 0 {
			r.logger.Printf("Abandoning test %q after %s", t.test.ID(), timeout)
			t.abandon(timeoutFailure(timeout))
			return
		}
		select {
		case <-finished:
			return
		case <-t.timeoutChanged:
		case <-time.After(remaining):
		}
	}
}
