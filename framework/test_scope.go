package framework

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/assert"
)

// T represents a single running test.
//
// It implements the same basic functionality as Go's testing.T, in an environment that is
// outside of the Go test runner. To make assertions, pass the *T to the assert and require
// packages as if it were a *testing.T, or use T.Equal to get a failure that carries the
// expected and actual values.
//
// T may be used from goroutines started by the test body, except for FailNow, Skip and
// SkipWithReason, which must be called from the test body itself.
type T struct {
	test           *Test
	debugLogger    CapturingLogger
	timeoutChanged chan struct{}
	lock           sync.Mutex
	timeout        time.Duration
	failures       []*Failure
	skipped        bool
	skipReason     string
	abandoned      bool
}

func newT(test *Test, timeout time.Duration) *T {
	return &T{
		test:           test,
		timeout:        timeout,
		timeoutChanged: make(chan struct{}, 1),
	}
}

func (t *T) run(action func(*T)) {
	defer func() {
		if r := recover(); r != nil {
			t.lock.Lock()
			defer t.lock.Unlock()
			if t.skipped || t.abandoned {
				return
			}
			if _, ok := r.(*T); ok {
				if len(t.failures) == 0 {
					t.failures = append(t.failures, &Failure{Kind: KindAssertion, Message: "test failed with no failure message"})
				}
				return
			}
			t.failures = append(t.failures, panicFailure(r))
			t.debugLogger.Printf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
		}
	}()

	action(t)
}

// Test returns the test case being run.
func (t *T) Test() *Test {
	return t.test
}

// Name returns the test's title.
func (t *T) Name() string {
	return t.test.Title
}

// Helper exists so that testify can treat T like a *testing.T.
func (t *T) Helper() {}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.addFailure(&Failure{
		Kind:    KindAssertion,
		Message: strings.TrimSpace(fmt.Sprintf(format, args...)),
	})
}

// FailNow stops the test immediately. The methods in the require package call FailNow.
func (t *T) FailNow() {
	panic(t)
}

// Equal records a failure if expected and actual are not equal, using the same notion of
// equality as assert.Equal.
func (t *T) Equal(expected, actual interface{}, msgAndArgs ...interface{}) bool {
	if assert.ObjectsAreEqual(expected, actual) {
		return true
	}
	t.addFailure(comparisonFailure(expected, actual, messageFromMsgAndArgs(msgAndArgs...)))
	return false
}

// Skip stops the test immediately and reports it as pending.
func (t *T) Skip() {
	t.lock.Lock()
	t.skipped = !t.abandoned
	t.lock.Unlock()
	panic(t)
}

func (t *T) SkipWithReason(reason string) {
	t.lock.Lock()
	t.skipReason = reason
	t.lock.Unlock()
	t.Skip()
}

// SetTimeout changes how long the test may run, counted from when it started.
func (t *T) SetTimeout(timeout time.Duration) {
	t.lock.Lock()
	t.timeout = timeout
	t.lock.Unlock()
	select {
	case t.timeoutChanged <- struct{}{}:
	default:
	}
}

func (t *T) Timeout() time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.timeout
}

// Debug logs some debug output for the test. The output is passed to the listener along
// with the test result.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

func (t *T) DebugLogger() Logger {
	return &t.debugLogger
}

func (t *T) addFailure(f *Failure) {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.abandoned {
		return
	}
	t.failures = append(t.failures, f)
	if len(t.failures) > 1 {
		t.debugLogger.Printf("additional failure: %s", f)
	}
}

// abandon gives up on a test whose body is still running. Anything the body reports from
// now on is ignored.
func (t *T) abandon(f *Failure) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.abandoned = true
	t.skipped = false
	t.failures = append([]*Failure{f}, t.failures...)
}

// outcome returns the first failure, if any, and whether the test was skipped.
func (t *T) outcome() (*Failure, bool, string) {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.skipped {
		return nil, true, t.skipReason
	}
	if len(t.failures) == 0 {
		return nil, false, ""
	}
	return t.failures[0], false, ""
}

func messageFromMsgAndArgs(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if len(msgAndArgs) == 1 {
		return fmt.Sprintf("%+v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs...)
}
