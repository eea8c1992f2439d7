package framework

import (
	"fmt"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Failure kinds reported by the runner.
const (
	KindAssertion = "AssertionError"
	KindError     = "Error"
	KindTimeout   = "TimeoutError"
)

// Failure describes why a test failed.
//
// Expected and Actual are only defined for failures produced by a comparison, such as
// T.Equal. Failures reported through Errorf (which is what the assert and require packages
// call) or caused by a panic do not have them.
type Failure struct {
	Kind     string
	Message  string
	Expected ldvalue.OptionalString
	Actual   ldvalue.OptionalString
}

func (f *Failure) Error() string {
	return f.Kind + ": " + f.Message
}

// HasValues is true if the failure carries an expected or an actual value.
func (f *Failure) HasValues() bool {
	return f.Expected.IsDefined() || f.Actual.IsDefined()
}

func comparisonFailure(expected, actual interface{}, message string) *Failure {
	e, a := formatValue(expected), formatValue(actual)
	if message == "" {
		message = a + " == " + e
	}
	return &Failure{
		Kind:     KindAssertion,
		Message:  message,
		Expected: ldvalue.NewOptionalString(e),
		Actual:   ldvalue.NewOptionalString(a),
	}
}

func panicFailure(r interface{}) *Failure {
	if err, ok := r.(error); ok {
		return &Failure{Kind: KindError, Message: err.Error()}
	}
	return &Failure{Kind: KindError, Message: fmt.Sprint(r)}
}

func timeoutFailure(timeout time.Duration) *Failure {
	return &Failure{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("Timeout of %dms exceeded", timeout.Milliseconds()),
	}
}

func formatValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
