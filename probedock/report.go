package probedock

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TestOutcome is the reported result of one test case.
type TestOutcome struct {
	Name       string                 `json:"name"`
	Tags       []string               `json:"tags"`
	Passed     bool                   `json:"passed"`
	DurationMs int64                  `json:"durationMs"`
	Message    ldvalue.OptionalString `json:"message"`
}

// MarshalJSON leaves out the message of a passing test instead of writing null.
func (o TestOutcome) MarshalJSON() ([]byte, error) {
	type plain TestOutcome
	return json.Marshal(struct {
		plain
		Message *string `json:"message,omitempty"`
	}{plain: plain(o), Message: o.Message.AsPointer()})
}

// RunReport is everything reported for one run of the test suite.
type RunReport struct {
	UID       string        `json:"uid"`
	Category  string        `json:"category"`
	StartedAt time.Time     `json:"startedAt"`
	ClosedAt  *time.Time    `json:"closedAt,omitempty"`
	Outcomes  []TestOutcome `json:"outcomes"`
}

// Duration is the time from the start of the run until it was closed, or zero if it is
// still open.
func (r RunReport) Duration() time.Duration {
	if r.ClosedAt == nil {
		return 0
	}
	return r.ClosedAt.Sub(r.StartedAt)
}

// Failures counts the outcomes that did not pass.
func (r RunReport) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Passed {
			n++
		}
	}
	return n
}

// Accumulator collects outcomes into a RunReport until it is closed.
//
// It is not safe for concurrent use; outcomes are expected to arrive one at a time from a
// sequential runner.
type Accumulator struct {
	report RunReport
}

func NewAccumulator(category string, startedAt time.Time) *Accumulator {
	return &Accumulator{
		report: RunReport{
			UID:       uuid.NewString(),
			Category:  category,
			StartedAt: startedAt,
			Outcomes:  []TestOutcome{},
		},
	}
}

func (a *Accumulator) RecordPass(name string, tags []string, durationMs int64) error {
	return a.add(TestOutcome{Name: name, Tags: tags, Passed: true, DurationMs: durationMs})
}

func (a *Accumulator) RecordFail(name string, tags []string, durationMs int64, message string) error {
	return a.add(TestOutcome{
		Name:       name,
		Tags:       tags,
		DurationMs: durationMs,
		Message:    ldvalue.NewOptionalString(message),
	})
}

func (a *Accumulator) add(o TestOutcome) error {
	if a.Closed() {
		return &LifecycleViolation{State: StateClosed, Operation: "recording the outcome of " + o.Name}
	}
	if o.DurationMs < 0 {
		o.DurationMs = 0
	}
	o.Tags = append([]string{}, o.Tags...)
	a.report.Outcomes = append(a.report.Outcomes, o)
	return nil
}

// Close marks the end of the run. Closing twice means the runner's lifecycle is broken and
// is reported as a LifecycleViolation.
func (a *Accumulator) Close(at time.Time) error {
	if a.Closed() {
		return &LifecycleViolation{State: StateClosed, Operation: "closing the report"}
	}
	a.report.ClosedAt = &at
	return nil
}

func (a *Accumulator) Closed() bool {
	return a.report.ClosedAt != nil
}

// Snapshot returns a copy of the report that shares nothing with the Accumulator.
func (a *Accumulator) Snapshot() RunReport {
	ret := a.report
	if a.report.ClosedAt != nil {
		closedAt := *a.report.ClosedAt
		ret.ClosedAt = &closedAt
	}
	ret.Outcomes = make([]TestOutcome, 0, len(a.report.Outcomes))
	for _, o := range a.report.Outcomes {
		o.Tags = append([]string{}, o.Tags...)
		ret.Outcomes = append(ret.Outcomes, o)
	}
	return ret
}
