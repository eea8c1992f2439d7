package probedock

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func TestAccumulatorRecordsInOrder(t *testing.T) {
	acc := NewAccumulator("Go", testStart)
	require.NoError(t, acc.RecordPass("app works", []string{}, 3))
	require.NoError(t, acc.RecordFail("db fails", []string{"backend"}, 7, "Error: boom"))

	report := acc.Snapshot()
	assert.Equal(t, "Go", report.Category)
	assert.NotEmpty(t, report.UID)
	require.Len(t, report.Outcomes, 2)

	assert.Equal(t, "app works", report.Outcomes[0].Name)
	assert.True(t, report.Outcomes[0].Passed)
	assert.False(t, report.Outcomes[0].Message.IsDefined())

	assert.Equal(t, "db fails", report.Outcomes[1].Name)
	assert.False(t, report.Outcomes[1].Passed)
	assert.Equal(t, int64(7), report.Outcomes[1].DurationMs)
	assert.Equal(t, "Error: boom", report.Outcomes[1].Message.StringValue())
	assert.Equal(t, 1, report.Failures())
}

func TestAccumulatorClampsNegativeDuration(t *testing.T) {
	acc := NewAccumulator("Go", testStart)
	require.NoError(t, acc.RecordPass("x", nil, -5))
	assert.Equal(t, int64(0), acc.Snapshot().Outcomes[0].DurationMs)
}

func TestAccumulatorCloseTwiceIsViolation(t *testing.T) {
	acc := NewAccumulator("Go", testStart)
	require.NoError(t, acc.Close(testStart.Add(time.Second)))
	assert.True(t, acc.Closed())

	err := acc.Close(testStart.Add(time.Second * 2))
	var violation *LifecycleViolation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, StateClosed, violation.State)
}

func TestAccumulatorRejectsOutcomesAfterClose(t *testing.T) {
	acc := NewAccumulator("Go", testStart)
	require.NoError(t, acc.Close(testStart))

	var violation *LifecycleViolation
	assert.True(t, errors.As(acc.RecordPass("late", nil, 1), &violation))
	assert.True(t, errors.As(acc.RecordFail("later", nil, 1, "x"), &violation))
	assert.Empty(t, acc.Snapshot().Outcomes)
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	acc := NewAccumulator("Go", testStart)
	tags := []string{"A"}
	require.NoError(t, acc.RecordPass("B works", tags, 1))
	tags[0] = "changed"

	before := acc.Snapshot()
	before.Outcomes[0].Tags[0] = "mutated"
	before.Outcomes = append(before.Outcomes, TestOutcome{Name: "extra"})

	after := acc.Snapshot()
	require.Len(t, after.Outcomes, 1)
	assert.Equal(t, []string{"A"}, after.Outcomes[0].Tags)
	assert.Nil(t, after.ClosedAt)
	assert.Equal(t, time.Duration(0), after.Duration())

	require.NoError(t, acc.Close(testStart.Add(time.Millisecond*1500)))
	closed := acc.Snapshot()
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, time.Millisecond*1500, closed.Duration())
}

func TestOutcomeJSONOmitsMessageOfPassingTest(t *testing.T) {
	acc := NewAccumulator("Go", testStart)
	require.NoError(t, acc.RecordPass("app works", []string{}, 3))
	require.NoError(t, acc.RecordFail("db fails", []string{"backend"}, 7, "Error: boom"))

	data, err := json.Marshal(acc.Snapshot().Outcomes)
	require.NoError(t, err)

	var outcomes []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &outcomes))
	require.Len(t, outcomes, 2)
	assert.NotContains(t, outcomes[0], "message")
	assert.Equal(t, "app works", outcomes[0]["name"])
	assert.Equal(t, "Error: boom", outcomes[1]["message"])
	assert.Equal(t, float64(7), outcomes[1]["durationMs"])
}
