package probedock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Submitter delivers a finished report to a remote service.
type Submitter interface {
	Submit(ctx context.Context, report RunReport) error
}

// FlushResult describes what happened to a report when it was flushed. Neither error is
// fatal: the process exit code never depends on them.
type FlushResult struct {
	Snapshot   error
	Submission error
	Skipped    bool
}

// Err combines both errors, or returns nil if there were none.
func (r FlushResult) Err() error {
	var result *multierror.Error
	if r.Snapshot != nil {
		result = multierror.Append(result, r.Snapshot)
	}
	if r.Submission != nil {
		result = multierror.Append(result, r.Submission)
	}
	return result.ErrorOrNil()
}

// Flusher writes a local snapshot of a report and submits it, at most once per process.
type Flusher struct {
	snapshotPath string
	submitter    Submitter
	log          zerolog.Logger
	once         sync.Once
}

// NewFlusher creates a Flusher. An empty snapshotPath disables the snapshot, and a nil
// submitter disables submission.
func NewFlusher(snapshotPath string, submitter Submitter, log zerolog.Logger) *Flusher {
	return &Flusher{
		snapshotPath: snapshotPath,
		submitter:    submitter,
		log:          log,
	}
}

// Flush writes the snapshot synchronously, then submits the report on a new goroutine.
// The returned channel receives exactly one FlushResult once the submission has settled.
//
// Only the first call does anything; later calls report ErrAlreadyFlushed.
func (f *Flusher) Flush(ctx context.Context, report RunReport) <-chan FlushResult {
	ch := make(chan FlushResult, 1)

	first := false
	f.once.Do(func() { first = true })
	if !first {
		ch <- FlushResult{Submission: ErrAlreadyFlushed}
		close(ch)
		return ch
	}

	var result FlushResult
	if f.snapshotPath != "" {
		if err := WriteSnapshot(f.snapshotPath, report); err != nil {
			result.Snapshot = err
			f.log.Error().Err(err).Msg("Could not save a local copy of the test run")
		} else {
			f.log.Info().Str("path", f.snapshotPath).Msg("Saved a local copy of the test run")
		}
	}

	if f.submitter == nil {
		result.Skipped = true
		f.log.Info().Msg("Publishing is disabled, test results were not sent to the Probe Dock server")
		ch <- result
		close(ch)
		return ch
	}

	go func() {
		defer close(ch)
		started := time.Now()
		if err := f.submitter.Submit(ctx, report); err != nil {
			result.Submission = err
			event := f.log.Error().Err(err)
			var se *SubmissionError
			if errors.As(err, &se) && se.StatusCode != 0 {
				event = event.Int("status", se.StatusCode)
			}
			event.Msg("There was an error while sending the test results to the Probe Dock server")
		} else {
			f.log.Info().
				Int("results", len(report.Outcomes)).
				Dur("elapsed", time.Since(started)).
				Msg("Test results successfully sent to the Probe Dock server")
		}
		ch <- result
	}()
	return ch
}
