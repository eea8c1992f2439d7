// Package framework contains a small in-process test runner that produces a stream of
// lifecycle events.
//
// The general model is:
//
// 1. Tests are grouped into suites with Context.Describe, which can be nested to any depth.
// The top level Context belongs to an unnamed root suite.
//
// 2. Context.It runs a single test immediately, so tests complete in declaration order.
// The test body receives a *T, which is similar to Go's *testing.T and can be passed to the
// assert and require packages.
//
// 3. Every step of the run is reported to a Listener as an Event: a suite starting, a test
// starting, a test passing, failing, or being skipped, a suite ending, and the end of the
// whole run with its failure count.
//
// Reporting those events somewhere useful is left to the Listener implementations.
package framework
