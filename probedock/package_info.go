// Package probedock reports the results of a framework test run to a Probe Dock server.
//
// An Adapter is registered as a framework.Listener. It extracts a name and tags for every
// test that passes or fails (see Extract) and records them in an Accumulator. When the
// process is about to exit, Adapter.Shutdown closes the report and gives it to a Flusher,
// which saves a local JSON copy and submits the report exactly once through a Client.
//
// Reporting problems are logged and returned but never change the process exit code,
// which is always the number of failed tests.
package probedock
