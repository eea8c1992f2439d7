// Package specs contains the demo test suites run by the probedock-demo command.
//
// The suites are deliberately small. One exercises the sampleapp package, synchronously and
// asynchronously. The other describes a fictional distributed application with several
// levels of nested suites, so that the reported names and tags can be checked on the Probe
// Dock side; two of its tests fail on purpose.
package specs
