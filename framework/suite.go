package framework

import "time"

// Suite is a named group of tests and nested suites.
//
// Every suite except the root has a parent. The root suite has no title and is never
// reported by name.
type Suite struct {
	Title  string
	parent *Suite
	root   bool
}

// NewRootSuite returns the unnamed suite at the top of a hierarchy.
func NewRootSuite() *Suite {
	return &Suite{root: true}
}

// NewSuite returns a suite nested inside parent.
func NewSuite(title string, parent *Suite) *Suite {
	return &Suite{Title: title, parent: parent}
}

// Parent returns the enclosing suite, or nil for the root.
func (s *Suite) Parent() *Suite {
	return s.parent
}

// IsRoot is true for the synthetic top-level suite.
func (s *Suite) IsRoot() bool {
	return s.root
}

// Path returns the titles from the outermost named suite down to this one.
func (s *Suite) Path() []string {
	var path []string
	for level := s; level != nil && !level.root; level = level.parent {
		path = append([]string{level.Title}, path...)
	}
	return path
}

// TestState describes how a test ended.
type TestState string

const (
	StatePassed  TestState = "passed"
	StateFailed  TestState = "failed"
	StatePending TestState = "pending"
)

// Test is a single executed test case.
type Test struct {
	Title    string
	Duration time.Duration
	State    TestState
	parent   *Suite
}

// NewTest returns a test belonging to parent. A nil parent is allowed, but such a test has
// no place in any hierarchy.
func NewTest(title string, parent *Suite) *Test {
	return &Test{Title: title, parent: parent}
}

// Parent returns the suite the test was declared in.
func (t *Test) Parent() *Suite {
	return t.parent
}

// ID returns the test's position in the hierarchy, used for filtering and display.
func (t *Test) ID() TestID {
	var path []string
	if t.parent != nil {
		path = t.parent.Path()
	}
	return TestID{Path: append(path, t.Title)}
}
