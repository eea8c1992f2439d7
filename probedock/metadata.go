package probedock

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/probedock/probedock-demo-go/framework"
)

// Metadata is what Probe Dock needs to identify a test.
type Metadata struct {
	Name string
	Tags []string
}

// Extract derives the name and tags of a completed test from its suite hierarchy.
//
// The name is the title of the enclosing suite followed by the test's own title. Every
// named suite above that one becomes a tag, outermost first. A test declared directly in
// the root suite has no enclosing title, so its name is just its own title.
func Extract(test *framework.Test) (Metadata, error) {
	parent := test.Parent()
	if parent == nil {
		return Metadata{}, fmt.Errorf("test %q has no enclosing suite: %w", test.Title, ErrMalformedHierarchy)
	}
	if parent.IsRoot() {
		return Metadata{Name: test.Title, Tags: []string{}}, nil
	}

	tags := []string{}
	level := parent.Parent()
	for ; level != nil && !level.IsRoot(); level = level.Parent() {
		tags = append([]string{TagFromTitle(level.Title)}, tags...)
	}
	if level == nil {
		return Metadata{}, fmt.Errorf("suites above test %q do not lead to a root suite: %w", test.Title, ErrMalformedHierarchy)
	}

	return Metadata{Name: parent.Title + " " + test.Title, Tags: tags}, nil
}

// TagFromTitle turns a suite title into a tag. Tags cannot contain spaces, so every run of
// whitespace becomes a single hyphen, including runs at either end.
func TagFromTitle(title string) string {
	var b strings.Builder
	inRun := false
	for _, r := range title {
		if isTagSpace(r) {
			if !inRun {
				b.WriteByte('-')
			}
			inRun = true
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// isTagSpace covers Unicode white space plus the byte order mark.
func isTagSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
