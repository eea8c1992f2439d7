package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter(TestID{Path: []string{"anything"}}))

	require.NoError(t, filters.MustMatch.Set("^app/"))
	require.NoError(t, filters.MustNotMatch.Set("Asynchronously"))

	assert.True(t, filters.AsFilter(TestID{Path: []string{"app", "doSomething", "works"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"app", "doSomethingAsynchronously", "works"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"other", "works"}}))
	assert.True(t, filters.AsFilter(TestID{Path: []string{"app", "async helpers", "works"}}))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var list RegexList
	err := list.Set("(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex")
	assert.False(t, list.IsDefined())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Empty(t, buf.String())

	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("a"))
	require.NoError(t, filters.MustMatch.Set("b"))
	PrintFilterDescription(&buf, filters)
	assert.Contains(t, buf.String(), `skip any not matching "a" or "b"`)
	assert.NotContains(t, buf.String(), "skip any matching")
}

func TestSuitePathSkipsRoot(t *testing.T) {
	root := NewRootSuite()
	a := NewSuite("A", root)
	b := NewSuite("B", a)
	test := NewTest("works", b)

	assert.Equal(t, []string{"A", "B"}, b.Path())
	assert.Empty(t, root.Path())
	assert.Equal(t, "A/B/works", test.ID().String())
	assert.Equal(t, "orphan", NewTest("orphan", nil).ID().String())
}
