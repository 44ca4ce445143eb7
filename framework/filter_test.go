package framework

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFilters(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(id("build")))

	require.NoError(t, f.MustNotMatch.Set("idempotent"))
	assert.True(t, f.AsFilter(id("build")))
	assert.False(t, f.AsFilter(id("generate is idempotent")))

	require.NoError(t, f.MustMatch.Set("^build$"))
	assert.True(t, f.AsFilter(id("build")))
	assert.False(t, f.AsFilter(id("baseline generate")))
}

func TestRegexFilterSelectsAncestors(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("group/child"))
	assert.True(t, f.AsFilter(id("group")))
	assert.True(t, f.AsFilter(id("group", "child")))
	assert.False(t, f.AsFilter(id("other")))
}

func TestRegexFilterSelectsTopLevelStageByName(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^build$"))
	assert.True(t, f.AsFilter(id("build")))
	assert.False(t, f.AsFilter(id("baseline generate")))
	assert.False(t, f.AsFilter(id("generate is idempotent")))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("("))
	assert.False(t, r.IsDefined())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Empty(t, buf.String())

	var f RegexFilters
	require.NoError(t, f.MustNotMatch.Set("build"))
	PrintFilterDescription(&buf, f)
	assert.Contains(t, buf.String(), `skip any matching "build"`)
}

func TestTestIDPlusDoesNotAlias(t *testing.T) {
	parent := TestID{Path: make([]string, 1, 10)}
	parent.Path[0] = "a"
	b := parent.Plus("b")
	c := parent.Plus("c")
	assert.Equal(t, "a/b", b.String())
	assert.Equal(t, "a/c", c.String())
}

func TestPrintResults(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: []TestResult{{TestID: id("a")}, {TestID: id("b"), Skipped: true}}})
	assert.Equal(t, "All tests passed (1 run, 1 skipped)\n", buf.String())

	buf.Reset()
	failure := TestResult{TestID: id("build"), Errors: []error{errors.New("exit code 2")}}
	PrintResults(&buf, Results{Tests: []TestResult{failure}, Failures: []TestResult{failure}})
	assert.Equal(t, "FAILED: 1 of 1 tests (0 skipped)\n  build\n    exit code 2\n", buf.String())
}

func TestReformatErrorDropsTrace(t *testing.T) {
	err := errors.New("\n\tError Trace:\tfile.go:10\n\t            \tother.go:20\n\tError:      \tNot equal\n\tMessages:   \tfirst key\n")
	lines := strings.Split(reformatError(err).Error(), "\n")
	assert.Equal(t, []string{"Error:      \tNot equal", "Messages:   \tfirst key"}, lines)

	plain := errors.New("plain")
	assert.Equal(t, plain, reformatError(plain))
}
