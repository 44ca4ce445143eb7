package loctests

import (
	"context"
	"os"

	"github.com/stretchr/testify/require"

	"github.com/localization-utils/localization-contract-tests/fixtures"
	"github.com/localization-utils/localization-contract-tests/framework"
	"github.com/localization-utils/localization-contract-tests/process"
	"github.com/localization-utils/localization-contract-tests/servicedef"
)

// T represents one stage of the scenario.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging that are convenient for
// our use case. Those features are provided by our lower-level framework package.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T. The helpers below that run the tool or read fixtures fail the stage immediately if
// something unexpected happens, to reduce the amount of boilerplate logic in stages.
type T struct {
	context  *framework.Context
	harness  *framework.TestHarness
	ctx      context.Context
	fixtures *fixtures.Store
}

func newTestScope(ctx context.Context, c *framework.Context, h *framework.TestHarness) *T {
	return &T{
		context:  c,
		harness:  h,
		ctx:      ctx,
		fixtures: h.Fixtures(c.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Fixtures returns the store for the project directory.
func (t *T) Fixtures() *fixtures.Store {
	return t.fixtures
}

// Invoke runs the tool once. The stage fails immediately if the tool could not be run at all; a
// non-zero exit status is returned for the caller to check.
func (t *T) Invoke(args ...string) process.Result {
	result, err := t.harness.Invoke(t.ctx, t.context.DebugLogger(), args...)
	require.NoError(t, err, "could not run the tool")
	return result
}

// RequireSuccess runs the tool and fails the stage immediately if it exits with a non-zero status.
func (t *T) RequireSuccess(args ...string) process.Result {
	result := t.Invoke(args...)
	require.Equal(t, 0, result.ExitCode, "%s exited with status %d", result, result.ExitCode)
	return result
}

// Generate runs the tool's generate command and requires it to succeed.
func (t *T) Generate() process.Result {
	return t.RequireSuccess(servicedef.GenerateArgs()...)
}

// RequireSettings loads the settings document, failing the stage if it is missing or malformed.
func (t *T) RequireSettings() fixtures.Settings {
	require.True(t, t.fixtures.SettingsExists(), "settings file %s was not created", t.fixtures.SettingsPath())
	settings, err := t.fixtures.LoadSettings()
	require.NoError(t, err)
	t.Debug("Settings: %s", settings)
	return settings
}

// RequireLocale loads a localization document, failing the stage if it is missing or malformed.
func (t *T) RequireLocale(locale string) fixtures.Document {
	require.True(t, t.fixtures.LocaleExists(locale), "localization file %s was not created", t.fixtures.LocalePath(locale))
	doc, err := t.fixtures.LoadLocale(locale)
	require.NoError(t, err)
	t.Debug("Locale %s: %s", locale, doc)
	return doc
}

// RequireLocaleFile returns the raw content of a localization document.
func (t *T) RequireLocaleFile(locale string) []byte {
	data, err := os.ReadFile(t.fixtures.LocalePath(locale))
	require.NoError(t, err)
	return data
}

// RequireSnapshot returns the raw content of every fixture file.
func (t *T) RequireSnapshot() map[string][]byte {
	snap, err := t.fixtures.Snapshot()
	require.NoError(t, err)
	return snap
}
