package loctests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helpers "github.com/launchdarkly/go-test-helpers/v2"

	"github.com/localization-utils/localization-contract-tests/servicedef"
)

// DoBuildTests runs the release or debug build, depending on the configured mode. This is the
// invocation whose exit status becomes the result of the whole run.
func DoBuildTests(t *T) {
	cfg := t.harness.Config()
	result := t.Invoke(servicedef.BuildArgs(cfg.Mode, cfg.OutputDir)...)
	require.Equal(t, 0, result.ExitCode, "%s exited with status %d", result, result.ExitCode)
	assert.True(t, helpers.FilePathExists(cfg.OutputPath()), "build output %s was not created", cfg.OutputPath())
}
