package loctests

import (
	"github.com/stretchr/testify/assert"

	"github.com/localization-utils/localization-contract-tests/fixtures"
)

// DoBaselineGenerateTests runs generate on the untouched project, which must produce a default
// settings document.
func DoBaselineGenerateTests(t *T) {
	t.Generate()
	t.RequireSettings()
}

// DoIdempotentGenerateTests runs generate twice with no changes in between. The second run must
// leave every fixture file byte-for-byte as the first run left it.
func DoIdempotentGenerateTests(t *T) {
	t.Generate()
	first := t.RequireSnapshot()
	t.Generate()
	second := t.RequireSnapshot()

	assert.NotEmpty(t, first, "generate left no fixture files behind")
	assert.Empty(t, fixtures.SnapshotDiff(first, second), "files changed by a repeated generate")
}
