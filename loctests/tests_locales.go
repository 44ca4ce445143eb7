package loctests

import (
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localization-utils/localization-contract-tests/fixtures"
	"github.com/localization-utils/localization-contract-tests/servicedef"
)

// Strings written to the base locale; the tool must propagate these keys to every other locale.
var baseLocaleStrings = map[string]string{
	"first":  "First",
	"second": "Second",
}

// Translations written to the target locale. They are deliberately non-Latin.
var targetLocaleStrings = map[string]string{
	"first":  "Первый",
	"second": "Второй",
}

// DoEnableTargetLocaleTests adds the target locale to the settings. The tool must then create a
// template localization document for it.
func DoEnableTargetLocaleTests(t *T) {
	settings := t.RequireSettings()
	require.NoError(t, t.Fixtures().SaveSettings(settings.WithOtherLanguages(servicedef.TargetLocale)))
	assert.Equal(t, []string{servicedef.TargetLocale}, t.RequireSettings().OtherLanguages())

	t.Generate()

	assert.Contains(t, t.RequireSettings().OtherLanguages(), servicedef.TargetLocale,
		"generate dropped the target locale from the settings")
	t.RequireLocale(servicedef.TargetLocale)
}

// DoSeedBaseLocaleTests writes the base locale's strings. The tool must add the same keys to the
// target locale's template.
func DoSeedBaseLocaleTests(t *T) {
	require.NoError(t, t.Fixtures().WriteBaseLocale(fixtures.NewDocument(baseLocaleStrings)))

	t.Generate()

	base := t.RequireLocale(servicedef.BaseLocale)
	target := t.RequireLocale(servicedef.TargetLocale)
	for key, value := range baseLocaleStrings {
		actual, _ := base.Get(key)
		assert.Equal(t, value, actual, "base locale key %q", key)
		assert.True(t, target.Has(key), "key %q was not propagated to locale %q", key, servicedef.TargetLocale)
	}
}

// DoTranslateTargetLocaleTests replaces the target locale's template values with translations.
// The file the harness writes must hold the characters literally, and the tool must keep them
// through another generate.
func DoTranslateTargetLocaleTests(t *T) {
	doc := t.RequireLocale(servicedef.TargetLocale)
	for key, value := range targetLocaleStrings {
		doc = doc.With(key, value)
	}
	require.NoError(t, t.Fixtures().SaveLocale(servicedef.TargetLocale, doc))

	raw := string(t.RequireLocaleFile(servicedef.TargetLocale))
	assert.False(t, strings.Contains(raw, `\u`), "translated file contains escape sequences: %s", raw)
	for _, value := range targetLocaleStrings {
		assert.Contains(t, raw, value)
	}

	t.Generate()

	translated := t.RequireLocale(servicedef.TargetLocale)
	for key, value := range targetLocaleStrings {
		actual, ok := translated.Get(key)
		assert.True(t, ok, "key %q missing after generate", key)
		assert.Equal(t, value, actual, "key %q after generate", key)
	}
}
