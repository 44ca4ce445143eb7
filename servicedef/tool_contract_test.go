package servicedef

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgs(t *testing.T) {
	assert.Equal(t, []string{".", "release_build", "../Tests/build/bin"}, BuildArgs("Release", "../Tests/build/bin"))
	for _, mode := range []string{"Debug", "release", "", "RELEASE"} {
		assert.Equal(t, []string{".", "debug_build", "../Tests/build/bin"}, BuildArgs(mode, "../Tests/build/bin"), "mode %q", mode)
	}
}

func TestGenerateArgs(t *testing.T) {
	assert.Equal(t, []string{".", "generate"}, GenerateArgs())
}

func TestLocalizationFileNames(t *testing.T) {
	assert.Equal(t, "localization_ru.json", LocalizationFile("ru"))

	locale, ok := LocaleFromFile("localization_en.json")
	assert.True(t, ok)
	assert.Equal(t, "en", locale)

	for _, name := range []string{"localization_.json", "localization_ru.txt", "settings.json", "ru.json"} {
		_, ok := LocaleFromFile(name)
		assert.False(t, ok, name)
	}
}
