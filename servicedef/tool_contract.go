// Package servicedef describes the command-line and file contract of the LocalizationUtils tool,
// as far as the test harness depends on it.
package servicedef

import "strings"

// Commands accepted by the tool, as in "<tool> <root> <command> [args...]".
const (
	CommandGenerate     = "generate"
	CommandReleaseBuild = "release_build"
	CommandDebugBuild   = "debug_build"
)

// ProjectRoot is the root argument passed to every command. The tool runs inside the working
// directory, so the root is always that directory.
const ProjectRoot = "."

// ModeRelease is the build mode that selects CommandReleaseBuild. Any other mode selects
// CommandDebugBuild.
const ModeRelease = "Release"

const (
	SettingsFile       = "localization_utils_settings.json"
	LocalizationDir    = "localization"
	localizationPrefix = "localization_"
	localizationSuffix = ".json"

	// KeyOtherLanguages is the settings key listing the derived locales.
	KeyOtherLanguages = "otherLanguages"
)

const (
	BaseLocale   = "en"
	TargetLocale = "ru"
)

// LocalizationFile returns the file name, relative to LocalizationDir, of a locale's document.
func LocalizationFile(locale string) string {
	return localizationPrefix + locale + localizationSuffix
}

// LocaleFromFile is the inverse of LocalizationFile. It returns false for any other file name.
func LocaleFromFile(name string) (string, bool) {
	if !strings.HasPrefix(name, localizationPrefix) || !strings.HasSuffix(name, localizationSuffix) {
		return "", false
	}
	locale := strings.TrimSuffix(strings.TrimPrefix(name, localizationPrefix), localizationSuffix)
	return locale, locale != ""
}

// GenerateArgs returns the arguments for a generate invocation.
func GenerateArgs() []string {
	return []string{ProjectRoot, CommandGenerate}
}

// BuildCommand returns the build command for a build mode.
func BuildCommand(mode string) string {
	if mode == ModeRelease {
		return CommandReleaseBuild
	}
	return CommandDebugBuild
}

// BuildArgs returns the arguments for a build invocation writing to outputDir.
func BuildArgs(mode, outputDir string) []string {
	return []string{ProjectRoot, BuildCommand(mode), outputDir}
}
