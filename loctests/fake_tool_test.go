package loctests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/localization-utils/localization-contract-tests/servicedef"
)

// The test binary doubles as a fake LocalizationUtils. TestMain hands control to runFakeTool when
// fakeToolEnv is set, which the tests do before running the scenario.
const (
	fakeToolEnv = "LOCTESTS_FAKE_TOOL"
	// fakeToolFailEnv names a command that exits with fakeToolFailCode.
	fakeToolFailEnv = "LOCTESTS_FAKE_TOOL_FAIL"
	// fakeToolNoLocalesEnv makes generate exit successfully without writing localization files.
	fakeToolNoLocalesEnv = "LOCTESTS_FAKE_TOOL_NO_LOCALES"
	// fakeToolUnstableEnv makes generate stamp the settings file with the current time.
	fakeToolUnstableEnv = "LOCTESTS_FAKE_TOOL_UNSTABLE"
)

const (
	fakeToolFailCode  = 3
	fakeToolUsageCode = 64
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func runFakeTool(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: LocalizationUtils <root> <command> [args]")
		return fakeToolUsageCode
	}
	root, command := args[0], args[1]
	if os.Getenv(fakeToolFailEnv) == command {
		fmt.Fprintf(os.Stderr, "%s failed\n", command)
		return fakeToolFailCode
	}

	var err error
	switch command {
	case servicedef.CommandGenerate:
		err = fakeGenerate(root)
	case servicedef.CommandReleaseBuild, servicedef.CommandDebugBuild:
		if len(args) < 3 {
			return fakeToolUsageCode
		}
		err = fakeBuild(root, command, args[2])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		return fakeToolUsageCode
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func fakeGenerate(root string) error {
	settingsPath := filepath.Join(root, servicedef.SettingsFile)
	settings := map[string]interface{}{}
	if err := readFakeJSON(settingsPath, &settings); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		settings = map[string]interface{}{
			"defaultLanguage":            servicedef.BaseLocale,
			servicedef.KeyOtherLanguages: []interface{}{},
		}
	}
	if os.Getenv(fakeToolUnstableEnv) != "" {
		settings["generatedAt"] = time.Now().UnixNano()
	}
	if err := writeFakeJSON(settingsPath, settings, false); err != nil {
		return err
	}
	if os.Getenv(fakeToolNoLocalesEnv) != "" {
		return nil
	}

	dir := filepath.Join(root, servicedef.LocalizationDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	basePath := filepath.Join(dir, servicedef.LocalizationFile(servicedef.BaseLocale))
	base := map[string]interface{}{}
	if err := readFakeJSON(basePath, &base); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := writeFakeJSON(basePath, base, true); err != nil {
		return err
	}

	others, _ := settings[servicedef.KeyOtherLanguages].([]interface{})
	for _, o := range others {
		locale, ok := o.(string)
		if !ok {
			continue
		}
		path := filepath.Join(dir, servicedef.LocalizationFile(locale))
		doc := map[string]interface{}{}
		if err := readFakeJSON(path, &doc); err != nil && !os.IsNotExist(err) {
			return err
		}
		keys := make([]string, 0, len(base))
		for k := range base {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := doc[k]; !ok {
				doc[k] = base[k]
			}
		}
		if err := writeFakeJSON(path, doc, true); err != nil {
			return err
		}
	}
	return nil
}

func fakeBuild(root, command, outputDir string) error {
	out := filepath.Join(root, outputDir)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(out, "build.txt"), []byte(command+"\n"), 0o644)
}

func readFakeJSON(path string, into interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) >= len(utf8BOM) && string(data[:len(utf8BOM)]) == string(utf8BOM) {
		data = data[len(utf8BOM):]
	}
	return json.Unmarshal(data, into)
}

// writeFakeJSON writes indented JSON, with a byte order mark if withBOM is set, the way a
// Windows-built tool might.
func writeFakeJSON(path string, v interface{}, withBOM bool) error {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	if withBOM {
		data = append(append([]byte(nil), utf8BOM...), data...)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
