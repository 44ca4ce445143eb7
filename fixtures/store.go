// Package fixtures reads and writes the JSON files that the harness and the LocalizationUtils tool
// exchange inside the working directory: the settings document and one localization document per
// locale.
//
// The working directory is the only communication channel between the harness and the tool, so
// the encoding rules matter. Files are written as UTF-8 with non-ASCII characters kept literal
// (never \uXXXX escapes), keys sorted, and a trailing newline, so that identical content always
// produces identical bytes. Members the harness does not replace keep their original encoding,
// so numbers outside the float64 range survive a rewrite. Files written by the tool may start
// with a UTF-8 byte order mark; that is accepted on read.
package fixtures

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	helpers "github.com/launchdarkly/go-test-helpers/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/localization-utils/localization-contract-tests/logging"
	"github.com/localization-utils/localization-contract-tests/servicedef"
)

const fileMode = 0o644

// Store gives access to the fixture files under one working directory.
type Store struct {
	Dir    string
	Logger logging.Logger
}

// NewStore returns a Store for dir.
func NewStore(dir string, logger logging.Logger) *Store {
	return &Store{Dir: dir, Logger: logging.OrNull(logger)}
}

// SettingsPath returns the path of the settings document.
func (s *Store) SettingsPath() string {
	return filepath.Join(s.Dir, servicedef.SettingsFile)
}

// LocalePath returns the path of the localization document for a locale.
func (s *Store) LocalePath(locale string) string {
	return filepath.Join(s.Dir, servicedef.LocalizationDir, servicedef.LocalizationFile(locale))
}

// SettingsExists reports whether the settings document has been created.
func (s *Store) SettingsExists() bool {
	return helpers.FilePathExists(s.SettingsPath())
}

// LocaleExists reports whether a locale's localization document has been created.
func (s *Store) LocaleExists(locale string) bool {
	return helpers.FilePathExists(s.LocalePath(locale))
}

// LoadSettings reads the settings document. It fails if the file is missing, is not valid JSON,
// or is not a JSON object.
func (s *Store) LoadSettings() (Settings, error) {
	f, err := readObject(s.SettingsPath())
	if err != nil {
		return Settings{}, err
	}
	return Settings{fields: f}, nil
}

// SaveSettings overwrites the settings document in place.
func (s *Store) SaveSettings(settings Settings) error {
	return s.write(s.SettingsPath(), settings.fields)
}

// WriteBaseLocale overwrites the base locale's document with doc.
func (s *Store) WriteBaseLocale(doc Document) error {
	return s.SaveLocale(servicedef.BaseLocale, doc)
}

// LoadLocale reads a locale's localization document.
func (s *Store) LoadLocale(locale string) (Document, error) {
	f, err := readObject(s.LocalePath(locale))
	if err != nil {
		return Document{}, err
	}
	return Document{fields: f}, nil
}

// SaveLocale overwrites a locale's localization document, creating the localization directory if
// necessary.
func (s *Store) SaveLocale(locale string, doc Document) error {
	path := s.LocalePath(locale)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return s.write(path, doc.fields)
}

// Snapshot returns the raw bytes of the settings document and of every localization document,
// keyed by slash-separated path relative to the working directory. Missing files are omitted.
func (s *Store) Snapshot() (map[string][]byte, error) {
	ret := make(map[string][]byte)
	if data, err := os.ReadFile(s.SettingsPath()); err == nil {
		ret[servicedef.SettingsFile] = data
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	dir := filepath.Join(s.Dir, servicedef.LocalizationDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ret, nil
		}
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := servicedef.LocaleFromFile(e.Name()); !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		ret[servicedef.LocalizationDir+"/"+e.Name()] = data
	}
	return ret, nil
}

// SnapshotDiff returns the sorted paths whose content differs between two snapshots, including
// paths present in only one of them.
func SnapshotDiff(before, after map[string][]byte) []string {
	var diff []string
	for path, data := range before {
		if other, ok := after[path]; !ok || !bytes.Equal(data, other) {
			diff = append(diff, path)
		}
	}
	for path := range after {
		if _, ok := before[path]; !ok {
			diff = append(diff, path)
		}
	}
	sort.Strings(diff)
	return diff
}

func (s *Store) write(path string, f fields) error {
	data, err := Encode(f)
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return err
	}
	logging.OrNull(s.Logger).Printf("Wrote %s: %s", path, bytes.TrimSpace(data))
	return nil
}

// Encode serializes a JSON object, given as the raw bytes of each member, the way the harness
// writes fixture files. Member values are copied through unchanged apart from insignificant
// whitespace.
func Encode(members map[string]json.RawMessage) ([]byte, error) {
	if len(members) == 0 {
		return []byte("{}\n"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(members); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses fixture file content holding a JSON object, skipping a leading UTF-8 byte order
// mark. It returns ErrNotObject for valid JSON of any other type.
func Decode(data []byte) (map[string]json.RawMessage, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := json.Unmarshal(decoded, &raw); err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	members := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func readObject(path string) (fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	members, err := Decode(data)
	switch {
	case errors.Is(err, ErrNotObject):
		return nil, fmt.Errorf("%s: %w", path, err)
	case err != nil:
		return nil, fmt.Errorf("malformed JSON in %s: %w", path, err)
	}
	return members, nil
}
