package fixtures

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/localization-utils/localization-contract-tests/servicedef"
)

// ErrNotObject is returned when a fixture file holds valid JSON that is not an object.
var ErrNotObject = errors.New("JSON document is not an object")

// fields holds a JSON object as the raw bytes of each member's value. Values are only parsed
// (into ldvalue) when read, so members that are never replaced are written back byte for byte,
// whatever their type or numeric range.
type fields map[string]json.RawMessage

func (f fields) get(key string) ldvalue.Value {
	var v ldvalue.Value
	if raw, ok := f[key]; !ok || json.Unmarshal(raw, &v) != nil {
		return ldvalue.Null()
	}
	return v
}

func (f fields) has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f fields) keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f fields) with(key string, raw json.RawMessage) fields {
	ret := make(fields, len(f)+1)
	for k, v := range f {
		ret[k] = v
	}
	ret[key] = raw
	return ret
}

func (f fields) value() ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for k := range f {
		b.Set(k, f.get(k))
	}
	return b.Build()
}

func (f fields) String() string {
	data, err := Encode(f)
	if err != nil {
		return err.Error()
	}
	return string(bytes.TrimSpace(data))
}

// rawJSON encodes v the way fixture files are written: no HTML escaping, non-ASCII kept literal.
func rawJSON(v interface{}) json.RawMessage {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v) // strings and string slices always encode
	return json.RawMessage(bytes.TrimSpace(buf.Bytes()))
}

// Document is a localization document: a JSON object mapping string keys to localized strings.
//
// Documents are immutable. Keys that the harness does not know about, including ones with
// non-string values, are carried through unchanged when a document is rewritten.
type Document struct {
	fields fields
}

// NewDocument builds a Document from a plain map.
func NewDocument(strings map[string]string) Document {
	f := make(fields, len(strings))
	for k, v := range strings {
		f[k] = rawJSON(v)
	}
	return Document{fields: f}
}

// Get returns the string value for key. The second result is false if the key is missing or its
// value is not a string.
func (d Document) Get(key string) (string, bool) {
	v := d.fields.get(key)
	if v.Type() != ldvalue.StringType {
		return "", false
	}
	return v.StringValue(), true
}

// Has reports whether key is present, whatever its value.
func (d Document) Has(key string) bool {
	return d.fields.has(key)
}

// Keys returns the document's keys in sorted order.
func (d Document) Keys() []string {
	return d.fields.keys()
}

// With returns a copy of the document with key set to value.
func (d Document) With(key, value string) Document {
	return Document{fields: d.fields.with(key, rawJSON(value))}
}

// Value returns the document as a JSON value.
func (d Document) Value() ldvalue.Value {
	return d.fields.value()
}

func (d Document) String() string {
	return d.fields.String()
}

// Settings is the tool's settings document. Only the otherLanguages key is interpreted; every
// other key is preserved as-is.
type Settings struct {
	fields fields
}

// OtherLanguages returns the derived locale codes, in order. Non-string entries are skipped.
func (s Settings) OtherLanguages() []string {
	arr := s.fields.get(servicedef.KeyOtherLanguages)
	ret := make([]string, 0, arr.Count())
	for i := 0; i < arr.Count(); i++ {
		if item := arr.GetByIndex(i); item.Type() == ldvalue.StringType {
			ret = append(ret, item.StringValue())
		}
	}
	return ret
}

// WithOtherLanguages returns a copy of the settings with otherLanguages replaced by locales.
func (s Settings) WithOtherLanguages(locales ...string) Settings {
	list := append(make([]string, 0, len(locales)), locales...)
	return Settings{fields: s.fields.with(servicedef.KeyOtherLanguages, rawJSON(list))}
}

// Value returns the settings as a JSON value.
func (s Settings) Value() ldvalue.Value {
	return s.fields.value()
}

func (s Settings) String() string {
	return s.fields.String()
}
