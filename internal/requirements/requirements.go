// Package requirements reads the resource description that drives prompt
// generation: a resource name plus a set of capability flags.
package requirements

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for the ways a requirements document can be unusable.
// Callers match them with errors.Is.
var (
	ErrInputNotFound = errors.New("requirements file not readable")
	ErrInputParse    = errors.New("requirements file is not valid")
	ErrMissingName   = errors.New("requirements file has no name")
)

// Record describes one resource. Name may be empty; only an absent or null
// name is rejected. Flags are true only when the source document held the
// literal JSON value true for them.
type Record struct {
	Name                         string `json:"name"`
	HasValidation                bool   `json:"hasValidation"`
	HasDomainModel               bool   `json:"hasDomainModel"`
	HasEvents                    bool   `json:"hasEvents"`
	HasController                bool   `json:"hasController"`
	HasConverter                 bool   `json:"hasConverter"`
	HasResource                  bool   `json:"hasResource"`
	HasQueryLang                 bool   `json:"hasQueryLang"`
	HasTests                     bool   `json:"hasTests"`
	HasAutofacModuleRegistration bool   `json:"hasAutofacModuleRegistration"`
}

// LowerName returns the resource name lower-cased.
func (r Record) LowerName() string {
	return strings.ToLower(r.Name)
}

// flagFields maps each JSON flag key to the field it sets. Keys match
// case-sensitively, unlike encoding/json struct decoding.
var flagFields = map[string]func(*Record) *bool{
	"hasValidation":                func(r *Record) *bool { return &r.HasValidation },
	"hasDomainModel":               func(r *Record) *bool { return &r.HasDomainModel },
	"hasEvents":                    func(r *Record) *bool { return &r.HasEvents },
	"hasController":                func(r *Record) *bool { return &r.HasController },
	"hasConverter":                 func(r *Record) *bool { return &r.HasConverter },
	"hasResource":                  func(r *Record) *bool { return &r.HasResource },
	"hasQueryLang":                 func(r *Record) *bool { return &r.HasQueryLang },
	"hasTests":                     func(r *Record) *bool { return &r.HasTests },
	"hasAutofacModuleRegistration": func(r *Record) *bool { return &r.HasAutofacModuleRegistration },
}

// Load reads and parses the requirements file at path.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}

	rec, err := Parse(data)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Parse decodes a requirements document. The document must be UTF-8
// encoded JSON: an object with a string "name". Unknown keys are ignored.
// A flag counts as enabled only for the literal value true; strings,
// numbers, null and other values leave it disabled.
func Parse(data []byte) (Record, error) {
	// encoding/json would silently turn bad bytes into U+FFFD.
	if !utf8.Valid(data) {
		return Record{}, fmt.Errorf("%w: invalid UTF-8", ErrInputParse)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInputParse, err)
	}
	if raw == nil {
		return Record{}, fmt.Errorf("%w: top-level value must be an object", ErrInputParse)
	}

	var rec Record

	name, ok := raw["name"]
	if !ok || isNull(name) {
		return Record{}, ErrMissingName
	}
	if err := json.Unmarshal(name, &rec.Name); err != nil {
		return Record{}, fmt.Errorf("%w: name must be a string", ErrInputParse)
	}

	for key, field := range flagFields {
		if v, ok := raw[key]; ok {
			*field(&rec) = bytes.Equal(bytes.TrimSpace(v), []byte("true"))
		}
	}

	return rec, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
