package models

import (
	"encoding/json"
	"fmt"
)

// Version identifies the schema a task collection was generated against.
//
// Two wire shapes are accepted: a bare string (legacy files written by hand
// or by older tooling) and a structured object
// {"schema": ..., "generator": ..., "source_prd": ...}. A Version decoded
// from a bare string re-encodes as a bare string so round-tripping a file
// never rewrites its shape.
type Version struct {
	Schema    string `json:"schema" validate:"required"`
	Generator string `json:"generator,omitempty"`
	SourcePRD string `json:"source_prd,omitempty"`

	bare bool
}

// BareVersion returns a Version that encodes as a bare JSON string.
func BareVersion(schema string) Version {
	return Version{Schema: schema, bare: true}
}

// IsBare reports whether the version was (or will be) encoded as a bare string.
func (v Version) IsBare() bool {
	return v.bare
}

// MarshalJSON encodes the version in the same shape it was decoded from.
func (v Version) MarshalJSON() ([]byte, error) {
	if v.bare {
		return json.Marshal(v.Schema)
	}
	type wire struct {
		Schema    string `json:"schema"`
		Generator string `json:"generator,omitempty"`
		SourcePRD string `json:"source_prd,omitempty"`
	}
	return json.Marshal(wire{Schema: v.Schema, Generator: v.Generator, SourcePRD: v.SourcePRD})
}

// UnmarshalJSON accepts either a bare string or the structured object form.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Version{Schema: s, bare: true}
		return nil
	}
	type wire struct {
		Schema    string `json:"schema"`
		Generator string `json:"generator,omitempty"`
		SourcePRD string `json:"source_prd,omitempty"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("version must be a string or an object: %w", err)
	}
	*v = Version{Schema: w.Schema, Generator: w.Generator, SourcePRD: w.SourcePRD}
	return nil
}
