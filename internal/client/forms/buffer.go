package forms

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Buffer is the mutable draft of one record. It exists only while a form is
// open and is discarded on submit-success or cancel. A buffer is either in
// create mode (no record id) or update mode (bound to an existing record).
type Buffer struct {
	schema   Schema
	values   map[string]any
	recordID string
}

// NewBuffer returns an empty create-mode buffer for the given schema.
func NewBuffer(schema Schema) *Buffer {
	return &Buffer{schema: schema, values: map[string]any{}}
}

// Schema returns the buffer's entity schema.
func (b *Buffer) Schema() Schema { return b.schema }

// UpdateMode reports whether the buffer is bound to an existing record.
func (b *Buffer) UpdateMode() bool { return b.recordID != "" }

// RecordID returns the bound record id, empty in create mode.
func (b *Buffer) RecordID() string { return b.recordID }

// SetField stores one field's raw input. Numeric fields are parsed as
// numbers; input that does not parse becomes 0 so the draft never carries
// NaN or an empty numeric value. Unknown field names are rejected.
func (b *Buffer) SetField(name, raw string) error {
	f, ok := b.schema.Field(name)
	if !ok {
		return &ValidationError{Entity: b.schema.Entity, Field: name, Reason: "unknown field"}
	}

	switch f.Kind {
	case Numeric:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			n = 0
		}
		b.values[name] = n
	default:
		b.values[name] = strings.TrimSpace(raw)
	}
	return nil
}

// Value returns the coerced value of one field and whether it has been set.
func (b *Buffer) Value(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

// LoadForEdit copies every schema field from an existing record's field map
// into the buffer and binds the buffer to the record's id.
func (b *Buffer) LoadForEdit(id string, fields map[string]any) {
	b.recordID = id
	b.values = map[string]any{}
	for _, f := range b.schema.Fields {
		v, ok := fields[f.Name]
		if !ok {
			continue
		}
		b.values[f.Name] = v
	}
}

// Reset clears the buffer back to the default-empty shape and exits
// update mode.
func (b *Buffer) Reset() {
	b.recordID = ""
	b.values = map[string]any{}
}

// CreatePayload materializes the buffer into the body for a create call.
// Every required field must pass validation before any network call; fields
// never set are omitted so the backend applies its own defaults.
func (b *Buffer) CreatePayload() (map[string]any, error) {
	return b.payload()
}

// UpdatePayload materializes the buffer for a patch of the bound record.
// Loading a record and materializing without edits round-trips its values.
func (b *Buffer) UpdatePayload() (map[string]any, error) {
	if !b.UpdateMode() {
		return nil, &ValidationError{Entity: b.schema.Entity, Field: "id", Reason: "buffer is not bound to a record"}
	}
	return b.payload()
}

func (b *Buffer) payload() (map[string]any, error) {
	out := make(map[string]any, len(b.values))
	for _, f := range b.schema.Fields {
		v, set := b.values[f.Name]
		if err := b.validateField(f, v, set); err != nil {
			return nil, err
		}
		if set {
			out[f.Name] = v
		}
	}
	return out, nil
}

// validateField enforces the schema on one field. Numeric presence is an
// explicit numeric-validity test, not truthiness: 0 is a valid value.
func (b *Buffer) validateField(f Field, v any, set bool) error {
	if !set {
		if f.Required {
			return &ValidationError{Entity: b.schema.Entity, Field: f.Name, Reason: "required"}
		}
		return nil
	}

	switch f.Kind {
	case Numeric:
		if _, ok := toNumber(v); !ok {
			return &ValidationError{Entity: b.schema.Entity, Field: f.Name, Reason: "not a number"}
		}
	default:
		s, ok := v.(string)
		if !ok {
			return &ValidationError{Entity: b.schema.Entity, Field: f.Name, Reason: "not a string"}
		}
		if f.Required && s == "" {
			return &ValidationError{Entity: b.schema.Entity, Field: f.Name, Reason: "required"}
		}
		if len(f.Options) > 0 && s != "" && !slices.Contains(f.Options, s) {
			return &ValidationError{
				Entity: b.schema.Entity,
				Field:  f.Name,
				Reason: fmt.Sprintf("must be one of: %s", strings.Join(f.Options, ", ")),
			}
		}
	}
	return nil
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// FieldsOf flattens a record into the field map LoadForEdit expects, using
// the record's JSON encoding so names match the schema. The id field is
// stripped; it is immutable and never part of a payload.
func FieldsOf(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "id")
	return fields, nil
}
