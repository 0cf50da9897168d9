package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field for an entity attribute that may be absent.
// It distinguishes three JSON states:
//   - key missing:   Set=false (leave the current value alone)
//   - key is null:   Set=true, Null=true (clear the value)
//   - key has value: Set=true, Value holds it
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional carrying v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Clear returns an Optional that clears the target field.
func Clear[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON is only called when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON renders unset and cleared fields as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// applyTo merges the optional into a pointer-valued entity field.
func (o Optional[T]) applyTo(dst **T) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = nil
		return
	}
	v := o.Value
	*dst = &v
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
