// internal/domain/optional.go
package domain

import "encoding/json"

// Optional distinguishes a field that was absent from the request body from one
// that was sent as an explicit null, and both from a real value. Partial-update
// endpoints need all three states: absent means "leave alone", null means
// "clear", a value means "replace".
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
