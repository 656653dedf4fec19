package store

import (
	"bytes"
	"encoding/json"
)

// Field campo de un parche de filtros: Set indica que la clave vino en el parche;
// Value nil con Set verdadero limpia el filtro.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Set crea un campo con valor.
func Set[T any](v T) Field[T] { return Field[T]{Set: true, Value: &v} }

// Clear crea un campo que limpia el filtro.
func Clear[T any]() Field[T] { return Field[T]{Set: true} }

// Apply escribe el valor en dst solo si el campo vino en el parche.
func (f Field[T]) Apply(dst **T) {
	if f.Set {
		*dst = f.Value
	}
}

// UnmarshalJSON distingue la clave ausente (no se llama) de null (limpia).
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// MarshalJSON serializa el valor (null si está vacío).
func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}
