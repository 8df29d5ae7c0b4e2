package entity

import (
	"bytes"
	"encoding/json"
)

// Optional representa un campo de una actualización parcial:
//   - Set == false: el campo no vino, se deja igual.
//   - Set && Null: vino null explícito, se limpia (solo campos anulables).
//   - Set && !Null: se asigna Value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some construye un Optional con valor.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null construye un Optional con null explícito.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON solo se invoca cuando la clave está presente en el JSON,
// por eso una clave ausente deja Set en false.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Ptr devuelve nil para null y un puntero al valor en otro caso. Solo tiene sentido si Set.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
