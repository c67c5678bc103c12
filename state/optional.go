// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "encoding/json"

// Optional is a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	Value T    `serialize:"true"`
	Set   bool `serialize:"true"`
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// Ptr returns nil when the value is absent.
func (o Optional[T]) Ptr() *T {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Ptr())
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	var v *T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*o = Optional[T]{}
		return nil
	}
	*o = Some(*v)
	return nil
}
