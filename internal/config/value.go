// Package config provides the immutable, hierarchical configuration store
// used by ktstyle, its validation against the built-in baseline, and the
// loader that resolves configuration files for a run.
package config

import (
	"fmt"
	"sort"
	"strconv"
)

// Value is a node of the configuration tree: a Scalar, a Sequence or a
// Mapping. The set is closed; no other type implements Value.
type Value interface {
	isValue()
}

// Scalar holds a string, int64, float64 or bool. The zero Scalar is the empty
// scalar produced by an explicit null and matches no typed accessor.
type Scalar struct {
	raw any
}

// Sequence is an ordered list of values.
type Sequence []Value

// Mapping is a string-keyed map of values.
type Mapping map[string]Value

func (Scalar) isValue()   {}
func (Sequence) isValue() {}
func (Mapping) isValue()  {}

// String returns a string scalar.
func String(s string) Scalar { return Scalar{raw: s} }

// Int returns an integer scalar.
func Int(i int64) Scalar { return Scalar{raw: i} }

// Float returns a floating-point scalar.
func Float(f float64) Scalar { return Scalar{raw: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{raw: b} }

// IsNull reports whether the scalar is the empty scalar.
func (s Scalar) IsNull() bool { return s.raw == nil }

// Raw returns the underlying string, int64, float64, bool, or nil.
func (s Scalar) Raw() any { return s.raw }

// String renders the scalar the way it would appear in a config file.
func (s Scalar) String() string {
	switch v := s.raw.(type) {
	case nil:
		return "null"
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Keys returns the mapping's keys in sorted order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// clone returns a deep copy of v.
func clone(v Value) Value {
	switch t := v.(type) {
	case Mapping:
		return t.clone()
	case Sequence:
		out := make(Sequence, len(t))
		for i, item := range t {
			out[i] = clone(item)
		}
		return out
	default:
		return v
	}
}

func (m Mapping) clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

// plain converts a value back to ordinary Go values for encoders.
func plain(v Value) any {
	switch t := v.(type) {
	case Scalar:
		return t.raw
	case Sequence:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	case Mapping:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plain(item)
		}
		return out
	default:
		return nil
	}
}
