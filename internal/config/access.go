package config

import (
	"math"
	"strconv"
	"strings"
)

// Primitive lists the types the typed accessors can produce.
type Primitive interface {
	string | bool | int | int64 | float64 | []string
}

// ValueOrDefault returns the value at key converted to T, or def when the
// key is absent or holds a value of the wrong shape. It never fails.
func ValueOrDefault[T Primitive](s *Store, key string, def T) T {
	if v, ok := Lookup[T](s, key); ok {
		return v
	}
	return def
}

// Lookup returns the value at key converted to T. The boolean is false when
// the key is absent or the value does not match T.
//
// String scalars are parsed according to T, so "20" satisfies an int and a
// comma-separated string satisfies []string.
func Lookup[T Primitive](s *Store, key string) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	v, ok := s.values[key]
	if !ok {
		return zero, false
	}

	var out any
	switch any(zero).(type) {
	case string:
		out, ok = asString(v)
	case bool:
		out, ok = asBool(v)
	case int:
		var i int64
		i, ok = asInt(v)
		if ok && (i > math.MaxInt || i < math.MinInt) {
			ok = false
		}
		out = int(i)
	case int64:
		out, ok = asInt(v)
	case float64:
		out, ok = asFloat(v)
	case []string:
		out, ok = asStrings(v)
	}
	if !ok {
		return zero, false
	}
	return out.(T), true
}

func asString(v Value) (string, bool) {
	s, ok := v.(Scalar)
	if !ok {
		return "", false
	}
	str, ok := s.raw.(string)
	return str, ok
}

func asBool(v Value) (bool, bool) {
	s, ok := v.(Scalar)
	if !ok {
		return false, false
	}
	switch t := s.raw.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	}
	return false, false
}

func asInt(v Value) (int64, bool) {
	s, ok := v.(Scalar)
	if !ok {
		return 0, false
	}
	switch t := s.raw.(type) {
	case int64:
		return t, true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func asFloat(v Value) (float64, bool) {
	s, ok := v.(Scalar)
	if !ok {
		return 0, false
	}
	switch t := s.raw.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func asStrings(v Value) ([]string, bool) {
	switch t := v.(type) {
	case Sequence:
		out := make([]string, 0, len(t))
		for _, item := range t {
			str, ok := asString(item)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	case Scalar:
		str, ok := t.raw.(string)
		if !ok {
			return nil, false
		}
		return splitList(str), true
	}
	return nil, false
}

// splitList splits a comma-separated list, trimming blanks.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
