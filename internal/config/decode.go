package config

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// decodeYAML reads a single YAML document. An empty document (including one
// holding only comments) decodes to an empty mapping.
func decodeYAML(r io.Reader) (Mapping, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Mapping{}, nil
		}
		return nil, err
	}
	return rootMapping(doc)
}

// decodeTOML reads a TOML document. TOML roots are always tables.
func decodeTOML(r io.Reader) (Mapping, error) {
	var doc map[string]any
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return rootMapping(doc)
}

func rootMapping(doc any) (Mapping, error) {
	switch v := fromAny(doc).(type) {
	case Mapping:
		return v, nil
	case Scalar:
		if v.IsNull() {
			return Mapping{}, nil
		}
	}
	return nil, fmt.Errorf("top-level value must be a mapping, got %T", doc)
}

// fromAny converts decoder output into the closed Value tree.
func fromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Scalar{}
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return unsigned(uint64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return unsigned(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case []any:
		seq := make(Sequence, len(t))
		for i, item := range t {
			seq[i] = fromAny(item)
		}
		return seq
	case map[string]any:
		m := make(Mapping, len(t))
		for k, item := range t {
			m[k] = fromAny(item)
		}
		return m
	case map[any]any:
		m := make(Mapping, len(t))
		for k, item := range t {
			m[fmt.Sprint(k)] = fromAny(item)
		}
		return m
	default:
		// Dates and times have no place in the value model; keep their text.
		return String(fmt.Sprint(t))
	}
}

func unsigned(u uint64) Scalar {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Int(int64(u))
}

// Marshal renders the store's mapping as YAML with sorted keys.
func Marshal(s *Store) ([]byte, error) {
	if s.IsEmpty() {
		return []byte("{}\n"), nil
	}
	out, err := yaml.Marshal(plain(s.values))
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	return out, nil
}
