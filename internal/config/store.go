package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ScopeSeparator joins keys in a human-readable scope path.
const ScopeSeparator = " > "

// Store is an immutable view of a configuration mapping. Descent with
// SubConfig returns new stores; nothing mutates an existing one.
type Store struct {
	values Mapping
	path   []string
}

// Empty is the store used wherever no configuration is present.
var Empty = &Store{values: Mapping{}}

// newStore wraps m without copying; callers hand over ownership.
func newStore(m Mapping, path []string) *Store {
	if m == nil {
		m = Mapping{}
	}
	return &Store{values: m, path: path}
}

// FromMapping builds a store over a copy of m.
func FromMapping(m Mapping) *Store {
	return newStore(m.clone(), nil)
}

// Parse builds a store from YAML text. Blank documents yield an empty store.
func Parse(text string) (*Store, error) {
	return Load(strings.NewReader(text))
}

// Load builds a store from a YAML stream. The stream is consumed but not
// closed; LoadFile owns the handles it opens.
func Load(r io.Reader) (*Store, error) {
	m, err := decodeYAML(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return newStore(m, nil), nil
}

// LoadFile checks that path exists, is a regular file and is readable, then
// decodes it. Files with a .toml extension are read as TOML, everything
// else as YAML.
func LoadFile(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Reason: "does not exist", Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &NotFoundError{Path: path, Reason: "must be a file"}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Reason: "must be readable", Err: err}
	}
	defer f.Close()

	decode := decodeYAML
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		decode = decodeTOML
	}

	m, err := decode(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return newStore(m, nil), nil
}

// SubConfig returns the store rooted at key. A missing key, or one whose
// value is not a mapping, yields an empty store carrying the extended path.
func (s *Store) SubConfig(key string) *Store {
	path := make([]string, len(s.path), len(s.path)+1)
	copy(path, s.path)
	path = append(path, key)

	m, ok := s.values[key].(Mapping)
	if !ok {
		return &Store{values: Mapping{}, path: path}
	}
	return &Store{values: m, path: path}
}

// Get returns the raw value stored at key.
func (s *Store) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the store's top-level keys in sorted order.
func (s *Store) Keys() []string {
	return s.values.Keys()
}

// Values returns a deep copy of the underlying mapping.
func (s *Store) Values() Mapping {
	return s.values.clone()
}

// IsEmpty reports whether the store holds no keys.
func (s *Store) IsEmpty() bool {
	return len(s.values) == 0
}

// ScopePath returns the breadcrumb of keys used to reach this store, e.g.
// "style > ClassOrdering". The root store has an empty path.
func (s *Store) ScopePath() string {
	return strings.Join(s.path, ScopeSeparator)
}

// String implements fmt.Stringer for debugging output.
func (s *Store) String() string {
	if len(s.path) == 0 {
		return fmt.Sprintf("Store(%d keys)", len(s.values))
	}
	return fmt.Sprintf("Store(%s, %d keys)", s.ScopePath(), len(s.values))
}
