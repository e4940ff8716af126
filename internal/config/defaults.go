package config

import (
	_ "embed" // Baseline configuration.
	"fmt"
	"sync"
)

//go:embed default-config.yml
var defaultConfigYAML []byte

var defaultStore = sync.OnceValue(func() *Store {
	s, err := Parse(string(defaultConfigYAML))
	if err != nil {
		panic(fmt.Sprintf("config: embedded baseline is invalid: %v", err))
	}
	return s
})

// Default returns the built-in baseline listing every recognized key with
// its default value. The store is parsed once and shared.
func Default() *Store {
	return defaultStore()
}

// DefaultYAML returns the baseline as it is shipped, comments included.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultConfigYAML))
	copy(out, defaultConfigYAML)
	return out
}
