// Package rules manages registration of lint rules.
package rules

import (
	"fmt"
	"sync"

	"github.com/donaldgifford/ktstyle/internal/lint"
)

var (
	mu          sync.RWMutex
	definitions []lint.Definition
)

// Register adds a rule definition to the registry. Rules run in the order
// they are registered. Registering the same rule id twice panics.
func Register(def lint.Definition) {
	mu.Lock()
	defer mu.Unlock()

	for _, d := range definitions {
		if d.ID() == def.ID() {
			panic(fmt.Sprintf("rules: %s registered twice", def.ID()))
		}
	}
	definitions = append(definitions, def)
}

// Definitions returns all registered rule definitions in execution order.
func Definitions() []lint.Definition {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]lint.Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a definition by rule set and name.
func Lookup(ruleSet, name string) (lint.Definition, bool) {
	mu.RLock()
	defer mu.RUnlock()

	for _, d := range definitions {
		if d.RuleSet == ruleSet && d.Name == name {
			return d, true
		}
	}
	return lint.Definition{}, false
}
