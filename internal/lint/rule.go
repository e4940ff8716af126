// Package lint provides the rule interface and the engine that runs rules
// over every class-like declaration of a parsed file.
package lint

import (
	"github.com/donaldgifford/ktstyle/internal/config"
	"github.com/donaldgifford/ktstyle/internal/parser"
	"github.com/donaldgifford/ktstyle/internal/report"
)

// Rule inspects class-like declarations. A Rule is built once per run and
// may be called concurrently for different files, so it must not keep state
// between Visit calls.
type Rule interface {
	// RuleSet returns the config section the rule belongs to (e.g., "style").
	RuleSet() string

	// Name returns the config key for this rule (e.g., "ClassOrdering").
	Name() string

	// Visit receives one class-like declaration and returns its findings in
	// source order. The engine fills in path, rule and level.
	Visit(decl *parser.Node) []report.Notification
}

// Factory builds a rule from its own sub-configuration (for example the
// store at "style > ClassOrdering"). Missing keys mean defaults.
type Factory func(cfg *config.Store) Rule

// Definition describes a registrable rule.
type Definition struct {
	RuleSet         string
	Name            string
	Description     string
	ActiveByDefault bool
	New             Factory
}

// ID returns "ruleSet > Name".
func (d Definition) ID() string {
	return d.RuleSet + config.ScopeSeparator + d.Name
}
