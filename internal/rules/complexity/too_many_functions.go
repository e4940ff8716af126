// Package complexity holds rules that flag declarations which have grown
// too large.
package complexity

import (
	"fmt"

	"github.com/donaldgifford/ktstyle/internal/config"
	"github.com/donaldgifford/ktstyle/internal/lint"
	"github.com/donaldgifford/ktstyle/internal/parser"
	"github.com/donaldgifford/ktstyle/internal/report"
)

// DefaultThreshold applies to every declaration kind unless configured.
const DefaultThreshold = 11

// TooManyFunctionsDefinition registers TooManyFunctions under "complexity".
var TooManyFunctionsDefinition = lint.Definition{
	RuleSet:         "complexity",
	Name:            "TooManyFunctions",
	Description:     "Too many functions inside a class, interface, object or enum make it hard to understand.",
	ActiveByDefault: true,
	New: func(cfg *config.Store) lint.Rule {
		return NewTooManyFunctions(cfg)
	},
}

// TooManyFunctions reports class-like declarations whose direct function
// count reaches the configured threshold for their kind.
type TooManyFunctions struct {
	InClasses    int
	InInterfaces int
	InObjects    int
	InEnums      int
}

// NewTooManyFunctions reads thresholds from the rule's sub-configuration.
func NewTooManyFunctions(cfg *config.Store) *TooManyFunctions {
	return &TooManyFunctions{
		InClasses:    config.ValueOrDefault(cfg, "thresholdInClasses", DefaultThreshold),
		InInterfaces: config.ValueOrDefault(cfg, "thresholdInInterfaces", DefaultThreshold),
		InObjects:    config.ValueOrDefault(cfg, "thresholdInObjects", DefaultThreshold),
		InEnums:      config.ValueOrDefault(cfg, "thresholdInEnums", DefaultThreshold),
	}
}

func (*TooManyFunctions) RuleSet() string { return TooManyFunctionsDefinition.RuleSet }

func (*TooManyFunctions) Name() string { return TooManyFunctionsDefinition.Name }

func (r *TooManyFunctions) Visit(decl *parser.Node) []report.Notification {
	var kind, scope string
	var threshold int
	switch decl.Type {
	case parser.NodeClass:
		kind, scope, threshold = "Class", "classes", r.InClasses
	case parser.NodeInterface:
		kind, scope, threshold = "Interface", "interfaces", r.InInterfaces
	case parser.NodeObject:
		kind, scope, threshold = "Object", "objects", r.InObjects
	case parser.NodeEnumClass:
		kind, scope, threshold = "Enum class", "enums", r.InEnums
	default:
		return nil
	}

	count := countFunctions(decl.Children)
	if count < threshold {
		return nil
	}
	n := report.New(fmt.Sprintf(
		"%s '%s' with '%d' functions detected. Defined threshold inside %s is set to '%d'",
		kind, decl.Name, count, scope, threshold))
	n.Location = report.Location{Line: decl.Line, Column: decl.Column}
	return []report.Notification{n}
}

func countFunctions(members []*parser.Node) int {
	count := 0
	for _, m := range members {
		if m.Type == parser.NodeFunction {
			count++
		}
	}
	return count
}
