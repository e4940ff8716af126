// Package style holds rules about how declarations are arranged.
package style

import (
	"fmt"

	"github.com/donaldgifford/ktstyle/internal/config"
	"github.com/donaldgifford/ktstyle/internal/lint"
	"github.com/donaldgifford/ktstyle/internal/parser"
	"github.com/donaldgifford/ktstyle/internal/report"
)

// ClassOrderingDefinition registers ClassOrdering under "style".
var ClassOrderingDefinition = lint.Definition{
	RuleSet: "style",
	Name:    "ClassOrdering",
	Description: "Class contents should be in this order: property declarations and initializer blocks; " +
		"secondary constructors; method declarations then companion objects.",
	ActiveByDefault: false,
	New: func(*config.Store) lint.Rule {
		return &ClassOrdering{}
	},
}

type category int

const (
	categoryIgnored category = iota
	categoryProperty
	categoryInitializer
	categorySecondaryConstructor
	categoryMethod
	categoryCompanion
)

// categories maps member node types to ordering categories. Types not listed
// are ignored.
var categories = map[parser.NodeType]category{
	parser.NodeProperty:             categoryProperty,
	parser.NodeInitializer:          categoryInitializer,
	parser.NodeSecondaryConstructor: categorySecondaryConstructor,
	parser.NodeFunction:             categoryMethod,
	parser.NodeCompanionObject:      categoryCompanion,
}

// Properties and initializer blocks share a rank.
var ranks = [...]int{
	categoryProperty:             0,
	categoryInitializer:          0,
	categorySecondaryConstructor: 1,
	categoryMethod:               2,
	categoryCompanion:            3,
}

var descriptors = [...]string{
	categoryProperty:             "property declarations",
	categoryInitializer:          "initializer blocks",
	categorySecondaryConstructor: "secondary constructors",
	categoryMethod:               "method declarations",
	categoryCompanion:            "companion object",
}

func classify(n *parser.Node) category {
	return categories[n.Type]
}

// subject names the offending member in a message.
func subject(c category, n *parser.Node) string {
	switch c {
	case categoryProperty:
		return fmt.Sprintf("property `%s`", n.Name)
	case categoryInitializer:
		return "initializer blocks"
	case categorySecondaryConstructor:
		return "secondary constructor"
	case categoryMethod:
		return fmt.Sprintf("method `%s()`", n.Name)
	default:
		return descriptors[c]
	}
}

// ClassOrdering reports members declared after a member of a later
// category. The expected order is properties and initializer blocks, then
// secondary constructors, then methods, then the companion object. Nested
// classes, objects, object literals and the primary constructor are ignored.
type ClassOrdering struct{}

func (*ClassOrdering) RuleSet() string { return ClassOrderingDefinition.RuleSet }

func (*ClassOrdering) Name() string { return ClassOrderingDefinition.Name }

func (r *ClassOrdering) Visit(decl *parser.Node) []report.Notification {
	return r.Check(decl.Children)
}

// Check runs the ordering state machine over the direct members of one
// declaration. The ceiling is the highest-ranked category seen so far; a
// member ranked below it is reported and leaves the ceiling unchanged.
func (*ClassOrdering) Check(members []*parser.Node) []report.Notification {
	var (
		out     []report.Notification
		ceiling = categoryIgnored
	)
	for _, m := range members {
		c := classify(m)
		if c == categoryIgnored {
			continue
		}
		if ceiling != categoryIgnored && ranks[c] < ranks[ceiling] {
			n := report.New(fmt.Sprintf("%s should be declared before %s.", subject(c, m), descriptors[ceiling]))
			n.Location = report.Location{Line: m.Line, Column: m.Column}
			out = append(out, n)
			continue
		}
		ceiling = c
	}
	return out
}
