package rules

import (
	"github.com/donaldgifford/ktstyle/internal/rules/complexity"
	"github.com/donaldgifford/ktstyle/internal/rules/style"
)

func init() {
	// Registration order is execution order within a declaration.
	Register(complexity.TooManyFunctionsDefinition)
	Register(style.ClassOrderingDefinition)
}
