package lint

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/donaldgifford/ktstyle/internal/config"
	"github.com/donaldgifford/ktstyle/internal/parser"
	"github.com/donaldgifford/ktstyle/internal/report"
)

// Engine runs the active rules of a configuration over parsed files. It
// holds only immutable state after New and is safe for concurrent use.
type Engine struct {
	rules []*activeRule
}

type activeRule struct {
	id       string
	rule     Rule
	level    report.Level
	includes []string
	excludes []string
}

// New builds every definition that cfg leaves active. A rule is active when
// its rule set's "active" (default true) and its own "active" (default
// ActiveByDefault) are both true.
func New(cfg *config.Store, defs []Definition, logger *slog.Logger) *Engine {
	if cfg == nil {
		cfg = config.Empty
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{}
	for _, def := range defs {
		ruleSet := cfg.SubConfig(def.RuleSet)
		if !config.ValueOrDefault(ruleSet, "active", true) {
			continue
		}
		ruleCfg := ruleSet.SubConfig(def.Name)
		if !config.ValueOrDefault(ruleCfg, "active", def.ActiveByDefault) {
			continue
		}

		ar := &activeRule{
			id:       def.ID(),
			rule:     def.New(ruleCfg),
			level:    severity(ruleSet, ruleCfg, def, logger),
			includes: patterns(ruleSet, ruleCfg, "includes", def, logger),
			excludes: patterns(ruleSet, ruleCfg, "excludes", def, logger),
		}
		e.rules = append(e.rules, ar)
		logger.Debug("Rule active", slog.String("rule", ar.id), slog.String("severity", ar.level.String()))
	}
	return e
}

// severity reads "severity" from the rule, then the rule set.
func severity(ruleSet, ruleCfg *config.Store, def Definition, logger *slog.Logger) report.Level {
	name := config.ValueOrDefault(ruleCfg, "severity", config.ValueOrDefault(ruleSet, "severity", ""))
	if name == "" {
		return report.LevelWarning
	}
	level, ok := report.ParseLevel(name)
	if !ok {
		logger.Warn("Unknown severity, using warning",
			slog.String("rule", def.ID()), slog.String("severity", name))
		return report.LevelWarning
	}
	return level
}

// patterns reads a glob list from the rule, falling back to the rule set.
func patterns(ruleSet, ruleCfg *config.Store, key string, def Definition, logger *slog.Logger) []string {
	globs := config.ValueOrDefault(ruleCfg, key, config.ValueOrDefault[[]string](ruleSet, key, nil))
	valid := globs[:0:0]
	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			logger.Warn("Ignoring invalid path pattern",
				slog.String("rule", def.ID()), slog.String(key, g))
			continue
		}
		valid = append(valid, g)
	}
	return valid
}

// appliesTo reports whether the rule runs on path. With includes set, only
// matching paths are analyzed; otherwise paths matching an exclude are
// skipped. An empty path always applies.
func (r *activeRule) appliesTo(path string) bool {
	if path == "" {
		return true
	}
	p := strings.TrimPrefix(filepath.ToSlash(path), "/")
	if len(r.includes) > 0 {
		return matchAny(r.includes, p)
	}
	return !matchAny(r.excludes, p)
}

func matchAny(globs []string, path string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, path); ok {
			return true
		}
	}
	return false
}

// Active returns the ids of the active rules in execution order.
func (e *Engine) Active() []string {
	ids := make([]string, len(e.rules))
	for i, r := range e.rules {
		ids[i] = r.id
	}
	return ids
}

// Run walks file in source order and calls every applicable rule once per
// class-like declaration. Findings come back in traversal order, rules in
// registration order within a declaration.
func (e *Engine) Run(file *parser.File) []report.Notification {
	var applicable []*activeRule
	for _, r := range e.rules {
		if r.appliesTo(file.Path) {
			applicable = append(applicable, r)
		}
	}
	if len(applicable) == 0 {
		return nil
	}

	var out []report.Notification
	parser.Walk(file.Nodes, func(n *parser.Node) bool {
		if !n.IsClassLike() {
			return true
		}
		for _, r := range applicable {
			for _, f := range r.rule.Visit(n) {
				f.Location.Path = file.Path
				f.RuleSet = r.rule.RuleSet()
				f.Rule = r.rule.Name()
				f.Level = r.level
				out = append(out, f)
			}
		}
		return true
	})
	return out
}
