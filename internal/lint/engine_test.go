package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ktstyle/internal/config"
	"github.com/donaldgifford/ktstyle/internal/parser"
	"github.com/donaldgifford/ktstyle/internal/report"
)

// nameRule reports every class-like declaration by name.
type nameRule struct {
	set, name string
}

func (r *nameRule) RuleSet() string { return r.set }
func (r *nameRule) Name() string    { return r.name }

func (r *nameRule) Visit(decl *parser.Node) []report.Notification {
	n := report.New(r.name + ":" + decl.Name)
	n.Location = report.Location{Line: decl.Line, Column: decl.Column}
	return []report.Notification{n}
}

func definition(set, name string, active bool) Definition {
	return Definition{
		RuleSet:         set,
		Name:            name,
		ActiveByDefault: active,
		New: func(*config.Store) Rule {
			return &nameRule{set: set, name: name}
		},
	}
}

func mustConfig(t *testing.T, text string) *config.Store {
	t.Helper()
	cfg, err := config.Parse(text)
	require.NoError(t, err)
	return cfg
}

func file(path string, nodes ...*parser.Node) *parser.File {
	return &parser.File{Path: path, Nodes: nodes}
}

func TestNewActivation(t *testing.T) {
	defs := []Definition{
		definition("style", "On", true),
		definition("style", "Off", false),
		definition("complexity", "Big", true),
	}

	tests := []struct {
		name string
		cfg  string
		want []string
	}{
		{
			name: "defaults",
			cfg:  "",
			want: []string{"style > On", "complexity > Big"},
		},
		{
			name: "rule enabled",
			cfg:  "style:\n  Off:\n    active: true\n",
			want: []string{"style > On", "style > Off", "complexity > Big"},
		},
		{
			name: "rule disabled",
			cfg:  "style:\n  On:\n    active: false\n",
			want: []string{"complexity > Big"},
		},
		{
			name: "rule set disabled",
			cfg:  "style:\n  active: false\n  Off:\n    active: true\n",
			want: []string{"complexity > Big"},
		},
		{
			name: "string boolean",
			cfg:  "complexity:\n  Big:\n    active: 'false'\n",
			want: []string{"style > On"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(mustConfig(t, tt.cfg), defs, nil)
			assert.Equal(t, tt.want, e.Active())
		})
	}
}

func TestNewNilConfig(t *testing.T) {
	e := New(nil, []Definition{definition("style", "On", true)}, nil)
	assert.Equal(t, []string{"style > On"}, e.Active())
}

func TestFactoryReceivesRuleConfig(t *testing.T) {
	var got *config.Store
	def := Definition{
		RuleSet:         "style",
		Name:            "Configured",
		ActiveByDefault: true,
		New: func(cfg *config.Store) Rule {
			got = cfg
			return &nameRule{set: "style", name: "Configured"}
		},
	}

	New(mustConfig(t, "style:\n  Configured:\n    limit: 3\n"), []Definition{def}, nil)
	require.NotNil(t, got)
	assert.Equal(t, "style > Configured", got.ScopePath())
	assert.Equal(t, 3, config.ValueOrDefault(got, "limit", 0))
}

func TestRunTraversalOrder(t *testing.T) {
	outer := &parser.Node{
		Type: parser.NodeClass, Name: "Outer", Line: 1, Column: 1,
		Children: []*parser.Node{
			{Type: parser.NodeProperty, Name: "p", Line: 2, Column: 5},
			{
				Type: parser.NodeFunction, Name: "f", Line: 3, Column: 5,
				Children: []*parser.Node{
					{Type: parser.NodeObjectLiteral, Line: 4, Column: 9},
				},
			},
			{Type: parser.NodeCompanionObject, Name: "", Line: 6, Column: 5},
		},
	}
	second := &parser.Node{Type: parser.NodeInterface, Name: "Second", Line: 9, Column: 1}
	topFn := &parser.Node{
		Type: parser.NodeFunction, Name: "top", Line: 11, Column: 1,
		Children: []*parser.Node{
			{Type: parser.NodeClass, Name: "Local", Line: 12, Column: 5},
		},
	}

	defs := []Definition{definition("a", "First", true), definition("b", "Second", true)}
	e := New(config.Empty, defs, nil)
	got := e.Run(file("src/A.kt", outer, second, topFn))

	assert.Equal(t, []string{
		"First:Outer", "Second:Outer",
		"First:", "Second:",
		"First:", "Second:",
		"First:Second", "Second:Second",
		"First:Local", "Second:Local",
	}, report.Messages(got))

	assert.Equal(t, report.Location{Path: "src/A.kt", Line: 4, Column: 9}, got[2].Location)
	assert.Equal(t, "a", got[0].RuleSet)
	assert.Equal(t, "First", got[0].Rule)
	assert.Equal(t, "b > Second", got[1].RuleID())
}

func TestRunSeverity(t *testing.T) {
	defs := []Definition{
		definition("style", "Rule", true),
		definition("style", "Other", true),
		definition("complexity", "Big", true),
	}
	cfg := mustConfig(t, `style:
  severity: info
  Rule:
    severity: error
complexity:
  Big:
    severity: loud
`)
	got := New(cfg, defs, nil).Run(file("A.kt", &parser.Node{Type: parser.NodeClass, Name: "A"}))
	require.Len(t, got, 3)
	assert.Equal(t, report.LevelError, got[0].Level)
	assert.Equal(t, report.LevelInfo, got[1].Level)
	assert.Equal(t, report.LevelWarning, got[2].Level)
}

func TestRunPathFilters(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		path string
		want bool
	}{
		{name: "no filters", path: "src/main/A.kt", want: true},
		{name: "empty path", cfg: "style:\n  Rule:\n    excludes: ['**']\n", path: "", want: true},
		{
			name: "rule exclude",
			cfg:  "style:\n  Rule:\n    excludes: ['**/test/**']\n",
			path: "src/test/A.kt",
			want: false,
		},
		{
			name: "rule exclude no match",
			cfg:  "style:\n  Rule:\n    excludes: ['**/test/**']\n",
			path: "src/main/A.kt",
			want: true,
		},
		{
			name: "rule set exclude",
			cfg:  "style:\n  excludes: ['**/gen/**']\n",
			path: "build/gen/A.kt",
			want: false,
		},
		{
			name: "rule level overrides rule set",
			cfg:  "style:\n  excludes: ['**/gen/**']\n  Rule:\n    excludes: ['**/other/**']\n",
			path: "build/gen/A.kt",
			want: true,
		},
		{
			name: "include wins over exclude",
			cfg:  "style:\n  Rule:\n    includes: ['**/test/keep/**']\n    excludes: ['**/test/**']\n",
			path: "src/test/keep/A.kt",
			want: true,
		},
		{
			name: "includes restrict",
			cfg:  "style:\n  Rule:\n    includes: ['**/main/**']\n",
			path: "src/test/A.kt",
			want: false,
		},
		{
			name: "comma separated string",
			cfg:  "style:\n  Rule:\n    excludes: '**/test/**, **/gen/**'\n",
			path: "x/gen/A.kt",
			want: false,
		},
		{
			name: "absolute path",
			cfg:  "style:\n  Rule:\n    excludes: ['**/test/**']\n",
			path: "/home/dev/src/test/A.kt",
			want: false,
		},
		{
			name: "invalid pattern ignored",
			cfg:  "style:\n  Rule:\n    excludes: ['[']\n",
			path: "src/A.kt",
			want: true,
		},
	}

	defs := []Definition{definition("style", "Rule", true)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(mustConfig(t, tt.cfg), defs, nil)
			got := e.Run(file(tt.path, &parser.Node{Type: parser.NodeClass, Name: "A"}))
			assert.Equal(t, tt.want, len(got) == 1)
		})
	}
}

func TestRunNoRules(t *testing.T) {
	e := New(config.Empty, nil, nil)
	assert.Empty(t, e.Active())
	assert.Nil(t, e.Run(file("A.kt", &parser.Node{Type: parser.NodeClass})))
}

func TestDefinitionID(t *testing.T) {
	assert.Equal(t, "style > ClassOrdering", Definition{RuleSet: "style", Name: "ClassOrdering"}.ID())
}
