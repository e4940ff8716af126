package parser

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"
)

// Tree-sitter node types for declarations that have a body of members.
var classLikeTypes = map[string]bool{
	"class_declaration":  true,
	"object_declaration": true,
	"companion_object":   true,
	"object_literal":     true,
}

// Tree-sitter node types dropped from class bodies entirely.
var commentTypes = map[string]bool{
	"line_comment":      true,
	"multiline_comment": true,
	"comment":           true,
}

// Parser parses Kotlin sources. A Parser is not safe for concurrent use;
// create one per goroutine.
type Parser struct {
	ts *sitter.Parser
}

// New creates a Kotlin parser.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(kotlin.GetLanguage())
	return &Parser{ts: p}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.ts.Close()
}

// Parse parses src. Syntax errors do not fail the parse: tree-sitter
// recovers and the File is marked HasErrors.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*File, error) {
	tree, err := p.ts.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	c := &converter{src: src}

	file := &File{
		Path:      path,
		HasErrors: root.HasError(),
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if d := c.declaration(child); d != nil {
			file.Nodes = append(file.Nodes, d)
			continue
		}
		file.Nodes = append(file.Nodes, c.nested(child)...)
	}
	return file, nil
}

// ParseFile reads and parses the file at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return p.Parse(ctx, path, src)
}

// Parse is a convenience wrapper that parses src with a throwaway Parser.
func Parse(src string) (*File, error) {
	p := New()
	defer p.Close()
	return p.Parse(context.Background(), "", []byte(src))
}

// converter builds Nodes from a tree-sitter tree.
type converter struct {
	src []byte
}

// declaration converts n when it is a declaration ktstyle models, and
// returns nil otherwise.
func (c *converter) declaration(n *sitter.Node) *Node {
	switch n.Type() {
	case "class_declaration":
		d := c.newNode(c.classType(n), c.childText(n, "type_identifier"), n)
		d.Children = c.classMembers(n)
		return d

	case "object_declaration":
		d := c.newNode(NodeObject, c.childText(n, "type_identifier"), n)
		d.Children = c.classMembers(n)
		return d

	case "companion_object":
		d := c.newNode(NodeCompanionObject, c.childText(n, "type_identifier"), n)
		d.Children = c.classMembers(n)
		return d

	case "object_literal":
		d := c.newNode(NodeObjectLiteral, "", n)
		d.Children = c.classMembers(n)
		return d

	case "property_declaration":
		d := c.newNode(NodeProperty, c.propertyName(n), n)
		d.Children = c.nested(n)
		return d

	case "anonymous_initializer":
		d := c.newNode(NodeInitializer, "", n)
		d.Children = c.nested(n)
		return d

	case "secondary_constructor":
		d := c.newNode(NodeSecondaryConstructor, "", n)
		d.Children = c.nested(n)
		return d

	case "function_declaration":
		d := c.newNode(NodeFunction, c.childText(n, "simple_identifier"), n)
		d.Children = c.nested(n)
		return d

	case "enum_entry":
		d := c.newNode(NodeEnumEntry, c.childText(n, "simple_identifier"), n)
		d.Children = c.nested(n)
		return d

	case "type_alias":
		return c.newNode(NodeTypeAlias, c.childText(n, "type_identifier"), n)
	}
	return nil
}

// classType distinguishes classes, interfaces and enum classes, which
// share one tree-sitter node type.
func (c *converter) classType(n *sitter.Node) NodeType {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "interface":
			return NodeInterface
		case "enum_class_body":
			return NodeEnumClass
		case "modifiers":
			if c.hasModifier(child, "enum") {
				return NodeEnumClass
			}
		}
	}
	return NodeClass
}

func (c *converter) hasModifier(modifiers *sitter.Node, keyword string) bool {
	for i := 0; i < int(modifiers.NamedChildCount()); i++ {
		if strings.TrimSpace(modifiers.NamedChild(i).Content(c.src)) == keyword {
			return true
		}
	}
	return false
}

// classMembers returns the members of a class-like node in source order.
// Body members come from class_body/enum_class_body; the primary
// constructor becomes a NodePrimaryConstructor member, and class-likes in
// the header (object literals passed to a supertype) are kept as members
// too so traversal still reaches them.
func (c *converter) classMembers(n *sitter.Node) []*Node {
	var members []*Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "class_body", "enum_class_body":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if m := c.member(child.NamedChild(j)); m != nil {
					members = append(members, m)
				}
			}
		case "primary_constructor":
			pc := c.newNode(NodePrimaryConstructor, "", child)
			pc.Children = c.nested(child)
			members = append(members, pc)
		default:
			members = append(members, c.nested(child)...)
		}
	}
	return members
}

// member converts a direct child of a class body. Comments are dropped;
// unknown members become NodeOther.
func (c *converter) member(n *sitter.Node) *Node {
	if commentTypes[n.Type()] {
		return nil
	}
	if d := c.declaration(n); d != nil {
		return d
	}
	other := c.newNode(NodeOther, "", n)
	other.Children = c.nested(n)
	return other
}

// nested returns the class-like declarations found beneath n, without
// descending into them (their own members hold anything deeper).
func (c *converter) nested(n *sitter.Node) []*Node {
	var out []*Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if classLikeTypes[child.Type()] {
			out = append(out, c.declaration(child))
			continue
		}
		out = append(out, c.nested(child)...)
	}
	return out
}

// propertyName returns the identifier of a property, or "(a, b)" for a
// destructuring declaration.
func (c *converter) propertyName(n *sitter.Node) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "variable_declaration":
			return c.childText(child, "simple_identifier")
		case "multi_variable_declaration":
			var names []string
			for j := 0; j < int(child.NamedChildCount()); j++ {
				v := child.NamedChild(j)
				if v.Type() == "variable_declaration" {
					names = append(names, c.childText(v, "simple_identifier"))
				}
			}
			return "(" + strings.Join(names, ", ") + ")"
		}
	}
	return ""
}

// childText returns the text of the first named child of the given type.
func (c *converter) childText(n *sitter.Node, typ string) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == typ {
			return child.Content(c.src)
		}
	}
	return ""
}

func (c *converter) newNode(typ NodeType, name string, n *sitter.Node) *Node {
	start := n.StartPoint()
	return &Node{
		Type:   typ,
		Name:   name,
		Line:   int(start.Row) + 1,
		Column: int(start.Column) + 1,
	}
}
