// Package parser turns Kotlin source into a declaration tree using
// tree-sitter. The tree keeps only what rules need: declaration kinds,
// names, positions and nesting.
package parser

// NodeType classifies a parsed declaration.
type NodeType int

const (
	// NodeOther is any class body member that has no dedicated type.
	NodeOther NodeType = iota
	// NodeClass is a class declaration.
	NodeClass
	// NodeInterface is an interface declaration.
	NodeInterface
	// NodeEnumClass is an enum class declaration.
	NodeEnumClass
	// NodeObject is a named object declaration.
	NodeObject
	// NodeCompanionObject is a companion object.
	NodeCompanionObject
	// NodeObjectLiteral is an anonymous object expression (object : T { ... }).
	NodeObjectLiteral
	// NodeProperty is a val/var declaration.
	NodeProperty
	// NodeInitializer is an init { ... } block.
	NodeInitializer
	// NodeSecondaryConstructor is a constructor(...) declared in a class body.
	NodeSecondaryConstructor
	// NodePrimaryConstructor is the parameter list in a class header.
	NodePrimaryConstructor
	// NodeFunction is a fun declaration.
	NodeFunction
	// NodeEnumEntry is a single entry of an enum class.
	NodeEnumEntry
	// NodeTypeAlias is a typealias declaration.
	NodeTypeAlias
)

var nodeTypeNames = [...]string{
	NodeOther:                "Other",
	NodeClass:                "Class",
	NodeInterface:            "Interface",
	NodeEnumClass:            "EnumClass",
	NodeObject:               "Object",
	NodeCompanionObject:      "CompanionObject",
	NodeObjectLiteral:        "ObjectLiteral",
	NodeProperty:             "Property",
	NodeInitializer:          "Initializer",
	NodeSecondaryConstructor: "SecondaryConstructor",
	NodePrimaryConstructor:   "PrimaryConstructor",
	NodeFunction:             "Function",
	NodeEnumEntry:            "EnumEntry",
	NodeTypeAlias:            "TypeAlias",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "NodeType(?)"
	}
	return nodeTypeNames[t]
}

// IsClassLike reports whether nodes of this type have a body of members.
func (t NodeType) IsClassLike() bool {
	switch t {
	case NodeClass, NodeInterface, NodeEnumClass, NodeObject, NodeCompanionObject, NodeObjectLiteral:
		return true
	}
	return false
}

// Node is a declaration in the tree.
//
// For class-like nodes, Children are the direct members of the body in
// source order. For every other node, Children are the class-like
// declarations nested anywhere inside it (local classes, object literals in
// initializers and function bodies).
type Node struct {
	Type     NodeType
	Name     string // Identifier; empty for initializers, literals and constructors.
	Line     int    // 1-indexed source line number.
	Column   int    // 1-indexed source column.
	Children []*Node
}

// IsClassLike reports whether n has a body of members.
func (n *Node) IsClassLike() bool {
	return n != nil && n.Type.IsClassLike()
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		Type:   n.Type,
		Name:   n.Name,
		Line:   n.Line,
		Column: n.Column,
	}

	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}

	return clone
}

// Walk calls fn for each node and its descendants in pre-order (source
// order). When fn returns false the node's children are skipped.
func Walk(nodes []*Node, fn func(*Node) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if fn(n) {
			Walk(n.Children, fn)
		}
	}
}

// File is a parsed source file.
type File struct {
	Path      string
	Nodes     []*Node // Top-level declarations.
	HasErrors bool    // The source contained syntax errors; the tree is best effort.
}
