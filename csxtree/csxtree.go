// Package csxtree narrows github.com/smacker/go-tree-sitter (configured
// with its C# grammar) down to the surface spec.md §1 asks the front-end
// to consume: "parse source text → concrete tree" plus per-node kind
// inspection. frontend.Visit only ever imports this package, never
// sitter/csharp directly, so the external-collaborator boundary named in
// spec.md stays real in code.
package csxtree

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// Tree is a parsed concrete syntax tree together with the source bytes it
// was parsed from (tree-sitter nodes are spans into that buffer).
type Tree struct {
	root *sitter.Node
	src  []byte
}

// Diagnostic describes a parse error location, attached verbatim to a
// front-end ParseFailure (spec.md §7).
type Diagnostic struct {
	NodeKind string
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
	Text     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %d:%d-%d:%d: %q", d.NodeKind, d.StartRow, d.StartCol, d.EndRow, d.EndCol, d.Text)
}

// Parse parses C# source text into a concrete syntax tree. It returns a
// non-nil Diagnostic alongside the tree whenever the parser produced an
// ERROR node anywhere in the tree, so callers can decide whether a partial
// tree is usable.
func Parse(src []byte) (*Tree, *Diagnostic, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())

	sitterTree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, nil, fmt.Errorf("csxtree: parse failed: %w", err)
	}
	root := sitterTree.RootNode()
	if root == nil {
		return nil, nil, fmt.Errorf("csxtree: parser produced no root node")
	}

	tree := &Tree{root: root, src: src}
	if diag := firstError(root, src); diag != nil {
		return tree, diag, nil
	}
	return tree, nil, nil
}

func firstError(n *sitter.Node, src []byte) *Diagnostic {
	if n.IsError() || n.IsMissing() {
		return &Diagnostic{
			NodeKind: n.Type(),
			StartRow: int(n.StartPoint().Row),
			StartCol: int(n.StartPoint().Column),
			EndRow:   int(n.EndPoint().Row),
			EndCol:   int(n.EndPoint().Column),
			Text:     n.Content(src),
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if diag := firstError(n.Child(i), src); diag != nil {
			return diag
		}
	}
	return nil
}

// Root returns the root Node of the tree (a "compilation_unit" in the C#
// grammar).
func (t *Tree) Root() *Node { return &Node{n: t.root, src: t.src} }

// Node wraps a tree-sitter node and the source buffer it spans, giving
// callers the kind/text/child surface the front-end needs without
// depending on the sitter package directly.
type Node struct {
	n   *sitter.Node
	src []byte
}

// Kind returns the tree-sitter node type, e.g. "class_declaration".
func (node *Node) Kind() string { return node.n.Type() }

// Text returns the exact source slice the node spans.
func (node *Node) Text() string { return node.n.Content(node.src) }

// IsNamed reports whether this is a named (grammar) node rather than an
// anonymous token such as a keyword or punctuation.
func (node *Node) IsNamed() bool { return node.n.IsNamed() }

// Children returns every child, named and anonymous.
func (node *Node) Children() []*Node {
	count := int(node.n.ChildCount())
	out := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, &Node{n: node.n.Child(i), src: node.src})
	}
	return out
}

// NamedChildren returns only the named children, skipping anonymous
// keyword/punctuation tokens.
func (node *Node) NamedChildren() []*Node {
	count := int(node.n.NamedChildCount())
	out := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, &Node{n: node.n.NamedChild(i), src: node.src})
	}
	return out
}

// ChildByField returns the child bound to the given grammar field name
// (e.g. "name", "body", "value"), or nil if absent.
func (node *Node) ChildByField(name string) *Node {
	child := node.n.ChildByFieldName(name)
	if child == nil {
		return nil
	}
	return &Node{n: child, src: node.src}
}

// Point identifies a row/column location for diagnostics.
type Point struct {
	Row    int
	Column int
}

func (node *Node) StartPoint() Point {
	p := node.n.StartPoint()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

func (node *Node) EndPoint() Point {
	p := node.n.EndPoint()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}
