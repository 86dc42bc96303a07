// Package frontend translates a parsed C# concrete syntax tree (csxtree)
// into the language-neutral IR (ir). It never reports semantic errors —
// only the shape of the syntax — per spec.md's non-goals.
package frontend

import (
	"strings"

	"csharp2pwsh/csxtree"
	"csharp2pwsh/internal/obslog"
	"csharp2pwsh/ir"
)

// Visit translates a parsed, syntactically-complete tree into an IR root.
// The returned node is a *ir.Namespace for a full compilation unit, or the
// best-matching variant for a bare fragment. Callers are expected to have
// already checked the tree for parse diagnostics (spec.md §7's
// ParseFailure is raised one layer up, at the Translate boundary, where
// the diagnostic is still in scope).
func Visit(tree *csxtree.Tree) ir.Node {
	return visitNode(tree.Root())
}

// newUnknown builds the in-band "unsupported construct" node and logs it
// at Debug level (node kind plus message), per spec.md §7: Unknown is
// never an exception, only a marker for the human reader to find.
func newUnknown(n *csxtree.Node) *ir.Unknown {
	u := &ir.Unknown{Message: n.Kind() + ": " + n.Text()}
	obslog.Current().Debug().Str("kind", n.Kind()).Str("message", u.Message).Msg("unsupported construct")
	return u
}

// visitNode is the per-node-kind dispatch. Anything not recognized
// collapses to ir.Unknown carrying the node kind and its source text,
// per spec.md §4.1.
func visitNode(n *csxtree.Node) ir.Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "compilation_unit":
		return visitCompilationUnit(n)
	case "namespace_declaration", "file_scoped_namespace_declaration":
		return visitNamespace(n)
	case "using_directive":
		return visitUsingDirective(n)
	case "class_declaration":
		return visitClassDeclaration(n)
	case "interface_declaration":
		return visitInterfaceDeclaration(n)
	case "struct_declaration":
		return visitStructDeclaration(n)
	case "enum_declaration":
		return visitEnumDeclaration(n)
	case "enum_member_declaration":
		return visitEnumMember(n)
	case "delegate_declaration":
		return visitDelegateDeclaration(n)
	case "method_declaration":
		return visitMethodDeclaration(n)
	case "constructor_declaration":
		return visitConstructor(n)
	case "property_declaration":
		return visitPropertyDeclaration(n)
	case "field_declaration":
		return visitFieldDeclaration(n)
	case "parameter":
		return visitParameter(n)

	case "block":
		return visitBlock(n)
	case "if_statement":
		return visitIf(n)
	case "for_statement":
		return visitFor(n)
	case "foreach_statement":
		return visitForEach(n)
	case "while_statement":
		return visitWhile(n)
	case "switch_statement":
		return visitSwitch(n)
	case "try_statement":
		return visitTry(n)
	case "using_statement":
		return visitUsingStatement(n)
	case "throw_statement", "throw_expression":
		return visitThrow(n)
	case "break_statement":
		return &ir.Break{}
	case "continue_statement":
		return &ir.Continue{}
	case "return_statement":
		return visitReturn(n)
	case "local_declaration_statement":
		return visitLocalDeclaration(n)
	case "expression_statement":
		return visitExprStatement(n)

	default:
		return visitExpression(n)
	}
}

func visitCompilationUnit(n *csxtree.Node) ir.Node {
	var usings []*ir.UsingDirective
	var members []ir.Node
	var explicitNamespace *ir.Namespace

	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "using_directive":
			usings = append(usings, visitUsingDirective(child))
		case "namespace_declaration", "file_scoped_namespace_declaration":
			explicitNamespace = visitNamespace(child)
		default:
			if isTypeDeclaration(child.Kind()) {
				members = append(members, visitNode(child))
			}
		}
	}

	if explicitNamespace != nil {
		// Usings written above the namespace are kept ahead of the
		// namespace's own usings.
		explicitNamespace.Usings = append(usings, explicitNamespace.Usings...)
		return explicitNamespace
	}
	// No explicit namespace: a synthetic empty one wraps the members
	// (spec.md §4.1).
	return &ir.Namespace{Name: "", Usings: usings, Members: members}
}

func visitNamespace(n *csxtree.Node) *ir.Namespace {
	name := ""
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}

	var usings []*ir.UsingDirective
	var members []ir.Node
	children := n.NamedChildren()
	for i := 0; i < len(children); i++ {
		child := children[i]
		switch child.Kind() {
		case "using_directive":
			usings = append(usings, visitUsingDirective(child))
		case "name", "qualified_name", "identifier":
			// already captured via ChildByField("name")
		case "declaration_list":
			// The namespace body wraps its usings and member declarations.
			children = append(children, child.NamedChildren()...)
		default:
			if isTypeDeclaration(child.Kind()) {
				members = append(members, visitNode(child))
			}
		}
	}
	return &ir.Namespace{Name: name, Usings: usings, Members: members}
}

func isTypeDeclaration(kind string) bool {
	switch kind {
	case "class_declaration", "interface_declaration", "struct_declaration",
		"enum_declaration", "delegate_declaration":
		return true
	}
	return false
}

func visitUsingDirective(n *csxtree.Node) *ir.UsingDirective {
	name := n.Text()
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	name = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(name), "using "), ";")
	return &ir.UsingDirective{Name: strings.TrimSpace(name)}
}

// visitClassDeclaration, visitInterfaceDeclaration and visitStructDeclaration
// share shape (spec.md §4.1: "corresponding IR variant with modifiers...").
func visitClassDeclaration(n *csxtree.Node) *ir.ClassDeclaration {
	name, modifiers, attrs, bases, members := visitTypeDeclarationShape(n)
	return &ir.ClassDeclaration{Name: name, Modifiers: modifiers, Attributes: attrs, Bases: bases, Members: members}
}

func visitInterfaceDeclaration(n *csxtree.Node) *ir.InterfaceDeclaration {
	name, modifiers, attrs, bases, members := visitTypeDeclarationShape(n)
	return &ir.InterfaceDeclaration{Name: name, Modifiers: modifiers, Attributes: attrs, Bases: bases, Members: members}
}

// visitStructDeclaration supplements spec.md's IR table (SPEC_FULL.md):
// C# structs share the class grammar shape but had no dedicated variant.
func visitStructDeclaration(n *csxtree.Node) *ir.StructDeclaration {
	name, modifiers, attrs, bases, members := visitTypeDeclarationShape(n)
	return &ir.StructDeclaration{Name: name, Modifiers: modifiers, Attributes: attrs, Bases: bases, Members: members}
}

func visitTypeDeclarationShape(n *csxtree.Node) (name string, modifiers []string, attrs []*ir.Attribute, bases []string, members []ir.Node) {
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "modifier":
			modifiers = append(modifiers, child.Text())
		case "attribute_list":
			attrs = append(attrs, visitAttributeList(child)...)
		case "base_list":
			for _, b := range child.NamedChildren() {
				bases = append(bases, b.Text())
			}
		case "declaration_list", "body":
			for _, m := range child.NamedChildren() {
				members = append(members, visitNode(m))
			}
		}
	}
	return
}

// visitEnumDeclaration supplements spec.md's IR table (SPEC_FULL.md): C#
// enums have no dedicated variant in spec.md though PowerShell 5 has a
// first-class enum keyword.
func visitEnumDeclaration(n *csxtree.Node) *ir.EnumDeclaration {
	name := ""
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	var modifiers []string
	var attrs []*ir.Attribute
	var members []*ir.EnumMember
	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "modifier":
			modifiers = append(modifiers, child.Text())
		case "attribute_list":
			attrs = append(attrs, visitAttributeList(child)...)
		case "enum_member_declaration_list", "body":
			for _, m := range child.NamedChildren() {
				if m.Kind() == "enum_member_declaration" {
					members = append(members, visitEnumMember(m))
				}
			}
		}
	}
	return &ir.EnumDeclaration{Name: name, Modifiers: modifiers, Attributes: attrs, Members: members}
}

func visitEnumMember(n *csxtree.Node) *ir.EnumMember {
	name := ""
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	var value ir.Node
	if valueNode := n.ChildByField("value"); valueNode != nil {
		value = visitExpression(valueNode)
	}
	return &ir.EnumMember{Name: name, Value: value}
}

// visitDelegateDeclaration supplements spec.md's IR table (SPEC_FULL.md).
func visitDelegateDeclaration(n *csxtree.Node) *ir.DelegateDeclaration {
	name := ""
	returnType := ""
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	if typeNode := n.ChildByField("type"); typeNode != nil {
		returnType = typeNode.Text()
	}
	var params []*ir.Parameter
	if paramList := n.ChildByField("parameters"); paramList != nil {
		for _, p := range paramList.NamedChildren() {
			if p.Kind() == "parameter" {
				params = append(params, visitParameter(p))
			}
		}
	}
	return &ir.DelegateDeclaration{Name: name, ReturnType: returnType, Parameters: params}
}

func visitMethodDeclaration(n *csxtree.Node) *ir.MethodDeclaration {
	name := ""
	returnType := ""
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	if typeNode := n.ChildByField("type"); typeNode != nil {
		returnType = typeNode.Text()
	}

	var modifiers []string
	var attrs []*ir.Attribute
	var params []*ir.Parameter
	var body *ir.Block

	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "modifier":
			modifiers = append(modifiers, child.Text())
		case "attribute_list":
			attrs = append(attrs, visitAttributeList(child)...)
		case "parameter_list":
			for _, p := range child.NamedChildren() {
				if p.Kind() == "parameter" {
					params = append(params, visitParameter(p))
				}
			}
		case "block":
			body = visitBlock(child)
		}
	}

	// Abstract/extern methods have no block; body stays nil.
	return &ir.MethodDeclaration{
		Name:           name,
		ReturnType:     returnType,
		Modifiers:      modifiers,
		Attributes:     attrs,
		Parameters:     params,
		Body:           body,
		OriginalSource: n.Text(),
	}
}

func visitConstructor(n *csxtree.Node) *ir.Constructor {
	identifier := ""
	if nameNode := n.ChildByField("name"); nameNode != nil {
		identifier = nameNode.Text()
	}
	var args *ir.ArgumentList
	var body *ir.Block
	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "parameter_list":
			args = visitParameterListAsArguments(child)
		case "block":
			body = visitBlock(child)
		}
	}
	if args == nil {
		args = &ir.ArgumentList{}
	}
	return &ir.Constructor{Identifier: identifier, ArgumentList: args, Body: body}
}

// visitParameterListAsArguments mirrors a constructor's parameter_list
// into the ArgumentList shape spec.md's Constructor variant names
// (argumentList), since the grammar node is a parameter list either way.
func visitParameterListAsArguments(n *csxtree.Node) *ir.ArgumentList {
	var out []*ir.Argument
	for _, p := range n.NamedChildren() {
		if p.Kind() != "parameter" {
			continue
		}
		nameNode := p.ChildByField("name")
		var expr ir.Node
		if nameNode != nil {
			expr = &ir.IdentifierName{Name: nameNode.Text()}
		}
		out = append(out, &ir.Argument{Expression: expr})
	}
	return &ir.ArgumentList{Arguments: out}
}

func visitPropertyDeclaration(n *csxtree.Node) *ir.PropertyDeclaration {
	name := ""
	typ := ""
	var modifiers []string
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	if typeNode := n.ChildByField("type"); typeNode != nil {
		typ = typeNode.Text()
	}
	for _, child := range n.NamedChildren() {
		if child.Kind() == "modifier" {
			modifiers = append(modifiers, child.Text())
		}
	}
	// Accessor bodies are discarded, per spec.md §4.1.
	return &ir.PropertyDeclaration{Name: name, Type: typ, Modifiers: modifiers}
}

func visitFieldDeclaration(n *csxtree.Node) *ir.FieldDeclaration {
	var modifiers []string
	name, typ := "", ""
	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "modifier":
			modifiers = append(modifiers, child.Text())
		case "variable_declaration":
			if typeNode := child.ChildByField("type"); typeNode != nil {
				typ = typeNode.Text()
			}
			for _, d := range child.NamedChildren() {
				if d.Kind() == "variable_declarator" {
					if nameNode := d.ChildByField("name"); nameNode != nil {
						name = nameNode.Text()
					}
					break
				}
			}
		}
	}
	return &ir.FieldDeclaration{Name: name, Type: typ, Modifiers: modifiers}
}

func visitParameter(n *csxtree.Node) *ir.Parameter {
	name, typ := "", ""
	var modifiers []string
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	if typeNode := n.ChildByField("type"); typeNode != nil {
		typ = typeNode.Text()
	}
	for _, child := range n.NamedChildren() {
		if child.Kind() == "parameter_modifier" {
			modifiers = append(modifiers, child.Text())
		}
	}
	return &ir.Parameter{Name: name, Type: typ, Modifiers: modifiers}
}

func visitAttributeList(n *csxtree.Node) []*ir.Attribute {
	var out []*ir.Attribute
	for _, child := range n.NamedChildren() {
		if child.Kind() != "attribute" {
			continue
		}
		out = append(out, visitAttribute(child))
	}
	return out
}

func visitAttribute(n *csxtree.Node) *ir.Attribute {
	name := ""
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	var args []*ir.AttributeArgument
	for _, child := range n.NamedChildren() {
		if child.Kind() != "attribute_argument_list" {
			continue
		}
		for _, a := range child.NamedChildren() {
			if a.Kind() != "attribute_argument" {
				continue
			}
			if a.ChildByField("name") != nil {
				// Named argument ("SupportPaging = true"): ir.AttributeArgument
				// has no field for the name half, so the whole "name = value"
				// text is preserved verbatim via RawCode rather than silently
				// dropping the name.
				args = append(args, &ir.AttributeArgument{Expression: &ir.RawCode{Code: a.Text()}})
				continue
			}
			expr := a
			if exprNode := a.ChildByField("expression"); exprNode != nil {
				expr = exprNode
			} else if named := a.NamedChildren(); len(named) > 0 {
				expr = named[0]
			}
			args = append(args, &ir.AttributeArgument{Expression: visitExpression(expr)})
		}
	}
	return &ir.Attribute{Name: name, Arguments: args}
}
