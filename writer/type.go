package writer

import (
	"strings"

	"csharp2pwsh/ir"
)

// TypeWriter renders the "type" dialect: PowerShell 5+ class syntax
// (spec.md §4.4). It embeds FunctionWriter so every function-dialect
// expression rewrite (operators, casts, identifiers, object creation)
// applies inside method bodies too, and overrides only the
// declaration-shaped variants that PowerShell 5 classes render
// differently from standalone functions.
type TypeWriter struct {
	*FunctionWriter
}

// NewTypeWriter constructs a type-dialect writer.
func NewTypeWriter() *TypeWriter {
	fw := NewFunctionWriter()
	fw.language = ir.PowerShell5
	return &TypeWriter{FunctionWriter: fw}
}

// Write renders root as type-dialect PowerShell text.
func (w *TypeWriter) Write(root ir.Node) (string, error) {
	return w.run(w, root), nil
}

func hasModifier(modifiers []string, name string) bool {
	for _, m := range modifiers {
		if m == name {
			return true
		}
	}
	return false
}

// isHidden reports whether a member's modifier list should render with
// PowerShell 5's "hidden" keyword: anything not public.
func isHidden(modifiers []string) bool {
	return !hasModifier(modifiers, "public")
}

// isExactModifierSet reports whether modifiers contains exactly the given
// names, independent of order.
func isExactModifierSet(modifiers []string, want ...string) bool {
	if len(modifiers) != len(want) {
		return false
	}
	set := make(map[string]bool, len(modifiers))
	for _, m := range modifiers {
		set[m] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

// emitModifierComment renders "# Modifiers: a, b" unless modifiers is empty
// (spec.md §4.4).
func (w *TypeWriter) emitModifierComment(modifiers []string) {
	if len(modifiers) == 0 {
		return
	}
	w.append("# Modifiers: " + strings.Join(modifiers, ", "))
	w.newline()
}

// needsMethodModifierComment implements spec.md §4.4's method rule: a
// modifier comment is emitted unless the modifier set is exactly {public}
// or {public, static}.
func needsMethodModifierComment(modifiers []string) bool {
	if isExactModifierSet(modifiers, "public") || isExactModifierSet(modifiers, "public", "static") {
		return false
	}
	return len(modifiers) > 0
}

// --- top-level containers -----------------------------------------------

func (w *TypeWriter) VisitNamespace(n *ir.Namespace) {
	w.append("# module " + n.Name)
	if len(n.Usings) > 0 {
		w.newline()
	}
	for _, u := range n.Usings {
		w.newline()
		w.accept(u)
	}
	if len(n.Members) > 0 {
		w.newline()
		w.newline()
	}
	for i, m := range n.Members {
		if i > 0 {
			w.newline()
			w.newline()
		}
		w.accept(m)
	}
}

func (w *TypeWriter) VisitUsingDirective(n *ir.UsingDirective) {
	w.append("using namespace " + n.Name)
}

func (w *TypeWriter) visitAttributes(attrs []*ir.Attribute) {
	for _, a := range attrs {
		w.accept(a)
		w.newline()
	}
}

// visitTypeBody renders a class-shaped declaration. PowerShell 5 has no
// distinct interface/struct keyword worth modeling (DESIGN.md), so every
// caller — class, interface, struct — renders the "class" keyword.
func (w *TypeWriter) visitTypeBody(name string, modifiers []string, attrs []*ir.Attribute, bases []string, members []ir.Node) {
	w.emitModifierComment(modifiers)
	w.visitAttributes(attrs)
	w.append("class " + name)
	if len(bases) > 0 {
		w.append(" : " + strings.Join(bases, ", "))
	}
	w.newline()
	w.append("{")
	w.indent()
	for _, m := range members {
		w.newline()
		w.accept(m)
	}
	w.outdent()
	w.newline()
	w.append("}")
}

func (w *TypeWriter) VisitClassDeclaration(n *ir.ClassDeclaration) {
	w.visitTypeBody(n.Name, n.Modifiers, n.Attributes, n.Bases, n.Members)
}

func (w *TypeWriter) VisitInterfaceDeclaration(n *ir.InterfaceDeclaration) {
	w.visitTypeBody(n.Name, n.Modifiers, n.Attributes, n.Bases, n.Members)
}

func (w *TypeWriter) VisitStructDeclaration(n *ir.StructDeclaration) {
	w.visitTypeBody(n.Name, n.Modifiers, n.Attributes, n.Bases, n.Members)
}

// VisitEnumDeclaration renders a native PowerShell 5 enum: members are
// newline-separated, not comma-separated, unlike BaseWriter's C-style
// default.
func (w *TypeWriter) VisitEnumDeclaration(n *ir.EnumDeclaration) {
	w.visitAttributes(n.Attributes)
	w.append("enum " + n.Name)
	w.newline()
	w.append("{")
	w.indent()
	for _, m := range n.Members {
		w.newline()
		w.accept(m)
	}
	w.outdent()
	w.newline()
	w.append("}")
}

func (w *TypeWriter) VisitAttribute(n *ir.Attribute) {
	w.append("[" + n.Name)
	if len(n.Arguments) > 0 {
		w.append("(")
		prev := w.inLiteralExpr
		w.inLiteralExpr = true
		for i, a := range n.Arguments {
			if i > 0 {
				w.append(", ")
			}
			w.accept(a)
		}
		w.inLiteralExpr = prev
		w.append(")")
	}
	w.append("]")
}

// --- members --------------------------------------------------------------

func (w *TypeWriter) VisitMethodDeclaration(n *ir.MethodDeclaration) {
	if isPInvoke(n) {
		w.FunctionWriter.VisitMethodDeclaration(n)
		return
	}
	w.visitAttributes(n.Attributes)
	if needsMethodModifierComment(n.Modifiers) {
		w.emitModifierComment(n.Modifiers)
	}
	if isHidden(n.Modifiers) {
		w.append("hidden ")
	}
	if hasModifier(n.Modifiers, "static") {
		w.append("static ")
	}
	if n.ReturnType != "" && n.ReturnType != "void" {
		w.append(bracketType(n.ReturnType) + " ")
	}
	w.append(n.Name + "(")
	for i, p := range n.Parameters {
		if i > 0 {
			w.append(", ")
		}
		w.accept(p)
	}
	w.append(")")
	w.newline()
	w.append("{")
	w.indent()
	if n.Body != nil {
		w.newline()
		w.accept(n.Body)
	} else {
		w.newline()
		w.emitNotImplemented()
	}
	w.outdent()
	w.newline()
	w.append("}")
}

// emitNotImplemented renders the absent-body statement spec.md §4.4 and
// §8 scenario 6 call for: a cast from a string literal to
// NotImplementedException, not an argument-less static constructor call.
func (w *TypeWriter) emitNotImplemented() {
	w.append(`throw [NotImplementedException]"not implemented"`)
}

func (w *TypeWriter) VisitConstructor(n *ir.Constructor) {
	w.append("# Constructor")
	w.newline()
	w.append(n.Identifier + "(")
	if n.ArgumentList != nil {
		for i, a := range n.ArgumentList.Arguments {
			if i > 0 {
				w.append(", ")
			}
			w.accept(a)
		}
	}
	w.append(")")
	w.newline()
	w.append("{")
	w.indent()
	if n.Body != nil {
		w.newline()
		w.accept(n.Body)
	} else {
		w.newline()
		w.emitNotImplemented()
	}
	w.outdent()
	w.newline()
	w.append("}")
}

func (w *TypeWriter) VisitPropertyDeclaration(n *ir.PropertyDeclaration) {
	w.emitModifierComment(n.Modifiers)
	if isHidden(n.Modifiers) {
		w.append("hidden ")
	}
	if hasModifier(n.Modifiers, "static") {
		w.append("static ")
	}
	w.append(bracketType(n.Type) + " $" + n.Name)
}

func (w *TypeWriter) VisitFieldDeclaration(n *ir.FieldDeclaration) {
	w.emitModifierComment(n.Modifiers)
	if isHidden(n.Modifiers) {
		w.append("hidden ")
	}
	if hasModifier(n.Modifiers, "static") {
		w.append("static ")
	}
	w.append(bracketType(n.Type) + " $" + n.Name)
}

func (w *TypeWriter) VisitParameter(n *ir.Parameter) {
	for _, m := range n.Modifiers {
		if m == "ref" || m == "out" {
			w.append("[ref] ")
		}
	}
	w.append(bracketType(n.Type) + " $" + strings.TrimPrefix(n.Name, "@"))
}

// --- expressions ---------------------------------------------------------

func (w *TypeWriter) VisitThisExpression(n *ir.ThisExpression) { w.append("$this") }

func (w *TypeWriter) VisitObjectCreation(n *ir.ObjectCreation) {
	w.append(bracketType(n.Type) + "::new(")
	if n.Arguments != nil {
		w.accept(n.Arguments)
	}
	w.append(")")
}
