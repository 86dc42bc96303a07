package writer

import (
	"strings"

	"csharp2pwsh/ir"
)

// FunctionWriter renders the "function" dialect: standalone script
// functions and C-style control flow reshaped into PowerShell syntax
// (spec.md §4.3). It embeds BaseWriter and overrides exactly the
// variants PowerShell's surface syntax actually differs on; everything
// else falls through to BaseWriter's C-shaped default.
type FunctionWriter struct {
	*BaseWriter
}

// NewFunctionWriter constructs a function-dialect writer with PowerShell's
// operator tokens installed in place of the C-style defaults.
func NewFunctionWriter() *FunctionWriter {
	b := newBaseWriter()
	b.operators = functionOperatorMap()
	b.language = ir.PowerShell
	return &FunctionWriter{BaseWriter: b}
}

func functionOperatorMap() map[ir.BinaryOp]string {
	return map[ir.BinaryOp]string{
		ir.BinaryOpUnknown:            " <unknown-op> ",
		ir.BinaryOpNotEqual:           " -ne ",
		ir.BinaryOpEqual:              " -eq ",
		ir.BinaryOpNot:                " -not ",
		ir.BinaryOpGreaterThan:        " -gt ",
		ir.BinaryOpGreaterThanEqualTo: " -ge ",
		ir.BinaryOpLessThan:           " -lt ",
		ir.BinaryOpLessThanEqualTo:    " -le ",
		ir.BinaryOpOr:                 " -or ",
		ir.BinaryOpAnd:                " -and ",
		ir.BinaryOpBor:                " -bor ",
		ir.BinaryOpMinus:              " - ",
		ir.BinaryOpPlus:               " + ",
	}
}

// Write renders root as function-dialect PowerShell text.
func (w *FunctionWriter) Write(root ir.Node) (string, error) {
	return w.run(w, root), nil
}

// bracketType rewrites a C# type name into a PowerShell type literal by
// swapping the generic angle brackets for square brackets, e.g.
// "List<int>" becomes "[List[int]]". Plain names just get bracketed.
func bracketType(t string) string {
	t = strings.ReplaceAll(t, "<", "[")
	t = strings.ReplaceAll(t, ">", "]")
	return "[" + t + "]"
}

// --- declarations -------------------------------------------------------

func (w *FunctionWriter) VisitMethodDeclaration(n *ir.MethodDeclaration) {
	if isPInvoke(n) {
		w.emitPInvoke(n)
		return
	}
	w.append("function " + n.Name + " {")
	w.indent()
	w.newline()
	if len(n.Parameters) > 0 {
		w.append("param(")
		w.indent()
		for i, p := range n.Parameters {
			w.newline()
			w.accept(p)
			if i < len(n.Parameters)-1 {
				w.append(",")
			}
		}
		w.outdent()
		w.newline()
		w.append(")")
		w.newline()
	}
	if n.Body != nil {
		w.accept(n.Body)
	}
	w.outdent()
	w.newline()
	w.append("}")
}

// isPInvoke reports whether a method is a native-function binding: the
// spec.md §6 "Attribute → P/Invoke contract" requires both the DllImport
// attribute and the extern modifier to be present.
func isPInvoke(n *ir.MethodDeclaration) bool {
	extern := false
	for _, m := range n.Modifiers {
		if m == "extern" {
			extern = true
		}
	}
	if !extern {
		return false
	}
	for _, a := range n.Attributes {
		if a.Name == "DllImport" {
			return true
		}
	}
	return false
}

// emitPInvoke renders spec.md §6's P/Invoke contract: the method's
// preserved OriginalSource, split on carriage returns and re-indented
// inside a "public static class PInvoke" block wrapped in
// Add-Type -TypeDefinition, followed by a forwarding "function Name {...}"
// wrapper whose body calls [PInvoke]::Name(...) with the same parameters
// so existing call sites referencing Name keep working.
func (w *FunctionWriter) emitPInvoke(n *ir.MethodDeclaration) {
	w.append(`Add-Type -TypeDefinition @"`)
	w.newline()
	w.append("public static class PInvoke")
	w.newline()
	w.append("{")
	w.indent()
	normalized := strings.ReplaceAll(n.OriginalSource, "\r\n", "\r")
	normalized = strings.ReplaceAll(normalized, "\n", "\r")
	for _, line := range strings.Split(normalized, "\r") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		w.newline()
		w.append(line)
	}
	w.outdent()
	w.newline()
	w.append("}")
	w.newline()
	w.append(`"@`)
	w.newline()
	w.newline()
	w.append("function " + n.Name + " {")
	w.indent()
	if len(n.Parameters) > 0 {
		w.newline()
		w.append("param(")
		w.indent()
		for i, p := range n.Parameters {
			w.newline()
			w.accept(p)
			if i < len(n.Parameters)-1 {
				w.append(",")
			}
		}
		w.outdent()
		w.newline()
		w.append(")")
	}
	w.newline()
	w.append("[PInvoke]::" + n.Name + "(")
	for i, p := range n.Parameters {
		if i > 0 {
			w.append(", ")
		}
		w.append("$" + strings.TrimPrefix(p.Name, "@"))
	}
	w.append(")")
	w.outdent()
	w.newline()
	w.append("}")
}

func (w *FunctionWriter) VisitParameter(n *ir.Parameter) {
	for _, m := range n.Modifiers {
		if m == "ref" || m == "out" {
			w.append("[ref] ")
		}
	}
	if n.Type != "" {
		w.append(bracketType(n.Type) + " ")
	}
	w.append("$" + strings.TrimPrefix(n.Name, "@"))
}

// --- expressions ---------------------------------------------------------

func (w *FunctionWriter) VisitIdentifierName(n *ir.IdentifierName) {
	if w.inLiteralExpr {
		w.append(n.Name)
		return
	}
	name := strings.TrimPrefix(n.Name, "@")
	if name == "" {
		return
	}
	r := rune(name[0])
	if r == '_' || (r >= 'A' && r <= 'Z') {
		w.append("$this." + name)
		return
	}
	w.append("$" + name)
}

func (w *FunctionWriter) VisitLiteral(n *ir.Literal) {
	switch n.Token {
	case "true":
		w.append("$true")
	case "false":
		w.append("$false")
	case "null":
		w.append("$null")
	default:
		w.append(n.Token)
	}
}

func (w *FunctionWriter) VisitStringConstant(n *ir.StringConstant) {
	w.append("'" + strings.ReplaceAll(n.Value, "'", "''") + "'")
}

// VisitTemplateStringConstant keeps the double-quoted form spec.md §4.3
// calls for — unlike VisitStringConstant, which switches to single quotes.
func (w *FunctionWriter) VisitTemplateStringConstant(n *ir.TemplateStringConstant) {
	w.append(`"` + n.Value + `"`)
}

func (w *FunctionWriter) VisitCast(n *ir.Cast) {
	w.append(bracketType(n.Type))
	w.accept(n.Expression)
}

func (w *FunctionWriter) VisitCatchDeclaration(n *ir.CatchDeclaration) {
	w.append(bracketType(n.Type))
}

func (w *FunctionWriter) VisitMemberAccess(n *ir.MemberAccess) {
	if te, ok := n.Expression.(*ir.TypeExpression); ok {
		w.append(bracketType(te.TypeName) + "::" + n.Identifier)
		return
	}
	w.accept(n.Expression)
	w.append("." + n.Identifier)
}

func (w *FunctionWriter) VisitObjectCreation(n *ir.ObjectCreation) {
	w.append("(New-Object -TypeName " + n.Type)
	if n.Arguments != nil && len(n.Arguments.Arguments) > 0 {
		w.append(" -ArgumentList ")
		w.accept(n.Arguments)
	}
	w.append(")")
}

func (w *FunctionWriter) VisitArrayCreation(n *ir.ArrayCreation) {
	w.append("@(")
	for i, e := range n.Initializer {
		if i > 0 {
			w.append(", ")
		}
		w.accept(e)
	}
	w.append(")")
}

// --- statements ------------------------------------------------------------

func (w *FunctionWriter) VisitIf(n *ir.If) {
	w.append("if (")
	w.accept(n.Condition)
	w.append(") {")
	w.indent()
	w.newline()
	w.accept(n.Body)
	w.outdent()
	w.newline()
	w.append("}")
	if n.ElseClause != nil {
		w.accept(n.ElseClause)
	}
}

func (w *FunctionWriter) VisitElseClause(n *ir.ElseClause) {
	w.append(" else")
	if _, chained := n.Body.(*ir.If); chained {
		w.append(" ")
		w.accept(n.Body)
		return
	}
	w.append(" {")
	w.indent()
	w.newline()
	w.accept(n.Body)
	w.outdent()
	w.newline()
	w.append("}")
}

func (w *FunctionWriter) VisitSwitch(n *ir.Switch) {
	prevInSwitch := w.inSwitch
	w.inSwitch = true
	w.append("switch (")
	w.accept(n.Expression)
	w.append(") {")
	w.indent()
	for _, s := range n.Sections {
		w.newline()
		w.accept(s)
	}
	w.outdent()
	w.newline()
	w.append("}")
	w.inSwitch = prevInSwitch
}

func (w *FunctionWriter) VisitSwitchSection(n *ir.SwitchSection) {
	for _, label := range n.Labels {
		if id, ok := label.(*ir.IdentifierName); ok && id.Name == "default" {
			w.append("default")
		} else {
			w.accept(label)
		}
		w.append(" {")
	}
	w.indent()
	for _, s := range n.Statements {
		w.newline()
		w.accept(s)
	}
	w.outdent()
	w.newline()
	w.append("}")
}

func (w *FunctionWriter) VisitBreak(n *ir.Break) {
	if w.inSwitch {
		return
	}
	w.append("break")
}

func (w *FunctionWriter) VisitUsingStatement(n *ir.UsingStatement) {
	var varName string
	var init ir.Node
	switch decl := n.Declaration.(type) {
	case *ir.VariableDeclaration:
		if len(decl.Variables) > 0 {
			varName = decl.Variables[0].Name
			init = decl.Variables[0].Initializer
		}
	case *ir.VariableDeclarator:
		varName = decl.Name
		init = decl.Initializer
	}
	if varName == "" {
		varName = "__resource"
		init = n.Declaration
	}
	w.append("$" + varName + " = $null")
	w.newline()
	w.append("try {")
	w.indent()
	w.newline()
	w.append("$" + varName + " = ")
	w.accept(init)
	w.newline()
	w.accept(n.Expression)
	w.outdent()
	w.newline()
	w.append("} finally {")
	w.indent()
	w.newline()
	w.append("if ($" + varName + ") { $" + varName + ".Dispose() }")
	w.outdent()
	w.newline()
	w.append("}")
}

func (w *FunctionWriter) VisitVariableDeclaration(n *ir.VariableDeclaration) {
	for i, v := range n.Variables {
		if i > 0 {
			w.newline()
		}
		if n.Type != "" {
			w.append(bracketType(n.Type) + " ")
		}
		w.accept(v)
	}
}

func (w *FunctionWriter) VisitVariableDeclarator(n *ir.VariableDeclarator) {
	w.append("$" + strings.TrimPrefix(n.Name, "@"))
	if n.Initializer != nil {
		w.append(" = ")
		w.accept(n.Initializer)
	}
}

// VisitDelegateDeclaration renders delegates as a comment-only marker:
// PowerShell has no declaration-site delegate-type syntax (SPEC_FULL.md
// supplement). TypeWriter inherits this unchanged.
func (w *FunctionWriter) VisitDelegateDeclaration(n *ir.DelegateDeclaration) {
	w.append("# delegate " + n.Name + "(")
	for i, p := range n.Parameters {
		if i > 0 {
			w.append(", ")
		}
		w.append(p.Type + " " + p.Name)
	}
	w.append(")")
}
