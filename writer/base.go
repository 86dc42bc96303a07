// Package writer consumes the ir package and produces formatted text.
// BaseWriter implements C-style (brace-and-semicolon) default emission for
// every ir.Visitor method; FunctionWriter and TypeWriter specialize it for
// the two PowerShell dialects (spec.md §4).
package writer

import (
	"bytes"
	"strconv"
	"strings"

	"csharp2pwsh/internal/obslog"
	"csharp2pwsh/ir"
)

// BaseWriter holds the shared formatting machinery: the builder, the
// indent stack, the operator map, and the statement-termination policy
// (spec.md §4.2). It implements ir.Visitor with C-shaped defaults that a
// hypothetical C-style target could use unmodified.
//
// self always points at the most-derived writer (a *FunctionWriter or
// *TypeWriter in practice). BaseWriter methods recurse into child IR
// nodes via child.Accept(b.self), never child.Accept(b) directly — Go has
// no virtual dispatch through struct embedding, so every recursive call
// must go through the interface to let dialect overrides take effect.
// This mirrors pdelewski-goany/compiler/base_pass.go, whose traversal
// driver holds an Emitter interface field and always calls through it
// rather than through the concrete BaseEmitter.
type BaseWriter struct {
	self ir.Visitor

	builder     bytes.Buffer
	indentDepth int
	indentUnit  string

	terminateStatementWithSemicolon bool
	operators                       map[ir.BinaryOp]string

	language ir.Language

	// inSwitch and inLiteralExpr are cross-cutting writer state threaded
	// through recursive Accept calls rather than passed as parameters,
	// matching spec.md's own description of "a flag inSwitch is set
	// across the visit" (§4.3) and the attribute-argument literal mode
	// decided in DESIGN.md's open-question resolution.
	inSwitch      bool
	inLiteralExpr bool
}

func newBaseWriter() *BaseWriter {
	return &BaseWriter{
		indentUnit: "    ",
		operators:  defaultOperatorMap(),
	}
}

func defaultOperatorMap() map[ir.BinaryOp]string {
	return map[ir.BinaryOp]string{
		ir.BinaryOpUnknown:            " <unknown-op> ",
		ir.BinaryOpNotEqual:           " != ",
		ir.BinaryOpEqual:              " == ",
		ir.BinaryOpNot:                " ! ",
		ir.BinaryOpGreaterThan:        " > ",
		ir.BinaryOpGreaterThanEqualTo: " >= ",
		ir.BinaryOpLessThan:           " < ",
		ir.BinaryOpLessThanEqualTo:    " <= ",
		ir.BinaryOpOr:                 " || ",
		ir.BinaryOpAnd:                " && ",
		ir.BinaryOpBor:                " | ",
		ir.BinaryOpMinus:              " - ",
		ir.BinaryOpPlus:               " + ",
	}
}

// run resets per-invocation state, dispatches to self, and returns the
// accumulated text. Every exported Write method on the concrete writers
// calls this with itself as self.
func (b *BaseWriter) run(self ir.Visitor, root ir.Node) string {
	b.self = self
	b.builder.Reset()
	b.indentDepth = 0
	b.inSwitch = false
	b.inLiteralExpr = false
	if root != nil {
		root.Accept(self)
	}
	obslog.Current().Debug().Int("indentDepth", b.indentDepth).Msg("writer exit")
	return b.builder.String()
}

func (b *BaseWriter) accept(n ir.Node) {
	if n == nil {
		return
	}
	n.Accept(b.self)
}

func (b *BaseWriter) append(s string) { b.builder.WriteString(s) }

// newline emits a line feed ('\n', on every platform) followed by
// indentDepth copies of the indent unit (spec.md §4.2).
func (b *BaseWriter) newline() {
	b.builder.WriteByte('\n')
	for i := 0; i < b.indentDepth; i++ {
		b.builder.WriteString(b.indentUnit)
	}
}

func (b *BaseWriter) indent() { b.indentDepth++ }

// outdent decrements the indent depth and removes one indent unit of
// trailing whitespace from the builder, so "outdent(); append(\"}\")"
// lands the brace at the prior column. This is the load-bearing contract
// spec.md §4.2 and §9 call out: every outdent must be preceded by a
// newline that emitted the deeper indent.
func (b *BaseWriter) outdent() {
	if b.indentDepth > 0 {
		b.indentDepth--
	}
	buf := b.builder.Bytes()
	if bytes.HasSuffix(buf, []byte(b.indentUnit)) {
		b.builder.Truncate(len(buf) - len(b.indentUnit))
	}
}

func (b *BaseWriter) trimTrailing(suffix string) {
	buf := b.builder.Bytes()
	if bytes.HasSuffix(buf, []byte(suffix)) {
		b.builder.Truncate(len(buf) - len(suffix))
	}
}

func asBlock(n ir.Node) *ir.Block {
	if blk, ok := n.(*ir.Block); ok {
		return blk
	}
	if n == nil {
		return &ir.Block{}
	}
	return &ir.Block{Statements: []ir.Node{n}}
}

// --- top-level containers -----------------------------------------------

func (b *BaseWriter) VisitNamespace(n *ir.Namespace) {
	for i, u := range n.Usings {
		if i > 0 {
			b.newline()
		}
		b.accept(u)
	}
	if len(n.Usings) > 0 && len(n.Members) > 0 {
		b.newline()
		b.newline()
	}
	for i, m := range n.Members {
		if i > 0 {
			b.newline()
			b.newline()
		}
		b.accept(m)
	}
}

func (b *BaseWriter) VisitUsingDirective(n *ir.UsingDirective) {
	b.append("using " + n.Name + ";")
}

func (b *BaseWriter) emitTypeHeader(keyword, name string, modifiers, bases []string) {
	if len(modifiers) > 0 {
		b.append(strings.Join(modifiers, " "))
		b.append(" ")
	}
	b.append(keyword + " " + name)
	if len(bases) > 0 {
		b.append(" : " + strings.Join(bases, ", "))
	}
}

func (b *BaseWriter) visitMembers(members []ir.Node) {
	b.append("{")
	b.indent()
	for _, m := range members {
		b.newline()
		b.accept(m)
	}
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitClassDeclaration(n *ir.ClassDeclaration) {
	b.emitTypeHeader("class", n.Name, n.Modifiers, n.Bases)
	b.newline()
	b.visitMembers(n.Members)
}

func (b *BaseWriter) VisitInterfaceDeclaration(n *ir.InterfaceDeclaration) {
	b.emitTypeHeader("interface", n.Name, n.Modifiers, n.Bases)
	b.newline()
	b.visitMembers(n.Members)
}

func (b *BaseWriter) VisitStructDeclaration(n *ir.StructDeclaration) {
	b.emitTypeHeader("struct", n.Name, n.Modifiers, n.Bases)
	b.newline()
	b.visitMembers(n.Members)
}

func (b *BaseWriter) VisitEnumDeclaration(n *ir.EnumDeclaration) {
	if len(n.Modifiers) > 0 {
		b.append(strings.Join(n.Modifiers, " ") + " ")
	}
	b.append("enum " + n.Name)
	b.newline()
	b.append("{")
	b.indent()
	for i, m := range n.Members {
		b.newline()
		b.accept(m)
		if i < len(n.Members)-1 {
			b.append(",")
		}
	}
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitEnumMember(n *ir.EnumMember) {
	b.append(n.Name)
	if n.Value != nil {
		b.append(" = ")
		b.accept(n.Value)
	}
}

func (b *BaseWriter) VisitDelegateDeclaration(n *ir.DelegateDeclaration) {
	b.append("delegate " + n.ReturnType + " " + n.Name + "(")
	b.visitParameterDecls(n.Parameters)
	b.append(");")
}

func (b *BaseWriter) visitParameterDecls(params []*ir.Parameter) {
	for i, p := range params {
		if i > 0 {
			b.append(", ")
		}
		b.accept(p)
	}
}

// --- members --------------------------------------------------------------

func (b *BaseWriter) VisitMethodDeclaration(n *ir.MethodDeclaration) {
	if len(n.Modifiers) > 0 {
		b.append(strings.Join(n.Modifiers, " ") + " ")
	}
	if n.ReturnType != "" {
		b.append(n.ReturnType + " ")
	}
	b.append(n.Name + "(")
	b.visitParameterDecls(n.Parameters)
	b.append(")")
	if n.Body == nil {
		b.append(";")
		return
	}
	b.newline()
	b.append("{")
	b.indent()
	b.accept(n.Body)
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitConstructor(n *ir.Constructor) {
	b.append(n.Identifier + "(")
	if n.ArgumentList != nil {
		b.accept(n.ArgumentList)
	}
	b.append(")")
	if n.Body == nil {
		b.append(";")
		return
	}
	b.newline()
	b.append("{")
	b.indent()
	b.accept(n.Body)
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitPropertyDeclaration(n *ir.PropertyDeclaration) {
	if len(n.Modifiers) > 0 {
		b.append(strings.Join(n.Modifiers, " ") + " ")
	}
	b.append(n.Type + " " + n.Name + " { get; set; }")
}

func (b *BaseWriter) VisitFieldDeclaration(n *ir.FieldDeclaration) {
	if len(n.Modifiers) > 0 {
		b.append(strings.Join(n.Modifiers, " ") + " ")
	}
	b.append(n.Type + " " + n.Name + ";")
}

func (b *BaseWriter) VisitParameter(n *ir.Parameter) {
	for _, m := range n.Modifiers {
		b.append(m + " ")
	}
	if n.Type != "" {
		b.append(n.Type + " ")
	}
	b.append(n.Name)
}

// --- attributes -------------------------------------------------------

func (b *BaseWriter) VisitAttribute(n *ir.Attribute) {
	b.append("[" + n.Name)
	if len(n.Arguments) > 0 {
		b.append("(")
		for i, a := range n.Arguments {
			if i > 0 {
				b.append(", ")
			}
			b.accept(a)
		}
		b.append(")")
	}
	b.append("]")
}

func (b *BaseWriter) VisitAttributeArgument(n *ir.AttributeArgument) {
	b.accept(n.Expression)
}

// --- statements -------------------------------------------------------

func (b *BaseWriter) VisitBlock(n *ir.Block) {
	for i, stmt := range n.Statements {
		if stmt == nil {
			continue
		}
		if i > 0 {
			b.newline()
		}
		b.accept(stmt)
		if b.terminateStatementWithSemicolon {
			buf := b.builder.Bytes()
			if len(buf) > 0 {
				last := buf[len(buf)-1]
				if last != '}' && last != ';' {
					b.append(";")
				}
			}
		}
	}
}

func (b *BaseWriter) VisitIf(n *ir.If) {
	b.append("if (")
	b.accept(n.Condition)
	b.append(")")
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(n.Body)
	b.outdent()
	b.newline()
	b.append("}")
	if n.ElseClause != nil {
		b.accept(n.ElseClause)
	}
}

func (b *BaseWriter) VisitElseClause(n *ir.ElseClause) {
	b.newline()
	b.append("else")
	if _, chained := n.Body.(*ir.If); chained {
		b.append(" ")
		b.accept(n.Body)
		return
	}
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(n.Body)
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) visitLoopBody(header string, statement ir.Node) {
	b.append(header)
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(asBlock(statement))
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitFor(n *ir.For) {
	b.append("for (")
	if n.Declaration != nil {
		b.accept(n.Declaration)
	}
	for i, init := range n.Initializers {
		if i > 0 {
			b.append(", ")
		}
		b.accept(init)
	}
	b.append("; ")
	b.accept(n.Condition)
	b.append("; ")
	for i, inc := range n.Incrementors {
		if i > 0 {
			b.append(", ")
		}
		b.accept(inc)
	}
	b.append(")")
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(asBlock(n.Statement))
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitForEach(n *ir.ForEach) {
	b.append("foreach (")
	b.accept(n.Identifier)
	b.append(" in ")
	b.accept(n.Expression)
	b.append(")")
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(asBlock(n.Statement))
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitWhile(n *ir.While) {
	b.append("while (")
	b.accept(n.Condition)
	b.append(")")
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(asBlock(n.Statement))
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitSwitch(n *ir.Switch) {
	b.append("switch (")
	b.accept(n.Expression)
	b.append(")")
	b.newline()
	b.append("{")
	b.indent()
	for _, s := range n.Sections {
		b.newline()
		b.accept(s)
	}
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitSwitchSection(n *ir.SwitchSection) {
	for _, label := range n.Labels {
		if id, ok := label.(*ir.IdentifierName); ok && id.Name == "default" {
			b.append("default:")
		} else {
			b.append("case ")
			b.accept(label)
			b.append(":")
		}
		b.newline()
	}
	b.indent()
	for i, s := range n.Statements {
		if i > 0 {
			b.newline()
		}
		b.accept(s)
	}
	b.outdent()
}

func (b *BaseWriter) VisitTry(n *ir.Try) {
	b.append("try")
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(n.Block)
	b.outdent()
	b.newline()
	b.append("}")
	for _, c := range n.Catches {
		b.newline()
		b.accept(c)
	}
	if n.Finally != nil {
		b.newline()
		b.accept(n.Finally)
	}
}

func (b *BaseWriter) VisitCatch(n *ir.Catch) {
	b.append("catch")
	if n.Declaration != nil {
		b.append(" ")
		b.accept(n.Declaration)
	}
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(n.Block)
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitCatchDeclaration(n *ir.CatchDeclaration) {
	b.append("(" + n.Type + ")")
}

func (b *BaseWriter) VisitFinally(n *ir.Finally) {
	b.append("finally")
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(n.Body)
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitUsingStatement(n *ir.UsingStatement) {
	b.append("using (")
	b.accept(n.Declaration)
	b.append(")")
	b.newline()
	b.append("{")
	b.indent()
	b.newline()
	b.accept(n.Expression)
	b.outdent()
	b.newline()
	b.append("}")
}

func (b *BaseWriter) VisitThrow(n *ir.Throw) {
	b.append("throw")
	if n.Operand != nil {
		b.append(" ")
		b.accept(n.Operand)
	}
	b.append(";")
}

func (b *BaseWriter) VisitBreak(n *ir.Break) { b.append("break;") }

func (b *BaseWriter) VisitContinue(n *ir.Continue) { b.append("continue;") }

func (b *BaseWriter) VisitReturn(n *ir.Return) {
	b.append("return")
	if n.Operand != nil {
		b.append(" ")
		b.accept(n.Operand)
	}
	b.append(";")
}

// --- expressions -------------------------------------------------------

func (b *BaseWriter) VisitAssignment(n *ir.Assignment) {
	b.accept(n.Left)
	b.append(" = ")
	b.accept(n.Right)
}

func (b *BaseWriter) VisitBinaryExpression(n *ir.BinaryExpression) {
	b.accept(n.Left)
	if op, ok := b.operators[n.Operator]; ok {
		b.append(op)
	} else {
		b.append(" <unknown-op> ")
	}
	b.accept(n.Right)
}

func (b *BaseWriter) VisitInvocation(n *ir.Invocation) {
	b.accept(n.Expression)
	b.append("(")
	b.accept(n.Arguments)
	b.append(")")
}

func (b *BaseWriter) VisitObjectCreation(n *ir.ObjectCreation) {
	b.append("new " + n.Type + "(")
	b.accept(n.Arguments)
	b.append(")")
}

func (b *BaseWriter) VisitArrayCreation(n *ir.ArrayCreation) {
	b.append("{ ")
	for _, e := range n.Initializer {
		b.accept(e)
		b.append(", ")
	}
	b.trimTrailing(", ")
	b.append(" }")
}

func (b *BaseWriter) VisitMemberAccess(n *ir.MemberAccess) {
	b.accept(n.Expression)
	b.append("." + n.Identifier)
}

func (b *BaseWriter) VisitIdentifierName(n *ir.IdentifierName) {
	b.append(n.Name)
}

func (b *BaseWriter) VisitTypeExpression(n *ir.TypeExpression) {
	b.append(n.TypeName)
}

func (b *BaseWriter) VisitCast(n *ir.Cast) {
	b.append("(" + n.Type + ")")
	b.accept(n.Expression)
}

func (b *BaseWriter) VisitLiteral(n *ir.Literal) {
	b.append(n.Token)
}

func (b *BaseWriter) VisitStringConstant(n *ir.StringConstant) {
	b.append(strconv.Quote(n.Value))
}

func (b *BaseWriter) VisitTemplateStringConstant(n *ir.TemplateStringConstant) {
	b.append(`$"` + n.Value + `"`)
}

func (b *BaseWriter) VisitVariableDeclaration(n *ir.VariableDeclaration) {
	if n.Type != "" {
		b.append(n.Type + " ")
	}
	for i, v := range n.Variables {
		if i > 0 {
			b.append(", ")
		}
		b.accept(v)
	}
	b.append(";")
}

func (b *BaseWriter) VisitVariableDeclarator(n *ir.VariableDeclarator) {
	b.append(n.Name)
	if n.Initializer != nil {
		b.append(" = ")
		b.accept(n.Initializer)
	}
}

func (b *BaseWriter) VisitThisExpression(n *ir.ThisExpression) { b.append("this") }

func (b *BaseWriter) VisitParenthesizedExpression(n *ir.ParenthesizedExpression) {
	b.append("(")
	b.accept(n.Operand)
	b.append(")")
}

func (b *BaseWriter) VisitPostfixUnaryExpression(n *ir.PostfixUnaryExpression) {
	b.accept(n.Operand)
	b.append("++")
}

func (b *BaseWriter) VisitPrefixUnaryExpression(n *ir.PrefixUnaryExpression) {
	b.append("++")
	b.accept(n.Operand)
}

func (b *BaseWriter) VisitArgument(n *ir.Argument) {
	b.accept(n.Expression)
}

// VisitArgumentList emits arguments separated by "," appended after each,
// then removes the trailing comma once (spec.md §4.2).
func (b *BaseWriter) VisitArgumentList(n *ir.ArgumentList) {
	for _, a := range n.Arguments {
		b.accept(a)
		b.append(",")
	}
	b.trimTrailing(",")
}

func (b *BaseWriter) VisitBracketedArgumentList(n *ir.BracketedArgumentList) {
	b.append("[")
	for _, a := range n.Arguments {
		b.accept(a)
		b.append(", ")
	}
	b.trimTrailing(", ")
	b.append("]")
}

func (b *BaseWriter) VisitRawCode(n *ir.RawCode) { b.append(n.Code) }

func (b *BaseWriter) VisitUnknown(n *ir.Unknown) { b.append(n.Message) }
