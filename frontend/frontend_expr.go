package frontend

import (
	"strings"

	"csharp2pwsh/csxtree"
	"csharp2pwsh/ir"
)

func visitBlock(n *csxtree.Node) *ir.Block {
	var stmts []ir.Node
	for _, child := range n.NamedChildren() {
		stmts = append(stmts, visitNode(child))
	}
	return &ir.Block{Statements: stmts}
}

func statementOrBlock(n *csxtree.Node) ir.Node {
	if n == nil {
		return nil
	}
	return visitNode(n)
}

func visitIf(n *csxtree.Node) *ir.If {
	cond := statementOrBlock(n.ChildByField("condition"))
	body := statementOrBlock(n.ChildByField("consequence"))

	var elseClause *ir.ElseClause
	if alt := n.ChildByField("alternative"); alt != nil {
		elseClause = &ir.ElseClause{Body: visitNode(unwrapElse(alt))}
	}
	return &ir.If{Condition: cond, Body: body, ElseClause: elseClause}
}

// unwrapElse skips the synthetic "else_clause" wrapper some grammars use,
// so ElseClause.Body is either a Block, a bare statement, or (for chained
// "else if") another If — per spec.md §3.
func unwrapElse(n *csxtree.Node) *csxtree.Node {
	if n.Kind() == "else_clause" {
		if body := n.ChildByField("body"); body != nil {
			return body
		}
		named := n.NamedChildren()
		if len(named) > 0 {
			return named[len(named)-1]
		}
	}
	return n
}

func visitFor(n *csxtree.Node) *ir.For {
	var declaration ir.Node
	var initializers, incrementors []ir.Node
	var condition ir.Node
	var statement ir.Node

	if d := n.ChildByField("initializer"); d != nil {
		if d.Kind() == "variable_declaration" {
			declaration = visitVariableDeclaration(d)
		} else {
			for _, init := range d.NamedChildren() {
				initializers = append(initializers, visitExpression(init))
			}
		}
	}
	if c := n.ChildByField("condition"); c != nil {
		condition = visitExpression(c)
	}
	if u := n.ChildByField("update"); u != nil {
		for _, up := range u.NamedChildren() {
			incrementors = append(incrementors, visitExpression(up))
		}
	}
	statement = statementOrBlock(n.ChildByField("body"))

	return &ir.For{
		Declaration:  declaration,
		Initializers: initializers,
		Condition:    condition,
		Incrementors: incrementors,
		Statement:    statement,
	}
}

func visitForEach(n *csxtree.Node) *ir.ForEach {
	var identifier *ir.IdentifierName
	if left := n.ChildByField("left"); left != nil {
		identifier = &ir.IdentifierName{Name: left.Text()}
	}
	var expr ir.Node
	if right := n.ChildByField("right"); right != nil {
		expr = visitExpression(right)
	}
	statement := statementOrBlock(n.ChildByField("body"))
	return &ir.ForEach{Identifier: identifier, Expression: expr, Statement: statement}
}

func visitWhile(n *csxtree.Node) *ir.While {
	var cond ir.Node
	if c := n.ChildByField("condition"); c != nil {
		cond = visitExpression(c)
	}
	statement := statementOrBlock(n.ChildByField("body"))
	return &ir.While{Condition: cond, Statement: statement}
}

func visitSwitch(n *csxtree.Node) *ir.Switch {
	var expr ir.Node
	if v := n.ChildByField("value"); v != nil {
		expr = visitExpression(v)
	}
	var sections []*ir.SwitchSection
	for _, child := range n.NamedChildren() {
		if child.Kind() == "switch_section" {
			sections = append(sections, visitSwitchSection(child))
		}
	}
	return &ir.Switch{Expression: expr, Sections: sections}
}

func visitSwitchSection(n *csxtree.Node) *ir.SwitchSection {
	var labels []ir.Node
	var stmts []ir.Node
	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "case_switch_label":
			if v := child.ChildByField("value"); v != nil {
				labels = append(labels, visitExpression(v))
			} else if named := child.NamedChildren(); len(named) > 0 {
				labels = append(labels, visitExpression(named[0]))
			}
		case "default_switch_label":
			// The default label becomes IdentifierName("default") so
			// writers can detect it by name comparison (spec.md §4.1).
			labels = append(labels, &ir.IdentifierName{Name: "default"})
		default:
			stmts = append(stmts, visitNode(child))
		}
	}
	return &ir.SwitchSection{Labels: labels, Statements: stmts}
}

func visitTry(n *csxtree.Node) *ir.Try {
	var block *ir.Block
	var catches []*ir.Catch
	var finallyClause *ir.Finally

	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "block":
			if block == nil {
				block = visitBlock(child)
			}
		case "catch_clause":
			catches = append(catches, visitCatch(child))
		case "finally_clause":
			finallyClause = visitFinally(child)
		}
	}
	if block == nil {
		block = &ir.Block{}
	}
	return &ir.Try{Block: block, Catches: catches, Finally: finallyClause}
}

func visitCatch(n *csxtree.Node) *ir.Catch {
	var decl *ir.CatchDeclaration
	var block *ir.Block
	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "catch_declaration":
			typ := child.Text()
			if t := child.ChildByField("type"); t != nil {
				typ = t.Text()
			}
			decl = &ir.CatchDeclaration{Type: typ}
		case "block":
			block = visitBlock(child)
		}
	}
	if block == nil {
		block = &ir.Block{}
	}
	// No exception filter/declaration leaves decl nil (spec.md §4.1).
	return &ir.Catch{Declaration: decl, Block: block}
}

func visitFinally(n *csxtree.Node) *ir.Finally {
	var body *ir.Block
	for _, child := range n.NamedChildren() {
		if child.Kind() == "block" {
			body = visitBlock(child)
		}
	}
	if body == nil {
		body = &ir.Block{}
	}
	return &ir.Finally{Body: body}
}

// visitUsingStatement is the resource form "using (R = expr) stmt", not
// the directive form (spec.md §4.1).
func visitUsingStatement(n *csxtree.Node) *ir.UsingStatement {
	var declaration ir.Node
	var expression ir.Node
	for _, child := range n.NamedChildren() {
		switch child.Kind() {
		case "variable_declaration":
			declaration = visitVariableDeclaration(child)
		case "block", "if_statement", "for_statement", "foreach_statement",
			"while_statement", "expression_statement", "using_statement":
			expression = visitNode(child)
		}
	}
	if expression == nil {
		if body := n.ChildByField("body"); body != nil {
			expression = visitNode(body)
		}
	}
	return &ir.UsingStatement{Declaration: declaration, Expression: expression}
}

func visitThrow(n *csxtree.Node) *ir.Throw {
	var operand ir.Node
	named := n.NamedChildren()
	if len(named) > 0 {
		operand = visitExpression(named[0])
	}
	return &ir.Throw{Operand: operand}
}

func visitReturn(n *csxtree.Node) *ir.Return {
	var operand ir.Node
	named := n.NamedChildren()
	if len(named) > 0 {
		operand = visitExpression(named[0])
	}
	return &ir.Return{Operand: operand}
}

func visitLocalDeclaration(n *csxtree.Node) ir.Node {
	for _, child := range n.NamedChildren() {
		if child.Kind() == "variable_declaration" {
			return visitVariableDeclaration(child)
		}
	}
	return newUnknown(n)
}

func visitVariableDeclaration(n *csxtree.Node) *ir.VariableDeclaration {
	typ := ""
	if t := n.ChildByField("type"); t != nil {
		typ = t.Text()
	}
	var decls []*ir.VariableDeclarator
	for _, child := range n.NamedChildren() {
		if child.Kind() == "variable_declarator" {
			decls = append(decls, visitVariableDeclarator(child))
		}
	}
	return &ir.VariableDeclaration{Type: typ, Variables: decls}
}

func visitVariableDeclarator(n *csxtree.Node) *ir.VariableDeclarator {
	name := ""
	if nameNode := n.ChildByField("name"); nameNode != nil {
		name = nameNode.Text()
	}
	var init ir.Node
	if v := n.ChildByField("value"); v != nil {
		init = visitExpression(v)
	}
	return &ir.VariableDeclarator{Name: name, Initializer: init}
}

func visitExprStatement(n *csxtree.Node) ir.Node {
	named := n.NamedChildren()
	if len(named) == 0 {
		return newUnknown(n)
	}
	return visitExpression(named[0])
}

// visitExpression dispatches expression-kind nodes. Anything it doesn't
// recognize falls back to ir.Unknown, same as visitNode (spec.md §4.1).
func visitExpression(n *csxtree.Node) ir.Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "assignment_expression":
		return &ir.Assignment{
			Left:  visitExpression(n.ChildByField("left")),
			Right: visitExpression(n.ChildByField("right")),
		}
	case "binary_expression":
		op := ""
		if o := n.ChildByField("operator"); o != nil {
			op = o.Text()
		}
		return &ir.BinaryExpression{
			Left:     visitExpression(n.ChildByField("left")),
			Operator: operatorFromToken(op),
			Right:    visitExpression(n.ChildByField("right")),
		}
	case "invocation_expression":
		return &ir.Invocation{
			Expression: visitExpression(n.ChildByField("function")),
			Arguments:  visitArgumentList(n.ChildByField("arguments")),
		}
	case "object_creation_expression":
		typ := ""
		if t := n.ChildByField("type"); t != nil {
			typ = t.Text()
		}
		return &ir.ObjectCreation{Type: typ, Arguments: visitArgumentList(n.ChildByField("arguments"))}
	case "array_creation_expression", "implicit_array_creation_expression":
		var elts []ir.Node
		if init := n.ChildByField("initializer"); init != nil {
			for _, e := range init.NamedChildren() {
				elts = append(elts, visitExpression(e))
			}
		}
		return &ir.ArrayCreation{Initializer: elts}
	case "member_access_expression":
		name := ""
		if nameNode := n.ChildByField("name"); nameNode != nil {
			name = nameNode.Text()
		}
		return &ir.MemberAccess{
			Expression: visitExpressionOrType(n.ChildByField("expression")),
			Identifier: name,
		}
	case "identifier":
		return &ir.IdentifierName{Name: n.Text()}
	case "predefined_type", "generic_name", "qualified_name", "nullable_type", "array_type":
		return &ir.TypeExpression{TypeName: n.Text()}
	case "cast_expression":
		typ := ""
		if t := n.ChildByField("type"); t != nil {
			typ = t.Text()
		}
		return &ir.Cast{Type: typ, Expression: visitExpression(n.ChildByField("value"))}
	case "integer_literal", "real_literal", "character_literal", "null_literal", "boolean_literal":
		return &ir.Literal{Token: n.Text()}
	case "string_literal", "verbatim_string_literal", "raw_string_literal":
		return &ir.StringConstant{Value: unquoteStringLiteral(n.Text())}
	case "interpolated_string_expression":
		return &ir.TemplateStringConstant{Value: unquoteStringLiteral(n.Text())}
	case "variable_declaration":
		return visitVariableDeclaration(n)
	case "this_expression":
		return &ir.ThisExpression{}
	case "parenthesized_expression":
		named := n.NamedChildren()
		var operand ir.Node
		if len(named) > 0 {
			operand = visitExpression(named[0])
		}
		return &ir.ParenthesizedExpression{Operand: operand}
	case "postfix_unary_expression":
		if !strings.HasSuffix(n.Text(), "++") {
			return newUnknown(n)
		}
		named := n.NamedChildren()
		var operand ir.Node
		if len(named) > 0 {
			operand = visitExpression(named[0])
		}
		return &ir.PostfixUnaryExpression{Operand: operand}
	case "prefix_unary_expression":
		if !strings.HasPrefix(n.Text(), "++") {
			return newUnknown(n)
		}
		named := n.NamedChildren()
		var operand ir.Node
		if len(named) > 0 {
			operand = visitExpression(named[len(named)-1])
		}
		return &ir.PrefixUnaryExpression{Operand: operand}
	case "argument":
		expr := n
		if e := n.ChildByField("expression"); e != nil {
			expr = e
		}
		return &ir.Argument{Expression: visitExpression(expr)}
	case "argument_list":
		return visitArgumentList(n)
	case "bracketed_argument_list":
		return visitBracketedArgumentList(n)
	default:
		return newUnknown(n)
	}
}

// visitExpressionOrType handles MemberAccess.Expression, which may be a
// TypeExpression for static access (spec.md §3).
func visitExpressionOrType(n *csxtree.Node) ir.Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "identifier", "qualified_name", "generic_name", "predefined_type":
		// Ambiguous between a value reference and a static type reference
		// at the syntax level (spec.md's non-goal: no semantic analysis).
		// Front-end defaults to IdentifierName; TypeExpression is produced
		// explicitly by type-position contexts (casts, "new", generics).
		return &ir.IdentifierName{Name: n.Text()}
	default:
		return visitExpression(n)
	}
}

func visitArgumentList(n *csxtree.Node) *ir.ArgumentList {
	if n == nil {
		return &ir.ArgumentList{}
	}
	var args []*ir.Argument
	for _, child := range n.NamedChildren() {
		if child.Kind() == "argument" {
			expr := child
			if e := child.ChildByField("expression"); e != nil {
				expr = e
			}
			args = append(args, &ir.Argument{Expression: visitExpression(expr)})
		}
	}
	return &ir.ArgumentList{Arguments: args}
}

func visitBracketedArgumentList(n *csxtree.Node) *ir.BracketedArgumentList {
	var args []*ir.Argument
	for _, child := range n.NamedChildren() {
		if child.Kind() == "argument" {
			expr := child
			if e := child.ChildByField("expression"); e != nil {
				expr = e
			}
			args = append(args, &ir.Argument{Expression: visitExpression(expr)})
		}
	}
	return &ir.BracketedArgumentList{Arguments: args}
}

// operatorFromToken maps a C# operator token to the closed BinaryOp set;
// anything unrecognized becomes BinaryOpUnknown (spec.md §4.1).
func operatorFromToken(tok string) ir.BinaryOp {
	switch tok {
	case "!=":
		return ir.BinaryOpNotEqual
	case "==":
		return ir.BinaryOpEqual
	case "!":
		return ir.BinaryOpNot
	case ">":
		return ir.BinaryOpGreaterThan
	case ">=":
		return ir.BinaryOpGreaterThanEqualTo
	case "<":
		return ir.BinaryOpLessThan
	case "<=":
		return ir.BinaryOpLessThanEqualTo
	case "||":
		return ir.BinaryOpOr
	case "&&":
		return ir.BinaryOpAnd
	case "|":
		return ir.BinaryOpBor
	case "-":
		return ir.BinaryOpMinus
	case "+":
		return ir.BinaryOpPlus
	default:
		return ir.BinaryOpUnknown
	}
}

// unquoteStringLiteral strips the C# delimiter syntax ("...", @"...",
// """...""", $"...", $@"..."/@$"...") from a literal's raw source span,
// leaving only the literal's inner text. Escape sequences inside are left
// untouched — writers re-wrap the bare content in the target dialect's own
// quoting, so storing the surface delimiters on the IR node would double
// them up (spec.md §3: string fields hold the surface spelling, but the
// delimiters themselves are syntax, not content).
func unquoteStringLiteral(raw string) string {
	s := raw
	for {
		switch {
		case strings.HasPrefix(s, "$@"), strings.HasPrefix(s, "@$"):
			s = s[2:]
			continue
		case strings.HasPrefix(s, "$"), strings.HasPrefix(s, "@"):
			s = s[1:]
			continue
		}
		break
	}
	if strings.HasPrefix(s, `"""`) {
		n := 0
		for n < len(s) && s[n] == '"' {
			n++
		}
		quotes := strings.Repeat(`"`, n)
		return strings.TrimSuffix(strings.TrimPrefix(s, quotes), quotes)
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}
