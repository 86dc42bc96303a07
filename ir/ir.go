// Package ir defines the intermediate representation produced by the
// front-end and consumed by the writers: a closed set of node variants
// with no behavior beyond double-dispatch plumbing.
package ir

// Node is implemented by every IR variant. The unexported marker method
// keeps the set closed to this package, so a Visitor switch here is the
// only place a new variant can be introduced.
type Node interface {
	Accept(v Visitor)
	irNode()
}

type node struct{}

func (node) irNode() {}

// Language identifies which writer produced (or should produce) a text.
// Writers read it only for self-identification; it carries no behavior.
type Language int

const (
	PowerShell Language = iota
	PowerShell5
)

func (l Language) String() string {
	switch l {
	case PowerShell:
		return "PowerShell"
	case PowerShell5:
		return "PowerShell5"
	default:
		return "Unknown"
	}
}

// BinaryOp is the closed set of binary operators the front-end recognizes.
// Anything outside this set collapses to BinaryOpUnknown.
type BinaryOp int

const (
	BinaryOpUnknown BinaryOp = iota
	BinaryOpNotEqual
	BinaryOpEqual
	BinaryOpNot
	BinaryOpGreaterThan
	BinaryOpGreaterThanEqualTo
	BinaryOpLessThan
	BinaryOpLessThanEqualTo
	BinaryOpOr
	BinaryOpAnd
	BinaryOpBor
	BinaryOpMinus
	BinaryOpPlus
)

// Visitor has one method per IR variant. Adding a variant without adding
// its method here is a compile error everywhere the interface is embedded
// or implemented, which is the exhaustiveness guarantee spec.md asks for.
type Visitor interface {
	VisitNamespace(n *Namespace)
	VisitUsingDirective(n *UsingDirective)
	VisitClassDeclaration(n *ClassDeclaration)
	VisitInterfaceDeclaration(n *InterfaceDeclaration)
	VisitStructDeclaration(n *StructDeclaration)
	VisitEnumDeclaration(n *EnumDeclaration)
	VisitEnumMember(n *EnumMember)
	VisitDelegateDeclaration(n *DelegateDeclaration)
	VisitMethodDeclaration(n *MethodDeclaration)
	VisitConstructor(n *Constructor)
	VisitPropertyDeclaration(n *PropertyDeclaration)
	VisitFieldDeclaration(n *FieldDeclaration)
	VisitParameter(n *Parameter)
	VisitAttribute(n *Attribute)
	VisitAttributeArgument(n *AttributeArgument)
	VisitBlock(n *Block)
	VisitIf(n *If)
	VisitElseClause(n *ElseClause)
	VisitFor(n *For)
	VisitForEach(n *ForEach)
	VisitWhile(n *While)
	VisitSwitch(n *Switch)
	VisitSwitchSection(n *SwitchSection)
	VisitTry(n *Try)
	VisitCatch(n *Catch)
	VisitCatchDeclaration(n *CatchDeclaration)
	VisitFinally(n *Finally)
	VisitUsingStatement(n *UsingStatement)
	VisitThrow(n *Throw)
	VisitBreak(n *Break)
	VisitContinue(n *Continue)
	VisitReturn(n *Return)
	VisitAssignment(n *Assignment)
	VisitBinaryExpression(n *BinaryExpression)
	VisitInvocation(n *Invocation)
	VisitObjectCreation(n *ObjectCreation)
	VisitArrayCreation(n *ArrayCreation)
	VisitMemberAccess(n *MemberAccess)
	VisitIdentifierName(n *IdentifierName)
	VisitTypeExpression(n *TypeExpression)
	VisitCast(n *Cast)
	VisitLiteral(n *Literal)
	VisitStringConstant(n *StringConstant)
	VisitTemplateStringConstant(n *TemplateStringConstant)
	VisitVariableDeclaration(n *VariableDeclaration)
	VisitVariableDeclarator(n *VariableDeclarator)
	VisitThisExpression(n *ThisExpression)
	VisitParenthesizedExpression(n *ParenthesizedExpression)
	VisitPostfixUnaryExpression(n *PostfixUnaryExpression)
	VisitPrefixUnaryExpression(n *PrefixUnaryExpression)
	VisitArgument(n *Argument)
	VisitArgumentList(n *ArgumentList)
	VisitBracketedArgumentList(n *BracketedArgumentList)
	VisitRawCode(n *RawCode)
	VisitUnknown(n *Unknown)
}

// --- Top-level containers ---------------------------------------------

type Namespace struct {
	node
	Name    string
	Usings  []*UsingDirective
	Members []Node
}

func (n *Namespace) Accept(v Visitor) { v.VisitNamespace(n) }

type UsingDirective struct {
	node
	Name string
}

func (n *UsingDirective) Accept(v Visitor) { v.VisitUsingDirective(n) }

// --- Type declarations ---------------------------------------------------

type ClassDeclaration struct {
	node
	Name       string
	Modifiers  []string
	Attributes []*Attribute
	Bases      []string
	Members    []Node
}

func (n *ClassDeclaration) Accept(v Visitor) { v.VisitClassDeclaration(n) }

type InterfaceDeclaration struct {
	node
	Name       string
	Modifiers  []string
	Attributes []*Attribute
	Bases      []string
	Members    []Node
}

func (n *InterfaceDeclaration) Accept(v Visitor) { v.VisitInterfaceDeclaration(n) }

// StructDeclaration shares ClassDeclaration's shape; C# structs and classes
// share a front-end grammar node family and PowerShell 5 has no value-type
// class distinction worth modeling. Added beyond spec.md's table (SPEC_FULL.md).
type StructDeclaration struct {
	node
	Name       string
	Modifiers  []string
	Attributes []*Attribute
	Bases      []string
	Members    []Node
}

func (n *StructDeclaration) Accept(v Visitor) { v.VisitStructDeclaration(n) }

// EnumDeclaration and EnumMember are added beyond spec.md's table
// (SPEC_FULL.md) since PowerShell 5 has a first-class enum keyword.
type EnumDeclaration struct {
	node
	Name       string
	Modifiers  []string
	Attributes []*Attribute
	Members    []*EnumMember
}

func (n *EnumDeclaration) Accept(v Visitor) { v.VisitEnumDeclaration(n) }

type EnumMember struct {
	node
	Name  string
	Value Node // nil when unvalued
}

func (n *EnumMember) Accept(v Visitor) { v.VisitEnumMember(n) }

// DelegateDeclaration is added beyond spec.md's table (SPEC_FULL.md).
type DelegateDeclaration struct {
	node
	Name       string
	ReturnType string
	Parameters []*Parameter
}

func (n *DelegateDeclaration) Accept(v Visitor) { v.VisitDelegateDeclaration(n) }

// --- Members --------------------------------------------------------------

type MethodDeclaration struct {
	node
	Name           string
	ReturnType     string
	Modifiers      []string
	Attributes     []*Attribute
	Parameters     []*Parameter
	Body           *Block // nil for abstract/extern methods
	OriginalSource string // retained verbatim for P/Invoke rendering
}

func (n *MethodDeclaration) Accept(v Visitor) { v.VisitMethodDeclaration(n) }

type Constructor struct {
	node
	Identifier   string
	ArgumentList *ArgumentList
	Body         *Block
}

func (n *Constructor) Accept(v Visitor) { v.VisitConstructor(n) }

type PropertyDeclaration struct {
	node
	Name      string
	Type      string
	Modifiers []string
}

func (n *PropertyDeclaration) Accept(v Visitor) { v.VisitPropertyDeclaration(n) }

type FieldDeclaration struct {
	node
	Name      string
	Type      string
	Modifiers []string
}

func (n *FieldDeclaration) Accept(v Visitor) { v.VisitFieldDeclaration(n) }

type Parameter struct {
	node
	Name      string
	Type      string
	Modifiers []string // "ref", "out"
}

func (n *Parameter) Accept(v Visitor) { v.VisitParameter(n) }

// --- Attributes -------------------------------------------------------

type Attribute struct {
	node
	Name      string
	Arguments []*AttributeArgument
}

func (n *Attribute) Accept(v Visitor) { v.VisitAttribute(n) }

type AttributeArgument struct {
	node
	Expression Node
}

func (n *AttributeArgument) Accept(v Visitor) { v.VisitAttributeArgument(n) }

// --- Statements -------------------------------------------------------

type Block struct {
	node
	Statements []Node
}

func (n *Block) Accept(v Visitor) { v.VisitBlock(n) }

type If struct {
	node
	Condition  Node
	Body       Node
	ElseClause *ElseClause // nil when absent
}

func (n *If) Accept(v Visitor) { v.VisitIf(n) }

// ElseClause.Body may itself be an *If, modeling a chained "else if".
type ElseClause struct {
	node
	Body Node
}

func (n *ElseClause) Accept(v Visitor) { v.VisitElseClause(n) }

type For struct {
	node
	Declaration  Node // nil when absent
	Initializers []Node
	Condition    Node
	Incrementors []Node
	Statement    Node
}

func (n *For) Accept(v Visitor) { v.VisitFor(n) }

type ForEach struct {
	node
	Identifier *IdentifierName
	Expression Node
	Statement  Node
}

func (n *ForEach) Accept(v Visitor) { v.VisitForEach(n) }

type While struct {
	node
	Condition Node
	Statement Node
}

func (n *While) Accept(v Visitor) { v.VisitWhile(n) }

type Switch struct {
	node
	Expression Node
	Sections   []*SwitchSection
}

func (n *Switch) Accept(v Visitor) { v.VisitSwitch(n) }

// SwitchSection.Labels holds IdentifierName("default") for the default
// label, so writers detect it by name comparison rather than a separate
// bool flag (spec.md §4.1).
type SwitchSection struct {
	node
	Labels     []Node
	Statements []Node
}

func (n *SwitchSection) Accept(v Visitor) { v.VisitSwitchSection(n) }

type Try struct {
	node
	Block   *Block
	Catches []*Catch
	Finally *Finally // nil when absent
}

func (n *Try) Accept(v Visitor) { v.VisitTry(n) }

type Catch struct {
	node
	Declaration *CatchDeclaration // nil when no exception type/declaration
	Block       *Block
}

func (n *Catch) Accept(v Visitor) { v.VisitCatch(n) }

type CatchDeclaration struct {
	node
	Type string
}

func (n *CatchDeclaration) Accept(v Visitor) { v.VisitCatchDeclaration(n) }

type Finally struct {
	node
	Body *Block
}

func (n *Finally) Accept(v Visitor) { v.VisitFinally(n) }

// UsingStatement is the resource form ("using (R = expr) stmt"), distinct
// from UsingDirective (the "using X.Y;" import form).
type UsingStatement struct {
	node
	Declaration Node
	Expression  Node
}

func (n *UsingStatement) Accept(v Visitor) { v.VisitUsingStatement(n) }

type Throw struct {
	node
	Operand Node // nil for a bare "throw;"
}

func (n *Throw) Accept(v Visitor) { v.VisitThrow(n) }

type Break struct{ node }

func (n *Break) Accept(v Visitor) { v.VisitBreak(n) }

type Continue struct{ node }

func (n *Continue) Accept(v Visitor) { v.VisitContinue(n) }

type Return struct {
	node
	Operand Node // nil for a bare "return;"
}

func (n *Return) Accept(v Visitor) { v.VisitReturn(n) }

// --- Expressions -------------------------------------------------------

type Assignment struct {
	node
	Left  Node
	Right Node
}

func (n *Assignment) Accept(v Visitor) { v.VisitAssignment(n) }

type BinaryExpression struct {
	node
	Left     Node
	Operator BinaryOp
	Right    Node
}

func (n *BinaryExpression) Accept(v Visitor) { v.VisitBinaryExpression(n) }

type Invocation struct {
	node
	Expression Node
	Arguments  *ArgumentList
}

func (n *Invocation) Accept(v Visitor) { v.VisitInvocation(n) }

type ObjectCreation struct {
	node
	Type      string
	Arguments *ArgumentList
}

func (n *ObjectCreation) Accept(v Visitor) { v.VisitObjectCreation(n) }

type ArrayCreation struct {
	node
	Initializer []Node
}

func (n *ArrayCreation) Accept(v Visitor) { v.VisitArrayCreation(n) }

// MemberAccess.Expression may be a *TypeExpression, signaling static access.
type MemberAccess struct {
	node
	Expression Node
	Identifier string
}

func (n *MemberAccess) Accept(v Visitor) { v.VisitMemberAccess(n) }

type IdentifierName struct {
	node
	Name string
}

func (n *IdentifierName) Accept(v Visitor) { v.VisitIdentifierName(n) }

type TypeExpression struct {
	node
	TypeName string
}

func (n *TypeExpression) Accept(v Visitor) { v.VisitTypeExpression(n) }

type Cast struct {
	node
	Type       string
	Expression Node
}

func (n *Cast) Accept(v Visitor) { v.VisitCast(n) }

type Literal struct {
	node
	Token string
}

func (n *Literal) Accept(v Visitor) { v.VisitLiteral(n) }

type StringConstant struct {
	node
	Value string
}

func (n *StringConstant) Accept(v Visitor) { v.VisitStringConstant(n) }

type TemplateStringConstant struct {
	node
	Value string
}

func (n *TemplateStringConstant) Accept(v Visitor) { v.VisitTemplateStringConstant(n) }

type VariableDeclaration struct {
	node
	Type      string
	Variables []*VariableDeclarator
}

func (n *VariableDeclaration) Accept(v Visitor) { v.VisitVariableDeclaration(n) }

type VariableDeclarator struct {
	node
	Name        string
	Initializer Node // nil when absent
}

func (n *VariableDeclarator) Accept(v Visitor) { v.VisitVariableDeclarator(n) }

type ThisExpression struct{ node }

func (n *ThisExpression) Accept(v Visitor) { v.VisitThisExpression(n) }

type ParenthesizedExpression struct {
	node
	Operand Node
}

func (n *ParenthesizedExpression) Accept(v Visitor) { v.VisitParenthesizedExpression(n) }

// PostfixUnaryExpression and PrefixUnaryExpression model "++" only, per
// spec.md §3.
type PostfixUnaryExpression struct {
	node
	Operand Node
}

func (n *PostfixUnaryExpression) Accept(v Visitor) { v.VisitPostfixUnaryExpression(n) }

type PrefixUnaryExpression struct {
	node
	Operand Node
}

func (n *PrefixUnaryExpression) Accept(v Visitor) { v.VisitPrefixUnaryExpression(n) }

type Argument struct {
	node
	Expression Node
}

func (n *Argument) Accept(v Visitor) { v.VisitArgument(n) }

type ArgumentList struct {
	node
	Arguments []*Argument
}

func (n *ArgumentList) Accept(v Visitor) { v.VisitArgumentList(n) }

type BracketedArgumentList struct {
	node
	Arguments []*Argument
}

func (n *BracketedArgumentList) Accept(v Visitor) { v.VisitBracketedArgumentList(n) }

// RawCode is the escape hatch for passthrough text that the front-end
// decided not to model structurally.
type RawCode struct {
	node
	Code string
}

func (n *RawCode) Accept(v Visitor) { v.VisitRawCode(n) }

// Unknown is always a terminal (spec.md §3, invariant iv) and carries a
// non-empty, human-readable message.
type Unknown struct {
	node
	Message string
}

func (n *Unknown) Accept(v Visitor) { v.VisitUnknown(n) }
