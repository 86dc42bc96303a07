package writer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"csharp2pwsh/ir"
	"csharp2pwsh/writer"
)

func TestFunctionWriterOperatorRewrite(t *testing.T) {
	root := &ir.If{
		Condition: &ir.BinaryExpression{
			Left:     &ir.IdentifierName{Name: "A"},
			Operator: ir.BinaryOpEqual,
			Right:    &ir.IdentifierName{Name: "B"},
		},
		Body: &ir.Block{Statements: []ir.Node{
			&ir.Assignment{Left: &ir.IdentifierName{Name: "result"}, Right: &ir.Literal{Token: "1"}},
		}},
	}

	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	require.Contains(t, text, "$this.A -eq $this.B")
	require.Contains(t, text, "$result = 1")
	require.NotContains(t, text, "==")
}

func TestFunctionWriterCastWithGeneric(t *testing.T) {
	root := &ir.Cast{Type: "List<int>", Expression: &ir.IdentifierName{Name: "items"}}

	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	require.Equal(t, "[List[int]]$items", text)
}

func TestFunctionWriterObjectCreationWithArgs(t *testing.T) {
	root := &ir.ObjectCreation{
		Type: "Foo",
		Arguments: &ir.ArgumentList{Arguments: []*ir.Argument{
			{Expression: &ir.Literal{Token: "1"}},
			{Expression: &ir.Literal{Token: "2"}},
		}},
	}

	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	require.Equal(t, "(New-Object -TypeName Foo -ArgumentList 1,2)", text)
}

func TestFunctionWriterObjectCreationNoArgs(t *testing.T) {
	root := &ir.ObjectCreation{Type: "Foo", Arguments: &ir.ArgumentList{}}

	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	require.Equal(t, "(New-Object -TypeName Foo)", text)
}

func TestTypeWriterObjectCreation(t *testing.T) {
	root := &ir.ObjectCreation{
		Type: "Foo",
		Arguments: &ir.ArgumentList{Arguments: []*ir.Argument{
			{Expression: &ir.Literal{Token: "1"}},
			{Expression: &ir.Literal{Token: "2"}},
		}},
	}

	text, err := writer.NewTypeWriter().Write(root)
	require.NoError(t, err)
	require.Equal(t, "[Foo]::new(1,2)", text)
}

func TestFunctionWriterUsingResourceLowersToTryFinally(t *testing.T) {
	root := &ir.UsingStatement{
		Declaration: &ir.VariableDeclaration{
			Type: "S",
			Variables: []*ir.VariableDeclarator{
				{Name: "s", Initializer: &ir.ObjectCreation{Type: "S", Arguments: &ir.ArgumentList{}}},
			},
		},
		Expression: &ir.Block{Statements: []ir.Node{
			&ir.Invocation{
				Expression: &ir.MemberAccess{Expression: &ir.IdentifierName{Name: "s"}, Identifier: "Go"},
				Arguments:  &ir.ArgumentList{},
			},
		}},
	}

	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	require.Contains(t, text, "$s = $null")
	require.Contains(t, text, "$s = (New-Object -TypeName S)")
	require.Contains(t, text, "$s.Go()")
	require.Contains(t, text, "finally {")
	require.Contains(t, text, "$s.Dispose()")
}

func TestTypeWriterClassWithAttribute(t *testing.T) {
	root := &ir.ClassDeclaration{
		Name: "Node",
		Attributes: []*ir.Attribute{{
			Name: "Cmdlet",
			Arguments: []*ir.AttributeArgument{
				{Expression: &ir.MemberAccess{Expression: &ir.IdentifierName{Name: "VerbsCommunications"}, Identifier: "Send"}},
				{Expression: &ir.StringConstant{Value: "Greeting"}},
				{Expression: &ir.RawCode{Code: "SupportPaging = true"}},
			},
		}},
		Members: []ir.Node{
			&ir.MethodDeclaration{Name: "Send", ReturnType: "void"},
		},
	}

	text, err := writer.NewTypeWriter().Write(root)
	require.NoError(t, err)
	require.Contains(t, text, "[Cmdlet(VerbsCommunications.Send, 'Greeting', SupportPaging = true)]")
	require.Contains(t, text, "class Node")
	require.Contains(t, text, "hidden Send()")
	require.NotContains(t, text, "[void]")
	require.Contains(t, text, `throw [NotImplementedException]"not implemented"`)
	require.True(t, strings.Count(text, "{") == strings.Count(text, "}"))
}

func TestTypeWriterConstructorWithNilBodyThrowsNotImplemented(t *testing.T) {
	root := &ir.Constructor{Identifier: "Node", ArgumentList: &ir.ArgumentList{}}

	text, err := writer.NewTypeWriter().Write(root)
	require.NoError(t, err)
	require.Contains(t, text, "# Constructor")
	require.Contains(t, text, "Node()")
	require.Contains(t, text, `throw [NotImplementedException]"not implemented"`)
}

func TestBaseWriterArgumentListElidesTrailingComma(t *testing.T) {
	root := &ir.ArgumentList{Arguments: []*ir.Argument{
		{Expression: &ir.Literal{Token: "1"}},
		{Expression: &ir.Literal{Token: "2"}},
	}}
	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	require.Equal(t, "1,2", text)
	require.False(t, strings.HasSuffix(text, ","))
}

func TestFunctionWriterSwitchDefaultOnlyAndBreakNoOp(t *testing.T) {
	root := &ir.Switch{
		Expression: &ir.IdentifierName{Name: "x"},
		Sections: []*ir.SwitchSection{
			{
				Labels:     []ir.Node{&ir.IdentifierName{Name: "default"}},
				Statements: []ir.Node{&ir.Break{}},
			},
		},
	}

	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	require.Contains(t, text, "default {")
	require.NotContains(t, text, "break")
}

func TestFunctionWriterLiteralPrefixesDollarSigil(t *testing.T) {
	text, err := writer.NewFunctionWriter().Write(&ir.Literal{Token: "true"})
	require.NoError(t, err)
	require.Equal(t, "$true", text)

	text, err = writer.NewFunctionWriter().Write(&ir.Literal{Token: "null"})
	require.NoError(t, err)
	require.Equal(t, "$null", text)
}

func TestFunctionWriterStripsLeadingAtOnIdentifier(t *testing.T) {
	text, err := writer.NewFunctionWriter().Write(&ir.IdentifierName{Name: "@class"})
	require.NoError(t, err)
	require.Equal(t, "$class", text)

	text, err = writer.NewFunctionWriter().Write(&ir.IdentifierName{Name: "@Class"})
	require.NoError(t, err)
	require.Equal(t, "$this.Class", text)
}

func TestFunctionWriterStripsLeadingAtOnParameterAndVariableDeclarator(t *testing.T) {
	text, err := writer.NewFunctionWriter().Write(&ir.Parameter{Name: "@class", Type: "string"})
	require.NoError(t, err)
	require.Equal(t, "[string] $class", text)

	text, err = writer.NewFunctionWriter().Write(&ir.VariableDeclarator{Name: "@class"})
	require.NoError(t, err)
	require.Equal(t, "$class", text)
}

func TestTypeWriterStripsLeadingAtOnParameter(t *testing.T) {
	text, err := writer.NewTypeWriter().Write(&ir.Parameter{Name: "@class", Type: "string"})
	require.NoError(t, err)
	require.Equal(t, "[string] $class", text)
}

func TestWriterIndentReturnsToZeroAfterClass(t *testing.T) {
	root := &ir.ClassDeclaration{Name: "Empty"}
	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	lastLine := text[strings.LastIndex(text, "\n")+1:]
	require.Equal(t, "}", lastLine)
}

func TestTypeWriterEnumIsNewlineSeparated(t *testing.T) {
	root := &ir.EnumDeclaration{
		Name: "Color",
		Members: []*ir.EnumMember{
			{Name: "Red"},
			{Name: "Green", Value: &ir.Literal{Token: "1"}},
		},
	}
	text, err := writer.NewTypeWriter().Write(root)
	require.NoError(t, err)
	require.Contains(t, text, "enum Color")
	require.Contains(t, text, "Red")
	require.Contains(t, text, "Green = 1")
	require.NotContains(t, text, "Red,")
}

func TestFunctionWriterDelegateRendersAsComment(t *testing.T) {
	root := &ir.DelegateDeclaration{Name: "Callback", ReturnType: "void", Parameters: []*ir.Parameter{
		{Name: "code", Type: "int"},
	}}
	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	require.Equal(t, "# delegate Callback(int code)", text)
}

func TestFunctionWriterPInvokeEmitsAddTypeAndForwardingCall(t *testing.T) {
	root := &ir.MethodDeclaration{
		Name:       "MessageBox",
		ReturnType: "int",
		Modifiers:  []string{"public", "static", "extern"},
		Attributes: []*ir.Attribute{{Name: "DllImport", Arguments: []*ir.AttributeArgument{
			{Expression: &ir.StringConstant{Value: "user32.dll"}},
		}}},
		Parameters: []*ir.Parameter{
			{Name: "hWnd", Type: "IntPtr"},
			{Name: "text", Type: "string"},
		},
		OriginalSource: "public static extern int MessageBox(IntPtr hWnd, string text);",
	}

	text, err := writer.NewFunctionWriter().Write(root)
	require.NoError(t, err)
	require.Contains(t, text, `Add-Type -TypeDefinition @"`)
	require.Contains(t, text, "public static class PInvoke")
	require.Contains(t, text, "public static extern int MessageBox(IntPtr hWnd, string text);")
	require.Contains(t, text, "function MessageBox {")
	require.Contains(t, text, "[PInvoke]::MessageBox($hWnd, $text)")
}

func TestIsPInvokeRequiresBothExternAndDllImport(t *testing.T) {
	externOnly := &ir.MethodDeclaration{Name: "Foo", Modifiers: []string{"extern"}}
	text, err := writer.NewFunctionWriter().Write(externOnly)
	require.NoError(t, err)
	require.Contains(t, text, "function Foo {")
	require.NotContains(t, text, "Add-Type")
}
