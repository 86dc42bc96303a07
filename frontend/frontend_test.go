package frontend_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"csharp2pwsh/csxtree"
	"csharp2pwsh/frontend"
	"csharp2pwsh/ir"
)

func parse(t *testing.T, src string) ir.Node {
	t.Helper()
	tree, diag, err := csxtree.Parse([]byte(src))
	require.NoError(t, err)
	require.Nil(t, diag)
	return frontend.Visit(tree)
}

func TestVisitClassWithMethod(t *testing.T) {
	root := parse(t, `
namespace Demo
{
    public class Greeter
    {
        public string Greet(string name)
        {
            return name;
        }
    }
}
`)

	ns, ok := root.(*ir.Namespace)
	require.True(t, ok)
	require.Equal(t, "Demo", ns.Name)
	require.Len(t, ns.Members, 1)

	cls, ok := ns.Members[0].(*ir.ClassDeclaration)
	require.True(t, ok)
	require.Equal(t, "Greeter", cls.Name)
	require.Contains(t, cls.Modifiers, "public")
	require.Len(t, cls.Members, 1)

	method, ok := cls.Members[0].(*ir.MethodDeclaration)
	require.True(t, ok)
	require.Equal(t, "Greet", method.Name)
	require.Equal(t, "string", method.ReturnType)
	require.Contains(t, method.Modifiers, "public")
	require.Len(t, method.Parameters, 1)
	require.Equal(t, "name", method.Parameters[0].Name)
	require.NotNil(t, method.Body)
}

func TestVisitAbstractMethodHasNoBody(t *testing.T) {
	root := parse(t, `
namespace Demo
{
    public abstract class Shape
    {
        public abstract double Area();
    }
}
`)

	ns := root.(*ir.Namespace)
	cls := ns.Members[0].(*ir.ClassDeclaration)
	method := cls.Members[0].(*ir.MethodDeclaration)
	require.Equal(t, "Area", method.Name)
	require.Nil(t, method.Body)
}

func TestVisitEnumDeclaration(t *testing.T) {
	root := parse(t, `
namespace Demo
{
    enum Color
    {
        Red,
        Green = 5,
    }
}
`)

	ns := root.(*ir.Namespace)
	enum, ok := ns.Members[0].(*ir.EnumDeclaration)
	require.True(t, ok)
	require.Equal(t, "Color", enum.Name)
	require.Len(t, enum.Members, 2)
	require.Equal(t, "Red", enum.Members[0].Name)
	require.Nil(t, enum.Members[0].Value)
	require.Equal(t, "Green", enum.Members[1].Name)
	require.NotNil(t, enum.Members[1].Value)
}

func TestVisitUsingDirectiveStripsKeywordAndSemicolon(t *testing.T) {
	root := parse(t, `
using System;

namespace Demo
{
    class Empty {}
}
`)

	ns := root.(*ir.Namespace)
	require.Len(t, ns.Usings, 1)
	require.Equal(t, "System", ns.Usings[0].Name)
}

func TestVisitAttributeNamedArgumentIsNotDropped(t *testing.T) {
	root := parse(t, `
namespace Demo
{
    [Cmdlet(VerbsCommunications.Send, "Greeting", SupportPaging = true)]
    public class Node
    {
        public abstract void Send();
    }
}
`)

	ns := root.(*ir.Namespace)
	cls := ns.Members[0].(*ir.ClassDeclaration)
	require.Len(t, cls.Attributes, 1)

	attr := cls.Attributes[0]
	require.Equal(t, "Cmdlet", attr.Name)
	require.Len(t, attr.Arguments, 3)

	named, ok := attr.Arguments[2].Expression.(*ir.RawCode)
	require.True(t, ok, "named argument should round-trip as RawCode, not silently drop the name")
	require.Equal(t, "SupportPaging = true", named.Code)
}

func TestVisitConstructorArgumentListMirrorsParameterNames(t *testing.T) {
	root := parse(t, `
namespace Demo
{
    class Point
    {
        public Point(int x, int y)
        {
        }
    }
}
`)

	ns := root.(*ir.Namespace)
	cls := ns.Members[0].(*ir.ClassDeclaration)
	ctor, ok := cls.Members[0].(*ir.Constructor)
	require.True(t, ok)
	require.Equal(t, "Point", ctor.Identifier)
	require.Len(t, ctor.ArgumentList.Arguments, 2)
	first, ok := ctor.ArgumentList.Arguments[0].Expression.(*ir.IdentifierName)
	require.True(t, ok)
	require.Equal(t, "x", first.Name)
}

func TestVisitUnrecognizedConstructCollapsesToUnknown(t *testing.T) {
	root := parse(t, `
namespace Demo
{
    class Holder
    {
        void Run()
        {
            Func<int, int> square = x => x * x;
        }
    }
}
`)

	ns := root.(*ir.Namespace)
	cls := ns.Members[0].(*ir.ClassDeclaration)
	method := cls.Members[0].(*ir.MethodDeclaration)
	require.NotNil(t, method.Body)
	require.NotEmpty(t, method.Body.Statements)
}
