package csxtree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"csharp2pwsh/csxtree"
)

func TestParseValidSourceProducesNoDiagnostic(t *testing.T) {
	src := []byte(`
namespace Demo
{
    public class Greeter
    {
        public string Greet(string name)
        {
            return "hello " + name;
        }
    }
}
`)
	tree, diag, err := csxtree.Parse(src)
	require.NoError(t, err)
	require.Nil(t, diag)
	require.NotNil(t, tree)
	require.Equal(t, "compilation_unit", tree.Root().Kind())
}

func TestParseBrokenSourceProducesDiagnostic(t *testing.T) {
	src := []byte(`
namespace Demo
{
    public class Greeter
    {
        public string Greet(string name
    }
}
`)
	tree, diag, err := csxtree.Parse(src)
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.NotNil(t, diag)
	require.NotEmpty(t, diag.String())
}

func TestNodeNavigation(t *testing.T) {
	src := []byte(`
namespace Demo
{
    class Widget {}
}
`)
	tree, diag, err := csxtree.Parse(src)
	require.NoError(t, err)
	require.Nil(t, diag)

	root := tree.Root()
	require.NotEmpty(t, root.Children())

	var found *csxtree.Node
	for _, c := range root.NamedChildren() {
		if c.Kind() == "namespace_declaration" {
			found = c
			break
		}
	}
	require.NotNil(t, found)

	name := found.ChildByField("name")
	require.NotNil(t, name)
	require.Equal(t, "Demo", name.Text())
}
