package scope

import (
	"testing"

	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/optable"
	"github.com/stretchr/testify/require"
)

func TestResolveTypeWalksParentChain(t *testing.T) {
	root := New(nil)
	root.Types["Int64"] = ctype.Binds{Name: ctype.StringLit{Value: "i64"}}
	child := New(root)

	got, ok := child.ResolveType("Int64")
	require.True(t, ok)
	require.Equal(t, "i64", got.StrictString())

	_, ok = child.ResolveType("Missing")
	require.False(t, ok)
}

func TestResolveConstWalksParentChain(t *testing.T) {
	root := New(nil)
	root.Consts["answer"] = ConstBinding{Type: ctype.IntLit{Value: 42}}
	child := New(root)

	got, ok := child.ResolveConst("answer")
	require.True(t, ok)
	require.Equal(t, int64(42), got.Type.(ctype.IntLit).Value)
}

func TestResolveOperatorWalksParentChain(t *testing.T) {
	root := New(nil)
	root.Operators.Register(optable.Mapping{Fix: optable.Infix, Level: 10, FunctionName: "add", OperatorName: "+"})
	child := New(root)

	m, ok := child.ResolveOperator(optable.Infix, "+")
	require.True(t, ok)
	require.Equal(t, "add", m.FunctionName)

	_, ok = child.ResolveOperator(optable.Infix, "-")
	require.False(t, ok)
}

func TestResolveFunctionDirectDispatch(t *testing.T) {
	s := New(nil)
	intType := ctype.IntLit{Value: 0}
	s.Functions["double"] = []*FunctionDecl{
		{Name: "double", ParamTypes: []ctype.CType{intType}, ReturnType: intType},
	}

	decl, bound, err := s.ResolveFunction("double", []ctype.CType{ctype.IntLit{Value: 7}})
	require.NoError(t, err)
	require.Nil(t, bound)
	require.Equal(t, "double", decl.Name)
}

func TestResolveFunctionGenericInference(t *testing.T) {
	s := New(nil)
	s.Functions["identity"] = []*FunctionDecl{
		{
			Name:       "identity",
			Generics:   []string{"T"},
			ParamTypes: []ctype.CType{ctype.Infer{Name: "T"}},
			ReturnType: ctype.Infer{Name: "T"},
		},
	}

	decl, bound, err := s.ResolveFunction("identity", []ctype.CType{ctype.BoolLit{Value: true}})
	require.NoError(t, err)
	require.Equal(t, "identity", decl.Name)
	require.Equal(t, "true", bound["T"].StrictString())
}

func TestResolveFunctionGenericConflictingBindingsErrors(t *testing.T) {
	s := New(nil)
	s.Functions["pair"] = []*FunctionDecl{
		{
			Name:       "pair",
			Generics:   []string{"T"},
			ParamTypes: []ctype.CType{ctype.Infer{Name: "T"}, ctype.Infer{Name: "T"}},
			ReturnType: ctype.Infer{Name: "T"},
		},
	}

	_, _, err := s.ResolveFunction("pair", []ctype.CType{ctype.IntLit{Value: 1}, ctype.BoolLit{Value: true}})
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.GEN002, rep.Code)
}

func TestResolveFunctionNoMatchErrors(t *testing.T) {
	s := New(nil)
	_, _, err := s.ResolveFunction("nope", nil)
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.OVL001, rep.Code)
}

func TestResolveFunctionVariadicMatchesAnyArgCount(t *testing.T) {
	s := New(nil)
	intType := ctype.IntLit{Value: 0}
	s.Functions["sum"] = []*FunctionDecl{
		{Name: "sum", ParamTypes: []ctype.CType{intType}, ReturnType: intType, Variadic: true},
	}

	decl, _, err := s.ResolveFunction("sum", []ctype.CType{
		ctype.IntLit{Value: 1}, ctype.IntLit{Value: 2}, ctype.IntLit{Value: 3},
	})
	require.NoError(t, err)
	require.True(t, decl.Variadic)
}

func TestResolveFunctionFallsBackToTypeConstructorCall(t *testing.T) {
	s := New(nil)
	named := ctype.TypeAlias{Name: "Pair", Inner: ctype.NewTuple(ctype.IntLit{Value: 0}, ctype.IntLit{Value: 0})}
	s.Types["Pair"] = named

	callableName := ctype.CallableString(named)
	s.Functions[callableName] = []*FunctionDecl{
		{Name: callableName, ParamTypes: []ctype.CType{ctype.IntLit{Value: 0}, ctype.IntLit{Value: 0}}, ReturnType: named},
	}

	decl, _, err := s.ResolveFunction("Pair", []ctype.CType{ctype.IntLit{Value: 1}, ctype.IntLit{Value: 2}})
	require.NoError(t, err)
	require.Equal(t, callableName, decl.Name)
}

func TestMergeConcatenatesOverloadsAndOverwritesTypes(t *testing.T) {
	parent := New(nil)
	parent.Types["T"] = ctype.IntLit{Value: 0}
	parent.Functions["f"] = []*FunctionDecl{{Name: "f"}}

	child := New(parent)
	child.Types["T"] = ctype.BoolLit{Value: true}
	child.Functions["f"] = []*FunctionDecl{{Name: "f", Variadic: true}}

	parent.Merge(child)

	require.Equal(t, "true", parent.Types["T"].StrictString())
	require.Len(t, parent.Functions["f"], 2)
}
