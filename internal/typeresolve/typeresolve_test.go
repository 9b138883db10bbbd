package typeresolve

import (
	"testing"

	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/optable"
	"github.com/alantech/alan/internal/scope"
	"github.com/stretchr/testify/require"
)

func atom(name string) ast.TypeToken    { return &ast.TypeAtom{Name: name} }
func opTok(sym string) ast.TypeToken    { return &ast.TypeOperatorToken{Symbol: sym} }
func group(open string, inner ...ast.TypeToken) ast.TypeToken {
	return &ast.TypeGroupToken{Open: open, Inner: &ast.TypeExpr{Tokens: inner}, Close: closeFor(open)}
}
func closeFor(open string) string {
	if open == "{" {
		return "}"
	}
	return ")"
}
func exprOf(tokens ...ast.TypeToken) *ast.TypeExpr { return &ast.TypeExpr{Tokens: tokens} }

func TestResolveLiteralAtoms(t *testing.T) {
	sc := scope.New(nil)
	got, err := Resolve(exprOf(atom("42")), sc, nil)
	require.NoError(t, err)
	require.Equal(t, int64(42), got.(ctype.IntLit).Value)

	got, err = Resolve(exprOf(atom("true")), sc, nil)
	require.NoError(t, err)
	require.Equal(t, true, got.(ctype.BoolLit).Value)

	got, err = Resolve(exprOf(atom(`"hi"`)), sc, nil)
	require.NoError(t, err)
	require.Equal(t, "hi", got.(ctype.StringLit).Value)
}

func TestResolveGenericParamBecomesInfer(t *testing.T) {
	sc := scope.New(nil)
	got, err := Resolve(exprOf(atom("T")), sc, map[string]bool{"T": true})
	require.NoError(t, err)
	require.Equal(t, "T", got.(ctype.Infer).Name)
}

func TestResolveUnknownIdentifierErrors(t *testing.T) {
	sc := scope.New(nil)
	_, err := Resolve(exprOf(atom("Nope")), sc, nil)
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.SCO001, rep.Code)
}

func TestResolveFieldList(t *testing.T) {
	// bar: string, baz: bool
	sc := scope.New(nil)
	sc.Types["string"] = ctype.TypeAlias{Name: "string", Inner: ctype.StringLit{}}
	sc.Types["bool"] = ctype.TypeAlias{Name: "bool", Inner: ctype.BoolLit{}}

	expr := exprOf(
		atom("bar"), opTok(":"), atom("string"), opTok(","),
		atom("baz"), opTok(":"), atom("bool"),
	)
	got, err := Resolve(expr, sc, nil)
	require.NoError(t, err)

	tup, ok := got.(ctype.Tuple)
	require.True(t, ok)
	require.Len(t, tup.Members, 2)
	f0, ok := tup.Members[0].(ctype.Field)
	require.True(t, ok)
	require.Equal(t, "bar", f0.Label)
}

func TestResolveIntrinsicArithmeticCall(t *testing.T) {
	sc := scope.New(nil)
	got, err := Resolve(exprOf(atom("Add"), group("{", atom("1"), opTok(","), atom("2"))), sc, nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), got.(ctype.IntLit).Value)
}

func TestResolveArrayIntrinsicGeneric(t *testing.T) {
	sc := scope.New(nil)
	sc.Types["Int"] = ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}
	got, err := Resolve(exprOf(atom("Array"), group("{", atom("Int"))), sc, nil)
	require.NoError(t, err)
	arr, ok := got.(ctype.Array)
	require.True(t, ok)
	require.Equal(t, "Int", arr.Inner.StrictString())
}

func TestResolveUserGenericBinds(t *testing.T) {
	sc := scope.New(nil)
	sc.Types["Box"] = ctype.Generic{Name: "Box", Params: []string{"V"}, Body: ctype.Infer{Name: "V"}}
	sc.Types["Int"] = ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}

	got, err := Resolve(exprOf(atom("Box"), group("{", atom("Int"))), sc, nil)
	require.NoError(t, err)
	b, ok := got.(ctype.Binds)
	require.True(t, ok)
	require.Equal(t, "Box", b.Name.StrictString())
	require.Len(t, b.Args, 1)
}

func TestResolveParenGroupWrapsInGroup(t *testing.T) {
	sc := scope.New(nil)
	sc.Types["Int"] = ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}
	got, err := Resolve(exprOf(group("(", atom("Int"))), sc, nil)
	require.NoError(t, err)
	g, ok := got.(ctype.Group)
	require.True(t, ok)
	require.Equal(t, "Int", g.Inner.StrictString())
}

func TestResolveOperatorRewriteViaScopeTypeOperators(t *testing.T) {
	sc := scope.New(nil)
	sc.TypeOperators.Register(optable.Mapping{Fix: optable.Infix, Level: 10, FunctionName: "Either", OperatorName: "|"})
	sc.Types["Int"] = ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}
	sc.Types["Bool"] = ctype.TypeAlias{Name: "Bool", Inner: ctype.BoolLit{}}

	got, err := Resolve(exprOf(atom("Int"), opTok("|"), atom("Bool")), sc, nil)
	require.NoError(t, err)
	e, ok := got.(ctype.Either)
	require.True(t, ok)
	require.Len(t, e.Members, 2)
}

func TestResolveEnvIntrinsic(t *testing.T) {
	sc := scope.New(nil)
	ctype.SetEnvLookup(func(k string) (string, bool) {
		if k == "ALAN_TEST" {
			return "present", true
		}
		return "", false
	})
	defer ctype.SetEnvLookup(nil)

	got, err := Resolve(exprOf(atom("Env"), group("{", atom(`"ALAN_TEST"`))), sc, nil)
	require.NoError(t, err)
	require.Equal(t, "present", got.(ctype.StringLit).Value)
}
