package lower

import (
	"testing"

	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/microstatement"
	"github.com/alantech/alan/internal/scope"
	"github.com/alantech/alan/internal/specialize"
	"github.com/stretchr/testify/require"
)

func intConst(v int64) *ast.Constant { return &ast.Constant{Kind: ast.IntConst, Value: v} }
func varRef(name string) *ast.Var    { return &ast.Var{Name: name} }

func baseScope() *scope.Scope {
	sc := scope.New(nil)
	sc.Types["Int"] = ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}
	sc.Types["Bool"] = ctype.TypeAlias{Name: "Bool", Inner: ctype.BoolLit{}}
	return sc
}

func TestLowerDeclarationAndReturn(t *testing.T) {
	sc := baseScope()
	stmts := []ast.Statement{
		&ast.Declaration{Mutable: false, Name: "x", Value: intConst(41)},
		&ast.Returns{Value: varRef("x")},
	}
	ctx := NewContext(sc, nil)
	out, err := LowerStatements(stmts, ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assign, ok := out[0].(*microstatement.Assignment)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name)
	require.Equal(t, int64(41), assign.GetType().(ctype.IntLit).Value)

	ret, ok := out[1].(*microstatement.Return)
	require.True(t, ok)
	require.Equal(t, int64(41), ret.GetType().(ctype.IntLit).Value)
}

func TestLowerReassignmentToConstErrors(t *testing.T) {
	sc := baseScope()
	stmts := []ast.Statement{
		&ast.Declaration{Mutable: false, Name: "x", Value: intConst(1)},
		&ast.Assignment{Name: "x", Value: intConst(2)},
	}
	ctx := NewContext(sc, nil)
	_, err := LowerStatements(stmts, ctx)
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.LOW004, rep.Code)
}

func TestLowerUndeclaredVariableErrors(t *testing.T) {
	sc := baseScope()
	ctx := NewContext(sc, nil)
	_, err := LowerStatements([]ast.Statement{&ast.Returns{Value: varRef("nope")}}, ctx)
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.SCO001, rep.Code)
}

func TestLowerArrayLiteralSynthesizesArrayType(t *testing.T) {
	sc := baseScope()
	ctx := NewContext(sc, nil)
	lit := &ast.ArrayLiteral{Elements: []ast.Assignable{intConst(1), intConst(2), intConst(3)}}
	ms, err := lowerAssignable(lit, ctx)
	require.NoError(t, err)
	arr, ok := ms.(*microstatement.Array)
	require.True(t, ok)
	require.Len(t, arr.Vals, 3)
	_, ok = sc.Types["Array_1_"]
	require.True(t, ok)
}

func TestLowerEmptyArrayLiteralErrors(t *testing.T) {
	sc := baseScope()
	ctx := NewContext(sc, nil)
	_, err := lowerAssignable(&ast.ArrayLiteral{}, ctx)
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.LOW001, rep.Code)
}

func TestLowerFunctionCallDirectDispatch(t *testing.T) {
	sc := baseScope()
	sc.Functions["double"] = []*scope.FunctionDecl{{
		Name:       "double",
		ParamTypes: []ctype.CType{ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}},
		ReturnType: ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}},
	}}
	ctx := NewContext(sc, nil)
	call := &ast.FunctionCall{Func: varRef("double"), Args: []ast.Assignable{intConst(21)}}
	ms, err := lowerAssignable(call, ctx)
	require.NoError(t, err)
	fc, ok := ms.(*microstatement.FnCall)
	require.True(t, ok)
	require.Equal(t, "double", fc.Function)
	require.Len(t, fc.Args, 1)
}

func TestLowerFunctionCallGenericSpecialization(t *testing.T) {
	specialize.Reset()
	sc := baseScope()
	sc.Functions["identity"] = []*scope.FunctionDecl{{
		Name:       "identity",
		Generics:   []string{"T"},
		ParamTypes: []ctype.CType{ctype.Infer{Name: "T"}},
		ReturnType: ctype.Infer{Name: "T"},
	}}
	ctx := NewContext(sc, nil)
	call := &ast.FunctionCall{Func: varRef("identity"), Args: []ast.Assignable{intConst(7)}}
	ms, err := lowerAssignable(call, ctx)
	require.NoError(t, err)
	fc, ok := ms.(*microstatement.FnCall)
	require.True(t, ok)
	require.Equal(t, "identity_7", fc.Function)
	require.Equal(t, int64(7), fc.ReturnType.(ctype.IntLit).Value)
}

func TestLowerArrayAccessorDesugarsToGet(t *testing.T) {
	sc := baseScope()
	sc.Functions["get"] = []*scope.FunctionDecl{{
		Name: "get",
		ParamTypes: []ctype.CType{
			ctype.Array{Inner: ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}},
			ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}},
		},
		ReturnType: ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}},
	}}
	ctx := NewContext(sc, nil)
	lit := &ast.ArrayLiteral{Elements: []ast.Assignable{intConst(1)}}
	litMs, err := lowerAssignable(lit, ctx)
	require.NoError(t, err)
	ctx.Locals["arr"] = &microstatement.Assignment{Mutable: false, Name: "arr", Value: litMs}

	accessor := &ast.ArrayAccessor{Base: varRef("arr"), Index: intConst(0)}
	ms, err := lowerAssignable(accessor, ctx)
	require.NoError(t, err)
	fc, ok := ms.(*microstatement.FnCall)
	require.True(t, ok)
	require.Equal(t, "get", fc.Function)
}

func TestLowerConstantAccessorDesugarsToNamedCall(t *testing.T) {
	sc := baseScope()
	sc.Functions["length"] = []*scope.FunctionDecl{{
		Name:       "length",
		ParamTypes: []ctype.CType{ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}},
		ReturnType: ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}},
	}}
	ctx := NewContext(sc, nil)
	accessor := &ast.ConstantAccessor{Base: intConst(3), Name: "length"}
	ms, err := lowerAssignable(accessor, ctx)
	require.NoError(t, err)
	fc, ok := ms.(*microstatement.FnCall)
	require.True(t, ok)
	require.Equal(t, "length", fc.Function)
}

func TestLowerConditionalDesugarsToCondCall(t *testing.T) {
	sc := baseScope()
	sc.Functions["cond"] = []*scope.FunctionDecl{{
		Name: "cond",
		ParamTypes: []ctype.CType{
			ctype.TypeAlias{Name: "Bool", Inner: ctype.BoolLit{}},
			ctype.Function{Input: ctype.Void{}, Output: ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}},
			ctype.Function{Input: ctype.Void{}, Output: ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}},
		},
		ReturnType: ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}},
	}}
	ctx := NewContext(sc, nil)
	c := &ast.Conditional{
		Cond: &ast.Constant{Kind: ast.BoolConst, Value: true},
		Then: []ast.Statement{&ast.Returns{Value: intConst(1)}},
		Else: []ast.Statement{&ast.Returns{Value: intConst(2)}},
	}
	out, err := lowerStatement(c, ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	fc, ok := out[0].(*microstatement.FnCall)
	require.True(t, ok)
	require.Equal(t, "cond", fc.Function)
	require.Len(t, fc.Args, 3)
	_, ok = fc.Args[1].(*microstatement.Closure)
	require.True(t, ok)
}

func TestLowerFunctionLiteralClosure(t *testing.T) {
	sc := baseScope()
	ctx := NewContext(sc, nil)
	lit := &ast.FunctionLiteral{
		Params: []*ast.Param{{Name: "n", Type: &ast.TypeExpr{Tokens: []ast.TypeToken{&ast.TypeAtom{Name: "Int"}}}}},
		Body:   []ast.Statement{&ast.Returns{Value: varRef("n")}},
	}
	ms, err := lowerAssignable(lit, ctx)
	require.NoError(t, err)
	closure, ok := ms.(*microstatement.Closure)
	require.True(t, ok)
	fnType, ok := closure.Function.Type.(ctype.Function)
	require.True(t, ok)
	require.Equal(t, "Int", fnType.Output.StrictString())
}
