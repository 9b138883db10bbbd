package build

import (
	"testing"

	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/microstatement"
	"github.com/alantech/alan/internal/optable"
	"github.com/alantech/alan/internal/scope"
	"github.com/alantech/alan/internal/specialize"
	"github.com/stretchr/testify/require"
)

var (
	intType    = ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}
	boolType   = ctype.TypeAlias{Name: "Bool", Inner: ctype.BoolLit{}}
	stringType = ctype.TypeAlias{Name: "String", Inner: ctype.StringLit{}}
	voidType   = ctype.CType(ctype.Void{})
)

func baseScope() *scope.Scope {
	sc := scope.New(nil)
	sc.Types["Int"] = intType
	sc.Types["Bool"] = boolType
	sc.Types["String"] = stringType
	return sc
}

func strConst(s string) *ast.Constant { return &ast.Constant{Kind: ast.StringConst, Value: s} }
func intConst(v int64) *ast.Constant  { return &ast.Constant{Kind: ast.IntConst, Value: v} }
func typeAtom(name string) *ast.TypeExpr {
	return &ast.TypeExpr{Tokens: []ast.TypeToken{&ast.TypeAtom{Name: name}}}
}

// TestCompileHelloWorldLowersPrintCall models spec §8 scenario 1:
// `export fn main = print('Hello, World!');`
func TestCompileHelloWorldLowersPrintCall(t *testing.T) {
	sc := baseScope()
	sc.Functions["print"] = []*scope.FunctionDecl{{
		Name:       "print",
		ParamTypes: []ctype.CType{stringType},
		ReturnType: voidType,
	}}

	file := &ast.File{
		Functions: []*ast.FuncDecl{{
			Name: "main",
			Body: []ast.Statement{
				&ast.AssignableStatement{Value: &ast.FunctionCall{
					Func: &ast.Var{Name: "print"},
					Args: []ast.Assignable{strConst("Hello, World!")},
				}},
			},
			Exported: true,
		}},
	}

	res, err := Compile(file, sc)
	require.NoError(t, err)
	body := res.Functions["main"]
	require.Len(t, body, 1)
	fc, ok := body[0].(*microstatement.FnCall)
	require.True(t, ok)
	require.Equal(t, "print", fc.Function)
	require.Equal(t, scope.ExportFunction, sc.Exports["main"])
}

// TestCompileOperatorPrecedence models spec §8 scenario 2: `1 + 2 * 3`
// must rewrite to `add(1, mul(2, 3))`, not `mul(add(1,2), 3)`.
func TestCompileOperatorPrecedence(t *testing.T) {
	sc := baseScope()
	sc.Functions["add"] = []*scope.FunctionDecl{{Name: "add", ParamTypes: []ctype.CType{intType, intType}, ReturnType: intType}}
	sc.Functions["mul"] = []*scope.FunctionDecl{{Name: "mul", ParamTypes: []ctype.CType{intType, intType}, ReturnType: intType}}
	sc.Operators.Register(optable.Mapping{Fix: optable.Infix, Level: 10, FunctionName: "add", OperatorName: "+"})
	sc.Operators.Register(optable.Mapping{Fix: optable.Infix, Level: 20, FunctionName: "mul", OperatorName: "*"})

	file := &ast.File{
		Functions: []*ast.FuncDecl{{
			Name:       "main",
			ReturnType: typeAtom("Int"),
			Body: []ast.Statement{
				&ast.Returns{Value: &ast.WithOperators{
					Terms:     []ast.Assignable{intConst(1), intConst(2), intConst(3)},
					Operators: []string{"+", "*"},
				}},
			},
		}},
	}

	res, err := Compile(file, sc)
	require.NoError(t, err)
	body := res.Functions["main"]
	require.Len(t, body, 1)
	ret, ok := body[0].(*microstatement.Return)
	require.True(t, ok)
	outer, ok := ret.Value.(*microstatement.FnCall)
	require.True(t, ok)
	require.Equal(t, "add", outer.Function)
	require.Len(t, outer.Args, 2)
	inner, ok := outer.Args[1].(*microstatement.FnCall)
	require.True(t, ok)
	require.Equal(t, "mul", inner.Function)
}

// TestCompileConditionalTypeSkipsFalseBranch models spec §8 scenario 3:
// a `type{cond}` whose condition reduces to false is skipped entirely.
func TestCompileConditionalTypeSkipsFalseBranch(t *testing.T) {
	sc := baseScope()
	falseCond := &ast.TypeExpr{Tokens: []ast.TypeToken{&ast.TypeAtom{Name: "false"}}}

	file := &ast.File{
		Types: []*ast.TypeDecl{{
			Name:      "DebugOnly",
			Condition: falseCond,
			Body:      typeAtom("Int"),
		}},
	}

	_, err := Compile(file, sc)
	require.NoError(t, err)
	_, ok := sc.Types["DebugOnly"]
	require.False(t, ok)
}

// TestCompileGenericTypeConstructor models spec §8 scenario 4:
// `type box{V} = val: V, set: bool;` then `box{Int}(8, true)`.
func TestCompileGenericTypeConstructor(t *testing.T) {
	sc := baseScope()

	boxInt := &ast.TypeExpr{Tokens: []ast.TypeToken{
		&ast.TypeAtom{Name: "box"},
		&ast.TypeGroupToken{Open: "{", Inner: typeAtom("Int"), Close: "}"},
	}}

	file := &ast.File{
		Types: []*ast.TypeDecl{{
			Name:     "box",
			Generics: []string{"V"},
			Body: &ast.TypeExpr{Tokens: []ast.TypeToken{
				&ast.TypeAtom{Name: "val"}, &ast.TypeOperatorToken{Symbol: ":"}, &ast.TypeAtom{Name: "V"},
				&ast.TypeOperatorToken{Symbol: ","},
				&ast.TypeAtom{Name: "set"}, &ast.TypeOperatorToken{Symbol: ":"}, &ast.TypeAtom{Name: "Bool"},
			}},
		}},
		Functions: []*ast.FuncDecl{{
			Name: "main",
			Body: []ast.Statement{
				&ast.AssignableStatement{Value: &ast.TypeCall{
					Type: boxInt,
					Args: []ast.Assignable{intConst(8), &ast.Constant{Kind: ast.BoolConst, Value: true}},
				}},
			},
		}},
	}

	res, err := Compile(file, sc)
	require.NoError(t, err)
	body := res.Functions["main"]
	require.Len(t, body, 1)
	fc, ok := body[0].(*microstatement.FnCall)
	require.True(t, ok)
	require.Contains(t, fc.Function, "box")
	require.Len(t, fc.Args, 2)

	ctor, _, err := sc.ResolveFunction(fc.Function, []ctype.CType{intType, boolType})
	require.NoError(t, err)
	require.Len(t, ctor.ParamTypes, 2)
}

// TestCompileGenericFunctionSpecialization models spec §8 scenario 5:
// `fn identity{T}(x: T) -> T = x;` specializes per call-site argument type.
func TestCompileGenericFunctionSpecialization(t *testing.T) {
	specialize.Reset()
	sc := baseScope()

	file := &ast.File{
		Functions: []*ast.FuncDecl{
			{
				Name:       "identity",
				Generics:   []string{"T"},
				Params:     []*ast.Param{{Name: "x", Type: typeAtom("T")}},
				ReturnType: typeAtom("T"),
				Body:       []ast.Statement{&ast.Returns{Value: &ast.Var{Name: "x"}}},
			},
			{
				Name: "main",
				Body: []ast.Statement{
					&ast.AssignableStatement{Value: &ast.FunctionCall{
						Func: &ast.Var{Name: "identity"},
						Args: []ast.Assignable{intConst(7)},
					}},
				},
			},
		},
	}

	res, err := Compile(file, sc)
	require.NoError(t, err)
	body := res.Functions["main"]
	require.Len(t, body, 1)
	fc, ok := body[0].(*microstatement.FnCall)
	require.True(t, ok)
	require.Equal(t, "identity_7", fc.Function)
}

// TestCompileOverloadFailureReportsDiagnostic models spec §8 scenario 6:
// calling a declared function with an argument type no overload accepts
// surfaces errcode.OVL001.
func TestCompileOverloadFailureReportsDiagnostic(t *testing.T) {
	sc := baseScope()
	sc.Functions["foo"] = []*scope.FunctionDecl{{Name: "foo", ParamTypes: []ctype.CType{intType}, ReturnType: voidType}}

	file := &ast.File{
		Functions: []*ast.FuncDecl{{
			Name: "main",
			Body: []ast.Statement{
				&ast.AssignableStatement{Value: &ast.FunctionCall{
					Func: &ast.Var{Name: "foo"},
					Args: []ast.Assignable{&ast.Constant{Kind: ast.FloatConst, Value: 1.5}},
				}},
			},
		}},
	}

	_, err := Compile(file, sc)
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.OVL001, rep.Code)
}
