// Package demo builds the six hand-written scenarios from spec.md §8 as
// in-memory *ast.File values, so cmd/alanc can drive internal/build.Compile
// against them without a lexer/parser (spec.md line 9 places the
// lexer/grammar out of scope for this repo). Grounded on the teacher's
// cmd/ailang's command-table idiom, generalized from "a file on disk" to
// "a named in-memory scenario" since there is no front end here to read
// a file with.
package demo

import (
	"sort"

	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/optable"
	"github.com/alantech/alan/internal/scope"
)

// Scenario is one named, self-contained demo: the scope it expects to
// start from and the file to compile against that scope.
type Scenario struct {
	Name        string
	Description string
	BaseScope   func() *scope.Scope
	File        *ast.File
}

func baseScope() *scope.Scope {
	sc := scope.New(nil)
	sc.Types["Int"] = ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}}
	sc.Types["Bool"] = ctype.TypeAlias{Name: "Bool", Inner: ctype.BoolLit{}}
	sc.Types["String"] = ctype.TypeAlias{Name: "String", Inner: ctype.StringLit{}}
	sc.Types["Void"] = ctype.Void{}
	return sc
}

func typeAtom(name string) *ast.TypeExpr {
	return &ast.TypeExpr{Tokens: []ast.TypeToken{&ast.TypeAtom{Name: name}}}
}

func intType() ctype.CType    { return ctype.TypeAlias{Name: "Int", Inner: ctype.IntLit{}} }
func boolType() ctype.CType   { return ctype.TypeAlias{Name: "Bool", Inner: ctype.BoolLit{}} }
func stringType() ctype.CType { return ctype.TypeAlias{Name: "String", Inner: ctype.StringLit{}} }

// All returns the scenario list in the order spec.md §8 presents them.
func All() []Scenario {
	return []Scenario{helloWorld(), operatorPrecedence(), conditionalCompilation(), genericTypeConstructor(), genericFunction(), overloadFailure()}
}

// Find looks a scenario up by name, matching cmd/alanc's "check <name>"
// argument. ok is false for an unrecognized name.
func Find(name string) (Scenario, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Names returns every scenario name, sorted, for usage/help output.
func Names() []string {
	names := make([]string, 0, 6)
	for _, s := range All() {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

func helloWorld() Scenario {
	sc := baseScope
	return Scenario{
		Name:        "hello",
		Description: "print('Hello, World!') lowers to a single print(String) call",
		BaseScope: func() *scope.Scope {
			s := sc()
			s.Functions["print"] = []*scope.FunctionDecl{{Name: "print", ParamTypes: []ctype.CType{stringType()}, ReturnType: ctype.Void{}}}
			return s
		},
		File: &ast.File{
			Functions: []*ast.FuncDecl{{
				Name:     "main",
				Exported: true,
				Body: []ast.Statement{
					&ast.AssignableStatement{Value: &ast.FunctionCall{
						Func: &ast.Var{Name: "print"},
						Args: []ast.Assignable{&ast.Constant{Kind: ast.StringConst, Value: "Hello, World!"}},
					}},
				},
			}},
		},
	}
}

func operatorPrecedence() Scenario {
	sc := baseScope
	return Scenario{
		Name:        "precedence",
		Description: "1 + 2 * 3 rewrites to add(1, mul(2, 3)), respecting operator levels",
		BaseScope: func() *scope.Scope {
			s := sc()
			s.Functions["add"] = []*scope.FunctionDecl{{Name: "add", ParamTypes: []ctype.CType{intType(), intType()}, ReturnType: intType()}}
			s.Functions["mul"] = []*scope.FunctionDecl{{Name: "mul", ParamTypes: []ctype.CType{intType(), intType()}, ReturnType: intType()}}
			s.Operators.Register(optable.Mapping{Fix: optable.Infix, Level: 10, FunctionName: "add", OperatorName: "+"})
			s.Operators.Register(optable.Mapping{Fix: optable.Infix, Level: 20, FunctionName: "mul", OperatorName: "*"})
			return s
		},
		File: &ast.File{
			Functions: []*ast.FuncDecl{{
				Name:       "main",
				Exported:   true,
				ReturnType: typeAtom("Int"),
				Body: []ast.Statement{
					&ast.Returns{Value: &ast.WithOperators{
						Terms:     []ast.Assignable{&ast.Constant{Kind: ast.IntConst, Value: int64(1)}, &ast.Constant{Kind: ast.IntConst, Value: int64(2)}, &ast.Constant{Kind: ast.IntConst, Value: int64(3)}},
						Operators: []string{"+", "*"},
					}},
				},
			}},
		},
	}
}

func conditionalCompilation() Scenario {
	sc := baseScope
	return Scenario{
		Name:        "conditional",
		Description: "type{false} DebugOnly = Int; is registered nowhere, per spec §6.2",
		BaseScope:   sc,
		File: &ast.File{
			Types: []*ast.TypeDecl{{
				Name:      "DebugOnly",
				Condition: &ast.TypeExpr{Tokens: []ast.TypeToken{&ast.TypeAtom{Name: "false"}}},
				Body:      typeAtom("Int"),
			}},
		},
	}
}

func genericTypeConstructor() Scenario {
	sc := baseScope
	boxInt := &ast.TypeExpr{Tokens: []ast.TypeToken{
		&ast.TypeAtom{Name: "box"},
		&ast.TypeGroupToken{Open: "{", Inner: typeAtom("Int"), Close: "}"},
	}}
	return Scenario{
		Name:        "box",
		Description: "type box{V} = val: V, set: Bool; then box{Int}(8, true) derives a constructor",
		BaseScope:   sc,
		File: &ast.File{
			Types: []*ast.TypeDecl{{
				Name:     "box",
				Generics: []string{"V"},
				Exported: true,
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
						Args: []ast.Assignable{&ast.Constant{Kind: ast.IntConst, Value: int64(8)}, &ast.Constant{Kind: ast.BoolConst, Value: true}},
					}},
				},
			}},
		},
	}
}

func genericFunction() Scenario {
	sc := baseScope
	return Scenario{
		Name:        "identity",
		Description: "fn identity{T}(x: T) -> T = x; specializes to identity_7 at the call site",
		BaseScope:   sc,
		File: &ast.File{
			Functions: []*ast.FuncDecl{
				{
					Name:       "identity",
					Generics:   []string{"T"},
					Exported:   true,
					Params:     []*ast.Param{{Name: "x", Type: typeAtom("T")}},
					ReturnType: typeAtom("T"),
					Body:       []ast.Statement{&ast.Returns{Value: &ast.Var{Name: "x"}}},
				},
				{
					Name: "main",
					Body: []ast.Statement{
						&ast.AssignableStatement{Value: &ast.FunctionCall{
							Func: &ast.Var{Name: "identity"},
							Args: []ast.Assignable{&ast.Constant{Kind: ast.IntConst, Value: int64(7)}},
						}},
					},
				},
			},
		},
	}
}

func overloadFailure() Scenario {
	sc := baseScope
	return Scenario{
		Name:        "overload-failure",
		Description: "foo(Int)->Void called with a Float argument has no matching overload",
		BaseScope: func() *scope.Scope {
			s := sc()
			s.Functions["foo"] = []*scope.FunctionDecl{{Name: "foo", ParamTypes: []ctype.CType{intType()}, ReturnType: ctype.Void{}}}
			return s
		},
		File: &ast.File{
			Functions: []*ast.FuncDecl{{
				Name: "main",
				Body: []ast.Statement{
					&ast.AssignableStatement{Value: &ast.FunctionCall{
						Func: &ast.Var{Name: "foo"},
						Args: []ast.Assignable{&ast.Constant{Kind: ast.FloatConst, Value: 1.5}},
					}},
				},
			}},
		},
	}
}
