// Package build implements the glue spec.md's data-flow line describes
// but leaves to "the parser → C1 → (for each file) C4 built under C5"
// prose: walking one already-parsed *ast.File, registering every
// top-level declaration into a scope.Scope (C4), and lowering every
// non-generic function body (C7) eagerly so its microstatement vector
// is ready for a backend to render. Generic function bodies stay
// unlowered in their FunctionDecl.Body until specialize.Function lowers
// them lazily at the call site that first needs them (spec §4.5).
//
// Grounded on the teacher's internal/runtime.ModuleRuntime /
// internal/module package (the file-to-environment registration pass
// that walks a parsed module's top-level declarations into bindings
// before evaluation), generalized from module-to-environment binding to
// AST-declaration-to-scope registration.
package build

import (
	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/lower"
	"github.com/alantech/alan/internal/microstatement"
	"github.com/alantech/alan/internal/optable"
	"github.com/alantech/alan/internal/scope"
	"github.com/alantech/alan/internal/typeresolve"
)

// Result is what compiling one file produces: the scope every
// declaration ended up in, and the lowered body of every non-generic
// function that was declared directly in this file (keyed by name).
type Result struct {
	Scope     *scope.Scope
	Functions map[string][]microstatement.Microstatement
}

// Compile registers file's types, consts, operator mappings, and
// function signatures into sc, then lowers every non-generic function's
// body. A type or const gated by a condition that reduces to false is
// silently skipped (spec §6.2); referencing its name later fails
// ordinary scope resolution (errcode.SCO001), which is the Fail
// sentinel's effect without needing to register a placeholder binding.
func Compile(file *ast.File, sc *scope.Scope) (*Result, error) {
	for _, op := range file.OperatorMappings {
		sc.Operators.Register(optable.Mapping{
			Fix:          optable.Fix(op.Fix),
			Level:        op.Level,
			FunctionName: op.FunctionName,
			OperatorName: op.Symbol,
		})
	}
	for _, op := range file.TypeOperatorMappings {
		sc.TypeOperators.Register(optable.Mapping{
			Fix:          optable.Fix(op.Fix),
			Level:        op.Level,
			FunctionName: op.FunctionName,
			OperatorName: op.Symbol,
		})
	}

	for _, t := range file.Types {
		ok, err := conditionHolds(t.Condition, sc)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		generics := genericSet(t.Generics)
		resolved, err := typeresolve.Resolve(t.Body, sc, generics)
		if err != nil {
			return nil, err
		}
		if len(t.Generics) > 0 {
			sc.Types[t.Name] = ctype.Generic{Name: t.Name, Params: t.Generics, Body: resolved}
		} else {
			sc.Types[t.Name] = ctype.TypeAlias{Name: t.Name, Inner: resolved}
		}
		if t.Exported {
			sc.Exports[t.Name] = scope.ExportType
		}
	}

	for _, c := range file.Consts {
		ok, err := conditionHolds(c.Condition, sc)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var declared ctype.CType = ctype.Infer{Name: "_"}
		if c.Type != nil {
			t, err := typeresolve.Resolve(c.Type, sc, nil)
			if err != nil {
				return nil, err
			}
			declared = t
		}
		sc.Consts[c.Name] = scope.ConstBinding{Type: declared, Value: c.Value}
		if c.Exported {
			sc.Exports[c.Name] = scope.ExportConst
		}
	}

	for _, f := range file.Functions {
		generics := genericSet(f.Generics)
		params := make([]ctype.CType, len(f.Params))
		for i, p := range f.Params {
			if p.Type == nil {
				params[i] = ctype.Infer{Name: "_"}
				continue
			}
			t, err := typeresolve.Resolve(p.Type, sc, generics)
			if err != nil {
				return nil, err
			}
			params[i] = t
		}
		ret := ctype.CType(ctype.Infer{Name: "_"})
		if f.ReturnType != nil {
			t, err := typeresolve.Resolve(f.ReturnType, sc, generics)
			if err != nil {
				return nil, err
			}
			ret = t
		}
		sc.Functions[f.Name] = append(sc.Functions[f.Name], &scope.FunctionDecl{
			Name:       f.Name,
			Generics:   f.Generics,
			ParamTypes: params,
			ReturnType: ret,
			Body:       f.Body,
		})
		if f.Exported {
			sc.Exports[f.Name] = scope.ExportFunction
		}
	}

	out := &Result{Scope: sc, Functions: map[string][]microstatement.Microstatement{}}
	for _, f := range file.Functions {
		if len(f.Generics) > 0 {
			continue // lowered lazily by specialize.Function at the call site
		}
		decls := sc.Functions[f.Name]
		decl := decls[len(decls)-1]
		body, err := lowerFunctionBody(f, decl, sc)
		if err != nil {
			return nil, err
		}
		out.Functions[f.Name] = body
	}
	return out, nil
}

// lowerFunctionBody seeds a fresh lowering context with f's declared
// parameters as Arg microstatements, then lowers the body. f supplies
// the source parameter names; decl supplies their resolved types.
func lowerFunctionBody(f *ast.FuncDecl, decl *scope.FunctionDecl, sc *scope.Scope) ([]microstatement.Microstatement, error) {
	ctx := lower.NewContext(sc, nil)
	for i, p := range f.Params {
		ctx.Locals[p.Name] = &microstatement.Arg{
			Name: p.Name,
			Kind: microstatement.ArgNormal,
			Type: decl.ParamTypes[i],
		}
	}
	return lower.LowerStatements(decl.Body, ctx)
}

func genericSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// conditionHolds evaluates a TypeDecl/ConstDecl's optional condition
// expression; nil means unconditional. Per spec §6.2 a condition that
// reduces to Bool(true) admits the declaration, Bool(false) skips it,
// and anything else is a type error.
func conditionHolds(cond *ast.TypeExpr, sc *scope.Scope) (bool, error) {
	if cond == nil {
		return true, nil
	}
	resolved, err := typeresolve.Resolve(cond, sc, nil)
	if err != nil {
		return false, err
	}
	b, ok := resolved.(ctype.BoolLit)
	if !ok {
		return false, errcode.WrapReport(errcode.New(errcode.TYP011, "typealgebra",
			"conditional-compilation condition did not reduce to a boolean"))
	}
	return b.Value, nil
}
