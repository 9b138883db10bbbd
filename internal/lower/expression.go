package lower

import (
	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/microstatement"
	"github.com/alantech/alan/internal/optable"
	"github.com/alantech/alan/internal/scope"
	"github.com/alantech/alan/internal/specialize"
	"github.com/alantech/alan/internal/typeresolve"
)

// lowerAssignable is C7's expression chunker (spec §4.4): it rewrites
// operator chunks first, then matches the result against the recognized
// chunk shapes in the order the spec lists them.
func lowerAssignable(a ast.Assignable, ctx *Context) (microstatement.Microstatement, error) {
	if w, ok := a.(*ast.WithOperators); ok {
		return lowerOperatorChunk(w, ctx)
	}
	return lowerChunk(a, ctx)
}

func lowerOperatorChunk(w *ast.WithOperators, ctx *Context) (microstatement.Microstatement, error) {
	if len(w.Terms) == 1 {
		return lowerChunk(w.Terms[0], ctx)
	}
	toks := make([]optable.Token, 0, len(w.Terms)+len(w.Operators))
	for i, term := range w.Terms {
		toks = append(toks, optable.Token{Operand: term})
		if i < len(w.Operators) {
			toks = append(toks, optable.Token{Symbol: w.Operators[i]})
		}
	}
	result, err := optable.Rewrite(toks, ctx.Scope.EffectiveOperators())
	if err != nil {
		return nil, err
	}
	return lowerRewriteNode(result, ctx)
}

// lowerRewriteNode walks an optable.Rewrite result: a bare Assignable leaf
// or a *optable.CallNode tree built from registered operator mappings.
func lowerRewriteNode(node any, ctx *Context) (microstatement.Microstatement, error) {
	switch v := node.(type) {
	case ast.Assignable:
		return lowerChunk(v, ctx)
	case *optable.CallNode:
		args := make([]microstatement.Microstatement, len(v.Args))
		for i, raw := range v.Args {
			lowered, err := lowerRewriteNode(raw, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = lowered
		}
		return resolveAndCall(v.FunctionName, args, ctx)
	default:
		return nil, errcode.WrapReport(errcode.New(errcode.LOW002, "lower", "unrewritable operator expression node"))
	}
}

// lowerChunk matches a single non-operator Assignable against the chunk
// shapes spec §4.4 enumerates (IIFE/function-call/type-call/accessor/
// bare-literal forms); chunk recognition here is driven entirely by the
// AST node's concrete Go type, since the parser has already done the
// syntactic disambiguation the spec's prose describes.
func lowerChunk(a ast.Assignable, ctx *Context) (microstatement.Microstatement, error) {
	switch v := a.(type) {
	case *ast.Var:
		return lowerVar(v, ctx)
	case *ast.Constant:
		return lowerConstant(v, ctx)
	case *ast.Group:
		return lowerAssignable(v.Inner, ctx)
	case *ast.ArrayLiteral:
		return lowerArrayLiteral(v, ctx)
	case *ast.FunctionLiteral:
		return lowerFunctionLiteral(v, ctx)
	case *ast.FunctionCall:
		return lowerFunctionCall(v, ctx)
	case *ast.TypeCall:
		return lowerTypeCall(v, ctx)
	case *ast.ObjectLiteral:
		return lowerObjectLiteral(v, ctx)
	case *ast.ConstantAccessor:
		return lowerConstantAccessor(v, ctx)
	case *ast.ArrayAccessor:
		return lowerArrayAccessor(v, ctx)
	default:
		return nil, errcode.WrapReport(errcode.New(errcode.LOW002, "lower", "unrecognized expression chunk"))
	}
}

// lowerVar resolves a bare identifier per spec §4.4's variable-resolution
// order: local assignment/arg, then a visible function (as a first-class
// value of AnyOf its overload types), then a visible constant (lowered
// inline as an anonymous Assignment), else a fatal name error.
func lowerVar(v *ast.Var, ctx *Context) (microstatement.Microstatement, error) {
	if local, ok := ctx.Locals[v.Name]; ok {
		return &microstatement.Value{Node: ctx.node(), Type: local.GetType(), Representation: v.Name}, nil
	}
	if overloads := ctx.Scope.ResolveFunctionTypes(v.Name); len(overloads) > 0 {
		types := make([]ctype.CType, len(overloads))
		for i, decl := range overloads {
			input := ctype.CType(ctype.Void{})
			if len(decl.ParamTypes) > 0 {
				input = ctype.NewTuple(decl.ParamTypes...)
			}
			types[i] = ctype.Function{Input: input, Output: decl.ReturnType}
		}
		return &microstatement.Value{Node: ctx.node(), Type: ctype.NewAnyOf(types...), Representation: v.Name}, nil
	}
	if c, ok := ctx.Scope.ResolveConst(v.Name); ok {
		value, err := lowerAssignable(c.Value, ctx)
		if err != nil {
			return nil, err
		}
		name := ctx.anonName()
		assign := &microstatement.Assignment{Node: ctx.node(), Mutable: false, Name: name, Value: value}
		ctx.Locals[name] = assign
		return &microstatement.Value{Node: ctx.node(), Type: assign.GetType(), Representation: name}, nil
	}
	return nil, errcode.WrapReport(errcode.New(errcode.SCO001, "lower", "undeclared variable "+v.Name))
}

func lowerConstant(c *ast.Constant, ctx *Context) (microstatement.Microstatement, error) {
	var t ctype.CType
	switch c.Kind {
	case ast.IntConst:
		t = ctype.IntLit{Value: c.Value.(int64)}
	case ast.FloatConst:
		t = ctype.FloatLit{Value: c.Value.(float64)}
	case ast.BoolConst:
		t = ctype.BoolLit{Value: c.Value.(bool)}
	case ast.StringConst:
		t = ctype.StringLit{Value: c.Value.(string)}
	default:
		return nil, errcode.WrapReport(errcode.New(errcode.LOW002, "lower", "unknown constant kind"))
	}
	return &microstatement.Value{Node: ctx.node(), Type: t, Representation: c.String()}, nil
}

// lowerArrayLiteral requires N >= 1 (spec §4.4), synthesizes Array{T} from
// the first element's type, and registers the synthesized name in scope
// so later type-checking sees it as an ordinary named type.
func lowerArrayLiteral(a *ast.ArrayLiteral, ctx *Context) (microstatement.Microstatement, error) {
	if len(a.Elements) == 0 {
		return nil, errcode.WrapReport(errcode.New(errcode.LOW001, "lower", "array literal must have at least one element"))
	}
	vals := make([]microstatement.Microstatement, len(a.Elements))
	for i, e := range a.Elements {
		lowered, err := lowerAssignable(e, ctx)
		if err != nil {
			return nil, err
		}
		vals[i] = lowered
	}
	elemType := vals[0].GetType()
	arrType := ctype.Array{Inner: elemType}
	name := "Array_" + ctype.CallableString(elemType) + "_"
	ctx.Scope.Types[name] = arrType
	return &microstatement.Array{Node: ctx.node(), Type: arrType, Vals: vals}, nil
}

// lowerFunctionLiteral lowers a bare closure in a fresh child scope seeded
// with Arg microstatements for each parameter (spec §4.4's closure rule).
func lowerFunctionLiteral(f *ast.FunctionLiteral, ctx *Context) (microstatement.Microstatement, error) {
	child := scopeChild(ctx)

	paramTypes := make([]ctype.CType, len(f.Params))
	for i, p := range f.Params {
		pt, err := resolveParamType(p.Type, child)
		if err != nil {
			return nil, err
		}
		paramTypes[i] = pt
		arg := &microstatement.Arg{Node: child.node(), Name: p.Name, Kind: microstatement.ArgNormal, Type: pt}
		child.Locals[p.Name] = arg
	}

	body, err := LowerStatements(f.Body, child)
	if err != nil {
		return nil, err
	}
	inferred := bodyReturnType(body)

	retType := inferred
	if f.ReturnType != nil {
		declared, err := typeresolve.Resolve(f.ReturnType, child.Scope, child.Generics)
		if err != nil {
			return nil, err
		}
		if _, isInfer := declared.(ctype.Infer); !isInfer && declared.StrictString() != inferred.StrictString() {
			return nil, errcode.WrapReport(errcode.New(errcode.LOW003, "lower",
				"closure return type mismatch").With("declared", declared.StrictString()).With("inferred", inferred.StrictString()))
		}
		retType = declared
	}

	input := ctype.CType(ctype.Void{})
	if len(paramTypes) > 0 {
		input = ctype.NewTuple(paramTypes...)
	}

	fn := &microstatement.Function{
		Name: ctx.anonName(),
		Type: ctype.Function{Input: input, Output: retType},
		Body: body,
		Kind: microstatement.Normal,
	}
	return &microstatement.Closure{Node: ctx.node(), Function: fn}, nil
}

func resolveParamType(t *ast.TypeExpr, ctx *Context) (ctype.CType, error) {
	if t == nil {
		return ctype.Infer{Name: "_"}, nil
	}
	return typeresolve.Resolve(t, ctx.Scope, ctx.Generics)
}

// lowerFunctionCall lowers call arguments left-to-right, prefers a
// same-name closure already bound in this scope, then a variable holding
// a function value, and otherwise resolves the call through the scope's
// overload table.
func lowerFunctionCall(f *ast.FunctionCall, ctx *Context) (microstatement.Microstatement, error) {
	args, err := lowerArgs(f.Args, ctx)
	if err != nil {
		return nil, err
	}

	if callee, ok := f.Func.(*ast.Var); ok {
		if local, ok := ctx.Locals[callee.Name]; ok {
			if closure, ok := local.(*microstatement.Closure); ok && shapeMatches(closure.Function.Type, args) {
				return &microstatement.FnCall{
					Node:       ctx.node(),
					Function:   callee.Name,
					Args:       args,
					ReturnType: closure.Function.Type.(ctype.Function).Output,
				}, nil
			}
			if fnType, ok := local.GetType().(ctype.Function); ok && shapeMatches(fnType, args) {
				return &microstatement.VarCall{Node: ctx.node(), Name: callee.Name, Type: fnType, Args: args}, nil
			}
		}
		return resolveAndCall(callee.Name, args, ctx)
	}

	callee, err := lowerAssignable(f.Func, ctx)
	if err != nil {
		return nil, err
	}
	fnType, ok := callee.GetType().(ctype.Function)
	if !ok {
		return nil, errcode.WrapReport(errcode.New(errcode.LOW002, "lower", "call target is not a function value"))
	}
	return &microstatement.VarCall{Node: ctx.node(), Name: callee.String(), Type: fnType, Args: args}, nil
}

func lowerArgs(exprs []ast.Assignable, ctx *Context) ([]microstatement.Microstatement, error) {
	args := make([]microstatement.Microstatement, len(exprs))
	for i, e := range exprs {
		lowered, err := lowerAssignable(e, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = lowered
	}
	return args, nil
}

func shapeMatches(fnType ctype.CType, args []microstatement.Microstatement) bool {
	fn, ok := fnType.(ctype.Function)
	if !ok {
		return false
	}
	want := ctype.UnpackArgs(fn.Input)
	if len(want) != len(args) {
		return false
	}
	for i, w := range want {
		if !ctype.Accepts(w, args[i].GetType()) {
			return false
		}
	}
	return true
}

// resolveAndCall resolves name against argument types via scope overload
// dispatch, specializing a matched generic overload if needed (C8). The
// arguments are passed through as lowered: no argument representation is
// coerced to the resolved parameter type, neither for function-valued
// arguments nor for literals.
func resolveAndCall(name string, args []microstatement.Microstatement, ctx *Context) (microstatement.Microstatement, error) {
	argTypes := make([]ctype.CType, len(args))
	for i, a := range args {
		argTypes[i] = a.GetType()
	}
	decl, bound, err := ctx.Scope.ResolveFunction(name, argTypes)
	if err != nil {
		return nil, err
	}
	if len(bound) == 0 {
		return &microstatement.FnCall{
			Node:       ctx.node(),
			Function:   name,
			Args:       args,
			ReturnType: decl.ReturnType,
		}, nil
	}

	fn, specName, err := specialize.Function(decl, bound, ctx.Scope, func(body []ast.Statement, sc *scope.Scope) ([]microstatement.Microstatement, ctype.CType, error) {
		child := ctx.Child(sc)
		lowered, err := LowerStatements(body, child)
		if err != nil {
			return nil, nil, err
		}
		return lowered, bodyReturnType(lowered), nil
	})
	if err != nil {
		return nil, err
	}
	return &microstatement.FnCall{
		Node:       ctx.node(),
		Function:   specName,
		Args:       args,
		ReturnType: fn.Type.(ctype.Function).Output,
	}, nil
}

// lowerTypeCall synthesizes a concrete type from a generic constructor
// call (`SomeType{params}(args)`, spec §4.4), deriving its constructor
// and accessor functions (spec §4.5.1) before resolving the constructor
// call the same way an ordinary function call is resolved.
func lowerTypeCall(t *ast.TypeCall, ctx *Context) (microstatement.Microstatement, error) {
	raw, err := typeresolve.Resolve(t.Type, ctx.Scope, ctx.Generics)
	if err != nil {
		return nil, err
	}
	_, callableName, err := specialize.EnsureType(raw, ctx.Scope)
	if err != nil {
		return nil, err
	}
	args, err := lowerArgs(t.Args, ctx)
	if err != nil {
		return nil, err
	}
	return resolveAndCall(callableName, args, ctx)
}

// lowerObjectLiteral resolves a type-struct literal's constructor by
// name, positional args first (array form) then field args (struct form).
func lowerObjectLiteral(o *ast.ObjectLiteral, ctx *Context) (microstatement.Microstatement, error) {
	var args []microstatement.Microstatement
	if len(o.Positional) > 0 {
		lowered, err := lowerArgs(o.Positional, ctx)
		if err != nil {
			return nil, err
		}
		args = lowered
	} else {
		args = make([]microstatement.Microstatement, len(o.Fields))
		for i, field := range o.Fields {
			lowered, err := lowerAssignable(field.Value, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = lowered
		}
	}
	return resolveAndCall(o.TypeName, args, ctx)
}

// lowerConstantAccessor desugars `x.name` into a call `name(x)` (spec §4.4).
func lowerConstantAccessor(c *ast.ConstantAccessor, ctx *Context) (microstatement.Microstatement, error) {
	base, err := lowerAssignable(c.Base, ctx)
	if err != nil {
		return nil, err
	}
	return resolveAndCall(c.Name, []microstatement.Microstatement{base}, ctx)
}

// lowerArrayAccessor desugars `arr[i]` into a call `get(arr, i)` (spec §4.4).
func lowerArrayAccessor(a *ast.ArrayAccessor, ctx *Context) (microstatement.Microstatement, error) {
	base, err := lowerAssignable(a.Base, ctx)
	if err != nil {
		return nil, err
	}
	idx, err := lowerAssignable(a.Index, ctx)
	if err != nil {
		return nil, err
	}
	return resolveAndCall("get", []microstatement.Microstatement{base, idx}, ctx)
}
