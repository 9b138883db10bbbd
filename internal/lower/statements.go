package lower

import (
	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/microstatement"
)

// LowerStatements lowers a function (or closure) body in order, spec §4.4.
// The returned slice is the flat microstatement vector a backend renders
// directly; ctx accumulates locals as it goes so later statements see
// earlier bindings.
func LowerStatements(stmts []ast.Statement, ctx *Context) ([]microstatement.Microstatement, error) {
	var out []microstatement.Microstatement
	for _, stmt := range stmts {
		lowered, err := lowerStatement(stmt, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}
	return out, nil
}

func lowerStatement(stmt ast.Statement, ctx *Context) ([]microstatement.Microstatement, error) {
	switch s := stmt.(type) {
	case *ast.Declaration:
		return lowerDeclaration(s, ctx)
	case *ast.Assignment:
		return lowerReassignment(s, ctx)
	case *ast.ArrayAssignment:
		return lowerArrayAssignment(s, ctx)
	case *ast.Returns:
		return lowerReturn(s, ctx)
	case *ast.Conditional:
		return lowerConditional(s, ctx)
	case *ast.AssignableStatement:
		ms, err := lowerAssignable(s.Value, ctx)
		if err != nil {
			return nil, err
		}
		return []microstatement.Microstatement{ms}, nil
	default:
		return nil, errcode.WrapReport(errcode.New(errcode.LOW002, "lower", "unsupported statement shape"))
	}
}

func lowerDeclaration(d *ast.Declaration, ctx *Context) ([]microstatement.Microstatement, error) {
	value, err := lowerAssignable(d.Value, ctx)
	if err != nil {
		return nil, err
	}
	assign := &microstatement.Assignment{
		Node:    ctx.node(),
		Mutable: d.Mutable,
		Name:    d.Name,
		Value:   value,
	}
	ctx.Locals[d.Name] = assign
	return []microstatement.Microstatement{assign}, nil
}

func lowerReassignment(a *ast.Assignment, ctx *Context) ([]microstatement.Microstatement, error) {
	existing, ok := ctx.Locals[a.Name]
	if !ok {
		return nil, errcode.WrapReport(errcode.New(errcode.SCO001, "lower",
			"assignment to undeclared variable "+a.Name))
	}
	if ea, ok := existing.(*microstatement.Assignment); ok && !ea.Mutable {
		return nil, errcode.WrapReport(errcode.New(errcode.LOW004, "lower",
			"cannot reassign immutable binding "+a.Name))
	}
	value, err := lowerAssignable(a.Value, ctx)
	if err != nil {
		return nil, err
	}
	assign := &microstatement.Assignment{
		Node:    ctx.node(),
		Mutable: true,
		Name:    a.Name,
		Value:   value,
	}
	ctx.Locals[a.Name] = assign
	return []microstatement.Microstatement{assign}, nil
}

func lowerArrayAssignment(a *ast.ArrayAssignment, ctx *Context) ([]microstatement.Microstatement, error) {
	arr, err := lowerAssignable(a.Array, ctx)
	if err != nil {
		return nil, err
	}
	idx, err := lowerAssignable(a.Index, ctx)
	if err != nil {
		return nil, err
	}
	val, err := lowerAssignable(a.Value, ctx)
	if err != nil {
		return nil, err
	}
	return emitCall(ctx, "store", []microstatement.Microstatement{arr, idx, val})
}

func lowerReturn(r *ast.Returns, ctx *Context) ([]microstatement.Microstatement, error) {
	if r.Value == nil {
		return []microstatement.Microstatement{&microstatement.Return{Node: ctx.node()}}, nil
	}
	value, err := lowerAssignable(r.Value, ctx)
	if err != nil {
		return nil, err
	}
	return []microstatement.Microstatement{&microstatement.Return{Node: ctx.node(), Value: value}}, nil
}

// lowerConditional desugars `if cond { then } else { other }` into a call
// to the library `cond` function taking the condition and two
// zero-argument closures, per the decision recorded in DESIGN.md: the
// core IR has no native branch node (spec §4.4/§9), so branching is
// ordinary higher-order function application.
func lowerConditional(c *ast.Conditional, ctx *Context) ([]microstatement.Microstatement, error) {
	condVal, err := lowerAssignable(c.Cond, ctx)
	if err != nil {
		return nil, err
	}
	thenClosure, err := lowerBranchClosure(c.Then, ctx)
	if err != nil {
		return nil, err
	}
	elseClosure, err := lowerBranchClosure(c.Else, ctx)
	if err != nil {
		return nil, err
	}
	return emitCall(ctx, "cond", []microstatement.Microstatement{condVal, thenClosure, elseClosure})
}

func lowerBranchClosure(body []ast.Statement, ctx *Context) (microstatement.Microstatement, error) {
	child := scopeChild(ctx)
	inner, err := LowerStatements(body, child)
	if err != nil {
		return nil, err
	}
	retType := bodyReturnType(inner)
	fn := &microstatement.Function{
		Name: ctx.anonName(),
		Type: ctype.Function{Input: emptyTuple(), Output: retType},
		Body: inner,
		Kind: microstatement.Normal,
	}
	return &microstatement.Closure{Node: ctx.node(), Function: fn}, nil
}

func emitCall(ctx *Context, name string, args []microstatement.Microstatement) ([]microstatement.Microstatement, error) {
	argTypes := make([]ctype.CType, len(args))
	for i, a := range args {
		argTypes[i] = a.GetType()
	}
	decl, _, err := ctx.Scope.ResolveFunction(name, argTypes)
	if err != nil {
		return nil, err
	}
	return []microstatement.Microstatement{&microstatement.FnCall{
		Node:       ctx.node(),
		Function:   name,
		Args:       args,
		ReturnType: decl.ReturnType,
	}}, nil
}

// bodyReturnType finds the type of a lowered body's trailing Return, or
// Void if the body never returns a value (a statement-only branch).
func bodyReturnType(body []microstatement.Microstatement) ctype.CType {
	for i := len(body) - 1; i >= 0; i-- {
		if r, ok := body[i].(*microstatement.Return); ok {
			return r.GetType()
		}
	}
	return ctype.Void{}
}
