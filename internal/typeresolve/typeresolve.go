// Package typeresolve implements the type resolver (spec §4.4, C6): it
// turns a flat list of type-level tokens and operators
// (*ast.TypeExpr) into a single ctype.CType, evaluating compile-time
// functions (Env, FileStr, arithmetic, …) and intrinsic generics along
// the way. It is grounded on the teacher's typechecker front end
// (internal/types/typechecker*.go shows the same "walk tokens, resolve
// names against an environment, build a typed tree" shape) generalized
// from Hindley–Milner inference to the CType algebra C2/C3 already
// provide, with the compile-time-evaluation intrinsics (Env/EnvExists/
// FileStr) wired to internal/effects' capability-gated pattern in the
// teacher, simplified to the plain swappable lookup ctype already
// exposes.
package typeresolve

import (
	"strconv"
	"strings"

	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/optable"
	"github.com/alantech/alan/internal/scope"
	"golang.org/x/text/unicode/norm"
)

// Resolve converts expr into a CType within sc, treating every name in
// generics as an unresolved Infer parameter rather than a scope lookup.
func Resolve(expr *ast.TypeExpr, sc *scope.Scope, generics map[string]bool) (ctype.CType, error) {
	return resolveTokenList(expr.Tokens, sc, generics)
}

// resolveTokenList is the entry point shared by the top-level TypeExpr
// and every nested group's Inner: split on top-level commas first (a
// bare comma list denotes a Tuple-of-Fields, spec's `type Foo = bar:
// string, baz: bool;`), then resolve each part, recombining via
// ctype.NewTuple (which unwraps a single member transparently).
func resolveTokenList(tokens []ast.TypeToken, sc *scope.Scope, generics map[string]bool) (ctype.CType, error) {
	parts := splitTopLevel(tokens, ",")
	members := make([]ctype.CType, 0, len(parts))
	for _, part := range parts {
		m, err := resolveField(part, sc, generics)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return ctype.NewTuple(members...), nil
}

// resolveField checks for a top-level "name: type" split before falling
// through to operator resolution, so labelled struct-like members
// resolve to ctype.Field and bare members resolve directly.
func resolveField(tokens []ast.TypeToken, sc *scope.Scope, generics map[string]bool) (ctype.CType, error) {
	segments := splitTopLevel(tokens, ":")
	if len(segments) == 2 {
		if len(segments[0]) != 1 {
			return nil, errcode.WrapReport(errcode.New(errcode.PAR001, "parser", "a field label must be a single identifier"))
		}
		atom, ok := segments[0][0].(*ast.TypeAtom)
		if !ok {
			return nil, errcode.WrapReport(errcode.New(errcode.PAR001, "parser", "a field label must be a single identifier"))
		}
		inner, err := resolveOperatorExpr(segments[1], sc, generics)
		if err != nil {
			return nil, err
		}
		return ctype.NewField(normalizeIdent(atom.Name), inner), nil
	}
	return resolveOperatorExpr(tokens, sc, generics)
}

// resolveOperatorExpr flattens tokens into operator-table tokens (merging
// an identifier immediately followed by a "{...}" group into a single
// call operand), rewrites via optable using the scope's effective
// type-operator table, and converts the result to a CType.
func resolveOperatorExpr(tokens []ast.TypeToken, sc *scope.Scope, generics map[string]bool) (ctype.CType, error) {
	if len(tokens) == 0 {
		return ctype.Void{}, nil
	}
	opTokens, err := flatten(tokens, sc, generics)
	if err != nil {
		return nil, err
	}
	if len(opTokens) == 1 && opTokens[0].Operand != nil {
		return opTokens[0].Operand.(ctype.CType), nil
	}
	result, err := optable.Rewrite(opTokens, sc.EffectiveTypeOperators())
	if err != nil {
		return nil, err
	}
	return nodeToCType(result, sc)
}

func flatten(tokens []ast.TypeToken, sc *scope.Scope, generics map[string]bool) ([]optable.Token, error) {
	var out []optable.Token
	for i := 0; i < len(tokens); i++ {
		switch tok := tokens[i].(type) {
		case *ast.TypeAtom:
			if i+1 < len(tokens) {
				if grp, ok := tokens[i+1].(*ast.TypeGroupToken); ok && grp.Open == "{" {
					c, err := resolveCall(tok.Name, grp, sc, generics)
					if err != nil {
						return nil, err
					}
					out = append(out, optable.Token{Operand: c})
					i++
					continue
				}
			}
			c, err := resolveAtom(tok, sc, generics)
			if err != nil {
				return nil, err
			}
			out = append(out, optable.Token{Operand: c})
		case *ast.TypeGroupToken:
			inner, err := resolveTokenList(tok.Inner.Tokens, sc, generics)
			if err != nil {
				return nil, err
			}
			if tok.Open == "(" {
				out = append(out, optable.Token{Operand: ctype.Group{Inner: inner}})
			} else {
				out = append(out, optable.Token{Operand: inner})
			}
		case *ast.TypeOperatorToken:
			out = append(out, optable.Token{Symbol: tok.Symbol})
		}
	}
	return out, nil
}

func resolveAtom(atom *ast.TypeAtom, sc *scope.Scope, generics map[string]bool) (ctype.CType, error) {
	name := atom.Name
	if lit, ok := parseLiteral(name); ok {
		return lit, nil
	}
	if name == "Void" {
		return ctype.Void{}, nil
	}
	ident := normalizeIdent(name)
	if generics[ident] {
		return ctype.Infer{Name: ident}, nil
	}
	if t, ok := sc.ResolveType(ident); ok {
		return t, nil
	}
	if c, ok := sc.ResolveConst(ident); ok {
		return c.Type, nil
	}
	return nil, errcode.WrapReport(errcode.New(errcode.SCO001, "scope", "unresolved type identifier "+ident))
}

func parseLiteral(name string) (ctype.CType, bool) {
	switch name {
	case "true":
		return ctype.BoolLit{Value: true}, true
	case "false":
		return ctype.BoolLit{Value: false}, true
	}
	if len(name) >= 2 && strings.HasPrefix(name, "\"") && strings.HasSuffix(name, "\"") {
		return ctype.StringLit{Value: strings.ReplaceAll(name[1:len(name)-1], "\\\"", "\"")}, true
	}
	if iv, err := strconv.ParseInt(name, 10, 64); err == nil {
		return ctype.IntLit{Value: iv}, true
	}
	if fv, err := strconv.ParseFloat(name, 64); err == nil && strings.ContainsAny(name, ".eE") {
		return ctype.FloatLit{Value: fv}, true
	}
	return nil, false
}

// normalizeIdent applies Unicode NFC normalization to an identifier so
// two byte-distinct but canonically-equivalent spellings resolve to the
// same scope entry.
func normalizeIdent(name string) string {
	return norm.NFC.String(name)
}

func resolveCall(name string, grp *ast.TypeGroupToken, sc *scope.Scope, generics map[string]bool) (ctype.CType, error) {
	argParts := splitTopLevel(grp.Inner.Tokens, ",")
	args := make([]ctype.CType, 0, len(argParts))
	for _, part := range argParts {
		if len(part) == 0 {
			continue
		}
		a, err := resolveOperatorExpr(part, sc, generics)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return applyNamedOp(normalizeIdent(name), args, sc)
}

// nodeToCType walks an optable rewrite result (either a bare CType
// operand or a *optable.CallNode tree) into a CType, dispatching each
// CallNode through applyNamedOp.
func nodeToCType(node any, sc *scope.Scope) (ctype.CType, error) {
	switch v := node.(type) {
	case ctype.CType:
		return v, nil
	case *optable.CallNode:
		args := make([]ctype.CType, len(v.Args))
		for i, a := range v.Args {
			c, err := nodeToCType(a, sc)
			if err != nil {
				return nil, err
			}
			args[i] = c
		}
		return applyNamedOp(v.FunctionName, args, sc)
	default:
		return nil, errcode.WrapReport(errcode.New(errcode.PAR001, "parser", "unresolvable type expression node"))
	}
}

// applyNamedOp dispatches a resolved call/operator-rewrite target: the
// built-in arithmetic/structural intrinsics construct directly, and any
// other name is looked up as a user type (producing a ctype.Binds
// application).
func applyNamedOp(name string, args []ctype.CType, sc *scope.Scope) (ctype.CType, error) {
	unary := func(f func(ctype.CType) (ctype.CType, error)) (ctype.CType, error) {
		if len(args) != 1 {
			return nil, arityError(name, 1, len(args))
		}
		return f(args[0])
	}
	binary := func(f func(ctype.CType, ctype.CType) (ctype.CType, error)) (ctype.CType, error) {
		if len(args) != 2 {
			return nil, arityError(name, 2, len(args))
		}
		return f(args[0], args[1])
	}

	switch name {
	case "Add":
		return binary(ctype.NewAdd)
	case "Sub":
		return binary(ctype.NewSub)
	case "Mul":
		return binary(ctype.NewMul)
	case "Div":
		return binary(ctype.NewDiv)
	case "Mod":
		return binary(ctype.NewMod)
	case "Pow":
		return binary(ctype.NewPow)
	case "Min":
		return binary(ctype.NewMin)
	case "Max":
		return binary(ctype.NewMax)
	case "Neg":
		return unary(ctype.NewNeg)
	case "Len":
		return unary(ctype.NewLen)
	case "Size":
		return unary(ctype.NewSize)
	case "FileStr":
		return unary(ctype.NewFileStr)
	case "Concat":
		return binary(ctype.NewConcat)
	case "Env":
		if len(args) != 1 && len(args) != 2 {
			return nil, arityError(name, 1, len(args))
		}
		return ctype.NewEnv(args...)
	case "EnvExists":
		return unary(ctype.NewEnvExists)
	case "TIf":
		if len(args) == 2 {
			return ctype.NewIf(args[0], args[1], ctype.Fail{Message: "TIf with no else branch taken"})
		}
		if len(args) == 3 {
			return ctype.NewIf(args[0], args[1], args[2])
		}
		return nil, arityError(name, 3, len(args))
	case "And":
		return binary(ctype.NewAnd)
	case "Or":
		return binary(ctype.NewOr)
	case "Xor":
		return binary(ctype.NewXor)
	case "Not":
		return unary(ctype.NewNot)
	case "Nand":
		return binary(ctype.NewNand)
	case "Nor":
		return binary(ctype.NewNor)
	case "Xnor":
		return binary(ctype.NewXnor)
	case "TEq":
		return binary(ctype.NewEq)
	case "Neq":
		return binary(ctype.NewNeq)
	case "Lt":
		return binary(ctype.NewLt)
	case "Lte":
		return binary(ctype.NewLte)
	case "Gt":
		return binary(ctype.NewGt)
	case "Gte":
		return binary(ctype.NewGte)
	case "Tuple":
		return ctype.NewTuple(args...), nil
	case "Either":
		return ctype.NewEither(args...), nil
	case "AnyOf":
		return ctype.NewAnyOf(args...), nil
	case "Array":
		if len(args) != 1 {
			return nil, arityError(name, 1, len(args))
		}
		return ctype.Array{Inner: args[0]}, nil
	case "Buffer":
		return binary(ctype.NewBuffer)
	case "Dependency":
		if len(args) != 2 {
			return nil, arityError(name, 2, len(args))
		}
		return ctype.Dependency{Name: args[0], Version: args[1]}, nil
	}

	if t, ok := sc.ResolveType(name); ok {
		return ctype.Binds{Name: t, Args: args}, nil
	}
	return nil, errcode.WrapReport(errcode.New(errcode.SCO001, "scope", "unresolved type constructor "+name))
}

func arityError(name string, want, got int) error {
	return errcode.WrapReport(errcode.New(errcode.PAR001, "parser", name+" expects "+strconv.Itoa(want)+" argument(s)").With("got", got))
}

// splitTopLevel splits tokens on every occurrence of a bare
// *ast.TypeOperatorToken matching sep. Nested group tokens are opaque
// (already parenthesized by the parser), so no depth tracking is needed.
func splitTopLevel(tokens []ast.TypeToken, sep string) [][]ast.TypeToken {
	var parts [][]ast.TypeToken
	start := 0
	for i, tok := range tokens {
		if op, ok := tok.(*ast.TypeOperatorToken); ok && op.Symbol == sep {
			parts = append(parts, tokens[start:i])
			start = i + 1
		}
	}
	parts = append(parts, tokens[start:])
	return parts
}
