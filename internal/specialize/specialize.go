// Package specialize implements C8: monomorphization of generic
// functions and types (spec §4.5/§4.5.1). A generic function overload is
// cloned with its `Infer` parameters swapped for the types a call site
// inferred, then its body is lowered again in a fresh child scope; a
// generic type application synthesizes a concrete nominal alias plus its
// derived accessor/constructor functions. Both are cached by the
// synthesized callable name so repeated specializations with the same
// arguments return the identical function (spec §8's idempotent-
// specialization property). Grounded on the teacher's
// internal/elaborate/dictionaries.go (type-class dictionary
// monomorphization keyed by a rendered instance name) and
// internal/types/instances.go (instance-method synthesis per concrete
// type), generalized from typeclass-dictionary passing to this spec's
// name-mangled generic specialization.
package specialize

import (
	"strconv"
	"strings"

	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/microstatement"
	"github.com/alantech/alan/internal/scope"
)

// LowerFunc lowers a function body in the given scope, returning its
// microstatements and the inferred return type (the last Return's type,
// or Void). Passed in by the caller (internal/lower) to avoid an import
// cycle: specialize must not depend on lower.
type LowerFunc func(body []ast.Statement, sc *scope.Scope) ([]microstatement.Microstatement, ctype.CType, error)

var functionCache = map[string]*microstatement.Function{}

// Reset clears the specialization cache. Test-only.
func Reset() {
	functionCache = map[string]*microstatement.Function{}
}

// Name renders the synthesized specialization name: genericName_arg1_arg2_...
func Name(base string, generics []string, bound map[string]ctype.CType) string {
	parts := make([]string, 0, len(generics)+1)
	parts = append(parts, base)
	for _, g := range generics {
		parts = append(parts, ctype.CallableString(bound[g]))
	}
	return strings.Join(parts, "_")
}

// Function specializes decl against bound generic-parameter types,
// lowering its body (via lowerFn) in a fresh child scope with each
// generic parameter installed as a type alias to its bound argument, per
// spec §4.5's "Generic kinds lower the body in a fresh child scope with
// param types as aliases" rule. It is idempotent: a second call with the
// same synthesized name returns the cached result without relowering.
func Function(decl *scope.FunctionDecl, bound map[string]ctype.CType, parent *scope.Scope, lowerFn LowerFunc) (*microstatement.Function, string, error) {
	name := Name(decl.Name, decl.Generics, bound)
	if cached, ok := functionCache[name]; ok {
		return cached, name, nil
	}

	child := scope.New(parent)
	for _, g := range decl.Generics {
		child.Types[g] = bound[g]
	}

	paramTypes := make([]ctype.CType, len(decl.ParamTypes))
	for i, p := range decl.ParamTypes {
		paramTypes[i] = substitute(p, decl.Generics, bound)
	}

	body, inferred, err := lowerFn(decl.Body, child)
	if err != nil {
		return nil, "", err
	}

	retType := substitute(decl.ReturnType, decl.Generics, bound)
	if _, isInfer := retType.(ctype.Infer); isInfer {
		retType = inferred
	}

	input := ctype.CType(ctype.Void{})
	if len(paramTypes) > 0 {
		input = ctype.NewTuple(paramTypes...)
	}

	fn := &microstatement.Function{
		Name: name,
		Type: ctype.Function{Input: input, Output: retType},
		Body: body,
		Kind: microstatement.Generic,
	}
	functionCache[name] = fn

	parent.Functions[name] = append(parent.Functions[name], &scope.FunctionDecl{
		Name:       name,
		ParamTypes: paramTypes,
		ReturnType: retType,
	})
	return fn, name, nil
}

func substitute(t ctype.CType, generics []string, bound map[string]ctype.CType) ctype.CType {
	out := t
	for _, g := range generics {
		swapped, err := ctype.SwapSubtype(out, ctype.Infer{Name: g}, bound[g])
		if err == nil {
			out = swapped
		}
	}
	return out
}

// EnsureType resolves a (possibly still-generic) type reference into its
// concrete, callable-named alias, registering that alias and its derived
// functions (spec §4.5.1) into sc the first time it's seen. Repeated
// calls for the same synthesized name are no-ops (idempotent, mirroring
// Function's caching).
func EnsureType(resolved ctype.CType, sc *scope.Scope) (ctype.CType, string, error) {
	name := ctype.CallableString(resolved)
	if existing, ok := sc.Types[name]; ok {
		return existing, name, nil
	}

	concrete := resolved
	if b, ok := resolved.(ctype.Binds); ok {
		if g, ok := b.Name.(ctype.Generic); ok {
			body := g.Body
			for i, p := range g.Params {
				if i >= len(b.Args) {
					break
				}
				swapped, err := ctype.SwapSubtype(body, ctype.Infer{Name: p}, b.Args[i])
				if err != nil {
					return nil, "", err
				}
				body = swapped
			}
			concrete = body
		}
	}

	alias := ctype.TypeAlias{Name: name, Inner: concrete}
	sc.Types[name] = alias
	if err := deriveFunctions(name, alias, concrete, sc); err != nil {
		return nil, "", err
	}
	return alias, name, nil
}

// deriveFunctions synthesizes to_functions (spec §4.5.1) for a concrete
// type: accessor/constructor pairs appropriate to its structural shape.
// Synthesized decls carry no Body — per spec §9's "auto-derived functions
// are data, not code" design note, their bodies are a backend's job to
// render, not the core's.
func deriveFunctions(name string, self ctype.CType, structural ctype.CType, sc *scope.Scope) error {
	switch body := structural.(type) {
	case ctype.Tuple:
		return deriveTuple(name, self, body.Members, sc)
	case ctype.Field:
		return deriveTuple(name, self, []ctype.CType{body}, sc)
	case ctype.Either:
		return deriveEither(name, self, body.Members, sc)
	case ctype.Buffer:
		return deriveBuffer(name, self, body, sc)
	case ctype.Array:
		return deriveArray(name, self, body, sc)
	default:
		// Nominal alias over a scalar/opaque inner: a 1-arg constructor,
		// plus a 0-arg accessor when the inner is itself a static literal.
		register(sc, name, []ctype.CType{structural}, self, false)
		if isLiteral(structural) {
			register(sc, name, nil, self, false)
		}
		return nil
	}
}

func deriveTuple(name string, self ctype.CType, members []ctype.CType, sc *scope.Scope) error {
	var ctorParams []ctype.CType
	position := 0
	for _, m := range members {
		label := ""
		inner := m
		if f, ok := m.(ctype.Field); ok {
			label = f.Label
			inner = f.Inner
		}
		accessorName := label
		if accessorName == "" {
			accessorName = "_" + strconv.Itoa(position)
		}
		if isLiteral(inner) {
			register(sc, accessorName, nil, inner, false)
			position++
			continue
		}
		register(sc, accessorName, []ctype.CType{self}, inner, false)
		ctorParams = append(ctorParams, inner)
		position++
	}
	register(sc, name, ctorParams, self, false)
	return nil
}

func deriveEither(name string, self ctype.CType, members []ctype.CType, sc *scope.Scope) error {
	for _, m := range members {
		variant := variantName(m)
		register(sc, variant, []ctype.CType{m}, self, false)
		register(sc, "store", []ctype.CType{self, m}, self, false)
		register(sc, variant+"?", []ctype.CType{self}, ctype.NewEither(m, ctype.Void{}), false)
	}
	return nil
}

func deriveBuffer(name string, self ctype.CType, buf ctype.Buffer, sc *scope.Scope) error {
	register(sc, name, []ctype.CType{buf.Inner}, self, false)
	if size, ok := buf.Size.(ctype.IntLit); ok {
		n := int(size.Value)
		params := make([]ctype.CType, n)
		for i := range params {
			params[i] = buf.Inner
			register(sc, strconv.Itoa(i), []ctype.CType{self}, buf.Inner, false)
		}
		register(sc, name, params, self, false)
	}
	return nil
}

func deriveArray(name string, self ctype.CType, arr ctype.Array, sc *scope.Scope) error {
	register(sc, name, []ctype.CType{arr.Inner}, self, true)
	return nil
}

func register(sc *scope.Scope, name string, params []ctype.CType, ret ctype.CType, variadic bool) {
	sc.Functions[name] = append(sc.Functions[name], &scope.FunctionDecl{
		Name:       name,
		ParamTypes: params,
		ReturnType: ret,
		Variadic:   variadic,
	})
}

func variantName(m ctype.CType) string {
	if alias, ok := m.(ctype.TypeAlias); ok {
		return alias.Name
	}
	return ctype.CallableString(m)
}

func isLiteral(t ctype.CType) bool {
	switch t.(type) {
	case ctype.IntLit, ctype.FloatLit, ctype.BoolLit, ctype.StringLit:
		return true
	default:
		return false
	}
}
