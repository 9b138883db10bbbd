// Package scope implements the lexically nested environment (spec §4.3,
// C4) that every name, type, constant, and operator mapping resolves
// through. It generalizes the teacher's parent-chained TypeEnv
// (internal/types/env.go) from a single bindings map to the five ordered
// maps spec.md requires, plus the two-phase overload resolver.
package scope

import (
	"github.com/alantech/alan/internal/ast"
	"github.com/alantech/alan/internal/ctype"
	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/optable"
)

// Export classifies what kind of scope entry a name was exported as, so
// an importer can re-bind it into the right one of the five maps.
type Export int

const (
	ExportFunction Export = iota
	ExportType
	ExportConst
	ExportOperator
	ExportTypeOperator
)

// ConstBinding pairs a resolved type with the constant's value expression.
type ConstBinding struct {
	Type  ctype.CType
	Value ast.Assignable
}

// FunctionDecl is one overload of a named function: its generic
// parameters (if any), declared parameter types, return type, and body.
// Body is left as the AST statement list here; C7 lowers a non-generic
// body once when its file is compiled, and a generic body once per
// specialization.
type FunctionDecl struct {
	Name       string
	Generics   []string
	ParamTypes []ctype.CType
	ReturnType ctype.CType
	Body       []ast.Statement
	// Variadic marks a DerivedVariadic constructor/accessor (spec §4.3):
	// it accepts any number of arguments, all matching ParamTypes[0].
	Variadic bool
}

// Scope is one lexical level: a chain of five name-kind maps plus the two
// operator tables, with a Parent pointer completing the chain.
type Scope struct {
	Parent *Scope

	Imports       map[string]string // alias -> source import path
	Types         map[string]ctype.CType
	Consts        map[string]ConstBinding
	Functions     map[string][]*FunctionDecl
	Operators     *optable.Table
	TypeOperators *optable.Table
	Exports       map[string]Export
}

// New returns an empty scope chained to parent (nil for a root/file scope).
func New(parent *Scope) *Scope {
	return &Scope{
		Parent:        parent,
		Imports:       map[string]string{},
		Types:         map[string]ctype.CType{},
		Consts:        map[string]ConstBinding{},
		Functions:     map[string][]*FunctionDecl{},
		Operators:     optable.NewTable(),
		TypeOperators: optable.NewTable(),
		Exports:       map[string]Export{},
	}
}

// ResolveType walks the parent chain looking up name in Types.
func (s *Scope) ResolveType(name string) (ctype.CType, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if t, ok := cur.Types[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// ResolveConst walks the parent chain looking up name in Consts.
func (s *Scope) ResolveConst(name string) (ConstBinding, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if c, ok := cur.Consts[name]; ok {
			return c, true
		}
	}
	return ConstBinding{}, false
}

// ResolveOperator walks the parent chain looking up an operator mapping.
func (s *Scope) ResolveOperator(fix optable.Fix, symbol string) (optable.Mapping, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if m, ok := cur.Operators.Lookup(fix, symbol); ok {
			return m, true
		}
	}
	return optable.Mapping{}, false
}

// ResolveTypeOperator walks the parent chain looking up a type-operator
// mapping.
func (s *Scope) ResolveTypeOperator(fix optable.Fix, symbol string) (optable.Mapping, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if m, ok := cur.TypeOperators.Lookup(fix, symbol); ok {
			return m, true
		}
	}
	return optable.Mapping{}, false
}

// ResolveFunctionTypes returns every overload of name visible from s,
// nearest scope first, without filtering by argument types. Used by the
// generic-inference pass, which needs to see generic overloads even
// though their parameter types aren't concrete yet.
func (s *Scope) ResolveFunctionTypes(name string) []*FunctionDecl {
	var out []*FunctionDecl
	for cur := s; cur != nil; cur = cur.Parent {
		out = append(out, cur.Functions[name]...)
	}
	return out
}

// inferGenerics attempts to bind decl's generic parameters from argTypes
// by structurally matching each declared parameter against the
// corresponding argument. It returns the bindings in declaration order,
// or ok=false if any generic could not be pinned down or two
// observations for the same parameter disagreed (errcode.GEN002).
func inferGenerics(decl *FunctionDecl, argTypes []ctype.CType) (map[string]ctype.CType, error, bool) {
	if len(decl.ParamTypes) != len(argTypes) {
		return nil, nil, false
	}
	bound := map[string]ctype.CType{}
	isGenericParam := map[string]bool{}
	for _, g := range decl.Generics {
		isGenericParam[g] = true
	}
	for i, param := range decl.ParamTypes {
		infer, ok := param.(ctype.Infer)
		if !ok || !isGenericParam[infer.Name] {
			if !ctype.Accepts(param, argTypes[i]) {
				return nil, nil, false
			}
			continue
		}
		if existing, seen := bound[infer.Name]; seen {
			if existing.StrictString() != argTypes[i].StrictString() {
				return nil, errcode.WrapReport(errcode.New(errcode.GEN002, "generics",
					"incompatible bindings for generic parameter "+infer.Name).
					With("first", existing.FunctionalString()).With("second", argTypes[i].FunctionalString())), false
			}
			continue
		}
		bound[infer.Name] = argTypes[i]
	}
	for _, g := range decl.Generics {
		if _, ok := bound[g]; !ok {
			return nil, nil, false
		}
	}
	return bound, nil, true
}

// ResolveFunction is the authoritative overload picker (spec §4.3): a
// generic-inference pass first, then direct dispatch by ctype.Accepts,
// with DerivedVariadic matching any argument count against ParamTypes[0].
// If no function named name resolves but a type named name does, the
// search retries under that type's callable name (constructor-call
// sugar).
func (s *Scope) ResolveFunction(name string, argTypes []ctype.CType) (*FunctionDecl, map[string]ctype.CType, error) {
	decl, bound, err, found := s.resolveFunctionOnce(name, argTypes)
	if found {
		return decl, bound, err
	}
	if err != nil {
		return nil, nil, err
	}
	if t, ok := s.ResolveType(name); ok {
		callableName := ctype.CallableString(t)
		decl, bound, err, found = s.resolveFunctionOnce(callableName, argTypes)
		if found {
			return decl, bound, err
		}
	}
	return nil, nil, errcode.WrapReport(errcode.New(errcode.OVL001, "overload",
		"no matching overload for "+name).With("argc", len(argTypes)))
}

func (s *Scope) resolveFunctionOnce(name string, argTypes []ctype.CType) (*FunctionDecl, map[string]ctype.CType, error, bool) {
	overloads := s.ResolveFunctionTypes(name)

	for _, decl := range overloads {
		if len(decl.Generics) == 0 {
			continue
		}
		bound, err, ok := inferGenerics(decl, argTypes)
		if err != nil {
			return nil, nil, err, true
		}
		if ok {
			return decl, bound, nil, true
		}
	}

	for _, decl := range overloads {
		if len(decl.Generics) != 0 {
			continue
		}
		if decl.Variadic {
			if matchesVariadic(decl, argTypes) {
				return decl, nil, nil, true
			}
			continue
		}
		if matchesDirect(decl, argTypes) {
			return decl, nil, nil, true
		}
	}
	return nil, nil, nil, false
}

func matchesDirect(decl *FunctionDecl, argTypes []ctype.CType) bool {
	if len(decl.ParamTypes) != len(argTypes) {
		return false
	}
	for i, param := range decl.ParamTypes {
		if !ctype.Accepts(param, argTypes[i]) {
			return false
		}
	}
	return true
}

func matchesVariadic(decl *FunctionDecl, argTypes []ctype.CType) bool {
	if len(decl.ParamTypes) == 0 {
		return false
	}
	first := decl.ParamTypes[0]
	for _, arg := range argTypes {
		if !ctype.Accepts(first, arg) {
			return false
		}
	}
	return true
}

// chainFromRoot returns the scope chain from the outermost ancestor down
// to s, used to build an effective merged operator table where the
// nearest scope's mappings win.
func (s *Scope) chainFromRoot() []*Scope {
	var chain []*Scope
	for cur := s; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// EffectiveOperators merges every ancestor's term-operator table into
// one, nearest scope winning on collision — the table the expression
// rewriter (C3/C7) needs, since optable.Rewrite takes a single flat
// table rather than walking a chain itself.
func (s *Scope) EffectiveOperators() *optable.Table {
	out := optable.NewTable()
	for _, cur := range s.chainFromRoot() {
		out.Merge(cur.Operators)
	}
	return out
}

// EffectiveTypeOperators is EffectiveOperators for the type-operator
// table (C6).
func (s *Scope) EffectiveTypeOperators() *optable.Table {
	out := optable.NewTable()
	for _, cur := range s.chainFromRoot() {
		out.Merge(cur.TypeOperators)
	}
	return out
}

// Merge folds child's bindings into s (spec §4.3's `merge!` discipline):
// overload vectors concatenate, everything else overwrites on name
// collision — child scopes never shadow the parent silently, they only
// add new specializations.
func (s *Scope) Merge(child *Scope) {
	for k, v := range child.Imports {
		s.Imports[k] = v
	}
	for k, v := range child.Types {
		s.Types[k] = v
	}
	for k, v := range child.Consts {
		s.Consts[k] = v
	}
	for k, decls := range child.Functions {
		s.Functions[k] = append(s.Functions[k], decls...)
	}
	s.Operators.Merge(child.Operators)
	s.TypeOperators.Merge(child.TypeOperators)
	for k, v := range child.Exports {
		s.Exports[k] = v
	}
}
