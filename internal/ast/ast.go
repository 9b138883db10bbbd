// Package ast defines the concrete syntax tree consumed by the core.
//
// The lexer/grammar that produces this tree is an external collaborator
// (spec §1); this package only defines the shapes the rest of the core
// walks. Nodes are pure data — no resolution, no type information.
package ast

import (
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	String() string
	Position() Pos
}

// Pos is a position in source text.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a range in source text.
type Span struct {
	Start Pos
	End   Pos
}

// File is the top-level node for one parsed source file: an ordered
// mix of imports, types, functions, consts, operator mappings,
// interfaces and exports (spec §6.1).
type File struct {
	Path                 string
	Imports              []*ImportDecl
	Types                []*TypeDecl
	Functions            []*FuncDecl
	Consts               []*ConstDecl
	OperatorMappings     []*OperatorMapping
	TypeOperatorMappings []*TypeOperatorMapping
	Interfaces           []*InterfaceDecl
	Exports              []*ExportDecl
	Pos                  Pos
}

func (f *File) Position() Pos { return f.Pos }
func (f *File) String() string {
	parts := []string{}
	for _, i := range f.Imports {
		parts = append(parts, i.String())
	}
	for _, t := range f.Types {
		parts = append(parts, t.String())
	}
	for _, fn := range f.Functions {
		parts = append(parts, fn.String())
	}
	return strings.Join(parts, "\n")
}

// ImportDecl is a single `import`/`from … import …` declaration.
type ImportDecl struct {
	Path    string            // module path, "@std/seq", "@scope/pkg", or relative
	Symbols []string          // selective imports; empty means whole module
	Aliases map[string]string // symbol -> "as" rename
	Pos     Pos
}

func (i *ImportDecl) Position() Pos { return i.Pos }
func (i *ImportDecl) String() string {
	if len(i.Symbols) > 0 {
		return fmt.Sprintf("from %s import %s", i.Path, strings.Join(i.Symbols, ", "))
	}
	return fmt.Sprintf("import %s", i.Path)
}

// TypeToken is one token of a flat type expression: either a named
// atom (identifier, literal) or an operator symbol. The type-operator
// engine (C6/C3) resolves a TypeExpr into a single CType.
type TypeToken interface {
	typeTokenNode()
	String() string
}

// TypeAtom is a bare name, literal, or parameter reference in a type expression.
type TypeAtom struct {
	Name string // identifier, or literal text ("3", "true", "\"x\"")
	Pos  Pos
}

func (t *TypeAtom) typeTokenNode() {}
func (t *TypeAtom) String() string { return t.Name }

// TypeOperatorToken is an operator symbol appearing in a type expression
// ("|", "&", "+", "-", "{", "}", "(", ")", ",", ":").
type TypeOperatorToken struct {
	Symbol string
	Pos    Pos
}

func (t *TypeOperatorToken) typeTokenNode() {}
func (t *TypeOperatorToken) String() string { return t.Symbol }

// TypeGroupToken wraps a nested, already-grouped sub-expression produced
// by the parser for explicit "( )" / "{ }" nesting.
type TypeGroupToken struct {
	Open  string // "(" or "{"
	Inner *TypeExpr
	Close string
	Pos   Pos
}

func (t *TypeGroupToken) typeTokenNode() {}
func (t *TypeGroupToken) String() string {
	return fmt.Sprintf("%s%s%s", t.Open, t.Inner.String(), t.Close)
}

// TypeExpr is the flat token list the type resolver (C6) turns into a CType.
type TypeExpr struct {
	Tokens []TypeToken
	Pos    Pos
}

func (t *TypeExpr) Position() Pos { return t.Pos }
func (t *TypeExpr) String() string {
	parts := make([]string, len(t.Tokens))
	for i, tok := range t.Tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

// TypeDecl declares a named type, optionally generic and optionally
// gated by a compile-time condition (`type{Cond} Name = …`).
type TypeDecl struct {
	Name      string
	Generics  []string
	Condition *TypeExpr // nil means unconditional
	Body      *TypeExpr
	Exported  bool
	Pos       Pos
}

func (t *TypeDecl) Position() Pos { return t.Pos }
func (t *TypeDecl) String() string {
	return fmt.Sprintf("type %s = %s", t.Name, t.Body)
}

// ConstDecl declares a top-level or local constant, optionally gated by
// a compile-time condition.
type ConstDecl struct {
	Name      string
	Condition *TypeExpr
	Type      *TypeExpr // optional declared type
	Value     Assignable
	Exported  bool
	Pos       Pos
}

func (c *ConstDecl) Position() Pos { return c.Pos }
func (c *ConstDecl) String() string {
	return fmt.Sprintf("const %s = %s", c.Name, c.Value)
}

// Fix is the fixity of a term or type operator.
type Fix int

const (
	Prefix Fix = iota
	Infix
	Postfix
)

func (f Fix) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	default:
		return "infix"
	}
}

// OperatorMapping declares a term-level operator (§4.2, C3).
type OperatorMapping struct {
	Symbol       string
	Fix          Fix
	Level        int8 // precedence, -128..=127
	FunctionName string
	Pos          Pos
}

func (o *OperatorMapping) Position() Pos { return o.Pos }
func (o *OperatorMapping) String() string {
	return fmt.Sprintf("operator %s %s as %s", o.Symbol, o.Fix, o.FunctionName)
}

// TypeOperatorMapping declares a type-level operator.
type TypeOperatorMapping struct {
	Symbol       string
	Fix          Fix
	Level        int8
	FunctionName string
	Pos          Pos
}

func (o *TypeOperatorMapping) Position() Pos { return o.Pos }
func (o *TypeOperatorMapping) String() string {
	return fmt.Sprintf("typeoperator %s %s as %s", o.Symbol, o.Fix, o.FunctionName)
}

// InterfaceDecl declares a structural interface: a named set of method
// signatures a type may satisfy without nominal declaration (SPEC_FULL
// supplement, grounded on original_source/alan/src/program.rs).
type InterfaceDecl struct {
	Name     string
	Methods  []*InterfaceMethod
	Exported bool
	Pos      Pos
}

type InterfaceMethod struct {
	Name string
	Type *TypeExpr
	Pos  Pos
}

func (i *InterfaceDecl) Position() Pos  { return i.Pos }
func (i *InterfaceDecl) String() string { return fmt.Sprintf("interface %s", i.Name) }

// ExportDecl wraps a top-level declaration marked `export`.
type ExportDecl struct {
	Inner Node
	Pos   Pos
}

func (e *ExportDecl) Position() Pos { return e.Pos }
func (e *ExportDecl) String() string {
	return fmt.Sprintf("export %s", e.Inner)
}

// Param is one named, typed function parameter.
type Param struct {
	Name string
	Type *TypeExpr
	Pos  Pos
}

// FuncDecl declares a named function: generics, params, return type,
// and a statement body that C7 lowers into microstatements.
type FuncDecl struct {
	Name       string
	Generics   []string
	Params     []*Param
	ReturnType *TypeExpr // nil means inferred (spec MissingReturnType if never resolved)
	Body       []Statement
	Exported   bool
	Pos        Pos
}

func (f *FuncDecl) Position() Pos { return f.Pos }
func (f *FuncDecl) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(names, ", "))
}
