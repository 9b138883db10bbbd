// Package microstatement defines the flat intermediate representation
// (spec §4.4/§6.2, C7) that statement lowering produces: a linear vector
// of named bindings a backend renders directly, with no nested
// expression trees left to decompose. Grounded on the teacher's
// internal/core (an interface-plus-one-struct-per-node ANF IR with a
// marker method and an embedded node base) generalized from
// Let/App/BinOp/Lambda to the spec's own eight-node shape.
package microstatement

import (
	"fmt"
	"strings"

	"github.com/alantech/alan/internal/ctype"
)

// Node is the base every microstatement embeds, mirroring the teacher's
// core.CoreNode (a stable id for diagnostics/dedup).
type Node struct {
	NodeID uint64
}

func (n Node) ID() uint64 { return n.NodeID }

// Microstatement is the closed sum of IR node shapes (spec §4.4: exactly
// eight constructors). Every node exposes GetType so later passes never
// need a type switch to know what a value evaluates to.
type Microstatement interface {
	ID() uint64
	GetType() ctype.CType
	String() string
	microstatement()
}

// Assignment is `let`/`const name = value`.
type Assignment struct {
	Node
	Mutable bool
	Name    string
	Value   Microstatement
}

func (a *Assignment) microstatement() {}
func (a *Assignment) GetType() ctype.CType {
	return a.Value.GetType()
}
func (a *Assignment) String() string {
	kw := "const"
	if a.Mutable {
		kw = "let"
	}
	return fmt.Sprintf("%s %s = %s", kw, a.Name, a.Value)
}

// ArgKind distinguishes a plain parameter from an ownership-qualified one.
type ArgKind int

const (
	ArgNormal ArgKind = iota
	ArgOwn
	ArgDeref
	ArgMut
)

// Arg is a function parameter, bound as a microstatement at the head of
// the function's body so parameter references resolve exactly like any
// other local.
type Arg struct {
	Node
	Name string
	Kind ArgKind
	Type ctype.CType
}

func (a *Arg) microstatement()      {}
func (a *Arg) GetType() ctype.CType { return a.Type }
func (a *Arg) String() string       { return a.Name + ": " + a.Type.StrictString() }

// FnCall is a direct call to a named, scope-resolved function.
type FnCall struct {
	Node
	Function   string
	Args       []Microstatement
	ReturnType ctype.CType
}

func (f *FnCall) microstatement()      {}
func (f *FnCall) GetType() ctype.CType { return f.ReturnType }
func (f *FnCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Function, strings.Join(parts, ", "))
}

// VarCall is a call through a value-bound function (the callee is a
// variable holding a function, not a name resolved via overloads).
type VarCall struct {
	Node
	Name string
	Type ctype.CType // the callee's Function type
	Args []Microstatement
}

func (v *VarCall) microstatement() {}
func (v *VarCall) GetType() ctype.CType {
	if fn, ok := v.Type.(ctype.Function); ok {
		return fn.Output
	}
	return v.Type
}
func (v *VarCall) String() string {
	parts := make([]string, len(v.Args))
	for i, a := range v.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", v.Name, strings.Join(parts, ", "))
}

// Closure is an anonymous local function appearing inline in the parent
// stream.
type Closure struct {
	Node
	Function *Function
}

func (c *Closure) microstatement()      {}
func (c *Closure) GetType() ctype.CType { return c.Function.Type }
func (c *Closure) String() string       { return "closure " + c.Function.Name }

// Value is a literal, a variable reference, or a pre-rendered expression
// string the backend emits verbatim.
type Value struct {
	Node
	Type           ctype.CType
	Representation string
}

func (v *Value) microstatement()      {}
func (v *Value) GetType() ctype.CType { return v.Type }
func (v *Value) String() string       { return v.Representation }

// Array is an array literal: a uniform Type and its lowered element
// values.
type Array struct {
	Node
	Type ctype.CType
	Vals []Microstatement
}

func (a *Array) microstatement()      {}
func (a *Array) GetType() ctype.CType { return a.Type }
func (a *Array) String() string {
	parts := make([]string, len(a.Vals))
	for i, v := range a.Vals {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Return wraps a function body's final value, or nil for a bare return.
type Return struct {
	Node
	Value Microstatement
}

func (r *Return) microstatement() {}
func (r *Return) GetType() ctype.CType {
	if r.Value == nil {
		return ctype.Void{}
	}
	return r.Value.GetType()
}
func (r *Return) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

// FunctionKind classifies how a Function's body (or lack of one) is
// realized, spec §4.4's `kind` field on the function record.
type FunctionKind int

const (
	Normal FunctionKind = iota
	Bind
	Derived
	DerivedVariadic
	Static
	Generic
	BoundGeneric
	External
	ExternalBind
	ExternalGeneric
)

// Function is one lowered (or not-yet-lowered, for Generic) function:
// its synthesized Function CType, its microstatement body, and how it
// was produced.
type Function struct {
	Name            string
	Type            ctype.CType // always a ctype.Function
	Body            []Microstatement
	Kind            FunctionKind
	ExternalBinding string // set for Bind/ExternalBind/ExternalGeneric kinds
}
