// Package ctype implements the compile-time type algebra (spec §3): a
// closed sum of type-level values that doubles as a value-level constant
// folder. A CType is simultaneously a type annotation and, once fully
// resolved, a literal: Int(3) is both "the type of the literal 3" and
// "the compile-time value 3".
package ctype

// CType is the closed sum of every compile-time type-algebra node. Each
// variant below is a distinct struct implementing this interface, mirroring
// how a nominal sum type is expressed in Go.
type CType interface {
	// StrictString renders the nominal form: named wrappers print their
	// name rather than unwrapping to their structural definition.
	StrictString() string
	// FunctionalString renders the structural form: named wrappers are
	// transparently unwrapped to what they actually contain.
	FunctionalString() string
	// Equals reports structural equality (invariant I4): two CTypes are
	// equal iff their strict strings match.
	Equals(other CType) bool
	isCType()
}

func strictStringAll(ts []CType, sep string) string {
	out := ""
	for i, t := range ts {
		if i != 0 {
			out += sep
		}
		out += t.StrictString()
	}
	return out
}

func functionalStringAll(ts []CType, sep string) string {
	out := ""
	for i, t := range ts {
		if i != 0 {
			out += sep
		}
		out += t.FunctionalString()
	}
	return out
}

// Equal is a free-function form of Equals for use as a slice predicate.
func Equal(a, b CType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StrictString() == b.StrictString()
}

// Void is the zero-member type: no value can inhabit it. Used as the
// input type of a nullary function and as the result of NewTuple with no
// members.
type Void struct{}

func (Void) isCType()                  {}
func (Void) StrictString() string      { return "()" }
func (Void) FunctionalString() string  { return "()" }
func (v Void) Equals(o CType) bool     { return Equal(v, o) }

// Infer is an unresolved type placeholder, optionally hinted by an
// interface name the eventual concrete type must satisfy.
type Infer struct {
	Name          string
	InterfaceHint string
}

func (Infer) isCType()                 {}
func (i Infer) StrictString() string     { return i.Name }
func (i Infer) FunctionalString() string { return i.Name }
func (i Infer) Equals(o CType) bool      { return Equal(i, o) }

// IntLit is a compile-time integer literal/type held as an int64; values
// outside the 64-bit range are not representable.
type IntLit struct {
	Value int64
}

func (IntLit) isCType()                 {}
func (l IntLit) StrictString() string     { return formatInt(l.Value) }
func (l IntLit) FunctionalString() string { return formatInt(l.Value) }
func (l IntLit) Equals(o CType) bool      { return Equal(l, o) }

// FloatLit is a compile-time floating-point literal/type.
type FloatLit struct {
	Value float64
}

func (FloatLit) isCType()                 {}
func (l FloatLit) StrictString() string     { return formatFloat(l.Value) }
func (l FloatLit) FunctionalString() string { return formatFloat(l.Value) }
func (l FloatLit) Equals(o CType) bool      { return Equal(l, o) }

// BoolLit is a compile-time boolean literal/type.
type BoolLit struct {
	Value bool
}

func (BoolLit) isCType()                 {}
func (l BoolLit) StrictString() string {
	if l.Value {
		return "true"
	}
	return "false"
}
func (l BoolLit) FunctionalString() string { return l.StrictString() }
func (l BoolLit) Equals(o CType) bool      { return Equal(l, o) }

// StringLit is a compile-time string literal/type (TString in spec §3.1).
type StringLit struct {
	Value string
}

func (StringLit) isCType()                 {}
func (l StringLit) StrictString() string     { return l.Value }
func (l StringLit) FunctionalString() string { return l.Value }
func (l StringLit) Equals(o CType) bool      { return Equal(l, o) }

// TypeAlias gives a structural CType a nominal name (spec's `Type`
// constructor). Strict string prints the name; functional string
// transparently unwraps to Inner.
type TypeAlias struct {
	Name  string
	Inner CType
}

func (TypeAlias) isCType()                 {}
func (t TypeAlias) StrictString() string     { return t.Name }
func (t TypeAlias) FunctionalString() string { return t.Inner.FunctionalString() }
func (t TypeAlias) Equals(o CType) bool      { return Equal(t, o) }

// Group is a parenthesized sub-expression surviving only until Degroup
// collapses it away (invariant I2).
type Group struct {
	Inner CType
}

func (Group) isCType()                 {}
func (g Group) StrictString() string     { return "(" + g.Inner.StrictString() + ")" }
func (g Group) FunctionalString() string { return g.Inner.FunctionalString() }
func (g Group) Equals(o CType) bool      { return Equal(g, o) }

// Generic is an unapplied generic type or function: Name bound to Params,
// with Body referencing those params pending a Binds application.
type Generic struct {
	Name   string
	Params []string
	Body   CType
}

func (Generic) isCType() {}
func (g Generic) StrictString() string {
	s := g.Name + "{"
	s += joinStrings(g.Params, ", ")
	s += "}"
	return s
}
func (g Generic) FunctionalString() string { return g.StrictString() }
func (g Generic) Equals(o CType) bool      { return Equal(g, o) }

// IntrinsicGeneric is a compiler-builtin generic identified by name and
// arity (e.g. Array, Buffer) rather than a user-declared Generic body.
type IntrinsicGeneric struct {
	Name  string
	Arity int
}

func (IntrinsicGeneric) isCType() {}
func (g IntrinsicGeneric) StrictString() string {
	s := g.Name + "{"
	for i := 0; i < g.Arity; i++ {
		if i != 0 {
			s += ", "
		}
		s += "arg" + formatInt(int64(i))
	}
	return s + "}"
}
func (g IntrinsicGeneric) FunctionalString() string { return g.StrictString() }
func (g IntrinsicGeneric) Equals(o CType) bool      { return Equal(g, o) }

// Binds applies concrete type arguments to a named generic, producing its
// specialization key (e.g. Binds(List, [Int]) for List{Int}).
type Binds struct {
	Name CType
	Args []CType
}

func (Binds) isCType() {}
func (b Binds) StrictString() string {
	return "Binds{" + b.Name.StrictString() + ", " + strictStringAll(b.Args, ", ") + "}"
}
func (b Binds) FunctionalString() string {
	return "Binds{" + b.Name.FunctionalString() + ", " + functionalStringAll(b.Args, ", ") + "}"
}
func (b Binds) Equals(o CType) bool { return Equal(b, o) }

func joinStrings(ss []string, sep string) string {
	out := ""
	for i, s := range ss {
		if i != 0 {
			out += sep
		}
		out += s
	}
	return out
}
