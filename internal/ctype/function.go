package ctype

// Function is an arrow type: Input (typically a Tuple of argument types,
// or Void for nullary) to Output.
type Function struct {
	Input  CType
	Output CType
}

func (Function) isCType() {}
func (f Function) StrictString() string {
	return "(" + f.Input.StrictString() + ") -> " + f.Output.StrictString()
}
func (f Function) FunctionalString() string {
	return "Function{" + f.Input.FunctionalString() + ", " + f.Output.FunctionalString() + "}"
}
func (f Function) Equals(o CType) bool { return Equal(f, o) }

// Call marks Name as resolving through FnType rather than as a plain
// value binding, distinguishing a function reference from a function call
// result during type resolution (spec §3.1).
type Call struct {
	Name   CType
	FnType CType
}

func (Call) isCType() {}
func (c Call) StrictString() string     { return c.Name.StrictString() + " :: " + c.FnType.StrictString() }
func (c Call) FunctionalString() string { return "Call{" + c.Name.FunctionalString() + ", " + c.FnType.FunctionalString() + "}" }
func (c Call) Equals(o CType) bool      { return Equal(c, o) }

// Infix, Prefix and Postfix mark the fixity a FnType should be dispatched under.
type Infix struct{ Op CType }

func (Infix) isCType()                 {}
func (i Infix) StrictString() string     { return "Infix{" + i.Op.StrictString() + "}" }
func (i Infix) FunctionalString() string { return "Infix{" + i.Op.FunctionalString() + "}" }
func (i Infix) Equals(o CType) bool      { return Equal(i, o) }

type Prefix struct{ Op CType }

func (Prefix) isCType()                 {}
func (p Prefix) StrictString() string     { return "Prefix{" + p.Op.StrictString() + "}" }
func (p Prefix) FunctionalString() string { return "Prefix{" + p.Op.FunctionalString() + "}" }
func (p Prefix) Equals(o CType) bool      { return Equal(p, o) }

type Postfix struct{ Op CType }

func (Postfix) isCType()                 {}
func (p Postfix) StrictString() string     { return "Postfix{" + p.Op.StrictString() + "}" }
func (p Postfix) FunctionalString() string { return "Postfix{" + p.Op.FunctionalString() + "}" }
func (p Postfix) Equals(o CType) bool      { return Equal(p, o) }

// Method marks Fn as callable in `base.method(args)` position.
type Method struct{ Fn CType }

func (Method) isCType()                 {}
func (m Method) StrictString() string     { return "Method{" + m.Fn.StrictString() + "}" }
func (m Method) FunctionalString() string { return "Method{" + m.Fn.FunctionalString() + "}" }
func (m Method) Equals(o CType) bool      { return Equal(m, o) }

// Property marks Prop as accessible in `base.prop` position without a call.
type Property struct{ Prop CType }

func (Property) isCType()                 {}
func (p Property) StrictString() string     { return "Property{" + p.Prop.StrictString() + "}" }
func (p Property) FunctionalString() string { return "Property{" + p.Prop.FunctionalString() + "}" }
func (p Property) Equals(o CType) bool      { return Equal(p, o) }

// Cast marks Target as reachable via an explicit conversion call.
type Cast struct{ Target CType }

func (Cast) isCType()                 {}
func (c Cast) StrictString() string     { return "Cast{" + c.Target.StrictString() + "}" }
func (c Cast) FunctionalString() string { return "Cast{" + c.Target.FunctionalString() + "}" }
func (c Cast) Equals(o CType) bool      { return Equal(c, o) }
