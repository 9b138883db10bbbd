package ctype

// Tuple is a fixed-arity product of heterogeneous members, right-flattened
// on construction so Tuple(A, Tuple(B, C)) and Tuple(A, B, C) are the same
// node (spec §3.2).
type Tuple struct {
	Members []CType
}

func (Tuple) isCType() {}
func (t Tuple) StrictString() string {
	return "(" + strictStringAll(t.Members, ", ") + ")"
}
func (t Tuple) FunctionalString() string {
	return "Tuple{" + functionalStringAll(t.Members, ", ") + "}"
}
func (t Tuple) Equals(o CType) bool { return Equal(t, o) }

// NewTuple builds a Tuple, flattening any immediately-nested Tuple members
// so the flattening invariant holds regardless of construction order.
func NewTuple(members ...CType) CType {
	flat := make([]CType, 0, len(members))
	for _, m := range members {
		if inner, ok := m.(Tuple); ok {
			flat = append(flat, inner.Members...)
		} else {
			flat = append(flat, m)
		}
	}
	if len(flat) == 0 {
		return Void{}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Tuple{Members: flat}
}

// Field labels one member of a Tuple or record-like composite.
type Field struct {
	Label string
	Inner CType
}

func (Field) isCType() {}
func (f Field) StrictString() string     { return f.Label + ": " + f.Inner.StrictString() }
func (f Field) FunctionalString() string { return "Field{" + f.Label + ", " + f.Inner.FunctionalString() + "}" }
func (f Field) Equals(o CType) bool      { return Equal(f, o) }

// Either is a closed sum of alternative member types, flattened the same
// way as Tuple.
type Either struct {
	Members []CType
}

func (Either) isCType() {}
func (e Either) StrictString() string {
	return "(" + strictStringAll(e.Members, " | ") + ")"
}
func (e Either) FunctionalString() string {
	return "Either{" + functionalStringAll(e.Members, ", ") + "}"
}
func (e Either) Equals(o CType) bool { return Equal(e, o) }

// NewEither builds an Either, flattening nested Either members.
func NewEither(members ...CType) CType {
	flat := make([]CType, 0, len(members))
	for _, m := range members {
		if inner, ok := m.(Either); ok {
			flat = append(flat, inner.Members...)
		} else {
			flat = append(flat, m)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Either{Members: flat}
}

// AnyOf is an overload-resolution union: Accepts treats it as satisfied by
// any one candidate rather than requiring an exact structural match.
type AnyOf struct {
	Candidates []CType
}

func (AnyOf) isCType() {}
func (a AnyOf) StrictString() string {
	return "(" + strictStringAll(a.Candidates, " & ") + ")"
}
func (a AnyOf) FunctionalString() string {
	return "AnyOf{" + functionalStringAll(a.Candidates, ", ") + "}"
}
func (a AnyOf) Equals(o CType) bool { return Equal(a, o) }

// NewAnyOf builds an AnyOf, flattening nested AnyOf candidates.
func NewAnyOf(candidates ...CType) CType {
	flat := make([]CType, 0, len(candidates))
	for _, c := range candidates {
		if inner, ok := c.(AnyOf); ok {
			flat = append(flat, inner.Candidates...)
		} else {
			flat = append(flat, c)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return AnyOf{Candidates: flat}
}

// Buffer is a fixed-size contiguous run of Inner, with Size itself a CType
// so it can remain symbolic (an unresolved Infer or Op) until collapsed.
type Buffer struct {
	Inner CType
	Size  CType
}

func (Buffer) isCType() {}
func (b Buffer) StrictString() string {
	return b.Inner.StrictString() + "[" + b.Size.StrictString() + "]"
}
func (b Buffer) FunctionalString() string {
	return "Buffer{" + b.Inner.FunctionalString() + ", " + b.Size.FunctionalString() + "}"
}
func (b Buffer) Equals(o CType) bool { return Equal(b, o) }

// Array is a dynamically-sized, heap-allocated run of Inner.
type Array struct {
	Inner CType
}

func (Array) isCType() {}
func (a Array) StrictString() string     { return a.Inner.StrictString() + "[]" }
func (a Array) FunctionalString() string { return "Array{" + a.Inner.FunctionalString() + "}" }
func (a Array) Equals(o CType) bool      { return Equal(a, o) }

// Prop indexes into Base by Key, either a field label (StringLit) or a
// tuple position (IntLit). EvalProp (in reduce.go) resolves it once both
// sides are concrete.
type Prop struct {
	Base CType
	Key  CType
}

func (Prop) isCType() {}
func (p Prop) StrictString() string     { return p.Base.StrictString() + "." + p.Key.StrictString() }
func (p Prop) FunctionalString() string { return "Prop{" + p.Base.FunctionalString() + ", " + p.Key.FunctionalString() + "}" }
func (p Prop) Equals(o CType) bool      { return Equal(p, o) }
