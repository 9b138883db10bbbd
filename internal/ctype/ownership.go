package ctype

// Own, Deref, and Mut are ownership markers (spec §3.1, §3.3): they round
// trip through the type algebra unchanged so a backend can consume them,
// but carry no reduction semantics of their own — the lowering and
// specialization stages never interpret them, they only forward them.

type Own struct{ Inner CType }

func (Own) isCType()                 {}
func (o Own) StrictString() string     { return o.Inner.StrictString() }
func (o Own) FunctionalString() string { return "Own{" + o.Inner.FunctionalString() + "}" }
func (o Own) Equals(other CType) bool  { return Equal(o, other) }

type Deref struct{ Inner CType }

func (Deref) isCType()                 {}
func (d Deref) StrictString() string     { return d.Inner.StrictString() }
func (d Deref) FunctionalString() string { return "Deref{" + d.Inner.FunctionalString() + "}" }
func (d Deref) Equals(other CType) bool  { return Equal(d, other) }

type Mut struct{ Inner CType }

func (Mut) isCType()                 {}
func (m Mut) StrictString() string     { return m.Inner.StrictString() }
func (m Mut) FunctionalString() string { return "Mut{" + m.Inner.FunctionalString() + "}" }
func (m Mut) Equals(other CType) bool  { return Equal(m, other) }
