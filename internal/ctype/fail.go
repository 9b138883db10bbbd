package ctype

// Fail is a sentinel type carrying a message (spec §3.1, §6.3). The
// two-argument If in typeresolve uses it as the result of the false
// branch. A declaration whose condition is false is skipped without
// registering a Fail in its place, and no resolver raises
// errcode.TYP007/TYP010 on meeting a Fail.
type Fail struct {
	Message string
}

func (Fail) isCType()                 {}
func (f Fail) StrictString() string     { return "Fail(" + f.Message + ")" }
func (f Fail) FunctionalString() string { return "Fail{" + f.Message + "}" }
func (f Fail) Equals(o CType) bool      { return Equal(f, o) }

// IsFail reports whether t is the Fail sentinel.
func IsFail(t CType) bool {
	_, ok := t.(Fail)
	return ok
}
