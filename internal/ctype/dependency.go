package ctype

import "golang.org/x/mod/semver"

// Dependency names an external package and the semver range/version it
// must satisfy. Name and Version are both CTypes (normally StringLit) so
// they can remain symbolic until resolved by the loader.
type Dependency struct {
	Name    CType
	Version CType
}

func (Dependency) isCType() {}
func (d Dependency) StrictString() string {
	return "Dependency{" + d.Name.StrictString() + ", " + d.Version.StrictString() + "}"
}
func (d Dependency) FunctionalString() string {
	return "Dependency{" + d.Name.FunctionalString() + ", " + d.Version.FunctionalString() + "}"
}
func (d Dependency) Equals(o CType) bool { return Equal(d, o) }

// SatisfiesVersion reports whether candidate satisfies the Dependency's
// required version, using semantic-version precedence (spec §3.1's
// Dependency constructor names a package plus a version constraint).
// Both strings get a leading "v" if they lack one, as semver expects; no
// other normalization is done. When either is then not valid semver the
// two must be equal. SatisfiesVersion treats Version as a minimum bound.
func (d Dependency) SatisfiesVersion(candidate string) bool {
	required, ok := d.Version.(StringLit)
	if !ok {
		return false
	}
	want := normalizeSemver(required.Value)
	got := normalizeSemver(candidate)
	if !semver.IsValid(want) || !semver.IsValid(got) {
		return want == got
	}
	return semver.Compare(got, want) >= 0
}

func normalizeSemver(v string) string {
	if len(v) == 0 || v[0] != 'v' {
		return "v" + v
	}
	return v
}

// Rust marks Dep as a Rust-ecosystem dependency target (spec's
// target-backend markers, §3.1).
type Rust struct{ Dep CType }

func (Rust) isCType()                 {}
func (r Rust) StrictString() string     { return "Rust{" + r.Dep.StrictString() + "}" }
func (r Rust) FunctionalString() string { return "Rust{" + r.Dep.FunctionalString() + "}" }
func (r Rust) Equals(o CType) bool      { return Equal(r, o) }

// Node marks Dep as a Node-ecosystem (scripting backend) dependency target.
type Node struct{ Dep CType }

func (Node) isCType()                 {}
func (n Node) StrictString() string     { return "Node{" + n.Dep.StrictString() + "}" }
func (n Node) FunctionalString() string { return "Node{" + n.Dep.FunctionalString() + "}" }
func (n Node) Equals(o CType) bool      { return Equal(n, o) }

// From marks Target as the source a value must be converted/imported from.
type From struct{ Target CType }

func (From) isCType()                 {}
func (f From) StrictString() string     { return "From{" + f.Target.StrictString() + "}" }
func (f From) FunctionalString() string { return "From{" + f.Target.FunctionalString() + "}" }
func (f From) Equals(o CType) bool      { return Equal(f, o) }

// Import binds Name to a value pulled in from Dep, triggering the loader
// (spec §6.4) once Dep resolves to a concrete Dependency.
type Import struct {
	Name CType
	Dep  CType
}

func (Import) isCType() {}
func (i Import) StrictString() string {
	return "Import{" + i.Name.StrictString() + ", " + i.Dep.StrictString() + "}"
}
func (i Import) FunctionalString() string {
	return "Import{" + i.Name.FunctionalString() + ", " + i.Dep.FunctionalString() + "}"
}
func (i Import) Equals(o CType) bool { return Equal(i, o) }
