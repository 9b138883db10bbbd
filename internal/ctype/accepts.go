package ctype

// Accepts reports whether a value of type arg may be passed where target
// is expected (spec §3.3, used by overload resolution in C4/C7). An AnyOf
// argument is accepted if target accepts at least one candidate; two
// Function types with the same declared-parameter arity are treated as
// compatible without fully inferring generics (mirrors the teacher's
// lightweight arity check rather than a complete unifier); everything
// else falls back to equality of the strict string.
func Accepts(target, arg CType) bool {
	if anyOf, ok := arg.(AnyOf); ok {
		for _, candidate := range anyOf.Candidates {
			if Accepts(target, candidate) {
				return true
			}
		}
		return false
	}
	if tf, ok := target.(Function); ok {
		if af, ok := arg.(Function); ok {
			return arity(tf.Input) == arity(af.Input)
		}
		if g, ok := arg.(Generic); ok {
			if gf, ok := g.Body.(Function); ok {
				return arity(tf.Input) == arity(gf.Input)
			}
		}
	}
	return target.StrictString() == arg.StrictString()
}

// arity counts the positional members of a Function's input type: a
// Tuple contributes its member count, Void contributes zero, anything
// else is a single positional argument.
func arity(input CType) int {
	switch v := input.(type) {
	case Tuple:
		return len(v.Members)
	case Void:
		return 0
	default:
		return 1
	}
}

// UnpackArgs returns the positional argument types a Function's input
// represents, unwrapping a Tuple and treating Void as zero arguments.
func UnpackArgs(input CType) []CType {
	switch v := input.(type) {
	case Tuple:
		return v.Members
	case Void:
		return nil
	default:
		return []CType{v}
	}
}
