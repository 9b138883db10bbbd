package ctype

// Degroup removes every Group node from t's tree (invariant I2: a CType
// handed to the lowering stage never contains a Group). It recurses into
// every composite so a Group buried arbitrarily deep is still collapsed.
func Degroup(t CType) CType {
	switch v := t.(type) {
	case Group:
		return Degroup(v.Inner)
	case TypeAlias:
		return TypeAlias{Name: v.Name, Inner: Degroup(v.Inner)}
	case Binds:
		return Binds{Name: Degroup(v.Name), Args: degroupAll(v.Args)}
	case Function:
		return Function{Input: Degroup(v.Input), Output: Degroup(v.Output)}
	case Call:
		return Call{Name: Degroup(v.Name), FnType: Degroup(v.FnType)}
	case Infix:
		return Infix{Op: Degroup(v.Op)}
	case Prefix:
		return Prefix{Op: Degroup(v.Op)}
	case Postfix:
		return Postfix{Op: Degroup(v.Op)}
	case Method:
		return Method{Fn: Degroup(v.Fn)}
	case Property:
		return Property{Prop: Degroup(v.Prop)}
	case Cast:
		return Cast{Target: Degroup(v.Target)}
	case Own:
		return Own{Inner: Degroup(v.Inner)}
	case Deref:
		return Deref{Inner: Degroup(v.Inner)}
	case Mut:
		return Mut{Inner: Degroup(v.Inner)}
	case Dependency:
		return Dependency{Name: Degroup(v.Name), Version: Degroup(v.Version)}
	case Rust:
		return Rust{Dep: Degroup(v.Dep)}
	case Node:
		return Node{Dep: Degroup(v.Dep)}
	case From:
		return From{Target: Degroup(v.Target)}
	case Import:
		return Import{Name: Degroup(v.Name), Dep: Degroup(v.Dep)}
	case Tuple:
		return Tuple{Members: degroupAll(v.Members)}
	case Field:
		return Field{Label: v.Label, Inner: Degroup(v.Inner)}
	case Either:
		return Either{Members: degroupAll(v.Members)}
	case Prop:
		return Prop{Base: Degroup(v.Base), Key: Degroup(v.Key)}
	case AnyOf:
		return AnyOf{Candidates: degroupAll(v.Candidates)}
	case Buffer:
		return Buffer{Inner: Degroup(v.Inner), Size: Degroup(v.Size)}
	case Array:
		return Array{Inner: Degroup(v.Inner)}
	case Op:
		return Op{Kind: v.Kind, Args: degroupAll(v.Args)}
	default:
		return t
	}
}

func degroupAll(ts []CType) []CType {
	out := make([]CType, len(ts))
	for i, t := range ts {
		out[i] = Degroup(t)
	}
	return out
}
