package ctype

// SwapSubtype replaces every occurrence of oldType (by structural equality)
// within t with newType. Op nodes are re-reduced bottom-up as the swap
// passes through them, so e.g. swapping N for 3 inside Add{N, 1} yields
// Int(4) directly rather than a symbolic Add{3, 1} (spec §8's monomorphization
// scenario relies on this collapsing during specialization, C8).
func SwapSubtype(t, oldType, newType CType) (CType, error) {
	if t.Equals(oldType) {
		return newType, nil
	}
	switch v := t.(type) {
	case Void, Infer, Generic, IntrinsicGeneric, IntLit, FloatLit, BoolLit, StringLit, Fail:
		return t, nil
	case TypeAlias:
		inner, err := SwapSubtype(v.Inner, oldType, newType)
		if err != nil {
			return nil, err
		}
		return TypeAlias{Name: v.Name, Inner: inner}, nil
	case Group:
		return SwapSubtype(v.Inner, oldType, newType)
	case Binds:
		name, err := SwapSubtype(v.Name, oldType, newType)
		if err != nil {
			return nil, err
		}
		args, err := swapAll(v.Args, oldType, newType)
		if err != nil {
			return nil, err
		}
		return Binds{Name: name, Args: args}, nil
	case Function:
		in, err := SwapSubtype(v.Input, oldType, newType)
		if err != nil {
			return nil, err
		}
		out, err := SwapSubtype(v.Output, oldType, newType)
		if err != nil {
			return nil, err
		}
		return Function{Input: in, Output: out}, nil
	case Call:
		n, err := SwapSubtype(v.Name, oldType, newType)
		if err != nil {
			return nil, err
		}
		f, err := SwapSubtype(v.FnType, oldType, newType)
		if err != nil {
			return nil, err
		}
		return Call{Name: n, FnType: f}, nil
	case Infix:
		o, err := SwapSubtype(v.Op, oldType, newType)
		return Infix{Op: o}, err
	case Prefix:
		o, err := SwapSubtype(v.Op, oldType, newType)
		return Prefix{Op: o}, err
	case Postfix:
		o, err := SwapSubtype(v.Op, oldType, newType)
		return Postfix{Op: o}, err
	case Method:
		f, err := SwapSubtype(v.Fn, oldType, newType)
		return Method{Fn: f}, err
	case Property:
		p, err := SwapSubtype(v.Prop, oldType, newType)
		return Property{Prop: p}, err
	case Cast:
		target, err := SwapSubtype(v.Target, oldType, newType)
		return Cast{Target: target}, err
	case Own:
		inner, err := SwapSubtype(v.Inner, oldType, newType)
		return Own{Inner: inner}, err
	case Deref:
		inner, err := SwapSubtype(v.Inner, oldType, newType)
		return Deref{Inner: inner}, err
	case Mut:
		inner, err := SwapSubtype(v.Inner, oldType, newType)
		return Mut{Inner: inner}, err
	case Dependency:
		n, err := SwapSubtype(v.Name, oldType, newType)
		if err != nil {
			return nil, err
		}
		ver, err := SwapSubtype(v.Version, oldType, newType)
		if err != nil {
			return nil, err
		}
		return Dependency{Name: n, Version: ver}, nil
	case Rust:
		d, err := SwapSubtype(v.Dep, oldType, newType)
		return Rust{Dep: d}, err
	case Node:
		d, err := SwapSubtype(v.Dep, oldType, newType)
		return Node{Dep: d}, err
	case From:
		target, err := SwapSubtype(v.Target, oldType, newType)
		return From{Target: target}, err
	case Import:
		n, err := SwapSubtype(v.Name, oldType, newType)
		if err != nil {
			return nil, err
		}
		d, err := SwapSubtype(v.Dep, oldType, newType)
		if err != nil {
			return nil, err
		}
		return Import{Name: n, Dep: d}, nil
	case Tuple:
		members, err := swapAll(v.Members, oldType, newType)
		if err != nil {
			return nil, err
		}
		return NewTuple(members...), nil
	case Field:
		inner, err := SwapSubtype(v.Inner, oldType, newType)
		return Field{Label: v.Label, Inner: inner}, err
	case Either:
		members, err := swapAll(v.Members, oldType, newType)
		if err != nil {
			return nil, err
		}
		return NewEither(members...), nil
	case Prop:
		base, err := SwapSubtype(v.Base, oldType, newType)
		if err != nil {
			return nil, err
		}
		key, err := SwapSubtype(v.Key, oldType, newType)
		if err != nil {
			return nil, err
		}
		return EvalProp(base, key)
	case AnyOf:
		candidates, err := swapAll(v.Candidates, oldType, newType)
		if err != nil {
			return nil, err
		}
		return NewAnyOf(candidates...), nil
	case Buffer:
		inner, err := SwapSubtype(v.Inner, oldType, newType)
		if err != nil {
			return nil, err
		}
		size, err := SwapSubtype(v.Size, oldType, newType)
		if err != nil {
			return nil, err
		}
		return Buffer{Inner: inner, Size: size}, nil
	case Array:
		inner, err := SwapSubtype(v.Inner, oldType, newType)
		return Array{Inner: inner}, err
	case Op:
		args, err := swapAll(v.Args, oldType, newType)
		if err != nil {
			return nil, err
		}
		return reduceSwappedOp(v.Kind, args)
	default:
		return t, nil
	}
}

func swapAll(ts []CType, oldType, newType CType) ([]CType, error) {
	out := make([]CType, len(ts))
	for i, t := range ts {
		swapped, err := SwapSubtype(t, oldType, newType)
		if err != nil {
			return nil, err
		}
		out[i] = swapped
	}
	return out, nil
}

// reduceSwappedOp attempts to condense an Op's swapped args back down to a
// literal, the way Add{N, 1} collapses to Int(4) once N is swapped for 3.
func reduceSwappedOp(kind OpKind, args []CType) (CType, error) {
	switch kind {
	case OpNeg, OpLen, OpSize, OpFileStr, OpEnvExists, OpNot:
		return reduceUnary(kind, args[0])
	case OpIf:
		return NewIf(args[0], args[1], args[2])
	case OpConcat:
		return NewConcat(args[0], args[1])
	case OpEnv:
		return NewEnv(args...)
	default:
		acc := args[0]
		var err error
		for _, next := range args[1:] {
			acc, err = reduceBinary(kind, acc, next)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
}
