package ctype

import (
	"os"

	"github.com/alantech/alan/internal/errcode"
)

// envLookup resolves Env/EnvExists keys. It defaults to the process
// environment but can be swapped out (for tests, or so the host program
// can hand the core a captured/sandboxed environment map, spec §6.2)
// without ctype depending on the program package.
var envLookup = os.LookupEnv

// SetEnvLookup overrides how Env/EnvExists resolve keys. Passing nil
// restores the os.LookupEnv default.
func SetEnvLookup(lookup func(string) (string, bool)) {
	if lookup == nil {
		envLookup = os.LookupEnv
		return
	}
	envLookup = lookup
}

func lookupEnv(key string) (string, bool) { return envLookup(key) }

func evalEnv(key string) (CType, error) {
	v, ok := lookupEnv(key)
	if !ok {
		return nil, errcode.WrapReport(errcode.New(errcode.TYP011, "typealgebra", "failed to load environment variable "+key))
	}
	return StringLit{Value: v}, nil
}

// readFile is swappable for tests; defaults to os.ReadFile.
var readFile = os.ReadFile

func evalFileStr(path string) (CType, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, errcode.WrapReport(errcode.New(errcode.TYP006, "typealgebra", "failed to read "+path+": "+err.Error()))
	}
	return StringLit{Value: string(data)}, nil
}

// evalLen implements the Len{T} intrinsic (spec §3.1): Tuple and Either
// report their member count, Buffer its static size, everything else that
// isn't an Array (whose length is dynamic, TYP004) reports 1.
func evalLen(t CType) (CType, error) {
	switch v := t.(type) {
	case Tuple:
		return IntLit{Value: int64(len(v.Members))}, nil
	case Either:
		return IntLit{Value: int64(len(v.Members))}, nil
	case Buffer:
		if size, ok := v.Size.(IntLit); ok {
			return IntLit{Value: size.Value}, nil
		}
		return Op{Kind: OpLen, Args: []CType{t}}, nil
	case Array:
		return nil, errcode.WrapReport(errcode.New(errcode.TYP004, "typealgebra", "cannot get a compile-time length for a variable-length Array"))
	case Infer:
		return Op{Kind: OpLen, Args: []CType{t}}, nil
	default:
		return IntLit{Value: 1}, nil
	}
}

var primitiveSizes = map[string]int64{
	"i8": 1, "u8": 1,
	"i16": 2, "u16": 2,
	"i32": 4, "u32": 4, "f32": 4,
	"i64": 8, "u64": 8, "f64": 8,
}

// evalSize implements the Size{T} intrinsic (spec §3.1).
func evalSize(t CType) (CType, error) {
	switch v := t.(type) {
	case Void:
		return IntLit{Value: 0}, nil
	case Infer:
		return Op{Kind: OpSize, Args: []CType{t}}, nil
	case TypeAlias:
		return evalSize(v.Inner)
	case Generic, IntrinsicGeneric:
		return nil, errcode.WrapReport(errcode.New(errcode.TYP005, "typealgebra", "cannot determine the size of an unbound generic"))
	case Binds:
		if len(v.Args) != 0 {
			return nil, errcode.WrapReport(errcode.New(errcode.TYP005, "typealgebra", "cannot determine the size of an unbound generic"))
		}
		name, ok := v.Name.(StringLit)
		if !ok {
			return nil, errcode.WrapReport(errcode.New(errcode.TYP005, "typealgebra", "cannot determine the size of "+v.Name.FunctionalString()))
		}
		size, known := primitiveSizes[name.Value]
		if !known {
			return nil, errcode.WrapReport(errcode.New(errcode.TYP005, "typealgebra", "cannot determine the size of "+name.Value))
		}
		return IntLit{Value: size}, nil
	case IntLit, FloatLit:
		return IntLit{Value: 8}, nil
	case BoolLit:
		return IntLit{Value: 1}, nil
	case StringLit:
		return IntLit{Value: int64(len(v.Value))}, nil
	case Group:
		return evalSize(v.Inner)
	case Field:
		return evalSize(v.Inner)
	case Tuple:
		total := int64(0)
		for _, m := range v.Members {
			s, err := evalSize(m)
			if err != nil {
				return nil, err
			}
			total += s.(IntLit).Value
		}
		return IntLit{Value: total}, nil
	case Either:
		max := int64(0)
		for _, m := range v.Members {
			s, err := evalSize(m)
			if err != nil {
				return nil, err
			}
			if s.(IntLit).Value > max {
				max = s.(IntLit).Value
			}
		}
		return IntLit{Value: max}, nil
	case Buffer:
		base, err := evalSize(v.Inner)
		if err != nil {
			return nil, err
		}
		if sizeLit, ok := v.Size.(IntLit); ok {
			return IntLit{Value: base.(IntLit).Value + sizeLit.Value}, nil
		}
		return Op{Kind: OpSize, Args: []CType{v.Size}}, nil
	case Array:
		return nil, errcode.WrapReport(errcode.New(errcode.TYP005, "typealgebra", "cannot determine the size of an array, its length is not static"))
	case Function, Call, Infix, Prefix, Method, Property:
		return nil, errcode.WrapReport(errcode.New(errcode.TYP005, "typealgebra", "cannot determine the size of a function"))
	default:
		return nil, errcode.WrapReport(errcode.New(errcode.TYP005, "typealgebra", "getting the size of "+t.FunctionalString()+" doesn't make any sense"))
	}
}

// EvalProp resolves Base.Key once both are concrete: Key as a StringLit
// selects a Field by label, Key as an IntLit selects a Tuple position.
func EvalProp(base, key CType) (CType, error) {
	switch b := base.(type) {
	case Tuple:
		if idx, ok := key.(IntLit); ok {
			if idx.Value < 0 || int(idx.Value) >= len(b.Members) {
				return nil, errcode.WrapReport(errcode.New(errcode.TYP008, "typealgebra", "Prop index out of range"))
			}
			return b.Members[idx.Value], nil
		}
	case Field:
		if label, ok := key.(StringLit); ok && label.Value == b.Label {
			return b.Inner, nil
		}
	case Op:
		if b.Kind == OpIf && len(b.Args) >= 3 {
			// Args is [cond, branch0, branch1, ...]; on TIf(_, [a, b]) the key
			// selects the branch directly once the condition itself never
			// collapsed (both branches retained).
			if idx, ok := key.(IntLit); ok && idx.Value >= 0 && int(idx.Value)+1 < len(b.Args) {
				return b.Args[idx.Value+1], nil
			}
		}
	}
	if _, ok := base.(Infer); ok {
		return Prop{Base: base, Key: key}, nil
	}
	return nil, errcode.WrapReport(errcode.New(errcode.TYP008, "typealgebra", "invalid Prop access on "+base.FunctionalString()))
}
