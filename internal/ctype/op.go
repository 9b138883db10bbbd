package ctype

import (
	"math"
	"strings"

	"github.com/alantech/alan/internal/errcode"
)

// OpKind enumerates the compile-time arithmetic, logical, comparison, and
// string/environment intrinsics of spec §3.1. They share one node shape
// (Op) the way the teacher's core package shares one BinOp/UnOp shape
// across its arithmetic operators, rather than minting a distinct struct
// per operator.
type OpKind int

const (
	OpAdd OpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpMin
	OpMax
	OpNeg
	OpLen
	OpSize
	OpFileStr
	OpConcat
	OpEnv
	OpEnvExists
	OpIf
	OpAnd
	OpOr
	OpXor
	OpNot
	OpNand
	OpNor
	OpXnor
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

type opShape struct {
	name   string // functional-string brace name
	infix  string // strict-string infix separator, empty if brace-style
	prefix string // strict-string unary prefix, empty if not unary-prefix
}

var opShapes = map[OpKind]opShape{
	OpAdd:       {name: "Add", infix: " + "},
	OpSub:       {name: "Sub", infix: " - "},
	OpMul:       {name: "Mul", infix: " * "},
	OpDiv:       {name: "Div", infix: " / "},
	OpMod:       {name: "Mod", infix: " % "},
	OpPow:       {name: "Pow", infix: " ** "},
	OpMin:       {name: "Min"},
	OpMax:       {name: "Max"},
	OpNeg:       {name: "Neg", prefix: "-"},
	OpLen:       {name: "Len"},
	OpSize:      {name: "Size"},
	OpFileStr:   {name: "FileStr"},
	OpConcat:    {name: "Concat"},
	OpEnv:       {name: "Env"},
	OpEnvExists: {name: "EnvExists"},
	OpIf:        {name: "If"},
	OpAnd:       {name: "And", infix: " && "},
	OpOr:        {name: "Or", infix: " || "},
	OpXor:       {name: "Xor", infix: " ^ "},
	OpNot:       {name: "Not", prefix: "!"},
	OpNand:      {name: "Nand", infix: " !& "},
	OpNor:       {name: "Nor", infix: " !| "},
	OpXnor:      {name: "Xnor", infix: " !^ "},
	OpEq:        {name: "TEq", infix: " == "},
	OpNeq:       {name: "Neq", infix: " != "},
	OpLt:        {name: "Lt", infix: " < "},
	OpLte:       {name: "Lte", infix: " <= "},
	OpGt:        {name: "Gt", infix: " > "},
	OpGte:       {name: "Gte", infix: " >= "},
}

// Op is the single node shape for every compile-time arithmetic, logical,
// comparison, and string/environment intrinsic. A symbolic Op (one whose
// Args are not all concrete literals) is a legal CType in its own right;
// SwapSubtype re-reduces it (reduceSwappedOp) after substituting into its
// Args, collapsing it to a literal once the Args allow.
type Op struct {
	Kind OpKind
	Args []CType
}

func (Op) isCType() {}

func (op Op) StrictString() string {
	shape := opShapes[op.Kind]
	if shape.prefix != "" {
		return shape.prefix + op.Args[0].StrictString()
	}
	if shape.infix != "" {
		return strictStringAll(op.Args, shape.infix)
	}
	return shape.name + "{" + strictStringAll(op.Args, ", ") + "}"
}

func (op Op) FunctionalString() string {
	shape := opShapes[op.Kind]
	return shape.name + "{" + functionalStringAll(op.Args, ", ") + "}"
}

func (op Op) Equals(o CType) bool { return Equal(op, o) }

// unary/binary smart constructors used by typeresolve when lowering
// operator-mapping function bodies into type algebra nodes.

func NewNeg(a CType) (CType, error)       { return reduceUnary(OpNeg, a) }
func NewLen(a CType) (CType, error)       { return reduceUnary(OpLen, a) }
func NewSize(a CType) (CType, error)      { return reduceUnary(OpSize, a) }
func NewFileStr(a CType) (CType, error)   { return reduceUnary(OpFileStr, a) }
func NewEnvExists(a CType) (CType, error) { return reduceUnary(OpEnvExists, a) }
func NewNot(a CType) (CType, error)       { return reduceUnary(OpNot, a) }

func NewAdd(a, b CType) (CType, error)  { return reduceBinary(OpAdd, a, b) }
func NewSub(a, b CType) (CType, error)  { return reduceBinary(OpSub, a, b) }
func NewMul(a, b CType) (CType, error)  { return reduceBinary(OpMul, a, b) }
func NewDiv(a, b CType) (CType, error)  { return reduceBinary(OpDiv, a, b) }
func NewMod(a, b CType) (CType, error)  { return reduceBinary(OpMod, a, b) }
func NewPow(a, b CType) (CType, error)  { return reduceBinary(OpPow, a, b) }
func NewMin(a, b CType) (CType, error)  { return reduceBinary(OpMin, a, b) }
func NewMax(a, b CType) (CType, error)  { return reduceBinary(OpMax, a, b) }
func NewAnd(a, b CType) (CType, error)  { return reduceBinary(OpAnd, a, b) }
func NewOr(a, b CType) (CType, error)   { return reduceBinary(OpOr, a, b) }
func NewXor(a, b CType) (CType, error)  { return reduceBinary(OpXor, a, b) }
func NewNand(a, b CType) (CType, error) { return reduceBinary(OpNand, a, b) }
func NewNor(a, b CType) (CType, error)  { return reduceBinary(OpNor, a, b) }
func NewXnor(a, b CType) (CType, error) { return reduceBinary(OpXnor, a, b) }
func NewEq(a, b CType) (CType, error)   { return reduceBinary(OpEq, a, b) }
func NewNeq(a, b CType) (CType, error)  { return reduceBinary(OpNeq, a, b) }
func NewLt(a, b CType) (CType, error)   { return reduceBinary(OpLt, a, b) }
func NewLte(a, b CType) (CType, error)  { return reduceBinary(OpLte, a, b) }
func NewGt(a, b CType) (CType, error)   { return reduceBinary(OpGt, a, b) }
func NewGte(a, b CType) (CType, error)  { return reduceBinary(OpGte, a, b) }
func NewConcat(a, b CType) (CType, error) {
	if isConcrete(a) && isConcrete(b) {
		as, aok := a.(StringLit)
		bs, bok := b.(StringLit)
		if aok && bok {
			return StringLit{Value: as.Value + bs.Value}, nil
		}
		return nil, errcode.WrapReport(errcode.New(errcode.TYP011, "typealgebra", "Concat{A, B} must be given strings to concatenate"))
	}
	return Op{Kind: OpConcat, Args: []CType{a, b}}, nil
}

// NewEnv builds Env{K} (1-arg, no default) or Env{K, D} (2-arg, default D).
func NewEnv(args ...CType) (CType, error) {
	if len(args) == 1 {
		if isConcrete(args[0]) {
			k, ok := args[0].(StringLit)
			if !ok {
				return nil, errcode.WrapReport(errcode.New(errcode.TYP011, "typealgebra", "Env{K} must be given a key as a string to load"))
			}
			return evalEnv(k.Value)
		}
		return Op{Kind: OpEnv, Args: args}, nil
	}
	k, kok := args[0].(StringLit)
	d, dok := args[1].(StringLit)
	if kok && dok {
		if v, ok := lookupEnv(k.Value); ok {
			return StringLit{Value: v}, nil
		}
		return StringLit{Value: d.Value}, nil
	}
	return Op{Kind: OpEnv, Args: args}, nil
}

// NewIf builds the ternary If{C, A, B}, collapsing to A or B once C is a
// concrete BoolLit. It has no tuple-selector form taking [A, B].
func NewIf(cond, a, b CType) (CType, error) {
	if bl, ok := cond.(BoolLit); ok {
		if bl.Value {
			return a, nil
		}
		return b, nil
	}
	if _, ok := cond.(Infer); ok {
		return Op{Kind: OpIf, Args: []CType{cond, a, b}}, nil
	}
	return nil, errcode.WrapReport(errcode.New(errcode.TYP011, "typealgebra", "If{C, A, B} must be given a boolean value as the condition"))
}

func reduceUnary(kind OpKind, a CType) (CType, error) {
	switch kind {
	case OpLen:
		return evalLen(a)
	case OpSize:
		return evalSize(a)
	}
	if !isConcrete(a) {
		if _, ok := a.(Infer); ok {
			return Op{Kind: kind, Args: []CType{a}}, nil
		}
		return nil, invalidOperand(kind)
	}
	switch kind {
	case OpNeg:
		switch v := a.(type) {
		case IntLit:
			return IntLit{Value: -v.Value}, nil
		case FloatLit:
			return FloatLit{Value: -v.Value}, nil
		}
	case OpFileStr:
		s, ok := a.(StringLit)
		if !ok {
			return nil, invalidOperand(kind)
		}
		return evalFileStr(s.Value)
	case OpEnvExists:
		s, ok := a.(StringLit)
		if !ok {
			return nil, invalidOperand(kind)
		}
		_, exists := lookupEnv(s.Value)
		return BoolLit{Value: exists}, nil
	case OpNot:
		b, ok := a.(BoolLit)
		if !ok {
			return nil, invalidOperand(kind)
		}
		return BoolLit{Value: !b.Value}, nil
	}
	return nil, invalidOperand(kind)
}

func reduceBinary(kind OpKind, a, b CType) (CType, error) {
	ai, aIsInt := a.(IntLit)
	bi, bIsInt := b.(IntLit)
	af, aIsFloat := a.(FloatLit)
	bf, bIsFloat := b.(FloatLit)

	if !isConcrete(a) || !isConcrete(b) {
		if isInferLike(a) && isInferLike(b) {
			return Op{Kind: kind, Args: []CType{a, b}}, nil
		}
		return nil, invalidOperand(kind)
	}

	switch kind {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpMin, OpMax:
		if aIsInt && bIsInt {
			return reduceIntArith(kind, ai.Value, bi.Value)
		}
		if aIsFloat && bIsFloat {
			return reduceFloatArith(kind, af.Value, bf.Value)
		}
		return nil, invalidOperand(kind)
	case OpAnd, OpOr, OpXor, OpNand, OpNor, OpXnor:
		if aIsInt && bIsInt {
			return reduceIntBitwise(kind, ai.Value, bi.Value)
		}
		ab, aIsBool := a.(BoolLit)
		bb, bIsBool := b.(BoolLit)
		if aIsBool && bIsBool {
			return reduceBoolLogic(kind, ab.Value, bb.Value)
		}
		return nil, invalidOperand(kind)
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return reduceCompare(kind, a, b)
	}
	return nil, invalidOperand(kind)
}

func reduceIntArith(kind OpKind, a, b int64) (CType, error) {
	switch kind {
	case OpAdd:
		return IntLit{Value: a + b}, nil
	case OpSub:
		return IntLit{Value: a - b}, nil
	case OpMul:
		return IntLit{Value: a * b}, nil
	case OpDiv:
		if b == 0 {
			return nil, errcode.WrapReport(errcode.New(errcode.TYP001, "typealgebra", "division by zero in compile-time arithmetic"))
		}
		return IntLit{Value: a / b}, nil
	case OpMod:
		if b == 0 {
			return nil, errcode.WrapReport(errcode.New(errcode.TYP001, "typealgebra", "division by zero in compile-time arithmetic"))
		}
		return IntLit{Value: a % b}, nil
	case OpPow:
		return IntLit{Value: intPow(a, b)}, nil
	case OpMin:
		if a < b {
			return IntLit{Value: a}, nil
		}
		return IntLit{Value: b}, nil
	case OpMax:
		if a > b {
			return IntLit{Value: a}, nil
		}
		return IntLit{Value: b}, nil
	}
	return nil, invalidOperand(kind)
}

func reduceFloatArith(kind OpKind, a, b float64) (CType, error) {
	var result float64
	switch kind {
	case OpAdd:
		result = a + b
	case OpSub:
		result = a - b
	case OpMul:
		result = a * b
	case OpDiv:
		if b == 0 {
			return nil, errcode.WrapReport(errcode.New(errcode.TYP001, "typealgebra", "division by zero in compile-time arithmetic"))
		}
		result = a / b
	case OpMod:
		result = math.Mod(a, b)
	case OpPow:
		result = math.Pow(a, b)
	case OpMin:
		result = math.Min(a, b)
	case OpMax:
		result = math.Max(a, b)
	default:
		return nil, invalidOperand(kind)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil, errcode.WrapReport(errcode.New(errcode.TYP002, "typealgebra", "compile-time float arithmetic produced a non-finite result"))
	}
	return FloatLit{Value: result}, nil
}

func reduceIntBitwise(kind OpKind, a, b int64) (CType, error) {
	switch kind {
	case OpAnd:
		return IntLit{Value: a & b}, nil
	case OpOr:
		return IntLit{Value: a | b}, nil
	case OpXor:
		return IntLit{Value: a ^ b}, nil
	case OpNand:
		return IntLit{Value: ^(a & b)}, nil
	case OpNor:
		return IntLit{Value: ^(a | b)}, nil
	case OpXnor:
		return IntLit{Value: ^(a ^ b)}, nil
	}
	return nil, invalidOperand(kind)
}

func reduceBoolLogic(kind OpKind, a, b bool) (CType, error) {
	switch kind {
	case OpAnd:
		return BoolLit{Value: a && b}, nil
	case OpOr:
		return BoolLit{Value: a || b}, nil
	case OpXor:
		return BoolLit{Value: a != b}, nil
	case OpNand:
		return BoolLit{Value: !(a && b)}, nil
	case OpNor:
		return BoolLit{Value: !(a || b)}, nil
	case OpXnor:
		return BoolLit{Value: a == b}, nil
	}
	return nil, invalidOperand(kind)
}

func reduceCompare(kind OpKind, a, b CType) (CType, error) {
	switch av := a.(type) {
	case IntLit:
		bv, ok := b.(IntLit)
		if !ok {
			return nil, invalidOperand(kind)
		}
		return boolCompare(kind, compareInt(av.Value, bv.Value))
	case FloatLit:
		bv, ok := b.(FloatLit)
		if !ok {
			return nil, invalidOperand(kind)
		}
		return boolCompare(kind, compareFloat(av.Value, bv.Value))
	case StringLit:
		bv, ok := b.(StringLit)
		if !ok {
			return nil, invalidOperand(kind)
		}
		return boolCompare(kind, strings.Compare(av.Value, bv.Value))
	case BoolLit:
		bv, ok := b.(BoolLit)
		if !ok || (kind != OpEq && kind != OpNeq) {
			return nil, invalidOperand(kind)
		}
		if kind == OpEq {
			return BoolLit{Value: av.Value == bv.Value}, nil
		}
		return BoolLit{Value: av.Value != bv.Value}, nil
	}
	return nil, invalidOperand(kind)
}

func boolCompare(kind OpKind, cmp int) (CType, error) {
	switch kind {
	case OpEq:
		return BoolLit{Value: cmp == 0}, nil
	case OpNeq:
		return BoolLit{Value: cmp != 0}, nil
	case OpLt:
		return BoolLit{Value: cmp < 0}, nil
	case OpLte:
		return BoolLit{Value: cmp <= 0}, nil
	case OpGt:
		return BoolLit{Value: cmp > 0}, nil
	case OpGte:
		return BoolLit{Value: cmp >= 0}, nil
	}
	return nil, invalidOperand(kind)
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func intPow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func invalidOperand(kind OpKind) error {
	return errcode.WrapReport(errcode.New(errcode.TYP011, "typealgebra", opShapes[kind].name+" applied to an invalid or mismatched literal kind"))
}

func isConcrete(t CType) bool {
	switch t.(type) {
	case IntLit, FloatLit, BoolLit, StringLit:
		return true
	default:
		return false
	}
}

func isInferLike(t CType) bool {
	if _, ok := t.(Infer); ok {
		return true
	}
	return isConcrete(t)
}
