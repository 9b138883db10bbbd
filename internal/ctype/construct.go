package ctype

import "github.com/alantech/alan/internal/errcode"

// NewBuffer builds a Buffer{Inner, Size}, rejecting a concrete negative
// size at construction time (errcode.TYP003) rather than deferring the
// check to codegen.
func NewBuffer(inner, size CType) (CType, error) {
	if lit, ok := size.(IntLit); ok && lit.Value < 0 {
		return nil, errcode.WrapReport(errcode.New(errcode.TYP003, "typealgebra", "Buffer size must not be negative"))
	}
	return Buffer{Inner: inner, Size: size}, nil
}

// NewField builds a Field; the label is not validated.
func NewField(label string, inner CType) CType {
	return Field{Label: label, Inner: inner}
}

// NewProp builds Prop{Base, Key}, resolving it immediately through
// EvalProp when the key is concrete or the base is a Tuple or Field.
func NewProp(base, key CType) (CType, error) {
	if isConcrete(key) || isConcreteContainer(base) {
		return EvalProp(base, key)
	}
	return Prop{Base: base, Key: key}, nil
}

func isConcreteContainer(t CType) bool {
	switch t.(type) {
	case Tuple, Field:
		return true
	default:
		return false
	}
}
