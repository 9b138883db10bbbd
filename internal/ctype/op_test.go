package ctype

import (
	"testing"

	"github.com/alantech/alan/internal/errcode"
	"github.com/stretchr/testify/require"
)

func TestArithmeticCollapsesToLiteral(t *testing.T) {
	sum, err := NewAdd(IntLit{Value: 2}, IntLit{Value: 3})
	require.NoError(t, err)
	require.Equal(t, IntLit{Value: 5}, sum)
}

func TestArithmeticStaysSymbolicOnInfer(t *testing.T) {
	n := Infer{Name: "N"}
	sum, err := NewAdd(n, IntLit{Value: 1})
	require.NoError(t, err)
	op, ok := sum.(Op)
	require.True(t, ok)
	require.Equal(t, OpAdd, op.Kind)
}

func TestDivisionByZeroIsFatal(t *testing.T) {
	_, err := NewDiv(IntLit{Value: 4}, IntLit{Value: 0})
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.TYP001, rep.Code)
}

func TestFloatArithmeticRejectsNonFinite(t *testing.T) {
	_, err := NewMul(FloatLit{Value: 1e308}, FloatLit{Value: 10})
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.TYP002, rep.Code)
}

func TestMismatchedOperandKindIsFatal(t *testing.T) {
	_, err := NewAdd(IntLit{Value: 1}, StringLit{Value: "x"})
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.TYP011, rep.Code)
}

func TestCompareOperators(t *testing.T) {
	lt, err := NewLt(IntLit{Value: 1}, IntLit{Value: 2})
	require.NoError(t, err)
	require.Equal(t, BoolLit{Value: true}, lt)

	eq, err := NewEq(StringLit{Value: "a"}, StringLit{Value: "a"})
	require.NoError(t, err)
	require.Equal(t, BoolLit{Value: true}, eq)
}

func TestLogicalOperatorsOnBool(t *testing.T) {
	and, err := NewAnd(BoolLit{Value: true}, BoolLit{Value: false})
	require.NoError(t, err)
	require.Equal(t, BoolLit{Value: false}, and)

	xnor, err := NewXnor(BoolLit{Value: true}, BoolLit{Value: true})
	require.NoError(t, err)
	require.Equal(t, BoolLit{Value: true}, xnor)
}

func TestNegAndNot(t *testing.T) {
	neg, err := NewNeg(IntLit{Value: 5})
	require.NoError(t, err)
	require.Equal(t, IntLit{Value: -5}, neg)

	not, err := NewNot(BoolLit{Value: true})
	require.NoError(t, err)
	require.Equal(t, BoolLit{Value: false}, not)
}

func TestLenOfTupleAndBuffer(t *testing.T) {
	tup := NewTuple(IntLit{Value: 1}, IntLit{Value: 2}, IntLit{Value: 3})
	n, err := NewLen(tup)
	require.NoError(t, err)
	require.Equal(t, IntLit{Value: 3}, n)

	buf := Buffer{Inner: IntLit{Value: 0}, Size: IntLit{Value: 10}}
	n, err = NewLen(buf)
	require.NoError(t, err)
	require.Equal(t, IntLit{Value: 10}, n)
}

func TestLenOfArrayIsFatal(t *testing.T) {
	_, err := NewLen(Array{Inner: IntLit{Value: 0}})
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.TYP004, rep.Code)
}

func TestSizeOfPrimitiveBinds(t *testing.T) {
	f64 := Binds{Name: StringLit{Value: "f64"}}
	size, err := evalSize(f64)
	require.NoError(t, err)
	require.Equal(t, IntLit{Value: 8}, size)
}

func TestSizeOfFunctionIsFatal(t *testing.T) {
	_, err := evalSize(Function{Input: Void{}, Output: Void{}})
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.TYP005, rep.Code)
}

func TestNewBufferRejectsNegativeSize(t *testing.T) {
	_, err := NewBuffer(IntLit{Value: 0}, IntLit{Value: -1})
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.TYP003, rep.Code)
}

func TestEnvLookupOverride(t *testing.T) {
	defer SetEnvLookup(nil)
	SetEnvLookup(func(key string) (string, bool) {
		if key == "ALAN_TARGET" {
			return "native", true
		}
		return "", false
	})
	v, err := evalEnv("ALAN_TARGET")
	require.NoError(t, err)
	require.Equal(t, StringLit{Value: "native"}, v)

	got, err := NewEnv(StringLit{Value: "MISSING"}, StringLit{Value: "fallback"})
	require.NoError(t, err)
	require.Equal(t, StringLit{Value: "fallback"}, got)
}

func TestNewIfCollapsesOnConcreteCondition(t *testing.T) {
	out, err := NewIf(BoolLit{Value: true}, IntLit{Value: 1}, IntLit{Value: 2})
	require.NoError(t, err)
	require.Equal(t, IntLit{Value: 1}, out)
}

func TestNewIfStaysSymbolicOnInfer(t *testing.T) {
	out, err := NewIf(Infer{Name: "C"}, IntLit{Value: 1}, IntLit{Value: 2})
	require.NoError(t, err)
	op, ok := out.(Op)
	require.True(t, ok)
	require.Equal(t, OpIf, op.Kind)
}
