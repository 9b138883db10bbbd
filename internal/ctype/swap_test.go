package ctype

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwapSubtypeReplacesMatchingSubtree(t *testing.T) {
	n := Infer{Name: "N"}
	generic := Array{Inner: n}
	swapped, err := SwapSubtype(generic, n, IntLit{Value: 0})
	require.NoError(t, err)
	require.Equal(t, Array{Inner: IntLit{Value: 0}}, swapped)
}

func TestSwapSubtypeCollapsesArithmetic(t *testing.T) {
	n := Infer{Name: "N"}
	buf := Buffer{Inner: IntLit{Value: 0}, Size: Op{Kind: OpAdd, Args: []CType{n, IntLit{Value: 1}}}}
	swapped, err := SwapSubtype(buf, n, IntLit{Value: 3})
	require.NoError(t, err)
	require.Equal(t, Buffer{Inner: IntLit{Value: 0}, Size: IntLit{Value: 4}}, swapped)
}

func TestSwapSubtypeLeavesUnrelatedSubtreesUntouched(t *testing.T) {
	n := Infer{Name: "N"}
	m := Infer{Name: "M"}
	tup := NewTuple(n, m)
	swapped, err := SwapSubtype(tup, n, IntLit{Value: 5})
	require.NoError(t, err)
	got := swapped.(Tuple)
	require.Equal(t, IntLit{Value: 5}, got.Members[0])
	require.Equal(t, m, got.Members[1])
}

func TestSwapSubtypeReEvaluatesProp(t *testing.T) {
	n := Infer{Name: "N"}
	prop := Prop{Base: n, Key: IntLit{Value: 0}}
	swapped, err := SwapSubtype(prop, n, NewTuple(IntLit{Value: 42}, IntLit{Value: 43}))
	require.NoError(t, err)
	require.Equal(t, IntLit{Value: 42}, swapped)
}
