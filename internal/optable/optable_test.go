package optable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func opToken(s string) Token { return Token{Symbol: s} }
func numToken(v int) Token   { return Token{Operand: v} }

func TestRewritePrecedence(t *testing.T) {
	// 1 + 2 * 3 should rewrite as add(1, mul(2, 3))
	table := NewTable()
	table.Register(Mapping{Fix: Infix, Level: 10, FunctionName: "add", OperatorName: "+"})
	table.Register(Mapping{Fix: Infix, Level: 20, FunctionName: "mul", OperatorName: "*"})

	tokens := []Token{numToken(1), opToken("+"), numToken(2), opToken("*"), numToken(3)}
	result, err := Rewrite(tokens, table)
	require.NoError(t, err)

	outer, ok := result.(*CallNode)
	require.True(t, ok)
	require.Equal(t, "add", outer.FunctionName)
	require.Equal(t, 1, outer.Args[0])

	inner, ok := outer.Args[1].(*CallNode)
	require.True(t, ok)
	require.Equal(t, "mul", inner.FunctionName)
	require.Equal(t, 2, inner.Args[0])
	require.Equal(t, 3, inner.Args[1])
}

func TestRewritePrefixAndPostfix(t *testing.T) {
	table := NewTable()
	table.Register(Mapping{Fix: Prefix, Level: 50, FunctionName: "neg", OperatorName: "-"})
	table.Register(Mapping{Fix: Postfix, Level: 60, FunctionName: "fact", OperatorName: "!"})

	tokens := []Token{opToken("-"), numToken(5), opToken("!")}
	result, err := Rewrite(tokens, table)
	require.NoError(t, err)

	outer, ok := result.(*CallNode)
	require.True(t, ok)
	require.Equal(t, "neg", outer.FunctionName)
	inner, ok := outer.Args[0].(*CallNode)
	require.True(t, ok)
	require.Equal(t, "fact", inner.FunctionName)
	require.Equal(t, 5, inner.Args[0])
}

func TestRewriteAmbiguousSymbolResolvedByArity(t *testing.T) {
	// "-" as both prefix (negate) and infix (subtract); arity picks infix here.
	table := NewTable()
	table.Register(Mapping{Fix: Prefix, Level: 50, FunctionName: "neg", OperatorName: "-"})
	table.Register(Mapping{Fix: Infix, Level: 10, FunctionName: "sub", OperatorName: "-"})

	tokens := []Token{numToken(5), opToken("-"), numToken(3)}
	result, err := Rewrite(tokens, table)
	require.NoError(t, err)
	call, ok := result.(*CallNode)
	require.True(t, ok)
	require.Equal(t, "sub", call.FunctionName)
}

func TestRewriteSingleOperandNoOperators(t *testing.T) {
	tokens := []Token{numToken(42)}
	result, err := Rewrite(tokens, NewTable())
	require.NoError(t, err)
	require.Equal(t, 42, result)
}

func TestRewriteUnresolvableOperatorErrors(t *testing.T) {
	tokens := []Token{numToken(1), opToken("?"), numToken(2)}
	_, err := Rewrite(tokens, NewTable())
	require.Error(t, err)
}

func TestTableMergeLastWriteWins(t *testing.T) {
	a := NewTable()
	a.Register(Mapping{Fix: Infix, Level: 1, FunctionName: "old", OperatorName: "+"})
	b := NewTable()
	b.Register(Mapping{Fix: Infix, Level: 1, FunctionName: "new", OperatorName: "+"})
	a.Merge(b)
	m, ok := a.Lookup(Infix, "+")
	require.True(t, ok)
	require.Equal(t, "new", m.FunctionName)
}
