package errcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReportToJSON(t *testing.T) {
	r := New(OVL001, "overload", "no matching overload").With("signature", "Foo(f64)")
	out, err := r.ToJSON(false)
	require.NoError(t, err)
	require.Contains(t, out, "OVL001")
	require.Contains(t, out, "Foo(f64)")
}

func TestWrapAndAsReport(t *testing.T) {
	r := New(SCO001, "scope", "unbound identifier: x")
	err := WrapReport(r)
	require.Error(t, err)
	require.Equal(t, "SCO001: unbound identifier: x", err.Error())

	got, ok := AsReport(err)
	require.True(t, ok)
	require.Same(t, r, got)
}

func TestSafeEncodeError(t *testing.T) {
	require.Nil(t, SafeEncodeError(nil, "scope"))

	data := SafeEncodeError(WrapReport(New(TYP001, "typealgebra", "divide by zero")), "typealgebra")
	require.Contains(t, string(data), "TYP001")
}

func TestFormatSourceSpan(t *testing.T) {
	require.Equal(t, "main.alan:3:7", FormatSourceSpan("main.alan", 3, 7))
}
