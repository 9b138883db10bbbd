package program

import (
	"errors"
	"testing"

	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/scope"
	"github.com/stretchr/testify/require"
)

func trivialBuild(path, source string) (*scope.Scope, error) {
	s := scope.New(nil)
	s.Consts["source"] = scope.ConstBinding{}
	return s, nil
}

func TestLoadCachesByPath(t *testing.T) {
	Reset()
	p := Acquire()
	defer Release(p)

	SetSourceLoader(func(path string) (string, error) { return "body", nil })
	defer SetSourceLoader(nil)

	calls := 0
	build := func(path, source string) (*scope.Scope, error) {
		calls++
		return scope.New(nil), nil
	}

	e1, err := p.Load("a.ln", build)
	require.NoError(t, err)
	e2, err := p.Load("a.ln", build)
	require.NoError(t, err)
	require.Same(t, e1, e2)
	require.Equal(t, 1, calls)
}

func TestLoadDetectsCircularImport(t *testing.T) {
	Reset()
	p := Acquire()
	defer Release(p)
	SetSourceLoader(func(path string) (string, error) { return "", nil })
	defer SetSourceLoader(nil)

	var build BuildFunc
	build = func(path, source string) (*scope.Scope, error) {
		if path == "a.ln" {
			_, err := p.Load("b.ln", build)
			return nil, err
		}
		if path == "b.ln" {
			_, err := p.Load("a.ln", build)
			return nil, err
		}
		return scope.New(nil), nil
	}

	_, err := p.Load("a.ln", build)
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.LDR002, rep.Code)
}

func TestLoadPropagatesReadFailure(t *testing.T) {
	Reset()
	p := Acquire()
	defer Release(p)
	SetSourceLoader(func(path string) (string, error) { return "", errors.New("not found") })
	defer SetSourceLoader(nil)

	_, err := p.Load("missing.ln", trivialBuild)
	require.Error(t, err)
	rep, ok := errcode.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errcode.LDR001, rep.Code)
}

func TestStdlibVirtualPath(t *testing.T) {
	Reset()
	p := Acquire()
	defer Release(p)
	RegisterStdlib("@std/fs", "export fn readAll")

	var seenSource string
	_, err := p.Load("@std/fs", func(path, source string) (*scope.Scope, error) {
		seenSource = source
		return scope.New(nil), nil
	})
	require.NoError(t, err)
	require.Equal(t, "export fn readAll", seenSource)
}

func TestAcquireTwiceWithoutReleasePanics(t *testing.T) {
	Reset()
	p := Acquire()
	defer Release(p)
	require.Panics(t, func() { Acquire() })
}

func TestBackendSwitchSelectsIndependentInstances(t *testing.T) {
	Reset()
	SetBackend(Native)
	native := Acquire()
	SetSourceLoader(func(path string) (string, error) { return "x", nil })
	defer SetSourceLoader(nil)
	_, err := native.Load("shared.ln", trivialBuild)
	require.NoError(t, err)
	Release(native)

	SetBackend(Scripting)
	scripting := Acquire()
	defer Release(scripting)
	_, ok := scripting.ScopeByFile("shared.ln")
	require.False(t, ok)
	require.Equal(t, "js", scripting.Env["ALAN_OUTPUT_LANG"])
}
