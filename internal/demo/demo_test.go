package demo

import (
	"testing"

	"github.com/alantech/alan/internal/build"
	"github.com/stretchr/testify/require"
)

// TestAllScenariosCompileOrFailAsExpected guards against a scenario
// silently drifting out of sync with internal/build's own behavior.
func TestAllScenariosCompileOrFailAsExpected(t *testing.T) {
	for _, s := range All() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			sc := s.BaseScope()
			_, err := build.Compile(s.File, sc)
			if s.Name == "overload-failure" {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFindUnknownScenario(t *testing.T) {
	_, ok := Find("does-not-exist")
	require.False(t, ok)
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	require.Len(t, names, 6)
	for i := 1; i < len(names); i++ {
		require.LessOrEqual(t, names[i-1], names[i])
	}
}
