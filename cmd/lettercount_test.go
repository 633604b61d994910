package cmd

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lc3tools/lc3test/lc3"
)

func TestExpectedCounts(t *testing.T) {
	t.Run("mixed input", func(t *testing.T) {
		out := expectedCounts("aA7!")
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, 27, "one line for @ plus one per letter")
		require.Equal(t, "@ 0002", lines[0], "non-letters counted under @")
		require.Equal(t, "A 0002", lines[1], "case folds together")
		require.Equal(t, "B 0000", lines[2])
	})
	t.Run("empty input", func(t *testing.T) {
		out := expectedCounts("")
		require.True(t, strings.HasPrefix(out, "@ 0000\n"))
		require.Contains(t, out, "Z 0000\n")
	})
	t.Run("counts render as 4-digit hex", func(t *testing.T) {
		out := expectedCounts(strings.Repeat("q", 255))
		require.Contains(t, out, "Q 00FF")
	})
}

func TestRandomInputDeterministic(t *testing.T) {
	a := randomInput(rand.New(rand.NewSource(7)), 50)
	b := randomInput(rand.New(rand.NewSource(7)), 50)
	require.Equal(t, a, b, "same seed reproduces the same case input")
	require.Len(t, a, 50)

	c := randomInput(rand.New(rand.NewSource(8)), 50)
	require.NotEqual(t, a, c)
}

func TestBoundarySuiteRegistration(t *testing.T) {
	suite := boundarySuite(lc3.DefaultSimConfig(), "target.obj")
	require.Equal(t, 7, suite.Len())
	require.Equal(t, "Boundary Tests", suite.Name)
}
