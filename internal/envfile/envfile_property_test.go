package envfile

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var (
	keyGen   = rapid.StringMatching(`[A-Za-z_][A-Za-z0-9_.]{0,15}`)
	valueGen = rapid.StringMatching(`[A-Za-z0-9_:/.=#-]{0,24}`)
	padGen   = rapid.StringMatching(`[ \t]{0,3}`)
)

func TestProperty_WellFormedPairsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := keyGen.Draw(t, "key")
		value := valueGen.Draw(t, "value")
		line := padGen.Draw(t, "lead") + key + padGen.Draw(t, "mid1") + "=" +
			padGen.Draw(t, "mid2") + value + padGen.Draw(t, "trail")

		src, err := Parse(strings.NewReader(line + "\n"))
		require.NoError(t, err)

		got, ok := src.Lookup(key)
		assert.True(t, ok, "key %q missing from %v", key, src)
		assert.Equal(t, strings.TrimSpace(value), got)
		assert.Len(t, src, 1)
	})
}

func TestProperty_IgnoredLinesProduceNothing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOf(rapid.OneOf(
			padGen,
			rapid.Map(valueGen, func(s string) string { return "#" + s }),
			keyGen,
			rapid.Map(valueGen, func(s string) string { return "   =" + s }),
		)).Draw(t, "lines")

		src, err := Parse(strings.NewReader(strings.Join(lines, "\n")))
		require.NoError(t, err)
		assert.Empty(t, src)
	})
}

func TestProperty_LaterValueWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := keyGen.Draw(t, "key")
		values := rapid.SliceOfN(valueGen, 1, 8).Draw(t, "values")

		var sb strings.Builder
		for _, v := range values {
			fmt.Fprintf(&sb, "%s=%s\n", key, v)
		}

		src, err := Parse(strings.NewReader(sb.String()))
		require.NoError(t, err)
		assert.Equal(t, strings.TrimSpace(values[len(values)-1]), src[key])
	})
}
