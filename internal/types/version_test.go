package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion_CompareOrdersBySemver(t *testing.T) {
	require.True(t, v("1.2.0").LessThan(v("1.10.0")))
	require.True(t, v("2.0.0").GreaterThan(v("1.9.9")))
	require.True(t, v("1.0.0").Equal(v("1.0.0")))
}

func TestVersion_IsPrereleaseDetectsTag(t *testing.T) {
	require.True(t, v("1.0.0-beta.1").IsPrerelease())
	require.False(t, v("1.0.0").IsPrerelease())
}

func TestPrioritize_OrdersStableHighestFirstThenPrerelease(t *testing.T) {
	got := Prioritize([]Version{v("1.0.0-beta"), v("1.0.0"), v("2.0.0"), v("1.5.0")})
	require.Equal(t, []string{"2.0.0", "1.5.0", "1.0.0", "1.0.0-beta"}, versionsToStrings(got))
}

func TestAntiprioritize_OrdersStableLowestFirstThenPrerelease(t *testing.T) {
	got := Antiprioritize([]Version{v("2.0.0"), v("1.0.0"), v("1.0.0-beta"), v("1.5.0")})
	require.Equal(t, []string{"1.0.0", "1.5.0", "2.0.0", "1.0.0-beta"}, versionsToStrings(got))
}

func versionsToStrings(vs []Version) []string {
	out := make([]string, len(vs))
	for i, x := range vs {
		out[i] = x.String()
	}
	return out
}
