package sequence

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterCollect(t *testing.T) {
	got := From([]int{1, 2, 3, 4, 5}).Filter(func(v int) bool { return v%2 == 1 }).Collect()
	require.Equal(t, []int{1, 3, 5}, got)
}

func TestFirstStopsEarly(t *testing.T) {
	visited := 0
	it := Map(From([]int{7, 8, 9}), func(v int) int { visited++; return v })
	v, ok := it.First()
	require.True(t, ok)
	require.Equal(t, 7, v)
	require.Equal(t, 1, visited)

	_, ok = From([]int(nil)).First()
	require.False(t, ok)
}

func TestChainDistinct(t *testing.T) {
	got := Distinct(Chain(From([]string{"a", "b"}), From([]string{"b", "c"}))).Collect()
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSortFuncAllAny(t *testing.T) {
	it := From([]int{3, 1, 2}).SortFunc(cmp.Compare[int])
	require.Equal(t, []int{1, 2, 3}, it.Collect())
	require.True(t, it.All(func(v int) bool { return v > 0 }))
	require.True(t, it.Any(func(v int) bool { return v == 2 }))
	require.Equal(t, 3, it.Count())
}

func TestFromSet(t *testing.T) {
	set := ToSet(From([]int{1, 1, 2}))
	require.Len(t, set, 2)
	require.Equal(t, 2, FromSet(set).Count())
}
