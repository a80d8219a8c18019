package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, KindDiv, KindOf(NamespaceHTML, "DIV"))
	require.Equal(t, KindOther, KindOf(NamespaceHTML, "custom-widget"))
	require.Equal(t, KindSVGPath, KindOf(NamespaceSVG, "path"))
	require.Equal(t, KindSVGOther, KindOf(NamespaceSVG, "polyline"))
	require.True(t, KindOf(NamespaceSVG, "svg").IsSVG())
	require.False(t, KindDiv.IsSVG())
	require.True(t, KindInput.IsFormControl())
}

func TestEventPropagationFlag(t *testing.T) {
	ev := NewEvent("input", map[string]string{"value": "x"})
	require.Equal(t, "x", ev.Value())
	require.False(t, ev.Stopped())
	ev.StopPropagation()
	require.True(t, ev.Stopped())
}
