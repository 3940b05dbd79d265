package workitem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPath_Root(t *testing.T) {
	require.Equal(t, "/17", BuildPath("", 17))
}

func TestBuildPath_Child(t *testing.T) {
	require.Equal(t, "/1/5/42", BuildPath("/1/5", 42))
}

func TestBuildPath_TrailingSeparatorOnParent(t *testing.T) {
	require.Equal(t, "/1/42", BuildPath("/1/", 42))
}

func TestPathSegments(t *testing.T) {
	item := &WorkItem{Path: "/1/5/42"}
	require.Equal(t, []string{"1", "5", "42"}, item.PathSegments())
}

func TestPathSegments_Root(t *testing.T) {
	item := &WorkItem{Path: "/42"}
	require.Equal(t, []string{"42"}, item.PathSegments())
}

func TestPathSegments_EmptyPath(t *testing.T) {
	item := &WorkItem{}
	require.Nil(t, item.PathSegments())
}

func TestIsRoot(t *testing.T) {
	parentID := uint(3)
	require.True(t, (&WorkItem{}).IsRoot())
	require.False(t, (&WorkItem{ParentID: &parentID}).IsRoot())
}

func TestPriorityValid(t *testing.T) {
	require.True(t, PriorityLow.Valid())
	require.True(t, PriorityMedium.Valid())
	require.True(t, PriorityHigh.Valid())
	require.True(t, PriorityUrgent.Valid())
	require.False(t, Priority("").Valid())
	require.False(t, Priority("critical").Valid())
}
