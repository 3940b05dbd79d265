package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
)

func TestCalculateHierarchy_Root(t *testing.T) {
	placement, err := calculateHierarchy(testContext(), &workItemRepoMock{}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, placement.depth)
	require.Nil(t, placement.rootID)
	require.Empty(t, placement.parentPath)
}

func TestCalculateHierarchy_ParentIsRoot(t *testing.T) {
	// A root parent has no root id of its own; the parent becomes the
	// root of the new child.
	repo := &workItemRepoMock{
		getHierarchyInfo: func(ctx context.Context, id uint) (*workitem.HierarchyInfo, error) {
			return &workitem.HierarchyInfo{Depth: 0, RootID: nil, Path: "/5"}, nil
		},
	}
	parentID := uint(5)

	placement, err := calculateHierarchy(testContext(), repo, &parentID)
	require.NoError(t, err)
	require.Equal(t, 1, placement.depth)
	require.EqualValues(t, 5, *placement.rootID)
	require.Equal(t, "/5", placement.parentPath)
}

func TestCalculateHierarchy_AtMaxDepth(t *testing.T) {
	repo := &workItemRepoMock{
		getHierarchyInfo: func(ctx context.Context, id uint) (*workitem.HierarchyInfo, error) {
			return &workitem.HierarchyInfo{Depth: workitem.MaxDepth - 1}, nil
		},
	}
	parentID := uint(5)

	placement, err := calculateHierarchy(testContext(), repo, &parentID)
	require.NoError(t, err)
	require.Equal(t, workitem.MaxDepth, placement.depth)
}
