package services

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
	"github.com/iota-uz/taskboard/modules/workitems/infrastructure/persistence"
	"github.com/iota-uz/taskboard/pkg/serrors"
)

// hierarchyPlacement is where a new item lands in the tree. The path
// is finalized after the insert because it ends with the new item's
// own id.
type hierarchyPlacement struct {
	depth      int
	rootID     *uint
	parentPath string
}

func calculateHierarchy(ctx context.Context, repo workitem.Repository, parentID *uint) (*hierarchyPlacement, error) {
	if parentID == nil {
		return &hierarchyPlacement{depth: 0}, nil
	}

	info, err := repo.GetHierarchyInfo(ctx, *parentID)
	if err != nil {
		if errors.Is(err, persistence.ErrWorkItemNotFound) {
			return nil, serrors.NewNotFoundError(fmt.Sprintf("parent work item %d not found", *parentID))
		}
		return nil, err
	}

	depth := info.Depth + 1
	if depth > workitem.MaxDepth {
		return nil, serrors.NewValidationError(
			fmt.Sprintf("maximum nesting depth of %d exceeded", workitem.MaxDepth),
		)
	}

	rootID := info.RootID
	if rootID == nil {
		rootID = parentID
	}
	return &hierarchyPlacement{depth: depth, rootID: rootID, parentPath: info.Path}, nil
}
