package workitem

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/status"
	"github.com/iota-uz/taskboard/pkg/repo"
)

type Field string

const (
	SubjectField   Field = "subject"
	PriorityField  Field = "priority"
	StatusField    Field = "status_id"
	DueDateField   Field = "due_date"
	DepthField     Field = "depth"
	CreatedAtField Field = "created_at"
	UpdatedAtField Field = "updated_at"
)

type SortBy = repo.SortBy[Field]

// FindParams carries the caller's scope plus the optional filters of
// a list or count query. Filters narrow results; none of them can
// widen access beyond the scope restriction.
type FindParams struct {
	Scope  Scope
	Limit  int
	Offset int
	SortBy SortBy
	Search string

	TypeID         *uint
	OrganizationID *uuid.UUID
	StatusID       *uint
	StatusCategory status.Category
	Priority       Priority
	AssigneeID     *uint
	CreatedBy      *uint
}

// HierarchyInfo is the parent-side input to child placement.
type HierarchyInfo struct {
	Depth  int
	RootID *uint
	Path   string
}

type Repository interface {
	GetByID(ctx context.Context, id uint, scope Scope) (*WorkItem, error)
	GetByIDs(ctx context.Context, ids []uint, scope Scope) ([]*WorkItem, error)
	GetChildren(ctx context.Context, parentID uint, scope Scope) ([]*WorkItem, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]*WorkItem, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	// GetHierarchyInfo fetches the depth, root and path of a would-be
	// parent without scope restriction.
	GetHierarchyInfo(ctx context.Context, id uint) (*HierarchyInfo, error)
	// Create inserts the row and returns the assigned id. Path and
	// root are persisted by UpdatePath; callers wrap both in one
	// transaction.
	Create(ctx context.Context, item *WorkItem) (uint, error)
	UpdatePath(ctx context.Context, id uint, path string, rootID uint) error
	Update(ctx context.Context, item *WorkItem) error
	SoftDelete(ctx context.Context, id uint, deletedAt time.Time) error
}
