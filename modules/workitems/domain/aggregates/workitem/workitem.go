package workitem

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/status"
)

// MaxDepth is the deepest level a work item may occupy. Roots sit at
// depth 0, so a tree holds at most MaxDepth+1 levels.
const MaxDepth = 10

const pathSeparator = "/"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// WorkItem is the read model produced by the joined query: the row
// itself plus resolved type, organization, status and people names.
// Rows with DeletedAt set never leave the repository.
type WorkItem struct {
	ID               uint
	TypeID           uint
	TypeName         string
	OrganizationID   uuid.UUID
	OrganizationName string
	Subject          string
	Description      string
	StatusID         uint
	StatusName       string
	StatusCategory   status.Category
	Priority         Priority
	AssigneeID       *uint
	AssigneeName     *string
	DueDate          *time.Time
	StartedAt        *time.Time
	CompletedAt      *time.Time
	ParentID         *uint
	RootID           *uint
	Depth            int
	Path             string
	CreatedBy        uint
	CreatorName      string
	CustomFields     map[uint]string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

func (w *WorkItem) IsRoot() bool {
	return w.ParentID == nil
}

// PathSegments splits the materialized path into its id segments,
// root first, the item's own id last.
func (w *WorkItem) PathSegments() []string {
	trimmed := strings.Trim(w.Path, pathSeparator)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, pathSeparator)
}

// BuildPath appends an item id to its parent's path. A root item gets
// "/<id>".
func BuildPath(parentPath string, id uint) string {
	return strings.TrimSuffix(parentPath, pathSeparator) + pathSeparator + fmt.Sprint(id)
}
