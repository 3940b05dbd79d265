package status

import "context"

// Category is a coarse classification of a status, independent of its
// display name. Completion gating keys off CategoryCompleted.
type Category string

const (
	CategoryOpen       Category = "open"
	CategoryInProgress Category = "in_progress"
	CategoryCompleted  Category = "completed"
)

func (c Category) String() string { return string(c) }

// Status is one workflow state configured for a work item type. The
// status marked IsInitial is assigned to newly created items.
type Status struct {
	ID        uint
	TypeID    uint
	Name      string
	Category  Category
	IsInitial bool
	SortOrder int
}

// TransitionRule allows or blocks a single (type, from, to) status
// change. Absence of a rule means "no explicit rule"; the default
// policy decides what that means.
type TransitionRule struct {
	TypeID       uint
	FromStatusID uint
	ToStatusID   uint
	IsAllowed    bool
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Status, error)
	GetInitial(ctx context.Context, typeID uint) (*Status, error)
	GetTransitionRule(ctx context.Context, typeID, fromStatusID, toStatusID uint) (*TransitionRule, bool, error)
}
