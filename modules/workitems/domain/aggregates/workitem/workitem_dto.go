package workitem

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/taskboard/pkg/serrors"
)

type CreateDTO struct {
	TypeID         uint
	OrganizationID uuid.UUID
	Subject        string
	Description    string
	Priority       Priority
	AssigneeID     *uint
	DueDate        *time.Time
	ParentID       *uint
}

func (d *CreateDTO) Normalize() {
	d.Subject = strings.TrimSpace(d.Subject)
	d.Description = strings.TrimSpace(d.Description)
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
}

func (d *CreateDTO) Validate() error {
	validationErrors := make(serrors.ValidationErrors)
	if d.Subject == "" {
		validationErrors["subject"] = serrors.NewFieldRequiredError("subject", "WorkItems.Fields.subject")
	}
	if d.TypeID == 0 {
		validationErrors["type_id"] = serrors.NewFieldRequiredError("type_id", "WorkItems.Fields.type_id")
	}
	if d.OrganizationID == uuid.Nil {
		validationErrors["organization_id"] = serrors.NewFieldRequiredError("organization_id", "WorkItems.Fields.organization_id")
	}
	if !d.Priority.Valid() {
		validationErrors["priority"] = serrors.NewValidationError("priority must be one of low, medium, high, urgent")
	}
	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

// UpdateDTO is a patch: nil fields are left untouched. ClearAssignee
// and ClearDueDate distinguish "unset" from "unchanged".
type UpdateDTO struct {
	Subject       *string
	Description   *string
	StatusID      *uint
	Priority      *Priority
	AssigneeID    *uint
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
	StartedAt     *time.Time
	CompletedAt   *time.Time
}

func (d *UpdateDTO) Validate() error {
	validationErrors := make(serrors.ValidationErrors)
	if d.Subject != nil && strings.TrimSpace(*d.Subject) == "" {
		validationErrors["subject"] = serrors.NewFieldRequiredError("subject", "WorkItems.Fields.subject")
	}
	if d.Priority != nil && !d.Priority.Valid() {
		validationErrors["priority"] = serrors.NewValidationError("priority must be one of low, medium, high, urgent")
	}
	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

// Apply copies the patch onto a copy of the current item and stamps
// the update time.
func (d *UpdateDTO) Apply(current *WorkItem, now time.Time) *WorkItem {
	next := *current
	if d.Subject != nil {
		next.Subject = strings.TrimSpace(*d.Subject)
	}
	if d.Description != nil {
		next.Description = strings.TrimSpace(*d.Description)
	}
	if d.StatusID != nil {
		next.StatusID = *d.StatusID
	}
	if d.Priority != nil {
		next.Priority = *d.Priority
	}
	if d.ClearAssignee {
		next.AssigneeID = nil
	} else if d.AssigneeID != nil {
		next.AssigneeID = d.AssigneeID
	}
	if d.ClearDueDate {
		next.DueDate = nil
	} else if d.DueDate != nil {
		next.DueDate = d.DueDate
	}
	if d.StartedAt != nil {
		next.StartedAt = d.StartedAt
	}
	if d.CompletedAt != nil {
		next.CompletedAt = d.CompletedAt
	}
	next.UpdatedAt = now
	return &next
}
