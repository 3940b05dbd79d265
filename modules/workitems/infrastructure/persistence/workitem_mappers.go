package persistence

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/auditlog"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/customfield"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/status"
	"github.com/iota-uz/taskboard/modules/workitems/infrastructure/persistence/models"
)

// ToDomainWorkItem normalizes one joined row into the domain entity.
// Absent lookups map to empty strings; the assignee display name is
// set only when both name parts are present, the creator's falls back
// to empty since the creator is mandatory.
func ToDomainWorkItem(row *models.WorkItem) (*workitem.WorkItem, error) {
	organizationID, err := uuid.Parse(row.OrganizationID)
	if err != nil {
		return nil, err
	}

	item := &workitem.WorkItem{
		ID:               row.ID,
		TypeID:           row.TypeID,
		TypeName:         row.TypeName.String,
		OrganizationID:   organizationID,
		OrganizationName: row.OrganizationName.String,
		Subject:          row.Subject,
		Description:      row.Description.String,
		StatusID:         row.StatusID,
		StatusName:       row.StatusName.String,
		StatusCategory:   status.Category(row.StatusCategory.String),
		Priority:         workitem.Priority(row.Priority),
		AssigneeName:     displayName(row.AssigneeFirstName, row.AssigneeLastName),
		Depth:            row.Depth,
		Path:             row.Path.String,
		CreatedBy:        row.CreatedBy,
		CreatorName:      mandatoryDisplayName(row.CreatorFirstName, row.CreatorLastName),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}

	if row.AssigneeID.Valid {
		id := uint(row.AssigneeID.Int64)
		item.AssigneeID = &id
	}
	if row.ParentID.Valid {
		id := uint(row.ParentID.Int64)
		item.ParentID = &id
	}
	if row.RootID.Valid {
		id := uint(row.RootID.Int64)
		item.RootID = &id
	}
	if row.DueDate.Valid {
		t := row.DueDate.Time
		item.DueDate = &t
	}
	if row.StartedAt.Valid {
		t := row.StartedAt.Time
		item.StartedAt = &t
	}
	if row.CompletedAt.Valid {
		t := row.CompletedAt.Time
		item.CompletedAt = &t
	}
	if row.DeletedAt.Valid {
		t := row.DeletedAt.Time
		item.DeletedAt = &t
	}
	return item, nil
}

func displayName(first, last sql.NullString) *string {
	if !first.Valid || !last.Valid || first.String == "" || last.String == "" {
		return nil
	}
	name := first.String + " " + last.String
	return &name
}

func mandatoryDisplayName(first, last sql.NullString) string {
	if name := displayName(first, last); name != nil {
		return *name
	}
	return ""
}

func toDomainStatus(row *models.Status) *status.Status {
	return &status.Status{
		ID:        row.ID,
		TypeID:    row.TypeID,
		Name:      row.Name,
		Category:  status.Category(row.Category),
		IsInitial: row.IsInitial,
		SortOrder: row.SortOrder,
	}
}

func toDomainTransitionRule(row *models.TransitionRule) *status.TransitionRule {
	return &status.TransitionRule{
		TypeID:       row.TypeID,
		FromStatusID: row.FromStatusID,
		ToStatusID:   row.ToStatusID,
		IsAllowed:    row.IsAllowed,
	}
}

func toDomainFieldDefinition(row *models.FieldDefinition) *customfield.Definition {
	return &customfield.Definition{
		ID:                 row.ID,
		TypeID:             row.TypeID,
		Name:               row.Name,
		Label:              row.Label,
		Type:               customfield.Type(row.Type),
		RequiredToComplete: row.RequiredToComplete,
		Visible:            row.Visible,
	}
}

func toDomainAuditLog(row *models.AuditLog) *auditlog.AuditLog {
	return &auditlog.AuditLog{
		ID:         row.ID,
		ActorID:    row.ActorID,
		Action:     row.Action,
		WorkItemID: row.WorkItemID,
		Before:     row.Before,
		After:      row.After,
		Diff:       row.Diff,
		CreatedAt:  row.CreatedAt,
	}
}
