package models

import (
	"database/sql"
	"time"
)

type WorkItem struct {
	ID                uint
	TypeID            uint
	TypeName          sql.NullString
	OrganizationID    string
	OrganizationName  sql.NullString
	Subject           string
	Description       sql.NullString
	StatusID          uint
	StatusName        sql.NullString
	StatusCategory    sql.NullString
	Priority          string
	AssigneeID        sql.NullInt64
	AssigneeFirstName sql.NullString
	AssigneeLastName  sql.NullString
	DueDate           sql.NullTime
	StartedAt         sql.NullTime
	CompletedAt       sql.NullTime
	ParentID          sql.NullInt64
	RootID            sql.NullInt64
	Depth             int
	Path              sql.NullString
	CreatedBy         uint
	CreatorFirstName  sql.NullString
	CreatorLastName   sql.NullString
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         sql.NullTime
}

type Status struct {
	ID        uint
	TypeID    uint
	Name      string
	Category  string
	IsInitial bool
	SortOrder int
}

type TransitionRule struct {
	TypeID       uint
	FromStatusID uint
	ToStatusID   uint
	IsAllowed    bool
}

type FieldDefinition struct {
	ID                 uint
	TypeID             uint
	Name               string
	Label              string
	Type               string
	RequiredToComplete bool
	Visible            bool
}

type AuditLog struct {
	ID         uint
	ActorID    uint
	Action     string
	WorkItemID uint
	Before     []byte
	After      []byte
	Diff       []byte
	CreatedAt  time.Time
}
