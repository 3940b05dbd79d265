package auditlog

import (
	"context"
	"encoding/json"
	"time"
)

// AuditLog is one persisted audit trail entry for a work item write.
// Before/After hold JSON snapshots; Diff holds the field-level patch
// between them.
type AuditLog struct {
	ID         uint
	ActorID    uint
	Action     string
	WorkItemID uint
	Before     json.RawMessage
	After      json.RawMessage
	Diff       json.RawMessage
	CreatedAt  time.Time
}

type FindParams struct {
	ActorID    *uint
	WorkItemID *uint
	Action     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*AuditLog, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, log *AuditLog) error
}
