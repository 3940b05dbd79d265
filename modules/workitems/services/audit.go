package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wI2L/jsondiff"

	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/auditlog"
	"github.com/iota-uz/taskboard/pkg/composables"
)

// auditor emits the audit trail: a structured log entry for every
// operation (success and failure alike) and, for writes, a persisted
// record with before/after snapshots and a field-level diff. Emission
// is fire and forget; a failing sink never fails the operation.
type auditor struct {
	logs    auditlog.Repository
	enabled bool
}

func newAuditor(logs auditlog.Repository, enabled bool) *auditor {
	return &auditor{logs: logs, enabled: enabled && logs != nil}
}

func (a *auditor) emit(ctx context.Context, operation string, start time.Time, fields logrus.Fields, opErr error) {
	entry := composables.UseLogger(ctx).
		WithField("operation", operation).
		WithField("duration", time.Since(start).String())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	if opErr != nil {
		entry.WithError(opErr).Warn("work item operation failed")
		return
	}
	entry.Info("work item operation")
}

func (a *auditor) record(ctx context.Context, action string, workItemID uint, before, after *workitem.WorkItem) {
	if !a.enabled {
		return
	}

	entry := &auditlog.AuditLog{
		ActorID:    actorIDFromContext(ctx),
		Action:     action,
		WorkItemID: workItemID,
		CreatedAt:  time.Now(),
	}

	var beforeJSON, afterJSON []byte
	if before != nil {
		beforeJSON, _ = json.Marshal(before)
		entry.Before = beforeJSON
	}
	if after != nil {
		afterJSON, _ = json.Marshal(after)
		entry.After = afterJSON
	}
	if beforeJSON != nil && afterJSON != nil {
		if patch, err := jsondiff.CompareJSON(beforeJSON, afterJSON); err == nil {
			if diff, err := json.Marshal(patch); err == nil {
				entry.Diff = diff
			}
		}
	}

	if err := a.logs.Create(ctx, entry); err != nil {
		composables.UseLogger(ctx).
			WithError(err).
			WithField("action", action).
			WithField("work_item_id", workItemID).
			Warn("failed to persist audit log entry")
	}
}

func actorIDFromContext(ctx context.Context) uint {
	u, err := composables.UseUser(ctx)
	if err != nil {
		return 0
	}
	return u.ID()
}
