package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/auditlog"
	"github.com/iota-uz/taskboard/modules/workitems/infrastructure/persistence/models"
	"github.com/iota-uz/taskboard/pkg/composables"
	"github.com/iota-uz/taskboard/pkg/repo"
)

const (
	auditLogInsertQuery = `
        INSERT INTO work_item_audit_logs (actor_id, action, work_item_id, before, after, diff, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	auditLogFindQuery = `
        SELECT id, actor_id, action, work_item_id, before, after, diff, created_at
        FROM work_item_audit_logs`

	auditLogCountQuery = `SELECT COUNT(*) FROM work_item_audit_logs`
)

type PgAuditLogRepository struct{}

func NewAuditLogRepository() auditlog.Repository {
	return &PgAuditLogRepository{}
}

func buildAuditLogFilters(params *auditlog.FindParams) ([]string, []interface{}) {
	where := []string{"1 = 1"}
	var args []interface{}

	if params == nil {
		return where, args
	}
	if params.ActorID != nil {
		where = append(where, fmt.Sprintf("actor_id = $%d", len(args)+1))
		args = append(args, *params.ActorID)
	}
	if params.WorkItemID != nil {
		where = append(where, fmt.Sprintf("work_item_id = $%d", len(args)+1))
		args = append(args, *params.WorkItemID)
	}
	if params.Action != "" {
		where = append(where, fmt.Sprintf("action = $%d", len(args)+1))
		args = append(args, params.Action)
	}
	if params.From != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)+1))
		args = append(args, *params.From)
	}
	if params.To != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)+1))
		args = append(args, *params.To)
	}
	return where, args
}

func (r *PgAuditLogRepository) List(ctx context.Context, params *auditlog.FindParams) ([]*auditlog.AuditLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildAuditLogFilters(params)
	query := auditLogFindQuery + `
        WHERE ` + strings.Join(where, " AND ") + `
        ORDER BY created_at DESC`
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*auditlog.AuditLog
	for rows.Next() {
		var row models.AuditLog
		if err := rows.Scan(
			&row.ID,
			&row.ActorID,
			&row.Action,
			&row.WorkItemID,
			&row.Before,
			&row.After,
			&row.Diff,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainAuditLog(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *PgAuditLogRepository) Count(ctx context.Context, params *auditlog.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	where, args := buildAuditLogFilters(params)

	var count int64
	if err := tx.QueryRow(ctx, auditLogCountQuery+" WHERE "+strings.Join(where, " AND "), args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgAuditLogRepository) Create(ctx context.Context, log *auditlog.AuditLog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		ctx,
		auditLogInsertQuery,
		log.ActorID,
		log.Action,
		log.WorkItemID,
		log.Before,
		log.After,
		log.Diff,
		log.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert audit log")
	}
	return nil
}
