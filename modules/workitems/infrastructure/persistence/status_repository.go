package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/status"
	"github.com/iota-uz/taskboard/modules/workitems/infrastructure/persistence/models"
	"github.com/iota-uz/taskboard/pkg/composables"
)

var (
	ErrStatusNotFound        = errors.New("status not found")
	ErrInitialStatusNotFound = errors.New("initial status not configured")
)

const (
	statusFindQuery = `
        SELECT id, type_id, name, category, is_initial, sort_order
        FROM work_item_statuses`

	transitionRuleQuery = `
        SELECT type_id, from_status_id, to_status_id, is_allowed
        FROM work_item_status_transitions
        WHERE type_id = $1 AND from_status_id = $2 AND to_status_id = $3`
)

type PgStatusRepository struct{}

func NewStatusRepository() status.Repository {
	return &PgStatusRepository{}
}

func (g *PgStatusRepository) GetByID(ctx context.Context, id uint) (*status.Status, error) {
	row, err := g.queryStatus(ctx, statusFindQuery+" WHERE id = $1", id)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("id: %d: %w", id, ErrStatusNotFound)
		}
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query status with id: %d", id))
	}
	return row, nil
}

func (g *PgStatusRepository) GetInitial(ctx context.Context, typeID uint) (*status.Status, error) {
	row, err := g.queryStatus(ctx, statusFindQuery+" WHERE type_id = $1 AND is_initial ORDER BY sort_order ASC LIMIT 1", typeID)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("type: %d: %w", typeID, ErrInitialStatusNotFound)
		}
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query initial status for type: %d", typeID))
	}
	return row, nil
}

func (g *PgStatusRepository) GetTransitionRule(ctx context.Context, typeID, fromStatusID, toStatusID uint) (*status.TransitionRule, bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get transaction")
	}

	var row models.TransitionRule
	err = tx.QueryRow(ctx, transitionRuleQuery, typeID, fromStatusID, toStatusID).Scan(
		&row.TypeID,
		&row.FromStatusID,
		&row.ToStatusID,
		&row.IsAllowed,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "failed to query transition rule")
	}
	return toDomainTransitionRule(&row), true, nil
}

func (g *PgStatusRepository) queryStatus(ctx context.Context, query string, args ...interface{}) (*status.Status, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	var row models.Status
	if err := tx.QueryRow(ctx, query, args...).Scan(
		&row.ID,
		&row.TypeID,
		&row.Name,
		&row.Category,
		&row.IsInitial,
		&row.SortOrder,
	); err != nil {
		return nil, err
	}
	return toDomainStatus(&row), nil
}
