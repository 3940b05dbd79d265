package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
	"github.com/iota-uz/taskboard/modules/workitems/infrastructure/persistence/models"
	"github.com/iota-uz/taskboard/pkg/composables"
	"github.com/iota-uz/taskboard/pkg/repo"
)

var (
	ErrWorkItemNotFound = errors.New("work item not found")
)

// matchNothing is injected when the caller has no applicable scope so
// the query shape stays identical while returning no rows.
const matchNothing = "1 = 0"

const (
	workItemFindQuery = `
        SELECT
            wi.id,
            wi.type_id,
            wit.name,
            wi.organization_id,
            o.name,
            wi.subject,
            wi.description,
            wi.status_id,
            ws.name,
            ws.category,
            wi.priority,
            wi.assignee_id,
            a.first_name,
            a.last_name,
            wi.due_date,
            wi.started_at,
            wi.completed_at,
            wi.parent_id,
            wi.root_id,
            wi.depth,
            wi.path,
            wi.created_by,
            c.first_name,
            c.last_name,
            wi.created_at,
            wi.updated_at,
            wi.deleted_at
        FROM work_items wi
        LEFT JOIN work_item_types wit ON wi.type_id = wit.id
        LEFT JOIN organizations o ON wi.organization_id = o.id
        LEFT JOIN work_item_statuses ws ON wi.status_id = ws.id
        LEFT JOIN users a ON wi.assignee_id = a.id
        LEFT JOIN users c ON wi.created_by = c.id`

	workItemCountQuery = `
        SELECT COUNT(wi.id)
        FROM work_items wi
        LEFT JOIN work_item_statuses ws ON wi.status_id = ws.id`

	workItemHierarchyQuery = `
        SELECT wi.depth, wi.root_id, wi.path
        FROM work_items wi
        WHERE wi.id = $1 AND wi.deleted_at IS NULL`

	workItemUpdatePathQuery = `UPDATE work_items SET path = $1, root_id = $2 WHERE id = $3`

	workItemSoftDeleteQuery = `UPDATE work_items SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
)

type PgWorkItemRepository struct {
	fieldMap map[workitem.Field]string
}

func NewWorkItemRepository() workitem.Repository {
	return &PgWorkItemRepository{
		fieldMap: map[workitem.Field]string{
			workitem.SubjectField:   "wi.subject",
			workitem.PriorityField:  "wi.priority",
			workitem.StatusField:    "wi.status_id",
			workitem.DueDateField:   "wi.due_date",
			workitem.DepthField:     "wi.depth",
			workitem.CreatedAtField: "wi.created_at",
			workitem.UpdatedAtField: "wi.updated_at",
		},
	}
}

// scopeConditions translates the caller's scope into predicates. The
// soft-delete exclusion always applies; the narrowest applicable tier
// that grants nothing degrades to a predicate matching no rows.
func scopeConditions(scope workitem.Scope, where []string, args []interface{}) ([]string, []interface{}) {
	where = append(where, "wi.deleted_at IS NULL")

	if scope.ReadAll {
		return where, args
	}
	if scope.ReadOrganization {
		orgIDs := make([]string, 0, len(scope.OrganizationIDs))
		for _, id := range scope.OrganizationIDs {
			orgIDs = append(orgIDs, id.String())
		}
		// An empty membership list renders the impossible predicate.
		return appendFilter(where, args, "wi.organization_id", repo.In(orgIDs))
	}
	if scope.ReadOwn {
		return appendFilter(where, args, "wi.created_by", repo.Eq(scope.UserID))
	}
	return append(where, matchNothing), args
}

func appendFilter(where []string, args []interface{}, column string, f repo.Filter) ([]string, []interface{}) {
	where = append(where, f.String(column, len(args)+1))
	return where, append(args, f.Value()...)
}

func (g *PgWorkItemRepository) buildFilters(params *workitem.FindParams) ([]string, []interface{}) {
	where, args := scopeConditions(params.Scope, nil, nil)

	if params.TypeID != nil {
		where, args = appendFilter(where, args, "wi.type_id", repo.Eq(*params.TypeID))
	}
	if params.OrganizationID != nil {
		where, args = appendFilter(where, args, "wi.organization_id", repo.Eq(params.OrganizationID.String()))
	}
	if params.StatusID != nil {
		where, args = appendFilter(where, args, "wi.status_id", repo.Eq(*params.StatusID))
	}
	if params.StatusCategory != "" {
		where, args = appendFilter(where, args, "ws.category", repo.Eq(string(params.StatusCategory)))
	}
	if params.Priority != "" {
		where, args = appendFilter(where, args, "wi.priority", repo.Eq(string(params.Priority)))
	}
	if params.AssigneeID != nil {
		where, args = appendFilter(where, args, "wi.assignee_id", repo.Eq(*params.AssigneeID))
	}
	if params.CreatedBy != nil {
		where, args = appendFilter(where, args, "wi.created_by", repo.Eq(*params.CreatedBy))
	}
	if params.Search != "" {
		index := len(args) + 1
		where = append(
			where,
			fmt.Sprintf("(wi.subject ILIKE $%d OR wi.description ILIKE $%d)", index, index),
		)
		args = append(args, "%"+params.Search+"%")
	}
	return where, args
}

func (g *PgWorkItemRepository) GetByID(ctx context.Context, id uint, scope workitem.Scope) (*workitem.WorkItem, error) {
	where, args := scopeConditions(scope, nil, nil)
	where, args = appendFilter(where, args, "wi.id", repo.Eq(id))

	items, err := g.queryWorkItems(ctx, repo.Join(workItemFindQuery, repo.JoinWhere(where...)), args...)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query work item with id: %d", id))
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("id: %d: %w", id, ErrWorkItemNotFound)
	}
	return items[0], nil
}

func (g *PgWorkItemRepository) GetByIDs(ctx context.Context, ids []uint, scope workitem.Scope) ([]*workitem.WorkItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	where, args := scopeConditions(scope, nil, nil)
	where = append(where, fmt.Sprintf("wi.id = ANY($%d)", len(args)+1))
	args = append(args, ids)

	query := repo.Join(workItemFindQuery, repo.JoinWhere(where...), "ORDER BY wi.depth ASC")
	items, err := g.queryWorkItems(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query work items by ids")
	}
	return items, nil
}

func (g *PgWorkItemRepository) GetChildren(ctx context.Context, parentID uint, scope workitem.Scope) ([]*workitem.WorkItem, error) {
	where, args := scopeConditions(scope, nil, nil)
	where, args = appendFilter(where, args, "wi.parent_id", repo.Eq(parentID))

	query := repo.Join(workItemFindQuery, repo.JoinWhere(where...), "ORDER BY wi.created_at ASC")
	items, err := g.queryWorkItems(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query children of work item: %d", parentID))
	}
	return items, nil
}

func (g *PgWorkItemRepository) GetPaginated(ctx context.Context, params *workitem.FindParams) ([]*workitem.WorkItem, error) {
	where, args := g.buildFilters(params)

	query := repo.Join(
		workItemFindQuery,
		repo.JoinWhere(where...),
		params.SortBy.ToSQL(g.fieldMap),
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	items, err := g.queryWorkItems(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paginated work items")
	}
	return items, nil
}

func (g *PgWorkItemRepository) Count(ctx context.Context, params *workitem.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}

	where, args := g.buildFilters(params)

	var count int64
	if err := tx.QueryRow(ctx, repo.Join(workItemCountQuery, repo.JoinWhere(where...)), args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count work items")
	}
	return count, nil
}

func (g *PgWorkItemRepository) GetHierarchyInfo(ctx context.Context, id uint) (*workitem.HierarchyInfo, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	var (
		info   workitem.HierarchyInfo
		rootID *int64
		path   *string
	)
	if err := tx.QueryRow(ctx, workItemHierarchyQuery, id).Scan(&info.Depth, &rootID, &path); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("id: %d: %w", id, ErrWorkItemNotFound)
		}
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query hierarchy info for work item: %d", id))
	}
	if rootID != nil {
		v := uint(*rootID)
		info.RootID = &v
	}
	if path != nil {
		info.Path = *path
	}
	return &info, nil
}

func (g *PgWorkItemRepository) Create(ctx context.Context, item *workitem.WorkItem) (uint, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}

	fields := []string{
		"type_id",
		"organization_id",
		"subject",
		"description",
		"status_id",
		"priority",
		"assignee_id",
		"due_date",
		"parent_id",
		"depth",
		"created_by",
		"created_at",
		"updated_at",
	}
	values := []interface{}{
		item.TypeID,
		item.OrganizationID.String(),
		item.Subject,
		nullString(item.Description),
		item.StatusID,
		string(item.Priority),
		item.AssigneeID,
		item.DueDate,
		item.ParentID,
		item.Depth,
		item.CreatedBy,
		item.CreatedAt,
		item.UpdatedAt,
	}

	var id uint
	if err := tx.QueryRow(ctx, repo.Insert("work_items", fields, "id"), values...).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "failed to insert work item")
	}
	return id, nil
}

func (g *PgWorkItemRepository) UpdatePath(ctx context.Context, id uint, path string, rootID uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, workItemUpdatePathQuery, path, rootID, id); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to update path for work item: %d", id))
	}
	return nil
}

func (g *PgWorkItemRepository) Update(ctx context.Context, item *workitem.WorkItem) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	fields := []string{
		"subject",
		"description",
		"status_id",
		"priority",
		"assignee_id",
		"due_date",
		"started_at",
		"completed_at",
		"updated_at",
	}
	values := []interface{}{
		item.Subject,
		nullString(item.Description),
		item.StatusID,
		string(item.Priority),
		item.AssigneeID,
		item.DueDate,
		item.StartedAt,
		item.CompletedAt,
		item.UpdatedAt,
	}
	values = append(values, item.ID)

	if _, err := tx.Exec(ctx, repo.Update("work_items", fields, fmt.Sprintf("id = $%d", len(values))), values...); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to update work item with id: %d", item.ID))
	}
	return nil
}

func (g *PgWorkItemRepository) SoftDelete(ctx context.Context, id uint, deletedAt time.Time) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, workItemSoftDeleteQuery, deletedAt, id); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to soft delete work item: %d", id))
	}
	return nil
}

func (g *PgWorkItemRepository) queryWorkItems(ctx context.Context, query string, args ...interface{}) ([]*workitem.WorkItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var items []*workitem.WorkItem
	for rows.Next() {
		var row models.WorkItem
		if err := rows.Scan(
			&row.ID,
			&row.TypeID,
			&row.TypeName,
			&row.OrganizationID,
			&row.OrganizationName,
			&row.Subject,
			&row.Description,
			&row.StatusID,
			&row.StatusName,
			&row.StatusCategory,
			&row.Priority,
			&row.AssigneeID,
			&row.AssigneeFirstName,
			&row.AssigneeLastName,
			&row.DueDate,
			&row.StartedAt,
			&row.CompletedAt,
			&row.ParentID,
			&row.RootID,
			&row.Depth,
			&row.Path,
			&row.CreatedBy,
			&row.CreatorFirstName,
			&row.CreatorLastName,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.DeletedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan work item row")
		}
		item, err := ToDomainWorkItem(&row)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("failed to convert work item ID: %d to domain entity", row.ID))
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return items, nil
}
