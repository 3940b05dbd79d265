package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/wI2L/jsondiff"

	"github.com/iota-uz/taskboard/modules/core/domain/aggregates/user"
	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/auditlog"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/customfield"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/status"
	"github.com/iota-uz/taskboard/modules/workitems/infrastructure/persistence"
	"github.com/iota-uz/taskboard/pkg/composables"
	"github.com/iota-uz/taskboard/pkg/configuration"
	"github.com/iota-uz/taskboard/pkg/eventbus"
	"github.com/iota-uz/taskboard/pkg/repo"
	"github.com/iota-uz/taskboard/pkg/serrors"
)

const (
	defaultPageSize    = 25
	defaultMaxPageSize = 100
)

type Options struct {
	Repo             workitem.Repository
	Statuses         status.Repository
	Fields           customfield.Repository
	AuditLogs        auditlog.Repository
	Publisher        eventbus.EventBus
	TransitionPolicy configuration.TransitionPolicy
	PageSize         int
	MaxPageSize      int
	AuditLogEnabled  bool
}

// WorkItemService holds the application-scoped collaborators. Callers
// obtain a per-request handle through ForUser, which resolves the
// caller's scope exactly once.
type WorkItemService struct {
	repo      workitem.Repository
	statuses  status.Repository
	fields    customfield.Repository
	publisher eventbus.EventBus

	transition *TransitionValidator
	completion *CompletionValidator
	auditor    *auditor

	pageSize    int
	maxPageSize int
}

func NewWorkItemService(opts Options) *WorkItemService {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPageSize := opts.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = defaultMaxPageSize
	}
	return &WorkItemService{
		repo:        opts.Repo,
		statuses:    opts.Statuses,
		fields:      opts.Fields,
		publisher:   opts.Publisher,
		transition:  NewTransitionValidator(opts.Statuses, opts.TransitionPolicy),
		completion:  NewCompletionValidator(opts.Fields),
		auditor:     newAuditor(opts.AuditLogs, opts.AuditLogEnabled),
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// ForUser returns a handle bound to the caller. The scope is resolved
// here and reused for every operation on the handle.
func (s *WorkItemService) ForUser(u user.User) *ScopedWorkItemService {
	return &ScopedWorkItemService{
		service: s,
		user:    u,
		scope:   ResolveScope(u),
	}
}

type ScopedWorkItemService struct {
	service *WorkItemService
	user    user.User
	scope   workitem.Scope
}

func (s *ScopedWorkItemService) Scope() workitem.Scope {
	return s.scope
}

// GetByID returns the work item or nil when no matching row exists.
// A row that exists but falls outside an organization/own caller's
// scope is an authorization failure, not a miss.
func (s *ScopedWorkItemService) GetByID(ctx context.Context, id uint) (*workitem.WorkItem, error) {
	ctx = composables.WithUser(ctx, s.user)
	start := time.Now()

	item, err := s.getByID(ctx, id)
	s.service.auditor.emit(ctx, "work_items.get_by_id", start, logrus.Fields{
		"work_item_id": id,
		"found":        item != nil,
	}, err)
	return item, err
}

func (s *ScopedWorkItemService) getByID(ctx context.Context, id uint) (*workitem.WorkItem, error) {
	if !s.scope.CanRead() {
		return nil, serrors.NewAuthorizationError("caller has no read scope for work items")
	}

	item, err := s.service.repo.GetByID(ctx, id, s.scope)
	if err != nil {
		if errors.Is(err, persistence.ErrWorkItemNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// The query predicate already filtered; this is the authoritative
	// re-check and stays even though it looks redundant.
	if !s.scope.CanReadItem(item) {
		return nil, serrors.NewAuthorizationError(fmt.Sprintf("work item %d is outside the caller's scope", id))
	}

	if err := s.attachCustomFields(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Count is advisory: a caller without read scope gets zero, never an
// error, so counting cannot leak existence.
func (s *ScopedWorkItemService) Count(ctx context.Context, params *workitem.FindParams) (int64, error) {
	ctx = composables.WithUser(ctx, s.user)
	start := time.Now()

	if !s.scope.CanRead() {
		s.service.auditor.emit(ctx, "work_items.count", start, logrus.Fields{"scoped_out": true}, nil)
		return 0, nil
	}

	if params == nil {
		params = &workitem.FindParams{}
	}
	params.Scope = s.scope

	count, err := s.service.repo.Count(ctx, params)
	s.service.auditor.emit(ctx, "work_items.count", start, logrus.Fields{"count": count}, err)
	return count, err
}

// GetPaginated returns one page plus the total row count under the
// same conditions, so callers can do pagination math.
func (s *ScopedWorkItemService) GetPaginated(ctx context.Context, params *workitem.FindParams) ([]*workitem.WorkItem, int64, error) {
	ctx = composables.WithUser(ctx, s.user)
	start := time.Now()

	items, total, err := s.getPaginated(ctx, params)
	s.service.auditor.emit(ctx, "work_items.get_list", start, logrus.Fields{
		"returned": len(items),
		"total":    total,
	}, err)
	return items, total, err
}

func (s *ScopedWorkItemService) getPaginated(ctx context.Context, params *workitem.FindParams) ([]*workitem.WorkItem, int64, error) {
	if !s.scope.CanRead() {
		return nil, 0, serrors.NewAuthorizationError("caller has no read scope for work items")
	}

	if params == nil {
		params = &workitem.FindParams{}
	}
	params.Scope = s.scope
	if params.Limit <= 0 {
		params.Limit = s.service.pageSize
	}
	if params.Limit > s.service.maxPageSize {
		params.Limit = s.service.maxPageSize
	}
	if len(params.SortBy.Fields) == 0 {
		params.SortBy = workitem.SortBy{
			Fields: []repo.SortByField[workitem.Field]{
				{Field: workitem.CreatedAtField, Ascending: false},
			},
		}
	}
	return s.runListQuery(ctx, params)
}

func (s *ScopedWorkItemService) runListQuery(ctx context.Context, params *workitem.FindParams) ([]*workitem.WorkItem, int64, error) {
	total, err := s.service.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.service.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachCustomFields(ctx, items...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create inserts a new work item with its type's initial status and
// finalizes the materialized path in the same transaction, so no
// reader can observe a row without a path.
func (s *ScopedWorkItemService) Create(ctx context.Context, data *workitem.CreateDTO) (*workitem.WorkItem, error) {
	ctx = composables.WithUser(ctx, s.user)
	start := time.Now()

	item, err := s.create(ctx, data)
	fields := logrus.Fields{}
	if item != nil {
		fields["work_item_id"] = item.ID
	}
	s.service.auditor.emit(ctx, "work_items.create", start, fields, err)
	if err != nil {
		return nil, err
	}

	s.service.auditor.record(ctx, "create", item.ID, nil, item)
	if s.service.publisher != nil {
		s.service.publisher.Publish(workitem.NewCreatedEvent(ctx, item))
	}
	return item, nil
}

func (s *ScopedWorkItemService) create(ctx context.Context, data *workitem.CreateDTO) (*workitem.WorkItem, error) {
	if data == nil {
		return nil, serrors.NewValidationError("missing work item data")
	}
	data.Normalize()
	if err := data.Validate(); err != nil {
		return nil, err
	}

	if !s.scope.CanManageInOrganization(data.OrganizationID) {
		return nil, serrors.NewAuthorizationError(
			fmt.Sprintf("caller may not create work items in organization %s", data.OrganizationID),
		)
	}

	id, err := composables.InTxResult(ctx, func(txCtx context.Context) (uint, error) {
		initial, err := s.service.statuses.GetInitial(txCtx, data.TypeID)
		if err != nil {
			if errors.Is(err, persistence.ErrInitialStatusNotFound) {
				return 0, serrors.NewNotFoundError(
					fmt.Sprintf("no initial status configured for work item type %d", data.TypeID),
				)
			}
			return 0, err
		}

		placement, err := calculateHierarchy(txCtx, s.service.repo, data.ParentID)
		if err != nil {
			return 0, err
		}

		now := time.Now()
		item := &workitem.WorkItem{
			TypeID:         data.TypeID,
			OrganizationID: data.OrganizationID,
			Subject:        data.Subject,
			Description:    data.Description,
			StatusID:       initial.ID,
			Priority:       data.Priority,
			AssigneeID:     data.AssigneeID,
			DueDate:        data.DueDate,
			ParentID:       data.ParentID,
			Depth:          placement.depth,
			CreatedBy:      s.user.ID(),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		newID, err := s.service.repo.Create(txCtx, item)
		if err != nil {
			return 0, err
		}

		rootID := newID
		if placement.rootID != nil {
			rootID = *placement.rootID
		}
		path := workitem.BuildPath(placement.parentPath, newID)
		if err := s.service.repo.UpdatePath(txCtx, newID, path, rootID); err != nil {
			return 0, err
		}
		return newID, nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, serrors.NewNotFoundError(fmt.Sprintf("work item %d not found after creation", id))
	}
	return created, nil
}

// Update applies a patch. A status change runs the transition rules
// and, when the target status is completed-category, the completion
// gate, before anything is written.
func (s *ScopedWorkItemService) Update(ctx context.Context, id uint, patch *workitem.UpdateDTO) (*workitem.WorkItem, error) {
	ctx = composables.WithUser(ctx, s.user)
	start := time.Now()

	before, after, err := s.update(ctx, id, patch)
	s.service.auditor.emit(ctx, "work_items.update", start, logrus.Fields{"work_item_id": id}, err)
	if err != nil {
		return nil, err
	}

	s.service.auditor.record(ctx, "update", id, before, after)
	if s.service.publisher != nil {
		s.service.publisher.Publish(workitem.NewUpdatedEvent(ctx, before, after, diffJSON(before, after)))
	}
	return after, nil
}

func (s *ScopedWorkItemService) update(ctx context.Context, id uint, patch *workitem.UpdateDTO) (*workitem.WorkItem, *workitem.WorkItem, error) {
	if patch == nil {
		return nil, nil, serrors.NewValidationError("missing work item patch")
	}
	if err := patch.Validate(); err != nil {
		return nil, nil, err
	}

	current, err := s.getByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if current == nil {
		return nil, nil, serrors.NewNotFoundError(fmt.Sprintf("work item %d not found", id))
	}
	if !s.scope.CanManageItem(current) {
		return nil, nil, serrors.NewAuthorizationError(fmt.Sprintf("caller may not modify work item %d", id))
	}

	if patch.StatusID != nil && *patch.StatusID != current.StatusID {
		if err := s.validateStatusChange(ctx, current, *patch.StatusID); err != nil {
			return nil, nil, err
		}
	}

	next := patch.Apply(current, time.Now())
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.service.repo.Update(txCtx, next)
	}); err != nil {
		return nil, nil, err
	}

	updated, err := s.getByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if updated == nil {
		return nil, nil, serrors.NewNotFoundError(fmt.Sprintf("work item %d not found after update", id))
	}
	return current, updated, nil
}

func (s *ScopedWorkItemService) validateStatusChange(ctx context.Context, current *workitem.WorkItem, toStatusID uint) error {
	next, err := s.service.statuses.GetByID(ctx, toStatusID)
	if err != nil {
		if errors.Is(err, persistence.ErrStatusNotFound) {
			return serrors.NewNotFoundError(fmt.Sprintf("status %d not found", toStatusID))
		}
		return err
	}
	if next.TypeID != current.TypeID {
		return serrors.NewValidationError(
			fmt.Sprintf("status %d does not belong to work item type %d", toStatusID, current.TypeID),
		)
	}

	if err := s.service.transition.Validate(ctx, current.TypeID, current.StatusID, toStatusID); err != nil {
		return err
	}
	if next.Category == status.CategoryCompleted {
		return s.service.completion.Validate(ctx, current)
	}
	return nil
}

// Delete soft deletes the item; the row persists for audit but is
// excluded from every read from now on.
func (s *ScopedWorkItemService) Delete(ctx context.Context, id uint) error {
	ctx = composables.WithUser(ctx, s.user)
	start := time.Now()

	item, err := s.delete(ctx, id)
	s.service.auditor.emit(ctx, "work_items.delete", start, logrus.Fields{"work_item_id": id}, err)
	if err != nil {
		return err
	}

	s.service.auditor.record(ctx, "delete", id, item, nil)
	if s.service.publisher != nil {
		s.service.publisher.Publish(workitem.NewDeletedEvent(ctx, item))
	}
	return nil
}

func (s *ScopedWorkItemService) delete(ctx context.Context, id uint) (*workitem.WorkItem, error) {
	current, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, serrors.NewNotFoundError(fmt.Sprintf("work item %d not found", id))
	}
	if !s.scope.CanManageItem(current) {
		return nil, serrors.NewAuthorizationError(fmt.Sprintf("caller may not delete work item %d", id))
	}

	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.service.repo.SoftDelete(txCtx, id, time.Now())
	}); err != nil {
		return nil, err
	}
	return current, nil
}

// GetChildren lists the direct children of a work item the caller can
// read, ordered by creation time.
func (s *ScopedWorkItemService) GetChildren(ctx context.Context, id uint) ([]*workitem.WorkItem, error) {
	ctx = composables.WithUser(ctx, s.user)
	start := time.Now()

	children, err := s.getChildren(ctx, id)
	s.service.auditor.emit(ctx, "work_items.get_children", start, logrus.Fields{
		"work_item_id": id,
		"returned":     len(children),
	}, err)
	return children, err
}

func (s *ScopedWorkItemService) getChildren(ctx context.Context, id uint) ([]*workitem.WorkItem, error) {
	if !s.scope.CanRead() {
		return nil, serrors.NewAuthorizationError("caller has no read scope for work items")
	}

	// Scope-restricted parent lookup: an inaccessible parent is
	// indistinguishable from a missing one.
	if _, err := s.service.repo.GetByID(ctx, id, s.scope); err != nil {
		if errors.Is(err, persistence.ErrWorkItemNotFound) {
			return nil, serrors.NewNotFoundError(fmt.Sprintf("work item %d not found", id))
		}
		return nil, err
	}

	children, err := s.service.repo.GetChildren(ctx, id, s.scope)
	if err != nil {
		return nil, err
	}
	if err := s.attachCustomFields(ctx, children...); err != nil {
		return nil, err
	}
	return children, nil
}

// GetAncestors returns the root-to-parent chain of an item, extracted
// from its materialized path without recursive queries.
func (s *ScopedWorkItemService) GetAncestors(ctx context.Context, id uint) ([]*workitem.WorkItem, error) {
	ctx = composables.WithUser(ctx, s.user)
	start := time.Now()

	ancestors, err := s.getAncestors(ctx, id)
	s.service.auditor.emit(ctx, "work_items.get_ancestors", start, logrus.Fields{
		"work_item_id": id,
		"returned":     len(ancestors),
	}, err)
	return ancestors, err
}

func (s *ScopedWorkItemService) getAncestors(ctx context.Context, id uint) ([]*workitem.WorkItem, error) {
	if !s.scope.CanRead() {
		return nil, serrors.NewAuthorizationError("caller has no read scope for work items")
	}

	item, err := s.service.repo.GetByID(ctx, id, s.scope)
	if err != nil {
		if errors.Is(err, persistence.ErrWorkItemNotFound) {
			return nil, serrors.NewNotFoundError(fmt.Sprintf("work item %d not found", id))
		}
		return nil, err
	}
	if item.ParentID == nil {
		return nil, nil
	}

	segments := item.PathSegments()
	if len(segments) <= 1 {
		return nil, nil
	}
	ancestorIDs := make([]uint, 0, len(segments)-1)
	for _, segment := range segments[:len(segments)-1] {
		ancestorID, err := strconv.ParseUint(segment, 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("malformed path segment %q on work item %d", segment, id))
		}
		ancestorIDs = append(ancestorIDs, uint(ancestorID))
	}

	ancestors, err := s.service.repo.GetByIDs(ctx, ancestorIDs, s.scope)
	if err != nil {
		return nil, err
	}
	if err := s.attachCustomFields(ctx, ancestors...); err != nil {
		return nil, err
	}
	return ancestors, nil
}

// GetAuditTrail lists the persisted audit entries for a work item the
// caller can read, newest first, plus the total entry count.
func (s *ScopedWorkItemService) GetAuditTrail(ctx context.Context, id uint, limit, offset int) ([]*auditlog.AuditLog, int64, error) {
	ctx = composables.WithUser(ctx, s.user)
	start := time.Now()

	entries, total, err := s.getAuditTrail(ctx, id, limit, offset)
	s.service.auditor.emit(ctx, "work_items.get_audit_trail", start, logrus.Fields{
		"work_item_id": id,
		"returned":     len(entries),
	}, err)
	return entries, total, err
}

func (s *ScopedWorkItemService) getAuditTrail(ctx context.Context, id uint, limit, offset int) ([]*auditlog.AuditLog, int64, error) {
	item, err := s.getByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if item == nil {
		return nil, 0, serrors.NewNotFoundError(fmt.Sprintf("work item %d not found", id))
	}
	if s.service.auditor.logs == nil {
		return nil, 0, nil
	}

	if limit <= 0 {
		limit = s.service.pageSize
	}
	if limit > s.service.maxPageSize {
		limit = s.service.maxPageSize
	}
	params := &auditlog.FindParams{
		WorkItemID: &id,
		Limit:      limit,
		Offset:     offset,
	}

	total, err := s.service.auditor.logs.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	entries, err := s.service.auditor.logs.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *ScopedWorkItemService) attachCustomFields(ctx context.Context, items ...*workitem.WorkItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	values, err := s.service.fields.GetValues(ctx, ids)
	if err != nil {
		return err
	}
	for _, item := range items {
		item.CustomFields = values[item.ID]
	}
	return nil
}

func diffJSON(before, after *workitem.WorkItem) json.RawMessage {
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return nil
	}
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return nil
	}
	patch, err := jsondiff.CompareJSON(beforeJSON, afterJSON)
	if err != nil {
		return nil
	}
	diff, err := json.Marshal(patch)
	if err != nil {
		return nil
	}
	return diff
}
