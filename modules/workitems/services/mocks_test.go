package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/taskboard/modules/core/domain/aggregates/user"
	"github.com/iota-uz/taskboard/modules/core/domain/entities/permission"
	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/auditlog"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/customfield"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/status"
	"github.com/iota-uz/taskboard/modules/workitems/infrastructure/persistence"
	"github.com/iota-uz/taskboard/pkg/composables"
	"github.com/iota-uz/taskboard/pkg/eventbus"
)

// stubTx satisfies the transaction composable so InTx takes its
// reuse path. None of its methods are ever called by the mocks.
type stubTx struct {
	pgx.Tx
}

func testContext() context.Context {
	return composables.WithTx(context.Background(), stubTx{})
}

func testUser(perms ...*permission.Permission) user.User {
	return user.Hydrate(7, "Jane", "Doe", "jane@example.com", false, nil, perms, time.Now())
}

func testUserInOrg(orgID uuid.UUID, perms ...*permission.Permission) user.User {
	return user.Hydrate(7, "Jane", "Doe", "jane@example.com", false, []uuid.UUID{orgID}, perms, time.Now())
}

type workItemRepoMock struct {
	getByID          func(ctx context.Context, id uint, scope workitem.Scope) (*workitem.WorkItem, error)
	getByIDs         func(ctx context.Context, ids []uint, scope workitem.Scope) ([]*workitem.WorkItem, error)
	getChildren      func(ctx context.Context, parentID uint, scope workitem.Scope) ([]*workitem.WorkItem, error)
	getPaginated     func(ctx context.Context, params *workitem.FindParams) ([]*workitem.WorkItem, error)
	count            func(ctx context.Context, params *workitem.FindParams) (int64, error)
	getHierarchyInfo func(ctx context.Context, id uint) (*workitem.HierarchyInfo, error)
	create           func(ctx context.Context, item *workitem.WorkItem) (uint, error)
	updatePath       func(ctx context.Context, id uint, path string, rootID uint) error
	update           func(ctx context.Context, item *workitem.WorkItem) error
	softDelete       func(ctx context.Context, id uint, deletedAt time.Time) error
}

func (m *workItemRepoMock) GetByID(ctx context.Context, id uint, scope workitem.Scope) (*workitem.WorkItem, error) {
	if m.getByID == nil {
		return nil, persistence.ErrWorkItemNotFound
	}
	return m.getByID(ctx, id, scope)
}

func (m *workItemRepoMock) GetByIDs(ctx context.Context, ids []uint, scope workitem.Scope) ([]*workitem.WorkItem, error) {
	if m.getByIDs == nil {
		return nil, nil
	}
	return m.getByIDs(ctx, ids, scope)
}

func (m *workItemRepoMock) GetChildren(ctx context.Context, parentID uint, scope workitem.Scope) ([]*workitem.WorkItem, error) {
	if m.getChildren == nil {
		return nil, nil
	}
	return m.getChildren(ctx, parentID, scope)
}

func (m *workItemRepoMock) GetPaginated(ctx context.Context, params *workitem.FindParams) ([]*workitem.WorkItem, error) {
	if m.getPaginated == nil {
		return nil, nil
	}
	return m.getPaginated(ctx, params)
}

func (m *workItemRepoMock) Count(ctx context.Context, params *workitem.FindParams) (int64, error) {
	if m.count == nil {
		return 0, nil
	}
	return m.count(ctx, params)
}

func (m *workItemRepoMock) GetHierarchyInfo(ctx context.Context, id uint) (*workitem.HierarchyInfo, error) {
	if m.getHierarchyInfo == nil {
		return nil, persistence.ErrWorkItemNotFound
	}
	return m.getHierarchyInfo(ctx, id)
}

func (m *workItemRepoMock) Create(ctx context.Context, item *workitem.WorkItem) (uint, error) {
	if m.create == nil {
		return 0, nil
	}
	return m.create(ctx, item)
}

func (m *workItemRepoMock) UpdatePath(ctx context.Context, id uint, path string, rootID uint) error {
	if m.updatePath == nil {
		return nil
	}
	return m.updatePath(ctx, id, path, rootID)
}

func (m *workItemRepoMock) Update(ctx context.Context, item *workitem.WorkItem) error {
	if m.update == nil {
		return nil
	}
	return m.update(ctx, item)
}

func (m *workItemRepoMock) SoftDelete(ctx context.Context, id uint, deletedAt time.Time) error {
	if m.softDelete == nil {
		return nil
	}
	return m.softDelete(ctx, id, deletedAt)
}

type statusRepoMock struct {
	statuses map[uint]*status.Status
	initial  map[uint]*status.Status
	rules    map[[3]uint]*status.TransitionRule
}

func (m *statusRepoMock) GetByID(ctx context.Context, id uint) (*status.Status, error) {
	s, ok := m.statuses[id]
	if !ok {
		return nil, persistence.ErrStatusNotFound
	}
	return s, nil
}

func (m *statusRepoMock) GetInitial(ctx context.Context, typeID uint) (*status.Status, error) {
	s, ok := m.initial[typeID]
	if !ok {
		return nil, persistence.ErrInitialStatusNotFound
	}
	return s, nil
}

func (m *statusRepoMock) GetTransitionRule(ctx context.Context, typeID, fromStatusID, toStatusID uint) (*status.TransitionRule, bool, error) {
	rule, ok := m.rules[[3]uint{typeID, fromStatusID, toStatusID}]
	if !ok {
		return nil, false, nil
	}
	return rule, true, nil
}

type customFieldRepoMock struct {
	definitions map[uint][]*customfield.Definition
	values      map[uint]map[uint]string
}

func (m *customFieldRepoMock) GetDefinitions(ctx context.Context, typeID uint) ([]*customfield.Definition, error) {
	return m.definitions[typeID], nil
}

func (m *customFieldRepoMock) GetValues(ctx context.Context, itemIDs []uint) (map[uint]map[uint]string, error) {
	out := make(map[uint]map[uint]string)
	for _, id := range itemIDs {
		if values, ok := m.values[id]; ok {
			out[id] = values
		}
	}
	return out, nil
}

type auditLogRepoMock struct {
	entries []*auditlog.AuditLog
}

func (m *auditLogRepoMock) List(ctx context.Context, params *auditlog.FindParams) ([]*auditlog.AuditLog, error) {
	return m.entries, nil
}

func (m *auditLogRepoMock) Count(ctx context.Context, params *auditlog.FindParams) (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *auditLogRepoMock) Create(ctx context.Context, log *auditlog.AuditLog) error {
	m.entries = append(m.entries, log)
	return nil
}

type serviceFixture struct {
	repo     *workItemRepoMock
	statuses *statusRepoMock
	fields   *customFieldRepoMock
	audits   *auditLogRepoMock
	bus      eventbus.EventBus
	service  *WorkItemService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		repo:     &workItemRepoMock{},
		statuses: &statusRepoMock{statuses: map[uint]*status.Status{}, initial: map[uint]*status.Status{}, rules: map[[3]uint]*status.TransitionRule{}},
		fields:   &customFieldRepoMock{definitions: map[uint][]*customfield.Definition{}, values: map[uint]map[uint]string{}},
		audits:   &auditLogRepoMock{},
		bus:      eventbus.NewEventPublisher(logrus.New()),
	}
	f.service = NewWorkItemService(Options{
		Repo:            f.repo,
		Statuses:        f.statuses,
		Fields:          f.fields,
		AuditLogs:       f.audits,
		Publisher:       f.bus,
		AuditLogEnabled: true,
	})
	return f
}
