package workitems

import (
	"context"
	"embed"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/taskboard/modules/workitems/infrastructure/persistence"
	"github.com/iota-uz/taskboard/modules/workitems/services"
	"github.com/iota-uz/taskboard/pkg/configuration"
	"github.com/iota-uz/taskboard/pkg/eventbus"
)

//go:embed infrastructure/persistence/schema/workitems-schema.sql
var MigrationFiles embed.FS

const schemaFile = "infrastructure/persistence/schema/workitems-schema.sql"

// Module bundles the work item engine: repositories, validators and
// the orchestrating service, wired from configuration.
type Module struct {
	Pool    *pgxpool.Pool
	Service *services.WorkItemService
}

func NewModule(conf *configuration.Configuration, pool *pgxpool.Pool, bus eventbus.EventBus) *Module {
	return &Module{
		Pool: pool,
		Service: services.NewWorkItemService(services.Options{
			Repo:             persistence.NewWorkItemRepository(),
			Statuses:         persistence.NewStatusRepository(),
			Fields:           persistence.NewCustomFieldRepository(conf.SlowQueryThreshold),
			AuditLogs:        persistence.NewAuditLogRepository(),
			Publisher:        bus,
			TransitionPolicy: conf.WorkItem.TransitionPolicy,
			PageSize:         conf.PageSize,
			MaxPageSize:      conf.MaxPageSize,
			AuditLogEnabled:  conf.AuditLogEnabled,
		}),
	}
}

func (m *Module) Name() string {
	return "workitems"
}

// ApplyMigrations executes the embedded schema against the pool. Every
// statement is idempotent (CREATE ... IF NOT EXISTS), so repeated runs
// are safe.
func (m *Module) ApplyMigrations(ctx context.Context) error {
	schema, err := MigrationFiles.ReadFile(schemaFile)
	if err != nil {
		return errors.Wrap(err, "failed to read embedded schema")
	}
	if _, err := m.Pool.Exec(ctx, string(schema)); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
