package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/customfield"
	"github.com/iota-uz/taskboard/modules/workitems/infrastructure/persistence/models"
	"github.com/iota-uz/taskboard/pkg/composables"
)

const (
	fieldDefinitionsQuery = `
        SELECT id, type_id, name, label, field_type, is_required_to_complete, is_visible
        FROM work_item_fields
        WHERE type_id = $1
        ORDER BY id ASC`

	fieldValuesQuery = `
        SELECT work_item_id, field_id, value
        FROM work_item_field_values
        WHERE work_item_id = ANY($1)`
)

type PgCustomFieldRepository struct {
	slowQueryThreshold time.Duration
}

func NewCustomFieldRepository(slowQueryThreshold time.Duration) customfield.Repository {
	return &PgCustomFieldRepository{slowQueryThreshold: slowQueryThreshold}
}

func (g *PgCustomFieldRepository) GetDefinitions(ctx context.Context, typeID uint) ([]*customfield.Definition, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, fieldDefinitionsQuery, typeID)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query field definitions for type: %d", typeID))
	}
	defer rows.Close()

	var definitions []*customfield.Definition
	for rows.Next() {
		var row models.FieldDefinition
		if err := rows.Scan(
			&row.ID,
			&row.TypeID,
			&row.Name,
			&row.Label,
			&row.Type,
			&row.RequiredToComplete,
			&row.Visible,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan field definition row")
		}
		definitions = append(definitions, toDomainFieldDefinition(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return definitions, nil
}

// GetValues loads the custom field values for all given work items in
// one query. Queries exceeding the slow-query threshold are reported,
// never failed.
func (g *PgCustomFieldRepository) GetValues(ctx context.Context, itemIDs []uint) (map[uint]map[uint]string, error) {
	values := make(map[uint]map[uint]string)
	if len(itemIDs) == 0 {
		return values, nil
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	start := time.Now()
	rows, err := tx.Query(ctx, fieldValuesQuery, itemIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query custom field values")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID  uint
			fieldID uint
			value   string
		)
		if err := rows.Scan(&itemID, &fieldID, &value); err != nil {
			return nil, errors.Wrap(err, "failed to scan custom field value row")
		}
		if _, ok := values[itemID]; !ok {
			values[itemID] = make(map[uint]string)
		}
		values[itemID][fieldID] = value
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	if duration := time.Since(start); g.slowQueryThreshold > 0 && duration > g.slowQueryThreshold {
		composables.UseLogger(ctx).WithFields(logrus.Fields{
			"query":     "work_item_field_values.batch",
			"items":     len(itemIDs),
			"duration":  duration.String(),
			"threshold": g.slowQueryThreshold.String(),
		}).Warn("slow custom field batch query")
	}
	return values, nil
}
