package services

import (
	"context"
	"strings"

	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/customfield"
	"github.com/iota-uz/taskboard/pkg/serrors"
)

// CompletionValidator gates transitions into a completed-category
// status: every visible field flagged required-to-complete must hold
// a non-empty value under its type's emptiness rules.
type CompletionValidator struct {
	fields customfield.Repository
}

func NewCompletionValidator(fields customfield.Repository) *CompletionValidator {
	return &CompletionValidator{fields: fields}
}

func (v *CompletionValidator) Validate(ctx context.Context, item *workitem.WorkItem) error {
	definitions, err := v.fields.GetDefinitions(ctx, item.TypeID)
	if err != nil {
		return err
	}

	required := make([]*customfield.Definition, 0, len(definitions))
	for _, def := range definitions {
		if def.RequiredToComplete && def.Visible {
			required = append(required, def)
		}
	}
	if len(required) == 0 {
		return nil
	}

	values, err := v.fields.GetValues(ctx, []uint{item.ID})
	if err != nil {
		return err
	}
	itemValues := values[item.ID]

	var missing []string
	for _, def := range required {
		raw, present := itemValues[def.ID]
		value := customfield.Value{Type: def.Type, Raw: raw, Present: present}
		if value.IsEmpty() {
			missing = append(missing, def.Label)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return serrors.NewValidationError(
		"required fields must be filled before completion: " + strings.Join(missing, ", "),
	).WithTemplateData(map[string]string{
		"fields": strings.Join(missing, ", "),
	})
}
