package services

import (
	"context"
	"fmt"

	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/status"
	"github.com/iota-uz/taskboard/pkg/configuration"
	"github.com/iota-uz/taskboard/pkg/serrors"
)

// TransitionValidator decides whether a status change is legal for a
// work item type. An explicit rule always wins; when no rule exists
// the configured default policy applies.
type TransitionValidator struct {
	statuses status.Repository
	policy   configuration.TransitionPolicy
}

func NewTransitionValidator(statuses status.Repository, policy configuration.TransitionPolicy) *TransitionValidator {
	if policy == "" {
		policy = configuration.TransitionPolicyPermissive
	}
	return &TransitionValidator{statuses: statuses, policy: policy}
}

func (v *TransitionValidator) Validate(ctx context.Context, typeID, fromStatusID, toStatusID uint) error {
	rule, found, err := v.statuses.GetTransitionRule(ctx, typeID, fromStatusID, toStatusID)
	if err != nil {
		return err
	}

	if !found {
		if v.policy == configuration.TransitionPolicyRestrictive {
			return serrors.NewValidationError(
				fmt.Sprintf("no transition rule allows status change %d -> %d", fromStatusID, toStatusID),
			).WithTemplateData(transitionTemplateData(fromStatusID, toStatusID))
		}
		return nil
	}

	if !rule.IsAllowed {
		return serrors.NewValidationError(
			fmt.Sprintf("status transition %d -> %d is blocked", fromStatusID, toStatusID),
		).WithTemplateData(transitionTemplateData(fromStatusID, toStatusID))
	}
	return nil
}

func transitionTemplateData(fromStatusID, toStatusID uint) map[string]string {
	return map[string]string{
		"from": fmt.Sprint(fromStatusID),
		"to":   fmt.Sprint(toStatusID),
	}
}
