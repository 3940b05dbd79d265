package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/taskboard/modules/workitems/domain/entities/status"
	"github.com/iota-uz/taskboard/pkg/configuration"
	"github.com/iota-uz/taskboard/pkg/serrors"
)

func TestTransitionValidator_DefaultsToPermissive(t *testing.T) {
	statuses := &statusRepoMock{rules: map[[3]uint]*status.TransitionRule{}}
	v := NewTransitionValidator(statuses, "")

	require.NoError(t, v.Validate(testContext(), 1, 2, 3))
}

func TestTransitionValidator_ExplicitRuleWins(t *testing.T) {
	statuses := &statusRepoMock{rules: map[[3]uint]*status.TransitionRule{
		{1, 2, 3}: {TypeID: 1, FromStatusID: 2, ToStatusID: 3, IsAllowed: true},
		{1, 3, 2}: {TypeID: 1, FromStatusID: 3, ToStatusID: 2, IsAllowed: false},
	}}
	v := NewTransitionValidator(statuses, configuration.TransitionPolicyRestrictive)

	require.NoError(t, v.Validate(testContext(), 1, 2, 3))

	err := v.Validate(testContext(), 1, 3, 2)
	requireErrorCode(t, err, "VALIDATION_ERROR")

	var base *serrors.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, "3", base.TemplateData["from"])
	require.Equal(t, "2", base.TemplateData["to"])
}

func TestTransitionValidator_RestrictiveRejectsUnruled(t *testing.T) {
	statuses := &statusRepoMock{rules: map[[3]uint]*status.TransitionRule{}}
	v := NewTransitionValidator(statuses, configuration.TransitionPolicyRestrictive)

	requireErrorCode(t, v.Validate(testContext(), 1, 2, 3), "VALIDATION_ERROR")
}
