package serrors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAuthorizationError(t *testing.T) {
	err := NewAuthorizationError("no applicable scope")

	require.Equal(t, "AUTHZ_FORBIDDEN", err.Code)
	require.Equal(t, http.StatusForbidden, err.Status)
	require.Equal(t, "no applicable scope", err.Error())
}

func TestWithTemplateData(t *testing.T) {
	err := NewValidationError("transition blocked").
		WithTemplateData(map[string]string{"from": "2", "to": "3"})

	require.Equal(t, "2", err.TemplateData["from"])
	require.Equal(t, "3", err.TemplateData["to"])
}

func TestValidationErrors_ErrorAndFields(t *testing.T) {
	errs := ValidationErrors{
		"subject": NewFieldRequiredError("subject", "Fields.subject"),
		"type_id": NewFieldRequiredError("type_id", "Fields.type_id"),
	}

	require.Equal(t, []string{"subject", "type_id"}, errs.Fields())
	require.Equal(t, `subject: field "subject" is required; type_id: field "type_id" is required`, errs.Error())
}
