package workitems

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchema(t *testing.T) {
	schema, err := MigrationFiles.ReadFile(schemaFile)
	require.NoError(t, err)

	for _, table := range []string{
		"work_items",
		"work_item_types",
		"work_item_statuses",
		"work_item_status_transitions",
		"work_item_fields",
		"work_item_field_values",
		"work_item_audit_logs",
	} {
		require.Contains(t, string(schema), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	// Repeated bootstrap runs must not fail on existing objects.
	for _, line := range strings.Split(string(schema), "\n") {
		if strings.HasPrefix(line, "CREATE TABLE") || strings.HasPrefix(line, "CREATE INDEX") {
			require.Contains(t, line, "IF NOT EXISTS")
		}
	}
}
