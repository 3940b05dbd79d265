package repo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComparisonFilters(t *testing.T) {
	require.Equal(t, "status_id = $3", Eq(2).String("status_id", 3))
	require.Equal(t, []interface{}{2}, Eq(2).Value())
	require.Equal(t, "status_id <> $1", NotEq(2).String("status_id", 1))
	require.Equal(t, "depth > $1", Gt(0).String("depth", 1))
	require.Equal(t, "depth >= $1", Gte(0).String("depth", 1))
	require.Equal(t, "depth < $1", Lt(10).String("depth", 1))
	require.Equal(t, "depth <= $1", Lte(10).String("depth", 1))
	require.Equal(t, "subject ILIKE $1", Like("%printer%").String("subject", 1))
}

func TestInFilter(t *testing.T) {
	f := In([]uint{1, 5, 42})
	require.Equal(t, "id IN ($2, $3, $4)", f.String("id", 2))
	require.Equal(t, []interface{}{uint(1), uint(5), uint(42)}, f.Value())
}

func TestInFilter_EmptyMatchesNothing(t *testing.T) {
	f := In([]string{})
	require.Equal(t, "1 = 0", f.String("id", 1))
	require.Empty(t, f.Value())
}

func TestSortByToSQL(t *testing.T) {
	fieldMap := map[string]string{
		"created_at": "wi.created_at",
		"subject":    "wi.subject",
	}
	sortBy := SortBy[string]{Fields: []SortByField[string]{
		{Field: "created_at", Ascending: false},
		{Field: "subject", Ascending: true},
	}}

	require.Equal(t, "ORDER BY wi.created_at DESC, wi.subject ASC", sortBy.ToSQL(fieldMap))
}

func TestSortByToSQL_SkipsUnknownFields(t *testing.T) {
	fieldMap := map[string]string{"subject": "wi.subject"}
	sortBy := SortBy[string]{Fields: []SortByField[string]{
		{Field: "secret_column", Ascending: true},
	}}

	require.Equal(t, "", sortBy.ToSQL(fieldMap))
}
