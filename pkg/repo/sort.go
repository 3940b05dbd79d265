package repo

import "strings"

// SortByField names a single sort key in domain-field terms.
type SortByField[T comparable] struct {
	Field     T
	Ascending bool
}

// SortBy is an ordered list of sort keys. ToSQL maps domain fields to
// columns through the repository's field map; unknown fields are
// skipped so a caller can never sort by an unexposed column.
type SortBy[T comparable] struct {
	Fields []SortByField[T]
}

func (s SortBy[T]) ToSQL(fieldMap map[T]string) string {
	if len(s.Fields) == 0 {
		return ""
	}
	clauses := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		column, ok := fieldMap[f.Field]
		if !ok {
			continue
		}
		if f.Ascending {
			clauses = append(clauses, column+" ASC")
		} else {
			clauses = append(clauses, column+" DESC")
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	return "ORDER BY " + strings.Join(clauses, ", ")
}
