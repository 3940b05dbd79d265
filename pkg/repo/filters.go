package repo

import (
	"fmt"
	"strings"
)

// Filter renders a single predicate against a column. String receives
// the column name and the index of the first positional argument the
// predicate may use; Value returns the arguments in order.
type Filter interface {
	String(column string, argIdx int) string
	Value() []interface{}
}

type comparisonFilter struct {
	op    string
	value interface{}
}

func (f comparisonFilter) String(column string, argIdx int) string {
	return fmt.Sprintf("%s %s $%d", column, f.op, argIdx)
}

func (f comparisonFilter) Value() []interface{} {
	return []interface{}{f.value}
}

func Eq(value interface{}) Filter    { return comparisonFilter{op: "=", value: value} }
func NotEq(value interface{}) Filter { return comparisonFilter{op: "<>", value: value} }
func Gt(value interface{}) Filter    { return comparisonFilter{op: ">", value: value} }
func Gte(value interface{}) Filter   { return comparisonFilter{op: ">=", value: value} }
func Lt(value interface{}) Filter    { return comparisonFilter{op: "<", value: value} }
func Lte(value interface{}) Filter   { return comparisonFilter{op: "<=", value: value} }
func Like(value interface{}) Filter  { return comparisonFilter{op: "ILIKE", value: value} }

type inFilter struct {
	values []interface{}
}

func (f inFilter) String(column string, argIdx int) string {
	if len(f.values) == 0 {
		// An empty IN list matches nothing.
		return "1 = 0"
	}
	placeholders := make([]string, len(f.values))
	for i := range f.values {
		placeholders[i] = fmt.Sprintf("$%d", argIdx+i)
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", "))
}

func (f inFilter) Value() []interface{} {
	return f.values
}

// In matches any of the given values. Accepts a slice of any element
// type or a variadic-style single slice argument.
func In(values ...interface{}) Filter {
	if len(values) == 1 {
		if expanded, ok := expandSlice(values[0]); ok {
			return inFilter{values: expanded}
		}
	}
	return inFilter{values: values}
}

func expandSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case []string:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []uint:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}
