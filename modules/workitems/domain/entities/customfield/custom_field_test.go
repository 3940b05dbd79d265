package customfield

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueIsEmpty(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		empty bool
	}{
		{"text missing", Value{Type: TypeText}, true},
		{"text blank", Value{Type: TypeText, Raw: "   ", Present: true}, true},
		{"text filled", Value{Type: TypeText, Raw: "hello", Present: true}, false},
		{"textarea whitespace only", Value{Type: TypeTextarea, Raw: "\n\t ", Present: true}, true},
		{"dropdown blank", Value{Type: TypeDropdown, Raw: "", Present: true}, true},
		{"dropdown selected", Value{Type: TypeDropdown, Raw: "option_a", Present: true}, false},
		{"user picker blank", Value{Type: TypeUserPicker, Raw: " ", Present: true}, true},
		{"user picker set", Value{Type: TypeUserPicker, Raw: "42", Present: true}, false},
		{"number missing", Value{Type: TypeNumber}, true},
		{"number zero", Value{Type: TypeNumber, Raw: "0", Present: true}, false},
		{"date missing", Value{Type: TypeDate}, true},
		{"date set", Value{Type: TypeDate, Raw: "2026-01-15", Present: true}, false},
		{"datetime blank", Value{Type: TypeDateTime, Raw: "", Present: true}, true},
		{"checkbox missing", Value{Type: TypeCheckbox}, false},
		{"checkbox false", Value{Type: TypeCheckbox, Raw: "false", Present: true}, false},
		{"checkbox true", Value{Type: TypeCheckbox, Raw: "true", Present: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.empty, tc.value.IsEmpty())
		})
	}
}
