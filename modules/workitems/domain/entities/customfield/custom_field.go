package customfield

import (
	"context"
	"strings"
)

type Type string

const (
	TypeText       Type = "text"
	TypeTextarea   Type = "textarea"
	TypeNumber     Type = "number"
	TypeDate       Type = "date"
	TypeDateTime   Type = "datetime"
	TypeCheckbox   Type = "checkbox"
	TypeDropdown   Type = "dropdown"
	TypeUserPicker Type = "user_picker"
)

// Definition describes one custom field configured for a work item
// type. Fields flagged RequiredToComplete gate transitions into a
// completed-category status.
type Definition struct {
	ID                 uint
	TypeID             uint
	Name               string
	Label              string
	Type               Type
	RequiredToComplete bool
	Visible            bool
}

// Value is a recorded custom field value tagged with its field type.
// Present is false when no row exists for the (item, field) pair.
type Value struct {
	Type    Type
	Raw     string
	Present bool
}

// IsEmpty applies the per-type emptiness rules. A checkbox is never
// empty: false is a valid value, recorded or not.
func (v Value) IsEmpty() bool {
	if v.Type == TypeCheckbox {
		return false
	}
	if !v.Present {
		return true
	}
	switch v.Type {
	case TypeText, TypeTextarea, TypeDropdown, TypeUserPicker:
		return strings.TrimSpace(v.Raw) == ""
	case TypeDate, TypeDateTime:
		return v.Raw == ""
	case TypeNumber:
		return v.Raw == ""
	default:
		return strings.TrimSpace(v.Raw) == ""
	}
}

type Repository interface {
	// GetDefinitions returns all field definitions configured for the
	// given work item type.
	GetDefinitions(ctx context.Context, typeID uint) ([]*Definition, error)
	// GetValues loads values for the given work item ids in a single
	// query, grouped as item id -> field id -> raw value.
	GetValues(ctx context.Context, itemIDs []uint) (map[uint]map[uint]string, error)
}
