package permission

import (
	"github.com/google/uuid"
)

type (
	Resource string
	Action   string
	Modifier string
)

const (
	ActionRead   Action = "read"
	ActionManage Action = "manage"
)

const (
	// ModifierAll grants the action on every row regardless of owner
	// or organization.
	ModifierAll Modifier = "all"
	// ModifierOrganization limits the action to rows belonging to one
	// of the caller's organizations.
	ModifierOrganization Modifier = "organization"
	// ModifierOwn limits the action to rows the caller created.
	ModifierOwn Modifier = "own"
)

func (r Resource) String() string { return string(r) }
func (a Action) String() string   { return string(a) }
func (m Modifier) String() string { return string(m) }

type Permission struct {
	ID          uuid.UUID
	Name        string
	Resource    Resource
	Action      Action
	Modifier    Modifier
	Description string
}

func (p *Permission) Equals(other *Permission) bool {
	if other == nil {
		return false
	}
	return p.Resource == other.Resource &&
		p.Action == other.Action &&
		p.Modifier == other.Modifier
}
