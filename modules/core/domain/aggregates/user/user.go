package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/taskboard/modules/core/domain/entities/permission"
)

// User is the authenticated caller as seen by the services. It is a
// read model: identity, permission set and the organizations the
// caller belongs to. Super admins bypass permission matching.
type User struct {
	id              uint
	firstName       string
	lastName        string
	email           string
	superAdmin      bool
	organizationIDs []uuid.UUID
	permissions     []*permission.Permission
	createdAt       time.Time
}

func New(id uint, firstName, lastName, email string) User {
	return User{
		id:        id,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		email:     strings.TrimSpace(email),
	}
}

func Hydrate(
	id uint,
	firstName, lastName, email string,
	superAdmin bool,
	organizationIDs []uuid.UUID,
	permissions []*permission.Permission,
	createdAt time.Time,
) User {
	return User{
		id:              id,
		firstName:       strings.TrimSpace(firstName),
		lastName:        strings.TrimSpace(lastName),
		email:           strings.TrimSpace(email),
		superAdmin:      superAdmin,
		organizationIDs: organizationIDs,
		permissions:     permissions,
		createdAt:       createdAt,
	}
}

func (u User) ID() uint                              { return u.id }
func (u User) FirstName() string                     { return u.firstName }
func (u User) LastName() string                      { return u.lastName }
func (u User) Email() string                         { return u.email }
func (u User) IsSuperAdmin() bool                    { return u.superAdmin }
func (u User) OrganizationIDs() []uuid.UUID          { return u.organizationIDs }
func (u User) Permissions() []*permission.Permission { return u.permissions }
func (u User) CreatedAt() time.Time                  { return u.createdAt }

func (u User) FullName() string {
	parts := make([]string, 0, 2)
	if u.firstName != "" {
		parts = append(parts, u.firstName)
	}
	if u.lastName != "" {
		parts = append(parts, u.lastName)
	}
	return strings.Join(parts, " ")
}

// Can reports whether the caller holds a permission matching the
// given one by resource, action and modifier.
func (u User) Can(perm *permission.Permission) bool {
	if u.superAdmin {
		return true
	}
	for _, p := range u.permissions {
		if p.Equals(perm) {
			return true
		}
	}
	return false
}

// BelongsTo reports whether the caller is a member of the given
// organization.
func (u User) BelongsTo(organizationID uuid.UUID) bool {
	for _, id := range u.organizationIDs {
		if id == organizationID {
			return true
		}
	}
	return false
}
