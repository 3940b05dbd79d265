package workitem

import "github.com/google/uuid"

// Scope is the caller's access breadth, resolved once from the
// permission set and carried for the lifetime of a scoped service.
// The widest applicable tier wins: all > organization > own.
type Scope struct {
	ReadAll            bool
	ReadOrganization   bool
	ReadOwn            bool
	ManageAll          bool
	ManageOrganization bool
	ManageOwn          bool

	UserID          uint
	OrganizationIDs []uuid.UUID
}

func (s Scope) CanRead() bool {
	return s.ReadAll || s.ReadOrganization || s.ReadOwn
}

func (s Scope) CanManage() bool {
	return s.ManageAll || s.ManageOrganization || s.ManageOwn
}

func (s Scope) inOrganizations(organizationID uuid.UUID) bool {
	for _, id := range s.OrganizationIDs {
		if id == organizationID {
			return true
		}
	}
	return false
}

// CanReadItem is the post-fetch authority check. The query predicate
// already restricts what comes back; this re-check stays in place as
// the authoritative guarantee.
func (s Scope) CanReadItem(item *WorkItem) bool {
	if s.ReadAll {
		return true
	}
	if s.ReadOrganization && s.inOrganizations(item.OrganizationID) {
		return true
	}
	if s.ReadOwn && item.CreatedBy == s.UserID {
		return true
	}
	return false
}

func (s Scope) CanManageItem(item *WorkItem) bool {
	if s.ManageAll {
		return true
	}
	if s.ManageOrganization && s.inOrganizations(item.OrganizationID) {
		return true
	}
	if s.ManageOwn && item.CreatedBy == s.UserID {
		return true
	}
	return false
}

// CanManageInOrganization gates creation of new items in the target
// organization.
func (s Scope) CanManageInOrganization(organizationID uuid.UUID) bool {
	if s.ManageAll {
		return true
	}
	return s.ManageOrganization && s.inOrganizations(organizationID)
}
