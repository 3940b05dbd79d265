package services

import (
	"github.com/iota-uz/taskboard/modules/core/domain/aggregates/user"
	"github.com/iota-uz/taskboard/modules/workitems/domain/aggregates/workitem"
	"github.com/iota-uz/taskboard/modules/workitems/permissions"
)

// ResolveScope computes the caller's read/manage breadth from the
// permission set. Called once per scoped service; the result is
// cached for the service's lifetime. Super admins short-circuit to
// the "all" tier.
func ResolveScope(u user.User) workitem.Scope {
	scope := workitem.Scope{
		UserID:          u.ID(),
		OrganizationIDs: u.OrganizationIDs(),
	}

	if u.IsSuperAdmin() {
		scope.ReadAll = true
		scope.ManageAll = true
		return scope
	}

	scope.ReadAll = u.Can(permissions.WorkItemReadAll)
	scope.ReadOrganization = u.Can(permissions.WorkItemReadOrganization)
	scope.ReadOwn = u.Can(permissions.WorkItemReadOwn)
	scope.ManageAll = u.Can(permissions.WorkItemManageAll)
	scope.ManageOrganization = u.Can(permissions.WorkItemManageOrganization)
	scope.ManageOwn = u.Can(permissions.WorkItemManageOwn)
	return scope
}
