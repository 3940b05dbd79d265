package workitem

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestScopeCanRead(t *testing.T) {
	require.False(t, Scope{}.CanRead())
	require.True(t, Scope{ReadAll: true}.CanRead())
	require.True(t, Scope{ReadOrganization: true}.CanRead())
	require.True(t, Scope{ReadOwn: true}.CanRead())
}

func TestScopeCanManage(t *testing.T) {
	require.False(t, Scope{ReadAll: true}.CanManage())
	require.True(t, Scope{ManageAll: true}.CanManage())
	require.True(t, Scope{ManageOrganization: true}.CanManage())
	require.True(t, Scope{ManageOwn: true}.CanManage())
}

func TestScopeCanReadItem_AllTier(t *testing.T) {
	item := &WorkItem{OrganizationID: uuid.New(), CreatedBy: 99}
	require.True(t, Scope{ReadAll: true}.CanReadItem(item))
}

func TestScopeCanReadItem_OrganizationTier(t *testing.T) {
	orgID := uuid.New()
	otherOrgID := uuid.New()
	scope := Scope{ReadOrganization: true, OrganizationIDs: []uuid.UUID{orgID}}

	require.True(t, scope.CanReadItem(&WorkItem{OrganizationID: orgID}))
	require.False(t, scope.CanReadItem(&WorkItem{OrganizationID: otherOrgID}))
}

func TestScopeCanReadItem_OwnTier(t *testing.T) {
	scope := Scope{ReadOwn: true, UserID: 7}

	require.True(t, scope.CanReadItem(&WorkItem{CreatedBy: 7}))
	require.False(t, scope.CanReadItem(&WorkItem{CreatedBy: 8}))
}

func TestScopeCanReadItem_OwnItemOutsideOrganizationScope(t *testing.T) {
	// Organization scope alone does not cover the caller's own items in
	// foreign organizations; the own tier has to be granted separately.
	orgID := uuid.New()
	scope := Scope{ReadOrganization: true, UserID: 7, OrganizationIDs: []uuid.UUID{orgID}}

	require.False(t, scope.CanReadItem(&WorkItem{OrganizationID: uuid.New(), CreatedBy: 7}))
}

func TestScopeCanManageItem(t *testing.T) {
	orgID := uuid.New()
	item := &WorkItem{OrganizationID: orgID, CreatedBy: 7}

	require.True(t, Scope{ManageAll: true}.CanManageItem(item))
	require.True(t, Scope{ManageOrganization: true, OrganizationIDs: []uuid.UUID{orgID}}.CanManageItem(item))
	require.True(t, Scope{ManageOwn: true, UserID: 7}.CanManageItem(item))
	require.False(t, Scope{ReadAll: true}.CanManageItem(item))
	require.False(t, Scope{ManageOwn: true, UserID: 8}.CanManageItem(item))
}

func TestScopeCanManageInOrganization(t *testing.T) {
	orgID := uuid.New()

	require.True(t, Scope{ManageAll: true}.CanManageInOrganization(orgID))
	require.True(t, Scope{ManageOrganization: true, OrganizationIDs: []uuid.UUID{orgID}}.CanManageInOrganization(orgID))
	require.False(t, Scope{ManageOrganization: true}.CanManageInOrganization(orgID))

	// The own tier covers existing items only, never creation.
	require.False(t, Scope{ManageOwn: true, UserID: 7}.CanManageInOrganization(orgID))
}
