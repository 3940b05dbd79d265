package permissions

import (
	"github.com/google/uuid"

	"github.com/iota-uz/taskboard/modules/core/domain/entities/permission"
)

const (
	ResourceWorkItem permission.Resource = "work_item"
)

var (
	WorkItemReadAll = &permission.Permission{
		ID:       uuid.MustParse("d4c7a7e2-4a0f-4f6b-9a2e-0c6d3a1b5e71"),
		Name:     "WorkItem.Read.All",
		Resource: ResourceWorkItem,
		Action:   permission.ActionRead,
		Modifier: permission.ModifierAll,
	}
	WorkItemReadOrganization = &permission.Permission{
		ID:       uuid.MustParse("7b9e2f84-5c13-4d89-b6a1-9f0e4d7c2a35"),
		Name:     "WorkItem.Read.Organization",
		Resource: ResourceWorkItem,
		Action:   permission.ActionRead,
		Modifier: permission.ModifierOrganization,
	}
	WorkItemReadOwn = &permission.Permission{
		ID:       uuid.MustParse("3f1d8c56-a2e7-4b90-8d43-6c5b9e0f7a12"),
		Name:     "WorkItem.Read.Own",
		Resource: ResourceWorkItem,
		Action:   permission.ActionRead,
		Modifier: permission.ModifierOwn,
	}
	WorkItemManageAll = &permission.Permission{
		ID:       uuid.MustParse("9a4b6d21-7e3f-4c58-a90d-1b8f5c2e6d47"),
		Name:     "WorkItem.Manage.All",
		Resource: ResourceWorkItem,
		Action:   permission.ActionManage,
		Modifier: permission.ModifierAll,
	}
	WorkItemManageOrganization = &permission.Permission{
		ID:       uuid.MustParse("e8d2c5f9-1a64-4b37-9c80-5d4e7f2a8b16"),
		Name:     "WorkItem.Manage.Organization",
		Resource: ResourceWorkItem,
		Action:   permission.ActionManage,
		Modifier: permission.ModifierOrganization,
	}
	WorkItemManageOwn = &permission.Permission{
		ID:       uuid.MustParse("5c8f3a07-6d29-4e51-b7c4-2a9d0e6f1b83"),
		Name:     "WorkItem.Manage.Own",
		Resource: ResourceWorkItem,
		Action:   permission.ActionManage,
		Modifier: permission.ModifierOwn,
	}
)

var Permissions = []*permission.Permission{
	WorkItemReadAll,
	WorkItemReadOrganization,
	WorkItemReadOwn,
	WorkItemManageAll,
	WorkItemManageOrganization,
	WorkItemManageOwn,
}
