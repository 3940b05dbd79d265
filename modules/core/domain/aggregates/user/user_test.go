package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/taskboard/modules/core/domain/entities/permission"
)

var testReadOwn = &permission.Permission{
	ID:       uuid.New(),
	Name:     "TestResource.Read.Own",
	Resource: "test_resource",
	Action:   permission.ActionRead,
	Modifier: permission.ModifierOwn,
}

func TestUserCan(t *testing.T) {
	u := Hydrate(1, "Jane", "Doe", "jane@example.com", false, nil, []*permission.Permission{testReadOwn}, time.Now())

	require.True(t, u.Can(testReadOwn))
	require.True(t, u.Can(&permission.Permission{
		Resource: "test_resource",
		Action:   permission.ActionRead,
		Modifier: permission.ModifierOwn,
	}))
	require.False(t, u.Can(&permission.Permission{
		Resource: "test_resource",
		Action:   permission.ActionManage,
		Modifier: permission.ModifierOwn,
	}))
}

func TestUserCan_SuperAdminBypassesPermissions(t *testing.T) {
	u := Hydrate(1, "Root", "Admin", "root@example.com", true, nil, nil, time.Now())

	require.True(t, u.Can(testReadOwn))
}

func TestUserBelongsTo(t *testing.T) {
	orgID := uuid.New()
	u := Hydrate(1, "Jane", "Doe", "jane@example.com", false, []uuid.UUID{orgID}, nil, time.Now())

	require.True(t, u.BelongsTo(orgID))
	require.False(t, u.BelongsTo(uuid.New()))
}

func TestUserFullName(t *testing.T) {
	require.Equal(t, "Jane Doe", New(1, "Jane", "Doe", "jane@example.com").FullName())
	require.Equal(t, "Jane", New(1, "Jane", "", "jane@example.com").FullName())
	require.Equal(t, "", New(1, "", "", "jane@example.com").FullName())
}
