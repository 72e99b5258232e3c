package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRoleDataResolvesPermissions(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	perm := &models.Permission{Name: "Task Create", Operation: "task_create"}
	require.NoError(t, s.CreatePermission(ctx, perm))
	manager := &models.Role{Name: "Manager", PermissionIDs: models.StringList{perm.ID}}
	require.NoError(t, s.CreateRole(ctx, manager))

	got, err := svc.GetRoleData(ctx, manager.ID, "", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Permissions, 1)
	assert.Equal(t, "task_create", got[0].Permissions[0].Operation)

	// The projection carries resolved permissions, never the raw ids.
	data, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "permissionIds")
}

func TestGetRoleDataListsOnlyDefaultRoles(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	createRoleWith(t, s, "Admin")
	custom := &models.Role{Name: "Custom", RoleType: models.RoleTypeExtra}
	require.NoError(t, s.CreateRole(ctx, custom))
	extra := &models.Role{Name: "Extra default", IsDefault: true, RoleType: models.RoleTypeExtra}
	require.NoError(t, s.CreateRole(ctx, extra))

	all, err := svc.GetRoleData(ctx, "", "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	extras, err := svc.GetRoleData(ctx, "", models.RoleTypeExtra, false)
	require.NoError(t, err)
	require.Len(t, extras, 1)
	assert.Equal(t, "Extra default", extras[0].Name)
}

func TestUpdateRoleAcceptsFalsyValues(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	r, _ := createRoleWith(t, s, "Admin", "team_read")
	updated, err := svc.UpdateRole(ctx, r.ID, models.RolePatch{
		IsDefault:   models.Some(false),
		Description: models.Some(""),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
	assert.Equal(t, "Admin", updated.Name)
	assert.Len(t, updated.PermissionIDs, 1)

	_, err = svc.UpdateRole(ctx, "missing", models.RolePatch{Name: models.Some("x")})
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestAssignRoleChecksReferences(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	u := createUser(t, s, models.User{Email: "a@lightwork.test"})
	r, _ := createRoleWith(t, s, "Manager")

	_, err := svc.AssignRole(ctx, &models.UserRoleAssignment{UserID: u.ID})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	_, err = svc.AssignRole(ctx, &models.UserRoleAssignment{UserID: u.ID, RoleID: "ghost"})
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))

	a, err := svc.AssignRole(ctx, &models.UserRoleAssignment{UserID: u.ID, RoleID: r.ID, PropertyID: "p1"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
}

func TestGetRoleAssignmentsEnriches(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	u := createUser(t, s, models.User{Email: "a@lightwork.test"})
	r, _ := createRoleWith(t, s, "Manager")
	require.NoError(t, s.DB().Create(&models.Property{ID: "p1", Name: "Flat 1"}).Error)
	require.NoError(t, s.CreateAssignment(ctx, &models.UserRoleAssignment{UserID: u.ID, RoleID: r.ID, PropertyID: "p1"}))
	require.NoError(t, s.CreateAssignment(ctx, &models.UserRoleAssignment{UserID: u.ID, RoleID: "ghost"}))

	views, err := svc.GetRoleAssignments(ctx, u.ID, "", false)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].RoleData)
	assert.Equal(t, "Manager", views[0].RoleData.Name)
	require.NotNil(t, views[0].PropertyData)
	assert.Equal(t, "Flat 1", views[0].PropertyData.Name)
	assert.Nil(t, views[1].RoleData)

	filtered, err := svc.GetRoleAssignments(ctx, u.ID, r.ID, false)
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestDeleteRoleAssignmentIsHard(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	u := createUser(t, s, models.User{Email: "a@lightwork.test"})
	r, _ := createRoleWith(t, s, "Manager")
	a := assign(t, s, u.ID, r.ID)

	require.NoError(t, svc.DeleteRoleAssignment(ctx, a.ID))
	_, err := s.FindAssignment(ctx, a.ID)
	assert.True(t, utils.IsNotFound(err))
	assert.True(t, utils.IsNotFound(svc.DeleteRoleAssignment(ctx, a.ID)))
}

func TestEffectivePermissionsDeduplicates(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	u := createUser(t, s, models.User{Email: "a@lightwork.test"})
	admin, _ := createRoleWith(t, s, "Admin", "team_read", "task_create")
	manager, _ := createRoleWith(t, s, "Manager", "task_create", "calendar_read")
	assign(t, s, u.ID, admin.ID)
	assign(t, s, u.ID, manager.ID)

	perms, err := svc.EffectivePermissions(ctx, u.ID)
	require.NoError(t, err)
	ops := make([]string, 0, len(perms))
	for _, p := range perms {
		ops = append(ops, p.Operation)
	}
	assert.Equal(t, []string{"team_read", "task_create", "calendar_read"}, ops)

	_, err = svc.EffectivePermissions(ctx, "")
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestPermissionCRUD(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	_, err := svc.CreatePermission(ctx, &models.Permission{Name: "No op"})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	p, err := svc.CreatePermission(ctx, &models.Permission{Name: "Team Read", Operation: "team_read"})
	require.NoError(t, err)

	updated, err := svc.UpdatePermission(ctx, p.ID, models.PermissionPatch{Description: models.Some("Read teams")})
	require.NoError(t, err)
	assert.Equal(t, "Read teams", updated.Description)
	assert.Equal(t, "team_read", updated.Operation)

	one, err := svc.GetPermissions(ctx, p.ID, false)
	require.NoError(t, err)
	require.Len(t, one, 1)

	require.NoError(t, svc.DeletePermission(ctx, p.ID))
	all, err := svc.GetPermissions(ctx, "", false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSeedIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	first, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(permissionCatalog), first.PermissionsCreated)
	assert.Equal(t, len(roleCatalog), first.RolesCreated)

	second, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.PermissionsCreated)
	assert.Equal(t, 0, second.RolesCreated)

	perms, err := s.ListPermissions(ctx, true)
	require.NoError(t, err)
	assert.Len(t, perms, 32)

	roles, err := s.ListRoles(ctx, repository.RoleQuery{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, roles, 3)
}

// Every seeded role currently receives the whole catalog. This pins that
// behaviour until per-role grants are defined.
func TestSeedGrantsWholeCatalogToEveryRole(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	data, err := svc.GetRoleData(ctx, "", "", false)
	require.NoError(t, err)
	require.Len(t, data, 3)
	for _, r := range data {
		assert.Len(t, r.Permissions, len(permissionCatalog), r.Name)
		assert.Equal(t, "team_create", r.Permissions[0].Operation)
		assert.Equal(t, "dashboard_access", r.Permissions[len(r.Permissions)-1].Operation)
	}
}

func TestSeedKeepsExistingRecords(t *testing.T) {
	s := newTestStore(t)
	svc := NewRoleService(s, nopLogger())
	ctx := context.Background()

	existing := &models.Permission{Name: "Custom name", Operation: "team_create"}
	require.NoError(t, s.CreatePermission(ctx, existing))

	res, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(permissionCatalog)-1, res.PermissionsCreated)

	p, err := s.FindPermissionByOperation(ctx, "team_create")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, p.ID)
	assert.Equal(t, "Custom name", p.Name)
}
