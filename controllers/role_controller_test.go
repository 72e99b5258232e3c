package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/services"
	"github.com/kendall-kelly/lightwork-auth-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleWithPermissionProjection(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/permissions", map[string]string{"name": "Create task", "operation": "task_create"})
	requireStatus(t, w, http.StatusCreated)
	var perm models.Permission
	testutil.DecodeData(t, w, &perm)

	w = api.do(http.MethodPost, "/roles", map[string]any{"name": "Manager", "isDefault": true, "permissionIds": []string{perm.ID}})
	requireStatus(t, w, http.StatusCreated)
	var role models.Role
	testutil.DecodeData(t, w, &role)
	assert.Equal(t, models.RoleTypeMain, role.RoleType)

	w = api.do(http.MethodGet, "/roles?role_id="+role.ID, nil)
	requireStatus(t, w, http.StatusOK)
	var raw []map[string]json.RawMessage
	testutil.DecodeData(t, w, &raw)
	require.Len(t, raw, 1)
	assert.NotContains(t, raw[0], "permissionIds")

	var perms []models.Permission
	require.NoError(t, json.Unmarshal(raw[0]["permissions"], &perms))
	require.Len(t, perms, 1)
	assert.Equal(t, "task_create", perms[0].Operation)
}

func TestUpdateRoleKeepsUnsentFields(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/roles", map[string]any{"name": "Crew", "description": "site crew", "isDefault": true})
	requireStatus(t, w, http.StatusCreated)
	var role models.Role
	testutil.DecodeData(t, w, &role)

	w = api.do(http.MethodPut, "/roles/"+role.ID, `{"isDefault":false}`)
	requireStatus(t, w, http.StatusOK)
	var updated models.Role
	testutil.DecodeData(t, w, &updated)
	assert.False(t, updated.IsDefault)
	assert.Equal(t, "site crew", updated.Description)

	w = api.do(http.MethodDelete, "/roles/"+role.ID, nil)
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodDelete, "/roles/"+role.ID, nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestAssignmentEndpoints(t *testing.T) {
	api := newTestAPI(t)
	u := api.seedUser(t, models.User{Email: "crew@test.com"}, "")

	w := api.do(http.MethodPost, "/permissions", map[string]string{"operation": "task_read"})
	requireStatus(t, w, http.StatusCreated)
	var perm models.Permission
	testutil.DecodeData(t, w, &perm)

	var first, second models.Role
	w = api.do(http.MethodPost, "/roles", map[string]any{"name": "First", "permissionIds": []string{perm.ID}})
	testutil.DecodeData(t, w, &first)
	w = api.do(http.MethodPost, "/roles", map[string]any{"name": "Second"})
	testutil.DecodeData(t, w, &second)

	w = api.do(http.MethodPost, "/user-roles/assign", map[string]string{"userId": u.ID, "roleId": "missing"})
	requireStatus(t, w, http.StatusNotFound)

	w = api.do(http.MethodPost, "/user-roles/assign", map[string]string{"userId": u.ID, "roleId": first.ID, "propertyId": "prop-1"})
	requireStatus(t, w, http.StatusCreated)
	var a models.UserRoleAssignment
	testutil.DecodeData(t, w, &a)

	w = api.do(http.MethodGet, "/user-roles/permissions?userId="+u.ID, nil)
	requireStatus(t, w, http.StatusOK)
	var effective []models.Permission
	testutil.DecodeData(t, w, &effective)
	require.Len(t, effective, 1)
	assert.Equal(t, "task_read", effective[0].Operation)

	w = api.do(http.MethodPut, "/user-roles/assign/"+a.ID, map[string]string{"roleId": second.ID})
	requireStatus(t, w, http.StatusOK)
	var moved models.UserRoleAssignment
	testutil.DecodeData(t, w, &moved)
	assert.Equal(t, second.ID, moved.RoleID)
	assert.Equal(t, u.ID, moved.UserID)
	assert.Equal(t, "prop-1", moved.PropertyID)
	assert.Nil(t, moved.DeletedAt)

	w = api.do(http.MethodGet, "/user-roles/Assignments?userId="+u.ID, nil)
	requireStatus(t, w, http.StatusOK)
	var views []models.AssignmentView
	testutil.DecodeData(t, w, &views)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].RoleData)
	assert.Equal(t, "Second", views[0].RoleData.Name)

	w = api.do(http.MethodDelete, "/user-roles/assign/"+a.ID, nil)
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodDelete, "/user-roles/assign/"+a.ID, nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestPermissionEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/permissions", map[string]string{"name": "x"})
	requireStatus(t, w, http.StatusBadRequest)

	w = api.do(http.MethodPost, "/permissions", map[string]string{"name": "Read team", "operation": "team_read"})
	var p models.Permission
	testutil.DecodeData(t, w, &p)

	w = api.do(http.MethodPut, "/permissions", map[string]string{"description": "no id"})
	requireStatus(t, w, http.StatusBadRequest)

	w = api.do(http.MethodPut, "/permissions", map[string]string{"id": p.ID, "description": "see the team"})
	requireStatus(t, w, http.StatusOK)
	var updated models.Permission
	testutil.DecodeData(t, w, &updated)
	assert.Equal(t, "see the team", updated.Description)
	assert.Equal(t, "team_read", updated.Operation)

	w = api.do(http.MethodGet, "/permissions?permission_id="+p.ID, nil)
	requireStatus(t, w, http.StatusOK)
	var one []models.Permission
	testutil.DecodeData(t, w, &one)
	require.Len(t, one, 1)

	w = api.do(http.MethodDelete, "/permissions/"+p.ID, nil)
	requireStatus(t, w, http.StatusOK)
	w = api.do(http.MethodGet, "/permissions", nil)
	var all []models.Permission
	testutil.DecodeData(t, w, &all)
	assert.Empty(t, all)
}

func TestSeedEndpointIsIdempotent(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/seed", nil)
	requireStatus(t, w, http.StatusOK)
	var first services.SeedResult
	testutil.DecodeData(t, w, &first)
	assert.Positive(t, first.PermissionsCreated)
	assert.Equal(t, 3, first.RolesCreated)

	w = api.do(http.MethodPost, "/seed", nil)
	requireStatus(t, w, http.StatusOK)
	var second services.SeedResult
	testutil.DecodeData(t, w, &second)
	assert.Zero(t, second.PermissionsCreated)
	assert.Zero(t, second.RolesCreated)

	w = api.do(http.MethodGet, "/roles", nil)
	var roles []models.RoleData
	testutil.DecodeData(t, w, &roles)
	require.Len(t, roles, 3)
	for _, r := range roles {
		assert.Len(t, r.Permissions, first.PermissionsCreated, r.Name)
	}
}
