package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/services"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

// RoleController serves roles, permissions, role assignments and the seed.
type RoleController struct {
	roles *services.RoleService
}

func NewRoleController(roles *services.RoleService) *RoleController {
	return &RoleController{roles: roles}
}

type permissionUpdate struct {
	ID string `json:"id"`
	models.PermissionPatch
}

func (r *RoleController) CreateRole(c *gin.Context) {
	var req models.Role
	if !bindJSON(c, &req) {
		return
	}
	role, err := r.roles.CreateRole(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, role)
}

// GetRoles handles GET /roles?role_id=&role_type=.
func (r *RoleController) GetRoles(c *gin.Context) {
	data, err := r.roles.GetRoleData(c.Request.Context(), c.Query("role_id"), models.RoleType(c.Query("role_type")), queryBool(c, "include_deleted"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, data)
}

func (r *RoleController) UpdateRole(c *gin.Context) {
	var patch models.RolePatch
	if !bindJSON(c, &patch) {
		return
	}
	role, err := r.roles.UpdateRole(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, role)
}

func (r *RoleController) DeleteRole(c *gin.Context) {
	if err := r.roles.DeleteRole(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Role deleted", nil)
}

func (r *RoleController) AssignRole(c *gin.Context) {
	var req models.UserRoleAssignment
	if !bindJSON(c, &req) {
		return
	}
	a, err := r.roles.AssignRole(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, a)
}

// GetAssignments handles GET /user-roles/Assignments?userId=&roleId=.
func (r *RoleController) GetAssignments(c *gin.Context) {
	rows, err := r.roles.GetRoleAssignments(c.Request.Context(), c.Query("userId"), c.Query("roleId"), queryBool(c, "include_deleted"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rows)
}

func (r *RoleController) UpdateAssignment(c *gin.Context) {
	var patch models.AssignmentPatch
	if !bindJSON(c, &patch) {
		return
	}
	a, err := r.roles.UpdateRoleAssignment(c.Request.Context(), c.Param("assignmentId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, a)
}

func (r *RoleController) DeleteAssignment(c *gin.Context) {
	if err := r.roles.DeleteRoleAssignment(c.Request.Context(), c.Param("assignmentId")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Role assignment deleted", nil)
}

// EffectivePermissions handles GET /user-roles/permissions?userId=.
func (r *RoleController) EffectivePermissions(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = callerID(c)
	}
	if userID == "" {
		respondError(c, utils.BadRequest("userId is required"))
		return
	}
	perms, err := r.roles.EffectivePermissions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, perms)
}

func (r *RoleController) CreatePermission(c *gin.Context) {
	var req models.Permission
	if !bindJSON(c, &req) {
		return
	}
	p, err := r.roles.CreatePermission(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, p)
}

// UpdatePermission handles PUT /permissions with the id in the body.
func (r *RoleController) UpdatePermission(c *gin.Context) {
	var req permissionUpdate
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == "" {
		respondError(c, utils.BadRequest("id is required"))
		return
	}
	p, err := r.roles.UpdatePermission(c.Request.Context(), req.ID, req.PermissionPatch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, p)
}

// GetPermissions handles GET /permissions?permission_id=.
func (r *RoleController) GetPermissions(c *gin.Context) {
	perms, err := r.roles.GetPermissions(c.Request.Context(), c.Query("permission_id"), queryBool(c, "include_deleted"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, perms)
}

func (r *RoleController) DeletePermission(c *gin.Context) {
	if err := r.roles.DeletePermission(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Permission deleted", nil)
}

// Seed handles POST /seed.
func (r *RoleController) Seed(c *gin.Context) {
	res, err := r.roles.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Roles and permissions seeded", res)
}
