package services

import (
	"context"
	"strings"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"go.uber.org/zap"
)

// RoleService manages roles, permissions and user role assignments.
type RoleService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewRoleService(store *repository.Store, logger *zap.Logger) *RoleService {
	return &RoleService{store: store, logger: logger}
}

// GetRoleData lists default roles, optionally narrowed by type, with their
// permissions resolved. A role id selects that role whether or not it is a
// default role.
func (s *RoleService) GetRoleData(ctx context.Context, roleID string, roleType models.RoleType, includeDeleted bool) ([]models.RoleData, error) {
	roles, err := s.store.ListRoles(ctx, repository.RoleQuery{
		ID:             roleID,
		RoleType:       roleType,
		DefaultOnly:    roleID == "",
		IncludeDeleted: includeDeleted,
	})
	if err != nil {
		return nil, utils.Wrap(err, "Get role data failed")
	}
	out := make([]models.RoleData, 0, len(roles))
	for _, r := range roles {
		perms, _, err := s.store.RolePermissions(ctx, r)
		if err != nil {
			return nil, utils.Wrap(err, "Get role data failed")
		}
		out = append(out, models.NewRoleData(r, perms))
	}
	return out, nil
}

func (s *RoleService) CreateRole(ctx context.Context, r *models.Role) (*models.Role, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, utils.BadRequest("Role name is required")
	}
	if r.RoleType == "" {
		r.RoleType = models.RoleTypeMain
	}
	if err := s.store.CreateRole(ctx, r); err != nil {
		return nil, utils.Wrap(err, "Create role failed")
	}
	return r, nil
}

func (s *RoleService) UpdateRole(ctx context.Context, id string, patch models.RolePatch) (*models.Role, error) {
	r, err := s.store.UpdateRole(ctx, id, patch)
	return r, utils.Wrap(err, "Update role failed")
}

func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	return utils.Wrap(s.store.DeleteRole(ctx, id), "Delete role failed")
}

// AssignRole creates an assignment after checking both ends exist.
func (s *RoleService) AssignRole(ctx context.Context, a *models.UserRoleAssignment) (*models.UserRoleAssignment, error) {
	if a.UserID == "" || a.RoleID == "" {
		return nil, utils.BadRequest("userId and roleId are required")
	}
	if err := s.mustResolve(ctx, models.RefTo(models.CollectionUsers, a.UserID), &models.User{}, "User not found"); err != nil {
		return nil, err
	}
	if err := s.mustResolve(ctx, a.RoleRef(), &models.Role{}, "Role not found"); err != nil {
		return nil, err
	}
	if err := s.store.CreateAssignment(ctx, a); err != nil {
		return nil, utils.Wrap(err, "Assign role failed")
	}
	return a, nil
}

func (s *RoleService) mustResolve(ctx context.Context, ref models.Ref, dst any, message string) error {
	err := s.store.Resolve(ctx, ref, dst)
	if repository.IsDangling(err) {
		return utils.NotFound(message)
	}
	return utils.Wrap(err, "Resolve reference failed")
}

// GetRoleAssignments lists assignments with their role and property attached.
func (s *RoleService) GetRoleAssignments(ctx context.Context, userID, roleID string, includeDeleted bool) ([]models.AssignmentView, error) {
	rows, err := s.store.ListAssignments(ctx, repository.AssignmentQuery{UserID: userID, RoleID: roleID, IncludeDeleted: includeDeleted})
	if err != nil {
		return nil, utils.Wrap(err, "Get role assignments failed")
	}
	roleIDs := make([]string, 0, len(rows))
	propertyIDs := make([]string, 0, len(rows))
	for _, a := range rows {
		roleIDs = append(roleIDs, a.RoleID)
		propertyIDs = append(propertyIDs, a.PropertyID)
	}
	roles, err := s.store.RolesByID(ctx, roleIDs)
	if err != nil {
		return nil, utils.Wrap(err, "Get role assignments failed")
	}
	properties, err := s.store.PropertiesByID(ctx, propertyIDs)
	if err != nil {
		return nil, utils.Wrap(err, "Get role assignments failed")
	}

	out := make([]models.AssignmentView, 0, len(rows))
	for _, a := range rows {
		v := models.AssignmentView{UserRoleAssignment: a}
		if r, ok := roles[a.RoleID]; ok {
			v.RoleData = &r
		}
		if p, ok := properties[a.PropertyID]; ok {
			v.PropertyData = &p
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *RoleService) UpdateRoleAssignment(ctx context.Context, id string, patch models.AssignmentPatch) (*models.UserRoleAssignment, error) {
	a, err := s.store.UpdateAssignment(ctx, id, patch)
	return a, utils.Wrap(err, "Update role assignment failed")
}

func (s *RoleService) DeleteRoleAssignment(ctx context.Context, id string) error {
	return utils.Wrap(s.store.DeleteAssignment(ctx, id), "Delete role assignment failed")
}

func (s *RoleService) CreatePermission(ctx context.Context, p *models.Permission) (*models.Permission, error) {
	if strings.TrimSpace(p.Operation) == "" {
		return nil, utils.BadRequest("Permission operation is required")
	}
	if err := s.store.CreatePermission(ctx, p); err != nil {
		return nil, utils.Wrap(err, "Create permission failed")
	}
	return p, nil
}

func (s *RoleService) UpdatePermission(ctx context.Context, id string, patch models.PermissionPatch) (*models.Permission, error) {
	if id == "" {
		return nil, utils.BadRequest("Permission id is required")
	}
	p, err := s.store.UpdatePermission(ctx, id, patch)
	return p, utils.Wrap(err, "Update permission failed")
}

// GetPermissions returns one permission when id is set, otherwise all live
// permissions.
func (s *RoleService) GetPermissions(ctx context.Context, id string, includeDeleted bool) ([]models.Permission, error) {
	if id != "" {
		p, err := s.store.FindPermission(ctx, id)
		if err != nil {
			return nil, utils.Wrap(err, "Get permissions failed")
		}
		return []models.Permission{*p}, nil
	}
	rows, err := s.store.ListPermissions(ctx, includeDeleted)
	return rows, utils.Wrap(err, "Get permissions failed")
}

func (s *RoleService) DeletePermission(ctx context.Context, id string) error {
	return utils.Wrap(s.store.DeletePermission(ctx, id), "Delete permission failed")
}

// UserRoles is the resolved role set of one user.
type UserRoles struct {
	Roles       []models.RoleData
	Permissions []models.Permission
	Dangling    []models.Ref
}

// ResolveUserRoles follows the user's live assignments to their roles and
// permissions. Permissions are de-duplicated by id in first-seen order.
// Deleted roles and permissions are skipped.
func (s *RoleService) ResolveUserRoles(ctx context.Context, store *repository.Store, userID string) (*UserRoles, error) {
	if store == nil {
		store = s.store
	}
	assignments, err := store.ListAssignments(ctx, repository.AssignmentQuery{UserID: userID})
	if err != nil {
		return nil, err
	}
	refs := make([]models.Ref, 0, len(assignments))
	for _, a := range assignments {
		refs = append(refs, a.RoleRef())
	}
	roles, dangling, err := repository.ResolveAll(ctx, store, refs, func(r models.Role) string { return r.ID })
	if err != nil {
		return nil, err
	}

	out := &UserRoles{Roles: []models.RoleData{}, Permissions: []models.Permission{}, Dangling: dangling}
	seen := map[string]bool{}
	for _, r := range roles {
		if r.DeletedAt != nil {
			continue
		}
		perms, missing, err := store.RolePermissions(ctx, r)
		if err != nil {
			return nil, err
		}
		out.Dangling = append(out.Dangling, missing...)
		live := make([]models.Permission, 0, len(perms))
		for _, p := range perms {
			if p.DeletedAt != nil {
				continue
			}
			live = append(live, p)
			if !seen[p.ID] {
				seen[p.ID] = true
				out.Permissions = append(out.Permissions, p)
			}
		}
		out.Roles = append(out.Roles, models.NewRoleData(r, live))
	}
	return out, nil
}

// EffectivePermissions returns the de-duplicated permissions of a user.
func (s *RoleService) EffectivePermissions(ctx context.Context, userID string) ([]models.Permission, error) {
	if userID == "" {
		return nil, utils.BadRequest("userId is required")
	}
	resolved, err := s.ResolveUserRoles(ctx, nil, userID)
	if err != nil {
		return nil, utils.Wrap(err, "Get effective permissions failed")
	}
	return resolved.Permissions, nil
}

// SeedResult counts what a seed run inserted.
type SeedResult struct {
	PermissionsCreated int `json:"permissionsCreated"`
	RolesCreated       int `json:"rolesCreated"`
}

// Seed inserts the missing catalog permissions (keyed by operation) and
// roles (keyed by name), then gives every catalog role the whole
// permission catalog.
//
// TODO: map each catalog role to its own permission subset once the
// intended Manager and Maintenance Member grants are confirmed.
func (s *RoleService) Seed(ctx context.Context) (*SeedResult, error) {
	res := &SeedResult{}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		ids := make([]string, 0, len(permissionCatalog))
		for _, p := range permissionCatalog {
			existing, err := tx.FindPermissionByOperation(ctx, p.Operation)
			if err == nil {
				ids = append(ids, existing.ID)
				continue
			}
			if !utils.IsNotFound(err) {
				return err
			}
			row := p
			if err := tx.CreatePermission(ctx, &row); err != nil {
				return err
			}
			ids = append(ids, row.ID)
			res.PermissionsCreated++
		}

		for _, r := range roleCatalog {
			existing, err := tx.FindRoleByName(ctx, r.Name)
			if err != nil && !utils.IsNotFound(err) {
				return err
			}
			if existing == nil {
				row := r
				row.IsDefault = true
				row.RoleType = models.RoleTypeMain
				if err := tx.CreateRole(ctx, &row); err != nil {
					return err
				}
				existing = &row
				res.RolesCreated++
			}
			if _, err := tx.UpdateRole(ctx, existing.ID, models.RolePatch{PermissionIDs: models.ReplaceList(ids...)}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, utils.Wrap(err, "Seed roles and permissions failed")
	}
	s.logger.Info("Seeded roles and permissions",
		zap.Int("permissions_created", res.PermissionsCreated),
		zap.Int("roles_created", res.RolesCreated),
	)
	return res, nil
}
