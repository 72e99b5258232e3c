package repository

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
)

const (
	roleNotFound       = "Role not found"
	permissionNotFound = "Permission not found"
	assignmentNotFound = "Role assignment not found"
)

func (s *Store) CreateRole(ctx context.Context, r *models.Role) error {
	return s.conn(ctx).Create(r).Error
}

func (s *Store) FindRole(ctx context.Context, id string) (*models.Role, error) {
	return findByID[models.Role](ctx, s.db, id, roleNotFound)
}

func (s *Store) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	return findOne[models.Role](ctx, s.db, roleNotFound, "name = ?", name)
}

// RoleQuery filters role listings.
type RoleQuery struct {
	ID             string
	RoleType       models.RoleType
	DefaultOnly    bool
	IncludeDeleted bool
}

func (s *Store) ListRoles(ctx context.Context, q RoleQuery) ([]models.Role, error) {
	db := s.conn(ctx)
	if q.ID != "" {
		db = db.Where("id = ?", q.ID)
	} else {
		db = notDeleted(db, q.IncludeDeleted)
	}
	if q.DefaultOnly {
		db = db.Where("is_default = ?", true)
	}
	if q.RoleType != "" {
		db = db.Where("role_type = ?", q.RoleType)
	}
	var rows []models.Role
	err := db.Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) UpdateRole(ctx context.Context, id string, patch models.RolePatch) (*models.Role, error) {
	return updateByID[models.Role](ctx, s.db, id, patch, roleNotFound)
}

func (s *Store) DeleteRole(ctx context.Context, id string) error {
	return deleteByID[models.Role](ctx, s.db, id, roleNotFound)
}

func (s *Store) CreatePermission(ctx context.Context, p *models.Permission) error {
	return s.conn(ctx).Create(p).Error
}

func (s *Store) FindPermission(ctx context.Context, id string) (*models.Permission, error) {
	return findByID[models.Permission](ctx, s.db, id, permissionNotFound)
}

func (s *Store) FindPermissionByOperation(ctx context.Context, operation string) (*models.Permission, error) {
	return findOne[models.Permission](ctx, s.db, permissionNotFound, "operation = ?", operation)
}

func (s *Store) ListPermissions(ctx context.Context, includeDeleted bool) ([]models.Permission, error) {
	var rows []models.Permission
	err := notDeleted(s.conn(ctx), includeDeleted).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) UpdatePermission(ctx context.Context, id string, patch models.PermissionPatch) (*models.Permission, error) {
	return updateByID[models.Permission](ctx, s.db, id, patch, permissionNotFound)
}

func (s *Store) DeletePermission(ctx context.Context, id string) error {
	return deleteByID[models.Permission](ctx, s.db, id, permissionNotFound)
}

// RolePermissions resolves a role's permission ids. Ids that match nothing
// come back as dangling refs and are left out of the result.
func (s *Store) RolePermissions(ctx context.Context, r models.Role) ([]models.Permission, []models.Ref, error) {
	return ResolveAll(ctx, s, r.PermissionRefs(), func(p models.Permission) string { return p.ID })
}

func (s *Store) CreateAssignment(ctx context.Context, a *models.UserRoleAssignment) error {
	return s.conn(ctx).Create(a).Error
}

func (s *Store) FindAssignment(ctx context.Context, id string) (*models.UserRoleAssignment, error) {
	return findByID[models.UserRoleAssignment](ctx, s.db, id, assignmentNotFound)
}

// AssignmentQuery filters assignment listings.
type AssignmentQuery struct {
	UserID         string
	RoleID         string
	IncludeDeleted bool
}

func (s *Store) ListAssignments(ctx context.Context, q AssignmentQuery) ([]models.UserRoleAssignment, error) {
	db := notDeleted(s.conn(ctx), q.IncludeDeleted)
	if q.UserID != "" {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.RoleID != "" {
		db = db.Where("role_id = ?", q.RoleID)
	}
	var rows []models.UserRoleAssignment
	err := db.Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

// AssignmentsForUsers returns live assignments keyed by user id.
func (s *Store) AssignmentsForUsers(ctx context.Context, userIDs []string) (map[string][]models.UserRoleAssignment, error) {
	out := make(map[string][]models.UserRoleAssignment, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []models.UserRoleAssignment
	err := s.conn(ctx).Where("deleted_at IS NULL AND user_id IN ?", userIDs).
		Order("created_at ASC").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, a := range rows {
		out[a.UserID] = append(out[a.UserID], a)
	}
	return out, nil
}

func (s *Store) UpdateAssignment(ctx context.Context, id string, patch models.AssignmentPatch) (*models.UserRoleAssignment, error) {
	return updateByID[models.UserRoleAssignment](ctx, s.db, id, patch, assignmentNotFound)
}

func (s *Store) DeleteAssignment(ctx context.Context, id string) error {
	return deleteByID[models.UserRoleAssignment](ctx, s.db, id, assignmentNotFound)
}
