package services

import (
	"context"
	"testing"
	"time"

	"github.com/kendall-kelly/lightwork-auth-api/config"
	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testKeys = config.SigningKeys{
	Keys: map[string]string{
		config.KeyContractor:     "contractor-secret",
		config.KeyTenant:         "tenant-secret",
		config.KeyCreateUser:     "create-user-secret",
		config.KeyForgotPassword: "forgot-secret",
	},
	Default: "default-secret",
}

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.New(testutil.NewTestDB(t))
}

func createUser(t *testing.T, s *repository.Store, u models.User) *models.User {
	t.Helper()
	if u.Status == "" {
		u.Status = models.UserStatusActive
	}
	if u.UserType == "" {
		u.UserType = models.UserTypeContractor
	}
	require.NoError(t, s.CreateUser(context.Background(), &u))
	return &u
}

func createRoleWith(t *testing.T, s *repository.Store, name string, ops ...string) (*models.Role, []models.Permission) {
	t.Helper()
	ctx := context.Background()
	var perms []models.Permission
	var ids []string
	for _, op := range ops {
		p, err := s.FindPermissionByOperation(ctx, op)
		if err != nil {
			p = &models.Permission{Name: op, Operation: op}
			require.NoError(t, s.CreatePermission(ctx, p))
		}
		perms = append(perms, *p)
		ids = append(ids, p.ID)
	}
	r := &models.Role{Name: name, IsDefault: true, RoleType: models.RoleTypeMain, PermissionIDs: ids}
	require.NoError(t, s.CreateRole(ctx, r))
	return r, perms
}

func assign(t *testing.T, s *repository.Store, userID, roleID string) *models.UserRoleAssignment {
	t.Helper()
	a := &models.UserRoleAssignment{UserID: userID, RoleID: roleID}
	require.NoError(t, s.CreateAssignment(context.Background(), a))
	return a
}

func ptrTime(t time.Time) *time.Time { return &t }

func nopLogger() *zap.Logger { return zap.NewNop() }
