package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCompanyUsers(t *testing.T, s *Store, companyID string, n int) []models.User {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		u := models.User{
			Email:     fmt.Sprintf("member%02d@example.com", i),
			FirstName: fmt.Sprintf("Member%02d", i),
			LastName:  "Smith",
			UserType:  models.UserTypeContractor,
			Status:    models.UserStatusActive,
			CompanyID: companyID,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, s.CreateUser(ctx, &u))
		users = append(users, u)
	}
	return users
}

func TestFindUserByEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "mixed@example.com"}))

	got, err := s.FindUserByEmail(ctx, "  MIXED@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "mixed@example.com", got.Email)

	exists, err := s.EmailExists(ctx, "Mixed@Example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = s.FindUserByEmail(ctx, "nobody@example.com")
	assert.True(t, utils.IsNotFound(err))
}

func TestCompanyUsersPagination(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	requester := models.User{Email: "owner@example.com", CompanyID: "c1"}
	require.NoError(t, s.CreateUser(ctx, &requester))
	seedCompanyUsers(t, s, "c1", 15)
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "other@example.com", CompanyID: "c2"}))

	f := NormalizeFilter(models.UserFilter{})
	users, total, err := s.CompanyUsers(ctx, "c1", requester.ID, f)
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	assert.Len(t, users, 10)
	for _, u := range users {
		assert.NotEqual(t, requester.ID, u.ID)
		assert.Equal(t, "c1", u.CompanyID)
	}

	page := models.NewPagination(total, f.Skip, f.Limit)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)

	f.Skip = 10
	second, _, err := s.CompanyUsers(ctx, "c1", requester.ID, f)
	require.NoError(t, err)
	assert.Len(t, second, 5)

	seen := map[string]bool{}
	for _, u := range append(users, second...) {
		assert.False(t, seen[u.ID], "user %s returned twice across pages", u.ID)
		seen[u.ID] = true
	}
}

func TestCompanyUsersSortAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedCompanyUsers(t, s, "c1", 5)

	t.Run("default sort is newest first", func(t *testing.T) {
		users, _, err := s.CompanyUsers(ctx, "c1", "", NormalizeFilter(models.UserFilter{}))
		require.NoError(t, err)
		require.Len(t, users, 5)
		assert.Equal(t, "Member04", users[0].FirstName)
	})

	t.Run("ascending by first name", func(t *testing.T) {
		users, _, err := s.CompanyUsers(ctx, "c1", "", NormalizeFilter(models.UserFilter{SortBy: "firstName", SortOrder: "ASC"}))
		require.NoError(t, err)
		assert.Equal(t, "Member00", users[0].FirstName)
	})

	t.Run("ties break on id", func(t *testing.T) {
		users, _, err := s.CompanyUsers(ctx, "c1", "", NormalizeFilter(models.UserFilter{SortBy: "lastName"}))
		require.NoError(t, err)
		for i := 1; i < len(users); i++ {
			assert.Less(t, users[i-1].ID, users[i].ID)
		}
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		users, total, err := s.CompanyUsers(ctx, "c1", "", NormalizeFilter(models.UserFilter{Search: "MEMBER03"}))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, users, 1)
		assert.Equal(t, "member03@example.com", users[0].Email)
	})

	t.Run("like wildcards are literal", func(t *testing.T) {
		_, total, err := s.CompanyUsers(ctx, "c1", "", NormalizeFilter(models.UserFilter{Search: "%"}))
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})
}

func TestCompanyUsersExcludesSoftDeleted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	users := seedCompanyUsers(t, s, "c1", 3)

	_, err := s.UpdateUser(ctx, users[0].ID, models.UserPatch{DeletedAt: models.SoftDelete()})
	require.NoError(t, err)

	_, total, err := s.CompanyUsers(ctx, "c1", "", NormalizeFilter(models.UserFilter{}))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = s.CompanyUsers(ctx, "c1", "", NormalizeFilter(models.UserFilter{IncludeDeleted: true}))
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestNormalizeFilter(t *testing.T) {
	tests := []struct {
		name string
		in   models.UserFilter
		want models.UserFilter
	}{
		{"defaults", models.UserFilter{}, models.UserFilter{Limit: 10, SortBy: "createdAt", SortOrder: "desc"}},
		{"caps limit", models.UserFilter{Limit: 500}, models.UserFilter{Limit: 100, SortBy: "createdAt", SortOrder: "desc"}},
		{"negative skip", models.UserFilter{Skip: -3, Limit: 5}, models.UserFilter{Limit: 5, SortBy: "createdAt", SortOrder: "desc"}},
		{"unknown sort column", models.UserFilter{SortBy: "password", SortOrder: "asc"}, models.UserFilter{Limit: 10, SortBy: "createdAt", SortOrder: "asc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFilter(tt.in))
		})
	}
}

func TestUsersWithSpecialization(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@example.com", CompanyID: "c1", UserType: models.UserTypeContractor, Specializations: models.StringList{"gas"}}))
	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "b@example.com", CompanyID: "c1", UserType: models.UserTypeContractor, Specializations: models.StringList{"roofing"}}))

	got, err := s.UsersWithSpecialization(ctx, "gas", "c1", models.UserTypeContractor)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a@example.com", got[0].Email)
}
