package repository

import (
	"context"
	"strings"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// sortColumns maps accepted sortBy values to columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"phone":     "phone",
	"userType":  "user_type",
	"status":    "status",
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.conn(ctx).Create(u).Error
}

func (s *Store) FindUser(ctx context.Context, id string) (*models.User, error) {
	return findByID[models.User](ctx, s.db, id, "User not found")
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.db, "User not found", "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (s *Store) FindUserByStripeConnectID(ctx context.Context, stripeConnectID string) (*models.User, error) {
	return findOne[models.User](ctx, s.db, "User not found", "stripe_connect_id = ?", stripeConnectID)
}

// EmailExists reports whether any user, deleted or not, holds email.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&n).Error
	return n > 0, err
}

func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	return updateByID[models.User](ctx, s.db, id, patch, "User not found")
}

// SetUserPassword stores a new hash and, when status is non-empty, the
// account status.
func (s *Store) SetUserPassword(ctx context.Context, id, hash string, status models.UserStatus) error {
	updates := map[string]any{"password": hash}
	if status != "" {
		updates["status"] = status
	}
	res := s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("User not found")
	}
	return nil
}

// ListUsers returns users matching the optional filters.
func (s *Store) ListUsers(ctx context.Context, companyID string, userType models.UserType) ([]models.User, error) {
	q := s.conn(ctx).Where("deleted_at IS NULL")
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	if userType != "" {
		q = q.Where("user_type = ?", userType)
	}
	var users []models.User
	err := q.Order("created_at DESC").Order("id ASC").Find(&users).Error
	return users, err
}

// CompanyUsers returns one page of a company's users, excluding excludeID,
// and the total matching the same filter. The page and the count run
// concurrently.
func (s *Store) CompanyUsers(ctx context.Context, companyID, excludeID string, f models.UserFilter) ([]models.User, int64, error) {
	base := func(db *gorm.DB) *gorm.DB {
		q := db.Model(&models.User{}).Where("company_id = ?", companyID)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}
		if f.UserType != "" {
			q = q.Where("user_type = ?", f.UserType)
		}
		if !f.IncludeDeleted {
			q = q.Where("deleted_at IS NULL")
		}
		if term := strings.TrimSpace(f.Search); term != "" {
			like := "%" + escapeLike(strings.ToLower(term)) + "%"
			q = q.Where(
				"(LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(phone) LIKE ? ESCAPE '\\' OR LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\')",
				like, like, like, like,
			)
		}
		return q
	}

	var (
		users []models.User
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return base(s.conn(gctx)).
			Order(orderClause(f.SortBy, f.SortOrder)).
			Order("id ASC").
			Offset(f.Skip).
			Limit(f.Limit).
			Find(&users).Error
	})
	g.Go(func() error {
		return base(s.conn(gctx)).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UsersWithSpecialization filters a company's users of one type by a
// specialization tag.
func (s *Store) UsersWithSpecialization(ctx context.Context, specialization, companyID string, userType models.UserType) ([]models.User, error) {
	candidates, err := s.ListUsers(ctx, companyID, userType)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(candidates))
	for _, u := range candidates {
		if u.Specializations.Contains(specialization) {
			out = append(out, u)
		}
	}
	return out, nil
}

// NormalizeFilter applies paging defaults and bounds.
func NormalizeFilter(f models.UserFilter) models.UserFilter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	if _, ok := sortColumns[f.SortBy]; !ok {
		f.SortBy = "createdAt"
	}
	if !strings.EqualFold(f.SortOrder, "asc") {
		f.SortOrder = "desc"
	} else {
		f.SortOrder = "asc"
	}
	return f
}

func orderClause(sortBy, sortOrder string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = "created_at"
	}
	if strings.EqualFold(sortOrder, "asc") {
		return col + " ASC"
	}
	return col + " DESC"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

