package repository

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
)

const (
	companyNotFound  = "Company not found"
	categoryNotFound = "Company category not found"
)

func (s *Store) CreateCompany(ctx context.Context, c *models.Company) error {
	return s.conn(ctx).Create(c).Error
}

// FindCompany fetches by id regardless of soft deletion.
func (s *Store) FindCompany(ctx context.Context, id string) (*models.Company, error) {
	return findByID[models.Company](ctx, s.db, id, companyNotFound)
}

// ListCompanies excludes soft-deleted companies unless includeDeleted.
func (s *Store) ListCompanies(ctx context.Context, includeDeleted bool) ([]models.Company, error) {
	var rows []models.Company
	err := notDeleted(s.conn(ctx), includeDeleted).Order("created_at DESC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) UpdateCompany(ctx context.Context, id string, patch models.CompanyPatch) (*models.Company, error) {
	return updateByID[models.Company](ctx, s.db, id, patch, companyNotFound)
}

func (s *Store) CreateCompanyCategory(ctx context.Context, c *models.CompanyCategory) error {
	return s.conn(ctx).Create(c).Error
}

func (s *Store) FindCompanyCategory(ctx context.Context, id string) (*models.CompanyCategory, error) {
	return findByID[models.CompanyCategory](ctx, s.db, id, categoryNotFound)
}

func (s *Store) ListCompanyCategories(ctx context.Context) ([]models.CompanyCategory, error) {
	var rows []models.CompanyCategory
	err := s.conn(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) UpdateCompanyCategory(ctx context.Context, id string, patch models.CompanyCategoryPatch) (*models.CompanyCategory, error) {
	return updateByID[models.CompanyCategory](ctx, s.db, id, patch, categoryNotFound)
}

func (s *Store) DeleteCompanyCategory(ctx context.Context, id string) error {
	return deleteByID[models.CompanyCategory](ctx, s.db, id, categoryNotFound)
}
