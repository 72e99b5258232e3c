package repository

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
)

const taxNotFound = "Tax information not found"

func (s *Store) CreateTaxInfo(ctx context.Context, t *models.TaxInformation) error {
	return s.conn(ctx).Create(t).Error
}

func (s *Store) FindTaxInfo(ctx context.Context, id string) (*models.TaxInformation, error) {
	return findByID[models.TaxInformation](ctx, s.db, id, taxNotFound)
}

func (s *Store) FindTaxInfoByUserID(ctx context.Context, userID string) (*models.TaxInformation, error) {
	var rows []models.TaxInformation
	err := s.conn(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id ASC").Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound(taxNotFound)
	}
	return &rows[0], nil
}
