package repository

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
)

const addressNotFound = "Address not found"

func (s *Store) CreateAddress(ctx context.Context, a *models.Address) error {
	return s.conn(ctx).Create(a).Error
}

func (s *Store) FindAddress(ctx context.Context, id string) (*models.Address, error) {
	return findByID[models.Address](ctx, s.db, id, addressNotFound)
}

func (s *Store) ListAddresses(ctx context.Context, refID string) ([]models.Address, error) {
	q := s.conn(ctx)
	if refID != "" {
		q = q.Where("ref_id = ?", refID)
	}
	var rows []models.Address
	err := q.Order("created_at DESC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) UpdateAddress(ctx context.Context, id string, patch models.AddressPatch) (*models.Address, error) {
	return updateByID[models.Address](ctx, s.db, id, patch, addressNotFound)
}

func (s *Store) DeleteAddress(ctx context.Context, id string) error {
	return deleteByID[models.Address](ctx, s.db, id, addressNotFound)
}
