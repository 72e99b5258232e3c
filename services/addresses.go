package services

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

type AddressService struct {
	store *repository.Store
}

func NewAddressService(store *repository.Store) *AddressService {
	return &AddressService{store: store}
}

func (s *AddressService) Create(ctx context.Context, a models.Address) (*models.Address, error) {
	a.ID = ""
	if err := s.store.CreateAddress(ctx, &a); err != nil {
		return nil, utils.Wrap(err, "Create address failed")
	}
	return &a, nil
}

func (s *AddressService) Get(ctx context.Context, id string) (*models.Address, error) {
	a, err := s.store.FindAddress(ctx, id)
	if err != nil {
		return nil, utils.Wrap(err, "Get address failed")
	}
	return a, nil
}

// List returns every address, or the addresses of one owner.
func (s *AddressService) List(ctx context.Context, refID string) ([]models.Address, error) {
	rows, err := s.store.ListAddresses(ctx, refID)
	if err != nil {
		return nil, utils.Wrap(err, "Get address failed")
	}
	return rows, nil
}

func (s *AddressService) Update(ctx context.Context, id string, patch models.AddressPatch) (*models.Address, error) {
	a, err := s.store.UpdateAddress(ctx, id, patch)
	if err != nil {
		return nil, utils.Wrap(err, "Update address failed")
	}
	return a, nil
}

func (s *AddressService) Delete(ctx context.Context, id string) error {
	return utils.Wrap(s.store.DeleteAddress(ctx, id), "Delete address failed")
}
