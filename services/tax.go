package services

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

type TaxService struct {
	store *repository.Store
}

func NewTaxService(store *repository.Store) *TaxService {
	return &TaxService{store: store}
}

// Create stores tax details for userID and links them on the user.
func (s *TaxService) Create(ctx context.Context, userID string, t models.TaxInformation) (*models.TaxInformation, error) {
	if userID == "" {
		return nil, utils.BadRequest("userId is required")
	}
	t.ID = ""
	t.UserID = userID
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.CreateTaxInfo(ctx, &t); err != nil {
			return err
		}
		_, err := tx.UpdateUser(ctx, userID, models.UserPatch{TaxInfoID: models.Some(t.ID)})
		return err
	})
	if err != nil {
		return nil, utils.Wrap(err, "Create tax information failed")
	}
	return &t, nil
}

// Get returns the record with id, or the record of userID when id is empty.
func (s *TaxService) Get(ctx context.Context, userID, id string) (*models.TaxInformation, error) {
	var (
		t   *models.TaxInformation
		err error
	)
	switch {
	case id != "":
		t, err = s.store.FindTaxInfo(ctx, id)
	case userID != "":
		t, err = s.store.FindTaxInfoByUserID(ctx, userID)
	default:
		return nil, utils.BadRequest("userId or id is required")
	}
	if err != nil {
		return nil, utils.Wrap(err, "Get tax information failed")
	}
	return t, nil
}
