package services

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"go.uber.org/zap"
)

// ProfileService manages the one-per-user public profile.
type ProfileService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewProfileService(store *repository.Store, logger *zap.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

// Create stores p for userID and links it on the user.
func (s *ProfileService) Create(ctx context.Context, userID string, p models.UserProfile) (*models.UserProfile, error) {
	if userID == "" {
		return nil, utils.BadRequest("userId is required")
	}
	if _, err := s.store.FindProfileByUserID(ctx, userID); err == nil {
		return nil, utils.Conflict("User profile already exists")
	} else if !utils.IsNotFound(err) {
		return nil, utils.Wrap(err, "Create user profile failed")
	}

	p.ID = ""
	p.UserID = userID
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.CreateProfile(ctx, &p); err != nil {
			return err
		}
		_, err := tx.UpdateUser(ctx, userID, models.UserPatch{ProfileID: models.Some(p.ID)})
		return err
	})
	if err != nil {
		return nil, utils.Wrap(err, "Create user profile failed")
	}
	s.logger.Info("User profile created", zap.String("user_id", userID), zap.String("profile_id", p.ID))
	return &p, nil
}

// Get returns the profile with id, or the profile of userID when id is empty.
func (s *ProfileService) Get(ctx context.Context, userID, id string) (*models.UserProfile, error) {
	var (
		p   *models.UserProfile
		err error
	)
	switch {
	case id != "":
		p, err = s.store.FindProfile(ctx, id)
	case userID != "":
		p, err = s.store.FindProfileByUserID(ctx, userID)
	default:
		return nil, utils.BadRequest("userId or id is required")
	}
	if err != nil {
		return nil, utils.Wrap(err, "Get user profile failed")
	}
	return p, nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, patch models.ProfilePatch) (*models.UserProfile, error) {
	p, err := s.store.UpdateProfileByUserID(ctx, userID, patch)
	if err != nil {
		return nil, utils.Wrap(err, "Update user profile failed")
	}
	return p, nil
}

func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	return utils.Wrap(s.store.DeleteProfileByUserID(ctx, userID), "Delete user profile failed")
}
