package repository

import (
	"context"
	"strings"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

const profileNotFound = "User profile not found"

func (s *Store) CreateProfile(ctx context.Context, p *models.UserProfile) error {
	return s.conn(ctx).Create(p).Error
}

func (s *Store) FindProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	return findByID[models.UserProfile](ctx, s.db, id, profileNotFound)
}

func (s *Store) FindProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	return findOne[models.UserProfile](ctx, s.db, profileNotFound, "user_id = ?", userID)
}

func (s *Store) FindProfileByAssistantPhone(ctx context.Context, phone string) (*models.UserProfile, error) {
	return findOne[models.UserProfile](ctx, s.db, profileNotFound, "assistant_phone_no = ?", phone)
}

func (s *Store) FindProfileByAssistantEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	return findOne[models.UserProfile](ctx, s.db, profileNotFound, "LOWER(assistant_email) = ?", strings.ToLower(email))
}

// ProfilesForUsers returns the profiles of the given users keyed by user id.
func (s *Store) ProfilesForUsers(ctx context.Context, userIDs []string) (map[string]models.UserProfile, error) {
	out := make(map[string]models.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []models.UserProfile
	if err := s.conn(ctx).Where("user_id IN ?", userIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.UserID] = p
	}
	return out, nil
}

func (s *Store) UpdateProfileByUserID(ctx context.Context, userID string, patch models.ProfilePatch) (*models.UserProfile, error) {
	p, err := s.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return updateWith[models.UserProfile](ctx, s.db, p, patch)
}

func (s *Store) DeleteProfileByUserID(ctx context.Context, userID string) error {
	res := s.conn(ctx).Where("user_id = ?", userID).Delete(&models.UserProfile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(profileNotFound)
	}
	return nil
}
