package services

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
)

// ActivityService is the user activity feed.
type ActivityService struct {
	store *repository.Store
}

func NewActivityService(store *repository.Store) *ActivityService {
	return &ActivityService{store: store}
}

func (s *ActivityService) List(ctx context.Context, q repository.ActivityQuery) ([]models.UserActivity, error) {
	rows, err := s.store.ListActivities(ctx, q)
	if err != nil {
		return nil, utils.Wrap(err, "Get activities failed")
	}
	return rows, nil
}

func (s *ActivityService) Create(ctx context.Context, a models.UserActivity) (*models.UserActivity, error) {
	if a.UserID == "" {
		return nil, utils.BadRequest("userId is required")
	}
	if a.ActivityType == "" {
		a.ActivityType = models.ActivityOthers
	}
	a.ID = ""
	if err := s.store.CreateActivity(ctx, &a); err != nil {
		return nil, utils.Wrap(err, "Create activity failed")
	}
	return &a, nil
}
