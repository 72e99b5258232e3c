package repository

import (
	"context"

	"github.com/kendall-kelly/lightwork-auth-api/models"
)

// ActivityQuery filters the activity feed.
type ActivityQuery struct {
	ID           string
	UserID       string
	CompanyID    string
	ActivityType models.ActivityType
}

func (s *Store) CreateActivity(ctx context.Context, a *models.UserActivity) error {
	return s.conn(ctx).Create(a).Error
}

func (s *Store) ListActivities(ctx context.Context, q ActivityQuery) ([]models.UserActivity, error) {
	db := s.conn(ctx)
	if q.ID != "" {
		db = db.Where("id = ?", q.ID)
	}
	if q.UserID != "" {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.CompanyID != "" {
		db = db.Where("company_id = ?", q.CompanyID)
	}
	if q.ActivityType != "" {
		db = db.Where("activity_type = ?", q.ActivityType)
	}
	var rows []models.UserActivity
	err := db.Order("created_at DESC").Order("id ASC").Find(&rows).Error
	return rows, err
}
