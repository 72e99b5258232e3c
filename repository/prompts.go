package repository

import (
	"context"
	"errors"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"gorm.io/gorm"
)

const (
	promptNotFound         = "Prompt not found"
	userPromptNotFound     = "UserPrompt not found"
	categoryPromptNotFound = "Category prompt not found"
)

// CreateUserPromptMessage stores message and points the user's prompt
// record at it, creating the record when missing.
func (s *Store) CreateUserPromptMessage(ctx context.Context, userID, message string) (*models.UserPromptMessage, error) {
	msg := &models.UserPromptMessage{UserID: userID, Message: message}
	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.conn(ctx).Create(msg).Error; err != nil {
			return err
		}
		var pointer models.UserPrompt
		err := tx.conn(ctx).Where("user_id = ?", userID).Take(&pointer).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.conn(ctx).Create(&models.UserPrompt{UserID: userID, MessageID: msg.ID}).Error
		case err != nil:
			return err
		}
		return tx.conn(ctx).Model(&pointer).Update("message_id", msg.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Store) ListUserPromptMessages(ctx context.Context, userID string) ([]models.UserPromptMessage, error) {
	var rows []models.UserPromptMessage
	err := s.conn(ctx).Where("user_id = ?", userID).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) FindUserPromptMessage(ctx context.Context, id string) (*models.UserPromptMessage, error) {
	return findByID[models.UserPromptMessage](ctx, s.db, id, promptNotFound)
}

func (s *Store) UpdateUserPromptMessage(ctx context.Context, id, message string) (*models.UserPromptMessage, error) {
	m, err := s.FindUserPromptMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Message = message
	if err := s.conn(ctx).Model(m).Update("message", message).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) DeleteUserPromptMessage(ctx context.Context, id string) error {
	return deleteByID[models.UserPromptMessage](ctx, s.db, id, promptNotFound)
}

func (s *Store) DeleteUserPromptMessages(ctx context.Context, userID string) error {
	return s.conn(ctx).Where("user_id = ?", userID).Delete(&models.UserPromptMessage{}).Error
}

func (s *Store) ListUserPrompts(ctx context.Context) ([]models.UserPrompt, error) {
	var rows []models.UserPrompt
	err := s.conn(ctx).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) FindUserPrompt(ctx context.Context, userID string) (*models.UserPrompt, error) {
	return findOne[models.UserPrompt](ctx, s.db, userPromptNotFound, "user_id = ?", userID)
}

func (s *Store) SetUserPromptMessage(ctx context.Context, userID, messageID string) (*models.UserPrompt, error) {
	p, err := s.FindUserPrompt(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.MessageID = messageID
	if err := s.conn(ctx).Model(p).Update("message_id", messageID).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) DeleteUserPrompt(ctx context.Context, userID string) error {
	res := s.conn(ctx).Where("user_id = ?", userID).Delete(&models.UserPrompt{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(userPromptNotFound)
	}
	return nil
}

// CreateCategoryPromptMessage mirrors CreateUserPromptMessage for categories.
func (s *Store) CreateCategoryPromptMessage(ctx context.Context, categoryID, message string) (*models.CategoryPromptMessage, error) {
	msg := &models.CategoryPromptMessage{CategoryID: categoryID, Message: message}
	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.conn(ctx).Create(msg).Error; err != nil {
			return err
		}
		var pointer models.CategoryPrompt
		err := tx.conn(ctx).Where("category_id = ?", categoryID).Take(&pointer).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.conn(ctx).Create(&models.CategoryPrompt{CategoryID: categoryID, MessageID: msg.ID}).Error
		case err != nil:
			return err
		}
		return tx.conn(ctx).Model(&pointer).Update("message_id", msg.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Store) ListCategoryPromptMessages(ctx context.Context, categoryID string) ([]models.CategoryPromptMessage, error) {
	var rows []models.CategoryPromptMessage
	err := s.conn(ctx).Where("category_id = ?", categoryID).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) FindCategoryPromptMessage(ctx context.Context, id string) (*models.CategoryPromptMessage, error) {
	return findByID[models.CategoryPromptMessage](ctx, s.db, id, categoryPromptNotFound)
}

func (s *Store) UpdateCategoryPromptMessage(ctx context.Context, id, message string) (*models.CategoryPromptMessage, error) {
	m, err := s.FindCategoryPromptMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Message = message
	if err := s.conn(ctx).Model(m).Update("message", message).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) DeleteCategoryPromptMessage(ctx context.Context, id string) error {
	return deleteByID[models.CategoryPromptMessage](ctx, s.db, id, categoryPromptNotFound)
}

func (s *Store) DeleteCategoryPromptMessages(ctx context.Context, categoryID string) error {
	return s.conn(ctx).Where("category_id = ?", categoryID).Delete(&models.CategoryPromptMessage{}).Error
}

func (s *Store) ListCategoryPrompts(ctx context.Context) ([]models.CategoryPrompt, error) {
	var rows []models.CategoryPrompt
	err := s.conn(ctx).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *Store) FindCategoryPrompt(ctx context.Context, categoryID string) (*models.CategoryPrompt, error) {
	return findOne[models.CategoryPrompt](ctx, s.db, categoryPromptNotFound, "category_id = ?", categoryID)
}

func (s *Store) SetCategoryPromptMessage(ctx context.Context, categoryID, messageID string) (*models.CategoryPrompt, error) {
	p, err := s.FindCategoryPrompt(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	p.MessageID = messageID
	if err := s.conn(ctx).Model(p).Update("message_id", messageID).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) DeleteCategoryPrompt(ctx context.Context, categoryID string) error {
	res := s.conn(ctx).Where("category_id = ?", categoryID).Delete(&models.CategoryPrompt{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(categoryPromptNotFound)
	}
	return nil
}
