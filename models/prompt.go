package models

import (
	"time"

	"gorm.io/gorm"
)

// UserPromptMessage is one generated assistant prompt for a user. Message
// holds the uploaded file URL or the prompt text.
type UserPromptMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36" json:"userId"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserPromptMessage) TableName() string { return CollectionUserPromptMessages }

func (m *UserPromptMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// UserPrompt points at the user's current prompt message.
type UserPrompt struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"uniqueIndex;size:36" json:"userId"`
	MessageID string    `gorm:"size:36" json:"messageId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserPrompt) TableName() string { return CollectionUserPrompts }

func (p *UserPrompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

// CategoryPromptMessage is a template prompt for a company category.
type CategoryPromptMessage struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CategoryID string    `gorm:"index;size:36" json:"categoryId"`
	Message    string    `gorm:"type:text" json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (CategoryPromptMessage) TableName() string { return CollectionCategoryPromptMessages }

func (m *CategoryPromptMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// CategoryPrompt points at the category's current template message.
type CategoryPrompt struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CategoryID string    `gorm:"uniqueIndex;size:36" json:"categoryId"`
	MessageID  string    `gorm:"size:36" json:"messageId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (CategoryPrompt) TableName() string { return CollectionCategoryPrompts }

func (p *CategoryPrompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

// PromptWithMessage is a pointer record joined with its message.
type PromptWithMessage struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	MessageID      string    `json:"messageId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	MessageDetails any       `json:"messageDetails"`
}
