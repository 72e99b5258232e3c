package models

import (
	"time"

	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityViewings      ActivityType = "VIEWINGS"
	ActivityWorkOrders    ActivityType = "WORK_ORDERS"
	ActivityQuotes        ActivityType = "QUOTES"
	ActivityCompliances   ActivityType = "COMPLIANCES"
	ActivityConversations ActivityType = "CONVERSATIONS"
	ActivityTasks         ActivityType = "TASKS"
	ActivityOthers        ActivityType = "OTHERS"
)

type UserActivity struct {
	ID           string           `gorm:"primaryKey;size:36" json:"id"`
	UserID       string           `gorm:"index;size:36" json:"userId"`
	CompanyID    string           `gorm:"index;size:36" json:"companyId"`
	Title        string           `json:"title"`
	RefID        string           `gorm:"size:36" json:"refId"`
	ActivityType ActivityType     `gorm:"index;size:32" json:"activityType"`
	Detail       string           `gorm:"type:text" json:"detail"`
	Metadata     []map[string]any `gorm:"serializer:json;type:text" json:"metadata"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func (UserActivity) TableName() string {
	return CollectionUsersActivity
}

func (a *UserActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}
