package models

import "time"

// The records below belong to the property and job services. This service
// only reads them to enrich user views; ids are assigned by their owners.

type Property struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CompanyID  string    `gorm:"index;size:36" json:"companyId"`
	AddressID  string    `gorm:"size:36" json:"addressId"`
	BuildingID string    `gorm:"size:36" json:"buildingId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Property) TableName() string { return CollectionProperties }

type TenancyContractStatus string

const (
	TenancyContractActive  TenancyContractStatus = "ACTIVE"
	TenancyContractEnded   TenancyContractStatus = "ENDED"
	TenancyContractPending TenancyContractStatus = "PENDING"
)

type TenancyContract struct {
	ID         string                `gorm:"primaryKey;size:36" json:"id"`
	UserID     string                `gorm:"index;size:36" json:"userId"`
	PropertyID string                `gorm:"index;size:36" json:"propertyId"`
	Status     TenancyContractStatus `gorm:"size:16" json:"status"`
	StartDate  time.Time             `json:"startDate"`
	EndDate    *time.Time            `json:"endDate"`
	Rent       float64               `json:"rent"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

func (TenancyContract) TableName() string { return CollectionTenancyContracts }

type Building struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string    `gorm:"size:36" json:"ownerId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Building) TableName() string { return CollectionBuildings }

type UserProperty struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"index;size:36" json:"userId"`
	PropertyID string    `gorm:"index;size:36" json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (UserProperty) TableName() string { return CollectionUserProperties }

type JobStatus string

const (
	JobStatusActive    JobStatus = "ACTIVE"
	JobStatusCompleted JobStatus = "COMPLETED"
)

type Job struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Title      string    `json:"title"`
	PropertyID string    `gorm:"index;size:36" json:"propertyId"`
	AssignedTo string    `gorm:"index;size:36" json:"assignedTo"`
	Status     JobStatus `gorm:"index;size:16" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Job) TableName() string { return CollectionJobs }
