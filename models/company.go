package models

import (
	"time"

	"gorm.io/gorm"
)

type CompanyType string

const (
	CompanyTypeContractor         CompanyType = "CONTRACTOR"
	CompanyTypePropertyManagement CompanyType = "PROPERTY_MANAGEMENT"
	CompanyTypeSoleProprietory    CompanyType = "SOLE_PROPRIETORY"
	CompanyTypeSupplierCompany    CompanyType = "SUPPLIER_COMPANY"
)

type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusInactive CompanyStatus = "INACTIVE"
)

// Company is an organization. OwnerID, AddressID and CategoryID are weak
// references.
type Company struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	AddressID     string        `gorm:"size:36" json:"addressId"`
	OwnerID       string        `gorm:"index;size:36" json:"ownerId"`
	CategoryID    string        `gorm:"index;size:36" json:"categoryId"`
	CategoryName  string        `json:"categoryName"`
	Metadata      string        `gorm:"type:text" json:"metadata"`
	ImageURL      string        `json:"imageUrl"`
	CompanyURL    string        `json:"companyUrl"`
	Size          string        `json:"size"`
	Bio           string        `gorm:"type:text" json:"bio"`
	PhoneNumber   string        `json:"phoneNumber"`
	Name          string        `json:"name"`
	ContactNumber string        `json:"contactNumber"`
	Status        CompanyStatus `gorm:"size:16" json:"status"`
	Type          CompanyType   `gorm:"size:32" json:"type"`
	DeletedAt     *time.Time    `gorm:"index" json:"deleted_at"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (Company) TableName() string {
	return CollectionCompanies
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

func (c Company) OwnerRef() Ref   { return RefTo(CollectionUsers, c.OwnerID) }
func (c Company) AddressRef() Ref { return RefTo(CollectionAddresses, c.AddressID) }

type CompanyPatch struct {
	AddressID     Optional[string]        `json:"addressId"`
	OwnerID       Optional[string]        `json:"ownerId"`
	CategoryID    Optional[string]        `json:"categoryId"`
	CategoryName  Optional[string]        `json:"categoryName"`
	Metadata      Optional[string]        `json:"metadata"`
	ImageURL      Optional[string]        `json:"imageUrl"`
	CompanyURL    Optional[string]        `json:"companyUrl"`
	Size          Optional[string]        `json:"size"`
	Bio           Optional[string]        `json:"bio"`
	PhoneNumber   Optional[string]        `json:"phoneNumber"`
	Name          Optional[string]        `json:"name"`
	ContactNumber Optional[string]        `json:"contactNumber"`
	Status        Optional[CompanyStatus] `json:"status"`
	Type          Optional[CompanyType]   `json:"type"`
	DeletedAt     Optional[time.Time]     `json:"deleted_at"`
}

func (p CompanyPatch) Apply(co *Company) []string {
	var c changes
	setField(&c, p.AddressID, &co.AddressID, "address_id")
	setField(&c, p.OwnerID, &co.OwnerID, "owner_id")
	setField(&c, p.CategoryID, &co.CategoryID, "category_id")
	setField(&c, p.CategoryName, &co.CategoryName, "category_name")
	setField(&c, p.Metadata, &co.Metadata, "metadata")
	setField(&c, p.ImageURL, &co.ImageURL, "image_url")
	setField(&c, p.CompanyURL, &co.CompanyURL, "company_url")
	setField(&c, p.Size, &co.Size, "size")
	setField(&c, p.Bio, &co.Bio, "bio")
	setField(&c, p.PhoneNumber, &co.PhoneNumber, "phone_number")
	setField(&c, p.Name, &co.Name, "name")
	setField(&c, p.ContactNumber, &co.ContactNumber, "contact_number")
	setField(&c, p.Status, &co.Status, "status")
	setField(&c, p.Type, &co.Type, "type")
	setPtrField(&c, p.DeletedAt, &co.DeletedAt, "deleted_at")
	return c
}

// CompanyCategory classifies companies (plumbing, electrical, ...).
type CompanyCategory struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Tags      StringList `gorm:"serializer:json;type:text" json:"tags"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (CompanyCategory) TableName() string {
	return CollectionCompanyCategories
}

func (c *CompanyCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

type CompanyCategoryPatch struct {
	Name Optional[string] `json:"name"`
	Tags ListUpdate       `json:"tags"`
}

func (p CompanyCategoryPatch) Apply(cat *CompanyCategory) []string {
	var c changes
	setField(&c, p.Name, &cat.Name, "name")
	setList(&c, p.Tags, &cat.Tags, "tags")
	return c
}
