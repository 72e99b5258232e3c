package models

import (
	"time"

	"gorm.io/gorm"
)

type TaxClassification string

const (
	TaxClassificationIndividual TaxClassification = "INDIVIDUAL"
	TaxClassificationGovernment TaxClassification = "GOVERNMENT"
)

type TaxInformation struct {
	ID                   string            `gorm:"primaryKey;size:36" json:"id"`
	UserID               string            `gorm:"index;size:36" json:"userId"`
	CountryOfCitizenship string            `json:"countryOfCitizenship"`
	TaxClassification    TaxClassification `gorm:"size:16" json:"taxClassification"`
	LegalName            string            `json:"legalName"`
	VatID                string            `json:"vatId"`
	DateOfBirth          string            `json:"dateOfBirth"`
	City                 string            `json:"city"`
	PostalCode           string            `json:"postalCode"`
	TaxIdentificationNum string            `json:"taxIdentificationNum"`
	Country              string            `json:"country"`
	AddressID            string            `gorm:"size:36" json:"addressId"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

func (TaxInformation) TableName() string {
	return CollectionTaxInformation
}

func (t *TaxInformation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = newID()
	}
	return nil
}
