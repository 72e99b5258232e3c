package models

import (
	"time"

	"gorm.io/gorm"
)

type AddressType string

const (
	AddressTypeHome AddressType = "HOME"
	AddressTypeWork AddressType = "WORK"
	AddressTypeJob  AddressType = "JOB"
)

// Address is a postal address. RefID optionally points back at the owning
// user, company or property.
type Address struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	RefID       string      `gorm:"index;size:36" json:"refId"`
	Tag         string      `json:"tag"`
	AddressType AddressType `gorm:"size:16" json:"addressType"`
	MainStreet  string      `json:"mainStreet"`
	Building    string      `json:"building"`
	Country     string      `json:"country"`
	City        string      `json:"city"`
	PostalCode  string      `json:"postalCode"`
	Timezone    string      `json:"timezone"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Province    string      `json:"province"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (Address) TableName() string {
	return CollectionAddresses
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

type AddressPatch struct {
	RefID       Optional[string]      `json:"refId"`
	Tag         Optional[string]      `json:"tag"`
	AddressType Optional[AddressType] `json:"addressType"`
	MainStreet  Optional[string]      `json:"mainStreet"`
	Building    Optional[string]      `json:"building"`
	Country     Optional[string]      `json:"country"`
	City        Optional[string]      `json:"city"`
	PostalCode  Optional[string]      `json:"postalCode"`
	Timezone    Optional[string]      `json:"timezone"`
	Latitude    Optional[float64]     `json:"latitude"`
	Longitude   Optional[float64]     `json:"longitude"`
	Province    Optional[string]      `json:"province"`
}

func (p AddressPatch) Apply(a *Address) []string {
	var c changes
	setField(&c, p.RefID, &a.RefID, "ref_id")
	setField(&c, p.Tag, &a.Tag, "tag")
	setField(&c, p.AddressType, &a.AddressType, "address_type")
	setField(&c, p.MainStreet, &a.MainStreet, "main_street")
	setField(&c, p.Building, &a.Building, "building")
	setField(&c, p.Country, &a.Country, "country")
	setField(&c, p.City, &a.City, "city")
	setField(&c, p.PostalCode, &a.PostalCode, "postal_code")
	setField(&c, p.Timezone, &a.Timezone, "timezone")
	setField(&c, p.Latitude, &a.Latitude, "latitude")
	setField(&c, p.Longitude, &a.Longitude, "longitude")
	setField(&c, p.Province, &a.Province, "province")
	return c
}
