package models

import (
	"time"

	"gorm.io/gorm"
)

// UserType is the account category. It also selects the session signing key.
type UserType string

const (
	UserTypeHomeowner        UserType = "HOMEOWNER"
	UserTypeContractor       UserType = "CONTRACTOR"
	UserTypePropertyManager  UserType = "PROPERTY_MANAGER"
	UserTypeSoleTrader       UserType = "SOLE_TRADER"
	UserTypeSuppliers        UserType = "SUPPLIERS"
	UserTypeStaffTechnicians UserType = "STAFF_TECHNICIANS"
	UserTypeTenant           UserType = "TENANT"
	UserTypeAdmin            UserType = "ADMIN"
	UserTypeAIAssistant      UserType = "AI_ASSISTANT"
)

// UserTypes lists every account category.
var UserTypes = []UserType{
	UserTypeHomeowner, UserTypeContractor, UserTypePropertyManager, UserTypeSoleTrader,
	UserTypeSuppliers, UserTypeStaffTechnicians, UserTypeTenant, UserTypeAdmin, UserTypeAIAssistant,
}

// Valid reports whether t is a known category.
func (t UserType) Valid() bool {
	for _, v := range UserTypes {
		if v == t {
			return true
		}
	}
	return false
}

// UserStatus moves INVITED -> VERIFICATION_PENDING/ACTIVE -> INACTIVE.
type UserStatus string

const (
	UserStatusInvited             UserStatus = "INVITED"
	UserStatusVerificationPending UserStatus = "VERIFICATION_PENDING"
	UserStatusActive              UserStatus = "ACTIVE"
	UserStatusInactive            UserStatus = "INACTIVE"
)

// CanLogin reports whether password login is allowed in this status.
func (s UserStatus) CanLogin() bool {
	switch s {
	case UserStatusInvited, UserStatusVerificationPending, UserStatusInactive:
		return false
	}
	return true
}

// User is an account. Password holds the bcrypt hash and is nil until the
// account has been activated.
type User struct {
	ID                   string     `gorm:"primaryKey;size:36" json:"id"`
	Username             string     `json:"username"`
	Email                string     `gorm:"uniqueIndex;not null" json:"email"`
	Password             *string    `json:"password"`
	UserType             UserType   `gorm:"index;size:32" json:"userType"`
	Status               UserStatus `gorm:"index;size:32" json:"status"`
	CompanyID            string     `gorm:"index;size:36" json:"companyId"`
	AddressID            string     `gorm:"size:36" json:"addressId"`
	ProfileID            string     `gorm:"size:36" json:"profileId"`
	TaxInfoID            string     `gorm:"size:36" json:"taxInfoId"`
	CreatedBy            string     `gorm:"size:36" json:"createdBy"`
	FirstName            string     `json:"firstName"`
	LastName             string     `json:"lastName"`
	Phone                string     `json:"phone"`
	ImageURL             string     `json:"imageUrl"`
	ProviderID           string     `json:"providerId"`
	FirebaseUID          string     `gorm:"index" json:"firebaseUid"`
	StripeConnectID      string     `gorm:"index" json:"stripeConnectId"`
	StripeConnectVerif   bool       `json:"stripeConnectVerif"`
	StripeCustomerID     string     `json:"stripeCustomerId"`
	AwayCompanyName      string     `json:"awayCompanyName"`
	AwayCompanyURL       string     `json:"awayCompanyUrl"`
	EmergencyContactName string     `json:"emergencyContactName"`
	EmergencyPhoneNumber string     `json:"emergencyPhoneNumber"`
	DateOfBirth          *time.Time `json:"dateOfBirth"`
	Skills               StringList `gorm:"serializer:json;type:text" json:"skills"`
	Specializations      StringList `gorm:"serializer:json;type:text" json:"specializations"`
	DeletedAt            *time.Time `gorm:"index" json:"deleted_at"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return CollectionUsers
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}

// Sanitized returns a copy with the password hash cleared.
func (u User) Sanitized() User {
	u.Password = nil
	return u
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u User) CompanyRef() Ref { return RefTo(CollectionCompanies, u.CompanyID) }
func (u User) AddressRef() Ref { return RefTo(CollectionAddresses, u.AddressID) }

// UserPatch is a partial update of a user. List fields carry their own
// update intent.
type UserPatch struct {
	Username             Optional[string]     `json:"username"`
	UserType             Optional[UserType]   `json:"userType"`
	Status               Optional[UserStatus] `json:"status"`
	CompanyID            Optional[string]     `json:"companyId"`
	AddressID            Optional[string]     `json:"addressId"`
	ProfileID            Optional[string]     `json:"profileId"`
	TaxInfoID            Optional[string]     `json:"taxInfoId"`
	FirstName            Optional[string]     `json:"firstName"`
	LastName             Optional[string]     `json:"lastName"`
	Phone                Optional[string]     `json:"phone"`
	ImageURL             Optional[string]     `json:"imageUrl"`
	ProviderID           Optional[string]     `json:"providerId"`
	FirebaseUID          Optional[string]     `json:"firebaseUid"`
	StripeConnectID      Optional[string]     `json:"stripeConnectId"`
	StripeConnectVerif   Optional[bool]       `json:"stripeConnectVerif"`
	StripeCustomerID     Optional[string]     `json:"stripeCustomerId"`
	AwayCompanyName      Optional[string]     `json:"awayCompanyName"`
	AwayCompanyURL       Optional[string]     `json:"awayCompanyUrl"`
	EmergencyContactName Optional[string]     `json:"emergencyContactName"`
	EmergencyPhoneNumber Optional[string]     `json:"emergencyPhoneNumber"`
	DateOfBirth          Optional[time.Time]  `json:"dateOfBirth"`
	DeletedAt            Optional[time.Time]  `json:"deleted_at"`
	Skills               ListUpdate           `json:"skills"`
	Specializations      ListUpdate           `json:"specializations"`
}

// Apply writes the patch onto u and returns the changed columns.
func (p UserPatch) Apply(u *User) []string {
	var c changes
	setField(&c, p.Username, &u.Username, "username")
	setField(&c, p.UserType, &u.UserType, "user_type")
	setField(&c, p.Status, &u.Status, "status")
	setField(&c, p.CompanyID, &u.CompanyID, "company_id")
	setField(&c, p.AddressID, &u.AddressID, "address_id")
	setField(&c, p.ProfileID, &u.ProfileID, "profile_id")
	setField(&c, p.TaxInfoID, &u.TaxInfoID, "tax_info_id")
	setField(&c, p.FirstName, &u.FirstName, "first_name")
	setField(&c, p.LastName, &u.LastName, "last_name")
	setField(&c, p.Phone, &u.Phone, "phone")
	setField(&c, p.ImageURL, &u.ImageURL, "image_url")
	setField(&c, p.ProviderID, &u.ProviderID, "provider_id")
	setField(&c, p.FirebaseUID, &u.FirebaseUID, "firebase_uid")
	setField(&c, p.StripeConnectID, &u.StripeConnectID, "stripe_connect_id")
	setField(&c, p.StripeConnectVerif, &u.StripeConnectVerif, "stripe_connect_verif")
	setField(&c, p.StripeCustomerID, &u.StripeCustomerID, "stripe_customer_id")
	setField(&c, p.AwayCompanyName, &u.AwayCompanyName, "away_company_name")
	setField(&c, p.AwayCompanyURL, &u.AwayCompanyURL, "away_company_url")
	setField(&c, p.EmergencyContactName, &u.EmergencyContactName, "emergency_contact_name")
	setField(&c, p.EmergencyPhoneNumber, &u.EmergencyPhoneNumber, "emergency_phone_number")
	setPtrField(&c, p.DateOfBirth, &u.DateOfBirth, "date_of_birth")
	setPtrField(&c, p.DeletedAt, &u.DeletedAt, "deleted_at")
	setList(&c, p.Skills, &u.Skills, "skills")
	setList(&c, p.Specializations, &u.Specializations, "specializations")
	return c
}
