package models

// EmailMessage is an outgoing email.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
	From    string `json:"from"`
}

// EditProfileInput updates a user, their profile and optionally a new
// address and the company name in one go. Profile fields are read from the
// same JSON object.
type EditProfileInput struct {
	ProfilePatch
	FirstName   Optional[string] `json:"firstName"`
	LastName    Optional[string] `json:"lastName"`
	ImageURL    Optional[string] `json:"imageUrl"`
	CompanyName Optional[string] `json:"companyName"`
	Address     *Address         `json:"address"`
}

// UserPatch returns the user-level part of the edit.
func (in EditProfileInput) UserPatch() UserPatch {
	return UserPatch{FirstName: in.FirstName, LastName: in.LastName, ImageURL: in.ImageURL}
}

// NewUser is the body of sign-up, invite and create-user requests.
type NewUser struct {
	Email                      string     `json:"email" binding:"required,email"`
	Password                   string     `json:"password"`
	UserType                   UserType   `json:"userType" binding:"required"`
	Username                   string     `json:"username"`
	FirstName                  string     `json:"firstName"`
	LastName                   string     `json:"lastName"`
	Phone                      string     `json:"phone"`
	PhoneNumber                string     `json:"phoneNumber"`
	CompanyID                  string     `json:"companyId"`
	AddressID                  string     `json:"addressId"`
	ImageURL                   string     `json:"imageUrl"`
	ProviderID                 string     `json:"providerId"`
	FirebaseUID                string     `json:"firebaseUid"`
	Skills                     StringList `json:"skills"`
	Specializations            StringList `json:"specializations"`
	IsContractorCompanyManaged bool       `json:"isContractorCompanyManaged"`
}

// User builds the record for in without a password.
func (in NewUser) User() *User {
	phone := in.Phone
	if phone == "" {
		phone = in.PhoneNumber
	}
	return &User{
		Email:           in.Email,
		UserType:        in.UserType,
		Username:        in.Username,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Phone:           phone,
		CompanyID:       in.CompanyID,
		AddressID:       in.AddressID,
		ImageURL:        in.ImageURL,
		ProviderID:      in.ProviderID,
		FirebaseUID:     in.FirebaseUID,
		Skills:          in.Skills,
		Specializations: in.Specializations,
	}
}
