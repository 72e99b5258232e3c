package models

import (
	"time"

	"gorm.io/gorm"
)

type Visibility string

const (
	VisibilityPublic             Visibility = "PUBLIC"
	VisibilityOnlyLightworkUsers Visibility = "ONLY_LIGHTWORK_USERS"
	VisibilityPrivate            Visibility = "PRIVATE"
)

// ProfileCategory is a tag group embedded in a profile.
type ProfileCategory struct {
	Name    string   `json:"name"`
	Content []string `json:"content"`
}

// UserProfile is the one-per-user public profile. UserID is a weak
// reference to users.
type UserProfile struct {
	ID                        string            `gorm:"primaryKey;size:36" json:"id"`
	UserID                    string            `gorm:"uniqueIndex;size:36" json:"userId"`
	Visibility                Visibility        `gorm:"size:32" json:"visibility"`
	IDVerification            bool              `json:"idVerification"`
	Skills                    StringList        `gorm:"serializer:json;type:text" json:"skills"`
	AreasCovered              StringList        `gorm:"serializer:json;type:text" json:"areasCovered"`
	ProfileCompletenessNum    float64           `json:"profile_completeness_num"`
	IsOnline                  bool              `json:"isOnline"`
	HourlyRate                float64           `json:"hourlyRate"`
	MileRadiusPref            float64           `json:"mileRadiusPref"`
	Bio                       string            `gorm:"type:text" json:"bio"`
	FormattedAddress          string            `json:"formattedAddress"`
	AssistantPhoneNo          string            `gorm:"index" json:"assistantPhoneNo"`
	AssistantEmail            string            `gorm:"index" json:"assistantEmail"`
	AssistantID               string            `json:"assistantId"`
	ImageURL                  string            `json:"imageUrl"`
	AddressID                 string            `gorm:"size:36" json:"addressId"`
	CompanyID                 string            `gorm:"size:36" json:"companyId"`
	VisualVerification        bool              `json:"visualVerification"`
	QualificationVerification bool              `json:"qualificationVerification"`
	QualificationName         string            `json:"qualificationName"`
	ContractPreference        string            `json:"contractPreference"`
	BusinessDays              StringList        `gorm:"serializer:json;type:text" json:"businessDays"`
	BusinessTimes             StringList        `gorm:"serializer:json;type:text" json:"businessTimes"`
	Categories                []ProfileCategory `gorm:"serializer:json;type:text" json:"categories"`
	AvgRating                 float64           `json:"avgRating"`
	Schedules                 StringList        `gorm:"serializer:json;type:text" json:"schedules"`
	ExperienceNum             int               `json:"experienceNum"`
	TotalJobs                 int               `json:"totalJobs"`
	ReasonOfJoining           string            `json:"reasonOfJoining"`
	CallOutFee                string            `json:"callOutFee"`
	YearsInBusiness           int               `json:"yearsInBusiness"`
	Language                  string            `json:"language"`
	CreatedAt                 time.Time         `json:"createdAt"`
	UpdatedAt                 time.Time         `json:"updatedAt"`
}

func (UserProfile) TableName() string {
	return CollectionUserProfiles
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

// ProfilePatch is a partial profile update.
type ProfilePatch struct {
	Visibility                Optional[Visibility]        `json:"visibility"`
	IDVerification            Optional[bool]              `json:"idVerification"`
	Skills                    ListUpdate                  `json:"skills"`
	AreasCovered              ListUpdate                  `json:"areasCovered"`
	ProfileCompletenessNum    Optional[float64]           `json:"profile_completeness_num"`
	IsOnline                  Optional[bool]              `json:"isOnline"`
	HourlyRate                Optional[float64]           `json:"hourlyRate"`
	MileRadiusPref            Optional[float64]           `json:"mileRadiusPref"`
	Bio                       Optional[string]            `json:"bio"`
	FormattedAddress          Optional[string]            `json:"formattedAddress"`
	AssistantPhoneNo          Optional[string]            `json:"assistantPhoneNo"`
	AssistantEmail            Optional[string]            `json:"assistantEmail"`
	AssistantID               Optional[string]            `json:"assistantId"`
	ImageURL                  Optional[string]            `json:"imageUrl"`
	AddressID                 Optional[string]            `json:"addressId"`
	CompanyID                 Optional[string]            `json:"companyId"`
	VisualVerification        Optional[bool]              `json:"visualVerification"`
	QualificationVerification Optional[bool]              `json:"qualificationVerification"`
	QualificationName         Optional[string]            `json:"qualificationName"`
	ContractPreference        Optional[string]            `json:"contractPreference"`
	BusinessDays              ListUpdate                  `json:"businessDays"`
	BusinessTimes             ListUpdate                  `json:"businessTimes"`
	Categories                Optional[[]ProfileCategory] `json:"categories"`
	AvgRating                 Optional[float64]           `json:"avgRating"`
	Schedules                 ListUpdate                  `json:"schedules"`
	ExperienceNum             Optional[int]               `json:"experienceNum"`
	TotalJobs                 Optional[int]               `json:"totalJobs"`
	ReasonOfJoining           Optional[string]            `json:"reasonOfJoining"`
	CallOutFee                Optional[string]            `json:"callOutFee"`
	YearsInBusiness           Optional[int]               `json:"yearsInBusiness"`
	Language                  Optional[string]            `json:"language"`
}

// Apply writes the patch onto p and returns the changed columns.
func (pp ProfilePatch) Apply(p *UserProfile) []string {
	var c changes
	setField(&c, pp.Visibility, &p.Visibility, "visibility")
	setField(&c, pp.IDVerification, &p.IDVerification, "id_verification")
	setList(&c, pp.Skills, &p.Skills, "skills")
	setList(&c, pp.AreasCovered, &p.AreasCovered, "areas_covered")
	setField(&c, pp.ProfileCompletenessNum, &p.ProfileCompletenessNum, "profile_completeness_num")
	setField(&c, pp.IsOnline, &p.IsOnline, "is_online")
	setField(&c, pp.HourlyRate, &p.HourlyRate, "hourly_rate")
	setField(&c, pp.MileRadiusPref, &p.MileRadiusPref, "mile_radius_pref")
	setField(&c, pp.Bio, &p.Bio, "bio")
	setField(&c, pp.FormattedAddress, &p.FormattedAddress, "formatted_address")
	setField(&c, pp.AssistantPhoneNo, &p.AssistantPhoneNo, "assistant_phone_no")
	setField(&c, pp.AssistantEmail, &p.AssistantEmail, "assistant_email")
	setField(&c, pp.AssistantID, &p.AssistantID, "assistant_id")
	setField(&c, pp.ImageURL, &p.ImageURL, "image_url")
	setField(&c, pp.AddressID, &p.AddressID, "address_id")
	setField(&c, pp.CompanyID, &p.CompanyID, "company_id")
	setField(&c, pp.VisualVerification, &p.VisualVerification, "visual_verification")
	setField(&c, pp.QualificationVerification, &p.QualificationVerification, "qualification_verification")
	setField(&c, pp.QualificationName, &p.QualificationName, "qualification_name")
	setField(&c, pp.ContractPreference, &p.ContractPreference, "contract_preference")
	setList(&c, pp.BusinessDays, &p.BusinessDays, "business_days")
	setList(&c, pp.BusinessTimes, &p.BusinessTimes, "business_times")
	setField(&c, pp.Categories, &p.Categories, "categories")
	setField(&c, pp.AvgRating, &p.AvgRating, "avg_rating")
	setList(&c, pp.Schedules, &p.Schedules, "schedules")
	setField(&c, pp.ExperienceNum, &p.ExperienceNum, "experience_num")
	setField(&c, pp.TotalJobs, &p.TotalJobs, "total_jobs")
	setField(&c, pp.ReasonOfJoining, &p.ReasonOfJoining, "reason_of_joining")
	setField(&c, pp.CallOutFee, &p.CallOutFee, "call_out_fee")
	setField(&c, pp.YearsInBusiness, &p.YearsInBusiness, "years_in_business")
	setField(&c, pp.Language, &p.Language, "language")
	return c
}
