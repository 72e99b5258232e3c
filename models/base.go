package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Collection (table) names. A Ref names one of these.
const (
	CollectionUsers                  = "users"
	CollectionUserProfiles           = "user_profiles"
	CollectionAddresses              = "address"
	CollectionCompanies              = "companies"
	CollectionCompanyCategories      = "categories_companies"
	CollectionRoles                  = "roles"
	CollectionPermissions            = "user_permissions"
	CollectionUserRoles              = "user_roles"
	CollectionTaxInformation         = "tax_informations"
	CollectionUserPrompts            = "user_prompts"
	CollectionUserPromptMessages     = "user_prompt_messages"
	CollectionCategoryPrompts        = "category_prompts"
	CollectionCategoryPromptMessages = "category_prompt_messages"
	CollectionUsersActivity          = "users_activity"

	// Owned by the property and job services, read here for enrichment.
	CollectionProperties       = "properties"
	CollectionTenancyContracts = "tenancy_contracts"
	CollectionBuildings        = "buildings"
	CollectionUserProperties   = "user_properties"
	CollectionJobs             = "jobs"
)

// Ref is a typed weak reference to a record in another collection. The
// store does not enforce it; a Ref whose ID matches nothing is dangling.
type Ref struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

// RefTo builds a Ref.
func RefTo(collection, id string) Ref {
	return Ref{Collection: collection, ID: id}
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s", r.Collection, r.ID)
}

func newID() string {
	return uuid.NewString()
}

// AllModels lists every model for AutoMigrate.
func AllModels() []any {
	return []any{
		&User{},
		&UserProfile{},
		&Address{},
		&Company{},
		&CompanyCategory{},
		&Role{},
		&Permission{},
		&UserRoleAssignment{},
		&TaxInformation{},
		&UserPrompt{},
		&UserPromptMessage{},
		&CategoryPrompt{},
		&CategoryPromptMessage{},
		&UserActivity{},
		&Property{},
		&TenancyContract{},
		&Building{},
		&UserProperty{},
		&Job{},
	}
}
