package models

import "time"

// CurrentUserView is everything known about one user, flattened for the
// session context and prompt generation.
type CurrentUserView struct {
	User
	UserProfile  *UserProfile `json:"userProfile"`
	AddressInfo  *Address     `json:"addressInfo"`
	CompanyInfo  *Company     `json:"companyInfo"`
	Roles        []RoleData   `json:"roles"`
	Permissions  []Permission `json:"permissions"`
	DanglingRefs []Ref        `json:"danglingRefs,omitempty"`
}

// HasPermission reports whether operation is in the effective set.
func (v CurrentUserView) HasPermission(operation string) bool {
	for _, p := range v.Permissions {
		if p.Operation == operation {
			return true
		}
	}
	return false
}

// RoleData is a role with its permissions resolved in place of the raw ids.
type RoleData struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	IsDefault   bool         `json:"isDefault"`
	RoleType    RoleType     `json:"roleType"`
	Module      RoleModule   `json:"module"`
	PropertyID  string       `json:"propertyId"`
	DeletedAt   *time.Time   `json:"deleted_at"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Permissions []Permission `json:"permissions"`
}

// NewRoleData projects r with the given resolved permissions.
func NewRoleData(r Role, permissions []Permission) RoleData {
	if permissions == nil {
		permissions = []Permission{}
	}
	return RoleData{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsDefault:   r.IsDefault,
		RoleType:    r.RoleType,
		Module:      r.Module,
		PropertyID:  r.PropertyID,
		DeletedAt:   r.DeletedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Permissions: permissions,
	}
}

// AssignmentView is an assignment with its role and property attached.
type AssignmentView struct {
	UserRoleAssignment
	RoleData     *Role     `json:"roleData"`
	PropertyData *Property `json:"propertyData"`
}

// UserFilter narrows the company users page.
type UserFilter struct {
	Skip           int
	Limit          int
	Search         string
	SortBy         string
	SortOrder      string
	UserType       UserType
	IncludeDeleted bool
}

type Pagination struct {
	TotalDocs   int64 `json:"totalDocs"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	Skip        int   `json:"skip"`
	TotalPages  int   `json:"totalPages"`
}

// NewPagination derives page numbers from skip/limit and the total.
func NewPagination(total int64, skip, limit int) Pagination {
	p := Pagination{TotalDocs: total, Limit: limit, Skip: skip}
	if limit > 0 {
		p.CurrentPage = skip/limit + 1
		p.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return p
}

type CompanyUsersPage struct {
	Pagination Pagination       `json:"pagination"`
	Data       []CompanyUserRow `json:"data"`
}

// CompanyUserRow is one enriched row of the company users page.
type CompanyUserRow struct {
	ID              string               `json:"id"`
	FirstName       string               `json:"firstName"`
	LastName        string               `json:"lastName"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone"`
	UserType        UserType             `json:"userType"`
	Status          UserStatus           `json:"status"`
	Address         *Address             `json:"address"`
	TenancyContract *TenancyContractView `json:"tenancyContract"`
	UserRoles       []UserRoleSummary    `json:"userRoles"`
	Skills          StringList           `json:"skills"`
	Specializations StringList           `json:"specializations"`
	CompanyInfo     *CompanySummary      `json:"companyInfo"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	AwayCompanyName string               `json:"awayCompanyName"`
	AwayCompanyURL  string               `json:"awayCompanyUrl"`
	PropertyCount   int64                `json:"propertyCount"`
	ActiveJobCount  int64                `json:"activeJobCount"`
}

type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PersonSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Summary projects the public identity fields of u.
func (u User) Summary() PersonSummary {
	return PersonSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Phone: u.Phone}
}

type TenancyContractView struct {
	TenancyContract
	Property *PropertyView `json:"property"`
}

type PropertyView struct {
	Property
	Address  *Address      `json:"address"`
	Building *BuildingView `json:"building"`
}

type BuildingView struct {
	Building
	Owner *PersonSummary `json:"owner"`
}

type UserRoleSummary struct {
	ID         string       `json:"id"`
	RoleID     string       `json:"roleId"`
	PropertyID string       `json:"propertyId"`
	RoleInfo   *RoleSummary `json:"roleInfo"`
}

type RoleSummary struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Permissions []PermissionName `json:"permissions"`
}

type PermissionName struct {
	Name string `json:"name"`
}

// CompanyView is a company with its address, owner and owner profile.
type CompanyView struct {
	Company
	Address     *Address     `json:"address"`
	OwnerInfo   *User        `json:"ownerInfo"`
	UserProfile *UserProfile `json:"userProfile"`
}

// PropertyInfo is a company property with its tenancy contracts and tenants.
type PropertyInfo struct {
	Property
	TenancyContracts []TenancyContractWithUser `json:"tenancyContracts"`
}

type TenancyContractWithUser struct {
	TenancyContract
	UserDetails *PersonSummary `json:"userDetails"`
}

// TenantDetails is a tenant with active contracts and the jobs on those
// properties.
type TenantDetails struct {
	User
	TenancyContracts []TenancyContractView `json:"tenancyContracts"`
	Jobs             []Job                 `json:"jobs"`
}
