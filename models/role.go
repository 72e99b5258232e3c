package models

import (
	"time"

	"gorm.io/gorm"
)

type RoleType string

const (
	RoleTypeMain  RoleType = "MAIN"
	RoleTypeExtra RoleType = "EXTRA"
)

type RoleModule string

const (
	RoleModuleProperty RoleModule = "PROPERTY"
	RoleModuleTenant   RoleModule = "TENANT"
)

// Role groups permissions. PermissionIDs are weak references into
// user_permissions, kept in insertion order.
type Role struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Name          string     `gorm:"index;not null" json:"name"`
	Description   string     `json:"description,omitempty"`
	IsDefault     bool       `json:"isDefault"`
	PermissionIDs StringList `gorm:"serializer:json;type:text" json:"permissionIds"`
	RoleType      RoleType   `gorm:"size:16" json:"roleType"`
	Module        RoleModule `gorm:"size:16" json:"module"`
	PropertyID    string     `gorm:"size:36" json:"propertyId"`
	DeletedAt     *time.Time `gorm:"index" json:"deleted_at"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (Role) TableName() string {
	return CollectionRoles
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}

// PermissionRefs returns the role's permission references in order.
func (r Role) PermissionRefs() []Ref {
	refs := make([]Ref, 0, len(r.PermissionIDs))
	for _, id := range r.PermissionIDs {
		refs = append(refs, RefTo(CollectionPermissions, id))
	}
	return refs
}

type RolePatch struct {
	Name          Optional[string]     `json:"name"`
	Description   Optional[string]     `json:"description"`
	IsDefault     Optional[bool]       `json:"isDefault"`
	PermissionIDs ListUpdate           `json:"permissionIds"`
	RoleType      Optional[RoleType]   `json:"roleType"`
	Module        Optional[RoleModule] `json:"module"`
	PropertyID    Optional[string]     `json:"propertyId"`
	DeletedAt     Optional[time.Time]  `json:"deleted_at"`
}

func (p RolePatch) Apply(r *Role) []string {
	var c changes
	setField(&c, p.Name, &r.Name, "name")
	setField(&c, p.Description, &r.Description, "description")
	setField(&c, p.IsDefault, &r.IsDefault, "is_default")
	setList(&c, p.PermissionIDs, &r.PermissionIDs, "permission_ids")
	setField(&c, p.RoleType, &r.RoleType, "role_type")
	setField(&c, p.Module, &r.Module, "module")
	setField(&c, p.PropertyID, &r.PropertyID, "property_id")
	setPtrField(&c, p.DeletedAt, &r.DeletedAt, "deleted_at")
	return c
}

// Permission is a single grantable operation. Operation is the seeding key.
type Permission struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `json:"name"`
	Operation   string     `gorm:"index;not null" json:"operation"`
	Description string     `json:"description"`
	DeletedAt   *time.Time `gorm:"index" json:"deleted_at"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Permission) TableName() string {
	return CollectionPermissions
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

type PermissionPatch struct {
	Name        Optional[string]    `json:"name"`
	Operation   Optional[string]    `json:"operation"`
	Description Optional[string]    `json:"description"`
	DeletedAt   Optional[time.Time] `json:"deleted_at"`
}

func (pp PermissionPatch) Apply(p *Permission) []string {
	var c changes
	setField(&c, pp.Name, &p.Name, "name")
	setField(&c, pp.Operation, &p.Operation, "operation")
	setField(&c, pp.Description, &p.Description, "description")
	setPtrField(&c, pp.DeletedAt, &p.DeletedAt, "deleted_at")
	return c
}

// UserRoleAssignment links a user to a role, optionally scoped to a
// property. Both ids are weak references.
type UserRoleAssignment struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	UserID     string     `gorm:"index;size:36" json:"userId"`
	RoleID     string     `gorm:"index;size:36" json:"roleId"`
	PropertyID string     `gorm:"size:36" json:"propertyId"`
	DeletedAt  *time.Time `gorm:"index" json:"deleted_at"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (UserRoleAssignment) TableName() string {
	return CollectionUserRoles
}

func (a *UserRoleAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

func (a UserRoleAssignment) RoleRef() Ref     { return RefTo(CollectionRoles, a.RoleID) }
func (a UserRoleAssignment) PropertyRef() Ref { return RefTo(CollectionProperties, a.PropertyID) }

type AssignmentPatch struct {
	UserID     Optional[string]    `json:"userId"`
	RoleID     Optional[string]    `json:"roleId"`
	PropertyID Optional[string]    `json:"propertyId"`
	DeletedAt  Optional[time.Time] `json:"deleted_at"`
}

func (p AssignmentPatch) Apply(a *UserRoleAssignment) []string {
	var c changes
	setField(&c, p.UserID, &a.UserID, "user_id")
	setField(&c, p.RoleID, &a.RoleID, "role_id")
	setField(&c, p.PropertyID, &a.PropertyID, "property_id")
	setPtrField(&c, p.DeletedAt, &a.DeletedAt, "deleted_at")
	return c
}
