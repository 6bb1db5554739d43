package models

// RoleName is the closed enumeration of role identifiers. The rows
// themselves are reference data seeded by migrations; the core never
// creates roles at runtime.
type RoleName string

const (
	RoleChat         RoleName = "chat"
	RoleGuest        RoleName = "guest"
	RoleOwner        RoleName = "owner"
	RoleUser         RoleName = "user"
	RoleGlobalAdmin  RoleName = "global_admin"
	RoleContentAdmin RoleName = "content_admin"
)

// RoleGroupName is the coarse grouping of roles.
type RoleGroupName string

const (
	RoleGroupChats          RoleGroupName = "chats"
	RoleGroupGuests         RoleGroupName = "guests"
	RoleGroupUsers          RoleGroupName = "users"
	RoleGroupAdministrators RoleGroupName = "administrators"
)

// Role is one row of the static role enumeration.
type Role struct {
	ID            int64    `json:"-"`
	Name          RoleName `json:"name"`
	TitleRu       string   `json:"title_ru"`
	DescriptionRu string   `json:"description_ru"`
	TitleEn       string   `json:"title_en"`
	DescriptionEn string   `json:"description_en"`
}

// TableName returns the name of the database table
// associated with the Role model.
func (r Role) TableName() string {
	return "roles"
}

// RoleGroup is one row of the static role-group enumeration.
// Each role belongs to exactly one group.
type RoleGroup struct {
	ID            int64         `json:"-"`
	Name          RoleGroupName `json:"name"`
	TitleRu       string        `json:"title_ru"`
	DescriptionRu string        `json:"description_ru"`
	TitleEn       string        `json:"title_en"`
	DescriptionEn string        `json:"description_en"`
}

// TableName returns the name of the database table
// associated with the RoleGroup model.
func (g RoleGroup) TableName() string {
	return "roles_groups"
}
