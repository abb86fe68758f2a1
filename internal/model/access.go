package model

import (
	"time"

	"github.com/google/uuid"
)

// Well-known role names referenced by middleware and seed data
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

// Role identifies a group of users sharing the same access rules
type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BusinessElement is a named resource type protected by access rules, e.g. "user" or "order"
type BusinessElement struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccessRule holds the capability flags of one role for one business element.
// At most one rule exists per (role, element) pair; a missing rule means no access.
// The own/all flags are independent grants — "all" does not imply "own".
type AccessRule struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoleID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rules_role_element" json:"role_id"`
	Role      Role            `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"-"`
	ElementID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rules_role_element" json:"element_id"`
	Element   BusinessElement `gorm:"foreignKey:ElementID;constraint:OnDelete:CASCADE" json:"-"`

	CanReadOwn   bool `gorm:"default:false" json:"can_read_own"`
	CanReadAll   bool `gorm:"default:false" json:"can_read_all"`
	CanCreate    bool `gorm:"default:false" json:"can_create"`
	CanUpdateOwn bool `gorm:"default:false" json:"can_update_own"`
	CanUpdateAll bool `gorm:"default:false" json:"can_update_all"`
	CanDeleteOwn bool `gorm:"default:false" json:"can_delete_own"`
	CanDeleteAll bool `gorm:"default:false" json:"can_delete_all"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
