package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents the central user entity for logic and database structure.
// Deletion is soft: IsActive flips to false and DeletedAt is stamped, the row stays.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName    string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Patronymic   string     `gorm:"type:varchar(100);default:''" json:"patronymic"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"` // Omit hash from JSON requests/responses
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	DeletedAt    *time.Time `json:"-"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null" json:"role_id"`
	Role         Role       `gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT" json:"role"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// FullName joins last name, first name and patronymic, skipping empty parts
func (u *User) FullName() string {
	parts := []string{u.LastName, u.FirstName}
	if u.Patronymic != "" {
		parts = append(parts, u.Patronymic)
	}
	return strings.Join(parts, " ")
}

// OwnerID makes User its own owner for access checks
func (u *User) OwnerID() uuid.UUID {
	return u.ID
}
