package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session referenced by an opaque cookie token.
// Logout flips IsValid; rows are kept for audit and never deleted.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Token     string    `gorm:"column:session_id;type:varchar(128);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsValid   bool      `gorm:"default:true" json:"is_valid"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsExpired reports whether the session can no longer authenticate a caller:
// either explicitly invalidated or past its expiry.
func (s *Session) IsExpired() bool {
	return !s.IsValid || !s.ExpiresAt.After(time.Now())
}

// NewSessionToken generates an unguessable unique token for the session cookie
func NewSessionToken() string {
	return uuid.NewString()
}
