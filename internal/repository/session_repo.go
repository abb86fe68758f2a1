package repository

import (
	"backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// SessionRepository defines the interface for data access of login sessions.
// Token uniqueness is enforced by the store's unique index; a collision on
// insert surfaces as a storage error.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	// GetByToken returns the session with its user and role preloaded.
	// gorm.ErrRecordNotFound when no such token exists.
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	// Invalidate flips is_valid to false for a currently valid session.
	// gorm.ErrRecordNotFound when no valid session holds the token, which makes
	// a repeated invalidation report "no active session" instead of flipping twice.
	Invalidate(ctx context.Context, token string) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository returns a new instance of SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Role").
		First(&session, "session_id = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Invalidate(ctx context.Context, token string) error {
	var session model.Session
	err := r.db.WithContext(ctx).
		First(&session, "session_id = ? AND is_valid = ?", token, true).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&session).
		Update("is_valid", false).Error
}
