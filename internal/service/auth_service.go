package service

import (
	"backend/internal/access"
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for Request validation
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Patronymic string `json:"patronymic"`
}

// AuthService defines the interface for login, logout and registration
type AuthService interface {
	// Login verifies credentials and issues a fresh session.
	Login(ctx context.Context, req LoginRequest) (*UserResponse, *model.Session, error)
	// Logout invalidates the session behind the token. A token with no active
	// session reports a validation error, so repeated logouts surface as 400.
	Logout(ctx context.Context, token string) error
	// Register creates a user with the default "user" role. The caller's
	// create capability is checked by the handler through the decision engine.
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
}

type authService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	roles      repository.RoleRepository
	sessionTTL time.Duration
}

// NewAuthService returns a new instance of AuthService. sessionTTL bounds the
// lifetime of issued sessions (24h by default at the config layer).
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	roles repository.RoleRepository,
	sessionTTL time.Duration,
) AuthService {
	return &authService{users: users, sessions: sessions, roles: roles, sessionTTL: sessionTTL}
}

// errBadCredentials keeps unknown-email and wrong-password indistinguishable
func errBadCredentials() *access.Error {
	return &access.Error{Status: http.StatusUnauthorized, Message: "invalid email or password"}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*UserResponse, *model.Session, error) {
	user, err := s.users.GetActiveByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errBadCredentials()
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, errBadCredentials()
	}

	session := &model.Session{
		UserID:    user.ID,
		Token:     model.NewSessionToken(),
		ExpiresAt: time.Now().Add(s.sessionTTL),
		IsValid:   true,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	return mapUserResponse(user), session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.ErrValidation("no active session")
		}
		return err
	}
	return nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.users.GetActiveByEmail(ctx, req.Email); err == nil {
		return nil, access.ErrValidation("email already registered")
	}

	role, err := s.roles.GetOrCreate(ctx, model.RoleUser)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Patronymic:   req.Patronymic,
		IsActive:     true,
		RoleID:       role.ID,
		Role:         *role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapUserResponse(user), nil
}
