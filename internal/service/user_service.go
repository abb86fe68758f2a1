package service

import (
	"backend/internal/access"
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateUserRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Patronymic *string `json:"patronymic"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Password   *string `json:"password" binding:"omitempty,min=6"`
}

// DTO for returning User without exposing sensitive data (e.g. password hash)
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Patronymic string    `json:"patronymic"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"is_active"`
	Role       string    `json:"role"`
	CreatedAt  string    `json:"created_at"`
}

// UserService defines the interface for business logic related to User.
// Object-level operations take the caller and the prefetched rule so the
// decision engine can run next to the data load.
type UserService interface {
	ListUsers(ctx context.Context, caller access.Identity, rule *model.AccessRule, offset, limit int) ([]UserResponse, int64, error)
	GetUser(ctx context.Context, caller access.Identity, rule *model.AccessRule, id uuid.UUID) (*UserResponse, error)
	UpdateUser(ctx context.Context, caller access.Identity, rule *model.AccessRule, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, caller access.Identity, rule *model.AccessRule, id uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
}

// NewUserService returns a new instance of UserService
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Helper: parse model to standard json API response
func mapUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Patronymic: user.Patronymic,
		FullName:   user.FullName(),
		Email:      user.Email,
		IsActive:   user.IsActive,
		Role:       user.Role.Name,
		CreatedAt:  user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListUsers returns all active users when the rule grants read-all, otherwise
// just the caller's own record
func (s *userService) ListUsers(ctx context.Context, caller access.Identity, rule *model.AccessRule, offset, limit int) ([]UserResponse, int64, error) {
	if rule != nil && rule.CanReadAll {
		users, total, err := s.users.ListActive(ctx, offset, limit)
		if err != nil {
			return nil, 0, err
		}
		responses := make([]UserResponse, 0, len(users))
		for i := range users {
			responses = append(responses, *mapUserResponse(&users[i]))
		}
		return responses, total, nil
	}

	if caller.User == nil {
		return nil, 0, access.ErrUnauthenticated()
	}
	return []UserResponse{*mapUserResponse(caller.User)}, 1, nil
}

func (s *userService) GetUser(ctx context.Context, caller access.Identity, rule *model.AccessRule, id uuid.UUID) (*UserResponse, error) {
	user, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, user, rule, access.ActionRead); err != nil {
		return nil, err
	}
	return mapUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, caller access.Identity, rule *model.AccessRule, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, user, rule, access.ActionUpdate); err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.users.GetActiveByEmail(ctx, *req.Email); err == nil {
			return nil, access.ErrValidation("email already registered")
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Patronymic != nil {
		user.Patronymic = *req.Patronymic
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return mapUserResponse(user), nil
}

// DeleteUser soft-deletes: the row is kept with is_active=false and a deletion timestamp
func (s *userService) DeleteUser(ctx context.Context, caller access.Identity, rule *model.AccessRule, id uuid.UUID) error {
	user, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(caller, user, rule, access.ActionDelete); err != nil {
		return err
	}
	return s.users.SoftDelete(ctx, user)
}

func (s *userService) loadActive(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrNotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
