package service

import (
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedService fills the database with the default roles, elements, rules and
// demo accounts. Idempotent: existing rows are left untouched.
type SeedService interface {
	SeedTestData(ctx context.Context) error
}

type seedService struct {
	roles    repository.RoleRepository
	elements repository.ElementRepository
	rules    repository.RuleRepository
	users    repository.UserRepository
}

func NewSeedService(
	roles repository.RoleRepository,
	elements repository.ElementRepository,
	rules repository.RuleRepository,
	users repository.UserRepository,
) SeedService {
	return &seedService{roles: roles, elements: elements, rules: rules, users: users}
}

type seedRule struct {
	role    string
	element string
	flags   model.AccessRule
}

func (s *seedService) SeedTestData(ctx context.Context) error {
	roleNames := []string{model.RoleAdmin, model.RoleUser, model.RoleGuest}
	roles := make(map[string]*model.Role, len(roleNames))
	for _, name := range roleNames {
		role, err := s.roles.GetOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("seed role %q: %w", name, err)
		}
		roles[name] = role
	}

	elementNames := []string{"user", "order"}
	elements := make(map[string]*model.BusinessElement, len(elementNames))
	for _, name := range elementNames {
		element, err := s.getOrCreateElement(ctx, name)
		if err != nil {
			return fmt.Errorf("seed element %q: %w", name, err)
		}
		elements[name] = element
	}

	seedRules := []seedRule{
		{model.RoleAdmin, "user", model.AccessRule{
			CanReadOwn: true, CanReadAll: true, CanCreate: true,
			CanUpdateOwn: true, CanUpdateAll: true,
			CanDeleteOwn: true, CanDeleteAll: true,
		}},
		{model.RoleUser, "user", model.AccessRule{
			CanReadOwn: true, CanReadAll: true,
			CanUpdateOwn: true, CanDeleteOwn: true,
		}},
		{model.RoleGuest, "user", model.AccessRule{
			CanCreate: true,
		}},
		{model.RoleAdmin, "order", model.AccessRule{
			CanReadOwn: true, CanReadAll: true, CanCreate: true,
			CanUpdateOwn: true, CanUpdateAll: true,
			CanDeleteOwn: true, CanDeleteAll: true,
		}},
		{model.RoleUser, "order", model.AccessRule{
			CanReadOwn: true, CanCreate: true,
		}},
	}

	for _, sr := range seedRules {
		role := roles[sr.role]
		element := elements[sr.element]

		existing, err := s.rules.GetRule(ctx, role.ID, element.Name)
		if err != nil {
			return fmt.Errorf("seed rule %s/%s: %w", sr.role, sr.element, err)
		}
		if existing != nil {
			continue
		}

		rule := sr.flags
		rule.RoleID = role.ID
		rule.ElementID = element.ID
		if err := s.rules.Create(ctx, &rule); err != nil {
			return fmt.Errorf("seed rule %s/%s: %w", sr.role, sr.element, err)
		}
	}

	seedUsers := []struct {
		email     string
		password  string
		firstName string
		lastName  string
		role      string
	}{
		{"admin@example.com", "adminpass", "Admin", "Super", model.RoleAdmin},
		{"user@example.com", "userpass", "Normal", "User", model.RoleUser},
	}

	for _, su := range seedUsers {
		if _, err := s.users.GetActiveByEmail(ctx, su.email); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed user %q: %w", su.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", su.email, err)
		}

		user := &model.User{
			Email:        su.email,
			PasswordHash: string(hash),
			FirstName:    su.firstName,
			LastName:     su.lastName,
			IsActive:     true,
			RoleID:       roles[su.role].ID,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %q: %w", su.email, err)
		}
	}

	return nil
}

func (s *seedService) getOrCreateElement(ctx context.Context, name string) (*model.BusinessElement, error) {
	element, err := s.elements.FindByName(ctx, name)
	if err == nil {
		return element, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	element = &model.BusinessElement{Name: name}
	if err := s.elements.Create(ctx, element); err != nil {
		return nil, err
	}
	return element, nil
}
