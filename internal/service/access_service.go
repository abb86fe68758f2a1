package service

import (
	"backend/internal/access"
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type RoleRequest struct {
	Name string `json:"name" binding:"required"`
}

type ElementRequest struct {
	Name string `json:"name" binding:"required"`
}

type RuleRequest struct {
	RoleID    string `json:"role_id" binding:"required,uuid"`
	ElementID string `json:"element_id" binding:"required,uuid"`

	CanReadOwn   bool `json:"can_read_own"`
	CanReadAll   bool `json:"can_read_all"`
	CanCreate    bool `json:"can_create"`
	CanUpdateOwn bool `json:"can_update_own"`
	CanUpdateAll bool `json:"can_update_all"`
	CanDeleteOwn bool `json:"can_delete_own"`
	CanDeleteAll bool `json:"can_delete_all"`
}

type RuleResponse struct {
	ID          uuid.UUID `json:"id"`
	RoleID      uuid.UUID `json:"role_id"`
	RoleName    string    `json:"role_name"`
	ElementID   uuid.UUID `json:"element_id"`
	ElementName string    `json:"element_name"`

	CanReadOwn   bool `json:"can_read_own"`
	CanReadAll   bool `json:"can_read_all"`
	CanCreate    bool `json:"can_create"`
	CanUpdateOwn bool `json:"can_update_own"`
	CanUpdateAll bool `json:"can_update_all"`
	CanDeleteOwn bool `json:"can_delete_own"`
	CanDeleteAll bool `json:"can_delete_all"`
}

// AccessAdminService defines the administrative CRUD over roles, business
// elements and access rules. All operations sit behind the admin guard.
type AccessAdminService interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (*model.Role, error)
	CreateRole(ctx context.Context, req RoleRequest) (*model.Role, error)
	UpdateRole(ctx context.Context, id uuid.UUID, req RoleRequest) (*model.Role, error)
	DeleteRole(ctx context.Context, id uuid.UUID) error

	ListElements(ctx context.Context) ([]model.BusinessElement, error)
	GetElement(ctx context.Context, id uuid.UUID) (*model.BusinessElement, error)
	CreateElement(ctx context.Context, req ElementRequest) (*model.BusinessElement, error)
	UpdateElement(ctx context.Context, id uuid.UUID, req ElementRequest) (*model.BusinessElement, error)
	DeleteElement(ctx context.Context, id uuid.UUID) error

	ListRules(ctx context.Context) ([]RuleResponse, error)
	GetRule(ctx context.Context, id uuid.UUID) (*RuleResponse, error)
	CreateRule(ctx context.Context, req RuleRequest) (*RuleResponse, error)
	UpdateRule(ctx context.Context, id uuid.UUID, req RuleRequest) (*RuleResponse, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

type accessAdminService struct {
	roles    repository.RoleRepository
	elements repository.ElementRepository
	rules    repository.RuleRepository
}

func NewAccessAdminService(
	roles repository.RoleRepository,
	elements repository.ElementRepository,
	rules repository.RuleRepository,
) AccessAdminService {
	return &accessAdminService{roles: roles, elements: elements, rules: rules}
}

// --- Roles ---

func (s *accessAdminService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.roles.ListAll(ctx)
}

func (s *accessAdminService) GetRole(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "role not found")
	}
	return role, nil
}

func (s *accessAdminService) CreateRole(ctx context.Context, req RoleRequest) (*model.Role, error) {
	role := &model.Role{Name: req.Name}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, access.ErrValidation("role name must be unique")
	}
	return role, nil
}

func (s *accessAdminService) UpdateRole(ctx context.Context, id uuid.UUID, req RoleRequest) (*model.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "role not found")
	}
	role.Name = req.Name
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, access.ErrValidation("role name must be unique")
	}
	return role, nil
}

func (s *accessAdminService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "role not found")
	}
	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return access.ErrValidation("role is still referenced by users or rules")
		}
		return err
	}
	return nil
}

// --- Business elements ---

func (s *accessAdminService) ListElements(ctx context.Context) ([]model.BusinessElement, error) {
	return s.elements.ListAll(ctx)
}

func (s *accessAdminService) GetElement(ctx context.Context, id uuid.UUID) (*model.BusinessElement, error) {
	element, err := s.elements.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "element not found")
	}
	return element, nil
}

func (s *accessAdminService) CreateElement(ctx context.Context, req ElementRequest) (*model.BusinessElement, error) {
	element := &model.BusinessElement{Name: req.Name}
	if err := s.elements.Create(ctx, element); err != nil {
		return nil, access.ErrValidation("element name must be unique")
	}
	return element, nil
}

func (s *accessAdminService) UpdateElement(ctx context.Context, id uuid.UUID, req ElementRequest) (*model.BusinessElement, error) {
	element, err := s.elements.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "element not found")
	}
	element.Name = req.Name
	if err := s.elements.Update(ctx, element); err != nil {
		return nil, access.ErrValidation("element name must be unique")
	}
	return element, nil
}

func (s *accessAdminService) DeleteElement(ctx context.Context, id uuid.UUID) error {
	if _, err := s.elements.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "element not found")
	}
	return s.elements.Delete(ctx, id)
}

// --- Rules ---

func (s *accessAdminService) ListRules(ctx context.Context) ([]RuleResponse, error) {
	rules, err := s.rules.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]RuleResponse, 0, len(rules))
	for i := range rules {
		responses = append(responses, mapRuleResponse(&rules[i]))
	}
	return responses, nil
}

func (s *accessAdminService) GetRule(ctx context.Context, id uuid.UUID) (*RuleResponse, error) {
	rule, err := s.rules.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "rule not found")
	}
	resp := mapRuleResponse(rule)
	return &resp, nil
}

func (s *accessAdminService) CreateRule(ctx context.Context, req RuleRequest) (*RuleResponse, error) {
	rule, err := s.buildRule(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, access.ErrValidation("a rule for this role and element already exists")
	}
	loaded, err := s.rules.FindByID(ctx, rule.ID)
	if err != nil {
		return nil, err
	}
	resp := mapRuleResponse(loaded)
	return &resp, nil
}

func (s *accessAdminService) UpdateRule(ctx context.Context, id uuid.UUID, req RuleRequest) (*RuleResponse, error) {
	rule, err := s.rules.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "rule not found")
	}

	updated, err := s.buildRule(ctx, req)
	if err != nil {
		return nil, err
	}
	updated.ID = rule.ID
	updated.CreatedAt = rule.CreatedAt

	if err := s.rules.Update(ctx, updated); err != nil {
		return nil, access.ErrValidation("a rule for this role and element already exists")
	}
	loaded, err := s.rules.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapRuleResponse(loaded)
	return &resp, nil
}

func (s *accessAdminService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if _, err := s.rules.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "rule not found")
	}
	return s.rules.Delete(ctx, id)
}

// buildRule validates the referenced role and element and assembles the row
func (s *accessAdminService) buildRule(ctx context.Context, req RuleRequest) (*model.AccessRule, error) {
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return nil, access.ErrValidation("invalid role id")
	}
	elementID, err := uuid.Parse(req.ElementID)
	if err != nil {
		return nil, access.ErrValidation("invalid element id")
	}

	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return nil, notFoundOr(err, "role not found")
	}
	if _, err := s.elements.FindByID(ctx, elementID); err != nil {
		return nil, notFoundOr(err, "element not found")
	}

	return &model.AccessRule{
		RoleID:       roleID,
		ElementID:    elementID,
		CanReadOwn:   req.CanReadOwn,
		CanReadAll:   req.CanReadAll,
		CanCreate:    req.CanCreate,
		CanUpdateOwn: req.CanUpdateOwn,
		CanUpdateAll: req.CanUpdateAll,
		CanDeleteOwn: req.CanDeleteOwn,
		CanDeleteAll: req.CanDeleteAll,
	}, nil
}

func mapRuleResponse(rule *model.AccessRule) RuleResponse {
	return RuleResponse{
		ID:           rule.ID,
		RoleID:       rule.RoleID,
		RoleName:     rule.Role.Name,
		ElementID:    rule.ElementID,
		ElementName:  rule.Element.Name,
		CanReadOwn:   rule.CanReadOwn,
		CanReadAll:   rule.CanReadAll,
		CanCreate:    rule.CanCreate,
		CanUpdateOwn: rule.CanUpdateOwn,
		CanUpdateAll: rule.CanUpdateAll,
		CanDeleteOwn: rule.CanDeleteOwn,
		CanDeleteAll: rule.CanDeleteAll,
	}
}

// notFoundOr maps a gorm missing-record error to the 404 taxonomy entry
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return access.ErrNotFound(message)
	}
	return err
}
