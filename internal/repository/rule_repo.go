package repository

import (
	"backend/internal/model"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RuleRepository defines the interface for data access of access rules.
// At most one rule exists per (role, element) pair.
type RuleRepository interface {
	// GetRule returns the rule of a role for the named resource. Absence is a
	// valid non-error result: (nil, nil) means "no access configured".
	GetRule(ctx context.Context, roleID uuid.UUID, resourceName string) (*model.AccessRule, error)
	Create(ctx context.Context, rule *model.AccessRule) error
	Update(ctx context.Context, rule *model.AccessRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AccessRule, error)
	ListAll(ctx context.Context) ([]model.AccessRule, error)
}

type ruleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) GetRule(ctx context.Context, roleID uuid.UUID, resourceName string) (*model.AccessRule, error) {
	var rule model.AccessRule
	err := r.db.WithContext(ctx).
		Joins("JOIN business_elements ON business_elements.id = access_rules.element_id").
		Where("access_rules.role_id = ? AND business_elements.name = ?", roleID, resourceName).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) Create(ctx context.Context, rule *model.AccessRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ruleRepository) Update(ctx context.Context, rule *model.AccessRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *ruleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AccessRule{}).Error
}

func (r *ruleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AccessRule, error) {
	var rule model.AccessRule
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Element").
		First(&rule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) ListAll(ctx context.Context) ([]model.AccessRule, error) {
	var rules []model.AccessRule
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Element").
		Order("created_at asc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}
