package repository

import (
	"backend/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ElementRepository defines the interface for data access of business elements
type ElementRepository interface {
	Create(ctx context.Context, element *model.BusinessElement) error
	Update(ctx context.Context, element *model.BusinessElement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BusinessElement, error)
	FindByName(ctx context.Context, name string) (*model.BusinessElement, error)
	ListAll(ctx context.Context) ([]model.BusinessElement, error)
}

type elementRepository struct {
	db *gorm.DB
}

func NewElementRepository(db *gorm.DB) ElementRepository {
	return &elementRepository{db: db}
}

func (r *elementRepository) Create(ctx context.Context, element *model.BusinessElement) error {
	return r.db.WithContext(ctx).Create(element).Error
}

func (r *elementRepository) Update(ctx context.Context, element *model.BusinessElement) error {
	return r.db.WithContext(ctx).Save(element).Error
}

func (r *elementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BusinessElement{}).Error
}

func (r *elementRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BusinessElement, error) {
	var element model.BusinessElement
	if err := r.db.WithContext(ctx).First(&element, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &element, nil
}

func (r *elementRepository) FindByName(ctx context.Context, name string) (*model.BusinessElement, error) {
	var element model.BusinessElement
	if err := r.db.WithContext(ctx).First(&element, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &element, nil
}

func (r *elementRepository) ListAll(ctx context.Context) ([]model.BusinessElement, error) {
	var elements []model.BusinessElement
	if err := r.db.WithContext(ctx).Order("name asc").Find(&elements).Error; err != nil {
		return nil, err
	}
	return elements, nil
}
