//go:generate mockery --name CategoryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"trick_keeper/internal/middleware"
	"trick_keeper/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, category *model.Category) error
	FindByID(ctx context.Context, db *gorm.DB, categoryID uuid.UUID) (*model.Category, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Category, error)
	Update(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) error
}

type gormCategoryRepository struct{}

func NewGormCategoryRepository() CategoryRepository {
	return &gormCategoryRepository{}
}

func (r *gormCategoryRepository) Create(ctx context.Context, tx *gorm.DB, category *model.Category) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(category)
	if result.Error != nil {
		logger.Error("Error creating category in DB",
			"error", result.Error,
			"name", category.Name,
		)
		return fmt.Errorf("gormCategoryRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCategoryRepository) FindByID(ctx context.Context, db *gorm.DB, categoryID uuid.UUID) (*model.Category, error) {
	logger := middleware.GetLogger(ctx)
	var category model.Category
	result := db.WithContext(ctx).Where("category_id = ?", categoryID).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding category by ID in DB",
			"error", result.Error,
			"category_id", categoryID.String(),
		)
		return nil, fmt.Errorf("gormCategoryRepository.FindByID: %w", result.Error)
	}
	return &category, nil
}

func (r *gormCategoryRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Category, error) {
	logger := middleware.GetLogger(ctx)
	var categories []*model.Category
	result := db.WithContext(ctx).Order("created_at ASC").Find(&categories)
	if result.Error != nil {
		logger.Error("Error finding categories in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCategoryRepository.FindAll: %w", result.Error)
	}
	return categories, nil
}

func (r *gormCategoryRepository) Update(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Category{}).Where("category_id = ?", categoryID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating category in DB",
			"error", result.Error,
			"category_id", categoryID.String(),
		)
		return fmt.Errorf("gormCategoryRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCategoryRepository) Delete(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("category_id = ?", categoryID).Delete(&model.Category{})
	if result.Error != nil {
		logger.Error("Error deleting category in DB",
			"error", result.Error,
			"category_id", categoryID.String(),
		)
		return fmt.Errorf("gormCategoryRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
