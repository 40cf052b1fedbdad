//go:generate mockery --name TrickRepository --output ./mocks --outpkg mocks --case=underscore
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

type TrickRepository interface {
	Create(ctx context.Context, tx *gorm.DB, trick *model.Trick) error
	FindByID(ctx context.Context, db *gorm.DB, trickID uuid.UUID) (*model.Trick, error)
	FindAll(ctx context.Context, db *gorm.DB, categoryID *uuid.UUID) ([]*model.Trick, error)
	Update(ctx context.Context, tx *gorm.DB, trickID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, trickID uuid.UUID) error
	CountByCategory(ctx context.Context, db *gorm.DB, categoryID uuid.UUID) (int64, error)
	FindCompletedByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.CompletedTrickResponse, error)
	FindWishlistByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Trick, error)
}

type gormTrickRepository struct{}

func NewGormTrickRepository() TrickRepository {
	return &gormTrickRepository{}
}

func (r *gormTrickRepository) Create(ctx context.Context, tx *gorm.DB, trick *model.Trick) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(trick)
	if result.Error != nil {
		logger.Error("Error creating trick in DB",
			"error", result.Error,
			"name", trick.Name,
			"category_id", trick.CategoryID.String(),
		)
		return fmt.Errorf("gormTrickRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormTrickRepository) FindByID(ctx context.Context, db *gorm.DB, trickID uuid.UUID) (*model.Trick, error) {
	logger := middleware.GetLogger(ctx)
	var trick model.Trick
	result := db.WithContext(ctx).Where("trick_id = ?", trickID).First(&trick)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding trick by ID in DB",
			"error", result.Error,
			"trick_id", trickID.String(),
		)
		return nil, fmt.Errorf("gormTrickRepository.FindByID: %w", result.Error)
	}
	return &trick, nil
}

func (r *gormTrickRepository) FindAll(ctx context.Context, db *gorm.DB, categoryID *uuid.UUID) ([]*model.Trick, error) {
	logger := middleware.GetLogger(ctx)
	var tricks []*model.Trick

	query := db.WithContext(ctx)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	result := query.Order("created_at ASC").Find(&tricks)
	if result.Error != nil {
		logger.Error("Error finding tricks in DB", "error", result.Error)
		return nil, fmt.Errorf("gormTrickRepository.FindAll: %w", result.Error)
	}
	return tricks, nil
}

func (r *gormTrickRepository) Update(ctx context.Context, tx *gorm.DB, trickID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Trick{}).Where("trick_id = ?", trickID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating trick in DB",
			"error", result.Error,
			"trick_id", trickID.String(),
		)
		return fmt.Errorf("gormTrickRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormTrickRepository) Delete(ctx context.Context, tx *gorm.DB, trickID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("trick_id = ?", trickID).Delete(&model.Trick{})
	if result.Error != nil {
		logger.Error("Error deleting trick in DB",
			"error", result.Error,
			"trick_id", trickID.String(),
		)
		return fmt.Errorf("gormTrickRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormTrickRepository) CountByCategory(ctx context.Context, db *gorm.DB, categoryID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Trick{}).Where("category_id = ?", categoryID).Count(&count)
	if result.Error != nil {
		logger.Error("Error counting tricks by category in DB",
			"error", result.Error,
			"category_id", categoryID.String(),
		)
		return 0, fmt.Errorf("gormTrickRepository.CountByCategory: %w", result.Error)
	}
	return count, nil
}

// FindCompletedByUser はユーザーが達成済みのトリックを達成日時つきで返します
func (r *gormTrickRepository) FindCompletedByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.CompletedTrickResponse, error) {
	logger := middleware.GetLogger(ctx)
	var responses []*model.CompletedTrickResponse

	result := db.WithContext(ctx).Raw(`
		SELECT t.trick_id AS trick_id, t.name AS name, t.category_id AS category_id, ct.created_at AS completed_at
		FROM tricks t
		JOIN completed_tricks ct ON t.trick_id = ct.trick_id
		WHERE ct.user_id = ?
		ORDER BY ct.created_at DESC`, userID).Scan(&responses)
	if result.Error != nil {
		logger.Error("Error finding completed tricks in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormTrickRepository.FindCompletedByUser: %w", result.Error)
	}
	return responses, nil
}

// FindWishlistByUser はユーザーがウィッシュリストに入れたトリックを返します
func (r *gormTrickRepository) FindWishlistByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Trick, error) {
	logger := middleware.GetLogger(ctx)
	var tricks []*model.Trick

	result := db.WithContext(ctx).
		Joins("JOIN wishlist_tricks wt ON wt.trick_id = tricks.trick_id").
		Where("wt.user_id = ?", userID).
		Order("wt.created_at DESC").
		Find(&tricks)
	if result.Error != nil {
		logger.Error("Error finding wishlist tricks in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormTrickRepository.FindWishlistByUser: %w", result.Error)
	}
	return tricks, nil
}
