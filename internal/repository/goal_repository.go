//go:generate mockery --name GoalRepository --output ./mocks --outpkg mocks --case=underscore
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

type GoalRepository interface {
	Create(ctx context.Context, tx *gorm.DB, goal *model.SessionGoal) error
	// FindByID は所有者を絞らずに取得する。所有権チェックはサービス層の責務。
	FindByID(ctx context.Context, db *gorm.DB, goalID uuid.UUID) (*model.SessionGoal, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.SessionGoal, error)
	Update(ctx context.Context, tx *gorm.DB, goalID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) error
}

type gormGoalRepository struct{}

func NewGormGoalRepository() GoalRepository {
	return &gormGoalRepository{}
}

func (r *gormGoalRepository) Create(ctx context.Context, tx *gorm.DB, goal *model.SessionGoal) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(goal)
	if result.Error != nil {
		logger.Error("Error creating goal in DB",
			"error", result.Error,
			"user_id", goal.UserID.String(),
			"title", goal.Title,
		)
		return fmt.Errorf("gormGoalRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormGoalRepository) FindByID(ctx context.Context, db *gorm.DB, goalID uuid.UUID) (*model.SessionGoal, error) {
	logger := middleware.GetLogger(ctx)
	var goal model.SessionGoal
	result := db.WithContext(ctx).Where("goal_id = ?", goalID).First(&goal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding goal by ID in DB",
			"error", result.Error,
			"goal_id", goalID.String(),
		)
		return nil, fmt.Errorf("gormGoalRepository.FindByID: %w", result.Error)
	}
	return &goal, nil
}

// FindByUser は作成日時の降順（新しいものが先頭）で返します
func (r *gormGoalRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.SessionGoal, error) {
	logger := middleware.GetLogger(ctx)
	var goals []*model.SessionGoal
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&goals)
	if result.Error != nil {
		logger.Error("Error finding goals by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormGoalRepository.FindByUser: %w", result.Error)
	}
	return goals, nil
}

func (r *gormGoalRepository) Update(ctx context.Context, tx *gorm.DB, goalID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.SessionGoal{}).Where("goal_id = ?", goalID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating goal in DB",
			"error", result.Error,
			"goal_id", goalID.String(),
		)
		return fmt.Errorf("gormGoalRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormGoalRepository) Delete(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("goal_id = ?", goalID).Delete(&model.SessionGoal{})
	if result.Error != nil {
		logger.Error("Error deleting goal in DB",
			"error", result.Error,
			"goal_id", goalID.String(),
		)
		return fmt.Errorf("gormGoalRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
