//go:generate mockery --name CompletedTrickRepository --output ./mocks --outpkg mocks --case=underscore
//go:generate mockery --name WishlistTrickRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"trick_keeper/internal/middleware"
	"trick_keeper/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompletedTrickRepository は達成済みセットの永続化を担います。
// Create は ON CONFLICT DO NOTHING で挿入するため、(user_id, trick_id) が
// 既に存在しても何もせず成功する。制約違反を発生させないので、ゴール更新など
// 同一トランザクション内の他の書き込みを巻き込んでアボートさせることがない。
type CompletedTrickRepository interface {
	Exists(ctx context.Context, db *gorm.DB, userID, trickID uuid.UUID) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, entry *model.CompletedTrick) error
	Delete(ctx context.Context, tx *gorm.DB, userID, trickID uuid.UUID) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	CountByUserAndCategory(ctx context.Context, db *gorm.DB, userID, categoryID uuid.UUID) (int64, error)
}

// WishlistTrickRepository はウィッシュリストの永続化を担います。
// セマンティクスは CompletedTrickRepository と同じ。
type WishlistTrickRepository interface {
	Exists(ctx context.Context, db *gorm.DB, userID, trickID uuid.UUID) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, entry *model.WishlistTrick) error
	Delete(ctx context.Context, tx *gorm.DB, userID, trickID uuid.UUID) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type gormCompletedTrickRepository struct{}

func NewGormCompletedTrickRepository() CompletedTrickRepository {
	return &gormCompletedTrickRepository{}
}

func (r *gormCompletedTrickRepository) Exists(ctx context.Context, db *gorm.DB, userID, trickID uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.CompletedTrick{}).
		Where("user_id = ? AND trick_id = ?", userID, trickID).Count(&count)
	if result.Error != nil {
		logger.Error("Error checking completed trick existence in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"trick_id", trickID.String(),
		)
		return false, fmt.Errorf("gormCompletedTrickRepository.Exists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormCompletedTrickRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.CompletedTrick) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if result.Error != nil {
		logger.Error("Error creating completed trick in DB",
			"error", result.Error,
			"user_id", entry.UserID.String(),
			"trick_id", entry.TrickID.String(),
		)
		return fmt.Errorf("gormCompletedTrickRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCompletedTrickRepository) Delete(ctx context.Context, tx *gorm.DB, userID, trickID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	// 存在しない場合も削除0件として成功扱い（冪等）
	result := tx.WithContext(ctx).
		Where("user_id = ? AND trick_id = ?", userID, trickID).Delete(&model.CompletedTrick{})
	if result.Error != nil {
		logger.Error("Error deleting completed trick in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"trick_id", trickID.String(),
		)
		return fmt.Errorf("gormCompletedTrickRepository.Delete: %w", result.Error)
	}
	return nil
}

func (r *gormCompletedTrickRepository) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CompletedTrick{})
	if result.Error != nil {
		logger.Error("Error deleting completed tricks for user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormCompletedTrickRepository.DeleteByUser: %w", result.Error)
	}
	return nil
}

func (r *gormCompletedTrickRepository) CountByUserAndCategory(ctx context.Context, db *gorm.DB, userID, categoryID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.CompletedTrick{}).
		Joins("JOIN tricks t ON t.trick_id = completed_tricks.trick_id").
		Where("completed_tricks.user_id = ? AND t.category_id = ?", userID, categoryID).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting completed tricks by category in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"category_id", categoryID.String(),
		)
		return 0, fmt.Errorf("gormCompletedTrickRepository.CountByUserAndCategory: %w", result.Error)
	}
	return count, nil
}

type gormWishlistTrickRepository struct{}

func NewGormWishlistTrickRepository() WishlistTrickRepository {
	return &gormWishlistTrickRepository{}
}

func (r *gormWishlistTrickRepository) Exists(ctx context.Context, db *gorm.DB, userID, trickID uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.WishlistTrick{}).
		Where("user_id = ? AND trick_id = ?", userID, trickID).Count(&count)
	if result.Error != nil {
		logger.Error("Error checking wishlist trick existence in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"trick_id", trickID.String(),
		)
		return false, fmt.Errorf("gormWishlistTrickRepository.Exists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormWishlistTrickRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.WishlistTrick) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if result.Error != nil {
		logger.Error("Error creating wishlist trick in DB",
			"error", result.Error,
			"user_id", entry.UserID.String(),
			"trick_id", entry.TrickID.String(),
		)
		return fmt.Errorf("gormWishlistTrickRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWishlistTrickRepository) Delete(ctx context.Context, tx *gorm.DB, userID, trickID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("user_id = ? AND trick_id = ?", userID, trickID).Delete(&model.WishlistTrick{})
	if result.Error != nil {
		logger.Error("Error deleting wishlist trick in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"trick_id", trickID.String(),
		)
		return fmt.Errorf("gormWishlistTrickRepository.Delete: %w", result.Error)
	}
	return nil
}

func (r *gormWishlistTrickRepository) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.WishlistTrick{})
	if result.Error != nil {
		logger.Error("Error deleting wishlist tricks for user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormWishlistTrickRepository.DeleteByUser: %w", result.Error)
	}
	return nil
}
