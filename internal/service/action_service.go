// internal/service/action_service.go
package service

import (
	"context"

	"trick_keeper/internal/middleware"
	"trick_keeper/internal/model"
	"trick_keeper/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrickActionService はユーザーごとの達成済み・ウィッシュリストの
// 2つのメンバーシップ集合を管理します。追加・削除はすべて冪等で、
// 重複追加や存在しないエントリの削除はエラーにならない。
type TrickActionService interface {
	AddToWishlist(ctx context.Context, userID, trickID uuid.UUID) error
	RemoveFromWishlist(ctx context.Context, userID, trickID uuid.UUID) error
	AddToCompleted(ctx context.Context, userID, trickID uuid.UUID) error
	RemoveFromCompleted(ctx context.Context, userID, trickID uuid.UUID) error
}

type trickActionService struct {
	db            *gorm.DB
	completedRepo repository.CompletedTrickRepository
	wishlistRepo  repository.WishlistTrickRepository
}

func NewTrickActionService(db *gorm.DB, completedRepo repository.CompletedTrickRepository, wishlistRepo repository.WishlistTrickRepository) TrickActionService {
	return &trickActionService{
		db:            db,
		completedRepo: completedRepo,
		wishlistRepo:  wishlistRepo,
	}
}

func (s *trickActionService) AddToCompleted(ctx context.Context, userID, trickID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ensureCompletedTrick(ctx, tx, s.completedRepo, userID, trickID)
	})
}

func (s *trickActionService) RemoveFromCompleted(ctx context.Context, userID, trickID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "trick_id", trickID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.completedRepo.Delete(ctx, tx, userID, trickID)
	})
	if err != nil {
		logger.Error("Failed to remove completed trick", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "達成済みの解除に失敗しました。", "", err)
	}
	return nil
}

func (s *trickActionService) AddToWishlist(ctx context.Context, userID, trickID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "trick_id", trickID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 挿入自体が ON CONFLICT DO NOTHING で冪等。既にメンバーなら何もしない。
		entry := &model.WishlistTrick{
			ID:      uuid.New(),
			UserID:  userID,
			TrickID: trickID,
		}
		return s.wishlistRepo.Create(ctx, tx, entry)
	})
	if err != nil {
		logger.Error("Failed to add wishlist trick", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ウィッシュリストへの追加に失敗しました。", "", err)
	}
	return nil
}

func (s *trickActionService) RemoveFromWishlist(ctx context.Context, userID, trickID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "trick_id", trickID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.wishlistRepo.Delete(ctx, tx, userID, trickID)
	})
	if err != nil {
		logger.Error("Failed to remove wishlist trick", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ウィッシュリストからの削除に失敗しました。", "", err)
	}
	return nil
}

// ensureCompletedTrick は (userID, trickID) の達成エントリが無ければ挿入します。
// 挿入は ON CONFLICT DO NOTHING なので、既にあれば（並行挿入との競合を含め）
// 何もせず成功し、同じトランザクション内の他の書き込みをアボートさせない。
// ゴール達成の副作用もここを通るため、達成集合への書き込みはこの1箇所に集約される。
func ensureCompletedTrick(ctx context.Context, tx *gorm.DB, completedRepo repository.CompletedTrickRepository, userID, trickID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "trick_id", trickID)

	entry := &model.CompletedTrick{
		ID:      uuid.New(),
		UserID:  userID,
		TrickID: trickID,
	}
	if err := completedRepo.Create(ctx, tx, entry); err != nil {
		logger.Error("Failed to insert completed trick", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "達成済みへの追加に失敗しました。", "", err)
	}
	return nil
}
