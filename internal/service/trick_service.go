// internal/service/trick_service.go
package service

import (
	"context"
	"errors"

	"trick_keeper/internal/middleware"
	"trick_keeper/internal/model"
	"trick_keeper/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrickService interface {
	// ListTricks はカタログを返す。userID が指定されていれば（認証済み）、
	// 各トリックに達成・ウィッシュリストの所属フラグを付ける。
	ListTricks(ctx context.Context, userID *uuid.UUID, categoryID *uuid.UUID) ([]*model.TrickWithFlagsResponse, error)
	GetTrick(ctx context.Context, trickID uuid.UUID) (*model.Trick, error)
	CreateTrick(ctx context.Context, req *model.PostTrickRequest) (*model.Trick, error)
	UpdateTrick(ctx context.Context, trickID uuid.UUID, req *model.PutTrickRequest) (*model.Trick, error)
	DeleteTrick(ctx context.Context, trickID uuid.UUID) error
	ListCompletedTricks(ctx context.Context, userID uuid.UUID) ([]*model.CompletedTrickResponse, error)
	ListWishlistTricks(ctx context.Context, userID uuid.UUID) ([]*model.Trick, error)
}

type trickService struct {
	db            *gorm.DB
	trickRepo     repository.TrickRepository
	completedRepo repository.CompletedTrickRepository
	wishlistRepo  repository.WishlistTrickRepository
}

func NewTrickService(db *gorm.DB, trickRepo repository.TrickRepository, completedRepo repository.CompletedTrickRepository, wishlistRepo repository.WishlistTrickRepository) TrickService {
	return &trickService{
		db:            db,
		trickRepo:     trickRepo,
		completedRepo: completedRepo,
		wishlistRepo:  wishlistRepo,
	}
}

func (s *trickService) ListTricks(ctx context.Context, userID *uuid.UUID, categoryID *uuid.UUID) ([]*model.TrickWithFlagsResponse, error) {
	logger := middleware.GetLogger(ctx)

	tricks, err := s.trickRepo.FindAll(ctx, s.db, categoryID)
	if err != nil {
		logger.Error("Failed to list tricks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トリック一覧の取得に失敗しました。", "", err)
	}

	responses := make([]*model.TrickWithFlagsResponse, 0, len(tricks))
	for _, trick := range tricks {
		resp := &model.TrickWithFlagsResponse{
			TrickID:    trick.TrickID,
			Name:       trick.Name,
			CategoryID: trick.CategoryID,
		}
		if userID != nil {
			completed, err := s.completedRepo.Exists(ctx, s.db, *userID, trick.TrickID)
			if err != nil {
				logger.Error("Failed to check completed flag", "error", err, "trick_id", trick.TrickID)
				return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トリック一覧の取得に失敗しました。", "", err)
			}
			wishlisted, err := s.wishlistRepo.Exists(ctx, s.db, *userID, trick.TrickID)
			if err != nil {
				logger.Error("Failed to check wishlist flag", "error", err, "trick_id", trick.TrickID)
				return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トリック一覧の取得に失敗しました。", "", err)
			}
			resp.Completed = completed
			resp.Wishlisted = wishlisted
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *trickService) GetTrick(ctx context.Context, trickID uuid.UUID) (*model.Trick, error) {
	logger := middleware.GetLogger(ctx).With("trick_id", trickID)

	trick, err := s.trickRepo.FindByID(ctx, s.db, trickID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "トリックが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to get trick", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トリックの取得に失敗しました。", "", err)
	}
	return trick, nil
}

func (s *trickService) CreateTrick(ctx context.Context, req *model.PostTrickRequest) (*model.Trick, error) {
	logger := middleware.GetLogger(ctx)

	trick := &model.Trick{
		TrickID:    uuid.New(),
		Name:       req.Name,
		CategoryID: req.CategoryID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.trickRepo.Create(ctx, tx, trick)
	})
	if err != nil {
		logger.Error("Failed to create trick", "error", err, "name", req.Name)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トリックの作成に失敗しました。", "", err)
	}

	logger.Info("Trick created", "trick_id", trick.TrickID, "name", trick.Name)
	return trick, nil
}

func (s *trickService) UpdateTrick(ctx context.Context, trickID uuid.UUID, req *model.PutTrickRequest) (*model.Trick, error) {
	logger := middleware.GetLogger(ctx).With("trick_id", trickID)

	var updated *model.Trick
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":        req.Name,
			"category_id": req.CategoryID,
		}
		if err := s.trickRepo.Update(ctx, tx, trickID, updates); err != nil {
			return err
		}
		trick, err := s.trickRepo.FindByID(ctx, tx, trickID)
		if err != nil {
			return err
		}
		updated = trick
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "トリックが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to update trick", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トリックの更新に失敗しました。", "", err)
	}
	return updated, nil
}

func (s *trickService) DeleteTrick(ctx context.Context, trickID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("trick_id", trickID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.trickRepo.Delete(ctx, tx, trickID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "トリックが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete trick", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "トリックの削除に失敗しました。", "", err)
	}
	logger.Info("Trick deleted")
	return nil
}

func (s *trickService) ListCompletedTricks(ctx context.Context, userID uuid.UUID) ([]*model.CompletedTrickResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	responses, err := s.trickRepo.FindCompletedByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list completed tricks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "達成済みトリックの取得に失敗しました。", "", err)
	}
	return responses, nil
}

func (s *trickService) ListWishlistTricks(ctx context.Context, userID uuid.UUID) ([]*model.Trick, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	tricks, err := s.trickRepo.FindWishlistByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list wishlist tricks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ウィッシュリストの取得に失敗しました。", "", err)
	}
	return tricks, nil
}
