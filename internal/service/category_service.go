// internal/service/category_service.go
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

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*model.Category, error)
	CreateCategory(ctx context.Context, req *model.PostCategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *model.PutCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	// GetCategoryStats はユーザーから見たカテゴリの進捗（総数と達成数）を返します
	GetCategoryStats(ctx context.Context, userID, categoryID uuid.UUID) (*model.CategoryStatsResponse, error)
	// ListCategoryStats は全カテゴリの進捗をまとめて返します（ダッシュボード用）
	ListCategoryStats(ctx context.Context, userID uuid.UUID) ([]*model.CategoryStatsResponse, error)
}

type categoryService struct {
	db            *gorm.DB
	categoryRepo  repository.CategoryRepository
	trickRepo     repository.TrickRepository
	completedRepo repository.CompletedTrickRepository
}

func NewCategoryService(db *gorm.DB, categoryRepo repository.CategoryRepository, trickRepo repository.TrickRepository, completedRepo repository.CompletedTrickRepository) CategoryService {
	return &categoryService{
		db:            db,
		categoryRepo:  categoryRepo,
		trickRepo:     trickRepo,
		completedRepo: completedRepo,
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	logger := middleware.GetLogger(ctx)

	categories, err := s.categoryRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list categories", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ一覧の取得に失敗しました。", "", err)
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*model.Category, error) {
	logger := middleware.GetLogger(ctx).With("category_id", categoryID)

	category, err := s.categoryRepo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "カテゴリが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to get category", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの取得に失敗しました。", "", err)
	}
	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *model.PostCategoryRequest) (*model.Category, error) {
	logger := middleware.GetLogger(ctx)

	category := &model.Category{
		CategoryID: uuid.New(),
		Name:       req.Name,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.categoryRepo.Create(ctx, tx, category)
	})
	if err != nil {
		logger.Error("Failed to create category", "error", err, "name", req.Name)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの作成に失敗しました。", "", err)
	}

	logger.Info("Category created", "category_id", category.CategoryID, "name", category.Name)
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *model.PutCategoryRequest) (*model.Category, error) {
	logger := middleware.GetLogger(ctx).With("category_id", categoryID)

	var updated *model.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.categoryRepo.Update(ctx, tx, categoryID, map[string]interface{}{"name": req.Name}); err != nil {
			return err
		}
		category, err := s.categoryRepo.FindByID(ctx, tx, categoryID)
		if err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "カテゴリが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to update category", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの更新に失敗しました。", "", err)
	}
	return updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("category_id", categoryID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.categoryRepo.Delete(ctx, tx, categoryID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "カテゴリが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete category", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの削除に失敗しました。", "", err)
	}
	logger.Info("Category deleted")
	return nil
}

func (s *categoryService) GetCategoryStats(ctx context.Context, userID, categoryID uuid.UUID) (*model.CategoryStatsResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "category_id", categoryID)

	category, err := s.categoryRepo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "カテゴリが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to get category for stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ統計の取得に失敗しました。", "", err)
	}

	total, err := s.trickRepo.CountByCategory(ctx, s.db, categoryID)
	if err != nil {
		logger.Error("Failed to count tricks for stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ統計の取得に失敗しました。", "", err)
	}

	completed, err := s.completedRepo.CountByUserAndCategory(ctx, s.db, userID, categoryID)
	if err != nil {
		logger.Error("Failed to count completed tricks for stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ統計の取得に失敗しました。", "", err)
	}

	return &model.CategoryStatsResponse{
		CategoryID:      category.CategoryID,
		Name:            category.Name,
		TotalTricks:     total,
		CompletedTricks: completed,
	}, nil
}

func (s *categoryService) ListCategoryStats(ctx context.Context, userID uuid.UUID) ([]*model.CategoryStatsResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	categories, err := s.categoryRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list categories for stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ統計の取得に失敗しました。", "", err)
	}

	stats := make([]*model.CategoryStatsResponse, 0, len(categories))
	for _, category := range categories {
		total, err := s.trickRepo.CountByCategory(ctx, s.db, category.CategoryID)
		if err != nil {
			logger.Error("Failed to count tricks for stats", "error", err, "category_id", category.CategoryID)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ統計の取得に失敗しました。", "", err)
		}
		completed, err := s.completedRepo.CountByUserAndCategory(ctx, s.db, userID, category.CategoryID)
		if err != nil {
			logger.Error("Failed to count completed tricks for stats", "error", err, "category_id", category.CategoryID)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ統計の取得に失敗しました。", "", err)
		}
		stats = append(stats, &model.CategoryStatsResponse{
			CategoryID:      category.CategoryID,
			Name:            category.Name,
			TotalTricks:     total,
			CompletedTricks: completed,
		})
	}
	return stats, nil
}
