//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"trick_keeper/internal/middleware"
	"trick_keeper/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	UpdateProfileImage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, image string) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	GetLeaderboard(ctx context.Context, db *gorm.DB, categoryID *uuid.UUID) ([]*model.LeaderboardEntry, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(user)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create user",
				"error", result.Error,
				"username", user.Username,
				"email", user.Email,
			)
			return model.ErrConflict
		}

		logger.Error("Error creating user in DB",
			"error", result.Error,
			"username", user.Username,
		)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("User not found by username", "username", username)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by username in DB",
			"error", result.Error,
			"username", username,
		)
		return nil, fmt.Errorf("gormUserRepository.FindByUsername: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by email in DB",
			"error", result.Error,
			"email", email,
		)
		return nil, fmt.Errorf("gormUserRepository.FindByEmail: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) UpdateProfileImage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, image string) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userID).Update("profile_image", image)
	if result.Error != nil {
		logger.Error("Error updating profile image in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormUserRepository.UpdateProfileImage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.User{})
	if result.Error != nil {
		logger.Error("Error deleting user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return fmt.Errorf("gormUserRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// GetLeaderboard は全ユーザーを達成数の降順で返します。
// 達成数は相関サブクエリで数えるため、達成が0件のユーザーも
// completed_count = 0 の行として必ず含まれる。カテゴリ指定時は
// そのカテゴリに属するトリックの達成のみを数える。
// 同数のユーザー間の順序は保証しない。
func (r *gormUserRepository) GetLeaderboard(ctx context.Context, db *gorm.DB, categoryID *uuid.UUID) ([]*model.LeaderboardEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entries []*model.LeaderboardEntry

	query := `SELECT u.user_id AS user_id, u.name AS name, u.username AS username, u.profile_image AS profile_image,
		(SELECT COUNT(*) FROM completed_tricks ct
		 JOIN tricks t ON ct.trick_id = t.trick_id
		 WHERE ct.user_id = u.user_id%s) AS completed_count
		FROM users u
		ORDER BY completed_count DESC`

	var result *gorm.DB
	if categoryID != nil {
		result = db.WithContext(ctx).Raw(fmt.Sprintf(query, " AND t.category_id = ?"), *categoryID).Scan(&entries)
	} else {
		result = db.WithContext(ctx).Raw(fmt.Sprintf(query, "")).Scan(&entries)
	}

	if result.Error != nil {
		logger.Error("Error computing leaderboard in DB", "error", result.Error)
		return nil, fmt.Errorf("gormUserRepository.GetLeaderboard: %w", result.Error)
	}
	return entries, nil
}
