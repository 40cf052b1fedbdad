// internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"time"

	"trick_keeper/internal/config"
	"trick_keeper/internal/middleware"
	"trick_keeper/internal/model"
	"trick_keeper/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (string, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfileImage(ctx context.Context, userID uuid.UUID, image string) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	GetLeaderboard(ctx context.Context, categoryID *uuid.UUID) ([]*model.LeaderboardEntry, error)
}

type userService struct {
	db            *gorm.DB
	cfg           *config.Config
	userRepo      repository.UserRepository
	completedRepo repository.CompletedTrickRepository
	wishlistRepo  repository.WishlistTrickRepository
	goalRepo      repository.GoalRepository
}

func NewUserService(
	db *gorm.DB,
	cfg *config.Config,
	userRepo repository.UserRepository,
	completedRepo repository.CompletedTrickRepository,
	wishlistRepo repository.WishlistTrickRepository,
	goalRepo repository.GoalRepository,
) UserService {
	return &userService{
		db:            db,
		cfg:           cfg,
		userRepo:      userRepo,
		completedRepo: completedRepo,
		wishlistRepo:  wishlistRepo,
		goalRepo:      goalRepo,
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx).With("username", req.Username)

	// ユーザー名・メールの重複を事前チェックする。ここをすり抜けた
	// 並行登録はDBのユニーク制約が弾き、ErrConflict として返る。
	if _, err := s.userRepo.FindByUsername(ctx, s.db, req.Username); err == nil {
		return nil, model.NewAppError("CONFLICT", "このユーザー名は既に使用されています。", "username", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to check username availability", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "登録処理中にエラーが発生しました。", "", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, s.db, req.Email); err == nil {
		return nil, model.NewAppError("CONFLICT", "このメールアドレスは既に登録されています。", "email", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to check email availability", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "登録処理中にエラーが発生しました。", "", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "登録処理中にエラーが発生しました。", "", err)
	}

	user := &model.User{
		UserID:       uuid.New(),
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("CONFLICT", "このユーザー名またはメールアドレスは既に使用されています。", "", model.ErrConflict)
		}
		logger.Error("Failed to create user", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "登録処理中にエラーが発生しました。", "", err)
	}

	logger.Info("User registered", "user_id", user.UserID)
	return user, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (string, error) {
	logger := middleware.GetLogger(ctx).With("username", req.Username)

	user, err := s.userRepo.FindByUsername(ctx, s.db, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// ユーザーの存在有無は漏らさない
			return "", model.NewAppError("UNAUTHENTICATED", "ユーザー名またはパスワードが正しくありません。", "", model.ErrUnauthenticated)
		}
		logger.Error("Failed to find user for login", "error", err)
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "ログイン処理中にエラーが発生しました。", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Password mismatch on login")
		return "", model.NewAppError("UNAUTHENTICATED", "ユーザー名またはパスワードが正しくありません。", "", model.ErrUnauthenticated)
	}

	token, err := s.issueToken(user)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err)
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの発行に失敗しました。", "", err)
	}

	logger.Info("User logged in", "user_id", user.UserID)
	return token, nil
}

// issueToken は sub にユーザーIDを入れたHS256のJWTを発行します
func (s *userService) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &model.JWTCustomClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWT.ExpiryHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to get user", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー情報の取得に失敗しました。", "", err)
	}
	return user, nil
}

func (s *userService) UpdateProfileImage(ctx context.Context, userID uuid.UUID, image string) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.UpdateProfileImage(ctx, tx, userID, image)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to update profile image", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィール画像の更新に失敗しました。", "", err)
	}
	logger.Info("Profile image updated")
	return nil
}

// DeleteUser はアカウントと、そのユーザーに紐づく達成済み・ウィッシュリスト・
// ゴールをまとめて削除します。すべて同一トランザクション。
func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.completedRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.wishlistRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		goals, err := s.goalRepo.FindByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		for _, goal := range goals {
			if err := s.goalRepo.Delete(ctx, tx, goal.GoalID); err != nil {
				return err
			}
		}
		return s.userRepo.Delete(ctx, tx, userID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "ユーザーが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete user", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "アカウントの削除に失敗しました。", "", err)
	}

	logger.Info("User deleted")
	return nil
}

func (s *userService) GetLeaderboard(ctx context.Context, categoryID *uuid.UUID) ([]*model.LeaderboardEntry, error) {
	logger := middleware.GetLogger(ctx)

	entries, err := s.userRepo.GetLeaderboard(ctx, s.db, categoryID)
	if err != nil {
		logger.Error("Failed to get leaderboard", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リーダーボードの取得に失敗しました。", "", err)
	}
	return entries, nil
}
