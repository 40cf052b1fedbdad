package model

import (
	"time"

	"github.com/google/uuid"
)

// User はアプリケーションの利用者を表します
type User struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Name         string    `gorm:"not null" json:"name"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	ProfileImage *string   `gorm:"type:text" json:"profile_image,omitempty"` // Base64エンコード画像
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// RegisterRequest は新規登録APIのリクエストボディの構造体 (DTO)
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateProfileImageRequest はプロフィール画像更新リクエストのDTO
type UpdateProfileImageRequest struct {
	Image string `json:"image" validate:"required"`
}

// UserResponse はクライアントに返すユーザー情報の構造体
type UserResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserResponse は User からパスワードを含まないレスポンスを作ります
func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		UserID:       u.UserID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

// LeaderboardEntry はリーダーボードの1行（ユーザーと達成数）を表すDTO。
// completed_count はトリック未達成のユーザーでも 0 として必ず含まれる。
type LeaderboardEntry struct {
	UserID         uuid.UUID `gorm:"column:user_id" json:"user_id"`
	Name           string    `gorm:"column:name" json:"name"`
	Username       string    `gorm:"column:username" json:"username"`
	ProfileImage   *string   `gorm:"column:profile_image" json:"profile_image,omitempty"`
	CompletedCount int64     `gorm:"column:completed_count" json:"completed_count"`
}
