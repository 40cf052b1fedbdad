package model

import (
	"time"

	"github.com/google/uuid"
)

// Category はトリックのカテゴリを表します
type Category struct {
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`
	Name       string    `gorm:"not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// カテゴリ作成リクエストDTO
type PostCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// カテゴリ更新リクエストDTO
type PutCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryStatsResponse はカテゴリごとの進捗サマリのDTO。
// TotalTricks はカテゴリ内の全トリック数、CompletedTricks はそのうち
// ユーザーが達成済みの数。
type CategoryStatsResponse struct {
	CategoryID      uuid.UUID `json:"category_id"`
	Name            string    `json:"name"`
	TotalTricks     int64     `json:"total_tricks"`
	CompletedTricks int64     `json:"completed_tricks"`
}
