// internal/model/trick.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Trick はカタログ上のトリック（技）を表します。必ず1つのカテゴリに属する。
type Trick struct {
	TrickID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"trick_id"`
	Name       string    `gorm:"not null" json:"name"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Trick) TableName() string {
	return "tricks"
}

// トリック作成リクエストDTO
type PostTrickRequest struct {
	Name       string    `json:"name" validate:"required,min=1,max=200"`
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
}

// トリック更新リクエストDTO
type PutTrickRequest struct {
	Name       string    `json:"name" validate:"required,min=1,max=200"`
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
}

// TrickWithFlagsResponse はトリック一覧のレスポンスDTO。
// 認証済みユーザーには達成・ウィッシュリストの所属フラグを付けて返す。
// 未認証の場合はどちらも false。
type TrickWithFlagsResponse struct {
	TrickID    uuid.UUID `json:"trick_id"`
	Name       string    `json:"name"`
	CategoryID uuid.UUID `json:"category_id"`
	Completed  bool      `json:"completed"`
	Wishlisted bool      `json:"wishlisted"`
}

// CompletedTrickResponse は達成済みトリック一覧のレスポンスDTO（達成日時つき）
type CompletedTrickResponse struct {
	TrickID     uuid.UUID `gorm:"column:trick_id" json:"trick_id"`
	Name        string    `gorm:"column:name" json:"name"`
	CategoryID  uuid.UUID `gorm:"column:category_id" json:"category_id"`
	CompletedAt time.Time `gorm:"column:completed_at" json:"completed_at"`
}
