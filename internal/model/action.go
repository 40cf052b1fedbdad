// internal/model/action.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CompletedTrick はユーザーの達成済みセットの1エントリを表します。
// (user_id, trick_id) の複合ユニークインデックスで重複挿入をDB側でも防ぐ。
// エントリは挿入と削除のみで、更新されることはない。
type CompletedTrick struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:uq_completed_user_trick,unique" json:"user_id"`
	TrickID   uuid.UUID `gorm:"type:uuid;not null;index:uq_completed_user_trick,unique" json:"trick_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CompletedTrick) TableName() string {
	return "completed_tricks"
}

// WishlistTrick はユーザーのウィッシュリストの1エントリを表します。
// 達成済みセットとは独立した集合（同じトリックが両方に入ってよい）。
type WishlistTrick struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:uq_wishlist_user_trick,unique" json:"user_id"`
	TrickID   uuid.UUID `gorm:"type:uuid;not null;index:uq_wishlist_user_trick,unique" json:"trick_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (WishlistTrick) TableName() string {
	return "wishlist_tricks"
}

// TrickActionRequest はウィッシュリスト・達成済み操作のリクエストDTO
type TrickActionRequest struct {
	TrickID uuid.UUID `json:"trick_id" validate:"required"`
}
