// internal/model/goal.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ゴールの種別
const (
	GoalTypeText  = "text"  // 自由テキストの目標
	GoalTypeTrick = "trick" // 特定のトリックに紐づく目標
)

// SessionGoal はユーザーが設定する練習目標を表します。
// 回数ベース（target_count/current_count）またはタイマーベース
// （timer_duration/remaining_time、いずれも秒）のいずれか、あるいは両方を持てる。
// is_completed は false→true の一方向にのみ意味のある遷移を持つ。
type SessionGoal struct {
	GoalID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"goal_id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Title         string     `gorm:"not null" json:"title"`
	Type          string     `gorm:"type:varchar(10);not null" json:"type"`
	TrickID       *uuid.UUID `gorm:"type:uuid" json:"trick_id,omitempty"`
	TargetCount   *int       `json:"target_count,omitempty"`
	CurrentCount  int        `gorm:"not null;default:0" json:"current_count"`
	TimerDuration *int64     `json:"timer_duration,omitempty"`
	RemainingTime *int64     `json:"remaining_time,omitempty"`
	IsCompleted   bool       `gorm:"column:is_completed;not null;default:false" json:"completed"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (SessionGoal) TableName() string {
	return "session_goals"
}

// ゴール作成リクエストDTO。
// type=trick の場合は trick_id が必須（サービス層で検証）。
type PostGoalRequest struct {
	Title         string     `json:"title" validate:"required,min=1,max=200"`
	Type          string     `json:"type" validate:"required,oneof=text trick"`
	TrickID       *uuid.UUID `json:"trick_id,omitempty"`
	TargetCount   *int       `json:"target_count,omitempty" validate:"omitempty,min=1"`
	TimerDuration *int64     `json:"timer_duration,omitempty" validate:"omitempty,min=1"`
	RemainingTime *int64     `json:"remaining_time,omitempty" validate:"omitempty,min=0"`
}

// ゴール更新（部分）リクエストDTO。
// タイトル・種別・トリックリンク・目標値は作成後は変更不可のため含めない。
type PatchGoalRequest struct {
	CurrentCount  *int   `json:"current_count,omitempty" validate:"omitempty,min=0"`
	RemainingTime *int64 `json:"remaining_time,omitempty" validate:"omitempty,min=0"`
	Completed     *bool  `json:"completed,omitempty"`
}
