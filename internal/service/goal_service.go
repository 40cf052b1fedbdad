// internal/service/goal_service.go
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

type GoalService interface {
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*model.SessionGoal, error)
	CreateGoal(ctx context.Context, userID uuid.UUID, req *model.PostGoalRequest) (*model.SessionGoal, error)
	UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, req *model.PatchGoalRequest) (*model.SessionGoal, error)
	DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error
}

type goalService struct {
	db            *gorm.DB
	goalRepo      repository.GoalRepository
	completedRepo repository.CompletedTrickRepository
}

func NewGoalService(db *gorm.DB, goalRepo repository.GoalRepository, completedRepo repository.CompletedTrickRepository) GoalService {
	return &goalService{
		db:            db,
		goalRepo:      goalRepo,
		completedRepo: completedRepo,
	}
}

func (s *goalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*model.SessionGoal, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	goals, err := s.goalRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list goals", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ゴール一覧の取得に失敗しました。", "", err)
	}
	return goals, nil
}

func (s *goalService) CreateGoal(ctx context.Context, userID uuid.UUID, req *model.PostGoalRequest) (*model.SessionGoal, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	// トリック連動ゴールはリンク先が必須。トリックの実在チェックは
	// ここでは行わず、ストレージの参照整合性に委ねる。
	if req.Type == model.GoalTypeTrick && req.TrickID == nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "トリック連動ゴールにはトリックIDが必要です。", "trick_id", model.ErrInvalidInput)
	}

	goal := &model.SessionGoal{
		GoalID:        uuid.New(),
		UserID:        userID,
		Title:         req.Title,
		Type:          req.Type,
		TargetCount:   req.TargetCount,
		CurrentCount:  0,
		TimerDuration: req.TimerDuration,
		RemainingTime: req.RemainingTime,
		IsCompleted:   false,
	}
	if req.Type == model.GoalTypeTrick {
		goal.TrickID = req.TrickID
	}

	// タイマー時間が未指定で残り時間だけ指定された場合、残り時間を
	// ゴールの総時間のベースラインとして採用する
	if goal.TimerDuration == nil && goal.RemainingTime != nil {
		duration := *goal.RemainingTime
		goal.TimerDuration = &duration
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.goalRepo.Create(ctx, tx, goal)
	})
	if err != nil {
		logger.Error("Failed to create goal", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ゴールの作成に失敗しました。", "", err)
	}

	logger.Info("Goal created", "goal_id", goal.GoalID, "type", goal.Type)
	return goal, nil
}

// applyGoalPatch はパッチをゴールに適用し、永続化すべき更新カラムと
// 「達成集合への書き込みが必要か」を返します。副作用が要るのは
// completed が false→true に遷移するトリック連動ゴールのみで、
// true→true の再送や true→false には何も発火しない。
func applyGoalPatch(goal *model.SessionGoal, req *model.PatchGoalRequest) (map[string]interface{}, bool) {
	updates := make(map[string]interface{})
	wasCompleted := goal.IsCompleted

	if req.CurrentCount != nil {
		goal.CurrentCount = *req.CurrentCount
		updates["current_count"] = *req.CurrentCount
	}
	if req.RemainingTime != nil {
		goal.RemainingTime = req.RemainingTime
		updates["remaining_time"] = *req.RemainingTime
	}
	if req.Completed != nil {
		goal.IsCompleted = *req.Completed
		updates["is_completed"] = *req.Completed
	}

	needsLedgerWrite := !wasCompleted && goal.IsCompleted &&
		goal.Type == model.GoalTypeTrick && goal.TrickID != nil

	return updates, needsLedgerWrite
}

func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, req *model.PatchGoalRequest) (*model.SessionGoal, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "goal_id", goalID)

	var updated *model.SessionGoal

	// ゴールの更新と達成集合への書き込みは同一トランザクション。
	// どちらかだけが観測される状態は許さない。
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal, err := s.goalRepo.FindByID(ctx, tx, goalID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "ゴールが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ゴールの取得中にエラーが発生しました。", "", err)
		}

		// 所有者以外の更新は拒否
		if goal.UserID != userID {
			logger.Warn("Goal update rejected: not the owner", "owner_id", goal.UserID)
			return model.NewAppError("UNAUTHORIZED", "このゴールを更新する権限がありません。", "", model.ErrForbidden)
		}

		updates, needsLedgerWrite := applyGoalPatch(goal, req)

		if len(updates) > 0 {
			if err := s.goalRepo.Update(ctx, tx, goalID, updates); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "ゴールの更新に失敗しました。", "", err)
			}
		}

		if needsLedgerWrite {
			logger.Info("Goal completed, adding linked trick to completed set", "trick_id", goal.TrickID)
			if err := ensureCompletedTrick(ctx, tx, s.completedRepo, userID, *goal.TrickID); err != nil {
				return err
			}
		}

		updated = goal
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Transaction failed for UpdateGoal", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ゴールの更新に失敗しました。", "", err)
	}

	return updated, nil
}

// DeleteGoal は所有者のゴールを削除します。所有者でない場合はエラーを
// 返さず、何も削除しない（更新が認可エラーを返すのと非対称だが、
// 既存クライアントが依存している挙動のため維持している）。
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "goal_id", goalID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal, err := s.goalRepo.FindByID(ctx, tx, goalID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "ゴールが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ゴールの取得中にエラーが発生しました。", "", err)
		}

		if goal.UserID != userID {
			logger.Warn("Goal delete silently ignored: not the owner", "owner_id", goal.UserID)
			return nil
		}

		if err := s.goalRepo.Delete(ctx, tx, goalID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "ゴールの削除に失敗しました。", "", err)
		}
		logger.Info("Goal deleted")
		return nil
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return err
		}
		logger.Error("Transaction failed for DeleteGoal", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ゴールの削除に失敗しました。", "", err)
	}
	return nil
}
