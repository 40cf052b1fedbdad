// internal/service/goal_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"trick_keeper/internal/model"
	"trick_keeper/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGoalServiceForTest(t *testing.T) (GoalService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewGoalService(db, repository.NewGormGoalRepository(), repository.NewGormCompletedTrickRepository())
	return svc, db
}

func boolPtr(b bool) *bool       { return &b }
func intPtr(i int) *int          { return &i }
func int64Ptr(i int64) *int64    { return &i }
func uuidPtr(u uuid.UUID) *uuid.UUID { return &u }

// --- Test CreateGoal ---
func Test_goalService_CreateGoal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newGoalServiceForTest(t)
	userID := uuid.New()

	t.Run("正常系: テキストゴールは未完了・カウント0で作られる", func(t *testing.T) {
		goal, err := svc.CreateGoal(ctx, userID, &model.PostGoalRequest{
			Title: "kickflipを安定させる",
			Type:  model.GoalTypeText,
		})
		require.NoError(t, err)
		require.NotNil(t, goal)
		assert.NotEqual(t, uuid.Nil, goal.GoalID)
		assert.Equal(t, userID, goal.UserID)
		assert.False(t, goal.IsCompleted)
		assert.Equal(t, 0, goal.CurrentCount)
		assert.Nil(t, goal.TrickID)
	})

	t.Run("正常系: 残り時間だけ指定するとタイマー時間のベースラインになる", func(t *testing.T) {
		goal, err := svc.CreateGoal(ctx, userID, &model.PostGoalRequest{
			Title:         "10分間練習",
			Type:          model.GoalTypeText,
			RemainingTime: int64Ptr(600),
		})
		require.NoError(t, err)
		require.NotNil(t, goal.TimerDuration)
		assert.EqualValues(t, 600, *goal.TimerDuration)
		require.NotNil(t, goal.RemainingTime)
		assert.EqualValues(t, 600, *goal.RemainingTime)
	})

	t.Run("正常系: タイマー時間が指定済みなら残り時間で上書きしない", func(t *testing.T) {
		goal, err := svc.CreateGoal(ctx, userID, &model.PostGoalRequest{
			Title:         "30分セッション",
			Type:          model.GoalTypeText,
			TimerDuration: int64Ptr(1800),
			RemainingTime: int64Ptr(900),
		})
		require.NoError(t, err)
		require.NotNil(t, goal.TimerDuration)
		assert.EqualValues(t, 1800, *goal.TimerDuration)
	})

	t.Run("異常系: トリック連動ゴールなのにトリックIDが無い", func(t *testing.T) {
		goal, err := svc.CreateGoal(ctx, userID, &model.PostGoalRequest{
			Title: "トリック達成",
			Type:  model.GoalTypeTrick,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, goal)
	})

	t.Run("正常系: テキストゴールに付いたトリックIDは無視される", func(t *testing.T) {
		goal, err := svc.CreateGoal(ctx, userID, &model.PostGoalRequest{
			Title:   "自由目標",
			Type:    model.GoalTypeText,
			TrickID: uuidPtr(uuid.New()),
		})
		require.NoError(t, err)
		assert.Nil(t, goal.TrickID)
	})
}

// --- Test ListGoals ---
func Test_goalService_ListGoals(t *testing.T) {
	ctx := context.Background()
	svc, db := newGoalServiceForTest(t)
	userID := uuid.New()
	otherID := uuid.New()

	// 作成時刻をずらして3件投入（other のゴールは混ぜるだけ）
	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"古い", "中間", "新しい"} {
		goal := &model.SessionGoal{
			GoalID:    uuid.New(),
			UserID:    userID,
			Title:     title,
			Type:      model.GoalTypeText,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(goal).Error)
	}
	require.NoError(t, db.Create(&model.SessionGoal{
		GoalID: uuid.New(), UserID: otherID, Title: "他人のゴール", Type: model.GoalTypeText,
	}).Error)

	goals, err := svc.ListGoals(ctx, userID)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	// 新しい順
	assert.Equal(t, "新しい", goals[0].Title)
	assert.Equal(t, "中間", goals[1].Title)
	assert.Equal(t, "古い", goals[2].Title)
}

// --- Test UpdateGoal (完了の副作用) ---
func Test_goalService_UpdateGoal_CompletionSideEffect(t *testing.T) {
	ctx := context.Background()
	svc, db := newGoalServiceForTest(t)
	userID := uuid.New()
	trickID := uuid.New()

	goal, err := svc.CreateGoal(ctx, userID, &model.PostGoalRequest{
		Title:   "このトリックを決める",
		Type:    model.GoalTypeTrick,
		TrickID: uuidPtr(trickID),
	})
	require.NoError(t, err)

	t.Run("正常系: false→true でリンク先トリックが達成済みに追加される", func(t *testing.T) {
		updated, err := svc.UpdateGoal(ctx, userID, goal.GoalID, &model.PatchGoalRequest{
			Completed: boolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, updated.IsCompleted)
		assert.EqualValues(t, 1, countCompleted(t, db, userID, trickID))
	})

	t.Run("正常系: true→true の再送では達成エントリが増えない", func(t *testing.T) {
		_, err := svc.UpdateGoal(ctx, userID, goal.GoalID, &model.PatchGoalRequest{
			Completed: boolPtr(true),
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, countCompleted(t, db, userID, trickID))
	})

	t.Run("正常系: true→false に戻しても達成エントリは消えない", func(t *testing.T) {
		updated, err := svc.UpdateGoal(ctx, userID, goal.GoalID, &model.PatchGoalRequest{
			Completed: boolPtr(false),
		})
		require.NoError(t, err)
		assert.False(t, updated.IsCompleted)
		assert.EqualValues(t, 1, countCompleted(t, db, userID, trickID))
	})

	t.Run("正常系: 再完了しても既存エントリがあるため増えない", func(t *testing.T) {
		_, err := svc.UpdateGoal(ctx, userID, goal.GoalID, &model.PatchGoalRequest{
			Completed: boolPtr(true),
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, countCompleted(t, db, userID, trickID))
	})
}

// リンク先トリックが既に達成済み（別リクエストが先に挿入したケース）でも、
// ゴール完了の書き込みは失われずコミットされる
func Test_goalService_UpdateGoal_CompletionWithExistingEntry(t *testing.T) {
	ctx := context.Background()
	svc, db := newGoalServiceForTest(t)
	userID := uuid.New()
	trickID := uuid.New()

	goal, err := svc.CreateGoal(ctx, userID, &model.PostGoalRequest{
		Title:   "もう達成しているトリック",
		Type:    model.GoalTypeTrick,
		TrickID: uuidPtr(trickID),
	})
	require.NoError(t, err)

	// 先に達成済みエントリが入っている状態を作る
	require.NoError(t, db.Create(&model.CompletedTrick{
		ID: uuid.New(), UserID: userID, TrickID: trickID,
	}).Error)

	updated, err := svc.UpdateGoal(ctx, userID, goal.GoalID, &model.PatchGoalRequest{
		Completed: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)

	// 返り値だけでなくDB上のゴールも完了で永続化されていること
	var stored model.SessionGoal
	require.NoError(t, db.Where("goal_id = ?", goal.GoalID).First(&stored).Error)
	assert.True(t, stored.IsCompleted, "既存エントリとの衝突でゴール更新が巻き戻ってはいけない")
	assert.EqualValues(t, 1, countCompleted(t, db, userID, trickID))
}

func Test_goalService_UpdateGoal_TextGoalHasNoSideEffect(t *testing.T) {
	ctx := context.Background()
	svc, db := newGoalServiceForTest(t)
	userID := uuid.New()

	goal, err := svc.CreateGoal(ctx, userID, &model.PostGoalRequest{
		Title: "気合を入れる",
		Type:  model.GoalTypeText,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateGoal(ctx, userID, goal.GoalID, &model.PatchGoalRequest{
		Completed: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)

	var count int64
	require.NoError(t, db.Model(&model.CompletedTrick{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "テキストゴールの完了で達成集合は変化しないはず")
}

func Test_goalService_UpdateGoal_ProgressFields(t *testing.T) {
	ctx := context.Background()
	svc, db := newGoalServiceForTest(t)
	userID := uuid.New()

	goal, err := svc.CreateGoal(ctx, userID, &model.PostGoalRequest{
		Title:         "50回オーリー",
		Type:          model.GoalTypeText,
		TargetCount:   intPtr(50),
		TimerDuration: int64Ptr(1200),
		RemainingTime: int64Ptr(1200),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateGoal(ctx, userID, goal.GoalID, &model.PatchGoalRequest{
		CurrentCount:  intPtr(20),
		RemainingTime: int64Ptr(800),
	})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.CurrentCount)
	require.NotNil(t, updated.RemainingTime)
	assert.EqualValues(t, 800, *updated.RemainingTime)
	assert.False(t, updated.IsCompleted)

	// 永続化されていることも確認
	var stored model.SessionGoal
	require.NoError(t, db.Where("goal_id = ?", goal.GoalID).First(&stored).Error)
	assert.Equal(t, 20, stored.CurrentCount)
}

func Test_goalService_UpdateGoal_Ownership(t *testing.T) {
	ctx := context.Background()
	svc, db := newGoalServiceForTest(t)
	ownerID := uuid.New()
	strangerID := uuid.New()

	goal, err := svc.CreateGoal(ctx, ownerID, &model.PostGoalRequest{
		Title: "非公開の目標",
		Type:  model.GoalTypeText,
	})
	require.NoError(t, err)

	t.Run("異常系: 所有者以外の更新は拒否され、状態も変わらない", func(t *testing.T) {
		updated, err := svc.UpdateGoal(ctx, strangerID, goal.GoalID, &model.PatchGoalRequest{
			Completed: boolPtr(true),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrForbidden)
		assert.Nil(t, updated)

		var stored model.SessionGoal
		require.NoError(t, db.Where("goal_id = ?", goal.GoalID).First(&stored).Error)
		assert.False(t, stored.IsCompleted)
	})

	t.Run("異常系: 存在しないゴールの更新はNotFound", func(t *testing.T) {
		_, err := svc.UpdateGoal(ctx, ownerID, uuid.New(), &model.PatchGoalRequest{
			Completed: boolPtr(true),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

// --- Test DeleteGoal ---
func Test_goalService_DeleteGoal(t *testing.T) {
	ctx := context.Background()
	svc, db := newGoalServiceForTest(t)
	ownerID := uuid.New()
	strangerID := uuid.New()

	goal, err := svc.CreateGoal(ctx, ownerID, &model.PostGoalRequest{
		Title: "削除テスト",
		Type:  model.GoalTypeText,
	})
	require.NoError(t, err)

	t.Run("正常系: 所有者以外の削除は黙って無視される", func(t *testing.T) {
		err := svc.DeleteGoal(ctx, strangerID, goal.GoalID)
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&model.SessionGoal{}).Where("goal_id = ?", goal.GoalID).Count(&count).Error)
		assert.EqualValues(t, 1, count, "ゴールは残っているはず")
	})

	t.Run("正常系: 所有者の削除は成功する", func(t *testing.T) {
		err := svc.DeleteGoal(ctx, ownerID, goal.GoalID)
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&model.SessionGoal{}).Where("goal_id = ?", goal.GoalID).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("異常系: 存在しないゴールの削除はNotFound", func(t *testing.T) {
		err := svc.DeleteGoal(ctx, ownerID, goal.GoalID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
