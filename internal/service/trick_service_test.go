// internal/service/trick_service_test.go
package service

import (
	"context"
	"testing"

	"trick_keeper/internal/model"
	"trick_keeper/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTrickServiceForTest(t *testing.T) (TrickService, TrickActionService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	completedRepo := repository.NewGormCompletedTrickRepository()
	wishlistRepo := repository.NewGormWishlistTrickRepository()
	trickSvc := NewTrickService(db, repository.NewGormTrickRepository(), completedRepo, wishlistRepo)
	actionSvc := NewTrickActionService(db, completedRepo, wishlistRepo)
	return trickSvc, actionSvc, db
}

// --- Test ListTricks (所属フラグ) ---
func Test_trickService_ListTricks_Flags(t *testing.T) {
	ctx := context.Background()
	svc, actionSvc, _ := newTrickServiceForTest(t)

	categoryID := uuid.New()
	done, err := svc.CreateTrick(ctx, &model.PostTrickRequest{Name: "kickflip", CategoryID: categoryID})
	require.NoError(t, err)
	wished, err := svc.CreateTrick(ctx, &model.PostTrickRequest{Name: "heelflip", CategoryID: categoryID})
	require.NoError(t, err)
	untouched, err := svc.CreateTrick(ctx, &model.PostTrickRequest{Name: "treflip", CategoryID: categoryID})
	require.NoError(t, err)

	userID := uuid.New()
	require.NoError(t, actionSvc.AddToCompleted(ctx, userID, done.TrickID))
	require.NoError(t, actionSvc.AddToWishlist(ctx, userID, wished.TrickID))

	t.Run("正常系: 認証済みユーザーにはフラグ付きで返る", func(t *testing.T) {
		tricks, err := svc.ListTricks(ctx, &userID, nil)
		require.NoError(t, err)
		require.Len(t, tricks, 3)

		byID := make(map[uuid.UUID]*model.TrickWithFlagsResponse, 3)
		for _, tr := range tricks {
			byID[tr.TrickID] = tr
		}
		assert.True(t, byID[done.TrickID].Completed)
		assert.False(t, byID[done.TrickID].Wishlisted)
		assert.False(t, byID[wished.TrickID].Completed)
		assert.True(t, byID[wished.TrickID].Wishlisted)
		assert.False(t, byID[untouched.TrickID].Completed)
		assert.False(t, byID[untouched.TrickID].Wishlisted)
	})

	t.Run("正常系: 未認証ではフラグは常にfalse", func(t *testing.T) {
		tricks, err := svc.ListTricks(ctx, nil, nil)
		require.NoError(t, err)
		require.Len(t, tricks, 3)
		for _, tr := range tricks {
			assert.False(t, tr.Completed)
			assert.False(t, tr.Wishlisted)
		}
	})

	t.Run("正常系: 別のユーザーには自分のフラグだけが見える", func(t *testing.T) {
		otherID := uuid.New()
		tricks, err := svc.ListTricks(ctx, &otherID, nil)
		require.NoError(t, err)
		for _, tr := range tricks {
			assert.False(t, tr.Completed)
			assert.False(t, tr.Wishlisted)
		}
	})

	t.Run("正常系: カテゴリで絞り込める", func(t *testing.T) {
		otherCat := uuid.New()
		_, err := svc.CreateTrick(ctx, &model.PostTrickRequest{Name: "boardslide", CategoryID: otherCat})
		require.NoError(t, err)

		tricks, err := svc.ListTricks(ctx, nil, &otherCat)
		require.NoError(t, err)
		require.Len(t, tricks, 1)
		assert.Equal(t, "boardslide", tricks[0].Name)
	})
}

// --- Test ListCompletedTricks / ListWishlistTricks ---
func Test_trickService_UserLists(t *testing.T) {
	ctx := context.Background()
	svc, actionSvc, _ := newTrickServiceForTest(t)

	categoryID := uuid.New()
	trick, err := svc.CreateTrick(ctx, &model.PostTrickRequest{Name: "ollie", CategoryID: categoryID})
	require.NoError(t, err)

	userID := uuid.New()
	require.NoError(t, actionSvc.AddToCompleted(ctx, userID, trick.TrickID))
	require.NoError(t, actionSvc.AddToWishlist(ctx, userID, trick.TrickID))

	t.Run("正常系: 達成済み一覧には達成日時が付く", func(t *testing.T) {
		completed, err := svc.ListCompletedTricks(ctx, userID)
		require.NoError(t, err)
		require.Len(t, completed, 1)
		assert.Equal(t, trick.TrickID, completed[0].TrickID)
		assert.Equal(t, "ollie", completed[0].Name)
		assert.False(t, completed[0].CompletedAt.IsZero())
	})

	t.Run("正常系: ウィッシュリスト一覧", func(t *testing.T) {
		wishlist, err := svc.ListWishlistTricks(ctx, userID)
		require.NoError(t, err)
		require.Len(t, wishlist, 1)
		assert.Equal(t, trick.TrickID, wishlist[0].TrickID)
	})

	t.Run("正常系: 他のユーザーの一覧は空", func(t *testing.T) {
		completed, err := svc.ListCompletedTricks(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, completed)
	})
}

// --- Test Trick CRUD ---
func Test_trickService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc, _, db := newTrickServiceForTest(t)

	categoryID := uuid.New()
	trick, err := svc.CreateTrick(ctx, &model.PostTrickRequest{Name: "shuvit", CategoryID: categoryID})
	require.NoError(t, err)

	t.Run("正常系: 取得", func(t *testing.T) {
		got, err := svc.GetTrick(ctx, trick.TrickID)
		require.NoError(t, err)
		assert.Equal(t, "shuvit", got.Name)
	})

	t.Run("正常系: 更新で名前とカテゴリが変わる", func(t *testing.T) {
		newCat := uuid.New()
		updated, err := svc.UpdateTrick(ctx, trick.TrickID, &model.PutTrickRequest{Name: "pop shuvit", CategoryID: newCat})
		require.NoError(t, err)
		assert.Equal(t, "pop shuvit", updated.Name)
		assert.Equal(t, newCat, updated.CategoryID)
	})

	t.Run("正常系: 削除", func(t *testing.T) {
		require.NoError(t, svc.DeleteTrick(ctx, trick.TrickID))

		var count int64
		require.NoError(t, db.Model(&model.Trick{}).Where("trick_id = ?", trick.TrickID).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("異常系: 存在しないトリックの取得はNotFound", func(t *testing.T) {
		got, err := svc.GetTrick(ctx, trick.TrickID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("異常系: 存在しないトリックの削除はNotFound", func(t *testing.T) {
		err := svc.DeleteTrick(ctx, trick.TrickID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
