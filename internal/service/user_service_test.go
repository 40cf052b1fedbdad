// internal/service/user_service_test.go
package service

import (
	"context"
	"testing"

	"trick_keeper/internal/config"
	"trick_keeper/internal/model"
	"trick_keeper/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserServiceForTest(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key"
	cfg.JWT.ExpiryHours = 1
	svc := NewUserService(
		db,
		cfg,
		repository.NewGormUserRepository(),
		repository.NewGormCompletedTrickRepository(),
		repository.NewGormWishlistTrickRepository(),
		repository.NewGormGoalRepository(),
	)
	return svc, db
}

// --- Test Register / Login ---
func Test_userService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserServiceForTest(t)

	req := &model.RegisterRequest{
		Name:     "テスト太郎",
		Username: "taro",
		Email:    "taro@example.com",
		Password: "password123",
	}

	t.Run("正常系: 登録成功・パスワードは平文で保存されない", func(t *testing.T) {
		user, err := svc.Register(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEqual(t, uuid.Nil, user.UserID)
		assert.Equal(t, "taro", user.Username)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("異常系: 同じユーザー名は登録できない", func(t *testing.T) {
		dup := *req
		dup.Email = "other@example.com"
		user, err := svc.Register(ctx, &dup)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		assert.Nil(t, user)
	})

	t.Run("異常系: 同じメールアドレスは登録できない", func(t *testing.T) {
		dup := *req
		dup.Username = "jiro"
		user, err := svc.Register(ctx, &dup)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		assert.Nil(t, user)
	})

	t.Run("正常系: ログイン成功でsubにユーザーIDが入ったJWTが返る", func(t *testing.T) {
		token, err := svc.Login(ctx, &model.LoginRequest{Username: "taro", Password: "password123"})
		require.NoError(t, err)
		require.NotEmpty(t, token)

		parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret-key"), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)
		sub, err := parsed.Claims.GetSubject()
		require.NoError(t, err)
		_, err = uuid.Parse(sub)
		assert.NoError(t, err, "subはユーザーIDのUUIDであるはず")
	})

	t.Run("異常系: パスワードが違うと認証エラー", func(t *testing.T) {
		token, err := svc.Login(ctx, &model.LoginRequest{Username: "taro", Password: "wrong-password"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthenticated)
		assert.Empty(t, token)
	})

	t.Run("異常系: 存在しないユーザーも同じ認証エラー", func(t *testing.T) {
		token, err := svc.Login(ctx, &model.LoginRequest{Username: "nobody", Password: "password123"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnauthenticated)
		assert.Empty(t, token)
	})
}

// --- Test GetLeaderboard ---
func Test_userService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()
	svc, db := newUserServiceForTest(t)

	// カテゴリ2つ、トリックを投入
	catA := &model.Category{CategoryID: uuid.New(), Name: "フリップ系"}
	catB := &model.Category{CategoryID: uuid.New(), Name: "グラインド系"}
	require.NoError(t, db.Create(catA).Error)
	require.NoError(t, db.Create(catB).Error)

	tricksA := make([]*model.Trick, 5)
	for i := range tricksA {
		tricksA[i] = &model.Trick{TrickID: uuid.New(), Name: "trickA", CategoryID: catA.CategoryID}
		require.NoError(t, db.Create(tricksA[i]).Error)
	}
	trickB := &model.Trick{TrickID: uuid.New(), Name: "trickB", CategoryID: catB.CategoryID}
	require.NoError(t, db.Create(trickB).Error)

	// ユーザー3人: Cは5件達成、Aは3件、Bは0件
	userC := &model.User{UserID: uuid.New(), Name: "C", Username: "user_c", Email: "c@example.com", PasswordHash: "x"}
	userA := &model.User{UserID: uuid.New(), Name: "A", Username: "user_a", Email: "a@example.com", PasswordHash: "x"}
	userB := &model.User{UserID: uuid.New(), Name: "B", Username: "user_b", Email: "b@example.com", PasswordHash: "x"}
	for _, u := range []*model.User{userC, userA, userB} {
		require.NoError(t, db.Create(u).Error)
	}

	for i := 0; i < 4; i++ {
		require.NoError(t, db.Create(&model.CompletedTrick{ID: uuid.New(), UserID: userC.UserID, TrickID: tricksA[i].TrickID}).Error)
	}
	require.NoError(t, db.Create(&model.CompletedTrick{ID: uuid.New(), UserID: userC.UserID, TrickID: trickB.TrickID}).Error)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&model.CompletedTrick{ID: uuid.New(), UserID: userA.UserID, TrickID: tricksA[i].TrickID}).Error)
	}
	require.NoError(t, db.Create(&model.CompletedTrick{ID: uuid.New(), UserID: userA.UserID, TrickID: trickB.TrickID}).Error)

	t.Run("正常系: 達成数の降順で全ユーザーが返り、0件のユーザーも含まれる", func(t *testing.T) {
		entries, err := svc.GetLeaderboard(ctx, nil)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, userC.UserID, entries[0].UserID)
		assert.EqualValues(t, 5, entries[0].CompletedCount)
		assert.Equal(t, userA.UserID, entries[1].UserID)
		assert.EqualValues(t, 3, entries[1].CompletedCount)
		assert.Equal(t, userB.UserID, entries[2].UserID)
		assert.EqualValues(t, 0, entries[2].CompletedCount)
	})

	t.Run("正常系: カテゴリ指定でそのカテゴリ内の達成数だけを数える", func(t *testing.T) {
		entries, err := svc.GetLeaderboard(ctx, &catB.CategoryID)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		counts := make(map[uuid.UUID]int64, 3)
		for _, e := range entries {
			counts[e.UserID] = e.CompletedCount
		}
		assert.EqualValues(t, 1, counts[userC.UserID])
		assert.EqualValues(t, 1, counts[userA.UserID])
		assert.EqualValues(t, 0, counts[userB.UserID])
	})
}

// --- Test DeleteUser (カスケード) ---
func Test_userService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, db := newUserServiceForTest(t)

	user, err := svc.Register(ctx, &model.RegisterRequest{
		Name:     "消える人",
		Username: "vanish",
		Email:    "vanish@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	trickID := uuid.New()
	require.NoError(t, db.Create(&model.CompletedTrick{ID: uuid.New(), UserID: user.UserID, TrickID: trickID}).Error)
	require.NoError(t, db.Create(&model.WishlistTrick{ID: uuid.New(), UserID: user.UserID, TrickID: trickID}).Error)
	require.NoError(t, db.Create(&model.SessionGoal{GoalID: uuid.New(), UserID: user.UserID, Title: "目標", Type: model.GoalTypeText}).Error)

	err = svc.DeleteUser(ctx, user.UserID)
	require.NoError(t, err)

	var userCount, completedCount, wishlistCount, goalCount int64
	require.NoError(t, db.Model(&model.User{}).Where("user_id = ?", user.UserID).Count(&userCount).Error)
	require.NoError(t, db.Model(&model.CompletedTrick{}).Where("user_id = ?", user.UserID).Count(&completedCount).Error)
	require.NoError(t, db.Model(&model.WishlistTrick{}).Where("user_id = ?", user.UserID).Count(&wishlistCount).Error)
	require.NoError(t, db.Model(&model.SessionGoal{}).Where("user_id = ?", user.UserID).Count(&goalCount).Error)
	assert.EqualValues(t, 0, userCount)
	assert.EqualValues(t, 0, completedCount)
	assert.EqualValues(t, 0, wishlistCount)
	assert.EqualValues(t, 0, goalCount)

	t.Run("異常系: 存在しないユーザーの削除はNotFound", func(t *testing.T) {
		err := svc.DeleteUser(ctx, user.UserID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

// --- Test UpdateProfileImage ---
func Test_userService_UpdateProfileImage(t *testing.T) {
	ctx := context.Background()
	svc, db := newUserServiceForTest(t)

	user, err := svc.Register(ctx, &model.RegisterRequest{
		Name:     "画像の人",
		Username: "imager",
		Email:    "imager@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	err = svc.UpdateProfileImage(ctx, user.UserID, "data:image/png;base64,abc123")
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.Where("user_id = ?", user.UserID).First(&stored).Error)
	require.NotNil(t, stored.ProfileImage)
	assert.Equal(t, "data:image/png;base64,abc123", *stored.ProfileImage)

	t.Run("異常系: 存在しないユーザーはNotFound", func(t *testing.T) {
		err := svc.UpdateProfileImage(ctx, uuid.New(), "x")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
