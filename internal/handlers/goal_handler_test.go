// internal/handlers/goal_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"trick_keeper/internal/model"
	"trick_keeper/internal/repository"
	"trick_keeper/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー ---
func setupGoalTestServer(t *testing.T) (*chi.Mux, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SessionGoal{}, &model.CompletedTrick{}))

	goalService := service.NewGoalService(db, repository.NewGormGoalRepository(), repository.NewGormCompletedTrickRepository())
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewGoalHandler(goalService, testLogger)

	r := chi.NewRouter()
	r.Route("/goals", func(r chi.Router) {
		r.Get("/", handler.GetGoals)
		r.Post("/", handler.PostGoal)
		r.Patch("/{goal_id}", handler.PatchGoal)
		r.Delete("/{goal_id}", handler.DeleteGoal)
	})
	return r, db
}

// 認証ミドルウェアを通さない代わりに、コンテキストへ直接ユーザーIDを入れる
func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), model.UserIDKey, userID)
	return req.WithContext(ctx)
}

func Test_GoalHandler_PostGoal(t *testing.T) {
	r, _ := setupGoalTestServer(t)
	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "正常系: テキストゴールの作成",
			body:       `{"title":"毎日練習する","type":"text"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "正常系: 回数つきゴールの作成",
			body:       `{"title":"50回オーリー","type":"text","target_count":50}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "異常系: タイトルが空",
			body:       `{"title":"","type":"text"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "異常系: 不正なゴール種別",
			body:       `{"title":"x","type":"unknown"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "異常系: トリック連動なのにトリックIDが無い",
			body:       `{"title":"x","type":"trick"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "異常系: 未知のフィールドを含むボディ",
			body:       `{"title":"x","type":"text","bogus":1}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, authedRequest(http.MethodPost, "/goals", []byte(tt.body), userID))
			assert.Equal(t, tt.wantStatus, rec.Code, "body: %s", rec.Body.String())

			if tt.wantStatus == http.StatusCreated {
				var goal model.SessionGoal
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))
				assert.NotEqual(t, uuid.Nil, goal.GoalID)
				assert.False(t, goal.IsCompleted)
			}
		})
	}
}

func Test_GoalHandler_PatchGoal_Completion(t *testing.T) {
	r, db := setupGoalTestServer(t)
	userID := uuid.New()
	trickID := uuid.New()

	// トリック連動ゴールを作成
	rec := httptest.NewRecorder()
	body := fmt.Sprintf(`{"title":"このトリックを決める","type":"trick","trick_id":"%s"}`, trickID)
	r.ServeHTTP(rec, authedRequest(http.MethodPost, "/goals", []byte(body), userID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var goal model.SessionGoal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))

	t.Run("正常系: 完了で達成済みへの追加が走る", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(http.MethodPatch, "/goals/"+goal.GoalID.String(), []byte(`{"completed":true}`), userID))
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		var updated model.SessionGoal
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.True(t, updated.IsCompleted)

		var count int64
		require.NoError(t, db.Model(&model.CompletedTrick{}).
			Where("user_id = ? AND trick_id = ?", userID, trickID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("異常系: 他人のゴールの更新は403", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(http.MethodPatch, "/goals/"+goal.GoalID.String(), []byte(`{"completed":false}`), uuid.New()))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("異常系: 存在しないゴールは404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(http.MethodPatch, "/goals/"+uuid.NewString(), []byte(`{"completed":true}`), userID))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("異常系: goal_idの形式が不正なら400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(http.MethodPatch, "/goals/not-a-uuid", []byte(`{"completed":true}`), userID))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_GoalHandler_GetAndDelete(t *testing.T) {
	r, _ := setupGoalTestServer(t)
	userID := uuid.New()

	// 2件作成
	for _, title := range []string{"ひとつめ", "ふたつめ"} {
		rec := httptest.NewRecorder()
		body := fmt.Sprintf(`{"title":"%s","type":"text"}`, title)
		r.ServeHTTP(rec, authedRequest(http.MethodPost, "/goals", []byte(body), userID))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodGet, "/goals", nil, userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var goals []model.SessionGoal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goals))
	require.Len(t, goals, 2)

	t.Run("正常系: 削除は204で一覧から消える", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(http.MethodDelete, "/goals/"+goals[0].GoalID.String(), nil, userID))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(http.MethodGet, "/goals", nil, userID))
		require.Equal(t, http.StatusOK, rec.Code)
		var remaining []model.SessionGoal
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &remaining))
		assert.Len(t, remaining, 1)
	})

	t.Run("正常系: 他人の削除リクエストは204だがゴールは残る", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(http.MethodDelete, "/goals/"+goals[1].GoalID.String(), nil, uuid.New()))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, authedRequest(http.MethodGet, "/goals", nil, userID))
		var remaining []model.SessionGoal
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &remaining))
		assert.Len(t, remaining, 1)
	})

	t.Run("異常系: 認証情報が無ければ401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/goals", nil)
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
