// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trick_keeper/internal/config"
	"trick_keeper/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = testSecret
	cfg.JWT.ExpiryHours = 1
	return cfg
}

func signedToken(t *testing.T, userID uuid.UUID, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := &model.JWTCustomClaims{
		Username: "tester",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// コンテキストのユーザーIDを記録するだけのハンドラ
func captureHandler(gotUserID *uuid.UUID, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if id, err := GetUserIDFromContext(r.Context()); err == nil {
			*gotUserID = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func Test_JWTAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	userID := uuid.New()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "正常系: 有効なトークンで通過しユーザーIDがセットされる",
			authHeader: "Bearer " + signedToken(t, userID, testSecret, time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "異常系: ヘッダーが無い",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantCalled: false,
		},
		{
			name:       "異常系: Bearer形式でない",
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
			wantCalled: false,
		},
		{
			name:       "異常系: 署名鍵が違う",
			authHeader: "Bearer " + signedToken(t, userID, "wrong-secret", time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantCalled: false,
		},
		{
			name:       "異常系: 期限切れトークン",
			authHeader: "Bearer " + signedToken(t, userID, testSecret, time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID uuid.UUID
			var called bool
			handler := JWTAuthMiddleware(cfg)(captureHandler(&gotUserID, &called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantCalled {
				assert.Equal(t, userID, gotUserID)
			}
		})
	}
}

func Test_OptionalJWTAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	userID := uuid.New()

	t.Run("正常系: ヘッダー無しは匿名で通過する", func(t *testing.T) {
		var gotUserID uuid.UUID
		var called bool
		handler := OptionalJWTAuthMiddleware(cfg)(captureHandler(&gotUserID, &called))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Equal(t, uuid.Nil, gotUserID, "匿名の場合はユーザーIDがセットされない")
	})

	t.Run("正常系: 有効なトークンがあればユーザーIDがセットされる", func(t *testing.T) {
		var gotUserID uuid.UUID
		var called bool
		handler := OptionalJWTAuthMiddleware(cfg)(captureHandler(&gotUserID, &called))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, userID, testSecret, time.Now().Add(time.Hour)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("異常系: 不正なトークンは匿名扱いにせず401", func(t *testing.T) {
		var gotUserID uuid.UUID
		var called bool
		handler := OptionalJWTAuthMiddleware(cfg)(captureHandler(&gotUserID, &called))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer invalid.token.value")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}
