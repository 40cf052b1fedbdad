package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"trick_keeper/internal/config"
	"trick_keeper/internal/model"
	"trick_keeper/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証するミドルウェア。
// 検証に成功するとユーザーIDをコンテキストにセットし、失敗すると401を返す。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			userID, err := userIDFromAuthHeader(r, cfg)
			if err != nil {
				logger.Warn("JWT auth failed", "error", err)
				webutil.HandleError(w, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalJWTAuthMiddleware はトークンがあれば検証してユーザーIDをセットし、
// なければ匿名のまま通すミドルウェア。トリック一覧のように認証の有無で
// レスポンス内容だけが変わるルートで使う。トークンが付いているのに不正な
// 場合は匿名扱いにせず401を返す。
func OptionalJWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			if r.Header.Get("Authorization") == "" {
				// 匿名アクセス
				next.ServeHTTP(w, r)
				return
			}

			userID, err := userIDFromAuthHeader(r, cfg)
			if err != nil {
				logger.Warn("JWT auth failed on optional route", "error", err)
				webutil.HandleError(w, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userIDFromAuthHeader は Authorization ヘッダーを検証し、subjectのユーザーIDを返します
func userIDFromAuthHeader(r *http.Request, cfg *config.Config) (uuid.UUID, error) {
	// 1. Authorization ヘッダーからトークンを取得
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, model.NewAppError("UNAUTHENTICATED", "Authorizationヘッダーが必要です。", "", model.ErrUnauthenticated)
	}

	// "Bearer {token}" の形式を検証
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
		return uuid.Nil, model.NewAppError("UNAUTHENTICATED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthenticated)
	}
	tokenString := headerParts[1]

	// 2. JWTをパースし、署名と有効期限を検証
	// jwt.Parse は署名と有効期限(exp)の両方を検証してくれる
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 署名アルゴリズムが期待通り(HS256)かチェック
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthenticated)
	}

	// 3. ペイロードから subject (ユーザーID) を取得
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthenticated)
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_TOKEN", "トークンにユーザー情報が含まれていません。", "", model.ErrUnauthenticated)
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_TOKEN", "トークンのユーザー情報が不正です。", "", model.ErrUnauthenticated)
	}

	return userID, nil
}

// GetUserIDFromContext はコンテキストから認証済みユーザーのIDを取得します。
// 認証必須ルートでIDが無い場合は内部エラー（ミドルウェアの適用漏れ等）。
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, model.NewAppError("UNAUTHENTICATED", "認証情報が見つかりません。", "", model.ErrUnauthenticated)
	}
	return value, nil
}
