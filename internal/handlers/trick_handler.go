// internal/handlers/trick_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"trick_keeper/internal/middleware"
	"trick_keeper/internal/model"
	"trick_keeper/internal/service"
	"trick_keeper/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TrickHandler struct {
	service service.TrickService
	logger  *slog.Logger
}

func NewTrickHandler(s service.TrickService, logger *slog.Logger) *TrickHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrickHandler{
		service: s,
		logger:  logger,
	}
}

// GetTricks はトリック一覧を返すハンドラ。認証は任意で、トークンが
// あれば達成・ウィッシュリストの所属フラグ付きで返す（無ければ両方false）。
// category_id クエリパラメータで絞り込める。
func (h *TrickHandler) GetTricks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTricks"))

	// 任意認証ルートなのでコンテキストにユーザーIDが無くてもエラーにしない
	var userID *uuid.UUID
	if id, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		userID = &id
		logger = logger.With(slog.String("user_id", id.String()))
	}

	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn("Invalid category ID format in query", slog.String("category_id_str", raw))
			appErr := model.NewAppError("INVALID_URL_PARAM", "category_idの形式が正しくありません。", "category_id", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		categoryID = &parsed
	}

	tricks, err := h.service.ListTricks(r.Context(), userID, categoryID)
	if err != nil {
		logger.Error("Error listing tricks in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if tricks == nil {
		tricks = []*model.TrickWithFlagsResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, tricks, logger)
}

// GetTrick は特定のトリックを取得するためのハンドラ
func (h *TrickHandler) GetTrick(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTrick"))

	trickID, ok := parseTrickID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("trick_id", trickID.String()))

	trick, err := h.service.GetTrick(r.Context(), trickID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Trick not found in service")
		} else {
			logger.Error("Error getting trick from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, trick, logger)
}

// PostTrick は新しいトリックをカタログに追加するためのハンドラ
func (h *TrickHandler) PostTrick(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostTrick"))

	var req model.PostTrickRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	trick, err := h.service.CreateTrick(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating trick in service", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Trick created successfully", slog.String("trick_id", trick.TrickID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, trick, logger)
}

// PutTrick は特定のトリックを置き換えるためのハンドラ
func (h *TrickHandler) PutTrick(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutTrick"))

	trickID, ok := parseTrickID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("trick_id", trickID.String()))

	var req model.PutTrickRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	trick, err := h.service.UpdateTrick(r.Context(), trickID, &req)
	if err != nil {
		logger.Error("Error updating trick in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Trick updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, trick, logger)
}

// DeleteTrick は特定のトリックをカタログから削除するためのハンドラ
func (h *TrickHandler) DeleteTrick(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteTrick"))

	trickID, ok := parseTrickID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("trick_id", trickID.String()))

	if err := h.service.DeleteTrick(r.Context(), trickID); err != nil {
		logger.Error("Error deleting trick in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Trick deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

func parseTrickID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	trickIDStr := chi.URLParam(r, "trick_id")
	trickID, err := uuid.Parse(trickIDStr)
	if err != nil {
		logger.Warn("Invalid trick ID format in URL", slog.String("trick_id_str", trickIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "trick_idの形式が正しくありません。", "trick_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return trickID, true
}
