// internal/handlers/action_handler.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"trick_keeper/internal/middleware"
	"trick_keeper/internal/model"
	"trick_keeper/internal/service"
	"trick_keeper/internal/webutil"

	"github.com/google/uuid"
)

// ActionHandler はユーザーの達成済み・ウィッシュリスト集合を操作するハンドラ群。
// 追加・削除は冪等で、2回目以降のリクエストも同じステータスを返す。
type ActionHandler struct {
	actionService service.TrickActionService
	trickService  service.TrickService
	logger        *slog.Logger
}

func NewActionHandler(actionService service.TrickActionService, trickService service.TrickService, logger *slog.Logger) *ActionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionHandler{
		actionService: actionService,
		trickService:  trickService,
		logger:        logger,
	}
}

// GetCompletedTricks は達成済みトリックの一覧（達成日時つき）を返すハンドラ
func (h *ActionHandler) GetCompletedTricks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCompletedTricks"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	tricks, err := h.trickService.ListCompletedTricks(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing completed tricks in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if tricks == nil {
		tricks = []*model.CompletedTrickResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, tricks, logger)
}

// AddCompletedTrick はトリックを達成済み集合に追加するハンドラ
func (h *ActionHandler) AddCompletedTrick(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, "AddCompletedTrick", h.actionService.AddToCompleted)
}

// RemoveCompletedTrick はトリックを達成済み集合から外すハンドラ
func (h *ActionHandler) RemoveCompletedTrick(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, "RemoveCompletedTrick", h.actionService.RemoveFromCompleted)
}

// GetWishlistTricks はウィッシュリストのトリック一覧を返すハンドラ
func (h *ActionHandler) GetWishlistTricks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWishlistTricks"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	tricks, err := h.trickService.ListWishlistTricks(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing wishlist tricks in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if tricks == nil {
		tricks = []*model.Trick{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, tricks, logger)
}

// AddWishlistTrick はトリックをウィッシュリストに追加するハンドラ
func (h *ActionHandler) AddWishlistTrick(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, "AddWishlistTrick", h.actionService.AddToWishlist)
}

// RemoveWishlistTrick はトリックをウィッシュリストから外すハンドラ
func (h *ActionHandler) RemoveWishlistTrick(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, "RemoveWishlistTrick", h.actionService.RemoveFromWishlist)
}

// handleAction は4つの集合操作で共通の認証・デコード・検証の流れをまとめたもの
func (h *ActionHandler) handleAction(w http.ResponseWriter, r *http.Request, name string, action func(ctx context.Context, userID, trickID uuid.UUID) error) {
	logger := h.logger.With(slog.String("handler", name))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.TrickActionRequest
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
	logger = logger.With(slog.String("trick_id", req.TrickID.String()))

	if err := action(r.Context(), userID, req.TrickID); err != nil {
		logger.Error("Error applying trick action in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Trick action applied successfully")
	w.WriteHeader(http.StatusNoContent)
}
