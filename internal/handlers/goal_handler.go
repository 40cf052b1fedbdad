// internal/handlers/goal_handler.go
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

type GoalHandler struct {
	service service.GoalService
	logger  *slog.Logger
}

func NewGoalHandler(s service.GoalService, logger *slog.Logger) *GoalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalHandler{
		service: s,
		logger:  logger,
	}
}

// GetGoals は認証済みユーザーのゴール一覧を新しい順に返すハンドラ
func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetGoals"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	goals, err := h.service.ListGoals(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing goals in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if goals == nil {
		goals = []*model.SessionGoal{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, goals, logger)
}

// PostGoal は新しいゴールを作成するハンドラ
func (h *GoalHandler) PostGoal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostGoal"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.PostGoalRequest
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

	goal, err := h.service.CreateGoal(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating goal in service", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Goal created successfully", slog.String("goal_id", goal.GoalID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, goal, logger)
}

// PatchGoal はゴールの進捗（回数・残り時間・完了フラグ）を更新するハンドラ。
// 完了フラグが false→true に変わったトリック連動ゴールでは、リンクされた
// トリックが達成済み集合に自動で追加される。
func (h *GoalHandler) PatchGoal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchGoal"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	goalID, ok := parseGoalID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("goal_id", goalID.String()))

	var req model.PatchGoalRequest
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

	goal, err := h.service.UpdateGoal(r.Context(), userID, goalID, &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrForbidden) {
			logger.Warn("Goal update rejected", slog.Any("error", err))
		} else {
			logger.Error("Error updating goal in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Goal updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, goal, logger)
}

// DeleteGoal はゴールを削除するハンドラ
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteGoal"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	goalID, ok := parseGoalID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("goal_id", goalID.String()))

	if err := h.service.DeleteGoal(r.Context(), userID, goalID); err != nil {
		logger.Error("Error deleting goal in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Goal deleted successfully (or was not owned by the caller)")
	w.WriteHeader(http.StatusNoContent)
}

func parseGoalID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	goalIDStr := chi.URLParam(r, "goal_id")
	goalID, err := uuid.Parse(goalIDStr)
	if err != nil {
		logger.Warn("Invalid goal ID format in URL", slog.String("goal_id_str", goalIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "goal_idの形式が正しくありません。", "goal_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return goalID, true
}
