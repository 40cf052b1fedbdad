// internal/handlers/category_handler.go
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

type CategoryHandler struct {
	service service.CategoryService
	logger  *slog.Logger
}

func NewCategoryHandler(s service.CategoryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{
		service: s,
		logger:  logger,
	}
}

// GetCategories はカテゴリ一覧を返すハンドラ
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategories"))

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		logger.Error("Error listing categories in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if categories == nil {
		categories = []*model.Category{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, categories, logger)
}

// GetCategory は特定のカテゴリを取得するためのハンドラ
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategory"))

	categoryID, ok := parseCategoryID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category_id", categoryID.String()))

	category, err := h.service.GetCategory(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Category not found in service")
		} else {
			logger.Error("Error getting category from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, category, logger)
}

// PostCategory は新しいカテゴリを作成するためのハンドラ
func (h *CategoryHandler) PostCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCategory"))

	var req model.PostCategoryRequest
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

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating category in service", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Category created successfully", slog.String("category_id", category.CategoryID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, category, logger)
}

// PutCategory は特定のカテゴリを置き換えるためのハンドラ
func (h *CategoryHandler) PutCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutCategory"))

	categoryID, ok := parseCategoryID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category_id", categoryID.String()))

	var req model.PutCategoryRequest
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

	category, err := h.service.UpdateCategory(r.Context(), categoryID, &req)
	if err != nil {
		logger.Error("Error updating category in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Category updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, category, logger)
}

// DeleteCategory は特定のカテゴリを削除するためのハンドラ
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCategory"))

	categoryID, ok := parseCategoryID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category_id", categoryID.String()))

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		logger.Error("Error deleting category in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Category deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// GetCategoryStats は認証済みユーザーから見たカテゴリの進捗を返すハンドラ
func (h *CategoryHandler) GetCategoryStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCategoryStats"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	categoryID, ok := parseCategoryID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("category_id", categoryID.String()))

	stats, err := h.service.GetCategoryStats(r.Context(), userID, categoryID)
	if err != nil {
		logger.Error("Error getting category stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// GetAllCategoryStats は全カテゴリの進捗一覧を返すハンドラ
func (h *CategoryHandler) GetAllCategoryStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAllCategoryStats"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	stats, err := h.service.ListCategoryStats(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing category stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if stats == nil {
		stats = []*model.CategoryStatsResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

func parseCategoryID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	categoryIDStr := chi.URLParam(r, "category_id")
	categoryID, err := uuid.Parse(categoryIDStr)
	if err != nil {
		logger.Warn("Invalid category ID format in URL", slog.String("category_id_str", categoryIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "category_idの形式が正しくありません。", "category_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return categoryID, true
}
