package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/ports/inbound"
	apperrors "github.com/mealwise/v1/pkg/errors"
	"go.uber.org/zap"
)

// NutritionAPIHandlers handles meal analysis API requests
type NutritionAPIHandlers struct {
	service inbound.NutritionService
	logger  *zap.Logger
}

// NewNutritionAPIHandlers creates a new nutrition API handlers instance
func NewNutritionAPIHandlers(service inbound.NutritionService, logger *zap.Logger) *NutritionAPIHandlers {
	return &NutritionAPIHandlers{
		service: service,
		logger:  logger,
	}
}

// AnalyzeMealRequest is the request body for meal photo analysis
type AnalyzeMealRequest struct {
	UserID            string   `json:"user_id" validate:"required,uuid"`
	ImageBase64       string   `json:"image_base64"`
	ImageMIME         string   `json:"image_mime"`
	Language          string   `json:"language"`
	UpdateText        string   `json:"update_text"`
	EditedIngredients []string `json:"edited_ingredients"`
}

// AnalyzeMeal handles POST /api/v1/analyses
func (h *NutritionAPIHandlers) AnalyzeMeal(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeMealRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}

	var imageData []byte
	if req.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			writeError(w, r, h.logger, apperrors.NewBadRequestError("image_base64 is not valid base64"))
			return
		}
		imageData = decoded
	}

	result, err := h.service.AnalyzeMealPhoto(r.Context(), inbound.AnalyzeMealCommand{
		UserID:            uuid.MustParse(req.UserID),
		ImageData:         imageData,
		ImageMIME:         req.ImageMIME,
		Language:          req.Language,
		UpdateText:        req.UpdateText,
		EditedIngredients: req.EditedIngredients,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    result,
		Message: "Meal analyzed successfully",
	})
}

// UpdateAnalysisRequest is the request body for revising an analysis
type UpdateAnalysisRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	UpdateText string `json:"update_text" validate:"required"`
	Language   string `json:"language"`
}

// UpdateAnalysis handles PUT /api/v1/analyses/{id}
func (h *NutritionAPIHandlers) UpdateAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid analysis id"))
		return
	}

	var req UpdateAnalysisRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}

	result, err := h.service.UpdateMealAnalysis(r.Context(), inbound.UpdateAnalysisCommand{
		UserID:     uuid.MustParse(req.UserID),
		AnalysisID: analysisID,
		UpdateText: req.UpdateText,
		Language:   req.Language,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
		Message: "Analysis updated successfully",
	})
}
