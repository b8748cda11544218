package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/ports/inbound"
	apperrors "github.com/mealwise/v1/pkg/errors"
	"go.uber.org/zap"
)

// MenuAPIHandlers handles menu plan API requests
type MenuAPIHandlers struct {
	service inbound.MenuService
	logger  *zap.Logger
}

// NewMenuAPIHandlers creates a new menu API handlers instance
func NewMenuAPIHandlers(service inbound.MenuService, logger *zap.Logger) *MenuAPIHandlers {
	return &MenuAPIHandlers{
		service: service,
		logger:  logger,
	}
}

// QuestionnaireRequest carries the self-reported profile fields
type QuestionnaireRequest struct {
	Age           int     `json:"age" validate:"gte=0,lte=150"`
	WeightKG      float64 `json:"weight_kg" validate:"gte=0"`
	HeightCM      float64 `json:"height_cm" validate:"gte=0"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
}

// PersonalizedMenuRequest is the request body for personalized menu generation
type PersonalizedMenuRequest struct {
	UserID             string               `json:"user_id" validate:"required,uuid"`
	Days               int                  `json:"days" validate:"gte=0,lte=31"`
	MealsPerDay        string               `json:"meals_per_day"`
	TargetCalories     *int                 `json:"target_calories" validate:"omitempty,gt=0"`
	DailyBudget        float64              `json:"daily_budget" validate:"gte=0"`
	DietaryConstraints []string             `json:"dietary_constraints"`
	Questionnaire      QuestionnaireRequest `json:"questionnaire"`
	Language           string               `json:"language"`
}

// GeneratePersonalized handles POST /api/v1/menus/personalized
func (h *MenuAPIHandlers) GeneratePersonalized(w http.ResponseWriter, r *http.Request) {
	var req PersonalizedMenuRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}

	plan, err := h.service.GeneratePersonalizedMenu(r.Context(), inbound.PersonalizedMenuCommand{
		UserID:             uuid.MustParse(req.UserID),
		Days:               req.Days,
		MealsPerDay:        req.MealsPerDay,
		TargetCalories:     req.TargetCalories,
		DailyBudget:        req.DailyBudget,
		DietaryConstraints: req.DietaryConstraints,
		Questionnaire: inbound.Questionnaire{
			Age:           req.Questionnaire.Age,
			WeightKG:      req.Questionnaire.WeightKG,
			HeightCM:      req.Questionnaire.HeightCM,
			Gender:        req.Questionnaire.Gender,
			ActivityLevel: req.Questionnaire.ActivityLevel,
			Goal:          req.Questionnaire.Goal,
		},
		Language: req.Language,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    plan,
		Message: "Menu generated successfully",
	})
}

// CustomMenuRequest is the request body for custom menu generation
type CustomMenuRequest struct {
	UserID         string  `json:"user_id" validate:"required,uuid"`
	Days           int     `json:"days" validate:"gte=0,lte=31"`
	MealsPerDay    string  `json:"meals_per_day"`
	TargetCalories *int    `json:"target_calories" validate:"omitempty,gt=0"`
	DailyBudget    float64 `json:"daily_budget" validate:"gte=0"`
	CustomRequest  string  `json:"custom_request" validate:"required"`
	Language       string  `json:"language"`
}

// GenerateCustom handles POST /api/v1/menus/custom
func (h *MenuAPIHandlers) GenerateCustom(w http.ResponseWriter, r *http.Request) {
	var req CustomMenuRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}

	plan, err := h.service.GenerateCustomMenu(r.Context(), inbound.CustomMenuCommand{
		UserID:         uuid.MustParse(req.UserID),
		Days:           req.Days,
		MealsPerDay:    req.MealsPerDay,
		TargetCalories: req.TargetCalories,
		DailyBudget:    req.DailyBudget,
		CustomRequest:  req.CustomRequest,
		Language:       req.Language,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    plan,
		Message: "Menu generated successfully",
	})
}

// ReplaceMealRequest is the request body for meal replacement
type ReplaceMealRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	Preferences string `json:"preferences"`
}

// ReplaceMeal handles POST /api/v1/menus/{menuID}/meals/{mealID}/replace
func (h *MenuAPIHandlers) ReplaceMeal(w http.ResponseWriter, r *http.Request) {
	menuID, err := uuid.Parse(chi.URLParam(r, "menuID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid menu id"))
		return
	}
	mealID, err := uuid.Parse(chi.URLParam(r, "mealID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid meal id"))
		return
	}

	var req ReplaceMealRequest
	if !decodeAndValidate(w, r, h.logger, &req) {
		return
	}

	meal, err := h.service.ReplaceMeal(r.Context(), inbound.ReplaceMealCommand{
		UserID:      uuid.MustParse(req.UserID),
		MenuID:      menuID,
		MealID:      mealID,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    meal,
		Message: "Meal replaced successfully",
	})
}

// ShoppingList handles GET /api/v1/menus/{menuID}/shopping-list
func (h *MenuAPIHandlers) ShoppingList(w http.ResponseWriter, r *http.Request) {
	menuID, err := uuid.Parse(chi.URLParam(r, "menuID"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("invalid menu id"))
		return
	}
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("user_id query parameter is required"))
		return
	}

	list, err := h.service.GenerateShoppingList(r.Context(), userID, menuID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    list,
		Message: "Shopping list generated successfully",
	})
}
