// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the transport layer invokes.
package inbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/domain/menu"
	"github.com/mealwise/v1/internal/domain/nutrition"
)

// NutritionService exposes meal photo analysis use cases.
// Analysis and update degrade to deterministic fallback content when the
// model is unavailable or returns garbage; they never fail on AI errors.
type NutritionService interface {
	AnalyzeMealPhoto(ctx context.Context, cmd AnalyzeMealCommand) (*AnalysisResult, error)
	UpdateMealAnalysis(ctx context.Context, cmd UpdateAnalysisCommand) (*AnalysisResult, error)
}

// MenuService exposes menu plan use cases. Unlike analysis, menu
// operations surface not-found and structural-validation errors.
type MenuService interface {
	GeneratePersonalizedMenu(ctx context.Context, cmd PersonalizedMenuCommand) (*menu.Plan, error)
	GenerateCustomMenu(ctx context.Context, cmd CustomMenuCommand) (*menu.Plan, error)
	ReplaceMeal(ctx context.Context, cmd ReplaceMealCommand) (*menu.Meal, error)
	GenerateShoppingList(ctx context.Context, userID, menuID uuid.UUID) (*menu.ShoppingList, error)
}

// AnalyzeMealCommand carries a meal photo and its analysis context.
type AnalyzeMealCommand struct {
	UserID    uuid.UUID
	ImageData []byte
	ImageMIME string
	Language  string

	// UpdateText optionally refines a fresh analysis ("no dressing").
	UpdateText string

	// EditedIngredients optionally pins the ingredient list the user
	// corrected by hand.
	EditedIngredients []string
}

// UpdateAnalysisCommand refines a stored analysis with free-text
// instructions.
type UpdateAnalysisCommand struct {
	UserID     uuid.UUID
	AnalysisID uuid.UUID
	UpdateText string
	Language   string
}

// AnalysisResult is a stored analysis together with its identifier.
type AnalysisResult struct {
	ID     uuid.UUID         `json:"id"`
	Record *nutrition.Record `json:"record"`
}

// Questionnaire carries the self-reported profile used to derive a
// default calorie target.
type Questionnaire struct {
	Age           int
	WeightKG      float64
	HeightCM      float64
	Gender        string
	ActivityLevel string
	Goal          string
}

// PersonalizedMenuCommand generates a plan from questionnaire data.
type PersonalizedMenuCommand struct {
	UserID             uuid.UUID
	Days               int
	MealsPerDay        string
	TargetCalories     *int
	DailyBudget        float64
	DietaryConstraints []string
	Questionnaire      Questionnaire
	Language           string
}

// CustomMenuCommand generates a plan from a free-text request.
type CustomMenuCommand struct {
	UserID         uuid.UUID
	Days           int
	MealsPerDay    string
	TargetCalories *int
	DailyBudget    float64
	CustomRequest  string
	Language       string
}

// ReplaceMealCommand swaps one meal of a menu for an alternative.
// Preferences are recorded but the default selection policy does not
// weight by them.
type ReplaceMealCommand struct {
	UserID      uuid.UUID
	MenuID      uuid.UUID
	MealID      uuid.UUID
	Preferences string
}
