// Package menu holds the meal plan domain model: multi-day menus, their
// meals and ingredient lines, and the shopping list aggregation.
package menu

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// MealType enumerates the slot a meal occupies within a day.
type MealType string

const (
	MealTypeBreakfast MealType = "BREAKFAST"
	MealTypeLunch     MealType = "LUNCH"
	MealTypeDinner    MealType = "DINNER"
	MealTypeSnack     MealType = "SNACK"
)

// ParseMealType maps a raw string onto a known meal type, defaulting to
// snack for anything unrecognized.
func ParseMealType(raw string) MealType {
	switch MealType(strings.ToUpper(strings.TrimSpace(raw))) {
	case MealTypeBreakfast:
		return MealTypeBreakfast
	case MealTypeLunch:
		return MealTypeLunch
	case MealTypeDinner:
		return MealTypeDinner
	default:
		return MealTypeSnack
	}
}

// Plan is a multi-day menu with aggregate nutrition totals.
type Plan struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`

	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein_g"`
	TotalCarbs    float64 `json:"total_carbs_g"`
	TotalFat      float64 `json:"total_fat_g"`

	Days          int     `json:"days"`
	EstimatedCost float64 `json:"estimated_cost"`

	Meals []Meal `json:"meals"`
}

// Meal is a single planned meal within a menu day.
type Meal struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type MealType  `json:"meal_type"`

	// Day is 1-based within the plan.
	Day int `json:"day"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`

	PrepTimeMinutes int    `json:"prep_time_minutes"`
	CookingMethod   string `json:"cooking_method"`
	Instructions    string `json:"instructions"`

	Ingredients []IngredientLine `json:"ingredients"`
}

// IngredientLine is one ingredient of a planned meal, with the quantity
// needed for that meal. Distinct from the analysis-side nutrition
// ingredient, which carries per-ingredient nutrients instead.
type IngredientLine struct {
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// RecalculateTotals sums meal-level macros into the plan-level totals.
func (p *Plan) RecalculateTotals() {
	p.TotalCalories = 0
	p.TotalProtein = 0
	p.TotalCarbs = 0
	p.TotalFat = 0
	for _, m := range p.Meals {
		p.TotalCalories += m.Calories
		p.TotalProtein += m.Protein
		p.TotalCarbs += m.Carbs
		p.TotalFat += m.Fat
	}
	p.TotalCalories = math.Round(p.TotalCalories)
}

// MealByID returns the meal with the given ID, or false when absent.
func (p *Plan) MealByID(id uuid.UUID) (*Meal, bool) {
	for i := range p.Meals {
		if p.Meals[i].ID == id {
			return &p.Meals[i], true
		}
	}
	return nil, false
}
