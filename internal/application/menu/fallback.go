// Package menu provides the application layer for menu plan
// generation, meal replacement and shopping list assembly. Generation
// prefers the model pipeline and degrades to a deterministic fallback
// plan when the model is unavailable or fails.
package menu

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/domain/menu"
	"github.com/mealwise/v1/internal/domain/nutrition"
	"github.com/mealwise/v1/internal/ports/inbound"
)

// Calorie target bounds and questionnaire defaults.
const (
	MinDailyCalories = 1200
	MaxDailyCalories = 4000

	defaultAge      = 30
	defaultWeightKG = 70.0
	defaultHeightCM = 170.0

	// DefaultDays is used when the caller does not specify a day count.
	DefaultDays = 7
)

// MealsPerDay maps a meals-per-day category onto a meal count. Unknown
// categories default to three meals.
func MealsPerDay(category string) int {
	switch category {
	case "2_main":
		return 2
	case "3_main":
		return 3
	case "3_plus_2_snacks":
		return 5
	case "2_plus_1_intermediate":
		return 3
	default:
		return 3
	}
}

// CalculateDefaultCalories derives a daily calorie target from the
// questionnaire using the Harris-Benedict equation, adjusted for
// activity level and goal and clamped to [MinDailyCalories,
// MaxDailyCalories]. Missing fields fall back to neutral defaults, so
// an empty questionnaire still yields a usable target.
func CalculateDefaultCalories(q inbound.Questionnaire) int {
	age := float64(q.Age)
	if age <= 0 {
		age = defaultAge
	}
	weight := q.WeightKG
	if weight <= 0 {
		weight = defaultWeightKG
	}
	height := q.HeightCM
	if height <= 0 {
		height = defaultHeightCM
	}

	var bmr float64
	if q.Gender == "MALE" {
		bmr = 88.362 + 13.397*weight + 4.799*height - 5.677*age
	} else {
		bmr = 447.593 + 9.247*weight + 3.098*height - 4.330*age
	}

	var factor float64
	switch q.ActivityLevel {
	case "NONE":
		factor = 1.2
	case "LIGHT":
		factor = 1.375
	case "MODERATE":
		factor = 1.55
	case "HIGH":
		factor = 1.725
	default:
		factor = 1.55
	}

	calories := bmr * factor
	switch q.Goal {
	case "WEIGHT_LOSS":
		calories -= 500
	case "WEIGHT_GAIN":
		calories += 300
	}

	return clampCalories(int(math.Round(calories)))
}

func clampCalories(calories int) int {
	if calories < MinDailyCalories {
		return MinDailyCalories
	}
	if calories > MaxDailyCalories {
		return MaxDailyCalories
	}
	return calories
}

// fallbackMealTemplate is one entry of the fixed rotation used by the
// fallback plan.
type fallbackMealTemplate struct {
	nameEN string
	nameHE string
	mtype  menu.MealType

	calories float64
	protein  float64
	carbs    float64
	fat      float64

	prepMinutes   int
	cookingMethod string

	ingredients []menu.IngredientLine
}

var fallbackTemplates = []fallbackMealTemplate{
	{
		nameEN: "Vegetable Omelette with Whole Wheat Bread",
		nameHE: "חביתת ירקות עם לחם מלא",
		mtype:  menu.MealTypeBreakfast,

		calories: 380, protein: 22, carbs: 35, fat: 16,
		prepMinutes: 15, cookingMethod: "Pan-fried",
		ingredients: []menu.IngredientLine{
			{Name: "eggs", Quantity: 2, Unit: "piece", Category: "protein", EstimatedCost: 2.0},
			{Name: "whole wheat bread", Quantity: 2, Unit: "slice", Category: "grains", EstimatedCost: 1.5},
			{Name: "mixed vegetables", Quantity: 100, Unit: "g", Category: "vegetables", EstimatedCost: 2.5},
		},
	},
	{
		nameEN: "Grilled Chicken with Rice and Salad",
		nameHE: "חזה עוף בגריל עם אורז וסלט",
		mtype:  menu.MealTypeLunch,

		calories: 550, protein: 40, carbs: 55, fat: 15,
		prepMinutes: 30, cookingMethod: "Grilled",
		ingredients: []menu.IngredientLine{
			{Name: "chicken breast", Quantity: 150, Unit: "g", Category: "protein", EstimatedCost: 6.0},
			{Name: "rice", Quantity: 100, Unit: "g", Category: "grains", EstimatedCost: 1.0},
			{Name: "mixed vegetables", Quantity: 150, Unit: "g", Category: "vegetables", EstimatedCost: 3.0},
		},
	},
	{
		nameEN: "Baked Salmon with Sweet Potato",
		nameHE: "סלמון אפוי עם בטטה",
		mtype:  menu.MealTypeDinner,

		calories: 480, protein: 32, carbs: 40, fat: 20,
		prepMinutes: 35, cookingMethod: "Baked",
		ingredients: []menu.IngredientLine{
			{Name: "salmon fillet", Quantity: 150, Unit: "g", Category: "protein", EstimatedCost: 9.0},
			{Name: "sweet potato", Quantity: 200, Unit: "g", Category: "vegetables", EstimatedCost: 2.0},
			{Name: "olive oil", Quantity: 10, Unit: "ml", Category: "fats", EstimatedCost: 0.5},
		},
	},
}

// FallbackPlan builds a deterministic plan without an external call.
// Each day cycles through the fixed template list limited to the
// requested meals-per-day count, with names suffixed by the day number
// for uniqueness.
func FallbackPlan(userID uuid.UUID, days int, mealsPerDayCategory string, lang nutrition.Language) *menu.Plan {
	if days < 1 {
		days = DefaultDays
	}
	perDay := MealsPerDay(mealsPerDayCategory)

	plan := &menu.Plan{
		ID:     uuid.New(),
		UserID: userID,
		Days:   days,
		Meals:  make([]menu.Meal, 0, days*perDay),
	}
	if lang == nutrition.Hebrew {
		plan.Title = "תפריט שבועי מאוזן"
		plan.Description = "תפריט ברירת מחדל מאוזן שנבנה ללא סיוע מודל."
	} else {
		plan.Title = "Balanced Weekly Menu"
		plan.Description = "A balanced default menu built without model assistance."
	}

	for day := 1; day <= days; day++ {
		for slot := 0; slot < perDay; slot++ {
			tmpl := fallbackTemplates[slot%len(fallbackTemplates)]
			name := tmpl.nameEN
			if lang == nutrition.Hebrew {
				name = tmpl.nameHE
			}

			meal := menu.Meal{
				ID:   uuid.New(),
				Name: fmt.Sprintf("%s - Day %d", name, day),
				Type: tmpl.mtype,
				Day:  day,

				Calories: tmpl.calories,
				Protein:  tmpl.protein,
				Carbs:    tmpl.carbs,
				Fat:      tmpl.fat,

				PrepTimeMinutes: tmpl.prepMinutes,
				CookingMethod:   tmpl.cookingMethod,

				Ingredients: make([]menu.IngredientLine, len(tmpl.ingredients)),
			}
			copy(meal.Ingredients, tmpl.ingredients)

			for _, line := range meal.Ingredients {
				plan.EstimatedCost += line.EstimatedCost
			}
			plan.Meals = append(plan.Meals, meal)
		}
	}

	plan.RecalculateTotals()
	return plan
}
