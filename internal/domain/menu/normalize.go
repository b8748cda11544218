package menu

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// PlanFromMap normalizes a loosely-typed decoded model response into a
// Plan. It returns false when the response lacks a "meals" array, the
// one structural requirement of a generated menu. Everything else is
// defaulted field by field.
func PlanFromMap(data map[string]interface{}, userID uuid.UUID, days int) (*Plan, bool) {
	rawMeals, ok := data["meals"].([]interface{})
	if !ok {
		return nil, false
	}

	plan := &Plan{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       field(data, "Generated Menu", "title", "name"),
		Description: field(data, "", "description"),
		Days:        days,
		Meals:       make([]Meal, 0, len(rawMeals)),
	}

	for _, raw := range rawMeals {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		plan.Meals = append(plan.Meals, mealFromMap(obj))
	}

	for _, m := range plan.Meals {
		for _, line := range m.Ingredients {
			plan.EstimatedCost += line.EstimatedCost
		}
	}
	plan.RecalculateTotals()
	return plan, true
}

func mealFromMap(data map[string]interface{}) Meal {
	meal := Meal{
		ID:   uuid.New(),
		Name: field(data, "Meal", "name"),
		Type: ParseMealType(field(data, "", "meal_type", "type")),

		Calories: posNum(data, "calories"),
		Protein:  posNum(data, "protein_g", "protein"),
		Carbs:    posNum(data, "carbs_g", "carbs"),
		Fat:      posNum(data, "fat_g", "fat"),

		PrepTimeMinutes: int(posNum(data, "prep_time_minutes", "prep_time")),
		CookingMethod:   field(data, "", "cooking_method"),
		Instructions:    field(data, "", "instructions"),

		Ingredients: []IngredientLine{},
	}

	meal.Day = int(posNum(data, "day", "day_number"))
	if meal.Day < 1 {
		meal.Day = 1
	}

	if rawLines, ok := data["ingredients"].([]interface{}); ok {
		for _, raw := range rawLines {
			obj, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			meal.Ingredients = append(meal.Ingredients, IngredientLine{
				Name:          field(obj, "", "name"),
				Quantity:      posNum(obj, "quantity", "amount"),
				Unit:          field(obj, "", "unit"),
				Category:      field(obj, "", "category"),
				EstimatedCost: posNum(obj, "estimated_cost", "cost"),
			})
		}
	}

	return meal
}

func posNum(data map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		raw, ok := data[key]
		if !ok || raw == nil {
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			continue
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	}
	return 0
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func field(data map[string]interface{}, fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}
