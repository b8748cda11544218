// Package nutrition holds the meal analysis domain model: a wide,
// fully-defaulted nutrition record and the normalization that turns a
// loosely-typed decoded model response into one.
package nutrition

import (
	"encoding/json"
	"math"
	"strconv"
)

// Default values substituted during normalization.
const (
	DefaultConfidence        = 75
	FallbackConfidence       = 60
	UpdateFallbackConfidence = 65

	DefaultServingSize   = "1 serving"
	DefaultCookingMethod = "Mixed"
)

// Record is a fully-populated nutrition analysis for a single meal.
// Every numeric field is always present and non-negative; missing or
// unparseable upstream values are defaulted to zero during normalization.
type Record struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Macronutrients
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
	Fiber    float64 `json:"fiber_g"`
	Sugar    float64 `json:"sugar_g"`
	Sodium   float64 `json:"sodium_mg"`

	// Extended nutrients
	Cholesterol        float64 `json:"cholesterol_mg"`
	SaturatedFat       float64 `json:"saturated_fats_g"`
	PolyunsaturatedFat float64 `json:"polyunsaturated_fats_g"`
	MonounsaturatedFat float64 `json:"monounsaturated_fats_g"`
	Omega3             float64 `json:"omega_3_g"`
	Omega6             float64 `json:"omega_6_g"`
	SolubleFiber       float64 `json:"soluble_fiber_g"`
	InsolubleFiber     float64 `json:"insoluble_fiber_g"`
	Alcohol            float64 `json:"alcohol_g"`
	Caffeine           float64 `json:"caffeine_mg"`
	ServingSizeG       float64 `json:"serving_size_g"`

	// Confidence score in [1, 100]
	Confidence int `json:"confidence"`

	Ingredients []Ingredient `json:"ingredients"`

	ServingSize   string `json:"serving_size"`
	CookingMethod string `json:"cooking_method"`
	HealthNotes   string `json:"health_notes"`

	// Free-form nested data passed through from the model
	Vitamins       map[string]interface{} `json:"vitamins_and_micronutrients,omitempty"`
	Micronutrients map[string]interface{} `json:"micronutrients,omitempty"`
	Allergens      map[string]interface{} `json:"allergens,omitempty"`
	Additives      map[string]interface{} `json:"food_additives,omitempty"`

	// Optional indices, absent when the model did not report them
	GlycemicIndex *float64 `json:"glycemic_index,omitempty"`
	InsulinIndex  *float64 `json:"insulin_index,omitempty"`
}

// Ingredient is one component of an analyzed meal, carrying the same
// nutrient field set scoped to the single ingredient.
type Ingredient struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
	Fiber    float64 `json:"fiber_g"`
	Sugar    float64 `json:"sugar_g"`
	Sodium   float64 `json:"sodium_mg"`

	Cholesterol        float64 `json:"cholesterol_mg"`
	SaturatedFat       float64 `json:"saturated_fats_g"`
	PolyunsaturatedFat float64 `json:"polyunsaturated_fats_g"`
	MonounsaturatedFat float64 `json:"monounsaturated_fats_g"`
	Omega3             float64 `json:"omega_3_g"`
	Omega6             float64 `json:"omega_6_g"`
	SolubleFiber       float64 `json:"soluble_fiber_g"`
	InsolubleFiber     float64 `json:"insoluble_fiber_g"`
	Alcohol            float64 `json:"alcohol_g"`
	Caffeine           float64 `json:"caffeine_mg"`
}

// DefaultMealName returns the localized placeholder used when the model
// response carries no name.
func DefaultMealName(lang Language) string {
	if lang == Hebrew {
		return "ארוחה לא מזוהה"
	}
	return "Unknown Meal"
}

// RecordFromMap normalizes an arbitrary decoded JSON object into a
// fully-populated Record. It never fails: every field reads through its
// accepted key spellings (canonical suffixed key first, e.g. protein_g
// over protein), coerces to a non-negative finite number, and substitutes
// a fixed default when the value is missing or unusable. An empty input
// object yields a structurally valid record.
func RecordFromMap(data map[string]interface{}, lang Language) *Record {
	r := &Record{
		Name:        str(data, DefaultMealName(lang), "name", "meal_name"),
		Description: str(data, "", "description"),

		Calories: num(data, "calories", "calories_kcal"),
		Protein:  num(data, "protein_g", "protein"),
		Carbs:    num(data, "carbs_g", "carbs", "carbohydrates_g", "carbohydrates"),
		Fat:      num(data, "fat_g", "fat", "fats_g"),
		Fiber:    num(data, "fiber_g", "fiber"),
		Sugar:    num(data, "sugar_g", "sugar"),
		Sodium:   num(data, "sodium_mg", "sodium"),

		Cholesterol:        num(data, "cholesterol_mg", "cholesterol"),
		SaturatedFat:       num(data, "saturated_fats_g", "saturated_fat_g", "saturated_fat"),
		PolyunsaturatedFat: num(data, "polyunsaturated_fats_g", "polyunsaturated_fat_g"),
		MonounsaturatedFat: num(data, "monounsaturated_fats_g", "monounsaturated_fat_g"),
		Omega3:             num(data, "omega_3_g", "omega_3"),
		Omega6:             num(data, "omega_6_g", "omega_6"),
		SolubleFiber:       num(data, "soluble_fiber_g", "soluble_fiber"),
		InsolubleFiber:     num(data, "insoluble_fiber_g", "insoluble_fiber"),
		Alcohol:            num(data, "alcohol_g", "alcohol"),
		Caffeine:           num(data, "caffeine_mg", "caffeine"),
		ServingSizeG:       num(data, "serving_size_g", "serving_size_grams"),

		Confidence: confidence(data),

		Ingredients: ingredients(data),

		ServingSize:   str(data, DefaultServingSize, "serving_size", "servingSize"),
		CookingMethod: str(data, DefaultCookingMethod, "cooking_method", "cookingMethod"),
		HealthNotes:   str(data, "", "health_risk_notes", "health_notes", "healthNotes"),

		Vitamins:       nested(data, "vitamins_and_micronutrients", "vitamins"),
		Micronutrients: nested(data, "micronutrients"),
		Allergens:      nested(data, "allergens"),
		Additives:      nested(data, "food_additives", "additives"),

		GlycemicIndex: optNum(data, "glycemic_index", "glycemicIndex"),
		InsulinIndex:  optNum(data, "insulin_index", "insulinIndex"),
	}
	return r
}

// IngredientFromMap normalizes a single decoded ingredient object.
func IngredientFromMap(data map[string]interface{}) Ingredient {
	return Ingredient{
		Name:     str(data, "Unknown", "name", "ingredient_name"),
		Calories: num(data, "calories", "calories_kcal"),
		Protein:  num(data, "protein_g", "protein"),
		Carbs:    num(data, "carbs_g", "carbs", "carbohydrates_g", "carbohydrates"),
		Fat:      num(data, "fat_g", "fat", "fats_g"),
		Fiber:    num(data, "fiber_g", "fiber"),
		Sugar:    num(data, "sugar_g", "sugar"),
		Sodium:   num(data, "sodium_mg", "sodium"),

		Cholesterol:        num(data, "cholesterol_mg", "cholesterol"),
		SaturatedFat:       num(data, "saturated_fats_g", "saturated_fat_g", "saturated_fat"),
		PolyunsaturatedFat: num(data, "polyunsaturated_fats_g", "polyunsaturated_fat_g"),
		MonounsaturatedFat: num(data, "monounsaturated_fats_g", "monounsaturated_fat_g"),
		Omega3:             num(data, "omega_3_g", "omega_3"),
		Omega6:             num(data, "omega_6_g", "omega_6"),
		SolubleFiber:       num(data, "soluble_fiber_g", "soluble_fiber"),
		InsolubleFiber:     num(data, "insoluble_fiber_g", "insoluble_fiber"),
		Alcohol:            num(data, "alcohol_g", "alcohol"),
		Caffeine:           num(data, "caffeine_mg", "caffeine"),
	}
}

// num reads the first present key and coerces it to a non-negative finite
// float64. Non-numeric, negative, NaN and infinite values all become 0.
func num(data map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		raw, ok := data[key]
		if !ok || raw == nil {
			continue
		}
		if v, ok := coerce(raw); ok {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0
			}
			return v
		}
	}
	return 0
}

// optNum reads an optional numeric field, returning nil when absent or
// unparseable rather than defaulting to zero.
func optNum(data map[string]interface{}, keys ...string) *float64 {
	for _, key := range keys {
		raw, ok := data[key]
		if !ok || raw == nil {
			continue
		}
		if v, ok := coerce(raw); ok && v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return &v
		}
	}
	return nil
}

func coerce(raw interface{}) (float64, bool) {
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

func str(data map[string]interface{}, fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

func nested(data map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		if v, ok := data[key].(map[string]interface{}); ok {
			return v
		}
	}
	return nil
}

func confidence(data map[string]interface{}) int {
	raw, ok := data["confidence"]
	if !ok {
		return DefaultConfidence
	}
	v, ok := coerce(raw)
	if !ok {
		return DefaultConfidence
	}
	c := int(math.Round(v))
	if c < 1 {
		c = 1
	}
	if c > 100 {
		c = 100
	}
	return c
}

func ingredients(data map[string]interface{}) []Ingredient {
	raw, ok := data["ingredients"].([]interface{})
	if !ok {
		return []Ingredient{}
	}
	out := make([]Ingredient, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, IngredientFromMap(m))
	}
	return out
}
