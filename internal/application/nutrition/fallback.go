package nutrition

import (
	"fmt"
	"math"
	"strings"

	"github.com/mealwise/v1/internal/domain/nutrition"
)

// fallbackCalorieBaseline is used as the original-calorie denominator
// when the record being updated carries no calories.
const fallbackCalorieBaseline = 400

// scaleRule maps quantity keywords in update text to a macro multiplier.
// Localized spellings share a rule; first matching rule wins.
type scaleRule struct {
	keywords   []string
	multiplier float64
}

var scaleRules = []scaleRule{
	{keywords: []string{"half", "חצי"}, multiplier: 0.5},
	{keywords: []string{"double", "כפול"}, multiplier: 2.0},
}

// quantityMultiplier scans update text case-insensitively for quantity
// keywords. Text matching no rule leaves values unchanged.
func quantityMultiplier(updateText string) float64 {
	text := strings.ToLower(updateText)
	for _, rule := range scaleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.multiplier
			}
		}
	}
	return 1.0
}

// FallbackRecord produces the deterministic analysis served when the
// model is not configured, the call fails, or the response cannot be
// parsed.
func FallbackRecord(lang nutrition.Language) *nutrition.Record {
	name := "Mixed Meal"
	description := "Estimated nutritional values for a typical mixed meal"
	notes := "Automatic analysis was unavailable; these are typical estimated values."
	if lang == nutrition.Hebrew {
		name = "ארוחה מעורבת"
		description = "ערכים תזונתיים משוערים לארוחה מעורבת טיפוסית"
		notes = "ניתוח אוטומטי לא היה זמין; אלו ערכים משוערים טיפוסיים."
	}

	return &nutrition.Record{
		Name:        name,
		Description: description,

		Calories: 420,
		Protein:  22,
		Carbs:    45,
		Fat:      16,
		Fiber:    6,
		Sugar:    8,
		Sodium:   650,

		Cholesterol:        45,
		SaturatedFat:       5,
		PolyunsaturatedFat: 3,
		MonounsaturatedFat: 6,
		Omega3:             0.4,
		Omega6:             1.8,
		SolubleFiber:       2,
		InsolubleFiber:     4,
		ServingSizeG:       350,

		Confidence: nutrition.FallbackConfidence,

		Ingredients: []nutrition.Ingredient{},

		ServingSize:   nutrition.DefaultServingSize,
		CookingMethod: nutrition.DefaultCookingMethod,
		HealthNotes:   notes,
	}
}

// UpdateFallback applies the keyword heuristic to an existing record:
// "half"/"double" (and Hebrew equivalents) scale the primary macros, and
// secondary nutrients follow the resulting calorie ratio. All scaled
// values are rounded to the nearest integer.
func UpdateFallback(original *nutrition.Record, updateText string, lang nutrition.Language) *nutrition.Record {
	m := quantityMultiplier(updateText)

	updated := *original
	updated.Calories = math.Round(original.Calories * m)
	updated.Protein = math.Round(original.Protein * m)
	updated.Carbs = math.Round(original.Carbs * m)
	updated.Fat = math.Round(original.Fat * m)

	baseline := original.Calories
	if baseline == 0 {
		baseline = fallbackCalorieBaseline
	}
	ratio := updated.Calories / baseline
	updated.Fiber = math.Round(original.Fiber * ratio)
	updated.Sugar = math.Round(original.Sugar * ratio)
	updated.Sodium = math.Round(original.Sodium * ratio)

	if lang == nutrition.Hebrew {
		updated.HealthNotes = fmt.Sprintf("עודכן: %s", updateText)
	} else {
		updated.HealthNotes = fmt.Sprintf("Updated: %s", updateText)
	}
	updated.Confidence = nutrition.UpdateFallbackConfidence

	return &updated
}
