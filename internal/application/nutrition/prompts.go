package nutrition

import (
	"fmt"
	"strings"

	"github.com/mealwise/v1/internal/domain/nutrition"
)

// analysisResponseShape is the JSON contract the model is instructed to
// follow for photo analysis. The normalizer tolerates deviations, but a
// precise shape keeps them rare.
const analysisResponseShape = `{
  "name": "Meal name",
  "description": "Short description of what is on the plate",
  "calories": 450,
  "protein_g": 25.0,
  "carbs_g": 40.0,
  "fat_g": 15.0,
  "fiber_g": 5.0,
  "sugar_g": 8.0,
  "sodium_mg": 600,
  "cholesterol_mg": 50,
  "saturated_fats_g": 4.0,
  "polyunsaturated_fats_g": 2.0,
  "monounsaturated_fats_g": 6.0,
  "omega_3_g": 0.5,
  "omega_6_g": 1.5,
  "soluble_fiber_g": 2.0,
  "insoluble_fiber_g": 3.0,
  "alcohol_g": 0,
  "caffeine_mg": 0,
  "serving_size_g": 350,
  "confidence": 85,
  "serving_size": "1 plate",
  "cooking_method": "Grilled",
  "health_risk_notes": "",
  "glycemic_index": 55,
  "insulin_index": 40,
  "vitamins_and_micronutrients": {"vitamin_c_mg": 12},
  "allergens": {"gluten": false},
  "food_additives": {},
  "ingredients": [
    {"name": "ingredient name", "calories": 120, "protein_g": 5.0, "carbs_g": 20.0, "fat_g": 2.0}
  ]
}`

// analysisSystemPrompt declares the required response shape for a meal
// photo analysis in the selected language.
func analysisSystemPrompt(lang nutrition.Language) string {
	if lang == nutrition.Hebrew {
		return "אתה תזונאי מומחה המנתח תמונות של ארוחות. " +
			"החזר אך ורק אובייקט JSON תקין במבנה הבא, ללא טקסט נוסף:\n" + analysisResponseShape
	}
	return "You are an expert nutritionist analyzing meal photos. " +
		"Respond with ONLY a valid JSON object in the exact format below. " +
		"Do not include any explanatory text or markdown formatting outside the JSON.\n" + analysisResponseShape
}

// analysisUserPrompt describes the analysis task with all optional
// context appended in the selected language.
func analysisUserPrompt(lang nutrition.Language, updateText string, editedIngredients []string) string {
	var b strings.Builder
	if lang == nutrition.Hebrew {
		b.WriteString("נתח את הארוחה שבתמונה והחזר פירוט תזונתי מלא.")
		if updateText != "" {
			b.WriteString(fmt.Sprintf("\nהנחיות נוספות מהמשתמש: %s", updateText))
		}
		if len(editedIngredients) > 0 {
			b.WriteString(fmt.Sprintf("\nהמשתמש תיקן את רשימת המרכיבים, השתמש בה: %s", strings.Join(editedIngredients, ", ")))
		}
		return b.String()
	}

	b.WriteString("Analyze the meal in this photo and return a complete nutritional breakdown.")
	if updateText != "" {
		b.WriteString(fmt.Sprintf("\nAdditional instructions from the user: %s", updateText))
	}
	if len(editedIngredients) > 0 {
		b.WriteString(fmt.Sprintf("\nThe user corrected the ingredient list, use it: %s", strings.Join(editedIngredients, ", ")))
	}
	return b.String()
}

// updateUserPrompt asks the model to revise a previous analysis
// according to free-text instructions.
func updateUserPrompt(lang nutrition.Language, originalJSON, updateText string) string {
	if lang == nutrition.Hebrew {
		return fmt.Sprintf("זהו ניתוח תזונתי קודם:\n%s\n\nעדכן אותו לפי ההנחיה הבאה והחזר את האובייקט המלא: %s",
			originalJSON, updateText)
	}
	return fmt.Sprintf("Here is a previous nutrition analysis:\n%s\n\nRevise it according to the following instruction and return the full updated object: %s",
		originalJSON, updateText)
}
