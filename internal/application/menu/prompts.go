package menu

import (
	"fmt"
	"strings"

	"github.com/mealwise/v1/internal/domain/nutrition"
	"github.com/mealwise/v1/internal/ports/inbound"
)

// menuResponseShape is the JSON contract the model is instructed to
// follow for menu generation. The top-level "meals" array is the one
// structural requirement the service validates.
const menuResponseShape = `{
  "title": "Menu title",
  "description": "Short description of the menu",
  "meals": [
    {
      "name": "Meal name",
      "meal_type": "BREAKFAST",
      "day": 1,
      "calories": 450,
      "protein_g": 25.0,
      "carbs_g": 40.0,
      "fat_g": 15.0,
      "prep_time_minutes": 20,
      "cooking_method": "Grilled",
      "instructions": "Step by step preparation",
      "ingredients": [
        {"name": "ingredient", "quantity": 100, "unit": "g", "category": "protein", "estimated_cost": 3.5}
      ]
    }
  ]
}`

// menuSystemPrompt declares the required response shape for menu
// generation in the selected language.
func menuSystemPrompt(lang nutrition.Language) string {
	if lang == nutrition.Hebrew {
		return "אתה תזונאי מומחה הבונה תפריטים מאוזנים. " +
			"החזר אך ורק אובייקט JSON תקין במבנה הבא, ללא טקסט נוסף:\n" + menuResponseShape
	}
	return "You are an expert nutritionist building balanced meal plans. " +
		"Respond with ONLY a valid JSON object in the exact format below. " +
		"Do not include any explanatory text or markdown formatting outside the JSON.\n" + menuResponseShape
}

// personalizedMenuPrompt describes the plan parameters derived from the
// questionnaire for the model.
func personalizedMenuPrompt(cmd inbound.PersonalizedMenuCommand, targetCalories int, lang nutrition.Language) string {
	var b strings.Builder
	if lang == nutrition.Hebrew {
		b.WriteString(fmt.Sprintf("בנה תפריט מותאם אישית ל-%d ימים עם %d ארוחות ביום.",
			cmd.Days, MealsPerDay(cmd.MealsPerDay)))
		b.WriteString(fmt.Sprintf("\nיעד קלורי יומי: %d קלוריות.", targetCalories))
		if cmd.DailyBudget > 0 {
			b.WriteString(fmt.Sprintf("\nתקציב יומי: %.2f.", cmd.DailyBudget))
		}
		if len(cmd.DietaryConstraints) > 0 {
			b.WriteString(fmt.Sprintf("\nהגבלות תזונתיות: %s.", strings.Join(cmd.DietaryConstraints, ", ")))
		}
		if cmd.Questionnaire.Goal != "" {
			b.WriteString(fmt.Sprintf("\nמטרה: %s.", cmd.Questionnaire.Goal))
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Build a personalized menu for %d days with %d meals per day.",
		cmd.Days, MealsPerDay(cmd.MealsPerDay)))
	b.WriteString(fmt.Sprintf("\nDaily calorie target: %d kcal.", targetCalories))
	if cmd.DailyBudget > 0 {
		b.WriteString(fmt.Sprintf("\nDaily budget: %.2f.", cmd.DailyBudget))
	}
	if len(cmd.DietaryConstraints) > 0 {
		b.WriteString(fmt.Sprintf("\nDietary constraints: %s.", strings.Join(cmd.DietaryConstraints, ", ")))
	}
	if cmd.Questionnaire.Goal != "" {
		b.WriteString(fmt.Sprintf("\nGoal: %s.", cmd.Questionnaire.Goal))
	}
	b.WriteString("\nNumber each meal with its day (1-based) in the day field.")
	return b.String()
}

// customMenuPrompt forwards a free-text menu request with the plan
// framing parameters.
func customMenuPrompt(cmd inbound.CustomMenuCommand, targetCalories int, lang nutrition.Language) string {
	var b strings.Builder
	if lang == nutrition.Hebrew {
		b.WriteString(fmt.Sprintf("בנה תפריט ל-%d ימים עם %d ארוחות ביום לפי הבקשה הבאה:\n%s",
			cmd.Days, MealsPerDay(cmd.MealsPerDay), cmd.CustomRequest))
		b.WriteString(fmt.Sprintf("\nיעד קלורי יומי: %d קלוריות.", targetCalories))
		if cmd.DailyBudget > 0 {
			b.WriteString(fmt.Sprintf("\nתקציב יומי: %.2f.", cmd.DailyBudget))
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Build a menu for %d days with %d meals per day according to this request:\n%s",
		cmd.Days, MealsPerDay(cmd.MealsPerDay), cmd.CustomRequest))
	b.WriteString(fmt.Sprintf("\nDaily calorie target: %d kcal.", targetCalories))
	if cmd.DailyBudget > 0 {
		b.WriteString(fmt.Sprintf("\nDaily budget: %.2f.", cmd.DailyBudget))
	}
	b.WriteString("\nNumber each meal with its day (1-based) in the day field.")
	return b.String()
}
