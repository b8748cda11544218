package menu

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/domain/nutrition"
	"github.com/mealwise/v1/internal/ports/inbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealsPerDay(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{"2_main", 2},
		{"3_main", 3},
		{"3_plus_2_snacks", 5},
		{"2_plus_1_intermediate", 3},
		{"", 3},
		{"something_else", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MealsPerDay(tt.category), "category %q", tt.category)
	}
}

func TestFallbackPlan_MealCountAndDayTags(t *testing.T) {
	plan := FallbackPlan(uuid.New(), 2, "3_plus_2_snacks", nutrition.English)

	require.Len(t, plan.Meals, 10, "2 days of 5 meals")
	assert.Equal(t, 2, plan.Days)

	perDay := map[int]int{}
	for _, m := range plan.Meals {
		perDay[m.Day]++
		assert.Contains(t, m.Name, fmt.Sprintf("Day %d", m.Day))
	}
	assert.Equal(t, map[int]int{1: 5, 2: 5}, perDay)
}

func TestFallbackPlan_TotalsMatchMeals(t *testing.T) {
	plan := FallbackPlan(uuid.New(), 3, "3_main", nutrition.English)

	var calories float64
	for _, m := range plan.Meals {
		calories += m.Calories
	}
	assert.Equal(t, calories, plan.TotalCalories)
	assert.Greater(t, plan.EstimatedCost, 0.0)
}

func TestFallbackPlan_HebrewNames(t *testing.T) {
	plan := FallbackPlan(uuid.New(), 1, "2_main", nutrition.Hebrew)

	require.Len(t, plan.Meals, 2)
	assert.Contains(t, plan.Meals[0].Name, "חביתת ירקות")
	assert.Equal(t, "תפריט שבועי מאוזן", plan.Title)
}

func TestFallbackPlan_DefaultsDays(t *testing.T) {
	plan := FallbackPlan(uuid.New(), 0, "3_main", nutrition.English)
	assert.Equal(t, DefaultDays, plan.Days)
	assert.Len(t, plan.Meals, DefaultDays*3)
}

func TestCalculateDefaultCalories_AlwaysInRange(t *testing.T) {
	extremes := []inbound.Questionnaire{
		{},
		{Age: 200, WeightKG: 1, HeightCM: 1, Gender: "MALE", ActivityLevel: "NONE", Goal: "WEIGHT_LOSS"},
		{Age: 1, WeightKG: 500, HeightCM: 250, Gender: "MALE", ActivityLevel: "HIGH", Goal: "WEIGHT_GAIN"},
		{Age: -5, WeightKG: -10, HeightCM: -10},
		{Gender: "FEMALE", ActivityLevel: "unknown", Goal: "unknown"},
	}
	for _, q := range extremes {
		got := CalculateDefaultCalories(q)
		assert.GreaterOrEqual(t, got, MinDailyCalories, "questionnaire %+v", q)
		assert.LessOrEqual(t, got, MaxDailyCalories, "questionnaire %+v", q)
	}
}

func TestCalculateDefaultCalories_GoalOffsets(t *testing.T) {
	base := inbound.Questionnaire{Age: 30, WeightKG: 70, HeightCM: 170, Gender: "MALE", ActivityLevel: "MODERATE"}

	maintain := CalculateDefaultCalories(base)

	loss := base
	loss.Goal = "WEIGHT_LOSS"
	assert.Equal(t, maintain-500, CalculateDefaultCalories(loss))

	gain := base
	gain.Goal = "WEIGHT_GAIN"
	assert.Equal(t, maintain+300, CalculateDefaultCalories(gain))
}

func TestCalculateDefaultCalories_GenderFormulas(t *testing.T) {
	male := inbound.Questionnaire{Age: 30, WeightKG: 70, HeightCM: 170, Gender: "MALE", ActivityLevel: "NONE"}
	female := male
	female.Gender = "FEMALE"

	// 88.362 + 13.397*70 + 4.799*170 - 5.677*30 = 1671.672, *1.2 = 2006.0064
	assert.Equal(t, 2006, CalculateDefaultCalories(male))
	// 447.593 + 9.247*70 + 3.098*170 - 4.330*30 = 1491.643, *1.2 = 1789.9716
	assert.Equal(t, 1790, CalculateDefaultCalories(female))
}

func TestCalculateDefaultCalories_UnknownActivityDefaultsModerate(t *testing.T) {
	known := inbound.Questionnaire{Age: 30, WeightKG: 70, HeightCM: 170, ActivityLevel: "MODERATE"}
	unknown := known
	unknown.ActivityLevel = "sometimes"

	assert.Equal(t, CalculateDefaultCalories(known), CalculateDefaultCalories(unknown))
}
