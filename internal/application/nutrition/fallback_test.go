package nutrition

import (
	"testing"

	"github.com/mealwise/v1/internal/domain/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRecord() *nutrition.Record {
	return &nutrition.Record{
		Name:     "Chicken and Rice",
		Calories: 600,
		Protein:  40,
		Carbs:    70,
		Fat:      18,
		Fiber:    6,
		Sugar:    4,
		Sodium:   800,
	}
}

func TestUpdateFallback_Half(t *testing.T) {
	updated := UpdateFallback(baseRecord(), "I only ate half of it", nutrition.English)

	assert.Equal(t, 300.0, updated.Calories)
	assert.Equal(t, 20.0, updated.Protein)
	assert.Equal(t, 35.0, updated.Carbs)
	assert.Equal(t, 9.0, updated.Fat)

	// Secondary nutrients follow the calorie ratio.
	assert.Equal(t, 3.0, updated.Fiber)
	assert.Equal(t, 2.0, updated.Sugar)
	assert.Equal(t, 400.0, updated.Sodium)

	assert.Equal(t, "Updated: I only ate half of it", updated.HealthNotes)
	assert.Equal(t, nutrition.UpdateFallbackConfidence, updated.Confidence)
}

func TestUpdateFallback_Double(t *testing.T) {
	updated := UpdateFallback(baseRecord(), "Make it DOUBLE portion", nutrition.English)

	assert.Equal(t, 1200.0, updated.Calories)
	assert.Equal(t, 80.0, updated.Protein)
	assert.Equal(t, 140.0, updated.Carbs)
	assert.Equal(t, 36.0, updated.Fat)
	assert.Equal(t, 1600.0, updated.Sodium)
}

func TestUpdateFallback_HebrewKeywords(t *testing.T) {
	updated := UpdateFallback(baseRecord(), "אכלתי רק חצי", nutrition.Hebrew)
	assert.Equal(t, 300.0, updated.Calories)
	assert.Equal(t, "עודכן: אכלתי רק חצי", updated.HealthNotes)

	updated = UpdateFallback(baseRecord(), "כפול בבקשה", nutrition.Hebrew)
	assert.Equal(t, 1200.0, updated.Calories)
}

func TestUpdateFallback_NoKeywordLeavesValues(t *testing.T) {
	updated := UpdateFallback(baseRecord(), "looks about right", nutrition.English)

	assert.Equal(t, 600.0, updated.Calories)
	assert.Equal(t, 40.0, updated.Protein)
	assert.Equal(t, 70.0, updated.Carbs)
	assert.Equal(t, 18.0, updated.Fat)
	assert.Equal(t, 6.0, updated.Fiber)
	assert.Equal(t, 800.0, updated.Sodium)
}

func TestUpdateFallback_ZeroCalorieBaseline(t *testing.T) {
	original := &nutrition.Record{Name: "Water", Fiber: 2, Sugar: 2, Sodium: 10}

	// Division guard: original calories of zero use the 400 baseline,
	// so the ratio (and the secondary nutrients) collapse to zero
	// without panicking.
	updated := UpdateFallback(original, "half", nutrition.English)
	assert.Zero(t, updated.Calories)
	assert.Zero(t, updated.Fiber)
	assert.Zero(t, updated.Sodium)
}

func TestUpdateFallback_DoesNotMutateOriginal(t *testing.T) {
	original := baseRecord()
	_ = UpdateFallback(original, "half", nutrition.English)
	assert.Equal(t, 600.0, original.Calories)
	assert.Empty(t, original.HealthNotes)
}

func TestFallbackRecord(t *testing.T) {
	r := FallbackRecord(nutrition.English)
	require.NotNil(t, r)
	assert.Equal(t, "Mixed Meal", r.Name)
	assert.Equal(t, nutrition.FallbackConfidence, r.Confidence)
	assert.NotNil(t, r.Ingredients)
	assert.Positive(t, r.Calories)

	he := FallbackRecord(nutrition.Hebrew)
	assert.Equal(t, "ארוחה מעורבת", he.Name)
	assert.Equal(t, r.Calories, he.Calories, "fallback values are language-independent")
}

func TestQuantityMultiplier(t *testing.T) {
	assert.Equal(t, 0.5, quantityMultiplier("just HALF please"))
	assert.Equal(t, 2.0, quantityMultiplier("double it"))
	assert.Equal(t, 0.5, quantityMultiplier("חצי מנה"))
	assert.Equal(t, 2.0, quantityMultiplier("מנה כפולה"))
	assert.Equal(t, 1.0, quantityMultiplier("no change"))
	assert.Equal(t, 1.0, quantityMultiplier(""))
}
