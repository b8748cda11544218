package nutrition

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFromMap_EmptyObject(t *testing.T) {
	r := RecordFromMap(map[string]interface{}{}, English)
	require.NotNil(t, r)

	assert.Equal(t, "Unknown Meal", r.Name)
	assert.Equal(t, "", r.Description)
	assert.Equal(t, DefaultServingSize, r.ServingSize)
	assert.Equal(t, DefaultCookingMethod, r.CookingMethod)
	assert.Equal(t, "", r.HealthNotes)
	assert.Equal(t, DefaultConfidence, r.Confidence)
	assert.NotNil(t, r.Ingredients)
	assert.Empty(t, r.Ingredients)
	assert.Nil(t, r.GlycemicIndex)
	assert.Nil(t, r.InsulinIndex)

	assert.Zero(t, r.Calories)
	assert.Zero(t, r.Protein)
	assert.Zero(t, r.Sodium)
	assert.Zero(t, r.Caffeine)
}

func TestRecordFromMap_HebrewDefaultName(t *testing.T) {
	r := RecordFromMap(map[string]interface{}{}, Hebrew)
	assert.Equal(t, "ארוחה לא מזוהה", r.Name)
}

func TestRecordFromMap_AliasPrecedence(t *testing.T) {
	// Suffixed canonical key wins over the bare spelling.
	r := RecordFromMap(map[string]interface{}{
		"protein_g": 25.0,
		"protein":   99.0,
		"carbs":     40.0,
		"fat":       "12.5",
	}, English)

	assert.Equal(t, 25.0, r.Protein)
	assert.Equal(t, 40.0, r.Carbs)
	assert.Equal(t, 12.5, r.Fat)
}

func TestRecordFromMap_NonNumericBecomesZero(t *testing.T) {
	r := RecordFromMap(map[string]interface{}{
		"calories":  "lots",
		"protein_g": true,
		"carbs_g":   -30.0,
		"sugar_g":   nil,
	}, English)

	assert.Zero(t, r.Calories)
	assert.Zero(t, r.Protein)
	assert.Zero(t, r.Carbs, "negative values clamp to zero")
	assert.Zero(t, r.Sugar)
}

func TestRecordFromMap_AllNumericFieldsNonNegative(t *testing.T) {
	// Adversarial object: wrong types, negatives, missing subsets.
	r := RecordFromMap(map[string]interface{}{
		"calories":       -1.0,
		"fat_g":          "NaN-ish",
		"sodium_mg":      []interface{}{1, 2},
		"cholesterol_mg": -250,
		"omega_3_g":      "0.8",
	}, English)

	for name, v := range map[string]float64{
		"calories":    r.Calories,
		"protein":     r.Protein,
		"carbs":       r.Carbs,
		"fat":         r.Fat,
		"fiber":       r.Fiber,
		"sugar":       r.Sugar,
		"sodium":      r.Sodium,
		"cholesterol": r.Cholesterol,
		"omega3":      r.Omega3,
		"caffeine":    r.Caffeine,
	} {
		assert.GreaterOrEqual(t, v, 0.0, "field %s must be non-negative", name)
	}
	assert.Equal(t, 0.8, r.Omega3)
}

func TestRecordFromMap_JSONNumbers(t *testing.T) {
	// json.Decoder with UseNumber produces json.Number values.
	var data map[string]interface{}
	dec := json.NewDecoder(strings.NewReader(`{"calories": 320, "confidence": 88}`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&data))

	r := RecordFromMap(data, English)
	assert.Equal(t, 320.0, r.Calories)
	assert.Equal(t, 88, r.Confidence)
}

func TestRecordFromMap_ConfidenceClamped(t *testing.T) {
	r := RecordFromMap(map[string]interface{}{"confidence": 250.0}, English)
	assert.Equal(t, 100, r.Confidence)

	r = RecordFromMap(map[string]interface{}{"confidence": -5.0}, English)
	assert.Equal(t, 1, r.Confidence)

	r = RecordFromMap(map[string]interface{}{"confidence": "high"}, English)
	assert.Equal(t, DefaultConfidence, r.Confidence)
}

func TestRecordFromMap_Ingredients(t *testing.T) {
	r := RecordFromMap(map[string]interface{}{
		"ingredients": []interface{}{
			map[string]interface{}{"name": "Rice", "protein": 4.0, "calories": 200.0},
			map[string]interface{}{"name": "Chicken", "protein_g": 30.0},
			"not-an-object",
		},
	}, English)

	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "Rice", r.Ingredients[0].Name)
	assert.Equal(t, 4.0, r.Ingredients[0].Protein, "bare protein key accepted")
	assert.Equal(t, 30.0, r.Ingredients[1].Protein)
}

func TestRecordFromMap_IngredientsNotAnArray(t *testing.T) {
	r := RecordFromMap(map[string]interface{}{"ingredients": "rice, beans"}, English)
	require.NotNil(t, r.Ingredients)
	assert.Empty(t, r.Ingredients)
}

func TestRecordFromMap_OptionalIndices(t *testing.T) {
	r := RecordFromMap(map[string]interface{}{"glycemic_index": 55.0}, English)
	require.NotNil(t, r.GlycemicIndex)
	assert.Equal(t, 55.0, *r.GlycemicIndex)
	assert.Nil(t, r.InsulinIndex)
}

func TestRecordFromMap_NestedMaps(t *testing.T) {
	r := RecordFromMap(map[string]interface{}{
		"vitamins_and_micronutrients": map[string]interface{}{"vitamin_c_mg": 12.0},
		"allergens":                   map[string]interface{}{"gluten": true},
	}, English)

	assert.Equal(t, 12.0, r.Vitamins["vitamin_c_mg"])
	assert.Equal(t, true, r.Allergens["gluten"])
	assert.Nil(t, r.Additives)
}
