package menu

import (
	"math/rand"

	"github.com/mealwise/v1/internal/domain/menu"
)

// SelectionPolicy picks the replacement for a meal the user rejected.
// Preferences are passed through for policies that weight by them; the
// default policy ignores them.
type SelectionPolicy interface {
	Select(current *menu.Meal, preferences string) menu.Meal
}

// replacementPool is the fixed set of alternatives the default policy
// draws from.
var replacementPool = []menu.Meal{
	{
		Name: "Quinoa Bowl with Roasted Vegetables", Type: menu.MealTypeLunch,
		Calories: 420, Protein: 18, Carbs: 60, Fat: 12,
		PrepTimeMinutes: 25, CookingMethod: "Roasted",
		Ingredients: []menu.IngredientLine{
			{Name: "quinoa", Quantity: 80, Unit: "g", Category: "grains", EstimatedCost: 2.5},
			{Name: "mixed vegetables", Quantity: 200, Unit: "g", Category: "vegetables", EstimatedCost: 3.5},
		},
	},
	{
		Name: "Turkey and Avocado Wrap", Type: menu.MealTypeLunch,
		Calories: 460, Protein: 30, Carbs: 42, Fat: 18,
		PrepTimeMinutes: 10, CookingMethod: "Fresh",
		Ingredients: []menu.IngredientLine{
			{Name: "turkey breast", Quantity: 100, Unit: "g", Category: "protein", EstimatedCost: 4.0},
			{Name: "tortilla", Quantity: 1, Unit: "piece", Category: "grains", EstimatedCost: 1.0},
			{Name: "avocado", Quantity: 0.5, Unit: "piece", Category: "fats", EstimatedCost: 2.0},
		},
	},
	{
		Name: "Lentil Soup with Crusty Bread", Type: menu.MealTypeDinner,
		Calories: 390, Protein: 20, Carbs: 58, Fat: 8,
		PrepTimeMinutes: 40, CookingMethod: "Simmered",
		Ingredients: []menu.IngredientLine{
			{Name: "red lentils", Quantity: 100, Unit: "g", Category: "legumes", EstimatedCost: 1.5},
			{Name: "bread", Quantity: 2, Unit: "slice", Category: "grains", EstimatedCost: 1.0},
		},
	},
}

// randomSelection picks uniformly at random from the replacement pool,
// keeping the replaced meal's slot in the plan.
type randomSelection struct {
	rng *rand.Rand
}

// NewRandomSelection creates the default selection policy. The source
// is injectable so tests can pin the outcome.
func NewRandomSelection(src rand.Source) SelectionPolicy {
	return &randomSelection{rng: rand.New(src)}
}

func (p *randomSelection) Select(current *menu.Meal, _ string) menu.Meal {
	pick := replacementPool[p.rng.Intn(len(replacementPool))]

	replacement := pick
	replacement.ID = current.ID
	replacement.Type = current.Type
	replacement.Day = current.Day
	replacement.Ingredients = make([]menu.IngredientLine, len(pick.Ingredients))
	copy(replacement.Ingredients, pick.Ingredients)
	return replacement
}
