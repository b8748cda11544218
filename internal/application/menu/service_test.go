package menu

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/domain/menu"
	"github.com/mealwise/v1/internal/infrastructure/config"
	"github.com/mealwise/v1/internal/ports/inbound"
	"github.com/mealwise/v1/internal/ports/outbound"
	apperrors "github.com/mealwise/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockModelClient is a mock implementation of the model client
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockModelClient) Complete(ctx context.Context, call outbound.ModelCall) (string, error) {
	args := m.Called(ctx, call)
	return args.String(0), args.Error(1)
}

// MockMenuRepository is a mock implementation of the menu repository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) Create(ctx context.Context, plan *menu.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Plan), args.Error(1)
}

func (m *MockMenuRepository) FindForUser(ctx context.Context, userID, menuID uuid.UUID) (*menu.Plan, error) {
	args := m.Called(ctx, userID, menuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Plan), args.Error(1)
}

func (m *MockMenuRepository) UpdateMeal(ctx context.Context, menuID uuid.UUID, meal *menu.Meal) error {
	args := m.Called(ctx, menuID, meal)
	return args.Error(0)
}

// MockCacheRepository is a mock implementation of the cache repository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func newTestService(t *testing.T, model *MockModelClient, repo *MockMenuRepository, cache *MockCacheRepository) inbound.MenuService {
	return NewService(model, repo, cache, NewRandomSelection(rand.NewSource(1)),
		config.CacheConfig{ShoppingListTTL: 30 * time.Minute}, zaptest.NewLogger(t))
}

func TestGeneratePersonalizedMenu_FallbackWhenUnavailable(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)
	model.On("Available").Return(false)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(t, model, repo, cache)
	plan, err := svc.GeneratePersonalizedMenu(context.Background(), inbound.PersonalizedMenuCommand{
		UserID:      uuid.New(),
		Days:        2,
		MealsPerDay: "2_main",
		Language:    "english",
	})

	require.NoError(t, err)
	assert.Len(t, plan.Meals, 4)
	assert.Equal(t, 2, plan.Days)
	model.AssertNotCalled(t, "Complete")
}

func TestGeneratePersonalizedMenu_ModelPlanNormalized(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)
	model.On("Available").Return(true)
	model.On("Complete", mock.Anything, mock.Anything).Return(`{
		"title": "High Protein Week",
		"meals": [
			{"name": "Oatmeal", "meal_type": "breakfast", "day": 1, "calories": 300, "protein_g": 12,
			 "ingredients": [{"name": "oats", "quantity": 80, "unit": "g", "estimated_cost": 1.2}]},
			{"name": "Steak Salad", "meal_type": "dinner", "day": 1, "calories": 600, "protein_g": 45}
		]
	}`, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(t, model, repo, cache)
	plan, err := svc.GeneratePersonalizedMenu(context.Background(), inbound.PersonalizedMenuCommand{
		UserID: uuid.New(),
		Days:   1,
	})

	require.NoError(t, err)
	assert.Equal(t, "High Protein Week", plan.Title)
	require.Len(t, plan.Meals, 2)
	assert.Equal(t, menu.MealTypeBreakfast, plan.Meals[0].Type)
	assert.Equal(t, 900.0, plan.TotalCalories)
	assert.InDelta(t, 1.2, plan.EstimatedCost, 1e-9)
}

func TestGeneratePersonalizedMenu_MissingMealsArray(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)
	model.On("Available").Return(true)
	model.On("Complete", mock.Anything, mock.Anything).Return(`{"title": "Empty", "days": 7}`, nil)

	svc := newTestService(t, model, repo, cache)
	_, err := svc.GeneratePersonalizedMenu(context.Background(), inbound.PersonalizedMenuCommand{
		UserID: uuid.New(),
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeAIResponseInvalid))
	repo.AssertNotCalled(t, "Create")
}

func TestGenerateCustomMenu_ModelErrorFallsBack(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)
	model.On("Available").Return(true)
	model.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("timeout"))
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(t, model, repo, cache)
	plan, err := svc.GenerateCustomMenu(context.Background(), inbound.CustomMenuCommand{
		UserID:        uuid.New(),
		Days:          1,
		MealsPerDay:   "3_main",
		CustomRequest: "vegetarian week",
	})

	require.NoError(t, err)
	assert.Len(t, plan.Meals, 3)
}

func TestGenerateMenu_PersistenceFailureSurfaces(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)
	model.On("Available").Return(false)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := newTestService(t, model, repo, cache)
	_, err := svc.GeneratePersonalizedMenu(context.Background(), inbound.PersonalizedMenuCommand{
		UserID: uuid.New(),
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeDatabaseError))
}

func TestReplaceMeal_KeepsSlotAndInvalidatesCache(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)

	userID := uuid.New()
	menuID := uuid.New()
	mealID := uuid.New()
	plan := &menu.Plan{
		ID:     menuID,
		UserID: userID,
		Meals: []menu.Meal{
			{ID: mealID, Name: "Pasta", Type: menu.MealTypeDinner, Day: 3, Calories: 700},
		},
	}
	repo.On("FindForUser", mock.Anything, userID, menuID).Return(plan, nil)
	repo.On("UpdateMeal", mock.Anything, menuID, mock.Anything).Return(nil)
	cache.On("Delete", mock.Anything, shoppingListKey(userID, menuID)).Return(nil)

	svc := newTestService(t, model, repo, cache)
	replacement, err := svc.ReplaceMeal(context.Background(), inbound.ReplaceMealCommand{
		UserID: userID,
		MenuID: menuID,
		MealID: mealID,
	})

	require.NoError(t, err)
	assert.Equal(t, mealID, replacement.ID)
	assert.Equal(t, 3, replacement.Day)
	assert.Equal(t, menu.MealTypeDinner, replacement.Type)
	assert.NotEqual(t, "Pasta", replacement.Name)
	cache.AssertCalled(t, "Delete", mock.Anything, shoppingListKey(userID, menuID))
}

func TestReplaceMeal_MealNotFound(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)

	userID := uuid.New()
	menuID := uuid.New()
	repo.On("FindForUser", mock.Anything, userID, menuID).Return(&menu.Plan{ID: menuID}, nil)

	svc := newTestService(t, model, repo, cache)
	_, err := svc.ReplaceMeal(context.Background(), inbound.ReplaceMealCommand{
		UserID: userID,
		MenuID: menuID,
		MealID: uuid.New(),
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMealNotFound))
}

func TestReplaceMeal_MenuNotFoundPropagates(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)

	userID := uuid.New()
	menuID := uuid.New()
	repo.On("FindForUser", mock.Anything, userID, menuID).
		Return(nil, apperrors.NewMenuNotFoundError(menuID.String()))

	svc := newTestService(t, model, repo, cache)
	_, err := svc.ReplaceMeal(context.Background(), inbound.ReplaceMealCommand{
		UserID: userID,
		MenuID: menuID,
		MealID: uuid.New(),
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMenuNotFound))
}

func TestGenerateShoppingList_BuildsAndCaches(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)

	userID := uuid.New()
	menuID := uuid.New()
	plan := &menu.Plan{
		ID: menuID,
		Meals: []menu.Meal{
			{Ingredients: []menu.IngredientLine{{Name: "rice", Quantity: 100, Unit: "g", EstimatedCost: 1}}},
			{Ingredients: []menu.IngredientLine{{Name: "rice", Quantity: 50, Unit: "g", EstimatedCost: 0.5}}},
		},
	}
	cache.On("Get", mock.Anything, shoppingListKey(userID, menuID)).Return(nil, errors.New("cache miss"))
	repo.On("FindForUser", mock.Anything, userID, menuID).Return(plan, nil)
	cache.On("Set", mock.Anything, shoppingListKey(userID, menuID), mock.Anything, 30*time.Minute).Return(nil)

	svc := newTestService(t, model, repo, cache)
	list, err := svc.GenerateShoppingList(context.Background(), userID, menuID)

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 150.0, list.Items[0].Quantity)
	cache.AssertCalled(t, "Set", mock.Anything, shoppingListKey(userID, menuID), mock.Anything, 30*time.Minute)
}

func TestGenerateShoppingList_CacheHitSkipsRepository(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)

	userID := uuid.New()
	menuID := uuid.New()
	cached, err := json.Marshal(&menu.ShoppingList{
		MenuID: menuID,
		Items:  []menu.ShoppingListItem{{Name: "rice", Unit: "g", Quantity: 150}},
	})
	require.NoError(t, err)
	cache.On("Get", mock.Anything, shoppingListKey(userID, menuID)).Return(cached, nil)

	svc := newTestService(t, model, repo, cache)
	list, err := svc.GenerateShoppingList(context.Background(), userID, menuID)

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 150.0, list.Items[0].Quantity)
	repo.AssertNotCalled(t, "FindForUser")
}

func TestGenerateShoppingList_CachedListNotServedToOtherUsers(t *testing.T) {
	model := new(MockModelClient)
	repo := new(MockMenuRepository)
	cache := new(MockCacheRepository)

	ownerID := uuid.New()
	strangerID := uuid.New()
	menuID := uuid.New()
	cached, err := json.Marshal(&menu.ShoppingList{
		MenuID: menuID,
		Items:  []menu.ShoppingListItem{{Name: "rice", Unit: "g", Quantity: 150}},
	})
	require.NoError(t, err)

	// The owner warmed the cache; the key is theirs alone.
	cache.On("Get", mock.Anything, shoppingListKey(ownerID, menuID)).Return(cached, nil)
	cache.On("Get", mock.Anything, shoppingListKey(strangerID, menuID)).Return(nil, nil)
	repo.On("FindForUser", mock.Anything, strangerID, menuID).
		Return(nil, apperrors.NewMenuNotFoundError(menuID.String()))

	svc := newTestService(t, model, repo, cache)
	_, err = svc.GenerateShoppingList(context.Background(), strangerID, menuID)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMenuNotFound))
}

func TestRandomSelection_DrawsFromPool(t *testing.T) {
	policy := NewRandomSelection(rand.NewSource(42))
	current := &menu.Meal{ID: uuid.New(), Name: "Pasta", Type: menu.MealTypeLunch, Day: 2}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		picked := policy.Select(current, "")
		seen[picked.Name] = true
		assert.Equal(t, current.ID, picked.ID)
		assert.Equal(t, current.Day, picked.Day)
		assert.Equal(t, current.Type, picked.Type)
	}
	assert.Greater(t, len(seen), 1, "repeated draws cover more than one alternative")
}
