package menu

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/domain/menu"
	"github.com/mealwise/v1/internal/domain/nutrition"
	"github.com/mealwise/v1/internal/infrastructure/config"
	"github.com/mealwise/v1/internal/ports/inbound"
	"github.com/mealwise/v1/internal/ports/outbound"
	"github.com/mealwise/v1/pkg/errors"
	"github.com/mealwise/v1/pkg/jsonrepair"
	"go.uber.org/zap"
)

// Service implements the menu plan use cases.
type Service struct {
	model     outbound.ModelClient
	menus     outbound.MenuRepository
	cache     outbound.CacheRepository
	selection SelectionPolicy
	cacheCfg  config.CacheConfig
	logger    *zap.Logger
}

// NewService creates a new menu service.
func NewService(
	model outbound.ModelClient,
	menus outbound.MenuRepository,
	cache outbound.CacheRepository,
	selection SelectionPolicy,
	cacheCfg config.CacheConfig,
	logger *zap.Logger,
) inbound.MenuService {
	return &Service{
		model:     model,
		menus:     menus,
		cache:     cache,
		selection: selection,
		cacheCfg:  cacheCfg,
		logger:    logger.Named("menu-service"),
	}
}

// GeneratePersonalizedMenu builds a menu from questionnaire data and
// stores it.
func (s *Service) GeneratePersonalizedMenu(ctx context.Context, cmd inbound.PersonalizedMenuCommand) (*menu.Plan, error) {
	lang := nutrition.ParseLanguage(cmd.Language)
	days := cmd.Days
	if days < 1 {
		days = DefaultDays
	}

	target := resolveTargetCalories(cmd.TargetCalories, cmd.Questionnaire)
	s.logger.Info("Generating personalized menu",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("days", days),
		zap.Int("target_calories", target),
		zap.String("meals_per_day", cmd.MealsPerDay),
	)

	plan, err := s.generatePlan(ctx, cmd.UserID, days, cmd.MealsPerDay, lang,
		personalizedMenuPrompt(cmd, target, lang))
	if err != nil {
		return nil, err
	}

	return s.storePlan(ctx, plan)
}

// GenerateCustomMenu builds a menu from a free-text request and stores
// it.
func (s *Service) GenerateCustomMenu(ctx context.Context, cmd inbound.CustomMenuCommand) (*menu.Plan, error) {
	lang := nutrition.ParseLanguage(cmd.Language)
	days := cmd.Days
	if days < 1 {
		days = DefaultDays
	}

	target := resolveTargetCalories(cmd.TargetCalories, inbound.Questionnaire{})
	s.logger.Info("Generating custom menu",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("days", days),
	)

	plan, err := s.generatePlan(ctx, cmd.UserID, days, cmd.MealsPerDay, lang,
		customMenuPrompt(cmd, target, lang))
	if err != nil {
		return nil, err
	}

	return s.storePlan(ctx, plan)
}

// ReplaceMeal swaps one meal of a stored menu for an alternative chosen
// by the selection policy, keeping the meal's slot in the plan.
func (s *Service) ReplaceMeal(ctx context.Context, cmd inbound.ReplaceMealCommand) (*menu.Meal, error) {
	plan, err := s.menus.FindForUser(ctx, cmd.UserID, cmd.MenuID)
	if err != nil {
		return nil, err
	}

	current, ok := plan.MealByID(cmd.MealID)
	if !ok {
		return nil, errors.NewMealNotFoundError(cmd.MealID.String())
	}

	replacement := s.selection.Select(current, cmd.Preferences)
	if err := s.menus.UpdateMeal(ctx, cmd.MenuID, &replacement); err != nil {
		s.logger.Error("Failed to persist meal replacement", zap.Error(err))
		return nil, errors.NewDatabaseError("update meal", err)
	}

	// The stored list no longer matches the menu.
	if err := s.cache.Delete(ctx, shoppingListKey(cmd.UserID, cmd.MenuID)); err != nil {
		s.logger.Warn("Failed to invalidate shopping list cache", zap.Error(err))
	}

	s.logger.Info("Meal replaced",
		zap.String("menu_id", cmd.MenuID.String()),
		zap.String("meal_id", cmd.MealID.String()),
		zap.String("replacement", replacement.Name),
	)
	return &replacement, nil
}

// GenerateShoppingList aggregates the ingredient lines of a stored menu
// into a shopping list, served from cache when fresh. Cache entries are
// keyed per owner, so only the user that passed the ownership check can
// ever warm or hit one.
func (s *Service) GenerateShoppingList(ctx context.Context, userID, menuID uuid.UUID) (*menu.ShoppingList, error) {
	key := shoppingListKey(userID, menuID)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		var list menu.ShoppingList
		if err := json.Unmarshal(cached, &list); err == nil {
			s.logger.Debug("Shopping list served from cache", zap.String("menu_id", menuID.String()))
			return &list, nil
		}
	}

	plan, err := s.menus.FindForUser(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}

	list := menu.BuildShoppingList(plan)

	if payload, err := json.Marshal(list); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.cacheCfg.ShoppingListTTL); err != nil {
			s.logger.Warn("Failed to cache shopping list", zap.Error(err))
		}
	}

	s.logger.Info("Shopping list generated",
		zap.String("menu_id", menuID.String()),
		zap.Int("items", len(list.Items)),
	)
	return list, nil
}

// generatePlan runs the model pipeline. A missing credential or a
// failed call degrades to the deterministic fallback plan; a response
// that parses but lacks the meals array is a structural failure the
// caller must see.
func (s *Service) generatePlan(ctx context.Context, userID uuid.UUID, days int, mealsPerDay string, lang nutrition.Language, userPrompt string) (*menu.Plan, error) {
	if !s.model.Available() {
		s.logger.Info("Model not configured, serving fallback menu")
		return FallbackPlan(userID, days, mealsPerDay, lang), nil
	}

	raw, err := s.model.Complete(ctx, outbound.ModelCall{
		SystemPrompt: menuSystemPrompt(lang),
		UserPrompt:   userPrompt,
	})
	if err != nil {
		s.logger.Warn("Model call failed, serving fallback menu", zap.Error(err))
		return FallbackPlan(userID, days, mealsPerDay, lang), nil
	}

	obj, err := jsonrepair.Extract(raw)
	if err != nil {
		s.logger.Warn("Model response unparseable, serving fallback menu", zap.Error(err))
		return FallbackPlan(userID, days, mealsPerDay, lang), nil
	}

	plan, ok := menu.PlanFromMap(obj, userID, days)
	if !ok {
		s.logger.Error("Model response is missing the meals array")
		return nil, errors.NewAIResponseInvalidError("generated menu has no meals array", nil)
	}
	return plan, nil
}

func (s *Service) storePlan(ctx context.Context, plan *menu.Plan) (*menu.Plan, error) {
	if err := s.menus.Create(ctx, plan); err != nil {
		s.logger.Error("Failed to persist menu", zap.Error(err))
		return nil, errors.NewDatabaseError("create menu", err)
	}

	s.logger.Info("Menu stored",
		zap.String("menu_id", plan.ID.String()),
		zap.Int("meals", len(plan.Meals)),
		zap.Float64("total_calories", plan.TotalCalories),
	)
	return plan, nil
}

func resolveTargetCalories(explicit *int, q inbound.Questionnaire) int {
	if explicit != nil && *explicit > 0 {
		return clampCalories(*explicit)
	}
	return CalculateDefaultCalories(q)
}

func shoppingListKey(userID, menuID uuid.UUID) string {
	return fmt.Sprintf("shopping-list:%s:%s", userID, menuID)
}
