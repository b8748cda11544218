package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/domain/menu"
	"github.com/mealwise/v1/internal/ports/outbound"
	apperrors "github.com/mealwise/v1/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// MenuRepository implements the menu repository interface using GORM
type MenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) outbound.MenuRepository {
	return &MenuRepository{db: db}
}

// Create stores a plan. The menu row is written first; the meal rows
// and their ingredient lines are independent of each other and are
// written concurrently, joined before returning.
func (r *MenuRepository) Create(ctx context.Context, plan *menu.Plan) error {
	model := MenuToModel(plan)

	meals := model.Meals
	model.Meals = nil
	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return apperrors.NewDatabaseError("create menu", result.Error)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range meals {
		meal := meals[i]
		g.Go(func() error {
			return r.db.WithContext(gctx).Create(&meal).Error
		})
	}
	if err := g.Wait(); err != nil {
		return apperrors.NewDatabaseError("create menu meals", err)
	}
	return nil
}

// FindByID loads a plan with its meals and ingredient lines in stored
// order.
func (r *MenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.Plan, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindForUser loads a plan scoped to its owner. A menu belonging to a
// different user reads as not found.
func (r *MenuRepository) FindForUser(ctx context.Context, userID, menuID uuid.UUID) (*menu.Plan, error) {
	plan, err := r.findOne(ctx, "id = ? AND user_id = ?", menuID, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeMenuNotFound) {
			return nil, apperrors.NewMenuNotFoundError(menuID.String())
		}
		return nil, err
	}
	return plan, nil
}

func (r *MenuRepository) findOne(ctx context.Context, query string, args ...interface{}) (*menu.Plan, error) {
	var model MenuModel

	result := r.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("menu_meals.sort_order ASC")
		}).
		Preload("Meals.Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("meal_ingredients.sort_order ASC")
		}).
		First(&model, append([]interface{}{query}, args...)...)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewMenuNotFoundError("")
		}
		return nil, apperrors.NewDatabaseError("find menu", result.Error)
	}
	return ModelToPlan(&model), nil
}

// UpdateMeal replaces the stored fields and ingredient lines of one
// meal, keeping its identifier and slot.
func (r *MenuRepository) UpdateMeal(ctx context.Context, menuID uuid.UUID, meal *menu.Meal) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing MenuMealModel
		result := tx.First(&existing, "id = ? AND menu_id = ?", meal.ID, menuID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return apperrors.NewMealNotFoundError(meal.ID.String())
			}
			return apperrors.NewDatabaseError("find meal", result.Error)
		}

		updated := MealToModel(menuID, meal, existing.SortOrder)
		lines := updated.Ingredients
		updated.Ingredients = nil
		updated.CreatedAt = existing.CreatedAt

		if err := tx.Save(&updated).Error; err != nil {
			return apperrors.NewDatabaseError("update meal", err)
		}

		if err := tx.Delete(&MealIngredientModel{}, "meal_id = ?", meal.ID).Error; err != nil {
			return apperrors.NewDatabaseError("clear meal ingredients", err)
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return apperrors.NewDatabaseError("create meal ingredients", err)
			}
		}
		return nil
	})
	return err
}
