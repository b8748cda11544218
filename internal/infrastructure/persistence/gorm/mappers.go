package gorm

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/domain/menu"
	"github.com/mealwise/v1/internal/domain/nutrition"
)

// AnalysisToModel converts a nutrition record to its persistence model.
// The full record is serialized into the JSON column; the headline
// fields are duplicated into columns.
func AnalysisToModel(userID uuid.UUID, record *nutrition.Record) (*MealAnalysisModel, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var full JSONField
	if err := json.Unmarshal(payload, &full); err != nil {
		return nil, err
	}

	return &MealAnalysisModel{
		UserID:     userID,
		Name:       record.Name,
		Calories:   record.Calories,
		Protein:    record.Protein,
		Carbs:      record.Carbs,
		Fat:        record.Fat,
		Confidence: record.Confidence,
		Record:     full,
	}, nil
}

// ModelToRecord reconstructs the full nutrition record from the JSON
// column.
func ModelToRecord(model *MealAnalysisModel) (*nutrition.Record, error) {
	payload, err := json.Marshal(model.Record)
	if err != nil {
		return nil, err
	}
	var record nutrition.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// MenuToModel converts a menu plan to its persistence models. Meal and
// ingredient order is captured in sort columns.
func MenuToModel(plan *menu.Plan) *MenuModel {
	model := &MenuModel{
		ID:            plan.ID,
		UserID:        plan.UserID,
		Title:         plan.Title,
		Description:   plan.Description,
		TotalCalories: plan.TotalCalories,
		TotalProtein:  plan.TotalProtein,
		TotalCarbs:    plan.TotalCarbs,
		TotalFat:      plan.TotalFat,
		Days:          plan.Days,
		EstimatedCost: plan.EstimatedCost,
		Meals:         make([]MenuMealModel, len(plan.Meals)),
	}
	for i := range plan.Meals {
		model.Meals[i] = MealToModel(plan.ID, &plan.Meals[i], i)
	}
	return model
}

// MealToModel converts a single meal to its persistence model.
func MealToModel(menuID uuid.UUID, meal *menu.Meal, sortOrder int) MenuMealModel {
	model := MenuMealModel{
		ID:              meal.ID,
		MenuID:          menuID,
		Name:            meal.Name,
		MealType:        string(meal.Type),
		Day:             meal.Day,
		SortOrder:       sortOrder,
		Calories:        meal.Calories,
		Protein:         meal.Protein,
		Carbs:           meal.Carbs,
		Fat:             meal.Fat,
		PrepTimeMinutes: meal.PrepTimeMinutes,
		CookingMethod:   meal.CookingMethod,
		Instructions:    meal.Instructions,
		Ingredients:     make([]MealIngredientModel, len(meal.Ingredients)),
	}
	for i, line := range meal.Ingredients {
		model.Ingredients[i] = MealIngredientModel{
			MealID:        meal.ID,
			Name:          line.Name,
			Quantity:      line.Quantity,
			Unit:          line.Unit,
			Category:      line.Category,
			EstimatedCost: line.EstimatedCost,
			SortOrder:     i,
		}
	}
	return model
}

// ModelToPlan reconstructs a menu plan, relying on the preloaded and
// sorted associations.
func ModelToPlan(model *MenuModel) *menu.Plan {
	plan := &menu.Plan{
		ID:            model.ID,
		UserID:        model.UserID,
		Title:         model.Title,
		Description:   model.Description,
		TotalCalories: model.TotalCalories,
		TotalProtein:  model.TotalProtein,
		TotalCarbs:    model.TotalCarbs,
		TotalFat:      model.TotalFat,
		Days:          model.Days,
		EstimatedCost: model.EstimatedCost,
		Meals:         make([]menu.Meal, len(model.Meals)),
	}
	for i := range model.Meals {
		plan.Meals[i] = ModelToMeal(&model.Meals[i])
	}
	return plan
}

// ModelToMeal reconstructs a single meal from its persistence model.
func ModelToMeal(model *MenuMealModel) menu.Meal {
	meal := menu.Meal{
		ID:              model.ID,
		Name:            model.Name,
		Type:            menu.ParseMealType(model.MealType),
		Day:             model.Day,
		Calories:        model.Calories,
		Protein:         model.Protein,
		Carbs:           model.Carbs,
		Fat:             model.Fat,
		PrepTimeMinutes: model.PrepTimeMinutes,
		CookingMethod:   model.CookingMethod,
		Instructions:    model.Instructions,
		Ingredients:     make([]menu.IngredientLine, len(model.Ingredients)),
	}
	for i, line := range model.Ingredients {
		meal.Ingredients[i] = menu.IngredientLine{
			Name:          line.Name,
			Quantity:      line.Quantity,
			Unit:          line.Unit,
			Category:      line.Category,
			EstimatedCost: line.EstimatedCost,
		}
	}
	return meal
}
