// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealAnalysisModel represents the GORM model for stored meal analyses.
// The headline macros are lifted into columns for querying; the full
// normalized record is kept as JSON so reads lose nothing.
type MealAnalysisModel struct {
	ID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID uuid.UUID `gorm:"type:char(36);not null;index"`

	Name       string  `gorm:"type:varchar(255);not null"`
	Calories   float64 `gorm:"default:0"`
	Protein    float64 `gorm:"default:0"`
	Carbs      float64 `gorm:"default:0"`
	Fat        float64 `gorm:"default:0"`
	Confidence int     `gorm:"default:0"`

	Record JSONField `gorm:"type:json"`

	CreatedAt time.Time `gorm:"index"`
}

// MenuModel represents the GORM model for menu plans
type MenuModel struct {
	ID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID uuid.UUID `gorm:"type:char(36);not null;index"`

	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`

	TotalCalories float64 `gorm:"default:0"`
	TotalProtein  float64 `gorm:"default:0"`
	TotalCarbs    float64 `gorm:"default:0"`
	TotalFat      float64 `gorm:"default:0"`

	Days          int     `gorm:"default:0"`
	EstimatedCost float64 `gorm:"default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Meals []MenuMealModel `gorm:"foreignKey:MenuID"`
}

// MenuMealModel represents the GORM model for a single planned meal
type MenuMealModel struct {
	ID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	MenuID uuid.UUID `gorm:"type:char(36);not null;index"`

	Name     string `gorm:"type:varchar(255);not null"`
	MealType string `gorm:"type:varchar(20);index"`
	Day      int    `gorm:"default:1;index"`

	// SortOrder preserves the plan's meal order across reads.
	SortOrder int `gorm:"default:0;index"`

	Calories float64 `gorm:"default:0"`
	Protein  float64 `gorm:"default:0"`
	Carbs    float64 `gorm:"default:0"`
	Fat      float64 `gorm:"default:0"`

	PrepTimeMinutes int    `gorm:"default:0"`
	CookingMethod   string `gorm:"type:varchar(50)"`
	Instructions    string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Ingredients []MealIngredientModel `gorm:"foreignKey:MealID"`
}

// MealIngredientModel represents the GORM model for a meal ingredient line
type MealIngredientModel struct {
	ID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	MealID uuid.UUID `gorm:"type:char(36);not null;index"`

	Name          string  `gorm:"type:varchar(255);not null"`
	Quantity      float64 `gorm:"default:0"`
	Unit          string  `gorm:"type:varchar(50)"`
	Category      string  `gorm:"type:varchar(50)"`
	EstimatedCost float64 `gorm:"default:0"`

	// SortOrder preserves the ingredient order within a meal.
	SortOrder int `gorm:"default:0;index"`

	CreatedAt time.Time
}

// JSONField custom type for handling JSON fields
type JSONField map[string]interface{}

// Scan implements the sql.Scanner interface
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = JSONField{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONField", value)
	}
}

// Value implements the driver.Valuer interface
func (j JSONField) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return json.Marshal(j)
}

// BeforeCreate hook for MealAnalysisModel
func (m *MealAnalysisModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MenuModel
func (m *MenuModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MenuMealModel
func (m *MenuMealModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MealIngredientModel
func (m *MealIngredientModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (MealAnalysisModel) TableName() string {
	return "meal_analyses"
}

func (MenuModel) TableName() string {
	return "menus"
}

func (MenuMealModel) TableName() string {
	return "menu_meals"
}

func (MealIngredientModel) TableName() string {
	return "meal_ingredients"
}
