package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/domain/nutrition"
	"github.com/mealwise/v1/internal/ports/outbound"
	apperrors "github.com/mealwise/v1/pkg/errors"
	"gorm.io/gorm"
)

// AnalysisRepository implements the analysis repository interface using GORM
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) outbound.AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create stores a nutrition record and returns its generated identifier.
func (r *AnalysisRepository) Create(ctx context.Context, userID uuid.UUID, record *nutrition.Record) (uuid.UUID, error) {
	model, err := AnalysisToModel(userID, record)
	if err != nil {
		return uuid.Nil, apperrors.NewDatabaseError("serialize meal analysis", err)
	}

	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return uuid.Nil, apperrors.NewDatabaseError("create meal analysis", result.Error)
	}
	return model.ID, nil
}

// FindByID loads a stored analysis by its identifier.
func (r *AnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*nutrition.Record, error) {
	var model MealAnalysisModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAnalysisNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("find meal analysis", result.Error)
	}

	record, err := ModelToRecord(&model)
	if err != nil {
		return nil, apperrors.NewDatabaseError("decode meal analysis", err)
	}
	return record, nil
}
