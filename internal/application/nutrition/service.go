// Package nutrition provides the application layer for meal photo
// analysis. The model call is best-effort: configuration gaps, call
// failures and unparseable responses all degrade to deterministic
// fallback content instead of surfacing errors.
package nutrition

import (
	"context"
	"encoding/json"

	"github.com/mealwise/v1/internal/domain/nutrition"
	"github.com/mealwise/v1/internal/ports/inbound"
	"github.com/mealwise/v1/internal/ports/outbound"
	"github.com/mealwise/v1/pkg/errors"
	"github.com/mealwise/v1/pkg/jsonrepair"
	"go.uber.org/zap"
)

// Service implements the nutrition analysis use cases.
type Service struct {
	model    outbound.ModelClient
	analyses outbound.AnalysisRepository
	logger   *zap.Logger
}

// NewService creates a new nutrition analysis service.
func NewService(
	model outbound.ModelClient,
	analyses outbound.AnalysisRepository,
	logger *zap.Logger,
) inbound.NutritionService {
	return &Service{
		model:    model,
		analyses: analyses,
		logger:   logger.Named("nutrition-service"),
	}
}

// AnalyzeMealPhoto analyzes a meal photo into a nutrition record and
// stores it. AI problems never fail the request; persistence failures do.
func (s *Service) AnalyzeMealPhoto(ctx context.Context, cmd inbound.AnalyzeMealCommand) (*inbound.AnalysisResult, error) {
	lang := nutrition.ParseLanguage(cmd.Language)
	s.logger.Info("Analyzing meal photo",
		zap.String("user_id", cmd.UserID.String()),
		zap.String("language", string(lang)),
		zap.Int("image_bytes", len(cmd.ImageData)),
	)

	record := s.analyzePhoto(ctx, cmd, lang)

	id, err := s.analyses.Create(ctx, cmd.UserID, record)
	if err != nil {
		s.logger.Error("Failed to persist meal analysis", zap.Error(err))
		return nil, errors.NewDatabaseError("create meal analysis", err)
	}

	s.logger.Info("Meal analysis stored",
		zap.String("analysis_id", id.String()),
		zap.String("name", record.Name),
		zap.Int("confidence", record.Confidence),
	)

	return &inbound.AnalysisResult{ID: id, Record: record}, nil
}

// UpdateMealAnalysis revises a stored analysis according to free-text
// instructions. The revision is stored as a new record; the original is
// not mutated.
func (s *Service) UpdateMealAnalysis(ctx context.Context, cmd inbound.UpdateAnalysisCommand) (*inbound.AnalysisResult, error) {
	lang := nutrition.ParseLanguage(cmd.Language)

	original, err := s.analyses.FindByID(ctx, cmd.AnalysisID)
	if err != nil {
		return nil, err
	}

	record := s.reviseRecord(ctx, original, cmd.UpdateText, lang)

	id, err := s.analyses.Create(ctx, cmd.UserID, record)
	if err != nil {
		s.logger.Error("Failed to persist updated analysis", zap.Error(err))
		return nil, errors.NewDatabaseError("create updated analysis", err)
	}

	s.logger.Info("Meal analysis updated",
		zap.String("analysis_id", id.String()),
		zap.String("source_id", cmd.AnalysisID.String()),
	)

	return &inbound.AnalysisResult{ID: id, Record: record}, nil
}

// analyzePhoto runs the model pipeline and falls back on any failure.
func (s *Service) analyzePhoto(ctx context.Context, cmd inbound.AnalyzeMealCommand, lang nutrition.Language) *nutrition.Record {
	if !s.model.Available() {
		s.logger.Info("Model not configured, serving fallback analysis")
		return FallbackRecord(lang)
	}

	raw, err := s.model.Complete(ctx, outbound.ModelCall{
		SystemPrompt: analysisSystemPrompt(lang),
		UserPrompt:   analysisUserPrompt(lang, cmd.UpdateText, cmd.EditedIngredients),
		ImageData:    cmd.ImageData,
		ImageMIME:    cmd.ImageMIME,
	})
	if err != nil {
		s.logger.Warn("Model call failed, serving fallback analysis", zap.Error(err))
		return FallbackRecord(lang)
	}

	obj, err := jsonrepair.Extract(raw)
	if err != nil {
		s.logger.Warn("Model response unparseable, serving fallback analysis", zap.Error(err))
		return FallbackRecord(lang)
	}

	return nutrition.RecordFromMap(obj, lang)
}

// reviseRecord runs the update pipeline against the model, falling back
// to the keyword-scaling heuristic on any failure.
func (s *Service) reviseRecord(ctx context.Context, original *nutrition.Record, updateText string, lang nutrition.Language) *nutrition.Record {
	if !s.model.Available() {
		s.logger.Info("Model not configured, applying heuristic update")
		return UpdateFallback(original, updateText, lang)
	}

	originalJSON, err := json.Marshal(original)
	if err != nil {
		s.logger.Warn("Failed to serialize original analysis, applying heuristic update", zap.Error(err))
		return UpdateFallback(original, updateText, lang)
	}

	raw, err := s.model.Complete(ctx, outbound.ModelCall{
		SystemPrompt: analysisSystemPrompt(lang),
		UserPrompt:   updateUserPrompt(lang, string(originalJSON), updateText),
	})
	if err != nil {
		s.logger.Warn("Model call failed, applying heuristic update", zap.Error(err))
		return UpdateFallback(original, updateText, lang)
	}

	obj, err := jsonrepair.Extract(raw)
	if err != nil {
		s.logger.Warn("Model response unparseable, applying heuristic update", zap.Error(err))
		return UpdateFallback(original, updateText, lang)
	}

	return nutrition.RecordFromMap(obj, lang)
}
