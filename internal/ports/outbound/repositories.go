// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mealwise/v1/internal/domain/menu"
	"github.com/mealwise/v1/internal/domain/nutrition"
)

// AnalysisRepository defines persistence for meal nutrition analyses.
type AnalysisRepository interface {
	Create(ctx context.Context, userID uuid.UUID, record *nutrition.Record) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*nutrition.Record, error)
}

// MenuRepository defines persistence for menu plans and their meals.
// Sibling meal and ingredient writes inside Create may run concurrently;
// the call returns only after all writes have joined.
type MenuRepository interface {
	Create(ctx context.Context, plan *menu.Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*menu.Plan, error)
	FindForUser(ctx context.Context, userID, menuID uuid.UUID) (*menu.Plan, error)
	UpdateMeal(ctx context.Context, menuID uuid.UUID, meal *menu.Meal) error
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ModelCall is one request to the language-model collaborator.
type ModelCall struct {
	SystemPrompt string
	UserPrompt   string

	// ImageData optionally embeds a photo alongside the prompts.
	ImageData []byte
	ImageMIME string

	MaxTokens   int
	Temperature float64
}

// ModelClient is the single-shot interface to the external model.
// Calls block until the provider responds or fails. There is no retry
// policy here; callers fall back on error.
type ModelClient interface {
	// Available reports whether the client is configured with a
	// credential. When false, callers route straight to fallback
	// content without attempting a call.
	Available() bool

	// Complete sends the call and returns the raw response text.
	Complete(ctx context.Context, call ModelCall) (string, error)
}
