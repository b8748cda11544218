// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/mealwise/v1/pkg/errors"
	"go.uber.org/zap"
)

var validate = validator.New()

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an error onto its HTTP status and standard error body.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := apperrors.Wrap(err, "request failed")
	writeJSON(w, logger, appErr.StatusCode(),
		apperrors.ToErrorResponse(appErr, middleware.GetReqID(r.Context())))
}

// decodeAndValidate decodes a JSON body into dst and runs struct
// validation. A false return means the error response was already
// written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, logger, apperrors.NewBadRequestError("invalid JSON body"))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, r, logger, apperrors.NewValidationError(err.Error()))
		return false
	}
	return true
}
