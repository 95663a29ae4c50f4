// Package respond writes the boundary's wire shapes: raw entity JSON
// on success, a {code, message} object on failure.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/apperr"
)

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON writes payload as-is with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("encode response", zap.Error(err))
	}
}

// Text writes a plain text body with the given status.
func Text(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(message)); err != nil {
		logger.Error("write response", zap.Error(err))
	}
}

// Err maps a failure through the apperr taxonomy. Errors outside the
// taxonomy are logged and hidden behind a generic 500 message.
func Err(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("internal error", zap.Error(err))
		message = "Internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(errorBody{Code: status, Message: message}); encErr != nil {
		logger.Error("encode error response", zap.Error(encErr))
	}
}
