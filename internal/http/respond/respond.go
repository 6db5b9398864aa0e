package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/bookmarks-be/internal/models/dto"
)

// Envelope is the error body shared by every handler.
type Envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON writes payload as the response body.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("respond: encode payload failed", zap.Error(err))
	}
}

// Error writes an error response with the shared envelope structure.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Code: status, Message: message})
}

// Validation writes a 400 listing every rejected field.
func Validation(w http.ResponseWriter, err *dto.ValidationError) {
	JSON(w, http.StatusBadRequest, Envelope{
		Code:    http.StatusBadRequest,
		Message: "validation failed",
		Fields:  err.Fields,
	})
}

// NoContent writes an empty response with the given status.
func NoContent(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
