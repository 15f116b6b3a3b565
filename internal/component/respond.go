package component

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/upstream"
)

// JSON writes v with status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("json encode failed", zap.Error(err))
	}
}

// JSONError writes {"error": msg}.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// ErrorMessage renders err for an API client without leaking transport
// detail.
func ErrorMessage(err error) string {
	var ue *upstream.UpstreamError
	switch {
	case errors.As(err, &ue):
		return ue.Message
	case errors.Is(err, upstream.ErrNotFound):
		return "not found"
	case errors.Is(err, upstream.ErrTimeout):
		return "upstream request timed out"
	case errors.Is(err, upstream.ErrInvalidData):
		return "invalid data received from upstream"
	case errors.Is(err, upstream.ErrNoIdentifier):
		return "invalid customer code"
	default:
		return "internal server error"
	}
}
