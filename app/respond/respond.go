// Package respond writes JSON bodies and maps domain errors to statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xiuxian-wiki/encyclopedia/apperr"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"error": message}.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Error writes err as {"error": ...}. Internal errors are logged with their
// cause and reported generically.
func Error(w http.ResponseWriter, log *zap.Logger, err error, msg string) {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		fields := []zap.Field{zap.Error(err)}
		if cause := errors.Unwrap(err); cause != nil {
			fields = append(fields, zap.NamedError("cause", cause))
		}
		log.Error(msg, fields...)
	}
	Message(w, code.HTTPStatus(), apperr.PublicMessage(err))
}
