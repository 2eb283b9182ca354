package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/osse101/FarmBot_Go/internal/logger"
)

// decodeAndValidate decodes a JSON body into req and runs struct validation.
// On failure the response has been written and the handler should return.
// Enum failures on crop or animal fields answer unknown_item. An empty body
// decodes as the zero request.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any, op string) bool {
	log := logFrom(r)

	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn(LogMsgDecodeFailed, "op", op, "error", err)
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidRequest)
		return false
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Info(LogMsgValidationFailed, "op", op, "error", err)
		body := ValidationErrorResponse{
			ErrorResponse: ErrorResponse{Error: ErrMsgInvalidRequest, Code: CodeInvalidRequest},
			Fields:        FormatValidationError(err),
		}
		if isUnknownKind(err) {
			body.ErrorResponse = ErrorResponse{Error: ErrMsgUnknownItem, Code: CodeUnknownItem}
		}
		respondJSON(w, http.StatusBadRequest, body)
		return false
	}

	return true
}

func logFrom(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context())
}
