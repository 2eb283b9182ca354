package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error             string `json:"error"`
	Code              string `json:"code"`
	RetryAfterSeconds int64  `json:"retryAfterSeconds,omitempty"`
}

// ValidationErrorResponse adds per-field messages to ErrorResponse
type ValidationErrorResponse struct {
	ErrorResponse
	Fields map[string]string `json:"fields,omitempty"`
}

// respondJSON encodes payload into a pooled buffer before touching the writer,
// so an encode failure still leaves the status unwritten.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// mapServiceError converts a domain error into a status and response body.
// Storage errors reaching here have already used their retry budget.
func mapServiceError(err error) (int, ErrorResponse) {
	var onCooldown cooldown.ErrOnCooldown
	if errors.As(err, &onCooldown) {
		return http.StatusConflict, ErrorResponse{
			Error:             ErrMsgCooldownActive,
			Code:              CodeCooldownActive,
			RetryAfterSeconds: onCooldown.RetryAfterSeconds(),
		}
	}

	switch {
	case errors.Is(err, domain.ErrBadSignature):
		return http.StatusUnauthorized, ErrorResponse{Error: ErrMsgBadSignature, Code: CodeBadSignature}
	case errors.Is(err, domain.ErrExpired):
		return http.StatusUnauthorized, ErrorResponse{Error: ErrMsgExpired, Code: CodeExpired}
	case errors.Is(err, domain.ErrMalformedAssertion):
		return http.StatusUnauthorized, ErrorResponse{Error: ErrMsgMalformedAssertion, Code: CodeMalformedAssertion}
	case errors.Is(err, domain.ErrCooldownActive):
		return http.StatusConflict, ErrorResponse{Error: ErrMsgCooldownActive, Code: CodeCooldownActive}
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict, ErrorResponse{Error: ErrMsgInsufficientFunds, Code: CodeInsufficientFunds}
	case errors.Is(err, domain.ErrBalanceOverflow):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: ErrMsgBalanceOverflow, Code: CodeBalanceOverflow}
	case errors.Is(err, domain.ErrUnknownItem):
		return http.StatusBadRequest, ErrorResponse{Error: ErrMsgUnknownItem, Code: CodeUnknownItem}
	case errors.Is(err, domain.ErrUnknownProduct):
		return http.StatusNotFound, ErrorResponse{Error: ErrMsgUnknownProduct, Code: CodeUnknownProduct}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequest, Code: CodeInvalidRequest}
	case domain.IsStorageError(err):
		return http.StatusServiceUnavailable, ErrorResponse{Error: ErrMsgTryAgain, Code: CodeTryAgain}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgInternal, Code: CodeInternal}
}

// respondServiceError logs err at a level matching its class and writes the mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logFrom(r)
	switch {
	case domain.IsGameError(err), domain.IsAuthError(err), domain.IsPaymentError(err):
		log.Info(LogMsgActionRejected, "op", op, "reason", err)
	default:
		log.Error(LogMsgRequestFailed, "op", op, "error", err)
	}

	status, body := mapServiceError(err)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	respondJSON(w, status, body)
}
