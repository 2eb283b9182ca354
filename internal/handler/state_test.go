package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/identity"
)

var player42 = identity.VerifiedIdentity{UserID: 42, DisplayName: "Ada"}

func postState(h *StateHandler, body string, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/state", strings.NewReader(body))
	if header != "" {
		req.Header.Set(HeaderInitData, header)
	}
	rec := httptest.NewRecorder()
	h.HandleState(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleState_ReadOnly(t *testing.T) {
	verifier := &mockVerifier{}
	game := &mockGame{}
	verifier.On("Verify", "init-data").Return(player42, nil)
	game.On("State", mock.Anything, player42).Return(&farm.Snapshot{
		UserID:    42,
		Coins:     100,
		Inventory: map[domain.ItemKind]int64{domain.AnimalCow: 0},
		Cooldowns: map[domain.CropKind]cooldown.Status{domain.CropCarrot: {Ready: true}},
	}, nil)

	rec := postState(NewStateHandler(verifier, game), `{"identityAssertion":"init-data"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["userId"])
	assert.Equal(t, float64(100), body["coins"])
	assert.Contains(t, body, "inventory")
	assert.Contains(t, body, "cooldowns")
	game.AssertExpectations(t)
}

func TestHandleState_AssertionFromHeader(t *testing.T) {
	verifier := &mockVerifier{}
	game := &mockGame{}
	verifier.On("Verify", "header-data").Return(player42, nil)
	game.On("State", mock.Anything, player42).Return(&farm.Snapshot{UserID: 42, Coins: 100}, nil)

	rec := postState(NewStateHandler(verifier, game), `{}`, "header-data")

	assert.Equal(t, http.StatusOK, rec.Code)
	verifier.AssertExpectations(t)
}

func TestHandleState_HeaderOnlyEmptyBody(t *testing.T) {
	verifier := &mockVerifier{}
	game := &mockGame{}
	verifier.On("Verify", "header-data").Return(player42, nil)
	game.On("State", mock.Anything, player42).Return(&farm.Snapshot{UserID: 42, Coins: 100}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/state", http.NoBody)
	req.Header.Set(HeaderInitData, "header-data")
	rec := httptest.NewRecorder()
	NewStateHandler(verifier, game).HandleState(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"coins":100`)
	verifier.AssertExpectations(t)
	game.AssertExpectations(t)
}

func TestHandleState_Harvest(t *testing.T) {
	verifier := &mockVerifier{}
	game := &mockGame{}
	verifier.On("Verify", "x").Return(player42, nil)
	game.On("Harvest", mock.Anything, player42, domain.CropCarrot).Return(&farm.Snapshot{UserID: 42, Coins: 110}, nil).Once()
	game.On("Harvest", mock.Anything, player42, domain.CropCarrot).
		Return(nil, cooldown.ErrOnCooldown{Crop: domain.CropCarrot, Remaining: 299*time.Second + 500*time.Millisecond}).Once()
	h := NewStateHandler(verifier, game)
	body := `{"identityAssertion":"x","action":"harvest","params":{"crop":"carrot"}}`

	first := postState(h, body, "")
	second := postState(h, body, "")

	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), `"coins":110`)

	require.Equal(t, http.StatusConflict, second.Code)
	errBody := decodeError(t, second)
	assert.Equal(t, CodeCooldownActive, errBody.Code)
	assert.Equal(t, int64(300), errBody.RetryAfterSeconds)
}

func TestHandleState_PurchaseInsufficientFunds(t *testing.T) {
	verifier := &mockVerifier{}
	game := &mockGame{}
	verifier.On("Verify", "x").Return(player42, nil)
	game.On("PurchaseAnimal", mock.Anything, player42, domain.AnimalCow).
		Return(nil, fmt.Errorf("%w: have 50, need 80", domain.ErrInsufficientFunds))

	rec := postState(NewStateHandler(verifier, game), `{"identityAssertion":"x","action":"purchase","params":{"animal":"cow"}}`, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeInsufficientFunds, decodeError(t, rec).Code)
}

func TestHandleState_AuthFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"bad signature", domain.ErrBadSignature, CodeBadSignature},
		{"expired", domain.ErrExpired, CodeExpired},
		{"malformed", domain.ErrMalformedAssertion, CodeMalformedAssertion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &mockVerifier{}
			game := &mockGame{}
			verifier.On("Verify", mock.Anything).Return(identity.VerifiedIdentity{}, tt.err)

			rec := postState(NewStateHandler(verifier, game), `{"identityAssertion":"x","action":"harvest","params":{"crop":"carrot"}}`, "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			game.AssertNotCalled(t, "Harvest", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleState_RequestValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed json", `{"identityAssertion":`, http.StatusBadRequest, CodeInvalidRequest},
		{"unknown action", `{"identityAssertion":"x","action":"dance"}`, http.StatusBadRequest, CodeInvalidRequest},
		{"unknown crop", `{"identityAssertion":"x","action":"harvest","params":{"crop":"mango"}}`, http.StatusBadRequest, CodeUnknownItem},
		{"unknown animal", `{"identityAssertion":"x","action":"purchase","params":{"animal":"dragon"}}`, http.StatusBadRequest, CodeUnknownItem},
		{"animal used as crop", `{"identityAssertion":"x","action":"harvest","params":{"crop":"cow"}}`, http.StatusBadRequest, CodeUnknownItem},
		{"harvest without crop", `{"identityAssertion":"x","action":"harvest"}`, http.StatusBadRequest, CodeInvalidRequest},
		{"purchase without animal", `{"identityAssertion":"x","action":"purchase","params":{}}`, http.StatusBadRequest, CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &mockVerifier{}
			verifier.On("Verify", mock.Anything).Return(player42, nil)
			game := &mockGame{}

			rec := postState(NewStateHandler(verifier, game), tt.body, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			game.AssertNotCalled(t, "Harvest", mock.Anything, mock.Anything, mock.Anything)
			game.AssertNotCalled(t, "PurchaseAnimal", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleState_StorageFailureAsksToRetry(t *testing.T) {
	verifier := &mockVerifier{}
	game := &mockGame{}
	verifier.On("Verify", "x").Return(player42, nil)
	game.On("State", mock.Anything, player42).Return(nil, fmt.Errorf("%w: connection reset", domain.ErrStorage))

	rec := postState(NewStateHandler(verifier, game), `{"identityAssertion":"x"}`, "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, CodeTryAgain, decodeError(t, rec).Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"cooldown sentinel", domain.ErrCooldownActive, http.StatusConflict, CodeCooldownActive},
		{"overflow", domain.ErrBalanceOverflow, http.StatusUnprocessableEntity, CodeBalanceOverflow},
		{"unknown item", domain.ErrUnknownItem, http.StatusBadRequest, CodeUnknownItem},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, CodeInvalidRequest},
		{"unknown product", domain.ErrUnknownProduct, http.StatusNotFound, CodeUnknownProduct},
		{"retryable conflict", domain.ErrConflictRetryable, http.StatusServiceUnavailable, CodeTryAgain},
		{"anything else", assert.AnError, http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := mapServiceError(fmt.Errorf("wrapped: %w", tt.err))
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotContains(t, body.Error, "wrapped", "internal detail must not leak")
		})
	}
}
