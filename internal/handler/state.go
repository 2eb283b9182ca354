package handler

import (
	"context"
	"net/http"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/identity"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
)

// IdentityVerifier checks a Mini-App initData assertion
type IdentityVerifier interface {
	Verify(raw string) (identity.VerifiedIdentity, error)
}

// Game is the part of the farm service the Mini-App drives
type Game interface {
	State(ctx context.Context, player identity.VerifiedIdentity) (*farm.Snapshot, error)
	Harvest(ctx context.Context, player identity.VerifiedIdentity, crop domain.CropKind) (*farm.Snapshot, error)
	PurchaseAnimal(ctx context.Context, player identity.VerifiedIdentity, kind domain.AnimalKind) (*farm.Snapshot, error)
}

// StateRequest is the body of POST /api/v1/state.
// Without an action it only reads state.
type StateRequest struct {
	IdentityAssertion string       `json:"identityAssertion"`
	Action            string       `json:"action,omitempty" validate:"omitempty,oneof=harvest purchase"`
	Params            ActionParams `json:"params"`
}

// ActionParams names the crop or animal an action applies to
type ActionParams struct {
	Crop   string `json:"crop,omitempty" validate:"omitempty,crop"`
	Animal string `json:"animal,omitempty" validate:"omitempty,animal"`
}

// StateHandler serves the Mini-App state endpoint
type StateHandler struct {
	verifier IdentityVerifier
	game     Game
}

// NewStateHandler creates a new StateHandler
func NewStateHandler(verifier IdentityVerifier, game Game) *StateHandler {
	return &StateHandler{verifier: verifier, game: game}
}

// HandleState verifies the caller, applies the optional action and returns the farm
// @Summary Read farm state or perform an action
// @Description Verifies the Telegram initData, optionally harvests a crop or buys an animal, and returns the player's farm.
// @Tags farm
// @Accept json
// @Produce json
// @Param X-Telegram-Init-Data header string false "initData, if not sent in the body"
// @Param request body StateRequest true "State request"
// @Success 200 {object} farm.Snapshot
// @Failure 400 {object} ErrorResponse "invalid_request or unknown_item"
// @Failure 401 {object} ErrorResponse "bad_signature, expired or malformed_assertion"
// @Failure 409 {object} ErrorResponse "cooldown_active or insufficient_funds"
// @Failure 422 {object} ErrorResponse "balance_overflow"
// @Failure 503 {object} ErrorResponse "try_again"
// @Router /api/v1/state [post]
func (h *StateHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decodeAndValidate(w, r, &req, "state") {
		return
	}

	player, ok := authenticate(w, r, h.verifier, req.IdentityAssertion)
	if !ok {
		return
	}
	ctx := logger.WithUserID(r.Context(), player.UserID)

	var (
		snap *farm.Snapshot
		err  error
	)
	switch req.Action {
	case ActionHarvest:
		if req.Params.Crop == "" {
			respondError(w, http.StatusBadRequest, CodeInvalidRequest, ErrMsgMissingCrop)
			return
		}
		snap, err = h.game.Harvest(ctx, player, domain.CropKind(req.Params.Crop))
	case ActionPurchase:
		if req.Params.Animal == "" {
			respondError(w, http.StatusBadRequest, CodeInvalidRequest, ErrMsgMissingAnimal)
			return
		}
		snap, err = h.game.PurchaseAnimal(ctx, player, domain.AnimalKind(req.Params.Animal))
	default:
		snap, err = h.game.State(ctx, player)
	}
	if err != nil {
		respondServiceError(w, r.WithContext(ctx), "state."+actionName(req.Action), err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// authenticate verifies the body assertion, falling back to the header.
// On failure the response has been written.
func authenticate(w http.ResponseWriter, r *http.Request, verifier IdentityVerifier, fromBody string) (identity.VerifiedIdentity, bool) {
	raw := fromBody
	if raw == "" {
		raw = r.Header.Get(HeaderInitData)
	}

	player, err := verifier.Verify(raw)
	if err != nil {
		status, body := mapServiceError(err)
		logFrom(r).Info(LogMsgAuthRejected, "code", body.Code)
		metrics.AuthFailures.WithLabelValues(body.Code).Inc()
		respondJSON(w, status, body)
		return identity.VerifiedIdentity{}, false
	}
	return player, true
}

func actionName(action string) string {
	if action == "" {
		return "read"
	}
	return action
}
