package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// UnsettledLister reads payments whose effect has not been settled
type UnsettledLister interface {
	ListUnsettled(ctx context.Context, limit int) ([]domain.PaymentRecord, error)
}

// UnsettledResponse is the operator view of stuck payments
type UnsettledResponse struct {
	Count    int                    `json:"count"`
	Payments []domain.PaymentRecord `json:"payments"`
}

// HandleListUnsettled lists recorded payments that never settled
// @Summary List unsettled payments
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {object} UnsettledResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/admin/payments/unsettled [get]
func HandleListUnsettled(lister UnsettledLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := DefaultUnsettledLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 || n > MaxUnsettledLimit {
				respondError(w, http.StatusBadRequest, CodeInvalidRequest, ErrMsgInvalidLimit)
				return
			}
			limit = n
		}

		payments, err := lister.ListUnsettled(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "admin.unsettled", err)
			return
		}
		if payments == nil {
			payments = []domain.PaymentRecord{}
		}

		respondJSON(w, http.StatusOK, UnsettledResponse{Count: len(payments), Payments: payments})
	}
}
