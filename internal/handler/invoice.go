package handler

import (
	"net/http"

	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// InvoiceCreator creates Telegram Stars invoice links
type InvoiceCreator interface {
	CreateInvoiceLink(product farm.Product) (string, error)
}

// InvoiceRequest is the body of POST /api/v1/invoice
type InvoiceRequest struct {
	IdentityAssertion string `json:"identityAssertion"`
	ProductID         string `json:"productId" validate:"required,max=64"`
}

// InvoiceResponse carries the link the Mini-App passes to openInvoice
type InvoiceResponse struct {
	InvoiceLink string `json:"invoiceLink"`
}

// InvoiceHandler creates Stars invoices for verified players
type InvoiceHandler struct {
	verifier IdentityVerifier
	catalog  *farm.Catalog
	invoices InvoiceCreator
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(verifier IdentityVerifier, catalog *farm.Catalog, invoices InvoiceCreator) *InvoiceHandler {
	return &InvoiceHandler{verifier: verifier, catalog: catalog, invoices: invoices}
}

// HandleCreateInvoice returns an invoice link for a catalog product
// @Summary Create a Stars invoice
// @Tags payments
// @Accept json
// @Produce json
// @Param request body InvoiceRequest true "Invoice request"
// @Success 200 {object} InvoiceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "unknown_product"
// @Failure 502 {object} ErrorResponse "invoice_failed"
// @Router /api/v1/invoice [post]
func (h *InvoiceHandler) HandleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req InvoiceRequest
	if !decodeAndValidate(w, r, &req, "invoice") {
		return
	}

	player, ok := authenticate(w, r, h.verifier, req.IdentityAssertion)
	if !ok {
		return
	}
	log := logger.FromContext(logger.WithUserID(r.Context(), player.UserID))

	product, found := h.catalog.Product(req.ProductID)
	if !found {
		respondError(w, http.StatusNotFound, CodeUnknownProduct, ErrMsgUnknownProduct)
		return
	}

	link, err := h.invoices.CreateInvoiceLink(product)
	if err != nil {
		log.Error(LogMsgRequestFailed, "op", "invoice", "product", product.ID, "error", err)
		respondError(w, http.StatusBadGateway, CodeInvoiceFailed, ErrMsgInvoiceFailed)
		return
	}

	log.Info(LogMsgInvoiceCreated, "product", product.ID)
	respondJSON(w, http.StatusOK, InvoiceResponse{InvoiceLink: link})
}
