package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/identity"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
	"github.com/osse101/FarmBot_Go/internal/payment"
)

// PaymentReconciler settles Stars payments
type PaymentReconciler interface {
	Reconcile(ctx context.Context, purchase domain.PurchaseEvent) (payment.Outcome, error)
	ValidateCheckout(userID int64, payload, currency string, amount int64) error
}

// StateReader loads a player's farm
type StateReader interface {
	State(ctx context.Context, player identity.VerifiedIdentity) (*farm.Snapshot, error)
}

// CheckoutAnswerer replies to pre-checkout queries
type CheckoutAnswerer interface {
	AnswerPreCheckout(queryID, refusal string) error
}

// WebhookHandler receives Bot API updates
type WebhookHandler struct {
	secret     string
	reconciler PaymentReconciler
	farm       StateReader
	checkout   CheckoutAnswerer
	notifier   *Notifier
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(secret string, reconciler PaymentReconciler, farm StateReader, checkout CheckoutAnswerer, notifier *Notifier) *WebhookHandler {
	return &WebhookHandler{
		secret:     secret,
		reconciler: reconciler,
		farm:       farm,
		checkout:   checkout,
		notifier:   notifier,
	}
}

// ServeHTTP authenticates and dispatches one update.
// Once an update is accepted the answer is 200, whatever the game outcome.
// The exception is a payment whose sentinel could not be written: 500 makes
// Telegram deliver it again.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if !h.authorized(r) {
		log.Warn(LogMsgSecretMismatch)
		metrics.AuthFailures.WithLabelValues("webhook_secret").Inc()
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(io.LimitReader(r.Body, MaxUpdateBytes)).Decode(&update); err != nil {
		log.Warn(LogMsgDecodeUpdate, "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	status := h.dispatch(r.Context(), &update)
	w.WriteHeader(status)
}

func (h *WebhookHandler) authorized(r *http.Request) bool {
	got := r.Header.Get(HeaderSecretToken)
	return h.secret != "" && subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}

func (h *WebhookHandler) dispatch(ctx context.Context, update *tgbotapi.Update) int {
	switch {
	case update.PreCheckoutQuery != nil:
		h.handlePreCheckout(ctx, update.PreCheckoutQuery)
		return http.StatusOK

	case update.Message != nil && update.Message.SuccessfulPayment != nil:
		return h.handlePayment(ctx, update.Message)

	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(ctx, update.Message)
		return http.StatusOK

	default:
		logger.FromContext(ctx).Debug(LogMsgUpdateIgnored, "update_id", update.UpdateID)
		return http.StatusOK
	}
}

func (h *WebhookHandler) handlePreCheckout(ctx context.Context, q *tgbotapi.PreCheckoutQuery) {
	log := logger.FromContext(ctx)

	var userID int64
	if q.From != nil {
		userID = q.From.ID
	}

	refusal := ""
	if err := h.reconciler.ValidateCheckout(userID, q.InvoicePayload, q.Currency, int64(q.TotalAmount)); err != nil {
		log.Warn(payment.LogMsgCheckoutRefused, "user_id", userID, "payload", q.InvoicePayload, "reason", err)
		refusal = MsgCheckoutRefused
	}

	if err := h.checkout.AnswerPreCheckout(q.ID, refusal); err != nil {
		log.Error(LogMsgCheckoutFailed, "error", err)
		return
	}
	log.Info(LogMsgCheckoutAnswered, "user_id", userID, "ok", refusal == "")
}

func (h *WebhookHandler) handlePayment(ctx context.Context, msg *tgbotapi.Message) int {
	sp := msg.SuccessfulPayment
	purchase := domain.PurchaseEvent{
		PaymentID:   sp.TelegramPaymentChargeID,
		Payload:     sp.InvoicePayload,
		Currency:    sp.Currency,
		TotalAmount: int64(sp.TotalAmount),
	}
	lang := ""
	if msg.From != nil {
		purchase.UserID = msg.From.ID
		lang = msg.From.LanguageCode
		ctx = logger.WithUserID(ctx, msg.From.ID)
	}
	log := logger.FromContext(ctx)
	log.Info(LogMsgPaymentReceived, "payment_id", purchase.PaymentID, "payload", purchase.Payload)

	outcome, err := h.reconciler.Reconcile(ctx, purchase)
	switch {
	case outcome == payment.OutcomeApplied:
		effect, _ := payment.ParsePayload(purchase.Payload)
		state, stateErr := h.farm.State(ctx, identity.VerifiedIdentity{UserID: purchase.UserID})
		coins := int64(0)
		if stateErr == nil {
			coins = state.Coins
		}
		h.notifier.PaymentApplied(ctx, chatID(msg), lang, effect, coins)
	case outcome == payment.OutcomeInvalidPayload:
		h.notifier.PaymentRejected(ctx, chatID(msg))
	case outcome == payment.OutcomeDuplicate:
	case err != nil:
		log.Error(LogMsgReconcileFailed, "payment_id", purchase.PaymentID, "error", err)
		if errors.Is(err, payment.ErrNotRecorded) && domain.IsStorageError(err) {
			return http.StatusInternalServerError
		}
	}
	return http.StatusOK
}

func (h *WebhookHandler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	ctx = logger.WithUserID(ctx, msg.From.ID)

	player := identity.VerifiedIdentity{
		UserID:       msg.From.ID,
		DisplayName:  senderName(msg.From),
		Username:     msg.From.UserName,
		LanguageCode: msg.From.LanguageCode,
	}

	switch msg.Command() {
	case CommandStart, CommandBalance:
	default:
		return
	}

	snap, err := h.farm.State(ctx, player)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgCommandFailed, "command", msg.Command(), "error", err)
		h.notifier.TryAgain(ctx, chatID(msg))
		return
	}

	if msg.Command() == CommandStart {
		h.notifier.Welcome(ctx, chatID(msg), player.LanguageCode, player.DisplayName, snap)
		return
	}
	h.notifier.Balance(ctx, chatID(msg), player.LanguageCode, snap)
}

func chatID(msg *tgbotapi.Message) int64 {
	if msg.Chat != nil {
		return msg.Chat.ID
	}
	if msg.From != nil {
		return msg.From.ID
	}
	return 0
}

func senderName(u *tgbotapi.User) string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.UserName
	}
	return name
}
