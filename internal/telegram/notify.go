package telegram

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/worker"
)

// Sender delivers chat messages
type Sender interface {
	SendText(chatID int64, text string) error
	SendWebAppButton(chatID int64, text, buttonText, url string) error
}

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Notifier queues outgoing chat messages on the worker pool
// so no Telegram call happens while a webhook request is open.
type Notifier struct {
	sender     Sender
	pool       Enqueuer
	miniAppURL string
}

// NewNotifier creates a new Notifier
func NewNotifier(sender Sender, pool Enqueuer, miniAppURL string) *Notifier {
	return &Notifier{sender: sender, pool: pool, miniAppURL: miniAppURL}
}

type textJob struct {
	sender Sender
	chatID int64
	text   string
}

func (j *textJob) Process(ctx context.Context) error {
	return j.sender.SendText(j.chatID, j.text)
}

type webAppJob struct {
	sender     Sender
	chatID     int64
	text       string
	buttonText string
	url        string
}

func (j *webAppJob) Process(ctx context.Context) error {
	return j.sender.SendWebAppButton(j.chatID, j.text, j.buttonText, j.url)
}

// Welcome greets a player and attaches the Mini-App button
func (n *Notifier) Welcome(ctx context.Context, chatID int64, lang, name string, snap *farm.Snapshot) {
	if name == "" {
		name = MsgDefaultPlayerName
	}
	text := printer(lang).Sprintf(MsgWelcomeFmt, name, snap.Coins)
	if n.miniAppURL == "" {
		n.enqueue(ctx, &textJob{sender: n.sender, chatID: chatID, text: text})
		return
	}
	n.enqueue(ctx, &webAppJob{
		sender:     n.sender,
		chatID:     chatID,
		text:       text,
		buttonText: MsgOpenFarmButton,
		url:        n.miniAppURL,
	})
}

// Balance reports coins and every non-empty inventory slot
func (n *Notifier) Balance(ctx context.Context, chatID int64, lang string, snap *farm.Snapshot) {
	n.enqueue(ctx, &textJob{sender: n.sender, chatID: chatID, text: FormatBalance(lang, snap)})
}

// PaymentApplied confirms a delivered purchase
func (n *Notifier) PaymentApplied(ctx context.Context, chatID int64, lang string, effect domain.Effect, coins int64) {
	p := printer(lang)
	var text string
	if effect.Kind == domain.EffectItemGrant {
		text = p.Sprintf(MsgPaymentAnimalFmt, effect.Item)
	} else {
		text = p.Sprintf(MsgPaymentCoinsFmt, effect.Coins, coins)
	}
	n.enqueue(ctx, &textJob{sender: n.sender, chatID: chatID, text: text})
}

// PaymentRejected tells the payer their purchase could not be delivered
func (n *Notifier) PaymentRejected(ctx context.Context, chatID int64) {
	n.enqueue(ctx, &textJob{sender: n.sender, chatID: chatID, text: MsgPaymentRejected})
}

// TryAgain answers a command that failed on storage
func (n *Notifier) TryAgain(ctx context.Context, chatID int64) {
	n.enqueue(ctx, &textJob{sender: n.sender, chatID: chatID, text: MsgTryAgain})
}

func (n *Notifier) enqueue(ctx context.Context, job worker.Job) {
	if !n.pool.Enqueue(job) {
		logger.FromContext(ctx).Warn(LogMsgNotificationDrop)
	}
}

// FormatBalance renders a snapshot as a chat message
func FormatBalance(lang string, snap *farm.Snapshot) string {
	p := printer(lang)
	var b strings.Builder
	b.WriteString(p.Sprintf(MsgBalanceFmt, snap.Coins))
	for _, kind := range append(domain.AllCrops(), domain.AllAnimals()...) {
		if count := snap.Inventory[kind]; count > 0 {
			b.WriteString(p.Sprintf(MsgBalanceItemFmt, kind, count))
		}
	}
	return b.String()
}

// printer formats numbers for the player's language, falling back to English
func printer(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
