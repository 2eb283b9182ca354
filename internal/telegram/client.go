// Package telegram is the Bot API side of the game: the webhook that receives
// payments and commands, and the client that talks back to Telegram.
package telegram

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/farm"
)

// BotAPI is the subset of *tgbotapi.BotAPI this package uses
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
	GetWebhookInfo() (tgbotapi.WebhookInfo, error)
}

// NewBotAPI connects to the Bot API. It calls getMe, so a bad token fails here.
func NewBotAPI(token string, timeout time.Duration) (*tgbotapi.BotAPI, error) {
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateBot, err)
	}
	return bot, nil
}

// Client wraps the Bot API calls the game makes.
// Methods the library predates are sent through MakeRequest.
type Client struct {
	api BotAPI
}

// NewClient creates a new Client
func NewClient(api BotAPI) *Client {
	return &Client{api: api}
}

type webAppInfo struct {
	URL string `json:"url"`
}

type inlineButton struct {
	Text   string      `json:"text"`
	WebApp *webAppInfo `json:"web_app,omitempty"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type labeledPrice struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// SendText sends a plain message
func (c *Client) SendText(chatID int64, text string) error {
	if _, err := c.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSend, err)
	}
	return nil
}

// SendWebAppButton sends text with one inline button that opens the Mini-App
func (c *Client) SendWebAppButton(chatID int64, text, buttonText, url string) error {
	params := tgbotapi.Params{}
	params.AddNonZero64(paramChatID, chatID)
	params.AddNonEmpty(paramText, text)
	if err := params.AddInterface(paramReplyMarkup, inlineKeyboard{
		InlineKeyboard: [][]inlineButton{{{Text: buttonText, WebApp: &webAppInfo{URL: url}}}},
	}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSend, err)
	}

	if _, err := c.api.MakeRequest(methodSendMessage, params); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSend, err)
	}
	return nil
}

// CreateInvoiceLink returns a Stars payment link for product
func (c *Client) CreateInvoiceLink(product farm.Product) (string, error) {
	params := tgbotapi.Params{}
	params.AddNonEmpty(paramTitle, product.Title)
	params.AddNonEmpty(paramDescription, product.Description)
	params.AddNonEmpty(paramPayload, product.Payload)
	params.AddNonEmpty(paramCurrency, domain.CurrencyStars)
	if err := params.AddInterface(paramPrices, []labeledPrice{{Label: product.Title, Amount: product.PriceStars}}); err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgInvoiceLink, err)
	}

	resp, err := c.api.MakeRequest(methodCreateInvoiceLink, params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgInvoiceLink, err)
	}

	var link string
	if err := json.Unmarshal(resp.Result, &link); err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgDecodeResult, err)
	}
	return link, nil
}

// AnswerPreCheckout accepts the query when refusal is empty
func (c *Client) AnswerPreCheckout(queryID, refusal string) error {
	cfg := tgbotapi.PreCheckoutConfig{
		PreCheckoutQueryID: queryID,
		OK:                 refusal == "",
		ErrorMessage:       refusal,
	}
	if _, err := c.api.Request(cfg); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgAnswerCheckout, err)
	}
	return nil
}

// SetWebhook points the bot at url, signing deliveries with secret
func (c *Client) SetWebhook(url, secret string, dropPending bool) error {
	params := tgbotapi.Params{}
	params.AddNonEmpty(paramURL, url)
	params.AddNonEmpty(paramSecretToken, secret)
	params.AddBool(paramDropPending, dropPending)
	if err := params.AddInterface(paramAllowedUpdates, AllowedUpdates); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSetWebhook, err)
	}

	if _, err := c.api.MakeRequest(methodSetWebhook, params); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSetWebhook, err)
	}
	return nil
}

// WebhookInfo returns the current webhook registration
func (c *Client) WebhookInfo() (tgbotapi.WebhookInfo, error) {
	return c.api.GetWebhookInfo()
}
