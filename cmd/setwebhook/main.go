// Command setwebhook registers the bot webhook with Telegram and prints
// the resulting webhook state.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/osse101/FarmBot_Go/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	url := flag.String("url", os.Getenv("TELEGRAM_WEBHOOK_URL"), "public HTTPS url of /telegram/webhook")
	drop := flag.Bool("drop-pending", false, "discard updates queued while no webhook was set")
	infoOnly := flag.Bool("info", false, "only print the current webhook state")
	flag.Parse()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		slog.Error("TELEGRAM_BOT_TOKEN must be set")
		os.Exit(1)
	}

	bot, err := telegram.NewBotAPI(token, 0)
	if err != nil {
		slog.Error("Failed to connect to Telegram", "error", err)
		os.Exit(1)
	}
	client := telegram.NewClient(bot)

	if !*infoOnly {
		if *url == "" {
			slog.Error("webhook url required: pass -url or set TELEGRAM_WEBHOOK_URL")
			os.Exit(1)
		}
		if err := client.SetWebhook(*url, os.Getenv("TELEGRAM_WEBHOOK_SECRET"), *drop); err != nil {
			slog.Error("Failed to set webhook", "error", err)
			os.Exit(1)
		}
		slog.Info("Webhook set", "url", *url)
	}

	info, err := client.WebhookInfo()
	if err != nil {
		slog.Error("Failed to read webhook info", "error", err)
		os.Exit(1)
	}

	fmt.Printf("url:                  %s\n", info.URL)
	fmt.Printf("pending_update_count: %d\n", info.PendingUpdateCount)
	fmt.Printf("max_connections:      %d\n", info.MaxConnections)
	if info.LastErrorDate != 0 {
		fmt.Printf("last_error:           %s (%d)\n", info.LastErrorMessage, info.LastErrorDate)
	}
}
