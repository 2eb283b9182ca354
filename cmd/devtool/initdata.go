package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/osse101/FarmBot_Go/internal/identity"
)

// InitDataCommand mints a signed Mini-App initData string for local testing
type InitDataCommand struct{}

func (c *InitDataCommand) Name() string {
	return "init-data"
}

func (c *InitDataCommand) Description() string {
	return "Mint a signed initData assertion for a test user"
}

type initDataUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

func (c *InitDataCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	userID := fs.Int64("user", 42, "telegram user id")
	name := fs.String("name", "Tester", "first name")
	username := fs.String("username", "", "telegram username")
	lang := fs.String("lang", "en", "language code")
	age := fs.Duration("age", 0, "backdate auth_date by this much")
	token := fs.String("token", os.Getenv("TELEGRAM_BOT_TOKEN"), "bot token used to sign")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := mintInitData(initDataUser{
		ID:           *userID,
		FirstName:    *name,
		Username:     *username,
		LanguageCode: *lang,
	}, time.Now().Add(-*age), *token)
	if err != nil {
		return err
	}

	fmt.Println(raw)
	return nil
}

func mintInitData(user initDataUser, authDate time.Time, token string) (string, error) {
	if token == "" {
		return "", errors.New("bot token required: pass -token or set TELEGRAM_BOT_TOKEN")
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return "", err
	}

	values := url.Values{}
	values.Set("query_id", fmt.Sprintf("devtool-%d", authDate.UnixNano()))
	values.Set("user", string(userJSON))
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("hash", identity.Sign(values, token))
	return values.Encode(), nil
}
