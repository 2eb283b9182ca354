// Package identity verifies Telegram Mini-App initData assertions.
package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// VerifiedIdentity is the trusted result of a successful verification
type VerifiedIdentity struct {
	UserID       int64     `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	Username     string    `json:"username,omitempty"`
	LanguageCode string    `json:"language_code,omitempty"`
	IsPremium    bool      `json:"is_premium,omitempty"`
	AuthDate     time.Time `json:"auth_date"`
}

// Verifier checks initData against one bot's secret
type Verifier struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewVerifier derives the bot secret once and returns a Verifier.
// A non-positive maxAge falls back to DefaultMaxAge.
func NewVerifier(botToken string, maxAge time.Duration) *Verifier {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Verifier{
		secret: deriveSecret(botToken),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Verify validates raw and returns the identity it asserts.
func (v *Verifier) Verify(raw string) (VerifiedIdentity, error) {
	return verify(raw, v.secret, v.maxAge, v.now())
}

// Verify is the stateless form of Verifier.Verify.
func Verify(raw, botToken string, maxAge time.Duration, now time.Time) (VerifiedIdentity, error) {
	return verify(raw, deriveSecret(botToken), maxAge, now)
}

func verify(raw string, secret []byte, maxAge time.Duration, now time.Time) (VerifiedIdentity, error) {
	raw = strings.TrimSpace(raw)
	values, err := url.ParseQuery(raw)
	if err != nil {
		return VerifiedIdentity{}, fmt.Errorf("%w: %s", domain.ErrMalformedAssertion, ErrMsgParseQuery)
	}

	provided := values.Get(FieldHash)
	if provided == "" {
		return VerifiedIdentity{}, fmt.Errorf("%w: %s", domain.ErrMalformedAssertion, ErrMsgMissingHash)
	}
	providedMAC, err := hex.DecodeString(provided)
	if err != nil {
		return VerifiedIdentity{}, fmt.Errorf("%w: %s", domain.ErrBadSignature, ErrMsgHashEncoding)
	}

	if !hmac.Equal(sign(values, secret), providedMAC) {
		return VerifiedIdentity{}, domain.ErrBadSignature
	}

	authUnix, err := strconv.ParseInt(values.Get(FieldAuthDate), 10, 64)
	if err != nil || authUnix <= 0 {
		return VerifiedIdentity{}, fmt.Errorf("%w: %s", domain.ErrMalformedAssertion, ErrMsgMissingAuth)
	}
	authDate := time.Unix(authUnix, 0)

	age := now.Sub(authDate)
	if age < -MaxClockSkew {
		return VerifiedIdentity{}, fmt.Errorf("%w: %s", domain.ErrMalformedAssertion, ErrMsgFutureAuthDate)
	}
	if age > maxAge {
		return VerifiedIdentity{}, fmt.Errorf("%w: "+ErrMsgAgeFormat, domain.ErrExpired, age.Truncate(time.Second), maxAge)
	}

	if values.Get(FieldUser) == "" {
		return VerifiedIdentity{}, fmt.Errorf("%w: %s", domain.ErrMalformedAssertion, ErrMsgMissingUser)
	}
	parsed, err := initdata.Parse(raw)
	if err != nil || parsed.User.ID == 0 {
		return VerifiedIdentity{}, fmt.Errorf("%w: %s", domain.ErrMalformedAssertion, ErrMsgDecodeUser)
	}

	return VerifiedIdentity{
		UserID:       parsed.User.ID,
		DisplayName:  displayName(parsed.User),
		Username:     parsed.User.Username,
		LanguageCode: parsed.User.LanguageCode,
		IsPremium:    parsed.User.IsPremium,
		AuthDate:     authDate,
	}, nil
}

// Sign computes the hex hash Telegram would attach to values.
// The hash field itself is ignored.
func Sign(values url.Values, botToken string) string {
	return hex.EncodeToString(sign(values, deriveSecret(botToken)))
}

func sign(values url.Values, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(dataCheckString(values)))
	return mac.Sum(nil)
}

func deriveSecret(botToken string) []byte {
	mac := hmac.New(sha256.New, []byte(secretDerivationKey))
	mac.Write([]byte(botToken))
	return mac.Sum(nil)
}

// dataCheckString joins every key=value except hash, sorted by key, with newlines.
func dataCheckString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == FieldHash {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+values.Get(k))
	}
	return strings.Join(parts, "\n")
}

func displayName(u initdata.User) string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}
	return name
}
