package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/daniyarm/rosterhub/internal/domain/entity"
)

// Errors returned by init-data validation.
var (
	ErrNoUser          = errors.New("init data carries no user")
	ErrBadSignature    = errors.New("init data signature mismatch")
	ErrExpiredInitData = errors.New("init data is too old")
)

// initDataUser is the user payload embedded in Telegram Web App init data.
type initDataUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`
}

// Validator checks Web App init data against the bot token per the Telegram
// signing scheme: HMAC-SHA256 of the sorted key=value lines, keyed by
// HMAC-SHA256("WebAppData", botToken).
type Validator struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewValidator derives the signing secret from the bot token. maxAge bounds
// how old accepted init data may be; zero disables the check.
func NewValidator(botToken string, maxAge time.Duration) *Validator {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return &Validator{secret: mac.Sum(nil), maxAge: maxAge, now: time.Now}
}

// Validate verifies the raw init-data query string and extracts the identity.
func (v *Validator) Validate(raw string) (entity.Identity, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("malformed init data: %w", err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return entity.Identity{}, ErrBadSignature
	}
	values.Del("hash")

	lines := make([]string, 0, len(values))
	for key := range values {
		lines = append(lines, key+"="+values.Get(key))
	}
	sort.Strings(lines)

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strings.Join(lines, "\n")))
	want := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(want), []byte(gotHash)) {
		return entity.Identity{}, ErrBadSignature
	}

	if v.maxAge > 0 {
		var authDate int64
		fmt.Sscanf(values.Get("auth_date"), "%d", &authDate)
		if authDate == 0 || v.now().Sub(time.Unix(authDate, 0)) > v.maxAge {
			return entity.Identity{}, ErrExpiredInitData
		}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return entity.Identity{}, ErrNoUser
	}
	var user initDataUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return entity.Identity{}, fmt.Errorf("malformed init data user: %w", err)
	}
	if user.ID == 0 {
		return entity.Identity{}, ErrNoUser
	}

	return entity.Identity{
		ID:        fmt.Sprintf("%d", user.ID),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		PhotoURL:  user.PhotoURL,
	}, nil
}
