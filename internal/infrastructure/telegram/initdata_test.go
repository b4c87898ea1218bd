package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:test-token"

// sign produces valid init data for the given fields, the same way the
// Telegram client would.
func sign(t *testing.T, fields map[string]string) string {
	t.Helper()
	lines := make([]string, 0, len(fields))
	for k, v := range fields {
		lines = append(lines, k+"="+v)
	}
	sort.Strings(lines)

	tokenMAC := hmac.New(sha256.New, []byte("WebAppData"))
	tokenMAC.Write([]byte(testBotToken))
	mac := hmac.New(sha256.New, tokenMAC.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func TestValidateExtractsIdentity(t *testing.T) {
	v := NewValidator(testBotToken, 0)
	raw := sign(t, map[string]string{
		"auth_date": "1700000000",
		"user":      `{"id":42,"username":"alice","first_name":"Alice","last_name":"Liddell","photo_url":"https://example.com/a.png"}`,
	})

	id, err := v.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", id.ID)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, "Alice", id.FirstName)
	assert.Equal(t, "Liddell", id.LastName)
}

func TestValidateRejectsTamperedData(t *testing.T) {
	v := NewValidator(testBotToken, 0)
	raw := sign(t, map[string]string{
		"auth_date": "1700000000",
		"user":      `{"id":42,"first_name":"Alice"}`,
	})
	tampered := strings.Replace(raw, "Alice", "Mallory", 1)

	_, err := v.Validate(tampered)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestValidateRejectsMissingHash(t *testing.T) {
	v := NewValidator(testBotToken, 0)
	_, err := v.Validate("auth_date=1700000000")
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestValidateRejectsMissingUser(t *testing.T) {
	v := NewValidator(testBotToken, 0)
	raw := sign(t, map[string]string{"auth_date": "1700000000"})

	_, err := v.Validate(raw)
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestValidateRejectsExpiredInitData(t *testing.T) {
	v := NewValidator(testBotToken, time.Hour)
	v.now = func() time.Time { return time.Unix(1700000000, 0).Add(2 * time.Hour) }
	raw := sign(t, map[string]string{
		"auth_date": "1700000000",
		"user":      `{"id":42,"first_name":"Alice"}`,
	})

	_, err := v.Validate(raw)
	assert.ErrorIs(t, err, ErrExpiredInitData)
}
