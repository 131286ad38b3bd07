// internal/pkg/telegram/initdata.go
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
	"strconv"
	"strings"
)

// ErrInvalidInitData is returned when init data is malformed or carries no
// usable identity
var ErrInvalidInitData = errors.New("telegram: invalid init data")

// ErrSignatureMismatch is returned when the init data hash does not match
// the bot token signature
var ErrSignatureMismatch = errors.New("telegram: init data signature mismatch")

// User is the Web App user embedded in init data
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// FullName joins first and last name the way the storefront displays it
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// TelegramID returns the user id as the string the upstream API expects
func (u *User) TelegramID() string {
	return strconv.FormatInt(u.ID, 10)
}

// ParseInitData validates Telegram Web App init data against the bot token
// and returns the embedded user. The signature scheme is the documented one:
// secret = HMAC_SHA256(key="WebAppData", data=botToken), expected hash =
// HMAC_SHA256(key=secret, data=dataCheckString) where dataCheckString is all
// key=value pairs except hash, sorted by key and joined with newlines.
func ParseInitData(initData, botToken string) (*User, error) {
	if initData == "" {
		return nil, ErrInvalidInitData
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, ErrInvalidInitData
	}

	if botToken != "" {
		if computed := computeHash(values, botToken); !hmac.Equal([]byte(computed), []byte(hash)) {
			return nil, ErrSignatureMismatch
		}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, ErrInvalidInitData
	}

	var user User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}
	if user.ID == 0 {
		return nil, ErrInvalidInitData
	}

	return &user, nil
}

func computeHash(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	dataCheckString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(dataCheckString))
	return hex.EncodeToString(mac.Sum(nil))
}
