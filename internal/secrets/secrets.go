package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "insiderwatch"

	telegramAccount = "telegram-bot-token"
)

// TelegramToken looks up the bot token: environment first, OS keychain
// second. An empty result means the chat sink stays unconfigured, which
// is not an error at the call site.
func TelegramToken() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")); v != "" {
		return v, nil
	}

	pw, err := keyring.Get(KeyringService, telegramAccount)
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	return "", errors.New("telegram bot token not found (set TELEGRAM_BOT_TOKEN or store it in the keychain)")
}

func SetTelegramToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, telegramAccount, token)
}

func DeleteTelegramToken() error {
	return keyring.Delete(KeyringService, telegramAccount)
}
