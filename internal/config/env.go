package config

import "os"

// Environment variable names for the three required credentials.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// Credentials holds the secrets the bot cannot run without.
// They are read from the environment exactly once at startup and
// validated by the precheck gate before the loop starts.
type Credentials struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string
}

func CredentialsFromEnv() Credentials {
	return Credentials{
		PracticumToken: os.Getenv(EnvPracticumToken),
		TelegramToken:  os.Getenv(EnvTelegramToken),
		TelegramChatID: os.Getenv(EnvTelegramChatID),
	}
}
