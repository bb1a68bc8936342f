package watch

import (
	"context"
	"net/http"
	"strings"

	"hwbot/internal/config"
	kit "hwbot/internal/transport"
)

// Precheck validates the environment before the loop is allowed to start.
//
// The three credentials are checked in a fixed order and the first missing
// one fails the whole check; aggregating would only delay the inevitable.
// With all three present, one probe against the provider's identity
// endpoint catches a token that exists but does not work.
//
// Any error returned here is startup-fatal. Retrying is pointless: the
// same environment produces the same failure.
func Precheck(ctx context.Context, creds config.Credentials, probe kit.Adapter) error {
	checks := []struct {
		name  string
		value string
	}{
		{config.EnvPracticumToken, creds.PracticumToken},
		{config.EnvTelegramToken, creds.TelegramToken},
		{config.EnvTelegramChatID, creds.TelegramChatID},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return &MissingCredentialError{Name: c.name}
		}
	}

	status, err := probe.Probe(ctx)
	if err != nil {
		return &TransportError{Op: "telegram", Err: err}
	}
	if status == http.StatusUnauthorized {
		return ErrInvalidCredential
	}
	return nil
}
