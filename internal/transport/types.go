package transport

import "context"

type ChatTarget struct {
	ChatID int64
}

type MessageRef struct {
	ChatID    int64
	MessageID int
}

type SendOptions struct {
	ParseMode      string
	DisablePreview bool
}

// Adapter is the outbound messaging surface the rest of the bot talks to.
//
// Probe hits the provider's identity endpoint and reports the raw HTTP
// status; classifying the result (unauthorized vs. transport trouble) is
// the caller's business, so the adapter stays provider-shaped but
// policy-free.
type Adapter interface {
	SendText(ctx context.Context, to ChatTarget, text string, opt *SendOptions) (MessageRef, error)
	Probe(ctx context.Context) (status int, err error)
}
