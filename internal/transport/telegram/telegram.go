package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	kit "hwbot/internal/transport"
	logx "hwbot/pkg/logx"
)

const defaultAPIURL = "https://api.telegram.org"

// telegramTextLimit is the hard per-message length limit of the Bot API.
const telegramTextLimit = 4096

type Config struct {
	Token  string
	APIURL string // base URL override (tests, proxies); empty = production
	// Timeout bounds one outbound API call.
	Timeout time.Duration
}

// Adapter wraps telebot behind the transport.Adapter interface.
//
// The bot is constructed offline: telebot's usual startup getMe is skipped
// so a bad token surfaces through Probe() during the precheck instead of
// as an opaque constructor error.
type Adapter struct {
	cfg Config
	log logx.Logger

	bot  *tele.Bot
	http *http.Client
}

func New(cfg Config, log logx.Logger) (*Adapter, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	hc := &http.Client{Timeout: timeout}
	b, err := tele.NewBot(tele.Settings{
		Token:   cfg.Token,
		URL:     cfg.APIURL,
		Client:  hc,
		Offline: true,
	})
	if err != nil {
		return nil, err
	}
	return &Adapter{cfg: cfg, log: log, bot: b, http: hc}, nil
}

func (a *Adapter) SendText(ctx context.Context, to kit.ChatTarget, text string, opt *kit.SendOptions) (kit.MessageRef, error) {
	if opt == nil {
		opt = &kit.SendOptions{}
	}
	if ctx != nil {
		select {
		case <-ctx.Done():
			return kit.MessageRef{}, ctx.Err()
		default:
		}
	}

	sendOpt := &tele.SendOptions{
		ParseMode:             opt.ParseMode,
		DisableWebPagePreview: opt.DisablePreview,
	}

	msg, err := a.bot.Send(tele.ChatID(to.ChatID), truncate(text, telegramTextLimit), sendOpt)
	if err != nil {
		return kit.MessageRef{}, err
	}
	a.log.Debug("telegram message sent", logx.Int64("chat_id", to.ChatID), logx.Int("message_id", msg.ID))
	return kit.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

// Probe performs a getMe call with the adapter's own http client and
// returns the raw status code. Transport-level failures come back as err.
func (a *Adapter) Probe(ctx context.Context) (int, error) {
	base := strings.TrimRight(a.cfg.APIURL, "/")
	if base == "" {
		base = defaultAPIURL
	}
	url := base + "/bot" + a.cfg.Token + "/getMe"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

func truncate(s string, maxN int) string {
	if maxN <= 0 || len(s) <= maxN {
		return s
	}
	if maxN < 10 {
		return s[:maxN]
	}
	return s[:maxN-3] + "..."
}
