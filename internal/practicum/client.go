// Package practicum implements the homework status API client.
package practicum

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"hwbot/internal/watch"
)

// DefaultEndpoint is the production homework statuses URL.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

type Config struct {
	// Endpoint overrides DefaultEndpoint (tests, staging).
	Endpoint string
	Token    string
	// Timeout bounds one request; 0 disables it (and stalls the loop on a
	// hung call — keep it set).
	Timeout time.Duration
}

// Client fetches homework statuses. It implements watch.Fetcher.
type Client struct {
	endpoint string
	http     *resty.Client
}

func New(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	hc := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "OAuth "+cfg.Token)
	return &Client{endpoint: endpoint, http: hc}
}

// HomeworkStatuses performs one GET with from as the from_date filter.
//
// The body comes back decoded but untrusted: shape validation is
// watch.CheckResponse's job. Error mapping:
//   - network/transport trouble -> watch.TransportError
//   - non-2xx reply             -> watch.UnexpectedStatusError
//   - body that is not JSON     -> watch.DecodeError
func (c *Client) HomeworkStatuses(ctx context.Context, from int64) (any, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("from_date", strconv.FormatInt(from, 10)).
		Get(c.endpoint)
	if err != nil {
		return nil, &watch.TransportError{Op: "practicum", Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &watch.UnexpectedStatusError{Code: resp.StatusCode()}
	}

	var body any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &watch.DecodeError{Err: err}
	}
	return body, nil
}
