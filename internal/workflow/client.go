// Package workflow triggers on-demand briefing generation through the
// automation webhook.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// EventGenerateNow is the event name the automation listens for.
const EventGenerateNow = "generate_news_now"

// ErrNotConfigured is returned when no webhook URL is set.
var ErrNotConfigured = errors.New("webhook not configured")

// Request describes the briefing to generate.
type Request struct {
	Topics         []string
	BriefingLength int // minutes
	DeliveryTime   string
}

// payload is the JSON body sent to the webhook.
type payload struct {
	Event          string   `json:"event"`
	Topics         []string `json:"topics"`
	BriefingLength string   `json:"briefingLength"`
	DeliveryTime   string   `json:"deliveryTime"`
}

// Client posts generation requests to the webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient creates a webhook client. An empty URL yields a client whose
// Trigger always fails with ErrNotConfigured.
func NewClient(webhookURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether a webhook URL is set.
func (c *Client) Configured() bool {
	return c.webhookURL != ""
}

// Trigger asks the automation to generate a briefing now. The response body
// is not interpreted; only transport failures and non-2xx statuses fail.
func (c *Client) Trigger(ctx context.Context, r Request) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	body, err := json.Marshal(payload{
		Event:          EventGenerateNow,
		Topics:         topics,
		BriefingLength: strconv.Itoa(r.BriefingLength),
		DeliveryTime:   r.DeliveryTime,
	})
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Newf("webhook returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
