// Package audit ships journal events to an optional webhook. Delivery is
// best effort: failures are logged and never reach the caller.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrNoWebhook = errors.New("audit webhook url is empty")

type Event struct {
	Agent   string         `json:"agent"`
	Action  string         `json:"action"`
	Level   string         `json:"level"`
	Details map[string]any `json:"details"`
	At      time.Time      `json:"at"`
}

type Client struct {
	WebhookURL string
	Token      string
	Agent      string
	Timeout    time.Duration

	HTTP *http.Client
}

func (c *Client) Enabled() bool {
	return c != nil && strings.TrimSpace(c.WebhookURL) != ""
}

func (c *Client) Send(ctx context.Context, ev Event) error {
	if !c.Enabled() {
		return ErrNoWebhook
	}
	if ev.Agent == "" {
		ev.Agent = c.agent()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if ev.Details == nil {
		ev.Details = map[string]any{}
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSpace(c.WebhookURL), bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := strings.TrimSpace(c.Token); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bb, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return fmt.Errorf("audit webhook http %d: %s", resp.StatusCode, strings.TrimSpace(string(bb)))
	}
	return nil
}

func (c *Client) agent() string {
	if a := strings.TrimSpace(c.Agent); a != "" {
		return a
	}
	return "trade-journal"
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 2 * time.Second
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: c.timeout()}
}
