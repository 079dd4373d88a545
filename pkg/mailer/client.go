// Package mailer sends transactional email through the Resend HTTP API.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the Resend API endpoint.
const DefaultBaseURL = "https://api.resend.com"

// ErrNotConfigured is returned by Send when no API key was provided.
var ErrNotConfigured = errors.New("mailer: not configured")

// Message is a single outgoing email.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
	HTML    string   `json:"html,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.http.SetBaseURL(strings.TrimRight(u, "/")) }
}

// Client is a Resend API client.
type Client struct {
	apiKey string
	from   string
	http   *resty.Client
}

// NewClient returns a client sending as from. An empty apiKey yields a client
// whose Send always fails with ErrNotConfigured.
func NewClient(apiKey, from string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		from:   from,
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(10*time.Second).
			SetAuthToken(apiKey).
			SetHeader("Content-Type", "application/json"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send delivers msg and returns the provider's message id.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	if len(msg.To) == 0 {
		return "", errors.New("mailer: no recipient")
	}

	var out sendResponse
	var apiErr errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sendRequest{
			From:    c.from,
			To:      msg.To,
			Subject: msg.Subject,
			Text:    msg.Text,
			HTML:    msg.HTML,
			ReplyTo: msg.ReplyTo,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		return "", fmt.Errorf("mailer: send: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return "", fmt.Errorf("mailer: send: %s (HTTP %d)", apiErr.Message, resp.StatusCode())
		}
		return "", fmt.Errorf("mailer: send: HTTP %d", resp.StatusCode())
	}
	return out.ID, nil
}
