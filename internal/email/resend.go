package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client sends email through the Resend HTTP API. Delivery is best-effort:
// one POST per message, no retries.
type Client struct {
	apiKey     string
	fromEmail  string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func NewClient(apiKey, fromEmail string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML email to the given recipients.
func (c *Client) Send(to []string, subject, htmlBody string) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing API key")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	payload := resendEmail{
		From:    c.fromEmail,
		To:      to,
		Subject: subject,
		HTML:    htmlBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API error: status %d", resp.StatusCode)
	}

	return nil
}
