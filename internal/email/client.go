// Package email sends transactional mail through the SendGrid v3 API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.sendgrid.com"

type Client struct {
	apiKey  string
	from    string
	baseURL string
	http    *http.Client
}

// Option customizes the client; used by tests to point at a local server.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func NewClient(apiKey, from string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type address struct {
	Email string `json:"email"`
}

type payload struct {
	Personalizations []struct {
		To []address `json:"to"`
	} `json:"personalizations"`
	From    address `json:"from"`
	Subject string  `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (c *Client) send(ctx context.Context, to, subject, text string) error {
	p := payload{
		From:    address{Email: c.from},
		Subject: subject,
	}
	p.Personalizations = append(p.Personalizations, struct {
		To []address `json:"to"`
	}{To: []address{{Email: to}}})
	p.Content = append(p.Content, struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "text/plain", Value: text})

	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// SendWelcome greets a new user.
func (c *Client) SendWelcome(ctx context.Context, to, name string) error {
	return c.send(ctx, to, "Thanks for joining in!",
		fmt.Sprintf("Welcome to the Task-Manager app, %s. Let me know how you get along with the app.", name))
}

// SendFarewell says goodbye after account deletion.
func (c *Client) SendFarewell(ctx context.Context, to, name string) error {
	return c.send(ctx, to, "Sorry to see you go!",
		fmt.Sprintf("Goodbye, %s. I hope to see you back sometime soon.", name))
}
