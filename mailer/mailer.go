package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// Email is the outbound message shape the dispatcher hands to a Mailer.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mailer delivers a single email. Implementations must be safe for
// concurrent use; the dispatcher calls Send from goroutines.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// ResendMailer delivers through the Resend HTTP API.
type ResendMailer struct {
	APIKey string
	From   string
	Client *http.Client
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) Send(ctx context.Context, email Email) error {
	body, err := json.Marshal(resendPayload{
		From:    m.From,
		To:      []string{email.To},
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend: status %d sending to %s", resp.StatusCode, email.To)
	}
	return nil
}

// logMailer stands in when no API key is configured (local development).
type logMailer struct{}

func (logMailer) Send(_ context.Context, email Email) error {
	log.Printf("[mailer] (dry run) to=%s subject=%q", email.To, email.Subject)
	return nil
}

// NewFromEnv returns a Resend-backed mailer when RESEND_API_KEY is set and a
// logging stand-in otherwise.
func NewFromEnv() Mailer {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		log.Println("RESEND_API_KEY not set; emails will be logged only")
		return logMailer{}
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "Kasuwa <no-reply@kasuwa.app>"
	}
	return &ResendMailer{
		APIKey: key,
		From:   from,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}
