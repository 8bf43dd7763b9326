package notify

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioAPI = "https://api.twilio.com"

// SMSSender delivers texts through the Twilio REST API.
type SMSSender struct {
	AccountSID string
	AuthToken  string
	From       string

	// BaseURL and Client exist for tests; zero values hit the real API.
	BaseURL string
	Client  *http.Client
}

func (s *SMSSender) Configured() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.From != ""
}

func (s *SMSSender) Send(to, body string) error {
	base := s.BaseURL
	if base == "" {
		base = twilioAPI
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.From)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", base, s.AccountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.AccountSID, s.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
