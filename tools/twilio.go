package tools

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioClient sends SMS through the Twilio Messages API.
// When the credentials are not configured it runs in mock mode and only
// logs the message, so local setups work without a Twilio account.
type TwilioClient struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (t TwilioClient) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

// Send delivers one SMS. The caller's context bounds the request; the
// client also applies its own timeout so a slow Twilio never blocks the
// command pipeline.
func (t TwilioClient) Send(ctx context.Context, to string, body string) error {
	if !t.Configured() {
		log.Printf("[SMS MOCK] to=%s body=%q", to, body)
		return nil
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", t.AccountSID)

	form := url.Values{}
	form.Set("From", t.FromNumber)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}
	return nil
}
