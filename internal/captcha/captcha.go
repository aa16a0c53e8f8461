// Package captcha verifies hCaptcha response tokens.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrTokenMissing is returned for an empty response token.
var ErrTokenMissing = errors.New("captcha token missing")

// Verifier checks a CAPTCHA token solved by the client.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// Disabled accepts every token.
type Disabled struct{}

// Verify implements Verifier.
func (Disabled) Verify(context.Context, string, string) (bool, error) { return true, nil }

// HCaptcha verifies tokens against the hCaptcha siteverify endpoint.
type HCaptcha struct {
	secret    string
	verifyURL string
	client    *http.Client
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// NewHCaptcha creates a verifier. A nil client gets a 10 second timeout.
func NewHCaptcha(secret, verifyURL string, client *http.Client) *HCaptcha {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &HCaptcha{secret: secret, verifyURL: verifyURL, client: client}
}

// Verify implements Verifier. A rejected token yields false and a nil error,
// transport or decoding failures yield an error.
func (h *HCaptcha) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, ErrTokenMissing
	}

	form := url.Values{
		"secret":   {h.secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("captcha request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha verify: unexpected status %d", resp.StatusCode)
	}

	var out siteVerifyResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("captcha decode: %w", err)
	}

	return out.Success, nil
}
