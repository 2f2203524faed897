// Package identity provides the client for the managed identity provider.
//
// Sign-up, sign-in, token refresh and password reset all happen between the
// browser and the provider directly; the service only resolves presented ID
// tokens to accounts and triggers verification mail. The wire format follows
// the Identity Toolkit REST API.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/domain"
)

// Client talks to the identity provider's REST API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new identity provider client.
func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "identity").Logger(),
	}
}

// lookupResponse is the provider's account lookup payload.
type lookupResponse struct {
	Users []struct {
		LocalID       string `json:"localId"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"emailVerified"`
	} `json:"users"`
}

// Verify resolves an ID token to an account. An invalid, expired or unknown
// token yields an error; callers map that to 401.
func (c *Client) Verify(ctx context.Context, idToken string) (*domain.Account, error) {
	var result lookupResponse
	if err := c.post(ctx, "accounts:lookup", map[string]string{"idToken": idToken}, &result); err != nil {
		return nil, err
	}
	if len(result.Users) == 0 {
		return nil, fmt.Errorf("token resolved to no account")
	}

	u := result.Users[0]
	return &domain.Account{
		UserID:        u.LocalID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
	}, nil
}

// SendVerificationEmail re-sends the address verification message for the
// account behind the token. Courtesy action: failures are logged by the
// caller, never surfaced to the end user.
func (c *Client) SendVerificationEmail(ctx context.Context, idToken string) error {
	payload := map[string]string{
		"requestType": "VERIFY_EMAIL",
		"idToken":     idToken,
	}
	return c.post(ctx, "accounts:sendOobCode", payload, nil)
}

func (c *Client) post(ctx context.Context, method string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, method, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error.Message != "" {
			return fmt.Errorf("identity API error: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("identity API returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode identity response: %w", err)
		}
	}
	return nil
}

var _ domain.TokenVerifier = (*Client)(nil)
