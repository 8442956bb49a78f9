// Package identity mirrors local accounts into the external identity
// provider. Mirroring is best effort: local registration is the source of
// truth and a provider outage never blocks signup.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bizprofile/bizprofile-backend-go/internal/config"
	"golang.org/x/oauth2/clientcredentials"
)

type Account struct {
	Email         string  `json:"email"`
	MobileNo      *string `json:"mobile_no,omitempty"`
	EmailVerified bool    `json:"email_verified"`
	LocalID       string  `json:"local_id"`
}

// Mirror is the slice of the provider API the registration flow depends on.
type Mirror interface {
	// MirrorAccount creates or updates the account at the provider and
	// returns the provider-assigned UID.
	MirrorAccount(ctx context.Context, account Account) (string, error)
}

// Client calls the provider's admin API using OAuth2 client credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.IdentityConfig) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cc.Client(context.Background()),
	}
}

func (c *Client) MirrorAccount(ctx context.Context, account Account) (string, error) {
	payload, err := json.Marshal(account)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/accounts", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity mirror request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("identity provider returned %d: %s", resp.StatusCode, string(msg))
	}

	var result struct {
		UID string `json:"uid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode identity response: %w", err)
	}
	return result.UID, nil
}

// RemoveAccount deletes the mirrored account at the provider. A missing
// account counts as already removed.
func (c *Client) RemoveAccount(ctx context.Context, uid string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/v1/accounts/"+uid, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity remove request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("identity provider returned %d", resp.StatusCode)
	}
	return nil
}
