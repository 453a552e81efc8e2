package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type twoFactorCode struct {
	Code string `json:"code"`
}

// Setup2FA begins TOTP enrollment for the authenticated user and returns
// the shared secret plus a provisioning URI.
func (c *Client) Setup2FA(ctx context.Context) (*TwoFactorSetup, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/2fa/setup", nil, nil)
	if err != nil {
		return nil, err
	}

	var setup TwoFactorSetup
	if err := decodeJSON(resp, &setup, http.StatusOK); err != nil {
		return nil, err
	}

	return &setup, nil
}

// Verify2FASetup confirms enrollment with a code from the authenticator.
// On success the server ends the current session; the user must log in
// again before the new requirement takes effect.
func (c *Client) Verify2FASetup(ctx context.Context, code string) error {
	return c.postCode(ctx, "/api/2fa/setup/verify", code)
}

// Verify2FALogin answers the login-time challenge with a current code.
func (c *Client) Verify2FALogin(ctx context.Context, code string) error {
	return c.postCode(ctx, "/api/2fa/verify", code)
}

func (c *Client) postCode(ctx context.Context, path, code string) error {
	bodyBytes, err := json.Marshal(twoFactorCode{Code: code})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(bodyBytes), headers)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}
