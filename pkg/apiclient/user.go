package apiclient

import (
	"context"
	"net/http"
)

// Me retrieves the authenticated user's profile, including whether
// two-factor authentication is enabled for the account.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}

	return &profile, nil
}
