package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Login exchanges credentials for a bearer token. The API follows the
// OAuth2 password-form convention: the body is form-encoded and the email
// travels in the "username" field.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	data := url.Values{
		"username": {email},
		"password": {password},
	}

	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/login", strings.NewReader(data.Encode()), headers)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}

// Register creates an account. It does not establish a session; the API
// requires a separate login afterwards. Validation rejections (malformed
// email, password under 8 characters, duplicate account) come back as a
// 422 *APIError with the server's detail.
func (c *Client) Register(ctx context.Context, email, password string) error {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/register", bytes.NewReader(bodyBytes), headers)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusCreated)
}
