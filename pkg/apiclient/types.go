package apiclient

import "time"

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Profile is the current user as reported by GET /api/users/me.
type Profile struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Is2FAEnabled bool   `json:"is_2fa_enabled"`
}

// TwoFactorSetup is the provisioning material returned when starting TOTP
// enrollment. URI is an otpauth:// link suitable for a QR code; Secret is
// the base32 shared secret for manual entry.
type TwoFactorSetup struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

// Contact is a stored phonebook entry.
type Contact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ContactCreate is the payload for creating a contact. Phone must be a
// 10-digit number; the server enforces this.
type ContactCreate struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// ContactUpdate is a partial update; nil fields are left unchanged.
type ContactUpdate struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

// SearchResult is the body of GET /api/search.
type SearchResult struct {
	Total   int       `json:"total"`
	Results []Contact `json:"results"`
}
