package apiclient

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yogeshkerkar48/Phonebook-Application/pkg/slogx"
)

// TokenSource yields the bearer token to attach to outgoing requests.
// An empty string means no credential is held and no header is sent.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a plain function to a TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// Client is a client for the phonebook API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a client for the API at baseURL. Every request made through
// it is logged and, when tokens yields one, carries a bearer token.
func New(baseURL string, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &bearerTransport{
				source: tokens,
				next:   &slogx.Transport{Logger: logger},
			},
		},
	}
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}
