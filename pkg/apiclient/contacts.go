package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateContact stores a new contact and returns it with its assigned ID.
func (c *Client) CreateContact(ctx context.Context, contact ContactCreate) (*Contact, error) {
	bodyBytes, err := json.Marshal(contact)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/contacts/", bytes.NewReader(bodyBytes), headers)
	if err != nil {
		return nil, err
	}

	var created Contact
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}

	return &created, nil
}

// ListContacts returns a page of contacts.
func (c *Client) ListContacts(ctx context.Context, skip, limit int) ([]Contact, error) {
	query := url.Values{
		"skip":  {strconv.Itoa(skip)},
		"limit": {strconv.Itoa(limit)},
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/api/contacts/?"+query.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	var contacts []Contact
	if err := decodeJSON(resp, &contacts, http.StatusOK); err != nil {
		return nil, err
	}

	return contacts, nil
}

// GetContact fetches a single contact by ID.
func (c *Client) GetContact(ctx context.Context, id int) (*Contact, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/contacts/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var contact Contact
	if err := decodeJSON(resp, &contact, http.StatusOK); err != nil {
		return nil, err
	}

	return &contact, nil
}

// UpdateContact applies a partial update to a contact.
func (c *Client) UpdateContact(ctx context.Context, id int, update ContactUpdate) (*Contact, error) {
	bodyBytes, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.doRequest(ctx, http.MethodPut, "/api/contacts/"+strconv.Itoa(id), bytes.NewReader(bodyBytes), headers)
	if err != nil {
		return nil, err
	}

	var updated Contact
	if err := decodeJSON(resp, &updated, http.StatusOK); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteContact removes a contact.
func (c *Client) DeleteContact(ctx context.Context, id int) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/contacts/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusNoContent)
}

// SearchContacts runs a server-side search. An empty query returns all
// contacts.
func (c *Client) SearchContacts(ctx context.Context, q string) (*SearchResult, error) {
	query := url.Values{"q": {q}}

	resp, err := c.doRequest(ctx, http.MethodGet, "/api/search?"+query.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}
