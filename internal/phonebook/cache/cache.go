// Package cache keeps a local SQLite copy of the user's contacts so
// listing and searching work without a round trip (or offline). The API
// stays the source of truth; the cache is replaced wholesale on sync.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yogeshkerkar48/Phonebook-Application/pkg/apiclient"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports a contact missing from the cache.
var ErrNotFound = errors.New("cache: contact not found")

type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path. Call
// ApplyMigrations before first use.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: failed to open %s: %w", path, err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// ReplaceAll swaps the cached contact set for the given one in a single
// transaction, stamping every row with the sync time.
func (c *Cache) ReplaceAll(ctx context.Context, contacts []apiclient.Contact) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return err
	}

	syncedAt := time.Now().UTC().Format(time.RFC3339)
	for _, contact := range contacts {
		createdAt := ""
		if !contact.CreatedAt.IsZero() {
			createdAt = contact.CreatedAt.UTC().Format(time.RFC3339)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO contacts (id, name, phone, email, address, created_at, synced_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			contact.ID, contact.Name, contact.Phone, contact.Email,
			contact.Address, createdAt, syncedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// List returns all cached contacts ordered by name.
func (c *Cache) List(ctx context.Context) ([]apiclient.Contact, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, phone, email, address, created_at
		FROM contacts ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// Search returns cached contacts whose name, phone or email contains the
// query, case-insensitively. An empty query returns everything.
func (c *Cache) Search(ctx context.Context, query string) ([]apiclient.Contact, error) {
	if query == "" {
		return c.List(ctx)
	}

	pattern := "%" + query + "%"
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, phone, email, address, created_at
		FROM contacts
		WHERE name LIKE ? COLLATE NOCASE
		   OR phone LIKE ?
		   OR email LIKE ? COLLATE NOCASE
		ORDER BY name COLLATE NOCASE`,
		pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// Get returns a single cached contact by ID.
func (c *Cache) Get(ctx context.Context, id int) (*apiclient.Contact, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, address, created_at
		FROM contacts WHERE id = ?`, id)

	contact, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// SyncedAt returns when the cache was last replaced, or the zero time
// for a cache that has never been synced.
func (c *Cache) SyncedAt(ctx context.Context) (time.Time, error) {
	var stamp sql.NullString
	err := c.db.QueryRowContext(ctx, `SELECT MAX(synced_at) FROM contacts`).Scan(&stamp)
	if err != nil {
		return time.Time{}, err
	}
	if !stamp.Valid || stamp.String == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.RFC3339, stamp.String)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*apiclient.Contact, error) {
	var contact apiclient.Contact
	var createdAt string

	err := row.Scan(&contact.ID, &contact.Name, &contact.Phone,
		&contact.Email, &contact.Address, &createdAt)
	if err != nil {
		return nil, err
	}

	if createdAt != "" {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			contact.CreatedAt = t
		}
	}

	return &contact, nil
}

func scanContacts(rows *sql.Rows) ([]apiclient.Contact, error) {
	var contacts []apiclient.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	return contacts, rows.Err()
}
