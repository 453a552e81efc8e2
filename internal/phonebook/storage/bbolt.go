package storage

import (
	"fmt"

	"github.com/yogeshkerkar48/Phonebook-Application/pkg/cryptox"

	"go.etcd.io/bbolt"
)

var bucketName = []byte("phonebook")

// BoltStore implements Durable backed by a bbolt database. Values are
// sealed at rest so the token file on disk is not readable in the clear.
type BoltStore struct {
	db     *bbolt.DB
	sealer *cryptox.Sealer
}

var _ Durable = (*BoltStore)(nil)

// OpenBolt opens (or creates) the database at path.
func OpenBolt(path string, sealer *cryptox.Sealer) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: failed to create bucket: %w", err)
	}

	return &BoltStore{db: db, sealer: sealer}, nil
}

func (s *BoltStore) Get(key string) (string, error) {
	var sealed []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		sealed = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return "", err
	}

	value, err := s.sealer.Open(sealed)
	if err != nil {
		// A value we cannot unseal (key file replaced, file corrupted) is
		// as good as absent; callers treat it like a missing token.
		return "", fmt.Errorf("%s: %w", key, ErrNotFound)
	}

	return string(value), nil
}

func (s *BoltStore) Set(key, value string) error {
	sealed, err := s.sealer.Seal([]byte(value))
	if err != nil {
		return fmt.Errorf("storage: failed to seal value: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), sealed)
	})
}

func (s *BoltStore) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
