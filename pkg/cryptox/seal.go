// Package cryptox seals small secrets at rest. The phonebook client uses
// it so the bearer token persisted between runs is not stored in the
// clear on disk.
package cryptox

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const saltSize = 16

// Argon2id parameters for deriving the sealing key from the key file.
// The key file is already high-entropy, so a single cheap pass is enough.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Sealer encrypts and decrypts values with a key derived from local key
// material via Argon2id, using XChaCha20-Poly1305.
type Sealer struct {
	material []byte
}

// NewSealer creates a Sealer from raw key material.
func NewSealer(material []byte) (*Sealer, error) {
	if len(material) == 0 {
		return nil, fmt.Errorf("cryptox: empty key material")
	}

	m := make([]byte, len(material))
	copy(m, material)
	return &Sealer{material: m}, nil
}

// LoadOrCreateKeyFile reads key material from path, generating a random
// 32-byte key file on first use. The file is created with 0600 so other
// users on the machine cannot read it.
func LoadOrCreateKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) == 0 {
			return nil, fmt.Errorf("cryptox: key file %s is empty", path)
		}
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cryptox: failed to read key file: %w", err)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("cryptox: failed to create key dir: %w", err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("cryptox: failed to write key file: %w", err)
	}

	return key, nil
}

// Seal encrypts plaintext. The output format is:
// [16-byte salt][24-byte nonce][ciphertext + auth tag]
// A fresh salt and nonce are generated per call.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate salt: %w", err)
	}

	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(data []byte) ([]byte, error) {
	if len(data) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("cryptox: sealed data too short")
	}

	salt := data[:saltSize]
	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := data[saltSize : saltSize+aead.NonceSize()]
	ciphertext := data[saltSize+aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decryption failed: %w", err)
	}

	return plaintext, nil
}

func (s *Sealer) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(s.material, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
	return chacha20poly1305.NewX(key)
}
