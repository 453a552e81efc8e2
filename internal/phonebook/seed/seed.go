// Package seed fills an account with generated contacts, useful for
// exercising search and pagination against a fresh backend.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/yogeshkerkar48/Phonebook-Application/pkg/apiclient"

	"golang.org/x/time/rate"
)

// ContactCreator is the slice of the API the seeder needs.
type ContactCreator interface {
	CreateContact(ctx context.Context, contact apiclient.ContactCreate) (*apiclient.Contact, error)
}

// Seeder creates generated contacts through the API, throttled so a big
// seed run doesn't hammer the backend.
type Seeder struct {
	api     ContactCreator
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a Seeder posting at most perSecond contacts per second.
func New(api ContactCreator, perSecond float64, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}

	return &Seeder{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		logger:  logger,
	}
}

// Seed creates count contacts and returns how many were stored. A failed
// creation is logged and skipped; a cancelled context stops the run.
func (s *Seeder) Seed(ctx context.Context, count int) (int, error) {
	created := 0
	for i := 0; i < count; i++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return created, fmt.Errorf("seed interrupted: %w", err)
		}

		contact := RandomContact()
		stored, err := s.api.CreateContact(ctx, contact)
		if err != nil {
			s.logger.Warn("failed to seed contact", "name", contact.Name, "error", err)
			continue
		}

		s.logger.Debug("seeded contact", "id", stored.ID, "name", stored.Name)
		created++
	}

	return created, nil
}

const letters = "abcdefghijklmnopqrstuvwxyz"

// RandomContact generates a plausible contact: a two-part name, a valid
// 10-digit phone starting 6-9, and an email derived from the name.
func RandomContact() apiclient.ContactCreate {
	first := randomWord(5)
	last := randomWord(6)

	name := capitalize(first) + " " + capitalize(last)
	email := first + "." + last + "@example.com"
	address := fmt.Sprintf("%d %s St, %s", 1+rand.IntN(999),
		capitalize(randomWord(8)), capitalize(randomWord(7)))

	return apiclient.ContactCreate{
		Name:    name,
		Phone:   randomPhone(),
		Email:   email,
		Address: address,
	}
}

func randomPhone() string {
	var b strings.Builder
	b.WriteByte(byte('6' + rand.IntN(4)))
	for i := 0; i < 9; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

func randomWord(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteByte(letters[rand.IntN(len(letters))])
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
