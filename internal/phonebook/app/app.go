// Package app wires the phonebook client together: config, logging,
// storage, API client, session store, navigation guard and the contact
// cache.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/cache"
	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/guard"
	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/session"
	"github.com/yogeshkerkar48/Phonebook-Application/internal/phonebook/storage"
	"github.com/yogeshkerkar48/Phonebook-Application/pkg/apiclient"
	"github.com/yogeshkerkar48/Phonebook-Application/pkg/cryptox"
	"github.com/yogeshkerkar48/Phonebook-Application/pkg/slogx"
)

const version = "1.0.0"

type App struct {
	Config  Config
	Logger  *slog.Logger
	Client  *apiclient.Client
	Session *session.Store
	Guard   *guard.Guard
	Cache   *cache.Cache

	durable storage.Durable
}

// New builds a fully wired application from config. The data directory
// is created if missing.
func New(cfg Config) (*App, error) {
	logger := slogx.New(slogx.Config{
		Service: "phonebook",
		Version: version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	keyMaterial, err := cryptox.LoadOrCreateKeyFile(filepath.Join(cfg.DataDir, "storage.key"))
	if err != nil {
		return nil, err
	}
	sealer, err := cryptox.NewSealer(keyMaterial)
	if err != nil {
		return nil, err
	}

	durable, err := storage.OpenBolt(filepath.Join(cfg.DataDir, "phonebook.db"), sealer)
	if err != nil {
		return nil, err
	}
	ephemeral := storage.NewMemory()

	// The client reads its bearer token from the session store, which is
	// created after it; the indirection breaks the cycle.
	var store *session.Store
	client := apiclient.New(cfg.APIBaseURL, apiclient.TokenSourceFunc(func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	}), logger)
	store = session.New(client, durable, ephemeral, logger)

	contactCache, err := cache.Open(filepath.Join(cfg.DataDir, "contacts.db"))
	if err != nil {
		_ = durable.Close()
		return nil, err
	}
	if err := contactCache.ApplyMigrations(); err != nil {
		_ = durable.Close()
		_ = contactCache.Close()
		return nil, fmt.Errorf("failed to migrate contact cache: %w", err)
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		Session: store,
		Guard:   guard.New(store, guard.DefaultRoutes(), logger),
		Cache:   contactCache,
		durable: durable,
	}, nil
}

// Close releases the storage handles.
func (a *App) Close() error {
	cacheErr := a.Cache.Close()
	if err := a.durable.Close(); err != nil {
		return err
	}
	return cacheErr
}
