package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dungeon-progress/internal/achievements"
	"github.com/vovakirdan/dungeon-progress/internal/config"
	"github.com/vovakirdan/dungeon-progress/internal/progression"
	"github.com/vovakirdan/dungeon-progress/internal/storage"
)

// session is an initialized service over an open database.
type session struct {
	svc   *progression.Service
	store *storage.Store
	cfg   config.Config
}

func (s *session) Close() {
	s.store.Close()
}

// openSession loads config, opens storage and initializes progression.
// The caller must Close a returned session.
func openSession(cmd *cobra.Command, onUnlock achievements.UnlockFunc) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening progress database: %w", err)
	}

	svc, err := progression.New(progression.Options{
		KV:       store,
		Config:   cfg.Progression,
		Logger:   logger,
		OnUnlock: onUnlock,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	svc.Initialize()
	return &session{svc: svc, store: store, cfg: cfg}, nil
}
