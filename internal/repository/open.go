package repository

import (
	"fmt"
	"log"

	"phonics/internal/config"
	"phonics/internal/database"
)

// Open builds the store selected by cfg. The returned close function
// releases the underlying connection, if any.
func Open(cfg *config.Config) (KeyValueStore, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	noop := func() error { return nil }

	switch {
	case cfg.IsSQL():
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Printf("Database connection established (type: %s)", cfg.StoreType)
		return NewKeyValueRepository(db), db.Close, nil

	case cfg.StoreType == "gdata":
		repo, err := OpenGdataRepository(cfg.GdataAppName)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using gdata storage (app: %s)", cfg.GdataAppName)
		return repo, noop, nil

	case cfg.StoreType == "memory":
		log.Printf("Using in-memory storage; progress will not be kept")
		return NewMemoryRepository(), noop, nil
	}

	return nil, nil, fmt.Errorf("unsupported store type: %s", cfg.StoreType)
}
