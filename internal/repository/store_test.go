package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"phonics/internal/config"
	"phonics/internal/database"
)

func newSQLiteStore(t *testing.T) *KeyValueRepository {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "kv_test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return NewKeyValueRepository(db)
}

func newGdataStore(t *testing.T) *GdataRepository {
	t.Helper()

	appName := fmt.Sprintf("phonics_kv_test_%d", time.Now().UnixNano())
	repo, err := OpenGdataRepository(appName)
	if err != nil {
		t.Skipf("Cannot create gdata storage for testing: %v", err)
	}

	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})
	return repo
}

func storesUnderTest(t *testing.T) map[string]func(t *testing.T) KeyValueStore {
	stores := map[string]func(t *testing.T) KeyValueStore{
		"memory": func(t *testing.T) KeyValueStore { return NewMemoryRepository() },
	}
	if !testing.Short() {
		stores["sqlite"] = func(t *testing.T) KeyValueStore { return newSQLiteStore(t) }
		stores["gdata"] = func(t *testing.T) KeyValueStore { return newGdataStore(t) }
	}
	return stores
}

func TestStoreContract(t *testing.T) {
	for name, open := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			store := open(t)

			if _, found, err := store.Get("player.missing"); err != nil || found {
				t.Fatalf("Get(missing) = found %v, err %v", found, err)
			}

			if err := store.Set("player.a", []byte("first")); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if err := store.Set("player.a", []byte("second")); err != nil {
				t.Fatalf("Set() overwrite error: %v", err)
			}
			value, found, err := store.Get("player.a")
			if err != nil || !found {
				t.Fatalf("Get(player.a) = found %v, err %v", found, err)
			}
			if string(value) != "second" {
				t.Errorf("Get(player.a) = %q, want second", value)
			}

			if err := store.Set("player.b", []byte("x")); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if err := store.Set("has been saved recently", []byte("true")); err != nil {
				t.Fatalf("Set() error: %v", err)
			}

			keys, err := store.Keys("player.")
			if err != nil {
				t.Fatalf("Keys() error: %v", err)
			}
			if strings.Join(keys, ",") != "player.a,player.b" {
				t.Errorf("Keys(player.) = %v, want [player.a player.b]", keys)
			}

			if err := store.Set(`odd\key`, []byte("y")); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			keys, err = store.Keys(`odd\`)
			if err != nil || len(keys) != 1 || keys[0] != `odd\key` {
				t.Errorf("Keys(odd) = %v, %v", keys, err)
			}

			if err := store.Delete("player.a"); err != nil {
				t.Fatalf("Delete() error: %v", err)
			}
			if err := store.Delete("player.a"); err != nil {
				t.Fatalf("second Delete() error: %v", err)
			}
			if _, found, _ := store.Get("player.a"); found {
				t.Error("player.a should be gone")
			}
			keys, _ = store.Keys("player.")
			if len(keys) != 1 || keys[0] != "player.b" {
				t.Errorf("Keys after delete = %v, want [player.b]", keys)
			}
		})
	}
}

func TestKeyValueRepositorySetMany(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newSQLiteStore(t)
	err := repo.SetMany(map[string][]byte{
		"player.one": []byte("1"),
		"player.two": []byte("2"),
	})
	if err != nil {
		t.Fatalf("SetMany() error: %v", err)
	}

	keys, err := repo.Keys("player.")
	if err != nil {
		t.Fatalf("Keys() error: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("Keys() = %v, want 2 keys", keys)
	}
}

func TestLikePattern(t *testing.T) {
	tests := map[string]string{
		"player.": "player.%",
		"100%":    "100_%",
		`a\b_`:    "a_b_%",
		`a\`:      "a_%",
		"":        "%",
	}
	for in, want := range tests {
		if got := likePattern(in); got != want {
			t.Errorf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMemoryRepositoryCopiesValues(t *testing.T) {
	repo := NewMemoryRepository()
	value := []byte("abc")
	repo.Set("k", value)
	value[0] = 'z'

	got, _, _ := repo.Get("k")
	if string(got) != "abc" {
		t.Errorf("stored value changed to %q", got)
	}
}

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, closeFn, err := Open(&config.Config{StoreType: "memory", ProfileID: "p"})
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		defer closeFn()
		if _, ok := store.(*MemoryRepository); !ok {
			t.Errorf("Open() = %T, want *MemoryRepository", store)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping integration test in short mode")
		}
		cfg := &config.Config{StoreType: "sqlite", DatabasePath: filepath.Join(t.TempDir(), "open.db"), ProfileID: "p"}
		store, closeFn, err := Open(cfg)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		defer closeFn()
		if err := store.Set("player.p", []byte("x")); err != nil {
			t.Errorf("Set() on opened store: %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, _, err := Open(&config.Config{StoreType: "redis", ProfileID: "p"}); err == nil {
			t.Error("expected error for unsupported store type")
		}
	})
}
