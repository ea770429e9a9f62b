package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORE_TYPE", "DB_PATH", "DATABASE_URL", "GDATA_APP", "PROFILE_ID"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.StoreType != "sqlite" {
		t.Errorf("StoreType = %q, want sqlite", cfg.StoreType)
	}
	if cfg.DatabasePath != "./phonics.db" {
		t.Errorf("DatabasePath = %q, want ./phonics.db", cfg.DatabasePath)
	}
	if cfg.ProfileID != DefaultProfileID {
		t.Errorf("ProfileID = %q, want %q", cfg.ProfileID, DefaultProfileID)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE_TYPE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/phonics")
	t.Setenv("PROFILE_ID", "kid-1")

	cfg := Load()

	if cfg.StoreType != "postgres" {
		t.Errorf("StoreType = %q, want postgres", cfg.StoreType)
	}
	if cfg.DatabaseURL != "postgres://localhost/phonics" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.ProfileID != "kid-1" {
		t.Errorf("ProfileID = %q, want kid-1", cfg.ProfileID)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite", Config{StoreType: "sqlite", DatabasePath: "x.db", ProfileID: "p"}, false},
		{"sqlite without path", Config{StoreType: "sqlite", ProfileID: "p"}, true},
		{"mysql without url", Config{StoreType: "mysql", ProfileID: "p"}, true},
		{"postgres with url", Config{StoreType: "postgres", DatabaseURL: "postgres://x", ProfileID: "p"}, false},
		{"gdata", Config{StoreType: "gdata", GdataAppName: "phonics", ProfileID: "p"}, false},
		{"memory", Config{StoreType: "memory", ProfileID: "p"}, false},
		{"unknown", Config{StoreType: "redis", ProfileID: "p"}, true},
		{"empty profile", Config{StoreType: "memory"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsSQL(t *testing.T) {
	tests := map[string]bool{
		"sqlite":   true,
		"postgres": true,
		"mysql":    true,
		"gdata":    false,
		"memory":   false,
	}
	for storeType, want := range tests {
		cfg := Config{StoreType: storeType}
		if got := cfg.IsSQL(); got != want {
			t.Errorf("IsSQL(%q) = %v, want %v", storeType, got, want)
		}
	}
}
