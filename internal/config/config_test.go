package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"FIWA_MODE", "FIWA_BACKEND", "FIWA_DATA_DIR", "FIWA_DB_FILE",
		"FIWA_PASSWORD_SALT", "FIWA_SEED_USERS", "FIWA_STARTUP_PROBE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Mode != ModeLocal {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeLocal)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendSQLite)
	}
	if cfg.DBFile != "data.sqlite" {
		t.Errorf("DBFile = %q, want data.sqlite", cfg.DBFile)
	}
	if cfg.PasswordSalt == "" {
		t.Error("PasswordSalt should default to a non-empty value")
	}
	if cfg.SeedUsers != 5 {
		t.Errorf("SeedUsers = %d, want 5", cfg.SeedUsers)
	}
	if !cfg.StartupProbe {
		t.Error("StartupProbe should default to true")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FIWA_MODE", ModeDev)
	t.Setenv("FIWA_SEED_USERS", "12")
	t.Setenv("FIWA_STARTUP_PROBE", "false")

	cfg := Load()
	if cfg.Mode != ModeDev {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeDev)
	}
	if cfg.SeedUsers != 12 {
		t.Errorf("SeedUsers = %d, want 12", cfg.SeedUsers)
	}
	if cfg.StartupProbe {
		t.Error("StartupProbe should be false")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Mode:         ModeLocal,
		Backend:      BackendSQLite,
		DBFile:       "data.sqlite",
		PasswordSalt: "salt",
		SeedUsers:    5,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad mode", func(c *Config) { c.Mode = "prod" }, "invalid mode"},
		{"bad backend", func(c *Config) { c.Backend = "postgres" }, "invalid backend"},
		{"api mode needs api backend", func(c *Config) { c.Mode = ModeAPI }, "requires backend 'api'"},
		{"missing db file", func(c *Config) { c.DBFile = "" }, "database file name"},
		{"missing salt", func(c *Config) { c.PasswordSalt = "" }, "password salt"},
		{"seed count out of range", func(c *Config) { c.SeedUsers = 101 }, "seed user count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := Config{Mode: "prod", Backend: "postgres", PasswordSalt: ""}
	err := c.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"invalid mode", "invalid backend", "password salt"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q:\n%s", want, err.Error())
		}
	}
}

func TestSnapshotFile(t *testing.T) {
	if got := SnapshotFile(ModeDev); got != "dev_config.yml" {
		t.Errorf("SnapshotFile(dev) = %q", got)
	}
	if got := SnapshotFile(ModeLocal); got != "config.yml" {
		t.Errorf("SnapshotFile(local) = %q", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Mode:         ModeLocal,
		Backend:      BackendSQLite,
		DBFile:       "data.sqlite",
		PasswordSalt: "salt",
	}

	if err := cfg.WriteSnapshot(dir); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	// A second write replaces the first instead of failing.
	if err := cfg.WriteSnapshot(dir); err != nil {
		t.Fatalf("WriteSnapshot (rewrite): %v", err)
	}

	snap, err := ReadSnapshot(dir, ModeLocal)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if snap.Mode != ModeLocal || snap.Backend != BackendSQLite {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.DBPath != filepath.Join(dir, "data.sqlite") {
		t.Errorf("DBPath = %q", snap.DBPath)
	}
	if snap.WrittenAt.IsZero() {
		t.Error("WrittenAt should be set")
	}
}

func TestReadSnapshotMissing(t *testing.T) {
	if _, err := ReadSnapshot(t.TempDir(), ModeLocal); err == nil {
		t.Fatal("expected an error for a missing snapshot")
	}
}
