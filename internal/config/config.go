package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Modes of operation. Local keeps all data in a per-user directory;
// dev wipes that directory on every start and seeds fake data; api is
// the remote-backend scaffold.
const (
	ModeLocal = "local"
	ModeDev   = "dev"
	ModeAPI   = "api"
)

// Backend kinds.
const (
	BackendSQLite = "sqlite"
	BackendAPI    = "api"
)

type Config struct {
	// Operating mode
	Mode string

	// Storage
	Backend string
	DataDir string // empty means "pick the per-OS default"
	DBFile  string

	// Credentials
	PasswordSalt string

	// Dev-mode seeding
	SeedUsers int

	// Session expiry probe on startup
	StartupProbe bool
}

func Load() *Config {
	return &Config{
		Mode:         getEnv("FIWA_MODE", ModeLocal),
		Backend:      getEnv("FIWA_BACKEND", BackendSQLite),
		DataDir:      getEnv("FIWA_DATA_DIR", ""),
		DBFile:       getEnv("FIWA_DB_FILE", "data.sqlite"),
		PasswordSalt: getEnv("FIWA_PASSWORD_SALT", "fiwa_default_salt_2026"),
		SeedUsers:    getEnvInt("FIWA_SEED_USERS", 5),
		StartupProbe: getEnvBool("FIWA_STARTUP_PROBE", true),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Mode {
	case ModeLocal, ModeDev, ModeAPI:
	default:
		errs = append(errs, fmt.Sprintf("invalid mode '%s': must be one of [%s %s %s]",
			c.Mode, ModeLocal, ModeDev, ModeAPI))
	}

	switch c.Backend {
	case BackendSQLite, BackendAPI:
	default:
		errs = append(errs, fmt.Sprintf("invalid backend '%s': must be one of [%s %s]",
			c.Backend, BackendSQLite, BackendAPI))
	}

	if c.Mode == ModeAPI && c.Backend != BackendAPI {
		errs = append(errs, "mode 'api' requires backend 'api'")
	}

	if c.Backend == BackendSQLite && c.DBFile == "" {
		errs = append(errs, "database file name cannot be empty when using the sqlite backend")
	}

	if c.PasswordSalt == "" {
		errs = append(errs, "password salt cannot be empty")
	}

	if c.SeedUsers < 0 || c.SeedUsers > 100 {
		errs = append(errs, fmt.Sprintf("invalid seed user count %d: must be between 0 and 100", c.SeedUsers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// DBPath joins the resolved data directory with the database file name.
func (c *Config) DBPath(dataDir string) string {
	return filepath.Join(dataDir, c.DBFile)
}

// Snapshot is the human-readable record of the effective configuration,
// rewritten into the data directory on every startup.
type Snapshot struct {
	Mode      string    `yaml:"mode"`
	Backend   string    `yaml:"backend"`
	DataDir   string    `yaml:"data_dir"`
	DBPath    string    `yaml:"db_path"`
	WrittenAt time.Time `yaml:"written_at"`
}

// SnapshotFile returns the snapshot file name for the given mode.
func SnapshotFile(mode string) string {
	if mode == ModeDev {
		return "dev_config.yml"
	}
	return "config.yml"
}

// WriteSnapshot serializes the effective configuration into dataDir,
// replacing any previous snapshot.
func (c *Config) WriteSnapshot(dataDir string) error {
	snap := Snapshot{
		Mode:      c.Mode,
		Backend:   c.Backend,
		DataDir:   dataDir,
		DBPath:    c.DBPath(dataDir),
		WrittenAt: time.Now().UTC(),
	}
	out, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal config snapshot: %w", err)
	}
	path := filepath.Join(dataDir, SnapshotFile(c.Mode))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a previously written snapshot from dataDir.
func ReadSnapshot(dataDir, mode string) (*Snapshot, error) {
	raw, err := os.ReadFile(filepath.Join(dataDir, SnapshotFile(mode)))
	if err != nil {
		return nil, fmt.Errorf("read config snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("parse config snapshot: %w", err)
	}
	return &snap, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
