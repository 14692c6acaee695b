package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	JWTSecret     string
	SessionTTL    time.Duration
	AdminEmail    string
	AdminPassword string
	AdminName     string
	CORSOrigin    string
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file (or the one named by -env-file) is loaded first; it never
// overrides variables that are already set.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("examarchive", flag.ContinueOnError)

	fs.StringVar(&envFile, "env-file", ".env", "Optional dotenv file")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", "", "Allowed CORS origin (default: echo request origin)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Session token secret (prefer env)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Admin session lifetime")

	// Admin account seeded at startup
	fs.StringVar(&cfg.AdminEmail, "admin-email", "", "Admin email to seed")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password to seed (prefer env)")
	fs.StringVar(&cfg.AdminName, "admin-name", "", "Admin display name")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.SessionTTL == 0 {
		if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
			d, err := time.ParseDuration(ttl)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = d
		} else {
			cfg.SessionTTL = 12 * time.Hour
		}
	}

	if cfg.AdminEmail == "" {
		cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminName == "" {
		cfg.AdminName = os.Getenv("ADMIN_NAME")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
	}

	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
