package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultJWTSecret is used when FLIPR_JWT_SECRET is unset. It is fine
// for local development and nothing else; Load reports whether it is in
// effect so the caller can warn loudly.
const DefaultJWTSecret = "devsecret"

const (
	defaultAddr          = ":4000"
	defaultDBPath        = "flipr.db"
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
	defaultUploadDir     = "uploads"
	defaultMaxUpload     = 10 << 20 // 10 MiB, matches the JSON body limit
)

// Config carries every knob the server and the rebase job consume.
// Values come from FLIPR_* environment variables with development
// defaults for everything except what the caller overrides.
type Config struct {
	Addr           string
	DBPath         string
	JWTSecret      string
	AdminEmail     string
	AdminPassword  string
	FileBaseURL    string // optional; empty means derive from the request
	UploadDir      string
	MaxUploadBytes int64
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Addr:           getenv("FLIPR_ADDR", defaultAddr),
		DBPath:         getenv("FLIPR_DB_PATH", defaultDBPath),
		JWTSecret:      getenv("FLIPR_JWT_SECRET", DefaultJWTSecret),
		AdminEmail:     getenv("FLIPR_ADMIN_EMAIL", defaultAdminEmail),
		AdminPassword:  getenv("FLIPR_ADMIN_PASSWORD", defaultAdminPassword),
		FileBaseURL:    os.Getenv("FLIPR_FILE_BASE_URL"),
		UploadDir:      getenv("FLIPR_UPLOAD_DIR", defaultUploadDir),
		MaxUploadBytes: defaultMaxUpload,
	}
	if v := os.Getenv("FLIPR_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid FLIPR_MAX_UPLOAD_BYTES %q", v)
		}
		cfg.MaxUploadBytes = n
	}
	return cfg, nil
}

// InsecureSecret reports whether the process is running on the built-in
// development signing secret.
func (c Config) InsecureSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
