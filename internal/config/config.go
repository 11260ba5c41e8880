// Package config loads process configuration from the environment. A .env
// file in the working directory is read first when present; variables that
// are already set win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// API holds the settings of the content backend.
type API struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins []string
	LogLevel       string

	AdminUsername string
	AdminPassword string // plain text or bcrypt hash

	StorageMode      string
	LocalStoragePath string
	LocalPublicURL   string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	SeedData        bool
	ShutdownTimeout time.Duration
}

// Client holds the settings shared by the admin console and the public site.
type Client struct {
	APIURL      string
	MediaURL    string
	PageOrigin  string
	LogLevel    string
	HTTPTimeout time.Duration

	SitePort        string
	SiteDefaultLang string
}

func loadDotEnv() {
	_ = godotenv.Load()
}

// LoadAPI reads the backend configuration. Every missing or malformed
// variable is reported, not only the first one.
func LoadAPI() (*API, error) {
	loadDotEnv()

	var errs error
	cfg := &API{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin"),
		StorageMode:      strings.ToLower(getEnv("STORAGE_MODE", StorageLocal)),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "/app/storage"),
		LocalPublicURL:   getEnv("LOCAL_PUBLIC_URL", "http://localhost:8080/media"),
		MinioEndpoint:    os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:   os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:   os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:      getEnv("MINIO_BUCKET", "visus"),
		MinioPublicURL:   os.Getenv("MINIO_PUBLIC_URL"),
	}

	var err error
	if cfg.MinioUseSSL, err = getBool("MINIO_USE_SSL", false); err != nil {
		errs = multierr.Append(errs, err)
	}
	if cfg.SeedData, err = getBool("SEED_DATA", false); err != nil {
		errs = multierr.Append(errs, err)
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		errs = multierr.Append(errs, err)
	}

	if cfg.DatabaseURL == "" {
		errs = multierr.Append(errs, errors.New("DATABASE_URL is not set"))
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("PORT: %q is not a number", cfg.Port))
	}

	switch cfg.StorageMode {
	case StorageLocal:
		if cfg.LocalStoragePath == "" {
			errs = multierr.Append(errs, errors.New("LOCAL_STORAGE_PATH is empty"))
		}
	case StorageMinio:
		for name, v := range map[string]string{
			"MINIO_ENDPOINT":   cfg.MinioEndpoint,
			"MINIO_ACCESS_KEY": cfg.MinioAccessKey,
			"MINIO_SECRET_KEY": cfg.MinioSecretKey,
		} {
			if v == "" {
				errs = multierr.Append(errs, fmt.Errorf("%s is required for STORAGE_MODE=minio", name))
			}
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("STORAGE_MODE: unknown mode %q (local, minio)", cfg.StorageMode))
	}

	if errs != nil {
		return nil, errs
	}
	return cfg, nil
}

// LoadClient reads the console/site configuration.
func LoadClient() (*Client, error) {
	loadDotEnv()

	cfg := &Client{
		APIURL:          strings.TrimRight(getEnv("VISUS_API_URL", "http://localhost:8080/api"), "/"),
		MediaURL:        os.Getenv("VISUS_MEDIA_URL"),
		PageOrigin:      os.Getenv("VISUS_PAGE_ORIGIN"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SitePort:        getEnv("SITE_PORT", "8090"),
		SiteDefaultLang: getEnv("SITE_DEFAULT_LANG", "ru"),
	}

	var errs error
	var err error
	if cfg.HTTPTimeout, err = getDuration("VISUS_HTTP_TIMEOUT", 30*time.Second); err != nil {
		errs = multierr.Append(errs, err)
	}
	if cfg.SiteDefaultLang != "ru" && cfg.SiteDefaultLang != "kk" {
		errs = multierr.Append(errs, fmt.Errorf("SITE_DEFAULT_LANG: unsupported %q (ru, kk)", cfg.SiteDefaultLang))
	}
	if errs != nil {
		return nil, errs
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	return b, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not a duration", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
