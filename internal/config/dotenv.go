package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

const (
	ChangeFeedLocal    = "local"
	ChangeFeedPostgres = "postgres"
)

type Config struct {
	AdminSlug                string
	PublicBaseURL            string
	PhotoBucketURL           string
	PhotoBaseURL             string
	MaxPhotoBytes            int
	ChangeFeed               string
	ClaimsPerMinute          int
	CreatesPerMinute         int
	AutoMigrate              bool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
}

func Default() Config {
	return Config{
		PublicBaseURL:            "http://localhost:8080",
		PhotoBucketURL:           "file:///var/lib/photo-hunt/photos?create_dir=true",
		MaxPhotoBytes:            10 * 1024 * 1024,
		ChangeFeed:               ChangeFeedLocal,
		ClaimsPerMinute:          30,
		CreatesPerMinute:         10,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("ADMIN_SLUG"); raw != "" {
		cfg.AdminSlug = strings.TrimSpace(raw)
	}
	if raw := os.Getenv("PUBLIC_BASE_URL"); raw != "" {
		cfg.PublicBaseURL = strings.TrimRight(raw, "/")
	}
	if raw := os.Getenv("PHOTO_BUCKET_URL"); raw != "" {
		cfg.PhotoBucketURL = raw
	}
	if raw := os.Getenv("PHOTO_BASE_URL"); raw != "" {
		cfg.PhotoBaseURL = strings.TrimRight(raw, "/")
	}
	if raw := os.Getenv("MAX_PHOTO_BYTES"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxPhotoBytes = value
		}
	}
	if raw := os.Getenv("CHANGE_FEED"); raw != "" {
		switch strings.ToLower(raw) {
		case ChangeFeedPostgres:
			cfg.ChangeFeed = ChangeFeedPostgres
		default:
			cfg.ChangeFeed = ChangeFeedLocal
		}
	}
	if raw := os.Getenv("CLAIMS_PER_MINUTE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.ClaimsPerMinute = value
		}
	}
	if raw := os.Getenv("CREATES_PER_MINUTE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.CreatesPerMinute = value
		}
	}
	if raw := os.Getenv("AUTO_MIGRATE"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			cfg.AutoMigrate = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	return cfg
}
