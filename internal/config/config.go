package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultTimeZone        = "Asia/Kolkata"
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 30 * 24 * time.Hour
	minSecretKeyLength     = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"django-insecure-change-me":                  {},
}

type Config struct {
	SecretKey         string
	Port              string
	DBPath            string
	Location          *time.Location
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	CORSAllowedOrigin string
}

// LoadDotEnv reads .env from the working directory when present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}
}

// Load reads the server configuration from the environment.
func Load() (Config, error) {
	secretKey, err := ResolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	port, err := ResolvePort()
	if err != nil {
		return Config{}, err
	}
	accessTTL, err := resolveDuration("ACCESS_TOKEN_TTL", defaultAccessTokenTTL)
	if err != nil {
		return Config{}, err
	}
	refreshTTL, err := resolveDuration("REFRESH_TOKEN_TTL", defaultRefreshTokenTTL)
	if err != nil {
		return Config{}, err
	}

	return Config{
		SecretKey:         secretKey,
		Port:              port,
		DBPath:            ResolveDBPath(),
		Location:          LoadLocation(GetEnv("TZ", defaultTimeZone)),
		AccessTokenTTL:    accessTTL,
		RefreshTokenTTL:   refreshTTL,
		CORSAllowedOrigin: strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGIN")),
	}, nil
}

func GetEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func ResolveDBPath() string {
	return GetEnv("DB_PATH", filepath.Join("data", "saheli.db"))
}

func ResolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secretKey)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func ResolvePort() (string, error) {
	raw := GetEnv("PORT", defaultPort)
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func LoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func resolveDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}
