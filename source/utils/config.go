package utils

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	STORE_DRIVER_MONGODB = "mongodb"
	STORE_DRIVER_MYSQL   = "mysql"

	DEFAULT_PORT            = "8001"
	DEFAULT_MONGODB_URI     = "mongodb://localhost:27017"
	DEFAULT_STATS_CACHE_TTL = 5 * time.Second
	DEFAULT_SAMPLER_RATIO   = 0.1
)

type Config struct {
	Env                string
	Port               string
	StoreDriver        string
	MongoURI           string
	MongoDatabase      string
	MySQLURI           string
	RedisURI           string
	StatsCacheTTL      time.Duration
	CorsAllowedOrigins []string
	LogMode            string
	OtelEnabled        bool
	OtelEndpoint       string
	OtelInsecure       bool
	OtelSamplerRatio   float64
}

// LoadConfig reads the process environment. Call LoadEnvFile first to pick
// up a .env file.
func LoadConfig() (Config, error) {
	cfg := Config{
		Env:           getEnv(ENV, ENV_DEVELOPMENT),
		Port:          getEnv(PORT, DEFAULT_PORT),
		StoreDriver:   strings.ToLower(getEnv(STORE_DRIVER, STORE_DRIVER_MONGODB)),
		MongoURI:      getEnv(MONGODB_URI, getEnv(MONGO_URL, DEFAULT_MONGODB_URI)),
		MongoDatabase: getEnv(MONGODB_DATABASE, ""),
		MySQLURI:      getEnv(MYSQL_URI, ""),
		RedisURI:      getEnv(REDIS_URI, ""),
		StatsCacheTTL: DEFAULT_STATS_CACHE_TTL,
		OtelEndpoint:  getEnv(OTEL_ENDPOINT, ""),
		OtelInsecure:  isTruthy(getEnv(OTEL_INSECURE, "")),
		OtelEnabled:   isTruthy(getEnv(OTEL_ENABLED, "")),
	}

	if !slices.Contains(allowedEnvValues, cfg.Env) {
		return Config{}, fmt.Errorf("[ENV] invalid value for ENV: %s. Allowed values: %s",
			cfg.Env, strings.Join(allowedEnvValues, ", "))
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("[ENV] invalid PORT %q: %w", cfg.Port, err)
	}

	switch cfg.StoreDriver {
	case STORE_DRIVER_MONGODB:
	case STORE_DRIVER_MYSQL:
		if cfg.MySQLURI == "" {
			return Config{}, fmt.Errorf("[ENV] %s is required when %s=%s", MYSQL_URI, STORE_DRIVER, STORE_DRIVER_MYSQL)
		}
	default:
		return Config{}, fmt.Errorf("[ENV] invalid value for %s: %s", STORE_DRIVER, cfg.StoreDriver)
	}

	if raw := getEnv(STATS_CACHE_TTL, ""); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("[ENV] invalid %s %q", STATS_CACHE_TTL, raw)
		}
		cfg.StatsCacheTTL = ttl
	}

	cfg.CorsAllowedOrigins = splitList(getEnv(CORS_ALLOWED_ORIGINS, "*"))

	cfg.LogMode = getEnv(LOG_MODE, "")
	if cfg.LogMode == "" {
		cfg.LogMode = "development"
		if cfg.Env == ENV_RELEASE {
			cfg.LogMode = "production"
		}
	}

	cfg.OtelSamplerRatio = DEFAULT_SAMPLER_RATIO
	if raw := getEnv(OTEL_SAMPLER_RATIO, ""); raw != "" {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("[ENV] invalid %s %q: %w", OTEL_SAMPLER_RATIO, raw, err)
		}
		cfg.OtelSamplerRatio = min(max(ratio, 0), 1)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
