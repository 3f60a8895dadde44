package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
)

const (
	ENV                  = "ENV"
	PORT                 = "PORT"
	STORE_DRIVER         = "STORE_DRIVER"
	MONGODB_URI          = "MONGODB_URI"
	MONGO_URL            = "MONGO_URL"
	MONGODB_DATABASE     = "MONGODB_DATABASE"
	MYSQL_URI            = "MYSQL_URI"
	REDIS_URI            = "REDIS_URI"
	STATS_CACHE_TTL      = "STATS_CACHE_TTL"
	CORS_ALLOWED_ORIGINS = "CORS_ALLOWED_ORIGINS"
	LOG_MODE             = "LOG_MODE"
	OTEL_ENABLED         = "OTEL_ENABLED"
	OTEL_ENDPOINT        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	OTEL_INSECURE        = "OTEL_EXPORTER_OTLP_INSECURE"
	OTEL_SAMPLER_RATIO   = "OTEL_SAMPLER_RATIO"

	ENV_DEVELOPMENT = "development"
	ENV_HOMOLOG     = "homolog"
	ENV_RELEASE     = "production"
)

var allowedKeys = []string{
	ENV, PORT, STORE_DRIVER, MONGODB_URI, MONGO_URL, MONGODB_DATABASE, MYSQL_URI, REDIS_URI,
	STATS_CACHE_TTL, CORS_ALLOWED_ORIGINS, LOG_MODE,
	OTEL_ENABLED, OTEL_ENDPOINT, OTEL_INSECURE, OTEL_SAMPLER_RATIO,
}

var allowedEnvValues = []string{ENV_DEVELOPMENT, ENV_HOMOLOG, ENV_RELEASE}

// LoadEnvFile copies KEY=VALUE pairs from the file at path into the process
// environment. A missing file is not an error. Variables already present in
// the environment win over the file.
func LoadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("[ENV] cannot open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("[ENV] invalid format on line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := unquote(strings.TrimSpace(parts[1]))

		if !slices.Contains(allowedKeys, key) {
			return fmt.Errorf("[ENV] key '%s' is not allowed. Allowed keys: %s",
				key, strings.Join(allowedKeys, ", "))
		}

		if key == ENV && !slices.Contains(allowedEnvValues, value) {
			return fmt.Errorf("[ENV] invalid value for ENV: %s. Allowed values: %s",
				value, strings.Join(allowedEnvValues, ", "))
		}

		if _, exists := os.LookupEnv(key); exists {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("[ENV] cannot set %s: %w", key, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("[ENV] cannot read %s: %w", path, err)
	}

	return nil
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	if (strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"")) ||
		(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
		return value[1 : len(value)-1]
	}
	return value
}
