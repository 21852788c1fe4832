package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type Config struct {
	AppPort        string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	DbMaxOpenConns int
	TrustedProxies []string

	StorageDriver     string
	LogFile           string
	TranslationFolder string
	ReconcileInterval time.Duration

	// Client side: boardctl and the remote adapter.
	APIURL             string
	APITimeout         time.Duration
	BreakerTimeout     time.Duration
	BreakerMaxFailures uint32
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DbHost:         getEnv("MYSQL_HOST", "db"),
		DbPort:         getEnv("MYSQL_PORT", "3306"),
		DbUser:         getEnv("MYSQL_USER", "taskboard"),
		DbPassword:     getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:         getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:       getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		DbMaxOpenConns: getEnvInt("MYSQL_MAX_OPEN_CONNS", 10),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),

		StorageDriver:     parseStorageDriver(os.Getenv("STORAGE_DRIVER")),
		LogFile:           getEnv("LOG_FILE", ""),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		ReconcileInterval: getEnvDuration("RECONCILE_INTERVAL", 10*time.Minute),

		APIURL:             strings.TrimRight(getEnv("TASKBOARD_API_URL", "http://localhost:8080"), "/"),
		APITimeout:         getEnvDuration("TASKBOARD_API_TIMEOUT", 10*time.Second),
		BreakerTimeout:     getEnvDuration("BREAKER_TIMEOUT", 30*time.Second),
		BreakerMaxFailures: uint32(getEnvInt("BREAKER_MAX_FAILURES", 5)),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// getEnvDuration accepts Go durations ("90s", "5m"). Zero disables a timer;
// unparsable or negative values use the fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func parseStorageDriver(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), StorageMemory) {
		return StorageMemory
	}
	return StorageMySQL
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
