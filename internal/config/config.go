package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For trimming and splitting values
	"time"    // For cache TTL

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	DBDriver    string        // Database driver: mysql, postgres or sqlite
	DBUser      string        // Database user
	DBPassword  string        // Database password
	DBHost      string        // Database host
	DBPort      string        // Database port
	DBName      string        // Database name
	DBPath      string        // SQLite database file
	TokenSecret string        // Secret used to sign session tokens
	RedisAddr   string        // Redis server address, empty disables the cache
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	CacheTTL    time.Duration // Lifetime of cached token lookups
	CORSOrigins []string      // Allowed CORS origins
	LogLevel    string        // Logrus level name
	IsProd      bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:     getEnvOrDefault("APP_PORT", "3000"),
		DBDriver:    strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverMySQL)),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBHost:      getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:      os.Getenv("DB_PORT"),
		DBName:      getEnvOrDefault("DB_NAME", "contact_manager"),
		DBPath:      getEnvOrDefault("DB_PATH", "contact_manager.db"),
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   os.Getenv("REDIS_PASS"),
		RedisDB:     redisDB,
		CacheTTL:    getDurationEnv("CACHE_TTL_SECONDS", 60, time.Second),
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		IsProd:      os.Getenv("IS_PROD") == "true",
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
			" dbname=" + c.DBName + " port=" + port + " sslmode=disable"
	case DriverSQLite:
		return c.DBPath
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
