package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	URL             string `validate:"required"`
	MaxConns        int32  `validate:"gte=0"`
	ConnectTimeout  time.Duration
	MaxConnLifetime time.Duration
}

type RESTConfig struct {
	Port               string        `validate:"required,numeric"`
	CORSAllowedOrigins []string      `validate:"dive,required"`
	RateLimitRequests  int           `validate:"gte=1"`
	RateLimitWindow    time.Duration `validate:"gt=0"`
	ShutdownTimeout    time.Duration `validate:"gt=0"`
}

type AuthConfig struct {
	JWTSecret    string        `validate:"required,min=8"`
	JWTIssuer    string        `validate:"required"`
	JWTTTL       time.Duration `validate:"gt=0"`
	CookieTTL    time.Duration `validate:"gt=0"`
	CookieSecure bool
}

type RecommendationConfig struct {
	Timeout            time.Duration `validate:"gt=0"`
	PersistTimeout     time.Duration `validate:"gt=0"`
	PersistConcurrency int           `validate:"gte=1,lte=256"`
}

type StoreBreakerConfig struct {
	MaxFailures uint32        `validate:"gte=1"`
	OpenTimeout time.Duration `validate:"gt=0"`
}

type RabbitMQConfig struct {
	Enabled    bool
	URL        string `validate:"required_if=Enabled true"`
	Exchange   string `validate:"required_if=Enabled true"`
	RoutingKey string `validate:"required_if=Enabled true"`
}

type StdoutLogConfig struct {
	Level  string `validate:"oneof=debug info warn warning error"`
	IsJSON bool
}

type FluentBitConfig struct {
	Enabled bool
	Host    string `validate:"required_if=Enabled true"`
	Port    int    `validate:"gte=0,lte=65535"`
	Level   string `validate:"oneof=debug info warn warning error"`
}

// AppConfig holds the whole service configuration.
type AppConfig struct {
	AppName        string `validate:"required"`
	Database       DatabaseConfig
	Rest           RESTConfig
	Auth           AuthConfig
	Recommendation RecommendationConfig
	StoreBreaker   StoreBreakerConfig
	RabbitMQ       RabbitMQConfig
	FluentBit      FluentBitConfig
	StdoutLogger   StdoutLogConfig
}

// LoadConfig reads the environment, optionally seeded from a .env file.
// A missing .env file is not an error.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 && envPath[0] != "" {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: no .env file found (path: %v), using process environment.\n", envPath)
	}

	cfg := &AppConfig{
		AppName: getEnvAsString("APP_NAME", "recommendation-service"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxConns:        int32(getEnvAsInt("DATABASE_MAX_CONNS", 10)),
			ConnectTimeout:  getEnvAsDuration("DATABASE_CONNECT_TIMEOUT", 5*time.Second),
			MaxConnLifetime: getEnvAsDuration("DATABASE_MAX_CONN_LIFETIME", time.Hour),
		},
		Rest: RESTConfig{
			Port:               getEnvAsString("PORT", "8085"),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitRequests:  getEnvAsInt("RATE_LIMIT_REQUESTS", 30),
			RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", time.Hour),
			ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTIssuer:    getEnvAsString("JWT_ISSUER", "recommendation-service"),
			JWTTTL:       getEnvAsDuration("JWT_TTL", 90*24*time.Hour),
			CookieTTL:    getEnvAsDuration("JWT_COOKIE_TTL", 90*24*time.Hour),
			CookieSecure: getEnvAsBool("COOKIE_SECURE", false),
		},
		Recommendation: RecommendationConfig{
			Timeout:            getEnvAsDuration("RECOMMENDATION_TIMEOUT", 10*time.Second),
			PersistTimeout:     getEnvAsDuration("RECOMMENDATION_PERSIST_TIMEOUT", 5*time.Second),
			PersistConcurrency: getEnvAsInt("RECOMMENDATION_PERSIST_CONCURRENCY", 8),
		},
		StoreBreaker: StoreBreakerConfig{
			MaxFailures: uint32(getEnvAsInt("STORE_BREAKER_MAX_FAILURES", 5)),
			OpenTimeout: getEnvAsDuration("STORE_BREAKER_OPEN_TIMEOUT", 30*time.Second),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:    getEnvAsBool("RABBITMQ_ENABLED", false),
			URL:        os.Getenv("RABBITMQ_URL"),
			Exchange:   getEnvAsString("RABBITMQ_EXCHANGE", "recommendations_exchange"),
			RoutingKey: getEnvAsString("RABBITMQ_ROUTING_KEY", "recommendation.created"),
		},
		FluentBit: FluentBitConfig{
			Enabled: getEnvAsBool("FLUENTBIT_ENABLED", false),
			Host:    os.Getenv("FLUENTBIT_HOST"),
			Port:    getEnvAsInt("FLUENTBIT_PORT", 24224),
			Level:   strings.ToLower(getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")),
		},
		StdoutLogger: StdoutLogConfig{
			Level:  strings.ToLower(getEnvAsString("STDOUT_LOG_LEVEL", "debug")),
			IsJSON: getEnvAsBool("STDOUT_LOG_JSON", false),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *AppConfig) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt logs and falls back to defaultValue when the variable is not an int.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsSlice splits a comma separated variable and drops empty items.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
