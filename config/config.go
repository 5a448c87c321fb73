package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "eventify-dev-secret-change-me"

type Config struct {
	// Server configuration
	HTTPAddr       string
	Environment    string
	LogLevel       string
	CORSOrigins    []string
	// CIDRs of reverse proxies whose X-Forwarded-For is believed.
	TrustedProxies []string

	// Storage
	DatabasePath string
	SeedOnStart  bool

	// Auth
	JWTSecret      string
	TokenTTL       time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// Redis configuration, optional
	RedisURL string

	// PubNub configuration, optional
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	Payment PaymentConfig

	// Monitoring
	EnableMetrics bool
	MetricsAddr   string
}

type PaymentConfig struct {
	Provider   string // stripe or stub
	Currency   string
	SuccessURL string // {id} and {type} are substituted
	CancelURL  string
	Timeout    time.Duration

	StripeSecretKey string
	StripeAPIURL    string
	StubBaseURL     string
}

// LoadConfig reads the environment, after loading an optional .env file.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Could not load .env file", "error", err)
	}

	return &Config{
		// Server
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    getEnvAsList("CORS_ORIGINS", "*"),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES", ""),

		// Storage
		DatabasePath: getEnv("DATABASE_PATH", "eventify.db"),
		SeedOnStart:  getEnvAsBool("SEED_ON_START", true),

		// Auth
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       getEnvAsDuration("TOKEN_TTL", "168h"),
		AuthRateLimit:  getEnvAsInt("AUTH_RATE_LIMIT", 30),
		AuthRateWindow: getEnvAsDuration("AUTH_RATE_WINDOW", "1m"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		Payment: PaymentConfig{
			Provider:        strings.ToLower(getEnv("PAYMENT_PROVIDER", "stub")),
			Currency:        strings.ToLower(getEnv("PAYMENT_CURRENCY", "inr")),
			SuccessURL:      getEnv("PAYMENT_SUCCESS_URL", "http://localhost:8080/registration-success/{id}?type={type}"),
			CancelURL:       getEnv("PAYMENT_CANCEL_URL", "http://localhost:8080/{type}s/{id}"),
			Timeout:         getEnvAsDuration("PAYMENT_TIMEOUT", "15s"),
			StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			StripeAPIURL:    getEnv("STRIPE_API_URL", "https://api.stripe.com"),
			StubBaseURL:     getEnv("STUB_PAYMENT_BASE_URL", "http://localhost:8080/stub-checkout"),
		},

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate rejects combinations the server cannot run with. Outside
// production a missing JWT secret falls back to a fixed development value.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		} else {
			slog.Warn("JWT_SECRET not set, using the development secret")
			c.JWTSecret = devJWTSecret
		}
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	if c.AuthRateLimit <= 0 || c.AuthRateWindow <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT and AUTH_RATE_WINDOW must be positive"))
	}
	if _, err := c.TrustedProxyNets(); err != nil {
		errs = append(errs, err)
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	switch c.Payment.Provider {
	case "stripe":
		if c.Payment.StripeSecretKey == "" {
			errs = append(errs, errors.New("STRIPE_SECRET_KEY is required for the stripe provider"))
		}
	case "stub":
		if c.IsProduction() {
			errs = append(errs, errors.New("the stub payment provider cannot run in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.Payment.Provider))
	}
	if c.Payment.Timeout <= 0 {
		errs = append(errs, errors.New("PAYMENT_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

// TrustedProxyNets parses TrustedProxies. A bare address is taken as a
// single host.
func (c *Config) TrustedProxyNets() ([]*net.IPNet, error) {
	var nets []*net.IPNet
	for _, entry := range c.TrustedProxies {
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil && ip.To4() != nil {
				entry += "/32"
			} else {
				entry += "/128"
			}
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	var list []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}
