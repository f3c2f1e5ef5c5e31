package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, TTLs, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	Payment     PaymentConfig
	Reservation ReservationConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type PaymentConfig struct {
	// Provider selects the gateway implementation: "stripe" or "mercadopago".
	Provider       string        `envconfig:"PAYMENT_PROVIDER" default:"stripe"`
	APIBaseURL     string        `envconfig:"PAYMENT_API_BASE_URL" required:"true"`
	APIKey         string        `envconfig:"PAYMENT_API_KEY" required:"true"`
	RequestTimeout time.Duration `envconfig:"PAYMENT_REQUEST_TIMEOUT" default:"5s"`
	SuccessURL     string        `envconfig:"PAYMENT_SUCCESS_URL" default:"http://localhost:3000/checkout/success"`
	CancelURL      string        `envconfig:"PAYMENT_CANCEL_URL" default:"http://localhost:3000/checkout/cancel"`
}

type ReservationConfig struct {
	// TTL bounds how long a held reservation can keep stock off the shelf.
	TTL           time.Duration `envconfig:"RESERVATION_TTL" default:"15m"`
	SweepInterval time.Duration `envconfig:"RESERVATION_SWEEP_INTERVAL" default:"1m"`
	SweepBatch    int           `envconfig:"RESERVATION_SWEEP_BATCH" default:"100"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Payment: PaymentConfig{
			Provider:       "stripe",
			APIBaseURL:     "http://localhost:18080",
			APIKey:         "sk_test_dummy",
			RequestTimeout: time.Second,
			SuccessURL:     "http://localhost:3000/checkout/success",
			CancelURL:      "http://localhost:3000/checkout/cancel",
		},
		Reservation: ReservationConfig{
			TTL:           15 * time.Minute,
			SweepInterval: time.Minute,
			SweepBatch:    100,
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
	}
}
