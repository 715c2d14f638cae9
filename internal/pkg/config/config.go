package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, etc.)
// - default: Values common across all environments (timezone, timeout, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Payment PaymentConfig
	Events  EventsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
	// Upper bound for compare-and-set retries on a single path.
	MaxTxnAttempts int `envconfig:"STORE_MAX_TXN_ATTEMPTS" default:"25"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"servicebook"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"servicebook"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Colombo"`
}

type RedisConfig struct {
	URL       string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	KeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"sb"`
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
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Colombo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER"`
}

// PaymentConfig holds the hosted-checkout merchant credentials. Merchant fields are
// optional so the service can boot without them; starting a payment then fails.
type PaymentConfig struct {
	MerchantID     string  `envconfig:"PAYHERE_MERCHANT_ID"`
	MerchantSecret string  `envconfig:"PAYHERE_MERCHANT_SECRET"`
	CheckoutURL    string  `envconfig:"PAYHERE_CHECKOUT_URL" default:"https://sandbox.payhere.lk/pay/checkout"`
	Currency       string  `envconfig:"PAYMENT_CURRENCY" default:"LKR"`
	AdvancePercent float64 `envconfig:"PAYMENT_ADVANCE_PERCENT" default:"20"`
	ReturnURL      string  `envconfig:"PAYMENT_RETURN_URL"`
	CancelURL      string  `envconfig:"PAYMENT_CANCEL_URL"`
	NotifyURL      string  `envconfig:"PAYMENT_NOTIFY_URL"`
}

type EventsConfig struct {
	KafkaBrokers        []string `envconfig:"KAFKA_BROKERS"`
	KafkaGroupID        string   `envconfig:"KAFKA_GROUP_ID" default:"servicebook"`
	BookingCreatedTopic string   `envconfig:"KAFKA_BOOKING_CREATED_TOPIC" default:"booking.created"`
	ChatMessageTopic    string   `envconfig:"KAFKA_CHAT_MESSAGE_TOPIC" default:"chat.message.created"`
	// Shared token for the internal HTTP event hooks; hooks are disabled when empty.
	HookToken string `envconfig:"EVENT_HOOK_TOKEN"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c PaymentConfig) HasMerchant() bool {
	return c.MerchantID != "" && c.MerchantSecret != ""
}

func (c EventsConfig) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

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
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver:         StoreDriverMemory,
			MaxTxnAttempts: 25,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Colombo",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Colombo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Payment: PaymentConfig{
			MerchantID:     "1211149",
			MerchantSecret: "test-merchant-secret",
			CheckoutURL:    "https://sandbox.payhere.lk/pay/checkout",
			Currency:       "LKR",
			AdvancePercent: 20,
		},
		Events: EventsConfig{
			KafkaGroupID:        "servicebook-test",
			BookingCreatedTopic: "booking.created",
			ChatMessageTopic:    "chat.message.created",
			HookToken:           "test-hook-token",
		},
	}
}
