package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	AMQP          AMQPConfig          `toml:"amqp"`
	Payment       PaymentConfig       `toml:"payment"`
	Notifications NotificationsConfig `toml:"notifications"`
	Booking       BookingConfig       `toml:"booking"`
	RateLimit     RateLimitConfig     `toml:"ratelimit"`
	CORS          CORSConfig          `toml:"cors"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки redis (кэш настроек и лента изменений)
type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	SettingsTTL     int    `toml:"settings_ttl_seconds"`
	FeedChannelBase string `toml:"feed_channel_prefix"`
}

// SettingsTTLDuration TTL кэша настроек
func (c RedisConfig) SettingsTTLDuration() time.Duration {
	return time.Duration(c.SettingsTTL) * time.Second
}

// AMQPConfig настройки RabbitMQ
type AMQPConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Queue   string `toml:"queue"`
}

// PaymentConfig настройки платёжного webhook
type PaymentConfig struct {
	WebhookURL string `toml:"webhook_url"`
	RefundURL  string `toml:"refund_url"`
	Timeout    int    `toml:"timeout"`
}

// NotificationsConfig настройки webhook уведомлений
type NotificationsConfig struct {
	WebhookURL string `toml:"webhook_url"`
	Timeout    int    `toml:"timeout"`
	Workers    int    `toml:"workers"`
	BufferSize int    `toml:"buffer_size"`
}

// BookingConfig параметры бизнес-логики бронирований
type BookingConfig struct {
	Timezone               string `toml:"timezone"`
	PrimaryCooldownSeconds int    `toml:"primary_cooldown_seconds"`
}

// Location часовой пояс ресторана
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// PrimaryCooldown время, на которое основная стратегия доступности считается нездоровой
func (c BookingConfig) PrimaryCooldown() time.Duration {
	return time.Duration(c.PrimaryCooldownSeconds) * time.Second
}

// RateLimitConfig ограничение частоты запросов к публичным эндпоинтам (на IP)
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// CORSConfig настройки CORS
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает TOML-файл, применяет переопределения из .env и окружения,
// заполняет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{"DB_PASSWORD", &c.Database.Password},
		{"REDIS_PASSWORD", &c.Redis.Password},
		{"AMQP_URL", &c.AMQP.URL},
		{"PAYMENT_WEBHOOK_URL", &c.Payment.WebhookURL},
		{"PAYMENT_REFUND_URL", &c.Payment.RefundURL},
		{"NOTIFY_WEBHOOK_URL", &c.Notifications.WebhookURL},
	}

	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.target = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "restaurant-booking"
	}
	if c.Redis.SettingsTTL == 0 {
		c.Redis.SettingsTTL = 60
	}
	if c.Redis.FeedChannelBase == "" {
		c.Redis.FeedChannelBase = "bookings"
	}
	if c.AMQP.Queue == "" {
		c.AMQP.Queue = "booking.events"
	}
	if c.Payment.Timeout == 0 {
		c.Payment.Timeout = 10
	}
	if c.Notifications.Timeout == 0 {
		c.Notifications.Timeout = 5
	}
	if c.Notifications.Workers == 0 {
		c.Notifications.Workers = 2
	}
	if c.Notifications.BufferSize == 0 {
		c.Notifications.BufferSize = 100
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "Europe/Madrid"
	}
	if c.Booking.PrimaryCooldownSeconds == 0 {
		c.Booking.PrimaryCooldownSeconds = 30
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.PrimaryCooldownSeconds < 0 {
		return fmt.Errorf("%w: booking.primary_cooldown_seconds must not be negative", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.AMQP.Enabled && c.AMQP.URL == "" {
		return fmt.Errorf("%w: amqp.url is required when amqp is enabled", ErrInvalidConfig)
	}
	return nil
}
