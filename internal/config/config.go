// Package config provides configuration management for the application.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Gateway    GatewayConfig    `mapstructure:"gateway"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	Pricing    PricingConfig    `mapstructure:"pricing"`
	Send       SendConfig       `mapstructure:"send"`
	Middleware MiddlewareConfig `mapstructure:"middleware"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GatewayConfig holds the upstream SMS gateway connection settings. APIKey
// and SenderTitle are process-wide defaults; tenants may carry their own
// overrides.
type GatewayConfig struct {
	BaseURL         string               `mapstructure:"base_url"`
	APIKey          string               `mapstructure:"api_key"`
	SenderTitle     string               `mapstructure:"sender_title"`
	SMSLang         int                  `mapstructure:"sms_lang"`
	DispatchTimeout int                  `mapstructure:"dispatch_timeout"`
	ReportTimeout   int                  `mapstructure:"report_timeout"`
	CircuitBreaker  CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

// ReconcilerConfig controls the delivery-report polling loop. Intervals and
// horizons are configuration, not constants, so tests and deployments can
// tune them.
type ReconcilerConfig struct {
	SweepIntervalMinutes  int     `mapstructure:"sweep_interval_minutes"`
	SweepBatchSize        int     `mapstructure:"sweep_batch_size"`
	SweepHorizonHours     int     `mapstructure:"sweep_horizon_hours"`
	PacingSeconds         int     `mapstructure:"pacing_seconds"`
	FirstCheckMinutes     int     `mapstructure:"first_check_minutes"`
	RecheckMinutes        int     `mapstructure:"recheck_minutes"`
	CampaignHorizonHours  int     `mapstructure:"campaign_horizon_hours"`
	CompletionThreshold   float64 `mapstructure:"completion_threshold"`
	SnapshotCacheTTLHours int     `mapstructure:"snapshot_cache_ttl_hours"`
}

type PricingConfig struct {
	Strategy string `mapstructure:"strategy"`
	BaseRate int64  `mapstructure:"base_rate"`
}

type SendConfig struct {
	MaxTextLength int `mapstructure:"max_text_length"`
	MaxRecipients int `mapstructure:"max_recipients"`
}

type MiddlewareConfig struct {
	RateLimit      int      `mapstructure:"rate_limit"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	EnableCORS     bool     `mapstructure:"enable_cors"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", 10)
	viper.SetDefault("server.write_timeout", 10)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.auto_migrate", false)
	viper.SetDefault("database.migrations_path", "./migrations")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("gateway.sms_lang", 1)
	viper.SetDefault("gateway.dispatch_timeout", 60)
	viper.SetDefault("gateway.report_timeout", 10)
	viper.SetDefault("gateway.circuit_breaker.max_requests", 3)
	viper.SetDefault("gateway.circuit_breaker.interval", 60)
	viper.SetDefault("gateway.circuit_breaker.timeout", 60)
	viper.SetDefault("gateway.circuit_breaker.failure_ratio", 0.6)
	viper.SetDefault("gateway.circuit_breaker.consecutive_fails", 5)
	viper.SetDefault("reconciler.sweep_interval_minutes", 2)
	viper.SetDefault("reconciler.sweep_batch_size", 10)
	viper.SetDefault("reconciler.sweep_horizon_hours", 48)
	viper.SetDefault("reconciler.pacing_seconds", 2)
	viper.SetDefault("reconciler.first_check_minutes", 2)
	viper.SetDefault("reconciler.recheck_minutes", 5)
	viper.SetDefault("reconciler.campaign_horizon_hours", 24)
	viper.SetDefault("reconciler.completion_threshold", 0.95)
	viper.SetDefault("reconciler.snapshot_cache_ttl_hours", 24)
	viper.SetDefault("pricing.strategy", "flat")
	viper.SetDefault("pricing.base_rate", 1)
	viper.SetDefault("send.max_text_length", 149)
	viper.SetDefault("send.max_recipients", 100000)
	viper.SetDefault("middleware.rate_limit", 100)
	viper.SetDefault("middleware.rate_limit_burst", 1000)
	viper.SetDefault("middleware.enable_cors", true)
	viper.SetDefault("middleware.allowed_origins", []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// GetDSN returns PostgreSQL connection string.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
