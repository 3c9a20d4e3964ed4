package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Ingest struct {
		Source     string `yaml:"source"` // kafka | websocket | http
		MaxUserRPS int    `yaml:"max_user_rps"`
		BufferSize int    `yaml:"buffer_size"`
	} `yaml:"ingest"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		InboundTopic string   `yaml:"inbound_topic"`
		NotifyTopic  string   `yaml:"notify_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		LedgerTable      string        `yaml:"ledger_table"`
		AlertsTable      string        `yaml:"alerts_table"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Gateway struct {
		APIKey         string        `yaml:"api_key"`
		WebSocketURL   string        `yaml:"websocket_url"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
	} `yaml:"gateway"`
	Notifier struct {
		Type string `yaml:"type"` // kafka | redis
	} `yaml:"notifier"`
	Fraud struct {
		VelocityWindow  time.Duration `yaml:"velocity_window"`
		VelocityMax     int           `yaml:"velocity_max"`
		SpikeMultiplier float64       `yaml:"spike_multiplier"`
		SpikeMinHistory int           `yaml:"spike_min_history"`
	} `yaml:"fraud"`
	Forecast struct {
		Mode        string        `yaml:"mode"` // builtin | http
		ServiceURL  string        `yaml:"service_url"`
		Timeout     time.Duration `yaml:"timeout"`
		HorizonDays int           `yaml:"horizon_days"`
	} `yaml:"forecast"`
	Cache struct {
		Enabled    bool          `yaml:"enabled"`
		ProfileTTL time.Duration `yaml:"profile_ttl"`
		Redis      struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("GATEWAY_API_KEY"); v != "" {
		c.Gateway.APIKey = v
	}
	if v := os.Getenv("INGEST_SOURCE"); v != "" {
		c.Ingest.Source = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_INBOUND_TOPIC"); v != "" {
		c.Kafka.InboundTopic = v
	}
	if v := os.Getenv("NOTIFIER_TYPE"); v != "" {
		c.Notifier.Type = v
	}
	if v := os.Getenv("FORECAST_MODE"); v != "" {
		c.Forecast.Mode = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Ingest.Source == "" {
		return fmt.Errorf("ingest.source is required")
	}
	switch c.Ingest.Source {
	case "kafka", "websocket", "http":
	default:
		return fmt.Errorf("ingest.source must be 'kafka', 'websocket' or 'http', got '%s'", c.Ingest.Source)
	}
	if c.Ingest.Source == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty for kafka ingest")
	}
	if c.Ingest.Source == "websocket" && c.Gateway.WebSocketURL == "" {
		return fmt.Errorf("gateway.websocket_url is required for websocket ingest")
	}
	if c.Notifier.Type != "" && c.Notifier.Type != "kafka" && c.Notifier.Type != "redis" {
		return fmt.Errorf("notifier.type must be 'kafka' or 'redis', got '%s'", c.Notifier.Type)
	}
	if c.Forecast.Mode != "" && c.Forecast.Mode != "builtin" && c.Forecast.Mode != "http" {
		return fmt.Errorf("forecast.mode must be 'builtin' or 'http', got '%s'", c.Forecast.Mode)
	}
	if c.Forecast.Mode == "http" && c.Forecast.ServiceURL == "" {
		return fmt.Errorf("forecast.service_url is required for http forecast mode")
	}
	return nil
}
