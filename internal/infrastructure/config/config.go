package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Logger     LoggerConfig
	HTTPServer HTTPServerConfig
	Database   DatabaseConfig
	OpenAI     OpenAIConfig
	Gmail      GmailConfig
	PubSub     PubSubConfig
	Worker     WorkerConfig
	Inbox      InboxConfig
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type HTTPServerConfig struct {
	Enabled         bool
	Port            int
	Mode            string
	RateLimitPerMin int
}

type DatabaseConfig struct {
	Path string
}

type OpenAIConfig struct {
	APIKey       string
	Model        string
	PolishDrafts bool
}

type GmailConfig struct {
	Enabled         bool
	CredentialsPath string
	TokenPath       string
	InitialFetch    int64
}

type PubSubConfig struct {
	Project        string
	SubscriptionID string
	TopicName      string
	DedupSize      int
}

type WorkerConfig struct {
	Count        int
	RatePerSec   float64
	QueueSize    int
	DrainTimeout time.Duration
}

type InboxConfig struct {
	CreateTasks bool
}

// Load reads .env, then config.yaml (./config, ., /etc/inboxassist/), then the
// environment. Environment values win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/inboxassist/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("http_server.enabled", true)
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "release")
	v.SetDefault("http_server.rate_limit_per_min", 120)

	v.SetDefault("database.path", "inboxassist.db")

	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.polish_drafts", false)

	v.SetDefault("gmail.enabled", false)
	v.SetDefault("gmail.credentials_path", "credentials.json")
	v.SetDefault("gmail.token_path", "token.json")
	v.SetDefault("gmail.initial_fetch", 20)

	v.SetDefault("pubsub.dedup_size", 1000)

	v.SetDefault("worker.count", 5)
	v.SetDefault("worker.rate_per_sec", 5.0)
	v.SetDefault("worker.queue_size", 100)
	v.SetDefault("worker.drain_timeout", "30s")

	v.SetDefault("inbox.create_tasks", true)
}

// bindLegacyEnv keeps the flat variable names older deployments use.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"openai.api_key":         "OPENAI_API_KEY",
		"openai.model":           "MODEL_NAME",
		"pubsub.project":         "GOOGLE_CLOUD_PROJECT",
		"pubsub.subscription_id": "SUBSCRIPTION_ID",
		"database.path":          "DATABASE_PATH",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	cfg.HTTPServer.Enabled = v.GetBool("http_server.enabled")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = v.GetInt("http_server.rate_limit_per_min")

	cfg.Database.Path = v.GetString("database.path")

	cfg.OpenAI.APIKey = v.GetString("openai.api_key")
	cfg.OpenAI.Model = v.GetString("openai.model")
	cfg.OpenAI.PolishDrafts = v.GetBool("openai.polish_drafts")

	cfg.Gmail.Enabled = v.GetBool("gmail.enabled")
	cfg.Gmail.CredentialsPath = v.GetString("gmail.credentials_path")
	cfg.Gmail.TokenPath = v.GetString("gmail.token_path")
	cfg.Gmail.InitialFetch = v.GetInt64("gmail.initial_fetch")

	cfg.PubSub.Project = v.GetString("pubsub.project")
	cfg.PubSub.SubscriptionID = v.GetString("pubsub.subscription_id")
	cfg.PubSub.TopicName = v.GetString("pubsub.topic_name")
	cfg.PubSub.DedupSize = v.GetInt("pubsub.dedup_size")
	if cfg.PubSub.TopicName == "" && cfg.PubSub.Project != "" {
		cfg.PubSub.TopicName = fmt.Sprintf("projects/%s/topics/gmail-topic", cfg.PubSub.Project)
	}

	cfg.Worker.Count = v.GetInt("worker.count")
	cfg.Worker.RatePerSec = v.GetFloat64("worker.rate_per_sec")
	cfg.Worker.QueueSize = v.GetInt("worker.queue_size")
	cfg.Worker.DrainTimeout = v.GetDuration("worker.drain_timeout")

	cfg.Inbox.CreateTasks = v.GetBool("inbox.create_tasks")

	return cfg
}

// Validate checks that each enabled integration has what it needs.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.OpenAI.PolishDrafts && c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when openai.polish_drafts is on")
	}
	if c.Gmail.Enabled {
		if c.PubSub.Project == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required when gmail is enabled")
		}
		if c.PubSub.SubscriptionID == "" {
			return fmt.Errorf("SUBSCRIPTION_ID is required when gmail is enabled")
		}
	}
	if c.Worker.Count <= 0 {
		return fmt.Errorf("worker.count must be positive, got %d", c.Worker.Count)
	}
	if c.HTTPServer.Enabled && c.HTTPServer.Port <= 0 {
		return fmt.Errorf("http_server.port must be positive, got %d", c.HTTPServer.Port)
	}
	return nil
}
